package metaplex

import (
	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// ProgramID is the token-metadata program address.
var ProgramID = solanago.TokenMetadataProgramID

// Limits enforced by the token-metadata program.
const (
	MaxNameLength           = 32
	MaxSymbolLength         = 10
	MaxURILength            = 200
	MaxCreatorLimit         = 5
	MaxSellerFeeBasisPoints = 10_000

	// MaxMetadataLen is the size allocated for a metadata account.
	MaxMetadataLen = 679
)

// Key tags the kind of a token-metadata account.
type Key uint8

const (
	KeyUninitialized Key = 0
	KeyEditionV1     Key = 1
	KeyMasterEdition Key = 2
	KeyMetadataV1    Key = 4
)

type Creator struct {
	Address  solanago.PublicKey
	Verified bool
	Share    uint8
}

type Collection struct {
	Verified bool
	Key      solanago.PublicKey
}

type UseMethod uint8

const (
	UseMethodBurn UseMethod = iota
	UseMethodMultiple
	UseMethodSingle
)

type Uses struct {
	UseMethod UseMethod
	Remaining uint64
	Total     uint64
}

// CollectionDetails only has the V1 variant.
type CollectionDetails struct {
	Size uint64
}

// DataV2 is the metadata payload of CreateMetadataAccountV3.
type DataV2 struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
	Collection           *Collection
	Uses                 *Uses
}

func (obj DataV2) MarshalWithEncoder(encoder *binary.Encoder) (err error) {
	if err = encoder.Encode(obj.Name); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Symbol); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Uri); err != nil {
		return err
	}
	if err = encoder.Encode(obj.SellerFeeBasisPoints); err != nil {
		return err
	}
	if err = encodeOption(encoder, obj.Creators != nil, func() error { return encoder.Encode(*obj.Creators) }); err != nil {
		return err
	}
	if err = encodeOption(encoder, obj.Collection != nil, func() error { return encoder.Encode(*obj.Collection) }); err != nil {
		return err
	}
	return encodeOption(encoder, obj.Uses != nil, func() error { return encoder.Encode(*obj.Uses) })
}

func (obj *DataV2) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	if err = decoder.Decode(&obj.Name); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Symbol); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Uri); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.SellerFeeBasisPoints); err != nil {
		return err
	}
	if err = decodeOption(decoder, func() error {
		obj.Creators = new([]Creator)
		return decoder.Decode(obj.Creators)
	}); err != nil {
		return err
	}
	if err = decodeOption(decoder, func() error {
		obj.Collection = new(Collection)
		return decoder.Decode(obj.Collection)
	}); err != nil {
		return err
	}
	return decodeOption(decoder, func() error {
		obj.Uses = new(Uses)
		return decoder.Decode(obj.Uses)
	})
}

// CreateMetadataAccountArgsV3 are the arguments of CreateMetadataAccountV3.
type CreateMetadataAccountArgsV3 struct {
	Data              DataV2
	IsMutable         bool
	CollectionDetails *CollectionDetails
}

func (obj CreateMetadataAccountArgsV3) MarshalWithEncoder(encoder *binary.Encoder) (err error) {
	if err = encoder.Encode(obj.Data); err != nil {
		return err
	}
	if err = encoder.WriteBool(obj.IsMutable); err != nil {
		return err
	}
	return encodeOption(encoder, obj.CollectionDetails != nil, func() error {
		// enum tag of CollectionDetails::V1
		if err := encoder.WriteUint8(0); err != nil {
			return err
		}
		return encoder.Encode(obj.CollectionDetails.Size)
	})
}

func (obj *CreateMetadataAccountArgsV3) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	if err = decoder.Decode(&obj.Data); err != nil {
		return err
	}
	if obj.IsMutable, err = decoder.ReadBool(); err != nil {
		return err
	}
	return decodeOption(decoder, func() error {
		if _, err := decoder.ReadUint8(); err != nil {
			return err
		}
		obj.CollectionDetails = new(CollectionDetails)
		return decoder.Decode(&obj.CollectionDetails.Size)
	})
}

func encodeOption(encoder *binary.Encoder, some bool, value func() error) error {
	if err := encoder.WriteBool(some); err != nil {
		return err
	}
	if !some {
		return nil
	}
	return value()
}

func decodeOption(decoder *binary.Decoder, value func() error) error {
	some, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if !some {
		return nil
	}
	return value()
}
