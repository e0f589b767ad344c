package metaplex

import (
	"bytes"
	"errors"
	"strings"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

var ErrNotMetadataAccount = errors.New("account is not a metadata account")

// Data is the stored form of DataV2, without collection and uses.
type Data struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
}

// Metadata is the token-metadata account layout.
type Metadata struct {
	Key                 Key
	UpdateAuthority     solanago.PublicKey
	Mint                solanago.PublicKey
	Data                Data
	PrimarySaleHappened bool
	IsMutable           bool
	EditionNonce        *uint8
	TokenStandard       *uint8
	Collection          *Collection
	Uses                *Uses
}

// NewMetadata builds the record the program stores for a freshly created
// metadata account. Strings are padded the way the program stores them.
func NewMetadata(mint, updateAuthority solanago.PublicKey, args CreateMetadataAccountArgsV3) Metadata {
	return Metadata{
		Key:             KeyMetadataV1,
		UpdateAuthority: updateAuthority,
		Mint:            mint,
		Data: Data{
			Name:                 puff(args.Data.Name, MaxNameLength),
			Symbol:               puff(args.Data.Symbol, MaxSymbolLength),
			Uri:                  puff(args.Data.Uri, MaxURILength),
			SellerFeeBasisPoints: args.Data.SellerFeeBasisPoints,
			Creators:             args.Data.Creators,
		},
		IsMutable:  args.IsMutable,
		Collection: args.Data.Collection,
		Uses:       args.Data.Uses,
	}
}

// Name returns the name without padding.
func (m *Metadata) Name() string { return unpuff(m.Data.Name) }

// Symbol returns the symbol without padding.
func (m *Metadata) Symbol() string { return unpuff(m.Data.Symbol) }

// URI returns the uri without padding.
func (m *Metadata) URI() string { return unpuff(m.Data.Uri) }

func (obj Metadata) MarshalWithEncoder(encoder *binary.Encoder) (err error) {
	if err = encoder.WriteUint8(uint8(obj.Key)); err != nil {
		return err
	}
	if err = encoder.Encode(obj.UpdateAuthority); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Mint); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Data.Name); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Data.Symbol); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Data.Uri); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Data.SellerFeeBasisPoints); err != nil {
		return err
	}
	if err = encodeOption(encoder, obj.Data.Creators != nil, func() error { return encoder.Encode(*obj.Data.Creators) }); err != nil {
		return err
	}
	if err = encoder.WriteBool(obj.PrimarySaleHappened); err != nil {
		return err
	}
	if err = encoder.WriteBool(obj.IsMutable); err != nil {
		return err
	}
	if err = encodeOption(encoder, obj.EditionNonce != nil, func() error { return encoder.WriteUint8(*obj.EditionNonce) }); err != nil {
		return err
	}
	if err = encodeOption(encoder, obj.TokenStandard != nil, func() error { return encoder.WriteUint8(*obj.TokenStandard) }); err != nil {
		return err
	}
	if err = encodeOption(encoder, obj.Collection != nil, func() error { return encoder.Encode(*obj.Collection) }); err != nil {
		return err
	}
	return encodeOption(encoder, obj.Uses != nil, func() error { return encoder.Encode(*obj.Uses) })
}

func (obj *Metadata) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	key, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if Key(key) != KeyMetadataV1 {
		return ErrNotMetadataAccount
	}
	obj.Key = Key(key)
	if err = decoder.Decode(&obj.UpdateAuthority); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Mint); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Data.Name); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Data.Symbol); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Data.Uri); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Data.SellerFeeBasisPoints); err != nil {
		return err
	}
	if err = decodeOption(decoder, func() error {
		obj.Data.Creators = new([]Creator)
		return decoder.Decode(obj.Data.Creators)
	}); err != nil {
		return err
	}
	if obj.PrimarySaleHappened, err = decoder.ReadBool(); err != nil {
		return err
	}
	if obj.IsMutable, err = decoder.ReadBool(); err != nil {
		return err
	}

	// Older accounts end here; the remaining fields were appended over time.
	if !decoder.HasRemaining() {
		return nil
	}
	if err = decodeOption(decoder, func() error {
		v, err := decoder.ReadUint8()
		obj.EditionNonce = &v
		return err
	}); err != nil {
		return err
	}
	if !decoder.HasRemaining() {
		return nil
	}
	if err = decodeOption(decoder, func() error {
		v, err := decoder.ReadUint8()
		obj.TokenStandard = &v
		return err
	}); err != nil {
		return err
	}
	if !decoder.HasRemaining() {
		return nil
	}
	if err = decodeOption(decoder, func() error {
		obj.Collection = new(Collection)
		return decoder.Decode(obj.Collection)
	}); err != nil {
		return err
	}
	if !decoder.HasRemaining() {
		return nil
	}
	return decodeOption(decoder, func() error {
		obj.Uses = new(Uses)
		return decoder.Decode(obj.Uses)
	})
}

// EncodeMetadata serializes m and zero-pads it to MaxMetadataLen.
func EncodeMetadata(m Metadata) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.NewBorshEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if len(out) < MaxMetadataLen {
		out = append(out, make([]byte, MaxMetadataLen-len(out))...)
	}
	return out, nil
}

// DecodeMetadata parses raw metadata account data.
func DecodeMetadata(data []byte) (*Metadata, error) {
	m := new(Metadata)
	if err := binary.NewBorshDecoder(data).Decode(m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeriveMetadataAddress derives the metadata PDA of a mint.
func DeriveMetadataAddress(mint solanago.PublicKey) (solanago.PublicKey, uint8, error) {
	return solanago.FindProgramAddress([][]byte{
		[]byte("metadata"),
		ProgramID.Bytes(),
		mint.Bytes(),
	}, ProgramID)
}

func puff(s string, size int) string {
	if len(s) >= size {
		return s
	}
	return s + strings.Repeat("\x00", size-len(s))
}

func unpuff(s string) string {
	return strings.TrimRight(s, "\x00")
}
