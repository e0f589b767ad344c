package stablecoin

import (
	binary "github.com/gagliardetto/binary"
)

// InitTokenParams are the arguments of initialize_token.
type InitTokenParams struct {
	Name     string
	Symbol   string
	Uri      string
	Decimals uint8
}

func (obj InitTokenParams) MarshalWithEncoder(encoder *binary.Encoder) (err error) {
	// Serialize `Name`:
	if err = encoder.Encode(obj.Name); err != nil {
		return err
	}
	// Serialize `Symbol`:
	if err = encoder.Encode(obj.Symbol); err != nil {
		return err
	}
	// Serialize `Uri`:
	if err = encoder.Encode(obj.Uri); err != nil {
		return err
	}
	// Serialize `Decimals`:
	return encoder.Encode(obj.Decimals)
}

func (obj *InitTokenParams) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	// Deserialize `Name`:
	if err = decoder.Decode(&obj.Name); err != nil {
		return err
	}
	// Deserialize `Symbol`:
	if err = decoder.Decode(&obj.Symbol); err != nil {
		return err
	}
	// Deserialize `Uri`:
	if err = decoder.Decode(&obj.Uri); err != nil {
		return err
	}
	// Deserialize `Decimals`:
	return decoder.Decode(&obj.Decimals)
}

// InitializeToken is the decoded form of an initialize_token instruction.
type InitializeToken struct {
	Metadata InitTokenParams
}

// MintStablecoin is the decoded form of a mint_stablecoin instruction.
type MintStablecoin struct {
	Quantity uint64
}

// BurnToken is the decoded form of a burn_token instruction.
type BurnToken struct {
	Quantity uint64
}
