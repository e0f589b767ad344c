package stablecoin

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

var (
	ErrInstructionTooShort     = errors.New("instruction data shorter than discriminator")
	ErrUnknownInstruction      = errors.New("unknown instruction discriminator")
	ErrInvalidInstructionData  = errors.New("unexpected instruction data")
	ErrTrailingInstructionData = errors.New("trailing bytes after instruction arguments")
)

// Instruction discriminators, sha256("global:<name>")[:8].
var (
	Instruction_InitializeToken = discriminator("initialize_token")
	Instruction_MintStablecoin  = discriminator("mint_stablecoin")
	Instruction_BurnToken       = discriminator("burn_token")
)

// Number of accounts each instruction expects.
const (
	InitializeTokenAccountsLen = 7
	MintStablecoinAccountsLen  = 8
	BurnTokenAccountsLen       = 6
)

func discriminator(name string) [8]byte {
	hash := sha256.Sum256([]byte("global:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

func encode(disc [8]byte, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := binary.NewBorshEncoder(buf)
	if err := enc.WriteBytes(disc[:], false); err != nil {
		return nil, err
	}
	if err := enc.Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewInitializeTokenInstruction builds initialize_token.
//
// The token mint is both the mint PDA and its own mint authority; metadata is
// the token-metadata PDA of that mint.
func NewInitializeTokenInstruction(
	// Params:
	metadata InitTokenParams,

	// Accounts:
	user solanago.PublicKey,
	tokenMint solanago.PublicKey,
	metadataAccount solanago.PublicKey,
	tokenMetadataProgram solanago.PublicKey,
	systemProgram solanago.PublicKey,
	tokenProgram solanago.PublicKey,
	rent solanago.PublicKey,
	programID solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encode(Instruction_InitializeToken, metadata)
	if err != nil {
		return nil, fmt.Errorf("encode initialize_token: %w", err)
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(user, true, true),
		solanago.NewAccountMeta(tokenMint, true, false),
		solanago.NewAccountMeta(metadataAccount, true, false),
		solanago.NewAccountMeta(tokenMetadataProgram, false, false),
		solanago.NewAccountMeta(systemProgram, false, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(rent, false, false),
	}
	return solanago.NewInstruction(programID, accounts, data), nil
}

// NewMintStablecoinInstruction builds mint_stablecoin.
// destination must be the associated token account of recipient.
func NewMintStablecoinInstruction(
	// Params:
	quantity uint64,

	// Accounts:
	user solanago.PublicKey,
	recipient solanago.PublicKey,
	tokenMint solanago.PublicKey,
	destination solanago.PublicKey,
	tokenProgram solanago.PublicKey,
	associatedTokenProgram solanago.PublicKey,
	systemProgram solanago.PublicKey,
	rent solanago.PublicKey,
	programID solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encode(Instruction_MintStablecoin, quantity)
	if err != nil {
		return nil, fmt.Errorf("encode mint_stablecoin: %w", err)
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(user, true, true),
		solanago.NewAccountMeta(recipient, false, false),
		solanago.NewAccountMeta(tokenMint, true, false),
		solanago.NewAccountMeta(destination, true, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(associatedTokenProgram, false, false),
		solanago.NewAccountMeta(systemProgram, false, false),
		solanago.NewAccountMeta(rent, false, false),
	}
	return solanago.NewInstruction(programID, accounts, data), nil
}

// NewBurnTokenInstruction builds burn_token. user must own destination.
func NewBurnTokenInstruction(
	// Params:
	quantity uint64,

	// Accounts:
	user solanago.PublicKey,
	tokenMint solanago.PublicKey,
	destination solanago.PublicKey,
	tokenProgram solanago.PublicKey,
	associatedTokenProgram solanago.PublicKey,
	systemProgram solanago.PublicKey,
	programID solanago.PublicKey,
) (solanago.Instruction, error) {
	data, err := encode(Instruction_BurnToken, quantity)
	if err != nil {
		return nil, fmt.Errorf("encode burn_token: %w", err)
	}
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(user, true, true),
		solanago.NewAccountMeta(tokenMint, true, false),
		solanago.NewAccountMeta(destination, true, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(associatedTokenProgram, false, false),
		solanago.NewAccountMeta(systemProgram, false, false),
	}
	return solanago.NewInstruction(programID, accounts, data), nil
}

// DecodeInstruction decodes instruction data into *InitializeToken,
// *MintStablecoin or *BurnToken.
func DecodeInstruction(data []byte) (interface{}, error) {
	if len(data) < 8 {
		return nil, ErrInstructionTooShort
	}
	var disc [8]byte
	copy(disc[:], data[:8])
	decoder := binary.NewBorshDecoder(data[8:])

	var out interface{}
	var err error
	switch disc {
	case Instruction_InitializeToken:
		ix := new(InitializeToken)
		err = decoder.Decode(&ix.Metadata)
		out = ix
	case Instruction_MintStablecoin:
		ix := new(MintStablecoin)
		err = decoder.Decode(&ix.Quantity)
		out = ix
	case Instruction_BurnToken:
		ix := new(BurnToken)
		err = decoder.Decode(&ix.Quantity)
		out = ix
	default:
		return nil, ErrUnknownInstruction
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInstructionData, err)
	}
	if decoder.HasRemaining() {
		return nil, ErrTrailingInstructionData
	}
	return out, nil
}
