package metaplex

import (
	"bytes"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// Instruction_CreateMetadataAccountV3 is the instruction tag of CreateMetadataAccountV3.
const Instruction_CreateMetadataAccountV3 uint8 = 33

var ErrUnexpectedInstruction = errors.New("not a CreateMetadataAccountV3 instruction")

// CreateMetadataAccountV3Accounts lists the accounts of CreateMetadataAccountV3.
type CreateMetadataAccountV3Accounts struct {
	Metadata        solanago.PublicKey
	Mint            solanago.PublicKey
	MintAuthority   solanago.PublicKey
	Payer           solanago.PublicKey
	UpdateAuthority solanago.PublicKey
	SystemProgram   solanago.PublicKey
	Rent            solanago.PublicKey

	UpdateAuthorityIsSigner bool
}

// NewCreateMetadataAccountV3Instruction builds CreateMetadataAccountV3.
func NewCreateMetadataAccountV3Instruction(
	args CreateMetadataAccountArgsV3,
	accounts CreateMetadataAccountV3Accounts,
) (solanago.Instruction, error) {
	buf := new(bytes.Buffer)
	enc := binary.NewBorshEncoder(buf)
	if err := enc.WriteUint8(Instruction_CreateMetadataAccountV3); err != nil {
		return nil, err
	}
	if err := enc.Encode(args); err != nil {
		return nil, fmt.Errorf("encode create_metadata_account_v3: %w", err)
	}
	metas := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(accounts.Metadata, true, false),
		solanago.NewAccountMeta(accounts.Mint, false, false),
		solanago.NewAccountMeta(accounts.MintAuthority, false, true),
		solanago.NewAccountMeta(accounts.Payer, true, true),
		solanago.NewAccountMeta(accounts.UpdateAuthority, false, accounts.UpdateAuthorityIsSigner),
		solanago.NewAccountMeta(accounts.SystemProgram, false, false),
	}
	if !accounts.Rent.IsZero() {
		metas = append(metas, solanago.NewAccountMeta(accounts.Rent, false, false))
	}
	return solanago.NewInstruction(ProgramID, metas, buf.Bytes()), nil
}

// DecodeCreateMetadataAccountV3 decodes the arguments of a CreateMetadataAccountV3 instruction.
func DecodeCreateMetadataAccountV3(data []byte) (*CreateMetadataAccountArgsV3, error) {
	if len(data) == 0 || data[0] != Instruction_CreateMetadataAccountV3 {
		return nil, ErrUnexpectedInstruction
	}
	args := new(CreateMetadataAccountArgsV3)
	if err := binary.NewBorshDecoder(data[1:]).Decode(args); err != nil {
		return nil, err
	}
	return args, nil
}
