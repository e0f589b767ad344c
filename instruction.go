package stablecoin

import (
	"github.com/gagliardetto/solana-go"

	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
	"github.com/krazyTry/stablecoin-go/program"
)

// InitializeTokenInstruction builds initialize_token with payer funding the
// mint and metadata accounts.
func (s *Stablecoin) InitializeTokenInstruction(payer solana.PublicKey, params InitTokenParams) (solana.Instruction, error) {
	return stablecoingen.NewInitializeTokenInstruction(
		params,
		payer,
		s.authority.Address,
		s.metadata,
		program.MetadataProgramID,
		program.SystemProgramID,
		program.TokenProgramID,
		program.RentSysvarID,
		s.programID,
	)
}

// MintStablecoinInstruction builds mint_stablecoin crediting recipient's
// associated token account, created on the fly at payer's expense.
func (s *Stablecoin) MintStablecoinInstruction(payer, recipient solana.PublicKey, quantity uint64) (solana.Instruction, error) {
	destination, err := s.DestinationAddress(recipient)
	if err != nil {
		return nil, err
	}
	return stablecoingen.NewMintStablecoinInstruction(
		quantity,
		payer,
		recipient,
		s.authority.Address,
		destination,
		program.TokenProgramID,
		program.AssociatedTokenProgramID,
		program.SystemProgramID,
		program.RentSysvarID,
		s.programID,
	)
}

// BurnTokenInstruction builds burn_token debiting owner's associated token account.
func (s *Stablecoin) BurnTokenInstruction(owner solana.PublicKey, quantity uint64) (solana.Instruction, error) {
	destination, err := s.DestinationAddress(owner)
	if err != nil {
		return nil, err
	}
	return stablecoingen.NewBurnTokenInstruction(
		quantity,
		owner,
		s.authority.Address,
		destination,
		program.TokenProgramID,
		program.AssociatedTokenProgramID,
		program.SystemProgramID,
		s.programID,
	)
}
