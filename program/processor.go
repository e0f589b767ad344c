package program

import (
	"errors"

	solanago "github.com/gagliardetto/solana-go"

	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
)

// Process decodes one instruction addressed to this program and runs the
// matching handler. Accounts are bound positionally in wire order.
func (p *Program) Process(env Env, accounts []*solanago.AccountMeta, data []byte) error {
	if !env.ProgramID().Equals(p.id) {
		return ErrInvalidProgramID.WithAccount(env.ProgramID()).Withf("expected %s", p.id)
	}

	decoded, err := stablecoingen.DecodeInstruction(data)
	switch {
	case errors.Is(err, stablecoingen.ErrInstructionTooShort), errors.Is(err, stablecoingen.ErrUnknownInstruction):
		return ErrInstructionFallbackNotFound
	case err != nil:
		return ErrInstructionDidNotDeserialize.Withf("%v", err)
	}

	switch ix := decoded.(type) {
	case *stablecoingen.InitializeToken:
		if len(accounts) < stablecoingen.InitializeTokenAccountsLen {
			return ErrNotEnoughAccountKeys.Withf("initialize_token needs %d accounts, got %d", stablecoingen.InitializeTokenAccountsLen, len(accounts))
		}
		env.Log("Instruction: InitializeToken")
		return p.InitializeToken(env, InitializeTokenAccounts{
			User:                 accounts[0].PublicKey,
			TokenMint:            accounts[1].PublicKey,
			Metadata:             accounts[2].PublicKey,
			TokenMetadataProgram: accounts[3].PublicKey,
			SystemProgram:        accounts[4].PublicKey,
			TokenProgram:         accounts[5].PublicKey,
			Rent:                 accounts[6].PublicKey,
		}, ix.Metadata)
	case *stablecoingen.MintStablecoin:
		if len(accounts) < stablecoingen.MintStablecoinAccountsLen {
			return ErrNotEnoughAccountKeys.Withf("mint_stablecoin needs %d accounts, got %d", stablecoingen.MintStablecoinAccountsLen, len(accounts))
		}
		env.Log("Instruction: MintStablecoin")
		return p.MintStablecoin(env, MintStablecoinAccounts{
			User:                   accounts[0].PublicKey,
			Recipient:              accounts[1].PublicKey,
			TokenMint:              accounts[2].PublicKey,
			Destination:            accounts[3].PublicKey,
			TokenProgram:           accounts[4].PublicKey,
			AssociatedTokenProgram: accounts[5].PublicKey,
			SystemProgram:          accounts[6].PublicKey,
			Rent:                   accounts[7].PublicKey,
		}, ix.Quantity)
	case *stablecoingen.BurnToken:
		if len(accounts) < stablecoingen.BurnTokenAccountsLen {
			return ErrNotEnoughAccountKeys.Withf("burn_token needs %d accounts, got %d", stablecoingen.BurnTokenAccountsLen, len(accounts))
		}
		env.Log("Instruction: BurnToken")
		return p.BurnToken(env, BurnTokenAccounts{
			User:                   accounts[0].PublicKey,
			TokenMint:              accounts[1].PublicKey,
			Destination:            accounts[2].PublicKey,
			TokenProgram:           accounts[3].PublicKey,
			AssociatedTokenProgram: accounts[4].PublicKey,
			SystemProgram:          accounts[5].PublicKey,
		}, ix.Quantity)
	default:
		return ErrInstructionFallbackNotFound
	}
}
