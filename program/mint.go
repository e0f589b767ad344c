package program

import (
	"fmt"

	"go.uber.org/zap"
)

// MintStablecoin mints quantity to the recipient's associated token
// account, creating it first when needed. The mint signs as its own
// authority through the derived seeds.
//
// Any signer may call this; gating minting is left to the layer above.
func (p *Program) MintStablecoin(env Env, accounts MintStablecoinAccounts, quantity uint64) error {
	if err := checkSigner(env, accounts.User); err != nil {
		return err
	}
	if err := p.authority.Check(accounts.TokenMint); err != nil {
		return err
	}
	if err := checkProgram(accounts.TokenProgram, TokenProgramID); err != nil {
		return err
	}
	if err := checkProgram(accounts.AssociatedTokenProgram, AssociatedTokenProgramID); err != nil {
		return err
	}
	if err := checkProgram(accounts.SystemProgram, SystemProgramID); err != nil {
		return err
	}
	if err := checkProgram(accounts.Rent, RentSysvarID); err != nil {
		return err
	}

	mint, err := env.Ledger().GetMint(accounts.TokenMint)
	if err != nil {
		return err
	}
	if mint.MintAuthority == nil || !mint.MintAuthority.Equals(accounts.TokenMint) {
		return ErrConstraintMintMintAuthority.WithAccount(accounts.TokenMint)
	}
	if err := checkAssociated(accounts.Destination, accounts.Recipient, accounts.TokenMint); err != nil {
		return err
	}

	destination, err := env.Associated().ResolveOrCreate(accounts.User, accounts.Recipient, accounts.TokenMint)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}

	if err := env.Ledger().MintTo(accounts.TokenMint, destination, accounts.TokenMint, quantity, p.authority.Signer()); err != nil {
		return fmt.Errorf("mint to: %w", err)
	}

	p.logger.Debug("minted",
		zap.Stringer("destination", destination),
		zap.Stringer("recipient", accounts.Recipient),
		zap.Uint64("quantity", quantity),
	)
	return nil
}
