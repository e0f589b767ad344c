package program

import (
	"fmt"

	"go.uber.org/zap"
)

// BurnToken burns quantity from the caller's associated token account.
// Authority is the caller's own signature; no seeds are attached.
//
// A burn aimed at another holder's account is rejected before the ledger
// is reached: the destination must be the signer's associated account, so
// the authorization failure surfaces as ErrConstraintAssociated rather than
// the ledger's ErrOwnerMismatch.
func (p *Program) BurnToken(env Env, accounts BurnTokenAccounts, quantity uint64) error {
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

	if _, err := env.Ledger().GetMint(accounts.TokenMint); err != nil {
		return err
	}
	if err := checkAssociated(accounts.Destination, accounts.User, accounts.TokenMint); err != nil {
		return err
	}
	if _, err := env.Ledger().GetAccount(accounts.Destination); err != nil {
		return err
	}

	if err := env.Ledger().Burn(accounts.Destination, accounts.TokenMint, accounts.User, quantity); err != nil {
		return fmt.Errorf("burn: %w", err)
	}

	p.logger.Debug("burned",
		zap.Stringer("source", accounts.Destination),
		zap.Stringer("owner", accounts.User),
		zap.Uint64("quantity", quantity),
	)
	return nil
}
