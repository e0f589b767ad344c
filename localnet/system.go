package localnet

import (
	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/stablecoin-go/program"
)

// createAccount moves the rent-exempt minimum from payer into a new account
// of space bytes owned by owner. Signature checks are the caller's job.
func (e *invocation) createAccount(payer, key solana.PublicKey, space uint64, owner solana.PublicKey) (*Account, error) {
	if e.state.exists(key) {
		return nil, program.ErrAccountAlreadyInUse.WithAccount(key)
	}
	funder, ok := e.state.get(payer)
	if !ok {
		return nil, program.ErrInsufficientLamports.WithAccount(payer).Withf("payer has no account")
	}
	if !funder.Owner.Equals(solana.SystemProgramID) {
		return nil, program.ErrAccountOwnedByWrongProgram.WithAccount(payer)
	}
	rent := RentExempt(space)
	if funder.Lamports < rent {
		return nil, program.ErrInsufficientLamports.WithAccount(payer).Withf("need %d lamports, have %d", rent, funder.Lamports)
	}
	funder.Lamports -= rent
	e.state.put(payer, funder)

	acc := &Account{Owner: owner, Lamports: rent, Space: space}
	e.state.put(key, acc)
	return acc, nil
}
