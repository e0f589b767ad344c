package localnet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/krazyTry/stablecoin-go/program"
)

type associatedTokenProgram struct {
	*invocation
}

var _ program.BalanceResolver = (*associatedTokenProgram)(nil)

// ResolveOrCreate is create-idempotent: an existing account for the same
// owner and mint is returned as is.
func (a *associatedTokenProgram) ResolveOrCreate(payer, owner, mint solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("derive associated token address: %w", err)
	}

	if acc, ok := a.state.get(address); ok {
		if acc.Token == nil || !acc.Token.Owner.Equals(owner) || !acc.Token.Mint.Equals(mint) {
			return solana.PublicKey{}, program.ErrConstraintAssociated.WithAccount(address).Withf("not a token account of %s for %s", owner, mint)
		}
		return address, nil
	}

	ledger := &tokenProgram{a.invocation}
	if _, err := ledger.mintAccount(mint); err != nil {
		return solana.PublicKey{}, err
	}
	if err := a.requireSigner(payer); err != nil {
		return solana.PublicKey{}, err
	}
	acc, err := a.createAccount(payer, address, TokenAccountSize, solana.TokenProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	acc.Token = &token.Account{
		Mint:  mint,
		Owner: owner,
		State: token.Initialized,
	}
	a.state.put(address, acc)
	return address, nil
}
