package localnet

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/krazyTry/stablecoin-go/program"
)

// MaxDecimals is the largest precision the local token program accepts.
const MaxDecimals = 9

// tokenProgram is the subset of the SPL token program the stablecoin calls.
type tokenProgram struct {
	*invocation
}

var _ program.TokenLedger = (*tokenProgram)(nil)

func (t *tokenProgram) CreateMint(payer, mint solana.PublicKey, decimals uint8, authority solana.PublicKey, seeds ...program.SignerSeeds) error {
	if decimals > MaxDecimals {
		return program.ErrInvalidDecimals.WithAccount(mint).Withf("decimals %d above %d", decimals, MaxDecimals)
	}
	if err := t.requireSigner(payer); err != nil {
		return err
	}
	if err := t.requireSigner(mint, seeds...); err != nil {
		return err
	}
	acc, err := t.createAccount(payer, mint, MintSize, solana.TokenProgramID)
	if err != nil {
		return err
	}
	mintAuthority := authority
	acc.Mint = &token.Mint{
		MintAuthority: &mintAuthority,
		Decimals:      decimals,
		IsInitialized: true,
	}
	t.state.put(mint, acc)
	return nil
}

func (t *tokenProgram) MintTo(mint, destination, authority solana.PublicKey, amount uint64, seeds ...program.SignerSeeds) error {
	mintAcc, err := t.mintAccount(mint)
	if err != nil {
		return err
	}
	destAcc, err := t.tokenAccount(destination)
	if err != nil {
		return err
	}
	if !destAcc.Token.Mint.Equals(mint) {
		return program.ErrMintMismatch.WithAccount(destination)
	}
	if mintAcc.Mint.MintAuthority == nil || !mintAcc.Mint.MintAuthority.Equals(authority) {
		return program.ErrOwnerMismatch.WithAccount(authority).Withf("not the mint authority of %s", mint)
	}
	if err := t.requireSigner(authority, seeds...); err != nil {
		return err
	}
	if mintAcc.Mint.Supply+amount < mintAcc.Mint.Supply {
		return program.ErrOverflow.WithAccount(mint)
	}
	if destAcc.Token.Amount+amount < destAcc.Token.Amount {
		return program.ErrOverflow.WithAccount(destination)
	}

	mintAcc.Mint.Supply += amount
	destAcc.Token.Amount += amount
	t.state.put(mint, mintAcc)
	t.state.put(destination, destAcc)
	return nil
}

func (t *tokenProgram) Burn(source, mint, owner solana.PublicKey, amount uint64, seeds ...program.SignerSeeds) error {
	srcAcc, err := t.tokenAccount(source)
	if err != nil {
		return err
	}
	if !srcAcc.Token.Mint.Equals(mint) {
		return program.ErrMintMismatch.WithAccount(source)
	}
	mintAcc, err := t.mintAccount(mint)
	if err != nil {
		return err
	}
	if !srcAcc.Token.Owner.Equals(owner) {
		return program.ErrOwnerMismatch.WithAccount(owner).Withf("%s is owned by %s", source, srcAcc.Token.Owner)
	}
	if err := t.requireSigner(owner, seeds...); err != nil {
		return err
	}
	if srcAcc.Token.Amount < amount {
		return program.ErrInsufficientFunds.WithAccount(source).Withf("balance %d, burn %d", srcAcc.Token.Amount, amount)
	}

	srcAcc.Token.Amount -= amount
	mintAcc.Mint.Supply -= amount
	t.state.put(source, srcAcc)
	t.state.put(mint, mintAcc)
	return nil
}

func (t *tokenProgram) GetMint(mint solana.PublicKey) (*token.Mint, error) {
	acc, err := t.mintAccount(mint)
	if err != nil {
		return nil, err
	}
	return acc.Mint, nil
}

func (t *tokenProgram) GetAccount(account solana.PublicKey) (*token.Account, error) {
	acc, err := t.tokenAccount(account)
	if err != nil {
		return nil, err
	}
	return acc.Token, nil
}

func (t *tokenProgram) mintAccount(key solana.PublicKey) (*Account, error) {
	acc, ok := t.state.get(key)
	if !ok || acc.Mint == nil || !acc.Mint.IsInitialized {
		return nil, program.ErrAccountNotInitialized.WithAccount(key)
	}
	if !acc.Owner.Equals(solana.TokenProgramID) {
		return nil, program.ErrAccountOwnedByWrongProgram.WithAccount(key)
	}
	return acc, nil
}

func (t *tokenProgram) tokenAccount(key solana.PublicKey) (*Account, error) {
	acc, ok := t.state.get(key)
	if !ok || acc.Token == nil || acc.Token.State == token.Uninitialized {
		return nil, program.ErrAccountNotInitialized.WithAccount(key)
	}
	if !acc.Owner.Equals(solana.TokenProgramID) {
		return nil, program.ErrAccountOwnedByWrongProgram.WithAccount(key)
	}
	return acc, nil
}
