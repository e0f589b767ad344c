package stablecoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"

	"github.com/krazyTry/stablecoin-go/gen/metaplex"
	solanago "github.com/krazyTry/stablecoin-go/solana"
)

// IsInitialized reports whether the mint account exists.
func (s *Stablecoin) IsInitialized(ctx context.Context) (bool, error) {
	return solanago.AccountExists(ctx, s.rpcClient, s.authority.Address)
}

// GetMint fetches the mint: supply, decimals and mint authority.
func (s *Stablecoin) GetMint(ctx context.Context) (*solanago.Token, error) {
	return solanago.GetMint(ctx, s.rpcClient, s.authority.Address)
}

// GetMetadata fetches the metadata record attached to the mint.
func (s *Stablecoin) GetMetadata(ctx context.Context) (*metaplex.Metadata, error) {
	out, err := solanago.GetAccountInfo(ctx, s.rpcClient, s.metadata)
	if err != nil {
		return nil, err
	}
	if !out.Value.Owner.Equals(metaplex.ProgramID) {
		return nil, fmt.Errorf("%w: %s owned by %s", metaplex.ErrNotMetadataAccount, s.metadata, out.Value.Owner)
	}
	return metaplex.DecodeMetadata(out.GetBinary())
}

// GetBalance returns owner's balance in base units. An owner without a
// token account holds zero.
func (s *Stablecoin) GetBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	destination, err := s.DestinationAddress(owner)
	if err != nil {
		return 0, err
	}
	account, err := solanago.GetTokenAccount(ctx, s.rpcClient, destination)
	switch {
	case errors.Is(err, solanago.ErrAccountNotFound):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return account.Amount, nil
}

// GetTotalBalance sums owner's balances over every token account it holds
// of the stablecoin, not only the associated one.
func (s *Stablecoin) GetTotalBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	return solanago.GetTokenBalance(ctx, s.rpcClient, owner, s.authority.Address)
}

// GetUIBalance returns owner's balance scaled by the mint's decimals.
func (s *Stablecoin) GetUIBalance(ctx context.Context, owner solana.PublicKey) (decimal.Decimal, error) {
	mint, err := s.GetMint(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := s.GetBalance(ctx, owner)
	if err != nil {
		return decimal.Zero, err
	}
	return ToUIAmount(balance, mint.Decimals), nil
}
