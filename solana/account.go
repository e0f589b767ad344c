package solana

import (
	"context"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// TokenAccount is a decoded SPL token account.
type TokenAccount struct {
	Address solana.PublicKey
	// Mint associated with the account
	Mint solana.PublicKey

	// Owner of the account
	Owner solana.PublicKey

	// Number of tokens the account holds
	Amount uint64

	// True if the account is frozen
	IsFrozen bool
}

// DecodeTokenAccount parses token account data as stored by the token program.
func DecodeTokenAccount(address solana.PublicKey, data []byte) (*TokenAccount, error) {
	var raw token.Account
	if err := raw.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return nil, fmt.Errorf("decode token account %s: %w", address, err)
	}
	if raw.State == token.Uninitialized {
		return nil, fmt.Errorf("%w: %s", ErrNotTokenAccount, address)
	}
	return &TokenAccount{
		Address:  address,
		Mint:     raw.Mint,
		Owner:    raw.Owner,
		Amount:   raw.Amount,
		IsFrozen: raw.State == token.Frozen,
	}, nil
}

// GetTokenAccount fetches and decodes the token account at address.
func GetTokenAccount(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey) (*TokenAccount, error) {
	out, err := GetAccountInfo(ctx, rpcClient, address)
	if err != nil {
		return nil, err
	}
	if !out.Value.Owner.Equals(solana.TokenProgramID) {
		return nil, fmt.Errorf("%w: %s owned by %s", ErrNotTokenAccount, address, out.Value.Owner)
	}
	return DecodeTokenAccount(address, out.GetBinary())
}
