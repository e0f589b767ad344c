package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// Token is a mint together with its address.
type Token struct {
	token.Mint
	Address solana.PublicKey
}

func DecodeMint(address solana.PublicKey, data []byte) (*Token, error) {
	mint := token.Mint{}
	if err := mint.Decode(data); err != nil {
		return nil, fmt.Errorf("decode mint %s: %w", address, err)
	}
	return &Token{Mint: mint, Address: address}, nil
}

// GetMint fetches and decodes the mint at address.
func GetMint(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey) (*Token, error) {
	out, err := GetAccountInfo(ctx, rpcClient, address)
	if err != nil {
		return nil, err
	}
	return DecodeMint(address, out.GetBinary())
}
