package solana

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"
)

func GetLatestBlockhash(ctx context.Context, rpcClient *rpc.Client) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, err
	}
	return recent.Value.Blockhash, nil
}

// GetAccountInfo returns ErrAccountNotFound when the account does not exist.
func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	out, err := rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentFinalized})
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (out == nil || out.Value == nil)) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AccountExists reports whether account is allocated.
func AccountExists(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (bool, error) {
	_, err := GetAccountInfo(ctx, rpcClient, account)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// GetRentExempt returns the lamports an account of space bytes must hold.
func GetRentExempt(ctx context.Context, rpcClient *rpc.Client, space uint64) (uint64, error) {
	return rpcClient.GetMinimumBalanceForRentExemption(ctx, space, rpc.CommitmentFinalized)
}

// GetSOLBalance returns the lamports held by wallet.
func GetSOLBalance(ctx context.Context, rpcClient *rpc.Client, wallet solana.PublicKey) (uint64, error) {
	out, err := rpcClient.GetBalance(ctx, wallet, rpc.CommitmentFinalized)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// GetTokenBalance sums the balances wallet holds of mint across its token
// accounts, read from jsonParsed account data.
func GetTokenBalance(ctx context.Context, rpcClient *rpc.Client, wallet, mint solana.PublicKey) (uint64, error) {
	resp, err := rpcClient.GetTokenAccountsByOwner(ctx, wallet, &rpc.GetTokenAccountsConfig{
		Mint: &mint,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solana.EncodingJSONParsed,
		Commitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return 0, err
	}
	return sumTokenAmounts(resp.Value, mint), nil
}

/*
	{
		"parsed": {
			"info": {
				"mint": "...",
				"owner": "...",
				"state": "initialized",
				"tokenAmount": {"amount": "600000", "decimals": 6, ...}
			},
			"type": "account"
		},
		"program": "spl-token",
		"space": 165
	}
*/
func sumTokenAmounts(accounts []*rpc.TokenAccount, mint solana.PublicKey) uint64 {
	var total uint64
	for _, v := range accounts {
		if v == nil || v.Account.Data == nil {
			continue
		}
		total += parsedTokenAmount(v.Account.Data.GetRawJSON(), mint)
	}
	return total
}

func parsedTokenAmount(raw []byte, mint solana.PublicKey) uint64 {
	info := gjson.GetBytes(raw, "parsed.info")
	if info.Get("mint").String() != mint.String() {
		return 0
	}
	return info.Get("tokenAmount.amount").Uint()
}
