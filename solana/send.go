package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// Signers maps public keys to the wallets able to sign for them.
func Signers(wallets ...*solana.Wallet) func(key solana.PublicKey) *solana.PrivateKey {
	return func(key solana.PublicKey) *solana.PrivateKey {
		for _, w := range wallets {
			if key.Equals(w.PublicKey()) {
				return &w.PrivateKey
			}
		}
		return nil
	}
}

// BuildTransaction assembles and signs instructions against the latest blockhash.
func BuildTransaction(
	ctx context.Context,
	rpcClient *rpc.Client,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	sign func(key solana.PublicKey) *solana.PrivateKey,
) (*solana.Transaction, error) {
	latestBlockhash, err := GetLatestBlockhash(ctx, rpcClient)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(instructions, latestBlockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, err
	}

	if _, err = tx.Sign(sign); err != nil {
		return nil, err
	}
	return tx, nil
}

// SimulateTransaction runs tx through the node without committing it.
func SimulateTransaction(ctx context.Context, rpcClient *rpc.Client, tx *solana.Transaction) error {
	out, err := rpcClient.SimulateTransactionWithOpts(
		ctx,
		tx,
		&rpc.SimulateTransactionOpts{
			SigVerify:  false,
			Commitment: rpc.CommitmentFinalized,
		})
	if err != nil {
		return err
	}
	if out != nil && out.Value != nil && out.Value.Err != nil {
		return fmt.Errorf("simulation failed: %v", out.Value.Err)
	}
	return nil
}

// SendTransaction sends a signed transaction and waits for it to land. When
// the websocket wait gives up, the signature status is polled once so a
// transaction that landed anyway is not reported as failed.
func SendTransaction(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	tx *solana.Transaction,
) (solana.Signature, error) {
	sig, err := rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return solana.Signature{}, err
	}

	confirmed, err := sendandconfirmtransaction.WaitForConfirmation(ctx, wsClient, sig, nil)
	if confirmed {
		if err != nil {
			return solana.Signature{}, fmt.Errorf("transaction confirmed but failed: %w", err)
		}
		return sig, nil
	}

	statusResp, err := rpcClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("rpc GetSignatureStatuses error: %w", err)
	}
	status := statusResp.Value[0]
	if status == nil {
		return solana.Signature{}, ErrTransactionDropped
	}
	if status.Err != nil {
		return solana.Signature{}, fmt.Errorf("transaction confirmed but failed: %v", status.Err)
	}
	return sig, nil
}
