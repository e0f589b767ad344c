// Package solana holds the RPC plumbing the stablecoin client is built on.
package solana

import "errors"

var (
	// ErrAccountNotFound is returned when an RPC lookup finds no account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNotTokenAccount is returned for data that is not an initialized token account.
	ErrNotTokenAccount = errors.New("not an initialized token account")
	// ErrTransactionDropped is returned when a sent transaction has no status.
	ErrTransactionDropped = errors.New("transaction not found (maybe dropped)")
)
