// Package stablecoin is a client for the stablecoin issuance program: a
// single mint owned by a program-derived authority, with immutable metadata,
// open minting and holder-authorised burning.
//
// Example:
//
// client, _ := stablecoin.New(rpcClient, wsClient)
//
// client.InitializeToken(ctx, payer, stablecoin.InitTokenParams{Name: "EtherFuse USD", Symbol: "EFUSD", Uri: uri, Decimals: 6})
//
// client.MintStablecoin(ctx, payer, payer.PublicKey(), 1_000_000)
//
// client.BurnToken(ctx, payer, 400_000)
package stablecoin

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"

	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
	"github.com/krazyTry/stablecoin-go/program"
	solanago "github.com/krazyTry/stablecoin-go/solana"
)

// ErrAlreadyInitialized is returned by InitializeToken when the mint exists.
var ErrAlreadyInitialized = errors.New("stablecoin mint already initialized")

// InitTokenParams are the name, symbol, uri and decimals of the token.
type InitTokenParams = stablecoingen.InitTokenParams

type Stablecoin struct {
	rpcClient *rpc.Client
	wsClient  *ws.Client

	programID solana.PublicKey
	authority program.Authority
	metadata  solana.PublicKey

	bSimulate bool
	logger    *zap.Logger
}

type Option func(*Stablecoin)

// WithProgramID targets a deployment other than the default program ID.
func WithProgramID(programID solana.PublicKey) Option {
	return func(s *Stablecoin) {
		s.programID = programID
	}
}

// WithSimulate makes every operation simulate instead of send.
func WithSimulate(simulate bool) Option {
	return func(s *Stablecoin) {
		s.bSimulate = simulate
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Stablecoin) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New derives the mint and metadata addresses of the target deployment.
func New(rpcClient *rpc.Client, wsClient *ws.Client, opts ...Option) (*Stablecoin, error) {
	s := &Stablecoin{
		rpcClient: rpcClient,
		wsClient:  wsClient,
		programID: stablecoingen.ProgramID,
		logger:    zap.NewNop(),
	}
	for _, fn := range opts {
		fn(s)
	}

	p, err := program.New(s.programID)
	if err != nil {
		return nil, err
	}
	s.authority = p.Authority()
	s.metadata = p.MetadataAddress()
	s.logger = s.logger.Named("stablecoin").With(zap.Stringer("mint", s.authority.Address))
	return s, nil
}

func (s *Stablecoin) ProgramID() solana.PublicKey { return s.programID }

// MintAddress is the derived mint, which is also its own mint authority.
func (s *Stablecoin) MintAddress() solana.PublicKey { return s.authority.Address }

// MintBump is the canonical bump of the mint address.
func (s *Stablecoin) MintBump() uint8 { return s.authority.Bump }

func (s *Stablecoin) MetadataAddress() solana.PublicKey { return s.metadata }

// DestinationAddress is owner's associated token account for the stablecoin.
func (s *Stablecoin) DestinationAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	address, _, err := solana.FindAssociatedTokenAddress(owner, s.authority.Address)
	return address, err
}

// InitializeToken creates the mint and its metadata. It fails fast with
// ErrAlreadyInitialized when the mint is already there.
func (s *Stablecoin) InitializeToken(ctx context.Context, payer *solana.Wallet, params InitTokenParams) (string, error) {
	initialized, err := s.IsInitialized(ctx)
	if err != nil {
		return "", err
	}
	if initialized {
		return "", ErrAlreadyInitialized
	}

	ix, err := s.InitializeTokenInstruction(payer.PublicKey(), params)
	if err != nil {
		return "", err
	}
	sig, err := s.send(ctx, []solana.Instruction{ix}, payer)
	if err != nil {
		return "", err
	}
	s.logger.Info("token initialized", zap.String("signature", sig), zap.String("symbol", params.Symbol))
	return sig, nil
}

// MintStablecoin mints quantity base units to recipient, paid by payer.
func (s *Stablecoin) MintStablecoin(ctx context.Context, payer *solana.Wallet, recipient solana.PublicKey, quantity uint64) (string, error) {
	ix, err := s.MintStablecoinInstruction(payer.PublicKey(), recipient, quantity)
	if err != nil {
		return "", err
	}
	sig, err := s.send(ctx, []solana.Instruction{ix}, payer)
	if err != nil {
		return "", err
	}
	s.logger.Info("minted", zap.String("signature", sig), zap.Stringer("recipient", recipient), zap.Uint64("quantity", quantity))
	return sig, nil
}

// BurnToken burns quantity base units from owner's balance.
func (s *Stablecoin) BurnToken(ctx context.Context, owner *solana.Wallet, quantity uint64) (string, error) {
	ix, err := s.BurnTokenInstruction(owner.PublicKey(), quantity)
	if err != nil {
		return "", err
	}
	sig, err := s.send(ctx, []solana.Instruction{ix}, owner)
	if err != nil {
		return "", err
	}
	s.logger.Info("burned", zap.String("signature", sig), zap.Stringer("owner", owner.PublicKey()), zap.Uint64("quantity", quantity))
	return sig, nil
}

func (s *Stablecoin) send(ctx context.Context, instructions []solana.Instruction, payer *solana.Wallet, signers ...*solana.Wallet) (string, error) {
	tx, err := solanago.BuildTransaction(ctx, s.rpcClient, instructions, payer.PublicKey(), solanago.Signers(append([]*solana.Wallet{payer}, signers...)...))
	if err != nil {
		return "", err
	}

	if s.bSimulate {
		if err = solanago.SimulateTransaction(ctx, s.rpcClient, tx); err != nil {
			return "", err
		}
		return "-", nil
	}

	sig, err := solanago.SendTransaction(ctx, s.rpcClient, s.wsClient, tx)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}
