package stablecoin

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
	"github.com/krazyTry/stablecoin-go/localnet"
	"github.com/krazyTry/stablecoin-go/program"
)

var testParams = InitTokenParams{
	Name:     "EtherFuse USD",
	Symbol:   "EFUSD",
	Uri:      "https://etherfuse.com/efusd.json",
	Decimals: 6,
}

func TestAddresses(t *testing.T) {
	s, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, stablecoingen.ProgramID, s.ProgramID())

	mint, bump, err := solana.FindProgramAddress([][]byte{[]byte("stablecoin_mint")}, stablecoingen.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, mint, s.MintAddress())
	assert.Equal(t, bump, s.MintBump())

	metadata, _, err := solana.FindProgramAddress([][]byte{
		[]byte("metadata"),
		solana.TokenMetadataProgramID.Bytes(),
		mint.Bytes(),
	}, solana.TokenMetadataProgramID)
	require.NoError(t, err)
	assert.Equal(t, metadata, s.MetadataAddress())

	owner := solana.NewWallet().PublicKey()
	destination, err := s.DestinationAddress(owner)
	require.NoError(t, err)
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, ata, destination)

	other, err := New(nil, nil, WithProgramID(solana.NewWallet().PublicKey()))
	require.NoError(t, err)
	assert.NotEqual(t, s.MintAddress(), other.MintAddress())
}

// The client's instructions are executed by the local host exactly as a
// cluster would receive them.
func TestInstructionsOnLocalnet(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	s, err := New(nil, nil, WithLogger(logger))
	require.NoError(t, err)

	rt := localnet.New(localnet.WithLogger(logger))
	prog, err := program.New(s.ProgramID(), program.WithLogger(logger))
	require.NoError(t, err)
	rt.Register(s.ProgramID(), prog)

	payer := solana.NewWallet()
	require.NoError(t, rt.Airdrop(ctx, payer.PublicKey(), solana.LAMPORTS_PER_SOL))
	send := func(build func() (solana.Instruction, error), signers ...*solana.Wallet) error {
		ix, err := build()
		require.NoError(t, err)
		_, err = rt.Send(ctx, []solana.Instruction{ix}, signers...)
		return err
	}

	require.NoError(t, send(func() (solana.Instruction, error) {
		return s.InitializeTokenInstruction(payer.PublicKey(), testParams)
	}, payer))

	quantity, err := ToBaseUnits(decimal.NewFromInt(1), testParams.Decimals)
	require.NoError(t, err)
	require.NoError(t, send(func() (solana.Instruction, error) {
		return s.MintStablecoinInstruction(payer.PublicKey(), payer.PublicKey(), quantity)
	}, payer))

	burn, err := ToBaseUnits(decimal.RequireFromString("0.4"), testParams.Decimals)
	require.NoError(t, err)
	require.NoError(t, send(func() (solana.Instruction, error) {
		return s.BurnTokenInstruction(payer.PublicKey(), burn)
	}, payer))

	destination, err := s.DestinationAddress(payer.PublicKey())
	require.NoError(t, err)
	acc, err := rt.Account(destination)
	require.NoError(t, err)
	assert.Equal(t, uint64(600_000), acc.Token.Amount)
	assert.Equal(t, "0.6", ToUIAmount(acc.Token.Amount, testParams.Decimals).String())

	md, err := rt.Metadata(s.MetadataAddress())
	require.NoError(t, err)
	assert.Equal(t, testParams.Symbol, md.Symbol())

	err = send(func() (solana.Instruction, error) {
		return s.InitializeTokenInstruction(payer.PublicKey(), testParams)
	}, payer)
	assert.ErrorIs(t, err, program.ErrAccountAlreadyInUse)
}

// TestDevnet runs the full flow against a cluster. It needs a funded keypair
// file in STABLECOIN_KEYPAIR and the program deployed at the default address.
func TestDevnet(t *testing.T) {
	keypair := os.Getenv("STABLECOIN_KEYPAIR")
	if keypair == "" {
		t.Skip("STABLECOIN_KEYPAIR not set")
	}
	privateKey, err := solana.PrivateKeyFromSolanaKeygenFile(keypair)
	require.NoError(t, err)
	payer := &solana.Wallet{PrivateKey: privateKey}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	wsClient, err := ws.Connect(ctx, rpc.DevNet_WS)
	require.NoError(t, err)
	defer wsClient.Close()

	s, err := New(rpc.New(rpc.DevNet_RPC), wsClient, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	initialized, err := s.IsInitialized(ctx)
	require.NoError(t, err)
	if !initialized {
		_, err = s.InitializeToken(ctx, payer, testParams)
		require.NoError(t, err)
	}
	_, err = s.InitializeToken(ctx, payer, testParams)
	require.ErrorIs(t, err, ErrAlreadyInitialized)

	before, err := s.GetBalance(ctx, payer.PublicKey())
	require.NoError(t, err)

	_, err = s.MintStablecoin(ctx, payer, payer.PublicKey(), 1_000_000)
	require.NoError(t, err)
	_, err = s.BurnToken(ctx, payer, 400_000)
	require.NoError(t, err)

	after, err := s.GetBalance(ctx, payer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, before+600_000, after)

	mint, err := s.GetMint(ctx)
	require.NoError(t, err)
	require.NotNil(t, mint.MintAuthority)
	assert.Equal(t, s.MintAddress(), *mint.MintAuthority)

	md, err := s.GetMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, testParams.Name, md.Name())
	assert.False(t, md.IsMutable)

	total, err := s.GetTotalBalance(ctx, payer.PublicKey())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, after)
}
