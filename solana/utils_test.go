package solana

import (
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsedTokenAmount(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()

	raw := []byte(`{
		"parsed": {
			"info": {
				"isNative": false,
				"mint": "` + mint.String() + `",
				"owner": "5HfLhj117ucm2FoqjfcSeZMf91CuJbzxZ9BeRRpZWN6m",
				"state": "initialized",
				"tokenAmount": {"amount": "600000", "decimals": 6, "uiAmount": 0.6, "uiAmountString": "0.6"}
			},
			"type": "account"
		},
		"program": "spl-token",
		"space": 165
	}`)

	assert.Equal(t, uint64(600000), parsedTokenAmount(raw, mint))
	assert.Zero(t, parsedTokenAmount(raw, other))
	assert.Zero(t, parsedTokenAmount([]byte(`{}`), mint))
}

func TestSigners(t *testing.T) {
	payer := solana.NewWallet()
	owner := solana.NewWallet()
	sign := Signers(payer, owner)

	require.NotNil(t, sign(owner.PublicKey()))
	assert.Equal(t, owner.PrivateKey, *sign(owner.PublicKey()))
	assert.Nil(t, sign(solana.NewWallet().PublicKey()))
}

func TestDecodeTokenAccount(t *testing.T) {
	address := solana.NewWallet().PublicKey()
	raw := token.Account{
		Mint:   solana.NewWallet().PublicKey(),
		Owner:  solana.NewWallet().PublicKey(),
		Amount: 42,
		State:  token.Initialized,
	}
	data, err := bin.MarshalBin(raw)
	require.NoError(t, err)

	got, err := DecodeTokenAccount(address, data)
	require.NoError(t, err)
	assert.Equal(t, address, got.Address)
	assert.Equal(t, raw.Mint, got.Mint)
	assert.Equal(t, raw.Owner, got.Owner)
	assert.Equal(t, uint64(42), got.Amount)
	assert.False(t, got.IsFrozen)

	raw.State = token.Uninitialized
	data, err = bin.MarshalBin(raw)
	require.NoError(t, err)
	_, err = DecodeTokenAccount(address, data)
	assert.ErrorIs(t, err, ErrNotTokenAccount)
}

func TestDecodeMint(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	raw := token.Mint{
		MintAuthority: &authority,
		Supply:        1_000_000,
		Decimals:      6,
		IsInitialized: true,
	}
	data, err := bin.MarshalBin(raw)
	require.NoError(t, err)

	address := solana.NewWallet().PublicKey()
	got, err := DecodeMint(address, data)
	require.NoError(t, err)
	assert.Equal(t, address, got.Address)
	assert.Equal(t, uint64(1_000_000), got.Supply)
	assert.Equal(t, uint8(6), got.Decimals)
	require.NotNil(t, got.MintAuthority)
	assert.Equal(t, authority, *got.MintAuthority)
}
