package program

import (
	"errors"
	"strconv"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
)

func TestDeriveAuthority(t *testing.T) {
	label := []byte(stablecoingen.MintSeed)

	authority, err := DeriveAuthority(label, stablecoingen.ProgramID)
	require.NoError(t, err)

	address, bump, err := solanago.FindProgramAddress([][]byte{label}, stablecoingen.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, address, authority.Address)
	assert.Equal(t, bump, authority.Bump)

	recreated, err := solanago.CreateProgramAddress([][]byte{label, {authority.Bump}}, stablecoingen.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, authority.Address, recreated)

	again, err := DeriveAuthority(label, stablecoingen.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, authority, again)

	other, err := DeriveAuthority(label, solanago.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.NotEqual(t, authority.Address, other.Address)
}

func TestDeriveAuthorityLabelLength(t *testing.T) {
	_, err := DeriveAuthority(nil, stablecoingen.ProgramID)
	assert.ErrorIs(t, err, ErrBumpNotFound)

	_, err = DeriveAuthority(make([]byte, MaxSeedLength+1), stablecoingen.ProgramID)
	assert.ErrorIs(t, err, ErrBumpNotFound)

	_, err = DeriveAuthority(make([]byte, MaxSeedLength), stablecoingen.ProgramID)
	assert.NoError(t, err)
}

func TestDeriveAuthorityExhausted(t *testing.T) {
	saved := findProgramAddress
	t.Cleanup(func() { findProgramAddress = saved })
	findProgramAddress = func([][]byte, solanago.PublicKey) (solanago.PublicKey, uint8, error) {
		return solanago.PublicKey{}, 0, errors.New("unable to find a valid program address")
	}

	_, err := DeriveAuthority([]byte(stablecoingen.MintSeed), stablecoingen.ProgramID)
	require.ErrorIs(t, err, ErrBumpNotFound)
	assert.Equal(t, ClassDerivation, ClassOf(err))
	assert.False(t, Retryable(err))

	_, err = New(stablecoingen.ProgramID)
	assert.ErrorIs(t, err, ErrBumpNotFound)
}

func TestSignerSeeds(t *testing.T) {
	authority, err := DeriveAuthority([]byte(stablecoingen.MintSeed), stablecoingen.ProgramID)
	require.NoError(t, err)
	signer := authority.Signer()

	assert.Equal(t, [][]byte{[]byte("stablecoin_mint"), {authority.Bump}}, signer.Seeds())
	assert.True(t, signer.Signs(stablecoingen.ProgramID, authority.Address))

	// Seeds only sign when presented by the program that owns them.
	assert.False(t, signer.Signs(solanago.NewWallet().PublicKey(), authority.Address))
	assert.False(t, signer.Signs(stablecoingen.ProgramID, solanago.NewWallet().PublicKey()))

	wrongBump := SignerSeeds{Label: signer.Label, Bump: signer.Bump - 1}
	assert.False(t, wrongBump.Signs(stablecoingen.ProgramID, authority.Address))

	assert.True(t, SignedBy(stablecoingen.ProgramID, authority.Address, wrongBump, signer))
	assert.False(t, SignedBy(stablecoingen.ProgramID, authority.Address))
	assert.Equal(t, "stablecoin_mint#"+strconv.Itoa(int(authority.Bump)), signer.String())
}

func TestAuthorityCheck(t *testing.T) {
	authority, err := DeriveAuthority([]byte(stablecoingen.MintSeed), stablecoingen.ProgramID)
	require.NoError(t, err)

	assert.NoError(t, authority.Check(authority.Address))

	supplied := solanago.NewWallet().PublicKey()
	err = authority.Check(supplied)
	require.ErrorIs(t, err, ErrConstraintSeeds)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, supplied, e.Account)
}
