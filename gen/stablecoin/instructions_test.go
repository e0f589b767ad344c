package stablecoin

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminators(t *testing.T) {
	assert.Equal(t, [8]byte{38, 209, 150, 50, 190, 117, 16, 54}, Instruction_InitializeToken)
	assert.Equal(t, [8]byte{196, 235, 215, 70, 211, 5, 214, 238}, Instruction_MintStablecoin)
	assert.Equal(t, [8]byte{185, 165, 216, 246, 144, 31, 70, 74}, Instruction_BurnToken)
}

func TestInitializeTokenInstruction(t *testing.T) {
	keys := newKeys(7)
	params := InitTokenParams{Name: "A", Symbol: "B", Uri: "C", Decimals: 6}

	ix, err := NewInitializeTokenInstruction(params, keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], ProgramID)
	require.NoError(t, err)
	assert.Equal(t, ProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	want := append(Instruction_InitializeToken[:], []byte{
		1, 0, 0, 0, 'A',
		1, 0, 0, 0, 'B',
		1, 0, 0, 0, 'C',
		6,
	}...)
	assert.Equal(t, want, data)

	metas := ix.Accounts()
	require.Len(t, metas, InitializeTokenAccountsLen)
	for i, meta := range metas {
		assert.Equal(t, keys[i], meta.PublicKey, "account %d", i)
	}
	assert.True(t, metas[0].IsSigner)
	assert.True(t, metas[0].IsWritable)
	assert.False(t, metas[1].IsSigner, "the mint signs by derivation, not in the transaction")
	assert.True(t, metas[1].IsWritable)
	assert.True(t, metas[2].IsWritable)

	decoded, err := DecodeInstruction(data)
	require.NoError(t, err)
	require.IsType(t, &InitializeToken{}, decoded)
	assert.Equal(t, params, decoded.(*InitializeToken).Metadata)
}

func TestMintAndBurnInstructions(t *testing.T) {
	keys := newKeys(8)

	mintIx, err := NewMintStablecoinInstruction(1_000_000, keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], keys[7], ProgramID)
	require.NoError(t, err)
	require.Len(t, mintIx.Accounts(), MintStablecoinAccountsLen)
	assert.False(t, mintIx.Accounts()[1].IsWritable, "recipient is read only")
	assert.True(t, mintIx.Accounts()[3].IsWritable)

	data, err := mintIx.Data()
	require.NoError(t, err)
	assert.Equal(t, append(Instruction_MintStablecoin[:], 0x40, 0x42, 0x0f, 0, 0, 0, 0, 0), data)

	decoded, err := DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, &MintStablecoin{Quantity: 1_000_000}, decoded)

	burnIx, err := NewBurnTokenInstruction(400_000, keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], ProgramID)
	require.NoError(t, err)
	require.Len(t, burnIx.Accounts(), BurnTokenAccountsLen)
	assert.True(t, burnIx.Accounts()[0].IsSigner)

	data, err = burnIx.Data()
	require.NoError(t, err)
	decoded, err = DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, &BurnToken{Quantity: 400_000}, decoded)
}

func TestDecodeInstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrInstructionTooShort},
		{"short", []byte{1, 2, 3}, ErrInstructionTooShort},
		{"unknown", []byte{0, 0, 0, 0, 0, 0, 0, 0}, ErrUnknownInstruction},
		{"truncated quantity", append(Instruction_BurnToken[:], 1, 2), ErrInvalidInstructionData},
		{"trailing", append(Instruction_MintStablecoin[:], 1, 0, 0, 0, 0, 0, 0, 0, 9), ErrTrailingInstructionData},
		{"truncated params", append(Instruction_InitializeToken[:], 5, 0, 0, 0, 'a'), ErrInvalidInstructionData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInstruction(append([]byte(nil), tt.data...))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func newKeys(n int) []solanago.PublicKey {
	keys := make([]solanago.PublicKey, n)
	for i := range keys {
		keys[i] = solanago.NewWallet().PublicKey()
	}
	return keys
}
