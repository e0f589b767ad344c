package program

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/stablecoin-go/gen/metaplex"
	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
)

// recordingEnv fails the test on any capability call; it is used for paths
// that must be rejected before a CPI is issued.
type recordingEnv struct {
	t         *testing.T
	programID solanago.PublicKey
	signers   map[solanago.PublicKey]bool
	logs      []string
}

func (e *recordingEnv) ProgramID() solanago.PublicKey { return e.programID }
func (e *recordingEnv) IsSigner(key solanago.PublicKey) bool { return e.signers[key] }
func (e *recordingEnv) Exists(key solanago.PublicKey) bool { return false }
func (e *recordingEnv) Log(msg string) { e.logs = append(e.logs, msg) }
func (e *recordingEnv) Ledger() TokenLedger { return e }
func (e *recordingEnv) Associated() BalanceResolver { return e }
func (e *recordingEnv) Metadata() MetadataStore { return e }

func (e *recordingEnv) GetMint(solanago.PublicKey) (*token.Mint, error) {
	e.t.Fatal("unexpected GetMint")
	return nil, nil
}

func (e *recordingEnv) GetAccount(solanago.PublicKey) (*token.Account, error) {
	e.t.Fatal("unexpected GetAccount")
	return nil, nil
}

func (e *recordingEnv) CreateMint(solanago.PublicKey, solanago.PublicKey, uint8, solanago.PublicKey, ...SignerSeeds) error {
	e.t.Fatal("unexpected CreateMint")
	return nil
}

func (e *recordingEnv) MintTo(solanago.PublicKey, solanago.PublicKey, solanago.PublicKey, uint64, ...SignerSeeds) error {
	e.t.Fatal("unexpected MintTo")
	return nil
}

func (e *recordingEnv) Burn(solanago.PublicKey, solanago.PublicKey, solanago.PublicKey, uint64, ...SignerSeeds) error {
	e.t.Fatal("unexpected Burn")
	return nil
}

func (e *recordingEnv) ResolveOrCreate(solanago.PublicKey, solanago.PublicKey, solanago.PublicKey) (solanago.PublicKey, error) {
	e.t.Fatal("unexpected ResolveOrCreate")
	return solanago.PublicKey{}, nil
}

func (e *recordingEnv) CreateMetadataAccountsV3(metaplex.CreateMetadataAccountV3Accounts, metaplex.CreateMetadataAccountArgsV3, ...SignerSeeds) error {
	e.t.Fatal("unexpected CreateMetadataAccountsV3")
	return nil
}

func newTestProgram(t *testing.T) (*Program, *recordingEnv, solanago.PublicKey) {
	t.Helper()
	p, err := New(stablecoingen.ProgramID)
	require.NoError(t, err)
	user := solanago.NewWallet().PublicKey()
	env := &recordingEnv{
		t:         t,
		programID: stablecoingen.ProgramID,
		signers:   map[solanago.PublicKey]bool{user: true},
	}
	return p, env, user
}

func TestNew(t *testing.T) {
	p, err := New(stablecoingen.ProgramID)
	require.NoError(t, err)
	assert.Equal(t, stablecoingen.ProgramID, p.ID())

	metadata, _, err := metaplex.DeriveMetadataAddress(p.Authority().Address)
	require.NoError(t, err)
	assert.Equal(t, metadata, p.MetadataAddress())
}

func TestProcessDispatchErrors(t *testing.T) {
	p, env, user := newTestProgram(t)

	err := p.Process(env, nil, []byte{1, 2})
	assert.ErrorIs(t, err, ErrInstructionFallbackNotFound)

	err = p.Process(env, nil, make([]byte, 8))
	assert.ErrorIs(t, err, ErrInstructionFallbackNotFound)

	err = p.Process(env, nil, append(stablecoingen.Instruction_MintStablecoin[:], 1))
	assert.ErrorIs(t, err, ErrInstructionDidNotDeserialize)

	ix, err := stablecoingen.NewBurnTokenInstruction(1, user, p.Authority().Address, user, TokenProgramID, AssociatedTokenProgramID, SystemProgramID, p.ID())
	require.NoError(t, err)
	data, err := ix.Data()
	require.NoError(t, err)
	err = p.Process(env, ix.Accounts()[:3], data)
	assert.ErrorIs(t, err, ErrNotEnoughAccountKeys)

	env.programID = solanago.NewWallet().PublicKey()
	err = p.Process(env, ix.Accounts(), data)
	assert.ErrorIs(t, err, ErrInvalidProgramID)
}

func TestInitializeTokenPreconditions(t *testing.T) {
	p, env, user := newTestProgram(t)
	valid := InitializeTokenAccounts{
		User:                 user,
		TokenMint:            p.Authority().Address,
		Metadata:             p.MetadataAddress(),
		TokenMetadataProgram: MetadataProgramID,
		SystemProgram:        SystemProgramID,
		TokenProgram:         TokenProgramID,
		Rent:                 RentSysvarID,
	}
	params := stablecoingen.InitTokenParams{Name: "EtherFuse USD", Symbol: "EFUSD", Uri: "https://example.com", Decimals: 6}
	stranger := solanago.NewWallet().PublicKey()

	tests := []struct {
		name   string
		mutate func(a *InitializeTokenAccounts)
		want   *Error
	}{
		{"user did not sign", func(a *InitializeTokenAccounts) { a.User = stranger }, ErrAccountNotSigner},
		{"mint not derived", func(a *InitializeTokenAccounts) { a.TokenMint = stranger }, ErrConstraintSeeds},
		{"fake metadata program", func(a *InitializeTokenAccounts) { a.TokenMetadataProgram = stranger }, ErrInvalidProgramID},
		{"fake system program", func(a *InitializeTokenAccounts) { a.SystemProgram = stranger }, ErrInvalidProgramID},
		{"fake token program", func(a *InitializeTokenAccounts) { a.TokenProgram = stranger }, ErrInvalidProgramID},
		{"fake rent sysvar", func(a *InitializeTokenAccounts) { a.Rent = stranger }, ErrInvalidProgramID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := valid
			tt.mutate(&accounts)
			err := p.InitializeToken(env, accounts, params)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, ClassPrecondition, ClassOf(err))
		})
	}
}

func TestMintAndBurnPreconditions(t *testing.T) {
	p, env, user := newTestProgram(t)
	stranger := solanago.NewWallet().PublicKey()

	err := p.MintStablecoin(env, MintStablecoinAccounts{
		User:                   stranger,
		Recipient:              user,
		TokenMint:              p.Authority().Address,
		TokenProgram:           TokenProgramID,
		AssociatedTokenProgram: AssociatedTokenProgramID,
		SystemProgram:          SystemProgramID,
		Rent:                   RentSysvarID,
	}, 1)
	assert.ErrorIs(t, err, ErrAccountNotSigner)

	err = p.MintStablecoin(env, MintStablecoinAccounts{
		User:                   user,
		Recipient:              user,
		TokenMint:              stranger,
		TokenProgram:           TokenProgramID,
		AssociatedTokenProgram: AssociatedTokenProgramID,
		SystemProgram:          SystemProgramID,
		Rent:                   RentSysvarID,
	}, 1)
	assert.ErrorIs(t, err, ErrConstraintSeeds)

	err = p.BurnToken(env, BurnTokenAccounts{
		User:                   user,
		TokenMint:              p.Authority().Address,
		TokenProgram:           TokenProgramID,
		AssociatedTokenProgram: stranger,
		SystemProgram:          SystemProgramID,
	}, 1)
	assert.ErrorIs(t, err, ErrInvalidProgramID)
}

func TestCheckAssociated(t *testing.T) {
	owner := solanago.NewWallet().PublicKey()
	mint := solanago.NewWallet().PublicKey()
	ata, _, err := solanago.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	assert.NoError(t, checkAssociated(ata, owner, mint))
	assert.ErrorIs(t, checkAssociated(ata, solanago.NewWallet().PublicKey(), mint), ErrConstraintAssociated)
}
