package program

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/stablecoin-go/gen/metaplex"
	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
)

// Canonical collaborator program IDs.
var (
	SystemProgramID          = solanago.SystemProgramID
	TokenProgramID           = solanago.TokenProgramID
	AssociatedTokenProgramID = solanago.SPLAssociatedTokenAccountProgramID
	MetadataProgramID        = metaplex.ProgramID
	RentSysvarID             = solanago.SysVarRentPubkey
)

// Program is the stablecoin program bound to one deployment address.
type Program struct {
	id        solanago.PublicKey
	authority Authority
	metadata  solanago.PublicKey
	logger    *zap.Logger
}

type Option func(*Program)

// WithLogger sets the logger used for program events.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Program) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New derives the mint authority of programID. A failed derivation is
// returned as ErrBumpNotFound.
func New(programID solanago.PublicKey, opts ...Option) (*Program, error) {
	p := &Program{
		id:     programID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	authority, err := DeriveAuthority([]byte(stablecoingen.MintSeed), programID)
	if err != nil {
		return nil, err
	}
	metadata, _, err := metaplex.DeriveMetadataAddress(authority.Address)
	if err != nil {
		return nil, ErrBumpNotFound.Withf("derive metadata address: %v", err)
	}

	p.authority = authority
	p.metadata = metadata
	p.logger = p.logger.Named("stablecoin").With(zap.Stringer("program", programID))
	return p, nil
}

func (p *Program) ID() solanago.PublicKey { return p.id }

// Authority returns the derived mint.
func (p *Program) Authority() Authority { return p.authority }

// MetadataAddress returns the metadata PDA of the derived mint.
func (p *Program) MetadataAddress() solanago.PublicKey { return p.metadata }

// InitializeTokenAccounts are the accounts of InitializeToken, in wire order.
type InitializeTokenAccounts struct {
	User                 solanago.PublicKey
	TokenMint            solanago.PublicKey
	Metadata             solanago.PublicKey
	TokenMetadataProgram solanago.PublicKey
	SystemProgram        solanago.PublicKey
	TokenProgram         solanago.PublicKey
	Rent                 solanago.PublicKey
}

// MintStablecoinAccounts are the accounts of MintStablecoin, in wire order.
type MintStablecoinAccounts struct {
	User                   solanago.PublicKey
	Recipient              solanago.PublicKey
	TokenMint              solanago.PublicKey
	Destination            solanago.PublicKey
	TokenProgram           solanago.PublicKey
	AssociatedTokenProgram solanago.PublicKey
	SystemProgram          solanago.PublicKey
	Rent                   solanago.PublicKey
}

// BurnTokenAccounts are the accounts of BurnToken, in wire order.
type BurnTokenAccounts struct {
	User                   solanago.PublicKey
	TokenMint              solanago.PublicKey
	Destination            solanago.PublicKey
	TokenProgram           solanago.PublicKey
	AssociatedTokenProgram solanago.PublicKey
	SystemProgram          solanago.PublicKey
}

func checkProgram(got, want solanago.PublicKey) error {
	if !got.Equals(want) {
		return ErrInvalidProgramID.WithAccount(got).Withf("expected %s", want)
	}
	return nil
}

func checkSigner(env Env, key solanago.PublicKey) error {
	if !env.IsSigner(key) {
		return ErrAccountNotSigner.WithAccount(key)
	}
	return nil
}

// checkAssociated fails unless account is the associated token account of owner for mint.
func checkAssociated(account, owner, mint solanago.PublicKey) error {
	expected, _, err := solanago.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return ErrConstraintAssociated.WithAccount(account).Withf("derive associated address: %v", err)
	}
	if !account.Equals(expected) {
		return ErrConstraintAssociated.WithAccount(account).Withf("expected %s", expected)
	}
	return nil
}
