package program

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/krazyTry/stablecoin-go/gen/metaplex"
	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
)

// InitializeToken creates the mint at the derived address with itself as
// mint authority, then attaches immutable metadata through the
// token-metadata program. Both CPIs are signed with the derived seeds.
//
// The host commits mint and metadata together or not at all, so a mint
// without metadata is never left behind by a single call.
func (p *Program) InitializeToken(env Env, accounts InitializeTokenAccounts, params stablecoingen.InitTokenParams) error {
	if err := checkSigner(env, accounts.User); err != nil {
		return err
	}
	if err := p.authority.Check(accounts.TokenMint); err != nil {
		return err
	}
	if err := checkProgram(accounts.TokenMetadataProgram, MetadataProgramID); err != nil {
		return err
	}
	if err := checkProgram(accounts.SystemProgram, SystemProgramID); err != nil {
		return err
	}
	if err := checkProgram(accounts.TokenProgram, TokenProgramID); err != nil {
		return err
	}
	if err := checkProgram(accounts.Rent, RentSysvarID); err != nil {
		return err
	}
	if env.Exists(accounts.TokenMint) {
		return ErrAccountAlreadyInUse.WithAccount(accounts.TokenMint).Withf("token mint already initialized")
	}

	signer := p.authority.Signer()

	// Decimals go through unchecked; the token program owns that rule.
	if err := env.Ledger().CreateMint(accounts.User, accounts.TokenMint, params.Decimals, accounts.TokenMint, signer); err != nil {
		return fmt.Errorf("create mint: %w", err)
	}

	args := metaplex.CreateMetadataAccountArgsV3{
		Data: metaplex.DataV2{
			Name:                 params.Name,
			Symbol:               params.Symbol,
			Uri:                  params.Uri,
			SellerFeeBasisPoints: 0,
			Creators:             nil,
			Collection:           nil,
			Uses:                 nil,
		},
		IsMutable:         false,
		CollectionDetails: nil,
	}
	cpiAccounts := metaplex.CreateMetadataAccountV3Accounts{
		Metadata:                accounts.Metadata,
		Mint:                    accounts.TokenMint,
		MintAuthority:           accounts.TokenMint,
		Payer:                   accounts.User,
		UpdateAuthority:         accounts.TokenMint,
		SystemProgram:           accounts.SystemProgram,
		Rent:                    accounts.Rent,
		UpdateAuthorityIsSigner: true,
	}
	if err := env.Metadata().CreateMetadataAccountsV3(cpiAccounts, args, signer); err != nil {
		return fmt.Errorf("create metadata: %w", err)
	}

	env.Log("Token mint created successfully")
	p.logger.Info("token mint initialized",
		zap.Stringer("mint", accounts.TokenMint),
		zap.Stringer("metadata", accounts.Metadata),
		zap.Stringer("payer", accounts.User),
		zap.String("symbol", params.Symbol),
		zap.Uint8("decimals", params.Decimals),
	)
	return nil
}
