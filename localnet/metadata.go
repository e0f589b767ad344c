package localnet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/stablecoin-go/gen/metaplex"
	"github.com/krazyTry/stablecoin-go/program"
)

type metadataProgram struct {
	*invocation
}

var _ program.MetadataStore = (*metadataProgram)(nil)

func (m *metadataProgram) CreateMetadataAccountsV3(
	accounts metaplex.CreateMetadataAccountV3Accounts,
	args metaplex.CreateMetadataAccountArgsV3,
	seeds ...program.SignerSeeds,
) error {
	expected, _, err := metaplex.DeriveMetadataAddress(accounts.Mint)
	if err != nil {
		return program.ErrDerivedKeyInvalid.WithAccount(accounts.Metadata).Withf("%v", err)
	}
	if !expected.Equals(accounts.Metadata) {
		return program.ErrDerivedKeyInvalid.WithAccount(accounts.Metadata).Withf("expected %s", expected)
	}
	if err := validateDataV2(args.Data); err != nil {
		return err
	}

	ledger := &tokenProgram{m.invocation}
	mint, err := ledger.mintAccount(accounts.Mint)
	if err != nil {
		return err
	}
	if mint.Mint.MintAuthority == nil || !mint.Mint.MintAuthority.Equals(accounts.MintAuthority) {
		return program.ErrInvalidMintAuthority.WithAccount(accounts.MintAuthority)
	}
	if err := m.requireSigner(accounts.MintAuthority, seeds...); err != nil {
		return err
	}
	if err := m.requireSigner(accounts.Payer); err != nil {
		return err
	}
	if accounts.UpdateAuthorityIsSigner {
		if err := m.requireSigner(accounts.UpdateAuthority, seeds...); err != nil {
			return err
		}
	}

	acc, err := m.createAccount(accounts.Payer, accounts.Metadata, metaplex.MaxMetadataLen, metaplex.ProgramID)
	if err != nil {
		return err
	}
	data, err := metaplex.EncodeMetadata(metaplex.NewMetadata(accounts.Mint, accounts.UpdateAuthority, args))
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	acc.Data = data
	m.state.put(accounts.Metadata, acc)
	return nil
}

func validateDataV2(data metaplex.DataV2) error {
	switch {
	case len(data.Name) > metaplex.MaxNameLength:
		return program.ErrNameTooLong.Withf("name is %d bytes, limit %d", len(data.Name), metaplex.MaxNameLength)
	case len(data.Symbol) > metaplex.MaxSymbolLength:
		return program.ErrSymbolTooLong.Withf("symbol is %d bytes, limit %d", len(data.Symbol), metaplex.MaxSymbolLength)
	case len(data.Uri) > metaplex.MaxURILength:
		return program.ErrUriTooLong.Withf("uri is %d bytes, limit %d", len(data.Uri), metaplex.MaxURILength)
	case data.SellerFeeBasisPoints > metaplex.MaxSellerFeeBasisPoints:
		return program.ErrInvalidBasisPoints
	case data.Creators != nil && len(*data.Creators) > metaplex.MaxCreatorLimit:
		return program.ErrCreatorsTooLong
	}
	return nil
}

// processMetadata runs CreateMetadataAccountV3 sent straight to the
// token-metadata program. Only transaction signatures count here.
func processMetadata(env program.Env, metas []*solana.AccountMeta, data []byte) error {
	args, err := metaplex.DecodeCreateMetadataAccountV3(data)
	if err != nil {
		return fmt.Errorf("%w: %v", program.ErrInstructionDidNotDeserialize, err)
	}
	if len(metas) < 6 {
		return program.ErrNotEnoughAccountKeys.Withf("create_metadata_account_v3 needs 6 accounts, got %d", len(metas))
	}
	accounts := metaplex.CreateMetadataAccountV3Accounts{
		Metadata:                metas[0].PublicKey,
		Mint:                    metas[1].PublicKey,
		MintAuthority:           metas[2].PublicKey,
		Payer:                   metas[3].PublicKey,
		UpdateAuthority:         metas[4].PublicKey,
		SystemProgram:           metas[5].PublicKey,
		UpdateAuthorityIsSigner: metas[4].IsSigner,
	}
	if len(metas) > 6 {
		accounts.Rent = metas[6].PublicKey
	}
	return env.Metadata().CreateMetadataAccountsV3(accounts, *args)
}
