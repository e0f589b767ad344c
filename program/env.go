package program

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/krazyTry/stablecoin-go/gen/metaplex"
)

// Env is what the host runtime exposes to one instruction execution.
// Every write made through it commits or aborts with the instruction.
type Env interface {
	// ProgramID is the program being executed; CPIs are issued as this program.
	ProgramID() solanago.PublicKey
	// IsSigner reports whether key signed the enclosing transaction.
	IsSigner(key solanago.PublicKey) bool
	// Exists reports whether an account is allocated at key.
	Exists(key solanago.PublicKey) bool
	// Log appends a program log line.
	Log(msg string)

	Ledger() TokenLedger
	Associated() BalanceResolver
	Metadata() MetadataStore
}

// TokenLedger is the slice of the SPL token program the stablecoin uses.
// Calls carrying seeds are signed by derivation.
type TokenLedger interface {
	// CreateMint allocates mint (paid by payer) and initializes it with the
	// given decimals and mint authority. The new account must sign, either
	// as a transaction signer or through seeds.
	CreateMint(payer, mint solanago.PublicKey, decimals uint8, authority solanago.PublicKey, seeds ...SignerSeeds) error
	// MintTo raises supply and destination's balance by amount.
	MintTo(mint, destination, authority solanago.PublicKey, amount uint64, seeds ...SignerSeeds) error
	// Burn lowers supply and source's balance by amount.
	Burn(source, mint, owner solanago.PublicKey, amount uint64, seeds ...SignerSeeds) error

	GetMint(mint solanago.PublicKey) (*token.Mint, error)
	GetAccount(account solanago.PublicKey) (*token.Account, error)
}

// BalanceResolver is the associated-token-account program.
type BalanceResolver interface {
	// ResolveOrCreate returns the associated token account of owner for
	// mint, creating it at payer's expense when absent.
	ResolveOrCreate(payer, owner, mint solanago.PublicKey) (solanago.PublicKey, error)
}

// MetadataStore is the token-metadata program.
type MetadataStore interface {
	CreateMetadataAccountsV3(accounts metaplex.CreateMetadataAccountV3Accounts, args metaplex.CreateMetadataAccountArgsV3, seeds ...SignerSeeds) error
}
