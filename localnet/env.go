package localnet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/krazyTry/stablecoin-go/program"
)

// invocation is the program.Env handed to one top-level instruction.
// Capabilities reached through it run as CPIs of programID.
type invocation struct {
	programID solana.PublicKey
	state     *overlay
	signers   map[solana.PublicKey]bool
	logs      *[]string
}

var _ program.Env = (*invocation)(nil)

func (e *invocation) ProgramID() solana.PublicKey { return e.programID }

func (e *invocation) IsSigner(key solana.PublicKey) bool { return e.signers[key] }

func (e *invocation) Exists(key solana.PublicKey) bool { return e.state.exists(key) }

func (e *invocation) Log(msg string) {
	*e.logs = append(*e.logs, "Program log: "+msg)
}

func (e *invocation) logf(format string, args ...interface{}) {
	*e.logs = append(*e.logs, fmt.Sprintf(format, args...))
}

func (e *invocation) Ledger() program.TokenLedger { return &tokenProgram{e} }

func (e *invocation) Associated() program.BalanceResolver { return &associatedTokenProgram{e} }

func (e *invocation) Metadata() program.MetadataStore { return &metadataProgram{e} }

// requireSigner passes when key signed the transaction or when seeds,
// invoked by the calling program, derive key.
func (e *invocation) requireSigner(key solana.PublicKey, seeds ...program.SignerSeeds) error {
	if e.signers[key] || program.SignedBy(e.programID, key, seeds...) {
		return nil
	}
	return program.ErrMissingRequiredSignature.WithAccount(key)
}
