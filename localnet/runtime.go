// Package localnet is an in-memory host for the stablecoin program. It
// executes instructions against a local account bank with the same
// transaction semantics a validator gives: all writes of a transaction
// commit together or not at all.
package localnet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/krazyTry/stablecoin-go/gen/metaplex"
	"github.com/krazyTry/stablecoin-go/program"
)

var (
	ErrUnknownProgram   = errors.New("instruction addressed to unregistered program")
	ErrAccountNotFound  = errors.New("account not found")
	ErrEmptyTransaction = errors.New("transaction has no instructions")
)

// Processor executes instructions addressed to one program.
// *program.Program satisfies it.
type Processor interface {
	Process(env program.Env, accounts []*solana.AccountMeta, data []byte) error
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(env program.Env, accounts []*solana.AccountMeta, data []byte) error

func (f ProcessorFunc) Process(env program.Env, accounts []*solana.AccountMeta, data []byte) error {
	return f(env, accounts, data)
}

// Result is what a processed transaction leaves behind.
type Result struct {
	Logs []string
}

type Runtime struct {
	bank   *bank
	locks  *lockTable
	logger *zap.Logger

	mu       sync.RWMutex
	programs map[solana.PublicKey]Processor
}

type Option func(*Runtime)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New returns an empty runtime. The token-metadata program is registered
// so it can be invoked directly as well as through CPI.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		bank:     newBank(),
		locks:    newLockTable(),
		logger:   zap.NewNop(),
		programs: make(map[solana.PublicKey]Processor),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("localnet")
	r.programs[metaplex.ProgramID] = ProcessorFunc(processMetadata)
	return r
}

// Register deploys processor at programID, replacing any previous one.
func (r *Runtime) Register(programID solana.PublicKey, processor Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[programID] = processor
}

func (r *Runtime) processor(programID solana.PublicKey) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.programs[programID]
	return p, ok
}

// Airdrop credits lamports to key, creating a system account if needed.
func (r *Runtime) Airdrop(ctx context.Context, key solana.PublicKey, lamports uint64) error {
	release, err := r.locks.acquire(ctx, []solana.PublicKey{key}, nil)
	if err != nil {
		return err
	}
	defer release()

	state := newOverlay(r.bank)
	acc, ok := state.get(key)
	if !ok {
		acc = &Account{Owner: solana.SystemProgramID}
	}
	acc.Lamports += lamports
	state.put(key, acc)
	state.commit()
	return nil
}

// Send executes instructions as one transaction signed by signers.
// Logs are returned even when the transaction fails.
func (r *Runtime) Send(ctx context.Context, instructions []solana.Instruction, signers ...*solana.Wallet) (*Result, error) {
	if len(instructions) == 0 {
		return nil, ErrEmptyTransaction
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	signed := make(map[solana.PublicKey]bool, len(signers))
	for _, s := range signers {
		signed[s.PublicKey()] = true
	}

	var writable, readonly []solana.PublicKey
	for _, ix := range instructions {
		for _, meta := range ix.Accounts() {
			if meta.IsSigner && !signed[meta.PublicKey] {
				return nil, program.ErrMissingRequiredSignature.WithAccount(meta.PublicKey)
			}
			if meta.IsWritable {
				writable = append(writable, meta.PublicKey)
			} else {
				readonly = append(readonly, meta.PublicKey)
			}
		}
	}

	release, err := r.locks.acquire(ctx, writable, readonly)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &Result{}
	state := newOverlay(r.bank)
	for i, ix := range instructions {
		if err := r.execute(state, signed, ix, result); err != nil {
			r.logger.Debug("transaction rolled back", zap.Int("instruction", i), zap.Error(err))
			return result, fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	state.commit()
	return result, nil
}

func (r *Runtime) execute(state *overlay, signed map[solana.PublicKey]bool, ix solana.Instruction, result *Result) error {
	programID := ix.ProgramID()
	processor, ok := r.processor(programID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProgram, programID)
	}
	data, err := ix.Data()
	if err != nil {
		return err
	}

	env := &invocation{
		programID: programID,
		state:     state,
		signers:   signed,
		logs:      &result.Logs,
	}
	env.logf("Program %s invoke [1]", programID)
	err = processor.Process(env, ix.Accounts(), data)
	if err == nil {
		err = checkWrites(ix.Accounts(), state.drain())
	}
	if err != nil {
		env.logf("Program %s failed: %v", programID, err)
		return err
	}
	env.logf("Program %s success", programID)
	return nil
}

// checkWrites fails unless every written key is marked writable in metas,
// which is also what locked it for this transaction.
func checkWrites(metas []*solana.AccountMeta, written []solana.PublicKey) error {
	writable := make(map[solana.PublicKey]bool, len(metas))
	for _, meta := range metas {
		if meta.IsWritable {
			writable[meta.PublicKey] = true
		}
	}
	for _, key := range written {
		if !writable[key] {
			return program.ErrReadonlyDataModified.WithAccount(key)
		}
	}
	return nil
}

// Exists reports whether key holds a committed account.
func (r *Runtime) Exists(key solana.PublicKey) bool {
	_, ok := r.bank.get(key)
	return ok
}

// Lamports returns the committed balance of key, zero if absent.
func (r *Runtime) Lamports(key solana.PublicKey) uint64 {
	acc, ok := r.bank.get(key)
	if !ok {
		return 0
	}
	return acc.Lamports
}

// Account returns a copy of the committed account at key.
func (r *Runtime) Account(key solana.PublicKey) (*Account, error) {
	acc, ok := r.bank.get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	return acc, nil
}

// Metadata decodes the committed metadata account at key.
func (r *Runtime) Metadata(key solana.PublicKey) (*metaplex.Metadata, error) {
	acc, err := r.Account(key)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(metaplex.ProgramID) || acc.Data == nil {
		return nil, metaplex.ErrNotMetadataAccount
	}
	return metaplex.DecodeMetadata(acc.Data)
}
