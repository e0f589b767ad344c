package localnet

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Account sizes as allocated by the token program.
const (
	MintSize         = token.MINT_SIZE
	TokenAccountSize = 165
)

// Account is one entry of the bank. Exactly one of Mint, Token and Data is
// set for program-owned accounts; wallets carry lamports only.
type Account struct {
	Owner    solana.PublicKey
	Lamports uint64
	Space    uint64

	Mint  *token.Mint
	Token *token.Account
	Data  []byte
}

func (a *Account) clone() *Account {
	out := *a
	if a.Mint != nil {
		mint := *a.Mint
		if a.Mint.MintAuthority != nil {
			authority := *a.Mint.MintAuthority
			mint.MintAuthority = &authority
		}
		if a.Mint.FreezeAuthority != nil {
			freeze := *a.Mint.FreezeAuthority
			mint.FreezeAuthority = &freeze
		}
		out.Mint = &mint
	}
	if a.Token != nil {
		tokenAccount := *a.Token
		out.Token = &tokenAccount
	}
	if a.Data != nil {
		out.Data = append([]byte(nil), a.Data...)
	}
	return &out
}

// RentExempt returns the lamports an account of space bytes must hold.
func RentExempt(space uint64) uint64 {
	return (128 + space) * 3480 * 2
}

type bank struct {
	mu       sync.RWMutex
	accounts map[solana.PublicKey]*Account
}

func newBank() *bank {
	return &bank{accounts: make(map[solana.PublicKey]*Account)}
}

func (b *bank) get(key solana.PublicKey) (*Account, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acc, ok := b.accounts[key]
	if !ok {
		return nil, false
	}
	return acc.clone(), true
}

func (b *bank) commit(writes map[solana.PublicKey]*Account) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, acc := range writes {
		b.accounts[key] = acc
	}
}

// overlay buffers the writes of one transaction on top of the bank.
type overlay struct {
	base    *bank
	writes  map[solana.PublicKey]*Account
	touched map[solana.PublicKey]bool
}

func newOverlay(base *bank) *overlay {
	return &overlay{
		base:    base,
		writes:  make(map[solana.PublicKey]*Account),
		touched: make(map[solana.PublicKey]bool),
	}
}

// get returns a private copy; changes are kept only through put.
func (o *overlay) get(key solana.PublicKey) (*Account, bool) {
	if acc, ok := o.writes[key]; ok {
		return acc.clone(), true
	}
	return o.base.get(key)
}

func (o *overlay) exists(key solana.PublicKey) bool {
	_, ok := o.get(key)
	return ok
}

func (o *overlay) put(key solana.PublicKey, acc *Account) {
	o.writes[key] = acc
	o.touched[key] = true
}

// drain returns the keys put since the previous drain, in sorted order.
func (o *overlay) drain() []solana.PublicKey {
	keys := make([]solana.PublicKey, 0, len(o.touched))
	for key := range o.touched {
		keys = append(keys, key)
	}
	o.touched = make(map[solana.PublicKey]bool)
	return sortedUnique(keys)
}

func (o *overlay) commit() {
	o.base.commit(o.writes)
}
