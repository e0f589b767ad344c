package localnet

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/semaphore"
)

// writeWeight takes a slot exclusively; a read takes one unit of it.
const writeWeight = 1 << 30

// lockTable serializes transactions that touch the same account: readers
// share a key, a writer holds it alone. Keys are taken in sorted order so
// two transactions never wait on each other. A slot lives only while some
// transaction holds or waits on it.
type lockTable struct {
	mu    sync.Mutex
	slots map[solana.PublicKey]*lockSlot
}

type lockSlot struct {
	sem  *semaphore.Weighted
	refs int
}

type heldLock struct {
	key    solana.PublicKey
	slot   *lockSlot
	weight int64
}

func newLockTable() *lockTable {
	return &lockTable{slots: make(map[solana.PublicKey]*lockSlot)}
}

func (t *lockTable) ref(key solana.PublicKey) *lockSlot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[key]
	if !ok {
		s = &lockSlot{sem: semaphore.NewWeighted(writeWeight)}
		t.slots[key] = s
	}
	s.refs++
	return s
}

func (t *lockTable) unref(key solana.PublicKey) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(t.slots, key)
	}
}

func (t *lockTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

// acquire write-locks writable and read-locks readonly, all or none. A key
// in both lists is write-locked. The returned func releases them.
func (t *lockTable) acquire(ctx context.Context, writable, readonly []solana.PublicKey) (func(), error) {
	writes := make(map[solana.PublicKey]bool, len(writable))
	for _, key := range writable {
		writes[key] = true
	}
	keys := sortedUnique(append(append([]solana.PublicKey(nil), writable...), readonly...))

	held := make([]heldLock, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].slot.sem.Release(held[i].weight)
			t.unref(held[i].key)
		}
	}
	for _, key := range keys {
		weight := int64(1)
		if writes[key] {
			weight = writeWeight
		}
		s := t.ref(key)
		if err := s.sem.Acquire(ctx, weight); err != nil {
			t.unref(key)
			release()
			return nil, err
		}
		held = append(held, heldLock{key: key, slot: s, weight: weight})
	}
	return release, nil
}

func sortedUnique(keys []solana.PublicKey) []solana.PublicKey {
	out := append([]solana.PublicKey(nil), keys...)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	n := 0
	for i, key := range out {
		if i > 0 && key.Equals(out[n-1]) {
			continue
		}
		out[n] = key
		n++
	}
	return out[:n]
}
