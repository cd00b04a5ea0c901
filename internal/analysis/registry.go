package analysis

import (
	"strings"
	"sync"

	"github.com/waelttf/UniqueRequest/internal/domain"
)

// RunFunc classifies one exchange for a run: the dedup key plus a
// constructor for the display record, invoked with the assigned sequence id
// when the key is unseen. ok=false drops the exchange silently.
type RunFunc[R any] func(ex domain.Exchange) (key string, build func(seq int) R, ok bool)

// Entry pairs a retained exchange with its display record.
type Entry[R any] struct {
	Seq      int
	Key      string
	Exchange domain.Exchange
	Record   R
}

// RunStats summarizes one analysis pass.
type RunStats struct {
	Retained   int `json:"retained"`
	Dropped    int `json:"dropped"`
	Duplicates int `json:"duplicates"`
}

// Registry keeps the first-seen exchange per dedup key, in insertion order.
// The seen-key set and the entry sequence stay in lockstep: every key has
// exactly one entry and vice versa. A run holds the registry lock for its
// whole pass, so concurrent runs against the same registry serialize.
type Registry[R any] struct {
	mu      sync.RWMutex
	seen    map[string]struct{}
	entries []Entry[R]
}

func NewRegistry[R any]() *Registry[R] {
	return &Registry[R]{seen: make(map[string]struct{})}
}

// Run rebuilds the registry from one ordered pass over the exchanges.
// Prior state is discarded; the first exchange to produce a given key wins
// and later ones with the same key are dropped without error. Sequence ids
// are 1-based in retention order.
func (r *Registry[R]) Run(exchanges []domain.Exchange, fn RunFunc[R]) RunStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = make(map[string]struct{})
	r.entries = r.entries[:0]
	var stats RunStats
	for _, ex := range exchanges {
		key, build, ok := fn(ex)
		if !ok {
			stats.Dropped++
			continue
		}
		if _, dup := r.seen[key]; dup {
			stats.Duplicates++
			continue
		}
		r.seen[key] = struct{}{}
		seq := len(r.entries) + 1
		r.entries = append(r.entries, Entry[R]{Seq: seq, Key: key, Exchange: ex, Record: build(seq)})
	}
	stats.Retained = len(r.entries)
	return stats
}

// Entries returns a snapshot of all retained entries in insertion order.
func (r *Registry[R]) Entries() []Entry[R] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry[R], len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry[R]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// EntryBySeq looks up one entry by its stable sequence id.
func (r *Registry[R]) EntryBySeq(seq int) (Entry[R], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.Seq == seq {
			return e, true
		}
	}
	return Entry[R]{}, false
}

// RemoveBySeq deletes one entry. Remaining entries keep their sequence ids;
// the entry's key leaves the seen set so the pair stays in lockstep.
func (r *Registry[R]) RemoveBySeq(seq int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.Seq == seq {
			delete(r.seen, e.Key)
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear resets the registry to empty.
func (r *Registry[R]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = make(map[string]struct{})
	r.entries = r.entries[:0]
}

// Search returns the entries whose display field matches the pattern
// case-insensitively. An empty pattern matches everything.
func (r *Registry[R]) Search(pattern string, display func(R) string) []Entry[R] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if pattern == "" {
		out := make([]Entry[R], len(r.entries))
		copy(out, r.entries)
		return out
	}
	needle := strings.ToLower(pattern)
	out := make([]Entry[R], 0, len(r.entries))
	for _, e := range r.entries {
		if strings.Contains(strings.ToLower(display(e.Record)), needle) {
			out = append(out, e)
		}
	}
	return out
}
