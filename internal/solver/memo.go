package solver

import (
	"sync"

	"github.com/robalobadob/spellingbee/internal/letters"
)

type memoKey struct {
	set    letters.Set
	corpus string
}

// Memo caches the most recent Solve per (letter set, corpus identity).
// Only the last key is kept: consumers re-solve on every mutation, so
// older entries are never asked for again.
type Memo struct {
	mu      sync.Mutex
	key     memoKey
	valid   bool
	results []Result
	hits    int
	misses  int
}

// NewMemo returns an empty memo.
func NewMemo() *Memo { return &Memo{} }

// Solve returns the cached result for (set, corpusID) or computes it.
// corpusID must change whenever the corpus contents change.
// The returned slice is shared; callers must not modify it.
func (m *Memo) Solve(set letters.Set, corpusID string, corpus []string) []Result {
	k := memoKey{set: set, corpus: corpusID}

	m.mu.Lock()
	if m.valid && m.key == k {
		m.hits++
		rs := m.results
		m.mu.Unlock()
		return rs
	}
	m.misses++
	m.mu.Unlock()

	rs := Solve(set, corpus)

	m.mu.Lock()
	m.key, m.results, m.valid = k, rs, true
	m.mu.Unlock()
	return rs
}

// Stats reports cache hits and misses.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
