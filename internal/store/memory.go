// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Holds *game.Game values keyed by ID for the lifetime of the process.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Update runs a mutation to completion under the write lock, so every
//     session has exactly one writer at a time.
//   - Get and Update hand out copies; callers never share a *game.Game.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/spellingbee/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for puzzle sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a copy of a session by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update applies fn to the stored session atomically. If fn returns an
	// error the stored session is left unchanged.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) (*game.Game, error)

	// Len reports how many sessions are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save adds or replaces the session.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	cp := *g
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &cp
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, ErrNotFound
}

// Update mutates a working copy and commits it only if fn succeeds.
func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	work := *g
	if err := fn(&work); err != nil {
		return nil, err
	}
	m.games[id] = &work
	out := work
	return &out, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
