// Package store holds live game sessions.
//
// Sessions are ephemeral: they are kept in process memory and lost on
// restart. Durable facts about a game (daily result, stats, claims) are
// written elsewhere when the game finishes.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/crypto-wordle/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a copy of the game with the given ID. The copy is taken
	// under a read lock, so it never observes a half-applied guess.
	Get(ctx context.Context, id string) (game.Game, error)

	// Update runs fn against the stored game while holding the session lock,
	// so concurrent guesses against one game are serialised.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Reassign moves every game owned by from to the owner to and returns how
	// many moved. Used when a guest signs up or logs in mid-game.
	Reassign(ctx context.Context, from, to string) int

	// Prune drops games started before cutoff and returns how many went.
	Prune(ctx context.Context, cutoff time.Time) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(_ context.Context, id string) (game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g.Clone(), nil
	}
	return game.Game{}, ErrNotFound
}

func (m *memory) Update(_ context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}

func (m *memory) Reassign(_ context.Context, from, to string) int {
	if from == "" || from == to {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, g := range m.games {
		if g.OwnerID == from {
			g.OwnerID = to
			n++
		}
	}
	return n
}

func (m *memory) Prune(_ context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.StartedAt.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
