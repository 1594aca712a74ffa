package stats

import (
	"context"
	"sync"
)

// memory is an in-memory map-based Store.
type memory struct {
	mu    sync.RWMutex
	stats map[string]Stats
}

// NewMemoryStore constructs an in-memory Store. State is lost on restart.
func NewMemoryStore() Store {
	return &memory{stats: make(map[string]Stats)}
}

func (m *memory) Load(_ context.Context, ownerID string) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats[ownerID], nil
}

func (m *memory) Save(_ context.Context, ownerID string, s Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[ownerID] = s
	return nil
}
