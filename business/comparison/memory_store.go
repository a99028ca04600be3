package comparison

import (
	"context"
	"slices"
	"sync"

	"skillCompare/domain"
)

// MemoryStore keeps selections in process memory. Used when Redis is
// disabled.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]domain.ComparisonEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]domain.ComparisonEntry)}
}

func (m *MemoryStore) Load(_ context.Context, visitorID string) ([]domain.ComparisonEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.data[visitorID]), nil
}

func (m *MemoryStore) Save(_ context.Context, visitorID string, entries []domain.ComparisonEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(entries) == 0 {
		delete(m.data, visitorID)
		return nil
	}
	m.data[visitorID] = slices.Clone(entries)
	return nil
}
