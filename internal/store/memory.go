package store

import (
	"sort"
	"sync"
)

// MemoryRegistry is a map-backed Registry for tests and runs without a
// database path configured. Subscriptions are lost on restart.
type MemoryRegistry struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{ids: make(map[int64]struct{})}
}

func (m *MemoryRegistry) Add(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[chatID] = struct{}{}
	return nil
}

func (m *MemoryRegistry) Remove(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, chatID)
	return nil
}

func (m *MemoryRegistry) All() ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]int64, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemoryRegistry) Close() error { return nil }
