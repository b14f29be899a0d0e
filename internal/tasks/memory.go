package tasks

import (
	"context"
	"slices"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the list in process memory. It never returns an error.
type MemoryStore struct {
	mu    sync.Mutex
	names []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Add(_ context.Context, name string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	return m.snapshot(), nil
}

func (m *MemoryStore) Remove(_ context.Context, name string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.Index(m.names, name)
	if i < 0 {
		return m.snapshot(), false, nil
	}
	m.names = slices.Delete(m.names, i, i+1)
	return m.snapshot(), true, nil
}

func (m *MemoryStore) List(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *MemoryStore) Ping(context.Context) error  { return nil }
func (m *MemoryStore) Close(context.Context) error { return nil }

// snapshot copies the list; caller holds mu.
func (m *MemoryStore) snapshot() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}
