package storage

import (
	"context"
	"sync"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// MemoryStore is a process-local KeyValueStore. It backs the history when
// persistent storage is disabled or unavailable.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, value...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]byte{}, value...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) Backend() string { return string(domain.StorageMemory) }

func (m *MemoryStore) Location() string { return "memory" }

var (
	_ ports.KeyValueStore  = (*MemoryStore)(nil)
	_ ports.DescribedStore = (*MemoryStore)(nil)
)
