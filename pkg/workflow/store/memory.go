package store

import (
	"context"
	"sort"
	"sync"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow"
)

// MemoryStore keeps encoded definitions in memory.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record)}
}

// Save implements Store. The definition is encoded, so later changes to
// def do not affect the stored copy.
func (m *MemoryStore) Save(_ context.Context, id string, def workflow.Definition) error {
	rec, err := encode(id, def)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStoreClosed
	}
	m.records[id] = rec
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, id string) (workflow.Definition, error) {
	m.mu.RLock()
	rec, ok := m.records[id]
	closed := m.closed
	m.mu.RUnlock()

	if closed {
		return workflow.Definition{}, ErrStoreClosed
	}
	if !ok {
		return workflow.Definition{}, ErrNotFound
	}
	return decode(id, rec.data)
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	infos := make([]Info, 0, len(m.records))
	for _, rec := range m.records {
		infos = append(infos, rec.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.records, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	return nil
}

// Len returns the number of stored definitions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
