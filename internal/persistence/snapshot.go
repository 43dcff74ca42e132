package persistence

import (
	"context"
	"sync"
)

// SnapshotStore persists whole JSON documents under stable keys. The help
// center reads and writes entire collections per operation; there is no
// partial update and no locking, so concurrent writers are last-writer-wins.
type SnapshotStore interface {
	// Load returns the document stored under key, or nil when absent.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, document []byte) error
	// Delete removes the document stored under key. Missing keys are a no-op.
	Delete(ctx context.Context, key string) error
}

// MemoryStore is a non-durable SnapshotStore for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Load returns a copy of the stored document.
func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

// Save stores a copy of the document.
func (m *MemoryStore) Save(_ context.Context, key string, document []byte) error {
	stored := make([]byte, len(document))
	copy(stored, document)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = stored
	return nil
}

// Delete removes the document.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
