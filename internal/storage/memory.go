package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryGateway is a volatile Gateway keeping blobs in a process-local map.
// It is safe for concurrent access and best suited for tests or sessions
// that should not outlive the process.
type MemoryGateway struct {
	mu    sync.RWMutex
	blobs map[string]string

	// writes counts successful Write calls; tests use it to assert
	// whether an operation persisted.
	writes int
}

// NewMemoryGateway returns an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{blobs: make(map[string]string)}
}

// Exists reports whether key is stored.
func (m *MemoryGateway) Exists(_ context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[key]
	return ok, nil
}

// Read returns the content stored under key, or ErrNotFound.
func (m *MemoryGateway) Read(_ context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.blobs[key]
	if !ok {
		return "", fmt.Errorf("reading %s: %w", key, ErrNotFound)
	}
	return content, nil
}

// Write stores content under key, replacing any previous value.
func (m *MemoryGateway) Write(_ context.Context, key, content string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = content
	m.writes++
	return nil
}

// Writes returns the number of successful writes so far.
func (m *MemoryGateway) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Keys returns the stored keys in no particular order.
func (m *MemoryGateway) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.blobs))
	for k := range m.blobs {
		keys = append(keys, k)
	}
	return keys
}
