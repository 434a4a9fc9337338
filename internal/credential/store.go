// Package credential persists the bearer credential that proves an
// authenticated session. It is the Go analog of the single localStorage
// entry the browser client kept: one opaque string, present or absent.
package credential

import "sync"

// Store holds at most one credential.
//
// Load is synchronous and infallible by design: a store that cannot be
// read behaves as if no credential were present, so process start can
// derive the initial session state without error handling.
type Store interface {
	// Load returns the stored credential, or "" when none is present.
	Load() string

	// Save replaces the stored credential.
	Save(token string) error

	// Clear removes the credential. Clearing an empty store is a no-op.
	Clear() error
}

// MemStore is an in-memory Store. Intended for tests.
type MemStore struct {
	mu    sync.Mutex
	token string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Load() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
