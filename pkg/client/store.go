package client

import "sync"

// CredentialStore holds the client's current token pair. The default is an
// in-memory store; callers needing persistence (keychain, cookie jar)
// provide their own.
type CredentialStore interface {
	AccessToken() string
	RefreshToken() string
	SetPair(access, refresh string)
	Clear()
}

type memoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryStore() CredentialStore {
	return &memoryStore{}
}

func (m *memoryStore) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

func (m *memoryStore) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

func (m *memoryStore) SetPair(access, refresh string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
}

func (m *memoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
}
