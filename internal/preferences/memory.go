package preferences

import (
	"context"
	"sync"
)

// MemoryStore keeps preferences in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	currencies map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{currencies: make(map[string]string)}
}

// Currency returns the stored currency for user.
func (m *MemoryStore) Currency(_ context.Context, user string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.currencies[userKey(user)]
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// SetCurrency stores a currency for user.
func (m *MemoryStore) SetCurrency(_ context.Context, user, code string) error {
	normalized, err := normalizeCurrency(code)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currencies[userKey(user)] = normalized
	return nil
}
