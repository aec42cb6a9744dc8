package kv

import (
	"context"
	"sync"
)

// Keys used by the session manager.
const (
	KeyUser = "user"
	KeyJWT  = "jwt"
)

// Store is the key-value session store boundary. Get returns ""
// for an absent key rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Memory is an in-process Store. It is the default when no Redis is
// configured and doubles as the test implementation.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
