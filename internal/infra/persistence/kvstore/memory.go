package kvstore

import (
	"context"
	"sync"
)

// memoryKV is an in-process KV backend. It is the default driver and
// mirrors the volatility of browser storage in development setups.
type memoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV backend.
func NewMemoryKV() KV {
	return &memoryKV{
		data: make(map[string][]byte),
	}
}

func (m *memoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the stored payload.
	out := make([]byte, len(value))
	copy(out, value)

	return out, true, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = stored

	return nil
}

func (m *memoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}
