package game

import "sync"

// StatePort abstracts key-scoped client state (stats, caches, one-way
// flags). The core pipeline never touches it; only delivery-side code
// does.
type StatePort interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// MemoryState is an in-process StatePort, safe for concurrent use.
type MemoryState struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryState creates an empty MemoryState.
func NewMemoryState() *MemoryState {
	return &MemoryState{values: map[string]string{}}
}

func (m *MemoryState) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryState) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
