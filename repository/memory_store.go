package repository

import "sync"

// MemoryStore keeps values in process memory. Data is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	Data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Data: make(map[string]string),
	}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.Data[key]
	return val, ok, nil
}

func (m *MemoryStore) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}
