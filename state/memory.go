package state

import "sync"

type memoryStore struct {
	mutex  sync.Mutex
	values map[string]string
}

// NewMemoryStore returns a non-durable store for tests and dev mode.
func NewMemoryStore() Store {
	return &memoryStore{
		values: make(map[string]string),
	}
}

func (m *memoryStore) Get(key string) (string, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStore) Apply(writes map[string]string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, value := range writes {
		m.values[key] = value
	}
	return nil
}

func (m *memoryStore) Close() error {
	return nil
}
