package core

import "sync"

// ScoreStore is a durable integer key/value store.
// Games use it for values that outlive a single run, such as the best score.
type ScoreStore interface {
	// Get returns the stored value and whether the key was present.
	// A non-nil error means the value could not be read; ok is then false.
	Get(key string) (value int, ok bool, err error)

	// Set stores value under key.
	Set(key string, value int) error
}

// MemoryStore is a ScoreStore that lives only as long as the process.
// Used when no database is available and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// Get implements ScoreStore.
func (m *MemoryStore) Get(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements ScoreStore.
func (m *MemoryStore) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
