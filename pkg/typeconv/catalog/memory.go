package catalog

import (
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps manifests in memory. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]storedManifest
	seq    int
	closed bool
}

type storedManifest struct {
	data      []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]storedManifest)}
}

// Save implements Store.
func (m *MemoryStore) Save(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.seq++
	m.data[name] = storedManifest{
		data:      slices.Clone(data),
		sequence:  m.seq,
		timestamp: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	sm, ok := m.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(sm.data), nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for name, sm := range m.data {
		infos = append(infos, Info{
			Name:      name,
			Sequence:  sm.sequence,
			Timestamp: sm.timestamp,
			Size:      int64(len(sm.data)),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int { return a.Sequence - b.Sequence })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored manifests.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
