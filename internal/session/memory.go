package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. It is the default backend.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record), now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(r), nil
}

func (m *MemoryStore) Save(_ context.Context, rec *Record) error {
	c := cloneRecord(rec)
	c.UpdatedAt = m.now().UTC()
	m.mu.Lock()
	m.records[c.ID] = c
	m.mu.Unlock()
	rec.UpdatedAt = c.UpdatedAt
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.records, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Purge(_ context.Context, olderThan time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, r := range m.records {
		if r.UpdatedAt.Before(olderThan) {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored records.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
