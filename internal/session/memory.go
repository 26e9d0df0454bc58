package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/brightforge/site-api/internal/intake"
)

type memoryEntry struct {
	session   *intake.Session
	expiresAt time.Time
}

func (e *memoryEntry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// MemoryStore is the default in-process session store. Entries expire on
// read; Cleanup sweeps the rest.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*intake.Session, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || e.expired() {
		return nil, ErrNotFound
	}
	return clone(e.session)
}

func (m *MemoryStore) Put(_ context.Context, s *intake.Session, ttl time.Duration) error {
	copied, err := clone(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &memoryEntry{session: copied, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for id, e := range m.sessions {
		if e.expired() {
			delete(m.sessions, id)
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) Close() error { return nil }

// Len reports the number of stored entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// clone deep-copies a session so callers and the store never share
// mutable state.
func clone(s *intake.Session) (*intake.Session, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cloning session: %w", err)
	}
	var out intake.Session
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cloning session: %w", err)
	}
	return &out, nil
}
