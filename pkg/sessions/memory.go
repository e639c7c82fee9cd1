package sessions

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore implements Store using in-memory storage. This is the
// default backend and matches the lifetime of the original in-process
// session table: the count resets when the gateway restarts.
//
// MemoryStore is thread-safe and supports concurrent access using
// sync.RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save persists a copy of the session.
func (m *MemoryStore) Save(_ context.Context, session *Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = append(m.sessions, *session)
	return nil
}

// Count returns the number of stored sessions.
func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.sessions)), nil
}

// Close discards all sessions.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = nil
	return nil
}

// Last returns a copy of the most recently saved session, or nil.
// This is useful for testing.
func (m *MemoryStore) Last() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.sessions) == 0 {
		return nil
	}
	last := m.sessions[len(m.sessions)-1]
	return &last
}
