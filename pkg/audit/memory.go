package audit

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps audit records in an in-process map. It is the default
// backend: the records live as long as the gateway and leave no state on
// disk.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// Store persists a copy of the record.
func (s *MemoryStore) Store(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recordCopy := *record
	s.records[record.ID] = &recordCopy
	return nil
}

// Count returns the number of stored records.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.records)), nil
}

// DeleteBefore removes records with a time before the cutoff.
func (s *MemoryStore) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if record.Time.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteOldest removes the n oldest records by time.
func (s *MemoryStore) DeleteOldest(_ context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := make([]*Record, 0, len(s.records))
	for _, record := range s.records {
		ordered = append(ordered, record)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	if n > int64(len(ordered)) {
		n = int64(len(ordered))
	}
	for _, record := range ordered[:n] {
		delete(s.records, record.ID)
	}
	return n, nil
}

// Close discards all records.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*Record)
	return nil
}

// GetByID retrieves a copy of a single record, or nil (for testing).
func (s *MemoryStore) GetByID(id string) *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil
	}
	recordCopy := *record
	return &recordCopy
}

// Size returns the number of stored records (for testing).
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
