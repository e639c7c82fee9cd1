package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/behark/ai/pkg/config"
)

// gatedStore blocks every write until the gate is opened so tests can
// fill the recorder's buffer deterministically.
type gatedStore struct {
	inner   *MemoryStore
	started chan struct{}
	gate    chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		inner:   NewMemoryStore(),
		started: make(chan struct{}, 16),
		gate:    make(chan struct{}),
	}
}

func (s *gatedStore) Store(ctx context.Context, record *Record) error {
	s.started <- struct{}{}
	<-s.gate
	return s.inner.Store(ctx, record)
}

func (s *gatedStore) Count(ctx context.Context) (int64, error) { return s.inner.Count(ctx) }

func (s *gatedStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.inner.DeleteBefore(ctx, cutoff)
}

func (s *gatedStore) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	return s.inner.DeleteOldest(ctx, n)
}

func (s *gatedStore) Close() error { return s.inner.Close() }

func waitForSize(t *testing.T, store *MemoryStore, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if store.Size() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d stored records, got %d", want, store.Size())
}

func TestRecorder_AssignsIDAndTime(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store, config.RecorderConfig{}, nil)
	defer recorder.Close()

	recorder.Record(&Record{Endpoint: "/api/chat", Outcome: "success"})
	waitForSize(t, store, 1)

	ids := storeIDs(store)
	if len(ids) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(ids))
	}
	stored := store.GetByID(ids[0])
	if stored == nil {
		t.Fatal("expected a stored record")
	}
	if _, err := uuid.Parse(stored.ID); err != nil {
		t.Errorf("expected a UUID record ID, got %q", stored.ID)
	}
	if stored.Time.IsZero() {
		t.Error("expected recorder to stamp the time")
	}
}

func storeIDs(store *MemoryStore) []string {
	store.mu.RLock()
	defer store.mu.RUnlock()
	ids := make([]string, 0, len(store.records))
	for id := range store.records {
		ids = append(ids, id)
	}
	return ids
}

func TestRecorder_PreservesCallerID(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store, config.RecorderConfig{}, nil)
	defer recorder.Close()

	recorder.Record(&Record{ID: "caller-id", Endpoint: "/api/chat"})
	waitForSize(t, store, 1)

	if store.GetByID("caller-id") == nil {
		t.Error("expected caller-supplied ID kept")
	}
}

func TestRecorder_DropsWhenBufferFull(t *testing.T) {
	store := newGatedStore()
	recorder := NewRecorder(store, config.RecorderConfig{AsyncBuffer: 2}, nil)

	// The first record occupies the worker; wait for it so the next
	// two are guaranteed to land in the channel buffer.
	recorder.Record(testRecord("blocking", time.Now()))
	<-store.started

	recorder.Record(testRecord("buffered-1", time.Now()))
	recorder.Record(testRecord("buffered-2", time.Now()))
	recorder.Record(testRecord("overflow", time.Now()))

	if dropped := recorder.Dropped(); dropped != 1 {
		t.Errorf("expected 1 dropped record, got %d", dropped)
	}

	close(store.gate)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if size := store.inner.Size(); size != 3 {
		t.Errorf("expected 3 records written, got %d", size)
	}
	if store.inner.GetByID("overflow") != nil {
		t.Error("expected overflow record dropped")
	}
}

func TestRecorder_CloseDrainsBuffer(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store, config.RecorderConfig{AsyncBuffer: 8}, nil)

	for i := 0; i < 5; i++ {
		recorder.Record(testRecord("", time.Now()))
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if size := store.Size(); size != 5 {
		t.Errorf("expected 5 records flushed on close, got %d", size)
	}
}

func TestRecorder_RecordAfterCloseDrops(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store, config.RecorderConfig{}, nil)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	recorder.Record(testRecord("late", time.Now()))

	if dropped := recorder.Dropped(); dropped != 1 {
		t.Errorf("expected 1 dropped record after close, got %d", dropped)
	}
	if size := store.Size(); size != 0 {
		t.Errorf("expected nothing stored after close, got %d", size)
	}
}
