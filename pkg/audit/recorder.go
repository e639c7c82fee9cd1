package audit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/telemetry/logging"
)

const (
	defaultAsyncBuffer  = 1024
	defaultWriteTimeout = 5 * time.Second
)

// Recorder writes audit records to storage asynchronously so the chat
// path never blocks on persistence. When the buffer is full the record is
// dropped and counted; dropped audit data is preferable to a stalled
// request.
type Recorder struct {
	store        Store
	writeTimeout time.Duration
	logger       *logging.Logger

	recordCh chan *Record
	done     chan struct{}
	wg       sync.WaitGroup
	dropped  atomic.Int64
}

// NewRecorder creates a Recorder draining into store. Zero config values
// fall back to the stock defaults.
func NewRecorder(store Store, cfg config.RecorderConfig, logger *logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.NewNop()
	}
	buffer := cfg.AsyncBuffer
	if buffer <= 0 {
		buffer = defaultAsyncBuffer
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}

	r := &Recorder{
		store:        store,
		writeTimeout: writeTimeout,
		logger:       logger,
		recordCh:     make(chan *Record, buffer),
		done:         make(chan struct{}),
	}

	r.wg.Add(1)
	go r.worker()

	logger.Info("audit recorder started",
		"async_buffer", buffer,
		"write_timeout", writeTimeout,
	)

	return r
}

// Record assigns the record an ID and timestamp if missing and enqueues
// it. It never blocks: a full buffer or a closed recorder drops the
// record and increments the dropped counter.
func (r *Recorder) Record(record *Record) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Time.IsZero() {
		record.Time = time.Now()
	}

	select {
	case <-r.done:
		r.dropped.Add(1)
		return
	default:
	}

	select {
	case r.recordCh <- record:
	default:
		dropped := r.dropped.Add(1)
		r.logger.Warn("audit buffer full, dropping record",
			"record_id", record.ID,
			"dropped_total", dropped,
		)
	}
}

// Dropped returns how many records have been dropped since start.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Count returns the number of records currently in storage. Buffered
// records that have not been drained yet are not counted.
func (r *Recorder) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx)
}

// Close stops the recorder after draining buffered records to storage.
func (r *Recorder) Close() error {
	close(r.done)
	r.wg.Wait()

	r.logger.Info("audit recorder stopped", "dropped_total", r.dropped.Load())
	return nil
}

// worker drains the record channel into storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordCh:
			r.writeRecord(record)

		case <-r.done:
			for {
				select {
				case record := <-r.recordCh:
					r.writeRecord(record)
				default:
					return
				}
			}
		}
	}
}

// writeRecord writes one record with the write timeout applied.
func (r *Recorder) writeRecord(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	start := time.Now()
	if err := r.store.Store(ctx, record); err != nil {
		r.logger.Error("storing audit record failed",
			"record_id", record.ID,
			"request_id", record.RequestID,
			"error", err,
		)
		return
	}

	if elapsed := time.Since(start); elapsed > r.writeTimeout/2 {
		r.logger.Warn("slow audit write",
			"record_id", record.ID,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
}
