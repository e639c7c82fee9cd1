package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/behark/ai/pkg/telemetry/logging"
)

// Tracker records chat sessions and answers the count reported by the
// status surface. Storage failures are logged and swallowed; session
// accounting must never fail a chat request.
type Tracker struct {
	store  Store
	logger *logging.Logger
}

// NewTracker creates a tracker over the given store.
func NewTracker(store Store, logger *logging.Logger) *Tracker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Tracker{
		store:  store,
		logger: logger,
	}
}

// Track records one completed chat session. An empty ID and a zero time
// are filled in.
func (t *Tracker) Track(ctx context.Context, session *Session) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.Time.IsZero() {
		session.Time = time.Now()
	}

	if err := t.store.Save(ctx, session); err != nil {
		t.logger.ErrorContext(ctx, "failed to record chat session",
			"error", err,
			"endpoint", session.Endpoint,
			"model", session.Model,
		)
	}
}

// Count returns the number of recorded sessions.
func (t *Tracker) Count(ctx context.Context) (int64, error) {
	return t.store.Count(ctx)
}

// Close releases the underlying store.
func (t *Tracker) Close() error {
	return t.store.Close()
}
