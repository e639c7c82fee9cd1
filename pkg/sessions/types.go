package sessions

import (
	"context"
	"time"
)

// Session is one completed chat exchange. A row is written per request
// on the chat surface, whether the reply came from the provider or from
// the fallback path.
type Session struct {
	// ID is a UUID assigned by the tracker when empty.
	ID string

	// Time is when the session completed.
	Time time.Time

	// Endpoint is the route pattern that served the session.
	Endpoint string

	// Model is the model that answered, after defaulting.
	Model string

	// PromptWords and CompletionWords carry the whitespace word counts
	// reported to the client.
	PromptWords     int
	CompletionWords int

	// Success is false when the reply was a fallback.
	Success bool
}

// Store defines the interface for session persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists a session. Returns error on failure.
	Save(ctx context.Context, session *Session) error

	// Count returns the number of stored sessions.
	Count(ctx context.Context) (int64, error)

	// Close releases any resources held by the store.
	// The store should not be used after calling Close.
	Close() error
}
