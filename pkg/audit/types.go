package audit

import (
	"context"
	"time"
)

// Record is the audit trail entry for a single chat request. It captures
// what was asked for, which provider state served it, how it resolved,
// and the word-based usage accounting.
type Record struct {
	// ID is a UUID v4 assigned by the recorder.
	ID string `json:"id"`

	// RequestID ties the record to the gateway request log line.
	RequestID string `json:"request_id"`

	// Time is when the request finished handling.
	Time time.Time `json:"time"`

	// Endpoint is the registered route pattern, never the raw URL path.
	Endpoint string `json:"endpoint"`

	// Model is the model the request resolved to.
	Model string `json:"model"`

	// ProviderState is the connection state at serving time.
	ProviderState string `json:"provider_state"`

	// Outcome classifies how the request resolved: success,
	// upstream_status, transport, or invalid.
	Outcome string `json:"outcome"`

	// Fallback reports whether the reply came from the fallback template.
	Fallback bool `json:"fallback"`

	// StatusCode is the HTTP status written to the client.
	StatusCode int `json:"status_code"`

	// Latency is the total handling time.
	Latency time.Duration `json:"latency"`

	// PromptTokens and CompletionTokens carry the bridge's word counts.
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	// Error holds failure detail for non-success outcomes.
	Error string `json:"error,omitempty"`
}

// Store is the persistence interface for audit records. Implementations
// must be safe for concurrent use.
type Store interface {
	// Store persists one record.
	Store(ctx context.Context, record *Record) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes records with a time before the cutoff and
	// returns how many were removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the n oldest records and returns how many were
	// removed.
	DeleteOldest(ctx context.Context, n int64) (int64, error)

	// Close releases the backend's resources.
	Close() error
}
