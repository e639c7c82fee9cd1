package providers

import "time"

// State describes the connection manager's view of the primary provider.
type State string

// Connection states. The manager starts in StateProbing and settles on one
// of the others after the probe cycle completes.
const (
	// StateProbing means the startup probe has not finished yet.
	StateProbing State = "probing"

	// StateConnected means the provider answered the model listing with at
	// least one model.
	StateConnected State = "connected"

	// StateNoModels means the provider is reachable but has no models
	// installed.
	StateNoModels State = "no_models"

	// StateDegradedError means the probe exhausted its attempts on error
	// responses, or failed in an unexpected way (for example a malformed
	// listing body).
	StateDegradedError State = "degraded_error"

	// StateDisconnected means every probe attempt failed at the transport
	// layer; the provider host is unreachable.
	StateDisconnected State = "disconnected"
)

// Degraded reports whether the state warrants the fallback chain
// (secondary credential or mock replies).
func (s State) Degraded() bool {
	return s == StateNoModels || s == StateDegradedError || s == StateDisconnected
}

// String returns the state's wire spelling.
func (s State) String() string {
	return string(s)
}

// Capability augments a degraded primary state. At most one capability is
// active at a time.
type Capability string

const (
	// CapabilityFallbackSecondary means a usable secondary provider
	// credential is configured.
	CapabilityFallbackSecondary Capability = "fallback_secondary"

	// CapabilityMockActive means no secondary credential exists and chat
	// requests are answered with deterministic templated replies.
	CapabilityMockActive Capability = "mock_active"

	// CapabilityNone means the primary provider is healthy and no fallback
	// is engaged.
	CapabilityNone Capability = ""
)

// ModelDescriptor describes one model offered by the provider chain.
type ModelDescriptor struct {
	// ID is the model identifier used in chat requests
	ID string `json:"id"`

	// Name is the human-readable model name
	Name string `json:"name"`

	// Description is a short free-form description
	Description string `json:"description"`

	// Size is the model size as reported by the provider, or "Unknown"
	Size string `json:"size"`
}

// FallbackModel returns the descriptor installed whenever the primary
// provider cannot supply a listing. The model listing is never empty.
func FallbackModel() ModelDescriptor {
	return ModelDescriptor{
		ID:          "llama3.1",
		Name:        "Llama 3.1",
		Description: "Fallback model (Ollama unavailable)",
		Size:        "7B",
	}
}

// Status is a point-in-time snapshot of the manager, safe to read without
// locks.
type Status struct {
	// State is the resolved connection state
	State State

	// Capability is the active fallback capability, if any
	Capability Capability

	// Models is the current model listing (never empty)
	Models []ModelDescriptor

	// LastProbe is when the last probe cycle finished (zero before the
	// first cycle)
	LastProbe time.Time

	// LastError is the error that drove the last degraded transition
	// (nil when connected or before the first cycle)
	LastError error
}
