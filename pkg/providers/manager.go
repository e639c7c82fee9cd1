package providers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/behark/ai/pkg/config"
	"github.com/behark/ai/pkg/platform"
	"github.com/behark/ai/pkg/telemetry/logging"
	"github.com/behark/ai/pkg/telemetry/metrics"
	"github.com/behark/ai/pkg/upstream"
)

// Manager runs the provider connection state machine. One Manager is
// created at startup; it probes the primary provider, resolves the
// connection state and fallback capability, and publishes both to the
// platform state and the metrics collector.
//
// Reads are safe before the first probe finishes: the state is
// StateProbing and the model listing holds the fallback descriptor.
type Manager struct {
	cfg       *config.ProvidersConfig
	client    *Client
	platform  *platform.State
	collector *metrics.Collector
	logger    *logging.Logger

	mu         sync.RWMutex
	state      State
	capability Capability
	models     []ModelDescriptor
	lastProbe  time.Time
	lastError  error
	cron       *cron.Cron
}

// NewManager creates a connection manager. The platform state and metrics
// collector must be non-nil; a nil logger falls back to a no-op logger.
func NewManager(cfg *config.ProvidersConfig, state *platform.State, collector *metrics.Collector, logger *logging.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	client, err := NewClient(cfg.Ollama, logger)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		cfg:       cfg,
		client:    client,
		platform:  state,
		collector: collector,
		logger:    logger,
		state:     StateProbing,
		models:    []ModelDescriptor{FallbackModel()},
	}

	m.platform.SetComponent(platform.ComponentOllama, StateProbing.String())
	m.collector.UpdateProviderState(ProviderName, StateProbing.String())
	return m, nil
}

// Probe runs one full probe cycle against the primary provider and
// publishes the resolved state. It blocks for up to
// attempts*(timeout+delay) and is safe to call concurrently with reads,
// though cycles themselves should not overlap; the startup goroutine and
// the cron schedule are the only callers.
func (m *Manager) Probe(ctx context.Context) State {
	attempts := m.cfg.Ollama.ProbeAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := m.cfg.Ollama.ProbeDelay

	m.logger.InfoContext(ctx, "probing provider",
		"provider", ProviderName,
		"base_url", m.client.BaseURL(),
		"attempts", attempts,
	)

	state, models, lastErr := m.runProbe(ctx, attempts, delay)
	m.apply(ctx, state, models, lastErr)
	return state
}

// runProbe executes the attempt loop and returns the resolved state, the
// discovered models (nil unless connected), and the last failure.
func (m *Manager) runProbe(ctx context.Context, attempts int, delay time.Duration) (State, []ModelDescriptor, error) {
	// The state settled on when attempts run out depends on how the final
	// attempt failed: transport failures mean the host is gone, error
	// statuses mean it is up but broken.
	settled := StateDegradedError
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		start := time.Now()
		models, err := m.client.ListModels(ctx)
		elapsed := time.Since(start)

		if err == nil {
			if len(models) == 0 {
				m.collector.RecordProviderProbe(ProviderName, "no_models", elapsed)
				return StateNoModels, nil, nil
			}
			m.collector.RecordProviderProbe(ProviderName, "connected", elapsed)
			return StateConnected, models, nil
		}

		lastErr = err
		errType := errorTypeFor(err)
		m.collector.RecordProviderProbe(ProviderName, errType, elapsed)
		m.collector.RecordProviderError(ProviderName, errType)

		switch errType {
		case errorTypeTransport:
			settled = StateDisconnected
			m.logger.WarnContext(ctx, "provider unreachable",
				"provider", ProviderName, "attempt", attempt, "error", err)
		case errorTypeErrorStatus:
			settled = StateDegradedError
			m.logger.WarnContext(ctx, "provider returned error status",
				"provider", ProviderName, "attempt", attempt, "error", err)
		default:
			// Malformed listings and other unexpected failures end the
			// cycle immediately.
			m.logger.ErrorContext(ctx, "provider probe failed",
				"provider", ProviderName, "attempt", attempt, "error", err)
			return StateDegradedError, nil, err
		}

		if attempt < attempts {
			m.logger.InfoContext(ctx, "retrying provider probe",
				"provider", ProviderName,
				"attempt", attempt,
				"max_attempts", attempts,
				"delay", delay,
			)
			if !sleepContext(ctx, delay) {
				break
			}
		}
	}

	return settled, nil, lastErr
}

// apply stores the probe outcome, resolves the fallback capability, and
// publishes everything.
func (m *Manager) apply(ctx context.Context, state State, models []ModelDescriptor, lastErr error) {
	if len(models) == 0 {
		models = []ModelDescriptor{FallbackModel()}
	}

	capability := CapabilityNone
	if state.Degraded() {
		if m.cfg.HasSecondaryCredential() {
			capability = CapabilityFallbackSecondary
		} else {
			capability = CapabilityMockActive
		}
	}

	m.mu.Lock()
	m.state = state
	m.capability = capability
	m.models = models
	m.lastProbe = time.Now()
	m.lastError = lastErr
	m.mu.Unlock()

	m.publish(ctx, state, capability, len(models), lastErr)
}

// publish pushes the resolved state into the platform components map and
// the metrics collector.
func (m *Manager) publish(ctx context.Context, state State, capability Capability, modelCount int, lastErr error) {
	m.platform.SetComponent(platform.ComponentOllama, state.String())

	switch capability {
	case CapabilityFallbackSecondary:
		m.platform.SetComponent(platform.ComponentOpenAI, platform.ConditionFallback)
		m.platform.RemoveComponent(platform.ComponentMockLLM)
	case CapabilityMockActive:
		m.platform.SetComponent(platform.ComponentMockLLM, platform.ConditionActive)
		m.platform.RemoveComponent(platform.ComponentOpenAI)
	default:
		m.platform.RemoveComponent(platform.ComponentOpenAI)
		m.platform.RemoveComponent(platform.ComponentMockLLM)
	}

	m.collector.UpdateProviderState(ProviderName, state.String())
	m.collector.UpdateFallbackCapability(string(capability))
	m.collector.UpdateModelsAvailable(ProviderName, modelCount)

	switch state {
	case StateConnected:
		m.logger.InfoContext(ctx, "provider connected",
			"provider", ProviderName, "models", modelCount)
	case StateNoModels:
		m.logger.WarnContext(ctx, "provider reachable but no models installed",
			"provider", ProviderName)
	default:
		m.logger.ErrorContext(ctx, "provider degraded",
			"provider", ProviderName,
			"state", state.String(),
			"capability", string(capability),
			"error", lastErr,
		)
	}
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Capability returns the active fallback capability, or CapabilityNone.
func (m *Manager) Capability() Capability {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.capability
}

// HasCapability reports whether the named capability is active.
func (m *Manager) HasCapability(c Capability) bool {
	return m.Capability() == c
}

// Models returns a copy of the current model listing. The listing is never
// empty; before the first probe and in every degraded state it holds the
// fallback descriptor.
func (m *Manager) Models() []ModelDescriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ModelDescriptor, len(m.models))
	copy(out, m.models)
	return out
}

// Status returns a point-in-time snapshot of the manager.
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	models := make([]ModelDescriptor, len(m.models))
	copy(models, m.models)

	return Status{
		State:      m.state,
		Capability: m.capability,
		Models:     models,
		LastProbe:  m.lastProbe,
		LastError:  m.lastError,
	}
}

// Chat forwards a native chat payload to the primary provider, recording
// latency and error metrics around the call.
func (m *Manager) Chat(ctx context.Context, payload []byte) (*ChatResult, error) {
	start := time.Now()
	result, err := m.client.Chat(ctx, payload)
	m.collector.RecordProviderLatency(ProviderName, "chat", time.Since(start))

	if err != nil {
		m.collector.RecordProviderError(ProviderName, errorTypeFor(err))
		return nil, err
	}
	return result, nil
}

// Close stops the re-probe schedule, if running, and releases the client's
// pooled connections.
func (m *Manager) Close() {
	m.StopReprobe()
	m.client.Close()
}

// Error type labels used in metrics.
const (
	errorTypeTransport   = "transport"
	errorTypeErrorStatus = "error_status"
	errorTypeInvalid     = "invalid_response"
)

// errorTypeFor classifies a client error for metrics labels and the probe
// state machine.
func errorTypeFor(err error) string {
	var transportErr *upstream.TransportError
	var timeoutErr *TimeoutError
	if errors.As(err, &transportErr) || errors.As(err, &timeoutErr) {
		return errorTypeTransport
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) && provErr.StatusCode > 0 {
		return errorTypeErrorStatus
	}
	return errorTypeInvalid
}

// sleepContext waits for d or until the context is cancelled. It returns
// false when the wait was cut short.
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
