package metrics

import (
	"time"

	"github.com/behark/ai/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Enumerated provider states exported through the state gauge. Keeping the
// list here lets UpdateState zero the inactive states so the gauge reads
// like an enum.
var providerStates = []string{
	"probing",
	"connected",
	"no_models",
	"degraded_error",
	"disconnected",
}

// Enumerated fallback capabilities exported through the capability gauge.
var fallbackCapabilities = []string{
	"fallback_secondary",
	"mock_active",
}

// ProviderMetrics tracks provider connection health and upstream calls.
//
// Metrics:
//   - behar_gateway_provider_state: connection state enum (1=active state)
//   - behar_gateway_provider_capability: fallback capability enum
//   - behar_gateway_provider_probes_total: probe cycles by outcome
//   - behar_gateway_provider_probe_duration_seconds: probe cycle duration
//   - behar_gateway_provider_errors_total: upstream errors by type
//   - behar_gateway_provider_latency_seconds: upstream call latency
//   - behar_gateway_provider_models_available: advertised model count
type ProviderMetrics struct {
	state           *prometheus.GaugeVec
	capability      *prometheus.GaugeVec
	probes          *prometheus.CounterVec
	probeDuration   *prometheus.HistogramVec
	errors          *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	modelsAvailable *prometheus.GaugeVec
}

// NewProviderMetrics creates and registers provider metrics with the registry.
func NewProviderMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_state",
				Help:      "Provider connection state (1 for the active state, 0 otherwise)",
			},
			[]string{"provider", "state"},
		),

		capability: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_capability",
				Help:      "Active fallback capability (1 for the active capability, 0 otherwise)",
			},
			[]string{"capability"},
		),

		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_probes_total",
				Help:      "Total number of provider probe cycles by outcome",
			},
			[]string{"provider", "outcome"},
		),

		probeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_probe_duration_seconds",
				Help:      "Duration of provider probe cycles in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"provider"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_errors_total",
				Help:      "Total number of provider errors by type",
			},
			[]string{"provider", "error_type"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_latency_seconds",
				Help:      "Provider API call latency in seconds by operation",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"provider", "operation"},
		),

		modelsAvailable: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_models_available",
				Help:      "Number of models the provider currently advertises",
			},
			[]string{"provider"},
		),
	}

	registry.MustRegister(
		pm.state,
		pm.capability,
		pm.probes,
		pm.probeDuration,
		pm.errors,
		pm.latency,
		pm.modelsAvailable,
	)

	return pm
}

// UpdateState sets the state gauge for a provider. The active state is set
// to 1 and every other known state to 0, so queries can treat the gauge as
// an enum.
func (pm *ProviderMetrics) UpdateState(provider, state string) {
	for _, s := range providerStates {
		value := 0.0
		if s == state {
			value = 1.0
		}
		pm.state.WithLabelValues(provider, s).Set(value)
	}
}

// UpdateCapability sets the fallback capability gauge. The active
// capability is set to 1 and the others to 0.
func (pm *ProviderMetrics) UpdateCapability(capability string) {
	for _, c := range fallbackCapabilities {
		value := 0.0
		if c == capability {
			value = 1.0
		}
		pm.capability.WithLabelValues(c).Set(value)
	}
}

// RecordProbe records one completed probe cycle.
//
// Outcomes match the terminal connection states: connected, no_models,
// degraded_error, disconnected.
func (pm *ProviderMetrics) RecordProbe(provider, outcome string, duration time.Duration) {
	pm.probes.WithLabelValues(provider, outcome).Inc()
	pm.probeDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordError records an upstream error by type.
//
// Common error types:
//   - "timeout": request deadline exceeded
//   - "network": connection failure
//   - "server_error": upstream 5xx
//   - "client_error": upstream 4xx
//   - "parse": response decoding failure
func (pm *ProviderMetrics) RecordError(provider, errorType string) {
	pm.errors.WithLabelValues(provider, errorType).Inc()
}

// RecordLatency records the latency of one provider API call.
func (pm *ProviderMetrics) RecordLatency(provider, operation string, latencySeconds float64) {
	pm.latency.WithLabelValues(provider, operation).Observe(latencySeconds)
}

// UpdateModelsAvailable sets the advertised model count for a provider.
func (pm *ProviderMetrics) UpdateModelsAvailable(provider string, count int) {
	pm.modelsAvailable.WithLabelValues(provider).Set(float64(count))
}
