package metrics

import (
	"time"

	"github.com/behark/ai/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// BridgeMetrics tracks the chat format bridge.
//
// Metrics:
//   - behar_gateway_chat_requests_total: chat requests by route, model, outcome
//   - behar_gateway_chat_duration_seconds: end-to-end chat handling time
//   - behar_gateway_chat_fallbacks_total: fallback responses by reason
//   - behar_gateway_chat_tokens_total: token counts by model and type
type BridgeMetrics struct {
	chatsTotal     *prometheus.CounterVec
	chatDuration   *prometheus.HistogramVec
	fallbacksTotal *prometheus.CounterVec
	tokensTotal    *prometheus.CounterVec
}

// NewBridgeMetrics creates and registers bridge metrics with the registry.
func NewBridgeMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *BridgeMetrics {
	bm := &BridgeMetrics{
		chatsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chat_requests_total",
				Help:      "Total number of chat requests by route, model, and outcome",
			},
			[]string{"route", "model", "outcome"},
		),

		chatDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chat_duration_seconds",
				Help:      "End-to-end chat request handling time in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"route"},
		),

		fallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chat_fallbacks_total",
				Help:      "Total number of fallback chat responses by reason",
			},
			[]string{"route", "reason"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chat_tokens_total",
				Help:      "Total number of chat tokens by model and type",
			},
			[]string{"model", "type"},
		),
	}

	registry.MustRegister(
		bm.chatsTotal,
		bm.chatDuration,
		bm.fallbacksTotal,
		bm.tokensTotal,
	)

	return bm
}

// RecordChat records one completed chat request.
//
// Outcomes:
//   - "success": upstream answered and was translated
//   - "fallback": the templated fallback answered
//   - "error": the client received an error status
func (bm *BridgeMetrics) RecordChat(route, model, outcome string, duration time.Duration) {
	bm.chatsTotal.WithLabelValues(route, model, outcome).Inc()
	bm.chatDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordFallback records a fallback response and why it happened.
func (bm *BridgeMetrics) RecordFallback(route, reason string) {
	bm.fallbacksTotal.WithLabelValues(route, reason).Inc()
}

// RecordTokens records prompt and completion token counts.
func (bm *BridgeMetrics) RecordTokens(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		bm.tokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		bm.tokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}
