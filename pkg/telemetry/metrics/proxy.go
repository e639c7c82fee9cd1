package metrics

import (
	"time"

	"github.com/behark/ai/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ProxyMetrics tracks requests forwarded to the frontend.
//
// Metrics:
//   - behar_gateway_proxy_requests_total: forwarded requests by status
//   - behar_gateway_proxy_duration_seconds: round-trip time to the frontend
//   - behar_gateway_proxy_errors_total: forwarding failures by reason
type ProxyMetrics struct {
	requestsTotal *prometheus.CounterVec
	duration      prometheus.Histogram
	errorsTotal   *prometheus.CounterVec
}

// NewProxyMetrics creates and registers proxy metrics with the registry.
func NewProxyMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProxyMetrics {
	pm := &ProxyMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "proxy_requests_total",
				Help:      "Total number of requests forwarded to the frontend by status",
			},
			[]string{"status"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "proxy_duration_seconds",
				Help:      "Round-trip time of forwarded frontend requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "proxy_errors_total",
				Help:      "Total number of frontend forwarding failures by reason",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		pm.requestsTotal,
		pm.duration,
		pm.errorsTotal,
	)

	return pm
}

// RecordRequest records one forwarded request and its upstream status.
func (pm *ProxyMetrics) RecordRequest(status string, duration time.Duration) {
	pm.requestsTotal.WithLabelValues(status).Inc()
	pm.duration.Observe(duration.Seconds())
}

// RecordError records a forwarding failure.
//
// Reasons:
//   - "transport": the frontend could not be reached
//   - "bad_gateway": a diagnostic 502 was served to the client
func (pm *ProxyMetrics) RecordError(reason string) {
	pm.errorsTotal.WithLabelValues(reason).Inc()
}
