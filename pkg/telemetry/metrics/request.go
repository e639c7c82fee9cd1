package metrics

import (
	"time"

	"github.com/behark/ai/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks gateway HTTP request handling.
//
// Metrics:
//   - behar_gateway_requests_total: request count by method, route, status
//   - behar_gateway_request_duration_seconds: handling time histogram
//   - behar_gateway_response_size_bytes: response body size histogram
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled by the gateway",
			},
			[]string{"method", "route", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP request handling in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method", "route"},
		),

		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "response_size_bytes",
				Help:      "Size of HTTP response bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.responseSize,
	)

	return rm
}

// RecordRequest records one completed request.
//
// The route label must be the registered pattern, not the raw URL path,
// so that cardinality stays bounded by the route table.
func (rm *RequestMetrics) RecordRequest(method, route, status string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(method, route, status).Inc()
	rm.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSize records the size of a response body.
func (rm *RequestMetrics) RecordSize(route string, sizeBytes int) {
	if sizeBytes > 0 {
		rm.responseSize.WithLabelValues(route).Observe(float64(sizeBytes))
	}
}
