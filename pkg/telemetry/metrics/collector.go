package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/behark/ai/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in the platform.
// It manages metric registration and provides a unified recording interface
// for the gateway, the provider manager, the chat bridge, and the frontend
// proxy.
//
// Recording is cheap enough for the request path:
//   - Pre-allocated metric instances
//   - A cardinality limiter on request-supplied label values
//   - Histogram buckets sized for LLM latencies
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// HTTP request metrics
	requestMetrics *RequestMetrics

	// Provider connection metrics
	providerMetrics *ProviderMetrics

	// Chat bridge metrics
	bridgeMetrics *BridgeMetrics

	// Frontend proxy metrics
	proxyMetrics *ProxyMetrics

	// Cardinality tracking for request-supplied labels
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "behar",
//		Subsystem: "gateway",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "behar"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "gateway"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// Sized for LLM request latencies (100ms to 60s)
		cfg.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0}
	}
	if len(cfg.TokenCountBuckets) == 0 {
		cfg.TokenCountBuckets = []float64{10, 50, 100, 500, 1000, 5000, 10000}
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(10000),
	}

	c.requestMetrics = NewRequestMetrics(cfg, registry)
	c.providerMetrics = NewProviderMetrics(cfg, registry)
	c.bridgeMetrics = NewBridgeMetrics(cfg, registry)
	c.proxyMetrics = NewProxyMetrics(cfg, registry)

	return c
}

// RecordHTTPRequest records a completed gateway request.
//
// Parameters:
//   - method: HTTP method
//   - route: registered route pattern (e.g. "/api/chat/completions"), never
//     the raw URL path
//   - status: response status code as a string
//   - duration: total handling time
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.requestMetrics.RecordRequest(method, route, status, duration)
}

// RecordResponseSize records the size of a gateway response body.
func (c *Collector) RecordResponseSize(route string, sizeBytes int) {
	if !c.config.Enabled {
		return
	}

	c.requestMetrics.RecordSize(route, sizeBytes)
}

// UpdateProviderState sets the provider connection state gauge. Exactly one
// state per provider reads 1; the others read 0.
//
// Known states: probing, connected, no_models, degraded_error, disconnected.
func (c *Collector) UpdateProviderState(provider, state string) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.UpdateState(provider, state)
}

// UpdateFallbackCapability sets the active fallback capability gauge.
// Exactly one capability reads 1.
//
// Known capabilities: fallback_secondary, mock_active.
func (c *Collector) UpdateFallbackCapability(capability string) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.UpdateCapability(capability)
}

// RecordProviderProbe records one completed probe cycle and its outcome.
func (c *Collector) RecordProviderProbe(provider, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordProbe(provider, outcome, duration)
}

// RecordProviderError records an upstream provider error by type.
//
// Common error types: timeout, network, server_error, client_error, parse.
func (c *Collector) RecordProviderError(provider, errorType string) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordError(provider, errorType)
}

// RecordProviderLatency records the latency of one provider API call.
//
// The operation label distinguishes probe, list, and chat calls.
func (c *Collector) RecordProviderLatency(provider, operation string, latency time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordLatency(provider, operation, latency.Seconds())
}

// UpdateModelsAvailable sets the number of models the provider advertises.
func (c *Collector) UpdateModelsAvailable(provider string, count int) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.UpdateModelsAvailable(provider, count)
}

// RecordChatRequest records a completed chat bridge request.
//
// The model label comes from client requests, so it passes through the
// cardinality limiter; once the limit is reached new model names are
// aggregated into "other".
//
// Outcomes: success, fallback, error.
func (c *Collector) RecordChatRequest(route, model, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("chat:%s:%s", route, model)
	if !c.cardinalityLimiter.Allow(labelSet) {
		model = "other"
	}

	c.bridgeMetrics.RecordChat(route, model, outcome, duration)
}

// RecordChatFallback records that a chat request was answered by the
// fallback template rather than the upstream provider.
//
// Reasons: transport, upstream_status, empty_response.
func (c *Collector) RecordChatFallback(route, reason string) {
	if !c.config.Enabled {
		return
	}

	c.bridgeMetrics.RecordFallback(route, reason)
}

// RecordChatTokens records prompt and completion token counts for a chat.
func (c *Collector) RecordChatTokens(model string, promptTokens, completionTokens int) {
	if !c.config.Enabled {
		return
	}

	labelSet := fmt.Sprintf("tokens:%s", model)
	if !c.cardinalityLimiter.Allow(labelSet) {
		model = "other"
	}

	c.bridgeMetrics.RecordTokens(model, promptTokens, completionTokens)
}

// RecordProxyRequest records a request forwarded to the frontend.
func (c *Collector) RecordProxyRequest(status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.proxyMetrics.RecordRequest(status, duration)
}

// RecordProxyError records a proxy failure by reason.
//
// Reasons: transport, bad_gateway.
func (c *Collector) RecordProxyError(reason string) {
	if !c.config.Enabled {
		return
	}

	c.proxyMetrics.RecordError(reason)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations recorded from request input.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter with the specified maximum
// number of unique label sets.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label set may be recorded. A label set that has
// been seen before is always allowed; a new one is allowed until the
// limit is reached.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
