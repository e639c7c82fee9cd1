// Package metrics provides Prometheus instrumentation for the platform.
//
// # Overview
//
// A single Collector owns the registry and exposes typed recording methods
// for each subsystem:
//
//   - RequestMetrics: gateway HTTP traffic (count, duration, response size)
//   - ProviderMetrics: provider connection state, probes, errors, latency
//   - BridgeMetrics: chat bridge requests, fallbacks, token counts
//   - ProxyMetrics: frontend forwarding traffic and failures
//
// All metric names share the configured namespace and subsystem, by
// default behar_gateway. For example:
//
//	behar_gateway_requests_total{method="POST",route="/api/chat",status="200"}
//	behar_gateway_provider_state{provider="ollama",state="connected"}
//	behar_gateway_chat_fallbacks_total{route="/api/chat/completions",reason="transport"}
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordHTTPRequest("POST", "/api/chat", "200", 1200*time.Millisecond)
//	collector.UpdateProviderState("ollama", "connected")
//	collector.RecordChatTokens("llama3.1", 42, 108)
//
//	mux.Handle("/metrics", collector.Handler())
//
// # Cardinality
//
// Route and state labels come from fixed tables, but model names arrive in
// client requests. The collector passes model labels through a cardinality
// limiter; once 10000 unique label sets exist, new model names are
// aggregated into "other" instead of minting fresh series.
package metrics
