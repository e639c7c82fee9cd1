// Package telemetry groups the observability subpackages of the platform.
//
// # Components
//
//   - logging: structured slog-based logging with secret redaction
//   - metrics: Prometheus metrics collection and exposition
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	logger, err := logging.NewFromConfig(cfg.Telemetry.Logging)
//	if err != nil {
//		return err
//	}
//	logger.Info("request completed", "route", "/api/chat", "status", 200)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordHTTPRequest("POST", "/api/chat", "200", duration)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Secret Redaction
//
// Unless disabled, the logger redacts sensitive values before they reach
// the handler:
//
//   - API keys (sk-... prefixes)
//   - Bearer tokens in authorization values
//   - password/secret/token style key-value fields
//
// Custom redaction patterns can be added through configuration and
// override the built-in patterns by name.
package telemetry
