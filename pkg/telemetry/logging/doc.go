// Package logging provides structured logging with secret redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and colorized console formats
//   - Automatic redaction of API keys, bearer tokens, and passwords
//   - Context-aware logging with request, provider, model, and session fields
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:         "info",
//	    Format:        "json",
//	    RedactSecrets: true,
//	})
//
//	logger.Info("Request processed",
//	    "request_id", "req-123",
//	    "api_key", "sk-abc123",  // Automatically redacted
//	    "duration_ms", 1234,
//	)
//
//	// Context-aware logging
//	ctx := logging.WithRequestID(ctx, "req-123")
//	ctx = logging.WithModel(ctx, "llama3.1")
//	logger.InfoContext(ctx, "Forwarding chat")  // Includes request_id and model
//
// # Secret Redaction
//
// When RedactSecrets is enabled, credential values are scrubbed from log
// fields before the record is written:
//
//   - API keys: sk-abc123xyz becomes sk-***
//   - Bearer tokens: Bearer eyJhbG... becomes Bearer ***
//   - Password assignments: password=hunter2 becomes password: ***
//   - Values under sensitive key names (token, secret, authorization, ...)
//     are masked down to a four-character prefix
//
// Custom patterns can be added through the telemetry.logging.redact_patterns
// configuration section.
//
// # Formats
//
// The json format is the production default. The console format uses
// github.com/lmittmann/tint for colorized, human-readable output during
// local development. Records below the configured level are dropped before
// any redaction work happens.
package logging
