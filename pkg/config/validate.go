package config

import (
	"fmt"
	"net/url"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.port").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateFrontend(&cfg.Frontend)...)
	errs = append(errs, validateProviders(&cfg.Providers)...)
	errs = append(errs, validateBridge(&cfg.Bridge)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)
	errs = append(errs, validateSessions(&cfg.Sessions)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateServer validates HTTP server configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.Host == "" {
		errs = append(errs, FieldError{
			Field:   "server.host",
			Message: "host is required",
		})
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, FieldError{
			Field:   "server.port",
			Message: "port must be between 1 and 65535",
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.shutdown_timeout",
			Message: "shutdown timeout must be positive",
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}
	if cfg.MaxHeaderBytes > 10*1024*1024 { // 10MB is excessive
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes exceeds reasonable limit (10MB)",
		})
	}

	return errs
}

// validateFrontend validates frontend proxy configuration.
func validateFrontend(cfg *FrontendConfig) []FieldError {
	var errs []FieldError

	errs = append(errs, validateBaseURL("frontend.base_url", cfg.BaseURL)...)

	if cfg.ProxyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "frontend.proxy_timeout",
			Message: "proxy timeout must be positive",
		})
	}
	if cfg.ProbeTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "frontend.probe_timeout",
			Message: "probe timeout must be positive",
		})
	}

	return errs
}

// validateProviders validates provider configuration.
func validateProviders(cfg *ProvidersConfig) []FieldError {
	var errs []FieldError

	errs = append(errs, validateBaseURL("providers.ollama.base_url", cfg.Ollama.BaseURL)...)

	if cfg.Ollama.ProbeAttempts < 1 {
		errs = append(errs, FieldError{
			Field:   "providers.ollama.probe_attempts",
			Message: "probe attempts must be at least 1",
		})
	}
	if cfg.Ollama.ProbeAttempts > 10 {
		errs = append(errs, FieldError{
			Field:   "providers.ollama.probe_attempts",
			Message: "probe attempts exceeds reasonable limit (10)",
		})
	}
	if cfg.Ollama.ProbeTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "providers.ollama.probe_timeout",
			Message: "probe timeout must be positive",
		})
	}
	if cfg.Ollama.ProbeDelay < 0 {
		errs = append(errs, FieldError{
			Field:   "providers.ollama.probe_delay",
			Message: "probe delay must be non-negative",
		})
	}
	if cfg.Ollama.ChatTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "providers.ollama.chat_timeout",
			Message: "chat timeout must be positive",
		})
	}

	// The API key may be absent or carry a foreign prefix; both simply leave
	// the secondary tier unavailable, so no validation applies here.

	return errs
}

// validateBridge validates chat bridge configuration.
func validateBridge(cfg *BridgeConfig) []FieldError {
	var errs []FieldError

	if cfg.DefaultModel == "" {
		errs = append(errs, FieldError{
			Field:   "bridge.default_model",
			Message: "default model is required",
		})
	}
	if cfg.SimpleDefaultModel == "" {
		errs = append(errs, FieldError{
			Field:   "bridge.simple_default_model",
			Message: "simple default model is required",
		})
	}
	if cfg.DefaultTemperature < 0 || cfg.DefaultTemperature > 2.0 {
		errs = append(errs, FieldError{
			Field:   "bridge.default_temperature",
			Message: "default temperature must be between 0.0 and 2.0",
		})
	}
	if cfg.DefaultMaxTokens < 1 {
		errs = append(errs, FieldError{
			Field:   "bridge.default_max_tokens",
			Message: "default max tokens must be at least 1",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "console": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json', 'text', or 'console'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path is required when metrics are enabled",
		})
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path != "" && cfg.Metrics.Path[0] != '/' {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}

// validateAudit validates audit configuration.
func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	if !cfg.Enabled {
		return errs
	}

	validBackends := map[string]bool{"memory": true, "sqlite": true}
	if cfg.Backend == "" {
		errs = append(errs, FieldError{
			Field:   "audit.backend",
			Message: "backend is required when audit is enabled",
		})
	} else if !validBackends[cfg.Backend] {
		errs = append(errs, FieldError{
			Field:   "audit.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'memory' or 'sqlite'", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "audit.sqlite.path",
			Message: "SQLite path is required when backend is 'sqlite'",
		})
	}

	if cfg.Recorder.AsyncBuffer < 1 {
		errs = append(errs, FieldError{
			Field:   "audit.recorder.async_buffer",
			Message: "async buffer must be at least 1",
		})
	}
	if cfg.Recorder.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.recorder.write_timeout",
			Message: "write timeout must be positive",
		})
	}

	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.retention.days",
			Message: "retention days must be non-negative",
		})
	}
	if cfg.Retention.Days > 3650 { // 10 years is excessive
		errs = append(errs, FieldError{
			Field:   "audit.retention.days",
			Message: "retention days exceeds reasonable limit (3650 days / 10 years)",
		})
	}
	if cfg.Retention.MaxRecords < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.retention.max_records",
			Message: "max records must be non-negative",
		})
	}

	return errs
}

// validateSessions validates session tracking configuration.
func validateSessions(cfg *SessionsConfig) []FieldError {
	var errs []FieldError

	validBackends := map[string]bool{"memory": true, "sqlite": true}
	if cfg.Backend != "" && !validBackends[cfg.Backend] {
		errs = append(errs, FieldError{
			Field:   "sessions.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'memory' or 'sqlite'", cfg.Backend),
		})
	}
	if cfg.Backend == "sqlite" && cfg.SQLitePath == "" {
		errs = append(errs, FieldError{
			Field:   "sessions.sqlite_path",
			Message: "SQLite path is required when backend is 'sqlite'",
		})
	}

	return errs
}

// validateBaseURL checks that an upstream base URL is an absolute http or
// https URL. Trailing slashes are trimmed during loading, so path joining
// against the value stays predictable.
func validateBaseURL(field, value string) []FieldError {
	var errs []FieldError

	if value == "" {
		errs = append(errs, FieldError{
			Field:   field,
			Message: "base URL is required",
		})
		return errs
	}

	u, err := url.Parse(value)
	if err != nil {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("invalid URL format: %v", err),
		})
		return errs
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("URL scheme must be http or https, got %q", u.Scheme),
		})
	}
	if u.Host == "" {
		errs = append(errs, FieldError{
			Field:   field,
			Message: "URL must include a host",
		})
	}

	return errs
}
