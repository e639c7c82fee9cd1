package config

import (
	"net"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration for the AI Behar Platform gateway.
// It is loaded from an optional YAML file, filled with defaults, and then
// overridden by environment variables. The original platform's variable
// names (OPENWEBUI_BASE_URL, OLLAMA_BASE_URL, OPENAI_API_KEY, API_HOST,
// API_PORT) are honored alongside the BEHAR_* override scheme, see load.go.
type Config struct {
	// Server contains the HTTP listener configuration.
	Server ServerConfig `yaml:"server"`

	// Frontend configures the reverse proxy to the chat frontend (OpenWebUI).
	Frontend FrontendConfig `yaml:"frontend"`

	// Providers contains configuration for the LLM provider chain
	// (Ollama primary, OpenAI-key secondary, built-in mock tier).
	Providers ProvidersConfig `yaml:"providers"`

	// Bridge contains chat request defaults applied by the format bridge.
	Bridge BridgeConfig `yaml:"bridge"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Audit contains configuration for chat audit recording and storage
	// including backend selection and retention settings.
	Audit AuditConfig `yaml:"audit"`

	// Sessions contains configuration for chat session tracking.
	Sessions SessionsConfig `yaml:"sessions"`

	// Platform contains settings surfaced by the platform status endpoints.
	Platform PlatformConfig `yaml:"platform"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// Host is the address to bind on.
	// Environment: API_HOST.
	// Default: "127.0.0.1"
	Host string `yaml:"host"`

	// Port is the port to listen on.
	// Environment: API_PORT.
	// Default: 8001
	Port int `yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Must exceed the longest upstream timeout so slow proxied
	// requests are not cut off mid-response.
	// Default: 150s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// RequestTimeout bounds total per-request handler time via middleware.
	// A zero or negative value disables the middleware timeout.
	// Default: 150s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// If requests are still in-flight after this timeout, the server will
	// force shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values, including the
	// request line. It does not limit the size of the request body.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
type CORSConfig struct {
	// Enabled controls whether CORS is enabled.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins for CORS requests.
	// Use ["*"] to allow all origins (not recommended for production).
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods for CORS requests.
	// Default: ["GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is a list of allowed HTTP headers for CORS requests.
	// Default: ["Authorization", "Content-Type", "X-Request-ID"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// ExposedHeaders is a list of headers that are exposed to the client.
	// Default: ["X-Request-ID"]
	ExposedHeaders []string `yaml:"exposed_headers"`

	// MaxAge is the maximum age (in seconds) for preflight request cache.
	// Default: 3600 (1 hour)
	MaxAge int `yaml:"max_age"`

	// AllowCredentials controls the Access-Control-Allow-Credentials header.
	// Default: true
	AllowCredentials bool `yaml:"allow_credentials"`
}

// FrontendConfig contains configuration for the reverse-proxied chat frontend.
type FrontendConfig struct {
	// BaseURL is the frontend's absolute base URL without a trailing slash.
	// Environment: OPENWEBUI_BASE_URL.
	// Default: "http://localhost:8080"
	BaseURL string `yaml:"base_url"`

	// ProxyTimeout is the maximum duration for a single proxied request.
	// Default: 120s
	ProxyTimeout time.Duration `yaml:"proxy_timeout"`

	// ProbeTimeout is the maximum duration for the short reachability probe
	// used by the root redirect and the frontend status endpoint. Kept tight
	// so an unreachable frontend fails over to the local page quickly.
	// Default: 1500ms
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

// ProvidersConfig contains configuration for the LLM provider chain.
type ProvidersConfig struct {
	// Ollama configures the primary inference provider.
	Ollama OllamaConfig `yaml:"ollama"`

	// OpenAI configures the secondary, API-key based provider. A valid key
	// is recorded as a fallback capability when the primary is degraded;
	// chat traffic is never routed to it.
	OpenAI OpenAIConfig `yaml:"openai"`
}

// OllamaConfig contains configuration for the primary provider connection.
type OllamaConfig struct {
	// BaseURL is the Ollama API base URL without a trailing slash.
	// Environment: OLLAMA_BASE_URL.
	// Default: "http://localhost:11434"
	BaseURL string `yaml:"base_url"`

	// ProbeTimeout is the maximum duration for one model-listing attempt.
	// Default: 5s
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// ProbeAttempts is the number of model-listing attempts made before the
	// connection manager settles on a degraded state.
	// Default: 3
	ProbeAttempts int `yaml:"probe_attempts"`

	// ProbeDelay is the fixed delay between model-listing attempts.
	// Default: 2s
	ProbeDelay time.Duration `yaml:"probe_delay"`

	// ChatTimeout is the maximum duration for a native chat request.
	// Default: 60s
	ChatTimeout time.Duration `yaml:"chat_timeout"`

	// ReprobeSchedule is a cron expression for re-running the connection
	// probe after startup ("@every 5m", "0 * * * *", ...).
	// Empty disables periodic re-probing.
	// Default: "@every 5m"
	ReprobeSchedule string `yaml:"reprobe_schedule"`
}

// OpenAIConfig contains the secondary provider credential.
type OpenAIConfig struct {
	// APIKey is the secondary provider credential. Only keys carrying the
	// standard "sk-" prefix are treated as usable. The key is redacted
	// from logs.
	// Environment: OPENAI_API_KEY.
	// Default: ""
	APIKey string `yaml:"api_key"`
}

// BridgeConfig contains chat format bridge defaults.
type BridgeConfig struct {
	// DefaultModel is the model requested from the provider when an
	// OpenAI-compatible chat request names none.
	// Default: "llama3.1"
	DefaultModel string `yaml:"default_model"`

	// SimpleDefaultModel is the model requested when the simple chat
	// endpoint names none. A small model keeps that path responsive.
	// Default: "phi"
	SimpleDefaultModel string `yaml:"simple_default_model"`

	// DefaultTemperature is applied when the request omits temperature.
	// Default: 0.7
	DefaultTemperature float64 `yaml:"default_temperature"`

	// DefaultMaxTokens is applied when the request omits max_tokens.
	// Default: 2048
	DefaultMaxTokens int `yaml:"default_max_tokens"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactSecrets enables automatic secret redaction in logs.
	// Redacts API keys and bearer tokens.
	// Default: true
	RedactSecrets bool `yaml:"redact_secrets"`

	// RedactPatterns contains custom redaction patterns applied on top of
	// the built-ins. Each pattern has a name, regex, and replacement string.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom log redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "behar"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets for request and
	// upstream durations (seconds).
	// Default: [0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`

	// TokenCountBuckets defines histogram buckets for token counts.
	// Default: [10, 50, 100, 500, 1000, 5000, 10000]
	TokenCountBuckets []float64 `yaml:"token_count_buckets"`
}

// AuditConfig contains configuration for chat audit recording.
type AuditConfig struct {
	// Enabled controls whether audit recording is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend specifies the storage backend for audit records.
	// Options: "memory", "sqlite"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite AuditSQLiteConfig `yaml:"sqlite"`

	// Recorder contains audit recorder configuration.
	Recorder RecorderConfig `yaml:"recorder"`

	// Retention contains retention policy configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// AuditSQLiteConfig contains SQLite-specific configuration for audit storage.
type AuditSQLiteConfig struct {
	// Path is the file path for the SQLite database.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RecorderConfig contains audit recorder configuration.
type RecorderConfig struct {
	// AsyncBuffer is the size of the async write channel buffer. Records
	// are dropped and counted when the buffer is full rather than blocking
	// request handling.
	// Default: 1024
	AsyncBuffer int `yaml:"async_buffer"`

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RetentionConfig contains retention policy configuration.
type RetentionConfig struct {
	// Days is the number of days to retain audit records.
	// Records older than this are eligible for deletion.
	// 0 means keep records forever (no age-based pruning).
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords is the maximum number of records to keep. Oldest records
	// are pruned first when the cap is exceeded.
	// 0 means unlimited.
	// Default: 100000
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is a cron expression for scheduling pruning.
	// Empty disables scheduled pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// SessionsConfig contains configuration for chat session tracking.
type SessionsConfig struct {
	// Backend specifies the storage backend for sessions.
	// Options: "memory", "sqlite"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	// Default: "data/sessions.db"
	SQLitePath string `yaml:"sqlite_path"`
}

// PlatformConfig contains settings reported by the platform status surface.
type PlatformConfig struct {
	// TradingEnabled is reported by /trading/status.
	// Environment: TRADING_ENABLED.
	// Default: false
	TradingEnabled bool `yaml:"trading_enabled"`

	// TradingMode is reported by /trading/status.
	// Environment: TRADING_MODE.
	// Default: "simulation"
	TradingMode string `yaml:"trading_mode"`

	// TradingRiskLevel is reported by /trading/status.
	// Environment: TRADING_RISK_LEVEL.
	// Default: "moderate"
	TradingRiskLevel string `yaml:"trading_risk_level"`
}

// ListenAddress returns the host:port pair the server binds to.
func (s *ServerConfig) ListenAddress() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// HasSecondaryCredential reports whether a usable secondary provider key is
// configured. Only keys carrying the OpenAI "sk-" prefix count.
func (p *ProvidersConfig) HasSecondaryCredential() bool {
	return strings.HasPrefix(p.OpenAI.APIKey, "sk-")
}
