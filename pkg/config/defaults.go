package config

import (
	"strings"
	"time"
)

// Default values for configuration fields.
const (
	// Server defaults
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 8001
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 150 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultRequestTimeout  = 150 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// CORS defaults
	DefaultCORSEnabled          = true
	DefaultCORSMaxAge           = 3600 // 1 hour
	DefaultCORSAllowCredentials = true

	// Frontend defaults
	DefaultFrontendBaseURL      = "http://localhost:8080"
	DefaultFrontendProxyTimeout = 120 * time.Second
	DefaultFrontendProbeTimeout = 1500 * time.Millisecond

	// Ollama defaults
	DefaultOllamaBaseURL         = "http://localhost:11434"
	DefaultOllamaProbeTimeout    = 5 * time.Second
	DefaultOllamaProbeAttempts   = 3
	DefaultOllamaProbeDelay      = 2 * time.Second
	DefaultOllamaChatTimeout     = 60 * time.Second
	DefaultOllamaReprobeSchedule = "@every 5m"

	// Bridge defaults
	DefaultBridgeModel       = "llama3.1"
	DefaultBridgeSimpleModel = "phi"
	DefaultBridgeTemperature = 0.7
	DefaultBridgeMaxTokens   = 2048

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultLoggingRedact    = true
	DefaultMetricsEnabled   = true
	DefaultPrometheusPath   = "/metrics"
	DefaultMetricsNamespace = "behar"
	DefaultMetricsSubsystem = "gateway"

	// Audit defaults
	DefaultAuditEnabled             = true
	DefaultAuditBackend             = "memory"
	DefaultAuditSQLitePath          = "data/audit.db"
	DefaultAuditSQLiteMaxOpenConns  = 10
	DefaultAuditSQLiteMaxIdleConns  = 5
	DefaultAuditSQLiteWALMode       = true
	DefaultAuditSQLiteBusyTimeout   = 5 * time.Second
	DefaultAuditRecorderAsyncBuffer = 1024
	DefaultAuditRecorderWriteLimit  = 5 * time.Second
	DefaultAuditRetentionDays       = 30
	DefaultAuditRetentionMaxRecords = int64(100000)
	DefaultAuditRetentionSchedule   = "0 3 * * *"

	// Sessions defaults
	DefaultSessionsBackend    = "memory"
	DefaultSessionsSQLitePath = "data/sessions.db"

	// Platform defaults
	DefaultTradingMode      = "simulation"
	DefaultTradingRiskLevel = "moderate"
)

// DefaultConfig returns a Config with every field set to its default value.
// Load unmarshals the YAML file over this base, so file values override
// defaults and absent fields keep them, including booleans that default
// to true.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			MaxHeaderBytes:  DefaultMaxHeaderBytes,
			CORS: CORSConfig{
				Enabled:          DefaultCORSEnabled,
				AllowedOrigins:   []string{"*"},
				AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
				AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
				ExposedHeaders:   []string{"X-Request-ID"},
				MaxAge:           DefaultCORSMaxAge,
				AllowCredentials: DefaultCORSAllowCredentials,
			},
		},
		Frontend: FrontendConfig{
			BaseURL:      DefaultFrontendBaseURL,
			ProxyTimeout: DefaultFrontendProxyTimeout,
			ProbeTimeout: DefaultFrontendProbeTimeout,
		},
		Providers: ProvidersConfig{
			Ollama: OllamaConfig{
				BaseURL:         DefaultOllamaBaseURL,
				ProbeTimeout:    DefaultOllamaProbeTimeout,
				ProbeAttempts:   DefaultOllamaProbeAttempts,
				ProbeDelay:      DefaultOllamaProbeDelay,
				ChatTimeout:     DefaultOllamaChatTimeout,
				ReprobeSchedule: DefaultOllamaReprobeSchedule,
			},
		},
		Bridge: BridgeConfig{
			DefaultModel:       DefaultBridgeModel,
			SimpleDefaultModel: DefaultBridgeSimpleModel,
			DefaultTemperature: DefaultBridgeTemperature,
			DefaultMaxTokens:   DefaultBridgeMaxTokens,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:         DefaultLoggingLevel,
				Format:        DefaultLoggingFormat,
				RedactSecrets: DefaultLoggingRedact,
			},
			Metrics: MetricsConfig{
				Enabled:                DefaultMetricsEnabled,
				Path:                   DefaultPrometheusPath,
				Namespace:              DefaultMetricsNamespace,
				Subsystem:              DefaultMetricsSubsystem,
				RequestDurationBuckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
				TokenCountBuckets:      []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
		},
		Audit: AuditConfig{
			Enabled: DefaultAuditEnabled,
			Backend: DefaultAuditBackend,
			SQLite: AuditSQLiteConfig{
				Path:         DefaultAuditSQLitePath,
				MaxOpenConns: DefaultAuditSQLiteMaxOpenConns,
				MaxIdleConns: DefaultAuditSQLiteMaxIdleConns,
				WALMode:      DefaultAuditSQLiteWALMode,
				BusyTimeout:  DefaultAuditSQLiteBusyTimeout,
			},
			Recorder: RecorderConfig{
				AsyncBuffer:  DefaultAuditRecorderAsyncBuffer,
				WriteTimeout: DefaultAuditRecorderWriteLimit,
			},
			Retention: RetentionConfig{
				Days:          DefaultAuditRetentionDays,
				MaxRecords:    DefaultAuditRetentionMaxRecords,
				PruneSchedule: DefaultAuditRetentionSchedule,
			},
		},
		Sessions: SessionsConfig{
			Backend:    DefaultSessionsBackend,
			SQLitePath: DefaultSessionsSQLitePath,
		},
		Platform: PlatformConfig{
			TradingMode:      DefaultTradingMode,
			TradingRiskLevel: DefaultTradingRiskLevel,
		},
	}
}

// ApplyDefaults fills zero-valued fields of a Config with defaults and trims
// trailing slashes from upstream base URLs so path joining against them stays
// predictable. It is idempotent and safe to call multiple times. Booleans
// that default to true are not touched here; construct via DefaultConfig to
// get them.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	applyCORSDefaults(&cfg.Server.CORS)

	// Frontend defaults
	if cfg.Frontend.BaseURL == "" {
		cfg.Frontend.BaseURL = DefaultFrontendBaseURL
	}
	if cfg.Frontend.ProxyTimeout == 0 {
		cfg.Frontend.ProxyTimeout = DefaultFrontendProxyTimeout
	}
	if cfg.Frontend.ProbeTimeout == 0 {
		cfg.Frontend.ProbeTimeout = DefaultFrontendProbeTimeout
	}

	// Provider defaults
	if cfg.Providers.Ollama.BaseURL == "" {
		cfg.Providers.Ollama.BaseURL = DefaultOllamaBaseURL
	}
	if cfg.Providers.Ollama.ProbeTimeout == 0 {
		cfg.Providers.Ollama.ProbeTimeout = DefaultOllamaProbeTimeout
	}
	if cfg.Providers.Ollama.ProbeAttempts == 0 {
		cfg.Providers.Ollama.ProbeAttempts = DefaultOllamaProbeAttempts
	}
	if cfg.Providers.Ollama.ProbeDelay == 0 {
		cfg.Providers.Ollama.ProbeDelay = DefaultOllamaProbeDelay
	}
	if cfg.Providers.Ollama.ChatTimeout == 0 {
		cfg.Providers.Ollama.ChatTimeout = DefaultOllamaChatTimeout
	}

	// Bridge defaults
	if cfg.Bridge.DefaultModel == "" {
		cfg.Bridge.DefaultModel = DefaultBridgeModel
	}
	if cfg.Bridge.SimpleDefaultModel == "" {
		cfg.Bridge.SimpleDefaultModel = DefaultBridgeSimpleModel
	}
	if cfg.Bridge.DefaultTemperature == 0 {
		cfg.Bridge.DefaultTemperature = DefaultBridgeTemperature
	}
	if cfg.Bridge.DefaultMaxTokens == 0 {
		cfg.Bridge.DefaultMaxTokens = DefaultBridgeMaxTokens
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0}
	}
	if len(cfg.Telemetry.Metrics.TokenCountBuckets) == 0 {
		cfg.Telemetry.Metrics.TokenCountBuckets = []float64{10, 50, 100, 500, 1000, 5000, 10000}
	}

	// Audit defaults
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = DefaultAuditBackend
	}
	if cfg.Audit.SQLite.Path == "" {
		cfg.Audit.SQLite.Path = DefaultAuditSQLitePath
	}
	if cfg.Audit.SQLite.MaxOpenConns == 0 {
		cfg.Audit.SQLite.MaxOpenConns = DefaultAuditSQLiteMaxOpenConns
	}
	if cfg.Audit.SQLite.MaxIdleConns == 0 {
		cfg.Audit.SQLite.MaxIdleConns = DefaultAuditSQLiteMaxIdleConns
	}
	if cfg.Audit.SQLite.BusyTimeout == 0 {
		cfg.Audit.SQLite.BusyTimeout = DefaultAuditSQLiteBusyTimeout
	}
	if cfg.Audit.Recorder.AsyncBuffer == 0 {
		cfg.Audit.Recorder.AsyncBuffer = DefaultAuditRecorderAsyncBuffer
	}
	if cfg.Audit.Recorder.WriteTimeout == 0 {
		cfg.Audit.Recorder.WriteTimeout = DefaultAuditRecorderWriteLimit
	}
	if cfg.Audit.Retention.Days == 0 {
		cfg.Audit.Retention.Days = DefaultAuditRetentionDays
	}
	if cfg.Audit.Retention.MaxRecords == 0 {
		cfg.Audit.Retention.MaxRecords = DefaultAuditRetentionMaxRecords
	}
	if cfg.Audit.Retention.PruneSchedule == "" {
		cfg.Audit.Retention.PruneSchedule = DefaultAuditRetentionSchedule
	}

	// Sessions defaults
	if cfg.Sessions.Backend == "" {
		cfg.Sessions.Backend = DefaultSessionsBackend
	}
	if cfg.Sessions.SQLitePath == "" {
		cfg.Sessions.SQLitePath = DefaultSessionsSQLitePath
	}

	// Platform defaults
	if cfg.Platform.TradingMode == "" {
		cfg.Platform.TradingMode = DefaultTradingMode
	}
	if cfg.Platform.TradingRiskLevel == "" {
		cfg.Platform.TradingRiskLevel = DefaultTradingRiskLevel
	}

	cfg.Frontend.BaseURL = trimBaseURL(cfg.Frontend.BaseURL)
	cfg.Providers.Ollama.BaseURL = trimBaseURL(cfg.Providers.Ollama.BaseURL)
}

// trimBaseURL strips trailing slashes from an upstream base URL.
func trimBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}

// applyCORSDefaults fills zero-valued CORS fields.
func applyCORSDefaults(cors *CORSConfig) {
	if len(cors.AllowedOrigins) == 0 {
		cors.AllowedOrigins = []string{"*"}
	}
	if len(cors.AllowedMethods) == 0 {
		cors.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"}
	}
	if len(cors.AllowedHeaders) == 0 {
		cors.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}
	if len(cors.ExposedHeaders) == 0 {
		cors.ExposedHeaders = []string{"X-Request-ID"}
	}
	if cors.MaxAge == 0 {
		cors.MaxAge = DefaultCORSMaxAge
	}
}
