package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Values from the file are layered over the built-in defaults and the result
// is validated. The platform is environment-first: an empty path or a missing
// file is not an error and yields the defaults. Environment variables are not
// consulted; use LoadConfigWithEnvOverrides for that behavior.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Fall through to defaults, configuration files are optional.
		case err != nil:
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
			}
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Two naming schemes are honored: the
// platform's original variables (OPENWEBUI_BASE_URL, OLLAMA_BASE_URL,
// OPENAI_API_KEY, API_HOST, API_PORT, TRADING_*) and the structured
// BEHAR_SECTION_FIELD convention (e.g. BEHAR_SERVER_PORT). The structured
// scheme takes precedence when both are set.
//
// The loading sequence is:
// 1. Layer YAML over built-in defaults
// 2. Apply platform environment variables
// 3. Apply BEHAR_* environment variables
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyPlatformEnvOverrides(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyPlatformEnvOverrides applies the platform's original environment
// variable names. These are the variables operators already export for the
// Python deployment, so they keep working unchanged.
func applyPlatformEnvOverrides(cfg *Config) {
	if val := os.Getenv("API_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("API_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = i
		}
	}
	if val := os.Getenv("OPENWEBUI_BASE_URL"); val != "" {
		cfg.Frontend.BaseURL = trimBaseURL(val)
	}
	if val := os.Getenv("OLLAMA_BASE_URL"); val != "" {
		cfg.Providers.Ollama.BaseURL = trimBaseURL(val)
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		cfg.Providers.OpenAI.APIKey = val
	}
	if val := os.Getenv("TRADING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Platform.TradingEnabled = b
		}
	}
	if val := os.Getenv("TRADING_MODE"); val != "" {
		cfg.Platform.TradingMode = val
	}
	if val := os.Getenv("TRADING_RISK_LEVEL"); val != "" {
		cfg.Platform.TradingRiskLevel = val
	}
}

// applyEnvOverrides applies BEHAR_SECTION_FIELD environment variable
// overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("BEHAR_SERVER_HOST"); val != "" {
		cfg.Server.Host = val
	}
	if val := os.Getenv("BEHAR_SERVER_PORT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = i
		}
	}
	if val := os.Getenv("BEHAR_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_SERVER_REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.RequestTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_SERVER_MAX_HEADER_BYTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.MaxHeaderBytes = i
		}
	}

	// Frontend overrides
	if val := os.Getenv("BEHAR_FRONTEND_BASE_URL"); val != "" {
		cfg.Frontend.BaseURL = trimBaseURL(val)
	}
	if val := os.Getenv("BEHAR_FRONTEND_PROXY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Frontend.ProxyTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_FRONTEND_PROBE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Frontend.ProbeTimeout = d
		}
	}

	// Provider overrides
	if val := os.Getenv("BEHAR_PROVIDERS_OLLAMA_BASE_URL"); val != "" {
		cfg.Providers.Ollama.BaseURL = trimBaseURL(val)
	}
	if val := os.Getenv("BEHAR_PROVIDERS_OLLAMA_PROBE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Providers.Ollama.ProbeTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_PROVIDERS_OLLAMA_PROBE_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Providers.Ollama.ProbeAttempts = i
		}
	}
	if val := os.Getenv("BEHAR_PROVIDERS_OLLAMA_PROBE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Providers.Ollama.ProbeDelay = d
		}
	}
	if val := os.Getenv("BEHAR_PROVIDERS_OLLAMA_CHAT_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Providers.Ollama.ChatTimeout = d
		}
	}
	if val := os.Getenv("BEHAR_PROVIDERS_OLLAMA_REPROBE_SCHEDULE"); val != "" {
		cfg.Providers.Ollama.ReprobeSchedule = val
	}
	if val := os.Getenv("BEHAR_PROVIDERS_OPENAI_API_KEY"); val != "" {
		cfg.Providers.OpenAI.APIKey = val
	}

	// Bridge overrides
	if val := os.Getenv("BEHAR_BRIDGE_DEFAULT_MODEL"); val != "" {
		cfg.Bridge.DefaultModel = val
	}
	if val := os.Getenv("BEHAR_BRIDGE_SIMPLE_DEFAULT_MODEL"); val != "" {
		cfg.Bridge.SimpleDefaultModel = val
	}
	if val := os.Getenv("BEHAR_BRIDGE_DEFAULT_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Bridge.DefaultTemperature = f
		}
	}
	if val := os.Getenv("BEHAR_BRIDGE_DEFAULT_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Bridge.DefaultMaxTokens = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv("BEHAR_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("BEHAR_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("BEHAR_TELEMETRY_LOGGING_ADD_SOURCE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.AddSource = b
		}
	}
	if val := os.Getenv("BEHAR_TELEMETRY_LOGGING_REDACT_SECRETS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.RedactSecrets = b
		}
	}
	if val := os.Getenv("BEHAR_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("BEHAR_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}

	// Audit overrides
	if val := os.Getenv("BEHAR_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("BEHAR_AUDIT_BACKEND"); val != "" {
		cfg.Audit.Backend = val
	}
	if val := os.Getenv("BEHAR_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLite.Path = val
	}
	if val := os.Getenv("BEHAR_AUDIT_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.Retention.Days = i
		}
	}
	if val := os.Getenv("BEHAR_AUDIT_RETENTION_MAX_RECORDS"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Audit.Retention.MaxRecords = i
		}
	}
	if val := os.Getenv("BEHAR_AUDIT_RETENTION_PRUNE_SCHEDULE"); val != "" {
		cfg.Audit.Retention.PruneSchedule = val
	}

	// Sessions overrides
	if val := os.Getenv("BEHAR_SESSIONS_BACKEND"); val != "" {
		cfg.Sessions.Backend = val
	}
	if val := os.Getenv("BEHAR_SESSIONS_SQLITE_PATH"); val != "" {
		cfg.Sessions.SQLitePath = val
	}
}
