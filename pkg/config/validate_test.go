package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid config, got: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		message string
	}{
		{
			name:   "missing host",
			mutate: func(c *Config) { c.Server.Host = "" },
			field:  "server.host",
		},
		{
			name:   "port too large",
			mutate: func(c *Config) { c.Server.Port = 70000 },
			field:  "server.port",
		},
		{
			name:   "port zero",
			mutate: func(c *Config) { c.Server.Port = 0 },
			field:  "server.port",
		},
		{
			name:   "excessive header bytes",
			mutate: func(c *Config) { c.Server.MaxHeaderBytes = 20 * 1024 * 1024 },
			field:  "server.max_header_bytes",
		},
		{
			name:   "missing frontend base url",
			mutate: func(c *Config) { c.Frontend.BaseURL = "" },
			field:  "frontend.base_url",
		},
		{
			name:    "frontend base url bad scheme",
			mutate:  func(c *Config) { c.Frontend.BaseURL = "ftp://somewhere" },
			field:   "frontend.base_url",
			message: "scheme",
		},
		{
			name:   "missing ollama base url",
			mutate: func(c *Config) { c.Providers.Ollama.BaseURL = "" },
			field:  "providers.ollama.base_url",
		},
		{
			name:   "zero probe attempts",
			mutate: func(c *Config) { c.Providers.Ollama.ProbeAttempts = 0 },
			field:  "providers.ollama.probe_attempts",
		},
		{
			name:   "excessive probe attempts",
			mutate: func(c *Config) { c.Providers.Ollama.ProbeAttempts = 50 },
			field:  "providers.ollama.probe_attempts",
		},
		{
			name:   "missing default model",
			mutate: func(c *Config) { c.Bridge.DefaultModel = "" },
			field:  "bridge.default_model",
		},
		{
			name:   "temperature out of range",
			mutate: func(c *Config) { c.Bridge.DefaultTemperature = 3.5 },
			field:  "bridge.default_temperature",
		},
		{
			name:   "invalid logging level",
			mutate: func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			field:  "telemetry.logging.level",
		},
		{
			name:   "invalid logging format",
			mutate: func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			field:  "telemetry.logging.format",
		},
		{
			name:   "metrics path without slash",
			mutate: func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			field:  "telemetry.metrics.path",
		},
		{
			name:   "invalid audit backend",
			mutate: func(c *Config) { c.Audit.Backend = "postgres" },
			field:  "audit.backend",
		},
		{
			name: "sqlite audit without path",
			mutate: func(c *Config) {
				c.Audit.Backend = "sqlite"
				c.Audit.SQLite.Path = ""
			},
			field: "audit.sqlite.path",
		},
		{
			name:   "excessive retention",
			mutate: func(c *Config) { c.Audit.Retention.Days = 5000 },
			field:  "audit.retention.days",
		},
		{
			name:   "invalid sessions backend",
			mutate: func(c *Config) { c.Sessions.Backend = "redis" },
			field:  "sessions.backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			vErr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}

			found := false
			for _, fe := range vErr.Errors {
				if fe.Field == tt.field {
					found = true
					if tt.message != "" && !strings.Contains(fe.Message, tt.message) {
						t.Errorf("expected message containing %q, got %q", tt.message, fe.Message)
					}
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got: %v", tt.field, err)
			}
		})
	}
}

func TestValidate_DisabledAuditSkipsChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Audit.Enabled = false
	cfg.Audit.Backend = "bogus"
	cfg.Audit.Retention.Days = -1

	if err := Validate(cfg); err != nil {
		t.Errorf("expected disabled audit to skip validation, got: %v", err)
	}
}

func TestValidationError_Formatting(t *testing.T) {
	single := ValidationError{Errors: []FieldError{
		{Field: "server.port", Message: "port must be between 1 and 65535"},
	}}
	if !strings.Contains(single.Error(), "server.port") {
		t.Errorf("expected field path in error, got %q", single.Error())
	}

	multiple := ValidationError{Errors: []FieldError{
		{Field: "server.port", Message: "port must be between 1 and 65535"},
		{Field: "frontend.base_url", Message: "base URL is required"},
	}}
	msg := multiple.Error()
	if !strings.Contains(msg, "2 errors") {
		t.Errorf("expected error count in message, got %q", msg)
	}
	if !strings.Contains(msg, "frontend.base_url") {
		t.Errorf("expected all field paths in message, got %q", msg)
	}
}
