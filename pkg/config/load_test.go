package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  host: "0.0.0.0"
  port: 9001
  read_timeout: "60s"

frontend:
  base_url: "http://frontend:3000/"

providers:
  ollama:
    base_url: "http://ollama:11434"
    probe_attempts: 5

bridge:
  default_model: "mistral"

telemetry:
  logging:
    level: "debug"
    format: "text"
  metrics:
    enabled: true
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host %q, got %q", "0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("expected port %d, got %d", 9001, cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout %v, got %v", 60*time.Second, cfg.Server.ReadTimeout)
	}

	// Trailing slash must be trimmed from base URLs.
	if cfg.Frontend.BaseURL != "http://frontend:3000" {
		t.Errorf("expected frontend base URL %q, got %q", "http://frontend:3000", cfg.Frontend.BaseURL)
	}

	if cfg.Providers.Ollama.BaseURL != "http://ollama:11434" {
		t.Errorf("expected ollama base URL %q, got %q", "http://ollama:11434", cfg.Providers.Ollama.BaseURL)
	}
	if cfg.Providers.Ollama.ProbeAttempts != 5 {
		t.Errorf("expected probe attempts %d, got %d", 5, cfg.Providers.Ollama.ProbeAttempts)
	}

	if cfg.Bridge.DefaultModel != "mistral" {
		t.Errorf("expected default model %q, got %q", "mistral", cfg.Bridge.DefaultModel)
	}

	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Providers.Ollama.ChatTimeout != DefaultOllamaChatTimeout {
		t.Errorf("expected default chat timeout %v, got %v", DefaultOllamaChatTimeout, cfg.Providers.Ollama.ChatTimeout)
	}
	if !cfg.Audit.Enabled {
		t.Error("expected audit to default to enabled")
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load config without a file: %v", err)
	}

	if cfg.Server.Host != DefaultHost {
		t.Errorf("expected default host %q, got %q", DefaultHost, cfg.Server.Host)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Server.Port)
	}
	if cfg.Frontend.BaseURL != DefaultFrontendBaseURL {
		t.Errorf("expected default frontend base URL %q, got %q", DefaultFrontendBaseURL, cfg.Frontend.BaseURL)
	}
	if cfg.Providers.Ollama.BaseURL != DefaultOllamaBaseURL {
		t.Errorf("expected default ollama base URL %q, got %q", DefaultOllamaBaseURL, cfg.Providers.Ollama.BaseURL)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	// A missing file is not an error; the platform is environment-first.
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for a missing file, got error: %v", err)
	}

	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Server.Port)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	malformedContent := `
server:
  host: "127.0.0.1"
  invalid yaml here: [
`

	if err := os.WriteFile(configPath, []byte(malformedContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidContent := `
server:
  port: 99999

telemetry:
  logging:
    level: "invalid"
    format: "json"
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError in error chain, got %T: %v", err, err)
	}
}

func TestLoadConfigWithEnvOverrides_PlatformVariables(t *testing.T) {
	os.Setenv("API_HOST", "0.0.0.0")
	os.Setenv("API_PORT", "9090")
	os.Setenv("OPENWEBUI_BASE_URL", "http://webui:3000/")
	os.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")
	os.Setenv("OPENAI_API_KEY", "sk-test-key-123")
	defer func() {
		os.Unsetenv("API_HOST")
		os.Unsetenv("API_PORT")
		os.Unsetenv("OPENWEBUI_BASE_URL")
		os.Unsetenv("OLLAMA_BASE_URL")
		os.Unsetenv("OPENAI_API_KEY")
	}()

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host %q from env, got %q", "0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port %d from env, got %d", 9090, cfg.Server.Port)
	}
	if cfg.Frontend.BaseURL != "http://webui:3000" {
		t.Errorf("expected frontend base URL %q from env, got %q", "http://webui:3000", cfg.Frontend.BaseURL)
	}
	if cfg.Providers.Ollama.BaseURL != "http://ollama:11434" {
		t.Errorf("expected ollama base URL %q from env, got %q", "http://ollama:11434", cfg.Providers.Ollama.BaseURL)
	}
	if cfg.Providers.OpenAI.APIKey != "sk-test-key-123" {
		t.Errorf("expected API key from env, got %q", cfg.Providers.OpenAI.APIKey)
	}
	if !cfg.Providers.HasSecondaryCredential() {
		t.Error("expected secondary credential to be recognized")
	}
}

func TestLoadConfigWithEnvOverrides_StructuredPrecedence(t *testing.T) {
	// BEHAR_* variables win over the platform's original names.
	os.Setenv("OLLAMA_BASE_URL", "http://legacy:11434")
	os.Setenv("BEHAR_PROVIDERS_OLLAMA_BASE_URL", "http://structured:11434")
	os.Setenv("API_PORT", "9001")
	os.Setenv("BEHAR_SERVER_PORT", "9002")
	defer func() {
		os.Unsetenv("OLLAMA_BASE_URL")
		os.Unsetenv("BEHAR_PROVIDERS_OLLAMA_BASE_URL")
		os.Unsetenv("API_PORT")
		os.Unsetenv("BEHAR_SERVER_PORT")
	}()

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Providers.Ollama.BaseURL != "http://structured:11434" {
		t.Errorf("expected structured override to win, got %q", cfg.Providers.Ollama.BaseURL)
	}
	if cfg.Server.Port != 9002 {
		t.Errorf("expected structured port override to win, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigWithEnvOverrides_DurationParsing(t *testing.T) {
	os.Setenv("BEHAR_PROVIDERS_OLLAMA_CHAT_TIMEOUT", "90s")
	os.Setenv("BEHAR_FRONTEND_PROBE_TIMEOUT", "750ms")
	defer func() {
		os.Unsetenv("BEHAR_PROVIDERS_OLLAMA_CHAT_TIMEOUT")
		os.Unsetenv("BEHAR_FRONTEND_PROBE_TIMEOUT")
	}()

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Providers.Ollama.ChatTimeout != 90*time.Second {
		t.Errorf("expected chat timeout %v, got %v", 90*time.Second, cfg.Providers.Ollama.ChatTimeout)
	}
	if cfg.Frontend.ProbeTimeout != 750*time.Millisecond {
		t.Errorf("expected probe timeout %v, got %v", 750*time.Millisecond, cfg.Frontend.ProbeTimeout)
	}
}

func TestLoadConfigWithEnvOverrides_BooleanParsing(t *testing.T) {
	os.Setenv("TRADING_ENABLED", "true")
	os.Setenv("BEHAR_AUDIT_ENABLED", "false")
	os.Setenv("BEHAR_TELEMETRY_METRICS_ENABLED", "false")
	defer func() {
		os.Unsetenv("TRADING_ENABLED")
		os.Unsetenv("BEHAR_AUDIT_ENABLED")
		os.Unsetenv("BEHAR_TELEMETRY_METRICS_ENABLED")
	}()

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.Platform.TradingEnabled {
		t.Error("expected trading enabled to be true from env")
	}
	if cfg.Audit.Enabled {
		t.Error("expected audit enabled to be false from env")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics enabled to be false from env")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidEnvValues(t *testing.T) {
	// Unparseable numeric values are ignored; invalid enum values fail
	// validation after overrides are applied.
	os.Setenv("API_PORT", "not-a-number")
	os.Setenv("BEHAR_TELEMETRY_LOGGING_LEVEL", "invalid-level")
	defer func() {
		os.Unsetenv("API_PORT")
		os.Unsetenv("BEHAR_TELEMETRY_LOGGING_LEVEL")
	}()

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Error("expected validation error for invalid env values")
	}
}
