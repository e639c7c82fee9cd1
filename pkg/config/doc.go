// Package config provides configuration management for the AI Behar Platform.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
// The platform is environment-first: it runs without any configuration file,
// and the file only refines the defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Two naming schemes are honored. The platform's original variables keep
// working for deployments migrated from earlier releases:
//
//   - API_HOST and API_PORT set the listen address
//   - OPENWEBUI_BASE_URL sets frontend.base_url
//   - OLLAMA_BASE_URL sets providers.ollama.base_url
//   - OPENAI_API_KEY sets providers.openai.api_key
//   - TRADING_ENABLED, TRADING_MODE, TRADING_RISK_LEVEL set platform.*
//
// New deployments can use the structured BEHAR_SECTION_FIELD convention:
//
//   - BEHAR_SERVER_PORT overrides server.port
//   - BEHAR_PROVIDERS_OLLAMA_BASE_URL overrides providers.ollama.base_url
//   - BEHAR_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// BEHAR_* variables take precedence when both schemes set the same field.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Platform environment variables
//  4. BEHAR_* environment variables
//  5. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// For application-wide configuration access, use the singleton pattern:
//
//	// At application startup
//	if err := config.Initialize("config.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Anywhere in the application
//	cfg := config.GetConfig()
//	fmt.Println(cfg.Server.ListenAddress())
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
//
// # Hot Reload
//
// A Watcher can observe the configuration file and call ReloadConfig when it
// changes. Only logging settings take effect at runtime; listener addresses
// and upstream base URLs are read once at startup.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., upstream base URLs)
//   - Range validation (e.g., ports must be 1-65535)
//   - Format validation (e.g., base URLs must be absolute http/https)
//   - Logical validation (e.g., sqlite backends require a path)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - frontend.base_url: base URL is required
//	  - providers.ollama.probe_attempts: probe attempts must be at least 1
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	server:
//	  host: "127.0.0.1"
//	  port: 8001
//
//	frontend:
//	  base_url: "http://localhost:8080"
//
//	providers:
//	  ollama:
//	    base_url: "http://localhost:11434"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
// # Thread Safety
//
// All configuration access is thread-safe. The singleton pattern uses read-write
// locks to allow concurrent reads while protecting against concurrent writes during
// reload operations.
package config
