// Behar is the AI Behar Platform gateway.
//
// It puts a local LLM provider, an OpenAI-compatible chat API, and the
// OpenWebUI frontend behind a single HTTP listener, providing:
//   - OpenAI-style chat completions bridged to the native provider API
//   - Graceful fallback replies when the provider is unreachable
//   - The OpenWebUI frontend proxied under /ui
//   - Platform status surfaces, audit records, and session tracking
//
// Usage:
//
//	# Start the gateway with default configuration
//	behar run
//
//	# Start with a custom configuration file
//	behar run --config /path/to/config.yaml
//
//	# Validate configuration without starting
//	behar run --dry-run
//
//	# Show version information
//	behar version
//
// For complete documentation, see: https://github.com/behark/ai
package main

func main() {
	Execute()
}
