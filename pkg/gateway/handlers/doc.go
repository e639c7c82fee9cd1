// Package handlers provides the HTTP request handlers for the gateway.
//
// Four endpoint families live here:
//
// Chat handlers:
//   - CompletionsHandler: OpenAI-compatible completions; provider failures
//     degrade to a templated 200 reply
//   - SimpleChatHandler: native-format chat; provider failures surface as
//     passed-through statuses or 502
//
// Platform handlers:
//   - HealthHandler, StatusHandler: liveness and platform summary
//   - ConsciousnessStateHandler, ConsciousnessExpandHandler, AgentsHandler,
//     MemoryStatsHandler, TradingStatusHandler: the platform stub surface
//
// Model handlers:
//   - ModelsHandler: OpenAI-compatible listing for OpenWebUI
//   - AvailableModelsHandler: descriptors with provider state attached
//
// Frontend handlers:
//   - RootHandler: redirect to the frontend when it answers a probe, the
//     local status page otherwise
//   - ChatPageHandler: meta-refresh page to the frontend root
//   - OpenWebUIStatusHandler: live integration view
//
// # Error Handling
//
// JSON surfaces report errors in the OpenAI-compatible format:
//
//	{
//	  "error": {
//	    "message": "messages must contain at least one message",
//	    "type": "invalid_request_error",
//	    "param": "messages",
//	    "code": "missing_field"
//	  }
//	}
//
// HTML surfaces (the root page and /chat) use plain http.Error text.
//
// # Recording
//
// The chat handlers record each request three ways after the response is
// written: a Prometheus sample (count, duration, tokens, fallback), an
// audit record, and a session row. Requests rejected before a provider
// call are recorded with outcome "invalid" and skip session accounting.
// All recording is best-effort; a failed write never fails the request.
package handlers
