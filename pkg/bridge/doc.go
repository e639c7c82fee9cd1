// Package bridge translates OpenAI-compatible chat requests into the
// provider's native format and translates the replies back.
//
// # Flows
//
// The bridge exposes two entry points with deliberately different failure
// policies:
//
//   - Complete serves the OpenAI-compatible completion surface. It never
//     surfaces provider failures: an unreachable provider, an error
//     status, or a malformed body all degrade to a templated fallback
//     completion returned as a normal reply.
//   - SimpleChat serves the native-format surface. Provider error
//     statuses propagate to the caller unchanged and transport failures
//     map to 502, both carrying a fallback body with success set to
//     false.
//
// Both flows reject an invalid request with a *ValidationError before any
// provider call is made.
//
// # Usage
//
//	brdg := bridge.New(&cfg.Bridge, manager, logger)
//
//	resp, outcome, err := brdg.Complete(ctx, &bridge.ChatRequest{
//		Messages: []bridge.ChatMessage{{Role: bridge.RoleUser, Content: "Hello"}},
//	})
//	if err != nil {
//		// invalid request, respond 400
//	}
//	_ = outcome.Fallback() // true when resp carries the templated reply
//
// # Token accounting
//
// Usage counts are whitespace word counts of the final request message and
// the reply text, not tokenizer output. Fallback replies report a fixed
// completion count instead of counting the template.
package bridge
