// Package providers implements the connection manager for the gateway's
// LLM provider chain.
//
// # Overview
//
// The gateway talks to a single primary provider (Ollama). This package
// owns that relationship: it probes the provider at startup, classifies
// the outcome into a connection state, maintains the model listing, and
// resolves which fallback tier answers chat requests when the primary is
// degraded.
//
// # Connection states
//
// The manager is always in exactly one state:
//
//   - probing: the startup probe has not finished yet
//   - connected: the provider answered the model listing with models
//   - no_models: the provider is reachable but has nothing installed
//   - degraded_error: attempts exhausted on error statuses, or an
//     unexpected failure such as a malformed listing body
//   - disconnected: every attempt failed at the transport layer
//
// A degraded state (no_models, degraded_error, disconnected) additionally
// resolves a fallback capability: fallback_secondary when a usable
// secondary provider credential is configured, mock_active otherwise.
//
// # Probe cycle
//
// A cycle makes up to a configured number of model-listing attempts with a
// fixed delay between them. Error statuses and transport failures both
// consume attempts; any other failure (for example an unparseable body)
// ends the cycle immediately in degraded_error. The state settled on after
// exhaustion reflects how the final attempt failed.
//
// The model listing is never empty: before the first cycle and in every
// degraded state it holds a fixed fallback descriptor.
//
// # Usage
//
//	manager, err := providers.NewManager(&cfg.Providers, platformState, collector, logger)
//	if err != nil {
//	    return err
//	}
//	defer manager.Close()
//
//	go manager.Probe(ctx)
//
//	if err := manager.StartReprobe(ctx); err != nil {
//	    return err
//	}
//
//	models := manager.Models()
//	fmt.Printf("%d models, state %s\n", len(models), manager.State())
//
// Reads are valid at any point; before the probe finishes they report the
// probing state and the fallback descriptor.
//
// # Error handling
//
// The package defines typed errors for the client's failure classes:
//
//   - ProviderError: error statuses and body read failures
//   - TimeoutError: a probe or chat deadline was exceeded
//   - ParseError: malformed listing bodies
//   - ConfigError: invalid provider configuration
//
// Transport failures surface as *upstream.TransportError from the
// forwarding layer.
package providers
