// Package upstream provides the shared outbound HTTP plumbing the gateway
// uses to reach the frontend and the model runtime.
//
// A Forwarder owns a pooled transport; every call carries its own timeout
// because the two upstreams have very different latency profiles (a
// frontend probe completes in milliseconds, a chat completion can run for
// a minute). Requests name BaseURL and Path separately, and the query
// string travels verbatim, so proxied URLs reach the upstream byte for
// byte.
//
// Transport failures are reported as *TransportError with the attempted
// target URL attached, while HTTP error statuses are returned as ordinary
// responses for the caller to interpret. Redirect handling is fixed per
// Forwarder: the reverse proxy follows redirects, probes return the
// redirect response itself.
package upstream
