// Package frontend serves the OpenWebUI frontend through the gateway.
//
// Requests under /ui relay to the configured frontend base URL with
// hop-by-hop headers rewritten and everything else carried verbatim; an
// unreachable frontend yields a diagnostic 502 page rather than an opaque
// error. Probe answers the short reachability check behind the root
// redirect.
package frontend
