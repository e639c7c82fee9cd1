package frontend

import "net/http"

// Hop-by-hop and transport-conditioned request headers that must not be
// relayed upstream. The transport renegotiates connection handling and
// recomputes lengths for the new connection, so forwarding these corrupts
// the upstream exchange.
var droppedRequestHeaders = map[string]struct{}{
	"Host":                {},
	"Content-Length":      {},
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailers":            {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

// Response headers that must not be relayed back to the client. The Go
// transport has already decoded the body and will re-frame it, so the
// upstream's encoding and connection headers no longer describe what the
// client receives.
var droppedResponseHeaders = map[string]struct{}{
	"Content-Encoding":  {},
	"Transfer-Encoding": {},
	"Connection":        {},
}

// FilterRequestHeaders returns a copy of src without the headers that must
// not cross a proxy hop. Matching is case-insensitive; all values of kept
// headers are preserved.
func FilterRequestHeaders(src http.Header) http.Header {
	dst := make(http.Header, len(src))
	for name, values := range src {
		if _, dropped := droppedRequestHeaders[http.CanonicalHeaderKey(name)]; dropped {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
	return dst
}

// FilterResponseHeaders copies src into dst, skipping headers that no
// longer describe the re-framed response body.
func FilterResponseHeaders(dst, src http.Header) {
	for name, values := range src {
		if _, dropped := droppedResponseHeaders[http.CanonicalHeaderKey(name)]; dropped {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}
