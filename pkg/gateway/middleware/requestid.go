// Package middleware provides the HTTP middleware chain for the gateway:
// panic recovery, request logging, request ID assignment, CORS, per-request
// timeouts, and per-route metrics.
package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/behark/ai/pkg/telemetry/logging"
)

const (
	// RequestIDHeader is the HTTP header for request ID.
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware assigns each request a unique ID and adds it to the
// context and response headers. A client-provided X-Request-ID header is
// honored instead of generating a new one.
//
// The ID is stored with logging.WithRequestID, so every log line written
// from the request context carries it automatically.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = generateRequestID()
		}

		ctx := logging.WithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// generateRequestID generates a unique request ID using cryptographic
// random bytes. Format: 16 bytes (32 hex characters).
func generateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is effectively unheard of; keep the request
		// serviceable rather than erroring out.
		return "fallback-request-id"
	}
	return hex.EncodeToString(b)
}
