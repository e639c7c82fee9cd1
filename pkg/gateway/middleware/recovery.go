package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/behark/ai/pkg/gateway/types"
	"github.com/behark/ai/pkg/telemetry/logging"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a
// 500 Internal Server Error in the OpenAI error format. The panic and its
// stack trace are logged; the client sees no internal detail.
func RecoveryMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.ErrorContext(r.Context(), "panic in handler",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					errResp := types.NewServerError(
						"An internal error occurred. Please try again later.",
					)
					_ = types.WriteError(w, errResp)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
