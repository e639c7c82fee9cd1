package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/behark/ai/pkg/gateway/types"
)

// TimeoutMiddleware enforces a per-request deadline via context.WithTimeout.
// When the deadline passes before the handler finishes, a 504 Gateway
// Timeout error is written and the handler's context is cancelled so it can
// release any upstream connection it holds.
//
// A zero or negative timeout disables the middleware. The timeout must
// exceed every upstream timeout so that in normal operation the slow party
// answers first and this path never races the handler's own write.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(w, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return

			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					errResp := types.NewGatewayTimeoutError(
						"Request timeout: the request took too long to complete",
					)
					_ = types.WriteError(w, errResp)
				}
			}
		})
	}
}
