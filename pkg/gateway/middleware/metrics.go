package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/behark/ai/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count, duration, and response size for
// one route. It is applied per route at registration time so the metric
// carries the registered route pattern as its label rather than the raw
// URL path, which would be unbounded.
func MetricsMiddleware(collector *metrics.Collector, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			collector.RecordHTTPRequest(r.Method, route, strconv.Itoa(rw.statusCode), time.Since(startTime))
			collector.RecordResponseSize(route, rw.bytes)
		})
	}
}
