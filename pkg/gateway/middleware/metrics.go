package middleware

import (
	"net/http"
	"strings"
	"time"

	"mentorly-hq/triton/pkg/telemetry/metrics"
)

// MetricsMiddleware records request count and latency per route prefix.
// A nil collector disables instrumentation.
func MetricsMiddleware(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if collector == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			collector.ObserveRequest(routeLabel(r.URL.Path), r.Method, rw.Status(), time.Since(start))
		})
	}
}

// routeLabel reduces a request path to its first segment so metric
// cardinality stays bounded regardless of sub-paths and IDs.
func routeLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return "/"
	}
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return "/" + trimmed
}
