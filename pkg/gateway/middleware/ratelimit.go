package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mentorly-hq/triton/pkg/ratelimit"
	"mentorly-hq/triton/pkg/telemetry/metrics"
)

// RateLimitMiddleware gates requests through a fixed-window limiter keyed by
// the resolved client identity. Rejections short-circuit the pipeline with
// 429 and the limiter's configured message; they are an admission-control
// decision, not a failure, and never reach the error boundary.
//
// Quota headers are emitted according to the limiter's HeaderMode:
// "standard" uses RateLimit-* with the reset as delta seconds, "legacy"
// uses X-RateLimit-* with a Unix reset timestamp, "none" suppresses them.
//
// name labels the limiter tier ("global", "ai") in logs and metrics.
// collector may be nil.
func RateLimitMiddleware(limiter *ratelimit.Limiter, name string, collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetClientKey(r.Context())
			if key == "" {
				// Identity resolver did not run; fall back to the peer
				// address so the limiter still has a usable key.
				key = resolveClientKey(r, 0)
			}

			result := limiter.Check(key)
			setRateLimitHeaders(w, limiter.Config().Headers, result)

			if !result.Allowed {
				if collector != nil {
					collector.RateLimitRejection(name)
				}
				slog.DebugContext(r.Context(), "request rate limited",
					"limiter", name,
					"client_key", key,
					"reset_at", result.ResetAt,
				)

				retryAfter := int(time.Until(result.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(limiter.Config().Message))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// setRateLimitHeaders reports quota metadata in the configured header family.
func setRateLimitHeaders(w http.ResponseWriter, mode ratelimit.HeaderMode, result ratelimit.Result) {
	switch mode {
	case ratelimit.HeaderModeStandard:
		resetSeconds := int(time.Until(result.ResetAt).Seconds())
		if resetSeconds < 0 {
			resetSeconds = 0
		}
		w.Header().Set("RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("RateLimit-Reset", strconv.Itoa(resetSeconds))
	case ratelimit.HeaderModeLegacy:
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	}
}
