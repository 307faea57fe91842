package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"mentorly-hq/triton/pkg/config"
)

// CORSMiddleware applies the gateway's cross-origin policy.
//
// Origins are matched exactly and case-sensitively against the allow-list.
// A matching origin is echoed back in Access-Control-Allow-Origin together
// with the credentials header; an unlisted origin gets no permissive headers
// at all, but the request is still processed server-side (the browser is the
// enforcement point).
//
// Preflight OPTIONS requests are answered immediately with 204 and never
// reach the rate limiters or the router, so probing a closed window with
// preflights consumes no quota.
func CORSMiddleware(cfg config.CORSConfig) func(http.Handler) http.Handler {
	allowMethods := strings.Join(cfg.AllowedMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && slices.Contains(cfg.AllowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				// The response varies by requester; keep caches honest.
				w.Header().Add("Vary", "Origin")
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", allowMethods)
				w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
