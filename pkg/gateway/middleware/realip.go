package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// RealIPMiddleware resolves the trust-adjusted client identity used as the
// rate-limit key and stores it in the request context.
//
// With trustHops = 1 (one reverse proxy in front of the process), the key is
// the left-most well-formed address in the X-Forwarded-For chain; if the
// header is absent or malformed, the direct peer address is used. With
// trustHops <= 0 the forwarded header is ignored entirely.
//
// The trust depth must match the deployment topology exactly: trusting a
// forwarded header that no proxy of ours wrote lets any client choose its
// own rate-limit key.
func RealIPMiddleware(trustHops int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := resolveClientKey(r, trustHops)
			ctx := context.WithValue(r.Context(), ClientKeyKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientKey extracts the resolved client key from the context.
// Returns empty string if the identity resolver did not run.
func GetClientKey(ctx context.Context) string {
	if key, ok := ctx.Value(ClientKeyKey).(string); ok {
		return key
	}
	return ""
}

// resolveClientKey always returns a usable key; it falls back to the direct
// peer address and, failing even that, the raw RemoteAddr string.
func resolveClientKey(r *http.Request, trustHops int) string {
	if trustHops > 0 {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first := xff
			if idx := strings.IndexByte(xff, ','); idx >= 0 {
				first = xff[:idx]
			}
			first = strings.TrimSpace(first)
			if ip := net.ParseIP(first); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
