// Package ratelimit implements per-client fixed-window rate limiting.
//
// # Overview
//
// A Limiter counts requests per client key inside discrete, non-overlapping
// time windows. The window for a key starts at its first request and resets
// atomically once the window duration has elapsed:
//
//	limiter := ratelimit.New(ratelimit.Config{
//	    Window:      15 * time.Minute,
//	    MaxRequests: 100,
//	    Message:     "Too many requests, please try again later.",
//	})
//	defer limiter.Close()
//
//	result := limiter.Check(clientKey)
//	if !result.Allowed {
//	    // Reject with 429, result.Remaining and result.ResetAt describe quota
//	}
//
// # Independence
//
// Each Limiter owns its counter store outright. Two instances with different
// configurations (a coarse global limiter and a stricter AI-route limiter)
// never share state, so a key's quota in one has no effect on the other.
//
// # Expiry
//
// Expired windows are detected lazily at lookup time; a background janitor
// additionally sweeps counters whose window has long passed so that idle
// keys do not accumulate. Close stops the janitor.
package ratelimit
