package ratelimit

import (
	"sync"
	"time"
)

// HeaderMode selects which rate-limit response headers a limiter's callers
// should emit alongside its decisions.
type HeaderMode string

const (
	// HeaderModeStandard emits draft-standard RateLimit-* headers.
	HeaderModeStandard HeaderMode = "standard"

	// HeaderModeLegacy emits the older X-RateLimit-* header family.
	HeaderModeLegacy HeaderMode = "legacy"

	// HeaderModeNone suppresses rate-limit headers entirely.
	HeaderModeNone HeaderMode = "none"
)

// Config configures a single Limiter instance. It is immutable after New.
type Config struct {
	// Window is the fixed window duration. A key's window starts at its
	// first request and resets once Window has elapsed.
	Window time.Duration

	// MaxRequests is the number of requests admitted per key per window.
	// The request that pushes a key's count to MaxRequests+1 is the first
	// one rejected.
	MaxRequests int

	// Message is the response body sent to rejected clients.
	Message string

	// Headers selects the header family callers emit with this limiter's
	// decisions.
	Headers HeaderMode

	// SweepInterval is how often the janitor removes counters whose window
	// has expired. Zero means once per Window.
	SweepInterval time.Duration
}

// Result is the outcome of a single admission check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Limit is the configured MaxRequests.
	Limit int

	// Remaining is how many requests the key may still make in the current
	// window. Never negative.
	Remaining int

	// ResetAt is when the key's current window ends.
	ResetAt time.Time
}

// windowCounter tracks one key's count within its current window.
type windowCounter struct {
	count       int
	windowStart time.Time
}

// Limiter is a fixed-window request counter keyed by client identity.
//
// All methods are safe for concurrent use. The increment-then-compare
// sequence inside Check runs under the limiter's lock so parallel requests
// from the same key cannot undercount.
type Limiter struct {
	config   Config
	mu       sync.Mutex
	counters map[string]*windowCounter
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Limiter and starts its janitor goroutine.
// The caller must Close the limiter when done with it.
func New(config Config) *Limiter {
	if config.SweepInterval <= 0 {
		config.SweepInterval = config.Window
	}

	l := &Limiter{
		config:   config,
		counters: make(map[string]*windowCounter),
		done:     make(chan struct{}),
	}

	go l.sweepLoop()

	return l
}

// Check records one request for key and reports whether it is admitted.
//
// The count increments on every call regardless of outcome: rejected
// requests still consume window state, so a client hammering a closed
// window does not advance its own reset.
func (l *Limiter) Check(key string) Result {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || now.Sub(c.windowStart) >= l.config.Window {
		// Lazily start a fresh window on first sight or after expiry.
		c = &windowCounter{windowStart: now}
		l.counters[key] = c
	}

	c.count++

	remaining := l.config.MaxRequests - c.count
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   c.count <= l.config.MaxRequests,
		Limit:     l.config.MaxRequests,
		Remaining: remaining,
		ResetAt:   c.windowStart.Add(l.config.Window),
	}
}

// Config returns the limiter's immutable configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// Len returns the number of keys currently tracked. Used by the janitor
// tests and exposed for observability.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}

// Close stops the janitor goroutine. The limiter remains usable afterwards
// but expired counters are then only reclaimed lazily on Check.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// sweepLoop periodically removes counters whose window has expired.
func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now())
		case <-l.done:
			return
		}
	}
}

// sweep deletes counters that expired before now.
func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, c := range l.counters {
		if now.Sub(c.windowStart) >= l.config.Window {
			delete(l.counters, key)
		}
	}
}
