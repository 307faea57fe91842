package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"mentorly-hq/triton/pkg/ratelimit"
)

func limitedHandler(t *testing.T, cfg ratelimit.Config) http.Handler {
	t.Helper()
	limiter := ratelimit.New(cfg)
	t.Cleanup(limiter.Close)

	return RateLimitMiddleware(limiter, "test", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func requestWithKey(key string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(context.WithValue(req.Context(), ClientKeyKey, key))
}

func TestRateLimitRejectsOverQuota(t *testing.T) {
	handler := limitedHandler(t, ratelimit.Config{
		Window:      time.Minute,
		MaxRequests: 3,
		Message:     "Too many requests from this IP, please try again later.",
		Headers:     ratelimit.HeaderModeStandard,
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestWithKey("1.2.3.4"))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithKey("1.2.3.4"))

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("over-quota status = %d, want 429", w.Code)
	}
	if w.Body.String() != "Too many requests from this IP, please try again later." {
		t.Errorf("rejection body = %q, want configured message", w.Body.String())
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing on rejection")
	}

	// A different key is still admitted.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithKey("5.6.7.8"))
	if w.Code != http.StatusOK {
		t.Errorf("other key status = %d, want 200", w.Code)
	}
}

func TestRateLimitStandardHeaders(t *testing.T) {
	handler := limitedHandler(t, ratelimit.Config{
		Window:      time.Minute,
		MaxRequests: 5,
		Message:     "slow down",
		Headers:     ratelimit.HeaderModeStandard,
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithKey("k"))

	if got := w.Header().Get("RateLimit-Limit"); got != "5" {
		t.Errorf("RateLimit-Limit = %q, want 5", got)
	}
	if got := w.Header().Get("RateLimit-Remaining"); got != "4" {
		t.Errorf("RateLimit-Remaining = %q, want 4", got)
	}
	reset, err := strconv.Atoi(w.Header().Get("RateLimit-Reset"))
	if err != nil || reset < 0 || reset > 60 {
		t.Errorf("RateLimit-Reset = %q, want delta seconds within the window", w.Header().Get("RateLimit-Reset"))
	}
	if w.Header().Get("X-RateLimit-Limit") != "" {
		t.Error("legacy headers must not be set in standard mode")
	}
}

func TestRateLimitLegacyHeaders(t *testing.T) {
	handler := limitedHandler(t, ratelimit.Config{
		Window:      time.Minute,
		MaxRequests: 5,
		Message:     "slow down",
		Headers:     ratelimit.HeaderModeLegacy,
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithKey("k"))

	if got := w.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Errorf("X-RateLimit-Limit = %q, want 5", got)
	}
	reset, err := strconv.ParseInt(w.Header().Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		t.Fatalf("X-RateLimit-Reset not an integer: %v", err)
	}
	if resetTime := time.Unix(reset, 0); time.Until(resetTime) > time.Minute+time.Second || time.Until(resetTime) < 0 {
		t.Errorf("X-RateLimit-Reset = %v, want within the window", resetTime)
	}
	if w.Header().Get("RateLimit-Limit") != "" {
		t.Error("standard headers must not be set in legacy mode")
	}
}

func TestRateLimitNoneHeaderMode(t *testing.T) {
	handler := limitedHandler(t, ratelimit.Config{
		Window:      time.Minute,
		MaxRequests: 1,
		Message:     "slow down",
		Headers:     ratelimit.HeaderModeNone,
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestWithKey("k"))

	for _, h := range []string{"RateLimit-Limit", "RateLimit-Remaining", "RateLimit-Reset", "X-RateLimit-Limit"} {
		if got := w.Header().Get(h); got != "" {
			t.Errorf("%s = %q, want unset in none mode", h, got)
		}
	}
}

func TestRateLimitFallsBackToPeerAddress(t *testing.T) {
	limiter := ratelimit.New(ratelimit.Config{Window: time.Minute, MaxRequests: 1, Message: "m"})
	t.Cleanup(limiter.Close)

	handler := RateLimitMiddleware(limiter, "test", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No identity resolver ran; both requests share the peer address key.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:1111"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.RemoteAddr = "203.0.113.9:2222" // same host, different port
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req2)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429 (same peer host)", w.Code)
	}
}
