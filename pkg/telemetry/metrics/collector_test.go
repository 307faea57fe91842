package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"mentorly-hq/triton/pkg/config"
)

func testConfig() config.MetricsConfig {
	return config.MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "triton"}
}

func TestObserveRequest(t *testing.T) {
	c := NewCollector(testConfig())

	c.ObserveRequest("/generate-plan", "POST", 200, 150*time.Millisecond)
	c.ObserveRequest("/generate-plan", "POST", 200, 50*time.Millisecond)
	c.ObserveRequest("/pdf", "POST", 500, 10*time.Millisecond)

	if got := testutil.ToFloat64(c.requestsTotal.WithLabelValues("/generate-plan", "POST", "200")); got != 2 {
		t.Errorf("requests_total{/generate-plan,POST,200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.requestsTotal.WithLabelValues("/pdf", "POST", "500")); got != 1 {
		t.Errorf("requests_total{/pdf,POST,500} = %v, want 1", got)
	}
}

func TestRateLimitRejection(t *testing.T) {
	c := NewCollector(testConfig())

	c.RateLimitRejection("global")
	c.RateLimitRejection("ai")
	c.RateLimitRejection("ai")

	if got := testutil.ToFloat64(c.rateLimitRejections.WithLabelValues("ai")); got != 2 {
		t.Errorf("ratelimit_rejections_total{ai} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.rateLimitRejections.WithLabelValues("global")); got != 1 {
		t.Errorf("ratelimit_rejections_total{global} = %v, want 1", got)
	}
}

func TestObserveAIRequest(t *testing.T) {
	c := NewCollector(testConfig())

	c.ObserveAIRequest("ok", time.Second)
	c.ObserveAIRequest("error", 100*time.Millisecond)

	if got := testutil.ToFloat64(c.aiRequestsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("ai_requests_total{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.aiRequestsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("ai_requests_total{error} = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector(testConfig())
	c.ObserveRequest("/health", "GET", 200, time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("metrics endpoint status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "triton_http_requests_total") {
		t.Errorf("exposition missing triton_http_requests_total:\n%s", body[:min(len(body), 500)])
	}
}
