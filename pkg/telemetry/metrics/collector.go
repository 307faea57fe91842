package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mentorly-hq/triton/pkg/config"
)

// Collector owns the gateway's Prometheus registry and metric families.
//
// Metrics (namespace-prefixed, default "triton"):
//   - http_requests_total{route, method, status}
//   - http_request_duration_seconds{route, method}
//   - ratelimit_rejections_total{limiter}
//   - ai_requests_total{status}
//   - ai_request_duration_seconds
type Collector struct {
	registry *prometheus.Registry

	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	rateLimitRejections *prometheus.CounterVec
	aiRequestsTotal     *prometheus.CounterVec
	aiRequestDuration   prometheus.Histogram
}

// NewCollector creates a Collector and registers all metric families plus
// the standard process and Go runtime collectors.
func NewCollector(cfg config.MetricsConfig) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"route", "method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),

		rateLimitRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "ratelimit_rejections_total",
				Help:      "Total number of requests rejected by a rate limiter",
			},
			[]string{"limiter"},
		),

		aiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "ai_requests_total",
				Help:      "Total number of AI completion requests sent upstream",
			},
			[]string{"status"},
		),

		aiRequestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "ai_request_duration_seconds",
				Help:      "Duration of AI completion requests in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.rateLimitRejections,
		c.aiRequestsTotal,
		c.aiRequestDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return c
}

// ObserveRequest records a completed HTTP request.
func (c *Collector) ObserveRequest(route, method string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RateLimitRejection records a request rejected by the named limiter tier.
func (c *Collector) RateLimitRejection(limiter string) {
	c.rateLimitRejections.WithLabelValues(limiter).Inc()
}

// ObserveAIRequest records an upstream AI completion call.
func (c *Collector) ObserveAIRequest(status string, duration time.Duration) {
	c.aiRequestsTotal.WithLabelValues(status).Inc()
	c.aiRequestDuration.Observe(duration.Seconds())
}

// Handler returns the Prometheus exposition handler for this collector's
// registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
