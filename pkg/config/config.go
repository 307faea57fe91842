package config

import "time"

// Config is the root configuration structure for the Triton gateway.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and reverse-proxy trust settings.
	Server ServerConfig `yaml:"server"`

	// CORS contains the cross-origin policy applied to every request.
	CORS CORSConfig `yaml:"cors"`

	// Limits contains the two admission-control limiter configurations.
	Limits LimitsConfig `yaml:"limits"`

	// Store contains the document store configuration.
	Store StoreConfig `yaml:"store"`

	// AI contains the AI completion service configuration.
	AI AIConfig `yaml:"ai"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// Default: 120s (AI completions can be slow)
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// TrustProxyHops is the number of reverse-proxy hops whose
	// X-Forwarded-For entries are trusted when resolving client identity.
	// This must match the deployment topology exactly: trusting more hops
	// than exist lets clients spoof their rate-limit key.
	// Supported values: 1 (one proxy in front) or -1 (no proxy; always use
	// the direct peer address).
	// Default: 1
	TrustProxyHops int `yaml:"trust_proxy_hops"`

	// ScratchDir is a local scratch directory verified/created at startup,
	// used for temporary upload processing.
	// Default: "./scratch"
	ScratchDir string `yaml:"scratch_dir"`
}

// CORSConfig contains the cross-origin resource sharing policy.
//
// Unlisted origins are denied by default: the permissive header is simply
// omitted and the browser blocks script access. The request itself is not
// rejected server-side.
type CORSConfig struct {
	// AllowedOrigins is the exact-match, case-sensitive origin allow-list.
	// Default: the local development origins.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is the list of allowed HTTP methods.
	// Default: ["GET", "POST", "PUT", "PATCH", "DELETE"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of allowed request headers.
	// Default: ["Content-Type", "Authorization"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// AllowCredentials controls the Access-Control-Allow-Credentials header.
	// Default: true
	AllowCredentials bool `yaml:"allow_credentials"`

	// MaxAge is the preflight cache duration in seconds.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// LimitsConfig contains the two-tier rate limiter configuration.
type LimitsConfig struct {
	// Global applies to every request, keyed by client IP.
	Global RateLimitConfig `yaml:"global"`

	// AI applies additionally to AI-invoking route prefixes. It must be at
	// least as strict as Global (validation enforces this).
	AI RateLimitConfig `yaml:"ai"`
}

// RateLimitConfig configures a single fixed-window limiter instance.
type RateLimitConfig struct {
	// Window is the fixed window duration.
	// Defaults: 15m (global), 1m (ai)
	Window time.Duration `yaml:"window"`

	// MaxRequests is the number of requests admitted per key per window.
	// Defaults: 100 (global), 10 (ai)
	MaxRequests int `yaml:"max_requests"`

	// Message is the plain-text body returned to rejected clients.
	Message string `yaml:"message"`

	// Headers selects the rate-limit header family: "standard"
	// (RateLimit-*), "legacy" (X-RateLimit-*), or "none".
	// Default: "standard"
	Headers string `yaml:"headers"`
}

// StoreConfig contains the document store configuration.
type StoreConfig struct {
	// Path is the SQLite database file path (the store connection string).
	// Default: "./data/triton.db"
	Path string `yaml:"path"`

	// RetentionDays is how long uploaded documents and their chat history
	// are kept before the scheduled pruner removes them. Zero disables
	// pruning.
	// Default: 0 (keep forever)
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for the retention pruner
	// (e.g., "0 3 * * *" for daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string `yaml:"prune_schedule"`
}

// AIConfig contains the AI completion service configuration.
type AIConfig struct {
	// BaseURL is the completion API base URL.
	// Default: "https://api.openai.com/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates requests to the AI service.
	// Typically supplied via TRITON_AI_API_KEY.
	APIKey string `yaml:"api_key"`

	// Model is the model identifier sent with every completion request.
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// Timeout is the per-request timeout for AI calls.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the retry budget for transient AI service failures.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is where the exposition endpoint is mounted.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "triton"
	Namespace string `yaml:"namespace"`
}
