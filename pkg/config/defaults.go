package config

import "time"

// Default limiter constants. The global tier matches the deployed policy of
// 100 requests per 15 minutes per IP; the AI tier is deliberately stricter.
const (
	DefaultGlobalWindow      = 15 * time.Minute
	DefaultGlobalMaxRequests = 100
	DefaultAIWindow          = time.Minute
	DefaultAIMaxRequests     = 10
)

// DefaultConfig returns a fully populated configuration with default values.
// Booleans that default to true are set here rather than in ApplyDefaults:
// once a struct exists, false is indistinguishable from unset, so loading
// decodes the file over this seeded configuration instead of patching
// afterwards.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.CORS.AllowCredentials = true
	cfg.Telemetry.Metrics.Enabled = true
	return cfg
}

// ApplyDefaults fills in default values for any zero-valued fields. It never
// touches boolean fields; see DefaultConfig.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = "127.0.0.1:8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = 1 << 20
	}
	if cfg.Server.TrustProxyHops == 0 {
		cfg.Server.TrustProxyHops = 1
	}
	if cfg.Server.ScratchDir == "" {
		cfg.Server.ScratchDir = "./scratch"
	}

	// CORS defaults: deny everything not explicitly listed.
	if cfg.CORS.AllowedOrigins == nil {
		cfg.CORS.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}
	}
	if cfg.CORS.AllowedMethods == nil {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	}
	if cfg.CORS.AllowedHeaders == nil {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
	if cfg.CORS.MaxAge == 0 {
		cfg.CORS.MaxAge = 3600
	}

	// Limiter defaults
	if cfg.Limits.Global.Window == 0 {
		cfg.Limits.Global.Window = DefaultGlobalWindow
	}
	if cfg.Limits.Global.MaxRequests == 0 {
		cfg.Limits.Global.MaxRequests = DefaultGlobalMaxRequests
	}
	if cfg.Limits.Global.Message == "" {
		cfg.Limits.Global.Message = "Too many requests from this IP, please try again later."
	}
	if cfg.Limits.Global.Headers == "" {
		cfg.Limits.Global.Headers = "standard"
	}
	if cfg.Limits.AI.Window == 0 {
		cfg.Limits.AI.Window = DefaultAIWindow
	}
	if cfg.Limits.AI.MaxRequests == 0 {
		cfg.Limits.AI.MaxRequests = DefaultAIMaxRequests
	}
	if cfg.Limits.AI.Message == "" {
		cfg.Limits.AI.Message = "Too many AI requests, please try again later."
	}
	if cfg.Limits.AI.Headers == "" {
		cfg.Limits.AI.Headers = "standard"
	}

	// Store defaults
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./data/triton.db"
	}

	// AI service defaults
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 60 * time.Second
	}
	if cfg.AI.MaxRetries == 0 {
		cfg.AI.MaxRetries = 3
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = "/metrics"
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = "triton"
	}
}
