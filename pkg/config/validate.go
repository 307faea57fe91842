package config

import (
	"fmt"
	"net"
	"strings"
)

// Validate checks the configuration for consistency and returns the first
// problem found.
func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}
	if err := validateLimits(&cfg.Limits); err != nil {
		return err
	}
	if err := validateCORS(&cfg.CORS); err != nil {
		return err
	}
	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return err
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if cfg.Store.RetentionDays < 0 {
		return fmt.Errorf("store.retention_days must not be negative, got %d", cfg.Store.RetentionDays)
	}
	if cfg.AI.BaseURL == "" {
		return fmt.Errorf("ai.base_url must not be empty")
	}
	if cfg.AI.MaxRetries < 0 {
		return fmt.Errorf("ai.max_retries must not be negative, got %d", cfg.AI.MaxRetries)
	}
	return nil
}

func validateServer(s *ServerConfig) error {
	if _, _, err := net.SplitHostPort(s.ListenAddress); err != nil {
		return fmt.Errorf("server.listen_address %q is not a valid host:port: %w", s.ListenAddress, err)
	}
	if s.TrustProxyHops != 1 && s.TrustProxyHops != -1 {
		return fmt.Errorf("server.trust_proxy_hops must be 1 (one reverse proxy) or -1 (no proxy), got %d", s.TrustProxyHops)
	}
	if s.MaxHeaderBytes <= 0 {
		return fmt.Errorf("server.max_header_bytes must be positive, got %d", s.MaxHeaderBytes)
	}
	return nil
}

func validateLimits(l *LimitsConfig) error {
	for name, rl := range map[string]RateLimitConfig{"global": l.Global, "ai": l.AI} {
		if rl.Window <= 0 {
			return fmt.Errorf("limits.%s.window must be positive, got %s", name, rl.Window)
		}
		if rl.MaxRequests <= 0 {
			return fmt.Errorf("limits.%s.max_requests must be positive, got %d", name, rl.MaxRequests)
		}
		switch rl.Headers {
		case "standard", "legacy", "none":
		default:
			return fmt.Errorf("limits.%s.headers must be one of standard, legacy, none; got %q", name, rl.Headers)
		}
	}

	// The AI tier exists to impose a lower ceiling than the global tier
	// over the same or a shorter window.
	if l.AI.MaxRequests > l.Global.MaxRequests {
		return fmt.Errorf("limits.ai.max_requests (%d) must not exceed limits.global.max_requests (%d)",
			l.AI.MaxRequests, l.Global.MaxRequests)
	}
	if l.AI.Window > l.Global.Window {
		return fmt.Errorf("limits.ai.window (%s) must not exceed limits.global.window (%s)",
			l.AI.Window, l.Global.Window)
	}

	return nil
}

func validateCORS(c *CORSConfig) error {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("cors.allowed_origins must not contain %q; list origins explicitly", origin)
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("cors.allowed_origins entry %q must be a scheme://host origin", origin)
		}
	}
	return nil
}

func validateTelemetry(t *TelemetryConfig) error {
	switch t.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug, info, warn, error; got %q", t.Logging.Level)
	}
	switch t.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be json or text, got %q", t.Logging.Format)
	}
	if t.Metrics.Enabled && !strings.HasPrefix(t.Metrics.Path, "/") {
		return fmt.Errorf("telemetry.metrics.path must start with /, got %q", t.Metrics.Path)
	}
	return nil
}
