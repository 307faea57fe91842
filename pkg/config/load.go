package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// A missing file is not an error: defaults are used instead. Environment
// variables are not consulted; use LoadConfigWithEnvOverrides for that.
//
// The file is decoded over a fully defaulted configuration, so a field the
// file does not mention keeps its default while any value the file sets
// (including false and zero) is taken at face value. Defaults are never
// re-applied after decoding: that would make explicit zero values
// indistinguishable from absent ones.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to defaults; deployments driven purely by
		// environment variables ship no config file at all.
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// TRITON_SECTION_FIELD (e.g., TRITON_SERVER_LISTEN_ADDRESS) and always take
// precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies TRITON_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Server
	if val := os.Getenv("TRITON_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("TRITON_SERVER_PORT"); val != "" {
		cfg.Server.ListenAddress = "0.0.0.0:" + val
	}
	if val := os.Getenv("TRITON_SERVER_TRUST_PROXY_HOPS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.TrustProxyHops = i
		}
	}
	if val := os.Getenv("TRITON_SERVER_SCRATCH_DIR"); val != "" {
		cfg.Server.ScratchDir = val
	}

	// Limits
	if val := os.Getenv("TRITON_LIMITS_GLOBAL_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Limits.Global.Window = d
		}
	}
	if val := os.Getenv("TRITON_LIMITS_GLOBAL_MAX_REQUESTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.Global.MaxRequests = i
		}
	}
	if val := os.Getenv("TRITON_LIMITS_AI_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Limits.AI.Window = d
		}
	}
	if val := os.Getenv("TRITON_LIMITS_AI_MAX_REQUESTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Limits.AI.MaxRequests = i
		}
	}

	// Store
	if val := os.Getenv("TRITON_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("TRITON_STORE_PRUNE_SCHEDULE"); val != "" {
		cfg.Store.PruneSchedule = val
	}

	// AI service
	if val := os.Getenv("TRITON_AI_BASE_URL"); val != "" {
		cfg.AI.BaseURL = val
	}
	if val := os.Getenv("TRITON_AI_API_KEY"); val != "" {
		cfg.AI.APIKey = val
	}
	if val := os.Getenv("TRITON_AI_MODEL"); val != "" {
		cfg.AI.Model = val
	}
	if val := os.Getenv("TRITON_AI_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.AI.Timeout = d
		}
	}
	if val := os.Getenv("TRITON_AI_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.AI.MaxRetries = i
		}
	}

	// Telemetry
	if val := os.Getenv("TRITON_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("TRITON_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("TRITON_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
