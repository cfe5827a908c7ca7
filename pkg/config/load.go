package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Loading starts from the default configuration, so fields absent from the
// file keep their defaults. The result is validated before being returned.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Re-apply defaults for fields explicitly set to empty values
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention ATLAS_SECTION_FIELD (e.g., ATLAS_GATEWAY_LISTEN_ADDRESS) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file (defaults applied)
//  2. Apply environment variable overrides
//  3. Validate final configuration
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

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format ATLAS_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Gateway overrides
	if val := os.Getenv("ATLAS_GATEWAY_LISTEN_ADDRESS"); val != "" {
		cfg.Gateway.ListenAddress = val
	}
	if val := os.Getenv("ATLAS_GATEWAY_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.ReadTimeout = d
		}
	}
	if val := os.Getenv("ATLAS_GATEWAY_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.WriteTimeout = d
		}
	}
	if val := os.Getenv("ATLAS_GATEWAY_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Gateway.ShutdownTimeout = d
		}
	}

	// Upstream overrides
	if val := os.Getenv("ATLAS_UPSTREAM_BASE_URL"); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv("ATLAS_UPSTREAM_PROBE_MODEL"); val != "" {
		cfg.Upstream.ProbeModel = val
	}
	if val := os.Getenv("ATLAS_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}

	// Canvas overrides
	if val := os.Getenv("ATLAS_CANVAS_LIMITATIONS_PATH"); val != "" {
		cfg.Canvas.LimitationsPath = val
	}
	if val := os.Getenv("ATLAS_CANVAS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Canvas.Watch = b
		}
	}

	// Analysis overrides
	if val := os.Getenv("ATLAS_ANALYSIS_BACKEND"); val != "" {
		cfg.Analysis.Backend = val
	}
	if val := os.Getenv("ATLAS_ANALYSIS_SQLITE_PATH"); val != "" {
		cfg.Analysis.SQLite.Path = val
	}
	if val := os.Getenv("ATLAS_ANALYSIS_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Analysis.Retention.RetentionDays = i
		}
	}
	if val := os.Getenv("ATLAS_ANALYSIS_PRUNE_SCHEDULE"); val != "" {
		cfg.Analysis.Retention.PruneSchedule = val
	}

	// Telemetry overrides
	if val := os.Getenv("ATLAS_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("ATLAS_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("ATLAS_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
