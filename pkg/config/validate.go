package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first problem found.
func Validate(cfg *Config) error {
	if err := validateGateway(&cfg.Gateway); err != nil {
		return err
	}
	if err := validateUpstream(&cfg.Upstream); err != nil {
		return err
	}
	if err := validateAnalysis(&cfg.Analysis); err != nil {
		return err
	}
	if err := validateTelemetry(&cfg.Telemetry); err != nil {
		return err
	}
	return nil
}

func validateGateway(cfg *GatewayConfig) error {
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return fmt.Errorf("gateway.listen_address %q is not a valid host:port: %w",
			cfg.ListenAddress, err)
	}

	if cfg.ReadTimeout < 0 {
		return fmt.Errorf("gateway.read_timeout must not be negative")
	}
	if cfg.WriteTimeout < 0 {
		return fmt.Errorf("gateway.write_timeout must not be negative")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("gateway.shutdown_timeout must be positive")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return fmt.Errorf("gateway.max_header_bytes must be positive")
	}

	if cfg.CORS.AllowedOrigin == "" {
		return fmt.Errorf("gateway.cors.allowed_origin must not be empty")
	}
	if cfg.CORS.MaxAge < 0 {
		return fmt.Errorf("gateway.cors.max_age must not be negative")
	}
	return nil
}

func validateUpstream(cfg *UpstreamConfig) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("upstream.base_url %q is not a valid URL: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("upstream.base_url %q must use http or https", cfg.BaseURL)
	}
	if cfg.ProbeModel == "" {
		return fmt.Errorf("upstream.probe_model must not be empty")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	return nil
}

func validateAnalysis(cfg *AnalysisConfig) error {
	switch strings.ToLower(cfg.Backend) {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("analysis.backend %q is not supported (options: memory, sqlite)", cfg.Backend)
	}

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		return fmt.Errorf("analysis.sqlite.path must not be empty when backend is sqlite")
	}
	if cfg.Retention.RetentionDays < 0 {
		return fmt.Errorf("analysis.retention.retention_days must not be negative")
	}
	if cfg.Retention.MaxRecords < 0 {
		return fmt.Errorf("analysis.retention.max_records must not be negative")
	}
	return nil
}

func validateTelemetry(cfg *TelemetryConfig) error {
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level %q is not supported (options: debug, info, warn, error)",
			cfg.Logging.Level)
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format %q is not supported (options: json, text)",
			cfg.Logging.Format)
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("telemetry.metrics.path %q must start with /", cfg.Metrics.Path)
	}
	return nil
}
