package config

import "time"

// Default values applied to unset configuration fields.
const (
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20 // 1MB

	DefaultCORSOrigin = "*"
	DefaultCORSMaxAge = 86400

	DefaultUpstreamBaseURL     = "https://api.openai.com/v1"
	DefaultProbeModel          = "gpt-3.5-turbo"
	DefaultUpstreamTimeout     = 60 * time.Second
	DefaultMaxIdleConns        = 10
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second

	DefaultSecretEnvPrefix     = "ATLAS_SECRET_"
	DefaultUpstreamCredential  = "openai-api-key"
	DefaultAnalysisBackend     = "memory"
	DefaultSQLitePath          = "data/analyses.db"
	DefaultSQLiteMaxOpenConns  = 10
	DefaultSQLiteMaxIdleConns  = 5
	DefaultSQLiteBusyTimeout   = 5 * time.Second
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "json"
	DefaultMetricsNamespace    = "atlas"
	DefaultMetricsSubsystem    = "gateway"
	DefaultMetricsPath         = "/metrics"
)

// DefaultCORSMethods is the default Access-Control-Allow-Methods list.
func DefaultCORSMethods() []string {
	return []string{"POST", "OPTIONS"}
}

// DefaultCORSHeaders is the default Access-Control-Allow-Headers list.
func DefaultCORSHeaders() []string {
	return []string{"authorization", "x-client-info", "apikey", "content-type"}
}

// DefaultDurationBuckets are the default request duration histogram buckets.
func DefaultDurationBuckets() []float64 {
	return []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}
}

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called by LoadConfig before validation.
func ApplyDefaults(cfg *Config) {
	// Gateway defaults
	if cfg.Gateway.ListenAddress == "" {
		cfg.Gateway.ListenAddress = DefaultListenAddress
	}
	if cfg.Gateway.ReadTimeout == 0 {
		cfg.Gateway.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Gateway.WriteTimeout == 0 {
		cfg.Gateway.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Gateway.IdleTimeout == 0 {
		cfg.Gateway.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Gateway.ShutdownTimeout == 0 {
		cfg.Gateway.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Gateway.MaxHeaderBytes == 0 {
		cfg.Gateway.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// CORS defaults
	if cfg.Gateway.CORS.AllowedOrigin == "" {
		cfg.Gateway.CORS.AllowedOrigin = DefaultCORSOrigin
	}
	if len(cfg.Gateway.CORS.AllowedMethods) == 0 {
		cfg.Gateway.CORS.AllowedMethods = DefaultCORSMethods()
	}
	if len(cfg.Gateway.CORS.AllowedHeaders) == 0 {
		cfg.Gateway.CORS.AllowedHeaders = DefaultCORSHeaders()
	}
	if cfg.Gateway.CORS.MaxAge == 0 {
		cfg.Gateway.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Upstream defaults
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Upstream.ProbeModel == "" {
		cfg.Upstream.ProbeModel = DefaultProbeModel
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstream.MaxIdleConns == 0 {
		cfg.Upstream.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Upstream.MaxIdleConnsPerHost == 0 {
		cfg.Upstream.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.Upstream.IdleConnTimeout == 0 {
		cfg.Upstream.IdleConnTimeout = DefaultIdleConnTimeout
	}

	// Secrets defaults
	if cfg.Secrets.EnvPrefix == "" {
		cfg.Secrets.EnvPrefix = DefaultSecretEnvPrefix
	}
	if cfg.Secrets.UpstreamCredential == "" {
		cfg.Secrets.UpstreamCredential = DefaultUpstreamCredential
	}

	// Analysis defaults
	if cfg.Analysis.Backend == "" {
		cfg.Analysis.Backend = DefaultAnalysisBackend
	}
	if cfg.Analysis.SQLite.Path == "" {
		cfg.Analysis.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Analysis.SQLite.MaxOpenConns == 0 {
		cfg.Analysis.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Analysis.SQLite.MaxIdleConns == 0 {
		cfg.Analysis.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.Analysis.SQLite.BusyTimeout == 0 {
		cfg.Analysis.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = DefaultDurationBuckets()
	}
}

// NewDefaultConfig returns a configuration with all defaults applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Telemetry.Metrics.Enabled = true
	cfg.Analysis.SQLite.WALMode = true
	return cfg
}
