package config

import "time"

// Config is the root configuration structure for Atlas.
// It contains all configuration sections for the gateway server, the
// upstream completion API, the canvas engine, analysis storage, and
// telemetry settings.
type Config struct {
	// Gateway contains HTTP gateway server configuration including listen
	// address, timeouts, and CORS settings.
	Gateway GatewayConfig `yaml:"gateway"`

	// Upstream contains configuration for the upstream chat-completion API.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Secrets contains configuration for the secret resolver that supplies
	// the upstream credential.
	Secrets SecretsConfig `yaml:"secrets"`

	// Canvas contains configuration for the journey synthesizer, including
	// the business-model limitations table.
	Canvas CanvasConfig `yaml:"canvas"`

	// Analysis contains configuration for analysis record storage and
	// retention.
	Analysis AnalysisConfig `yaml:"analysis"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// GatewayConfig contains configuration for the HTTP gateway server.
type GatewayConfig struct {
	// ListenAddress is the address and port for the gateway to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. A zero or negative value means no timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// If requests are still in-flight after this timeout, the server will
	// force shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header's keys and values.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS contains Cross-Origin Resource Sharing configuration.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS (Cross-Origin Resource Sharing) configuration.
//
// Every gateway response, success or failure, carries this header set so
// browser clients can call the gateway directly.
type CORSConfig struct {
	// AllowedOrigin is the value for Access-Control-Allow-Origin.
	// Default: "*"
	AllowedOrigin string `yaml:"allowed_origin"`

	// AllowedMethods is the list of allowed HTTP methods.
	// Default: ["POST", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders is the list of allowed HTTP headers.
	// Default: ["authorization", "x-client-info", "apikey", "content-type"]
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the maximum age (in seconds) for preflight request cache.
	// Default: 86400 (24 hours)
	MaxAge int `yaml:"max_age"`
}

// UpstreamConfig contains configuration for the upstream completion API.
type UpstreamConfig struct {
	// BaseURL is the base URL for the upstream API endpoint.
	// Default: "https://api.openai.com/v1"
	BaseURL string `yaml:"base_url"`

	// ProbeModel is the model used by the connectivity probe endpoint.
	// Default: "gpt-3.5-turbo"
	ProbeModel string `yaml:"probe_model"`

	// Timeout is the maximum duration for requests to the upstream API.
	// This is the HTTP client timeout; the gateway imposes no additional
	// deadline of its own.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the maximum number of idle connections in the pool.
	// Default: 10
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the maximum number of idle connections per host.
	// Default: 10
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept in the pool.
	// Default: 90s
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// SecretsConfig contains configuration for the secret resolver.
type SecretsConfig struct {
	// EnvPrefix is prepended to environment variable names when resolving
	// secrets. For example, with prefix "ATLAS_SECRET_", the secret
	// "openai-api-key" is read from "ATLAS_SECRET_OPENAI_API_KEY".
	// Default: "ATLAS_SECRET_"
	EnvPrefix string `yaml:"env_prefix"`

	// UpstreamCredential is the name of the secret holding the upstream API
	// key. Default: "openai-api-key"
	UpstreamCredential string `yaml:"upstream_credential"`
}

// CanvasConfig contains configuration for the canvas engine.
type CanvasConfig struct {
	// LimitationsPath is the path to the YAML file holding the per-model
	// free-tier limitations table. When empty, the compiled-in default
	// table is used.
	LimitationsPath string `yaml:"limitations_path"`

	// Watch enables hot-reloading of the limitations file on change.
	// Only effective when LimitationsPath is set.
	// Default: false
	Watch bool `yaml:"watch"`
}

// AnalysisConfig contains configuration for analysis record storage.
type AnalysisConfig struct {
	// Backend selects the storage backend.
	// Options: "memory", "sqlite"
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains settings for automatic record pruning.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains settings for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/analyses.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains settings for automatic analysis pruning.
type RetentionConfig struct {
	// RetentionDays is the number of days to keep analysis records.
	// Zero disables age-based pruning.
	// Default: 0
	RetentionDays int `yaml:"retention_days"`

	// MaxRecords is the maximum number of records to keep. When exceeded,
	// the oldest records are pruned first. Zero disables count-based pruning.
	// Default: 0
	MaxRecords int `yaml:"max_records"`

	// PruneSchedule is a cron expression controlling when pruning runs
	// (e.g., "0 3 * * *" for daily at 3 AM). Empty disables the scheduler.
	PruneSchedule string `yaml:"prune_schedule"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "atlas"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "gateway"
	Subsystem string `yaml:"subsystem"`

	// Path is the HTTP path where metrics are exposed.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// RequestDurationBuckets are the histogram buckets (in seconds) for
	// request duration metrics.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
