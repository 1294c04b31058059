package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Gateway contains the websocket gateway server settings.
	Gateway GatewayConfig `yaml:"gateway"`

	// Upstream contains settings for the inference service.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Telemetry contains observability settings: logging, metrics, and
	// distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Ingest contains settings for the document ingestion pipeline.
	Ingest IngestConfig `yaml:"ingest"`

	// Notify contains settings for the desktop notification relay.
	Notify NotifyConfig `yaml:"notify"`
}

// GatewayConfig contains the websocket gateway server settings.
type GatewayConfig struct {
	// Port is the TCP port the gateway listens on.
	// Default: 8001
	Port int `yaml:"port" env:"GATEWAY_PORT"`

	// ReadTimeout bounds reading the upgrade request headers. Zero
	// means no limit. Websocket connections are not subject to it once
	// upgraded.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout" env:"MONTY_GATEWAY_READ_TIMEOUT"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"MONTY_GATEWAY_SHUTDOWN_TIMEOUT"`

	// AllowedOrigins restricts cross-origin access. ["*"] allows all.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins" env:"MONTY_GATEWAY_ALLOWED_ORIGINS"`

	// SystemPrompt overrides the built-in system instruction sent with
	// every upstream request.
	SystemPrompt string `yaml:"system_prompt" env:"MONTY_GATEWAY_SYSTEM_PROMPT"`
}

// UpstreamConfig contains settings for the inference service.
type UpstreamConfig struct {
	// Host is the base URL of the inference service.
	// Default: "http://localhost:11434"
	Host string `yaml:"host" env:"OLLAMA_HOST"`

	// Model is the model name sent with every generate request.
	// Default: "llama3.2:latest"
	Model string `yaml:"model" env:"OLLAMA_MODEL"`

	// Timeout bounds one entire upstream call, connection and stream
	// included. There is no per-chunk timeout.
	// Default: 300s
	Timeout time.Duration `yaml:"timeout" env:"MONTY_UPSTREAM_TIMEOUT"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	// Logging configures structured log output.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing configures OpenTelemetry trace export.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig configures structured log output.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level" env:"MONTY_LOG_LEVEL"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format" env:"MONTY_LOG_FORMAT"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled controls whether /metrics is served.
	// Default: true
	Enabled bool `yaml:"enabled" env:"MONTY_METRICS_ENABLED"`
}

// TracingConfig configures OpenTelemetry trace export.
type TracingConfig struct {
	// Enabled controls whether spans are exported. When false a noop
	// tracer is installed.
	// Default: false
	Enabled bool `yaml:"enabled" env:"MONTY_TRACING_ENABLED"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint" env:"MONTY_TRACING_ENDPOINT"`

	// SampleRatio is the fraction of traces to sample, 0.0 to 1.0.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio" env:"MONTY_TRACING_SAMPLE_RATIO"`
}

// IngestConfig contains settings for the document ingestion pipeline.
type IngestConfig struct {
	// SourceDir is the directory scanned for documents.
	// Default: "./docs"
	SourceDir string `yaml:"source_dir" env:"MONTY_INGEST_SOURCE_DIR"`

	// DatabasePath is the sqlite file holding ingested chunks.
	// Default: "./monty.db"
	DatabasePath string `yaml:"database_path" env:"MONTY_INGEST_DATABASE_PATH"`

	// ChunkSize is the maximum chunk length in bytes.
	// Default: 2000
	ChunkSize int `yaml:"chunk_size" env:"MONTY_INGEST_CHUNK_SIZE"`

	// ChunkOverlap is how many trailing bytes of one chunk are repeated
	// at the start of the next.
	// Default: 200
	ChunkOverlap int `yaml:"chunk_overlap" env:"MONTY_INGEST_CHUNK_OVERLAP"`

	// Schedule is an optional cron expression for periodic re-ingestion.
	// Empty disables scheduling.
	Schedule string `yaml:"schedule" env:"MONTY_INGEST_SCHEDULE"`

	// Watch re-ingests files as they change on disk.
	// Default: false
	Watch bool `yaml:"watch" env:"MONTY_INGEST_WATCH"`
}

// NotifyConfig contains settings for the desktop notification relay.
type NotifyConfig struct {
	// Port is the TCP port the relay listens on.
	// Default: 8002
	Port int `yaml:"port" env:"MONTY_NOTIFY_PORT"`
}
