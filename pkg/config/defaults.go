package config

import "time"

// Default values applied by ApplyDefaults.
const (
	DefaultGatewayPort     = 8001
	DefaultUpstreamHost    = "http://localhost:11434"
	DefaultUpstreamModel   = "llama3.2:latest"
	DefaultUpstreamTimeout = 300 * time.Second
)

// ApplyDefaults fills in default values for any unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = DefaultGatewayPort
	}
	if cfg.Gateway.ReadTimeout == 0 {
		cfg.Gateway.ReadTimeout = 10 * time.Second
	}
	if cfg.Gateway.ShutdownTimeout == 0 {
		cfg.Gateway.ShutdownTimeout = 10 * time.Second
	}
	if len(cfg.Gateway.AllowedOrigins) == 0 {
		cfg.Gateway.AllowedOrigins = []string{"*"}
	}

	if cfg.Upstream.Host == "" {
		cfg.Upstream.Host = DefaultUpstreamHost
	}
	if cfg.Upstream.Model == "" {
		cfg.Upstream.Model = DefaultUpstreamModel
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = "localhost:4317"
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = 1.0
	}

	if cfg.Ingest.SourceDir == "" {
		cfg.Ingest.SourceDir = "./docs"
	}
	if cfg.Ingest.DatabasePath == "" {
		cfg.Ingest.DatabasePath = "./monty.db"
	}
	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = 2000
	}
	if cfg.Ingest.ChunkOverlap == 0 {
		cfg.Ingest.ChunkOverlap = 200
	}

	if cfg.Notify.Port == 0 {
		cfg.Notify.Port = 8002
	}
}

// NewDefault returns a configuration with every default applied and no
// file or environment input.
func NewDefault() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	// Metrics default to enabled; the zero value cannot express that.
	cfg.Telemetry.Metrics.Enabled = true
	return cfg
}
