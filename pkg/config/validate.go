package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for values that would prevent the
// process from starting correctly.
func Validate(cfg *Config) error {
	if cfg.Gateway.Port < 1 || cfg.Gateway.Port > 65535 {
		return fmt.Errorf("gateway.port must be between 1 and 65535, got %d", cfg.Gateway.Port)
	}

	if cfg.Upstream.Host == "" {
		return fmt.Errorf("upstream.host must not be empty")
	}
	u, err := url.Parse(cfg.Upstream.Host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("upstream.host must be a valid URL, got %q", cfg.Upstream.Host)
	}
	if cfg.Upstream.Model == "" {
		return fmt.Errorf("upstream.model must not be empty")
	}
	if cfg.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive, got %s", cfg.Upstream.Timeout)
	}

	switch strings.ToLower(cfg.Telemetry.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug, info, warn, error; got %q", cfg.Telemetry.Logging.Level)
	}
	switch strings.ToLower(cfg.Telemetry.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be json or text, got %q", cfg.Telemetry.Logging.Format)
	}

	if cfg.Telemetry.Tracing.SampleRatio < 0 || cfg.Telemetry.Tracing.SampleRatio > 1 {
		return fmt.Errorf("telemetry.tracing.sample_ratio must be between 0 and 1, got %g", cfg.Telemetry.Tracing.SampleRatio)
	}
	if cfg.Telemetry.Tracing.Enabled && cfg.Telemetry.Tracing.Endpoint == "" {
		return fmt.Errorf("telemetry.tracing.endpoint must be set when tracing is enabled")
	}

	if cfg.Ingest.ChunkSize < 1 {
		return fmt.Errorf("ingest.chunk_size must be positive, got %d", cfg.Ingest.ChunkSize)
	}
	if cfg.Ingest.ChunkOverlap < 0 || cfg.Ingest.ChunkOverlap >= cfg.Ingest.ChunkSize {
		return fmt.Errorf("ingest.chunk_overlap must be non-negative and smaller than chunk_size, got %d", cfg.Ingest.ChunkOverlap)
	}

	if cfg.Notify.Port < 1 || cfg.Notify.Port > 65535 {
		return fmt.Errorf("notify.port must be between 1 and 65535, got %d", cfg.Notify.Port)
	}

	return nil
}
