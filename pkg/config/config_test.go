package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.Port != 8001 {
		t.Errorf("Gateway.Port = %d, want 8001", cfg.Gateway.Port)
	}
	if cfg.Upstream.Host != "http://localhost:11434" {
		t.Errorf("Upstream.Host = %q", cfg.Upstream.Host)
	}
	if cfg.Upstream.Model != "llama3.2:latest" {
		t.Errorf("Upstream.Model = %q", cfg.Upstream.Model)
	}
	if cfg.Upstream.Timeout != 300*time.Second {
		t.Errorf("Upstream.Timeout = %s, want 300s", cfg.Upstream.Timeout)
	}
	if cfg.Telemetry.Logging.Level != "info" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should default to enabled")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("tracing should default to disabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
gateway:
  port: 9100
upstream:
  host: "http://inference.internal:11434"
  model: "mistral:7b"
  timeout: 60s
telemetry:
  logging:
    level: debug
    format: text
  metrics:
    enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.Port != 9100 {
		t.Errorf("Gateway.Port = %d, want 9100", cfg.Gateway.Port)
	}
	if cfg.Upstream.Host != "http://inference.internal:11434" {
		t.Errorf("Upstream.Host = %q", cfg.Upstream.Host)
	}
	if cfg.Upstream.Model != "mistral:7b" {
		t.Errorf("Upstream.Model = %q", cfg.Upstream.Model)
	}
	if cfg.Upstream.Timeout != 60*time.Second {
		t.Errorf("Upstream.Timeout = %s, want 60s", cfg.Upstream.Timeout)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("logging level = %q, want debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics should be disabled by the file")
	}
	// Sections absent from the file still get defaults.
	if cfg.Ingest.ChunkSize != 2000 {
		t.Errorf("Ingest.ChunkSize = %d, want 2000", cfg.Ingest.ChunkSize)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
gateway:
  port: 9100
upstream:
  host: "http://from-file:11434"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GATEWAY_PORT", "9200")
	t.Setenv("OLLAMA_HOST", "http://from-env:11434")
	t.Setenv("OLLAMA_MODEL", "qwen:0.5b")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.Port != 9200 {
		t.Errorf("Gateway.Port = %d, want env value 9200", cfg.Gateway.Port)
	}
	if cfg.Upstream.Host != "http://from-env:11434" {
		t.Errorf("Upstream.Host = %q, want env value", cfg.Upstream.Host)
	}
	if cfg.Upstream.Model != "qwen:0.5b" {
		t.Errorf("Upstream.Model = %q, want env value", cfg.Upstream.Model)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"defaults valid", func(cfg *Config) {}, false},
		{"port too large", func(cfg *Config) { cfg.Gateway.Port = 70000 }, true},
		{"port zero", func(cfg *Config) { cfg.Gateway.Port = 0 }, true},
		{"bad upstream url", func(cfg *Config) { cfg.Upstream.Host = "not a url" }, true},
		{"empty model", func(cfg *Config) { cfg.Upstream.Model = "" }, true},
		{"negative timeout", func(cfg *Config) { cfg.Upstream.Timeout = -1 }, true},
		{"bad log level", func(cfg *Config) { cfg.Telemetry.Logging.Level = "verbose" }, true},
		{"bad log format", func(cfg *Config) { cfg.Telemetry.Logging.Format = "xml" }, true},
		{"sample ratio above one", func(cfg *Config) { cfg.Telemetry.Tracing.SampleRatio = 1.5 }, true},
		{"tracing enabled without endpoint", func(cfg *Config) {
			cfg.Telemetry.Tracing.Enabled = true
			cfg.Telemetry.Tracing.Endpoint = ""
		}, true},
		{"overlap not below size", func(cfg *Config) { cfg.Ingest.ChunkOverlap = cfg.Ingest.ChunkSize }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
