package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/n0ko/monty/pkg/bridge"
	"github.com/n0ko/monty/pkg/config"
	"github.com/n0ko/monty/pkg/gateway"
	"github.com/n0ko/monty/pkg/ollama"
	"github.com/n0ko/monty/pkg/session"
	"github.com/n0ko/monty/pkg/telemetry/logging"
	"github.com/n0ko/monty/pkg/telemetry/metrics"
	"github.com/n0ko/monty/pkg/telemetry/tracing"
)

var runFlags struct {
	port     int
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the chat gateway server",
	Long: `Start the chat gateway server with the specified configuration.

The gateway accepts WebSocket connections on /chat/ws (alias /ws/chat),
relays each message to the configured inference service, and streams
the reply back as event frames.

Examples:
  # Start with defaults (port 8001, upstream http://localhost:11434)
  monty run

  # Start with a configuration file
  monty run --config /etc/monty/config.yaml

  # Override the listen port
  monty run --port 9000

  # Validate config without starting the server
  monty run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runFlags.port, "port", "p", 0, "override listen port")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if runFlags.port != 0 {
		cfg.Gateway.Port = runFlags.port
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.Setup(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return err
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	tracer, err := tracing.New(&tracing.Config{
		Enabled:     cfg.Telemetry.Tracing.Enabled,
		ServiceName: "monty-gateway",
		Endpoint:    cfg.Telemetry.Tracing.Endpoint,
		Insecure:    true,
		SampleRatio: cfg.Telemetry.Tracing.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer tracer.Shutdown(context.Background())

	var m *metrics.Metrics
	if cfg.Telemetry.Metrics.Enabled {
		m = metrics.New("monty")
	}

	registry := session.NewRegistry()
	client := ollama.NewClient(ollama.Config{
		BaseURL: cfg.Upstream.Host,
		Model:   cfg.Upstream.Model,
		Timeout: cfg.Upstream.Timeout,
	})

	runner := bridge.New(registry, client, bridge.Options{
		Tracer:       tracer,
		Metrics:      m,
		SystemPrompt: cfg.Gateway.SystemPrompt,
	})

	server := gateway.NewServer(gateway.Config{
		Addr:            fmt.Sprintf(":%d", cfg.Gateway.Port),
		ReadTimeout:     cfg.Gateway.ReadTimeout,
		ShutdownTimeout: cfg.Gateway.ShutdownTimeout,
		AllowedOrigins:  cfg.Gateway.AllowedOrigins,
	}, runner, registry, m)

	logger.Info("monty gateway starting",
		"port", cfg.Gateway.Port,
		"upstream", cfg.Upstream.Host,
		"model", cfg.Upstream.Model,
	)

	return server.Start(cmd.Context())
}
