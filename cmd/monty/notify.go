package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/n0ko/monty/pkg/config"
	"github.com/n0ko/monty/pkg/notify"
	"github.com/n0ko/monty/pkg/telemetry/logging"
)

var notifyFlags struct {
	port int
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Start the desktop notification relay",
	Long: `Start the HTTP relay that turns webhook JSON payloads into local
desktop notifications via notify-send.

The relay listens on its own port, independent of the chat gateway, and
acknowledges valid payloads with 202 Accepted.

Examples:
  # Start on the default port (8002)
  monty notify

  # Start on a custom port
  monty notify --port 9999`,
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)

	notifyCmd.Flags().IntVarP(&notifyFlags.port, "port", "p", 0, "override listen port")
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if notifyFlags.port != 0 {
		cfg.Notify.Port = notifyFlags.port
	}
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}

	logger, err := logging.Setup(logging.Config{
		Level:  level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return err
	}

	relay := notify.NewRelay(nil)
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Notify.Port),
		Handler:     relay.Handler(),
		ReadTimeout: 10 * time.Second,
	}

	go func() {
		<-cmd.Context().Done()
		server.Close()
	}()

	logger.Info("notification relay starting", "port", cfg.Notify.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
