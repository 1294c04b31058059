package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/n0ko/monty/pkg/config"
	"github.com/n0ko/monty/pkg/ingest"
	"github.com/n0ko/monty/pkg/ollama"
	"github.com/n0ko/monty/pkg/telemetry/logging"
)

var ingestFlags struct {
	sourceDir string
	watch     bool
	schedule  string
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest documents into the knowledge base",
	Long: `Scan the source directory for .txt and .md documents, split them into
overlapping chunks, embed each chunk through the inference service, and
store the results in the local sqlite database.

Re-ingesting unchanged content is a no-op: chunks are keyed by content
hash.

Examples:
  # Ingest once and exit
  monty ingest

  # Ingest a specific directory
  monty ingest --source ./content

  # Keep running and re-ingest as documents change
  monty ingest --watch

  # Re-ingest on a cron schedule (daily at 3 AM)
  monty ingest --schedule "0 3 * * *"`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestFlags.sourceDir, "source", "s", "", "override source directory")
	ingestCmd.Flags().BoolVarP(&ingestFlags.watch, "watch", "w", false, "re-ingest when documents change")
	ingestCmd.Flags().StringVar(&ingestFlags.schedule, "schedule", "", "cron expression for periodic re-ingestion")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if ingestFlags.sourceDir != "" {
		cfg.Ingest.SourceDir = ingestFlags.sourceDir
	}
	if ingestFlags.watch {
		cfg.Ingest.Watch = true
	}
	if ingestFlags.schedule != "" {
		cfg.Ingest.Schedule = ingestFlags.schedule
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

	store, err := ingest.NewStore(cfg.Ingest.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer store.Close()

	client := ollama.NewClient(ollama.Config{
		BaseURL: cfg.Upstream.Host,
		Model:   cfg.Upstream.Model,
		Timeout: cfg.Upstream.Timeout,
	})

	chunker := ingest.NewChunker(cfg.Ingest.ChunkSize, cfg.Ingest.ChunkOverlap)
	pipeline := ingest.NewPipeline(cfg.Ingest.SourceDir, chunker, client, store)

	ctx := cmd.Context()

	stats, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("ingestion completed",
		"files", stats.Files,
		"chunks", stats.Chunks,
		"errors", stats.Errors,
	)

	if cfg.Ingest.Schedule != "" {
		scheduler := ingest.NewScheduler(pipeline, cfg.Ingest.Schedule)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	if cfg.Ingest.Watch {
		watcher, err := ingest.NewWatcher(pipeline, ingest.DefaultDebounceInterval)
		if err != nil {
			return err
		}
		return watcher.Watch(ctx)
	}

	if cfg.Ingest.Schedule != "" {
		// Scheduler-only mode blocks until the context is cancelled.
		<-ctx.Done()
	}
	return nil
}
