package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "monty",
	Short: "Monty - streaming chat gateway for a personal website assistant",
	Long: `Monty bridges browser WebSocket connections to an Ollama-compatible
inference service.

Each inbound chat message is relayed upstream with the full conversation
transcript; the streamed reply is forwarded to the client as discrete
content events followed by exactly one terminal event. Conversation
history lives in memory for the lifetime of the process.

The binary also ships the document ingestion pipeline that feeds the
assistant's knowledge base and a small desktop notification relay.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
