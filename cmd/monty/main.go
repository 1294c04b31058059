// Monty is a streaming chat gateway for a personal website assistant.
//
// It bridges browser WebSocket connections to an Ollama-compatible
// inference service, converting the upstream's line-delimited JSON
// stream into discrete content/completed/error event frames while
// keeping per-conversation turn history in memory.
//
// Usage:
//
//	# Start the gateway with default configuration
//	monty run
//
//	# Start with a configuration file
//	monty run --config /etc/monty/config.yaml
//
//	# Ingest documents into the knowledge base once
//	monty ingest
//
//	# Keep re-ingesting as documents change
//	monty ingest --watch
//
//	# Start the desktop notification relay
//	monty notify
//
//	# Show version information
//	monty version
package main

func main() {
	Execute()
}
