// Package config defines the configuration model and loading sequence.
//
// Configuration is assembled in three layers: built-in defaults, an
// optional YAML file, and environment variable overrides. Environment
// variables always win. The gateway honors the legacy variable names
// GATEWAY_PORT, OLLAMA_HOST, and OLLAMA_MODEL alongside the MONTY_
// prefixed ones used by the rest of the sections.
package config
