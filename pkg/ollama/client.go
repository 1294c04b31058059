package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// maxErrorBody caps how much of an error response body is retained.
	maxErrorBody = 4 * 1024
)

// Config contains configuration for the upstream client.
type Config struct {
	// BaseURL is the upstream base address (e.g. "http://localhost:11434").
	BaseURL string

	// Model is the model identifier sent with every request.
	Model string

	// Timeout bounds one entire call, streaming body read included.
	// Default: 300 seconds.
	Timeout time.Duration

	// MaxIdleConns is the connection pool size. Default: 10.
	MaxIdleConns int

	// IdleConnTimeout is how long idle connections are kept. Default: 90s.
	IdleConnTimeout time.Duration
}

// applyDefaults fills zero-valued fields with defaults.
func (c *Config) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 300 * time.Second
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 10
	}
	if c.IdleConnTimeout <= 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
}

// Client is an HTTP client for the upstream inference service with
// connection pooling. It is safe for concurrent use.
type Client struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a new upstream client.
func NewClient(cfg Config) *Client {
	cfg.applyDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: slog.Default().With("component", "ollama"),
	}
}

// BaseURL returns the configured upstream base address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}

// generateRequest is the wire shape of a streaming generation request.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
}

// Chunk is one line of the streaming generation response. Either field
// may be absent on a given line.
type Chunk struct {
	// Response is the incremental text fragment (may be empty).
	Response string `json:"response"`

	// Done marks the terminal line of a successful exchange.
	Done bool `json:"done"`
}

// Generate opens one streaming generation request and returns a reader
// over its chunk lines. The caller must Close the reader. The context
// should carry any cancellation tied to the client connection; the
// coarse call timeout is enforced by the underlying HTTP client.
func (c *Client) Generate(ctx context.Context, prompt, system string) (*StreamReader, error) {
	body := generateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		System: system,
		Stream: true,
	}

	resp, err := c.post(ctx, "/api/generate", body)
	if err != nil {
		return nil, err
	}

	return newStreamReader(resp.Body), nil
}

// embeddingsRequest is the wire shape of an embedding request.
type embeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embeddingsResponse is the wire shape of an embedding response.
type embeddingsResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed computes the embedding vector for one text. Used by the offline
// ingestion pipeline; the bridge never calls it.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.post(ctx, "/api/embeddings", embeddingsRequest{
		Model:  c.config.Model,
		Prompt: text,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &ProtocolError{Message: "malformed embedding response", Cause: err}
	}
	if len(out.Embedding) == 0 {
		return nil, &ProtocolError{Message: "embedding response carried no vector"}
	}
	return out.Embedding, nil
}

// post sends one JSON request and returns the response on 2xx. Transport
// failures map to UnavailableError, non-2xx statuses to RejectedError.
// Requests are never retried.
func (c *Client) post(ctx context.Context, path string, body interface{}) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending upstream request", "url", url, "model", c.config.Model)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Address: c.config.BaseURL, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		c.logger.Warn("upstream returned error status",
			"url", url,
			"status", resp.StatusCode,
		)
		return nil, &RejectedError{StatusCode: resp.StatusCode, Body: string(errorBody)}
	}

	return resp, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
