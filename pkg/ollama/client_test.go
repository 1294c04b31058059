package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateStreamsChunks(t *testing.T) {
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected path /api/generate, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprintln(w, `{"response":"Hel"}`)
		fmt.Fprintln(w, `{"response":"lo"}`)
		fmt.Fprintln(w, `{"response":"","done":true}`)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "llama3.2:latest"})
	defer c.Close()

	stream, err := c.Generate(context.Background(), "User: Hi\nAssistant:", "be nice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	defer stream.Close()

	if !gotBody.Stream {
		t.Error("expected stream=true in request body")
	}
	if gotBody.Model != "llama3.2:latest" {
		t.Errorf("expected model llama3.2:latest, got %q", gotBody.Model)
	}
	if gotBody.System != "be nice" {
		t.Errorf("expected system instruction, got %q", gotBody.System)
	}

	var fragments []string
	for {
		chunk, err := stream.Read(context.Background())
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if chunk.Response != "" {
			fragments = append(fragments, chunk.Response)
		}
		if chunk.Done {
			break
		}
	}

	if got := strings.Join(fragments, ""); got != "Hello" {
		t.Errorf("expected accumulated Hello, got %q", got)
	}
}

func TestGenerateRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "missing"})
	defer c.Close()

	_, err := c.Generate(context.Background(), "prompt", "system")
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %T: %v", err, err)
	}
	if rejected.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rejected.StatusCode)
	}
	if !strings.Contains(rejected.Error(), "404") {
		t.Errorf("error message should carry the status code: %q", rejected.Error())
	}
}

func TestGenerateUnavailable(t *testing.T) {
	// A closed server guarantees a connection failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c := NewClient(Config{BaseURL: addr, Model: "llama3.2:latest"})
	defer c.Close()

	_, err := c.Generate(context.Background(), "prompt", "system")
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError, got %T: %v", err, err)
	}
	if unavailable.Address != addr {
		t.Errorf("expected address %s, got %s", addr, unavailable.Address)
	}
	if !strings.Contains(err.Error(), addr) {
		t.Errorf("error message should reference the upstream address: %q", err.Error())
	}
}

func TestStreamMalformedChunk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"ok"}`)
		fmt.Fprintln(w, `{not json`)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "m"})
	defer c.Close()

	stream, err := c.Generate(context.Background(), "p", "s")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	defer stream.Close()

	if _, err := stream.Read(context.Background()); err != nil {
		t.Fatalf("first chunk should parse: %v", err)
	}

	_, err = stream.Read(context.Background())
	var protocol *ProtocolError
	if !errors.As(err, &protocol) {
		t.Fatalf("expected ProtocolError, got %T: %v", err, err)
	}
}

func TestStreamPrematureEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"partial"}`)
		// No done line: the stream just stops.
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "m"})
	defer c.Close()

	stream, err := c.Generate(context.Background(), "p", "s")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	defer stream.Close()

	if _, err := stream.Read(context.Background()); err != nil {
		t.Fatalf("first chunk should parse: %v", err)
	}

	_, err = stream.Read(context.Background())
	var protocol *ProtocolError
	if !errors.As(err, &protocol) {
		t.Fatalf("expected ProtocolError on premature end, got %T: %v", err, err)
	}
}

func TestStreamReadAfterDone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"done":true}`)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "m"})
	defer c.Close()

	stream, err := c.Generate(context.Background(), "p", "s")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	defer stream.Close()

	chunk, err := stream.Read(context.Background())
	if err != nil || !chunk.Done {
		t.Fatalf("expected done chunk, got %+v, %v", chunk, err)
	}

	if _, err := stream.Read(context.Background()); err == nil {
		t.Error("expected io.EOF after done chunk")
	}
}

func TestStreamContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"response":"x"}`)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "m"})
	defer c.Close()

	stream, err := c.Generate(context.Background(), "p", "s")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	defer stream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := stream.Read(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("expected path /api/embeddings, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(embeddingsResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "m"})
	defer c.Close()

	vec, err := c.Embed(context.Background(), "some chunk")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(vec))
	}
}

func TestEmbedEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"embedding":[]}`)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL, Model: "m"})
	defer c.Close()

	_, err := c.Embed(context.Background(), "text")
	var protocol *ProtocolError
	if !errors.As(err, &protocol) {
		t.Fatalf("expected ProtocolError, got %T: %v", err, err)
	}
}
