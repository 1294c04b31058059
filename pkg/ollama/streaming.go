package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
)

// StreamReader reads line-delimited JSON chunks from a streaming
// generation response.
type StreamReader struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
	closed  bool
}

// newStreamReader creates a reader over a streaming response body.
func newStreamReader(body io.ReadCloser) *StreamReader {
	scanner := bufio.NewScanner(body)
	// Fragments are small, but a chunk line also carries model metadata
	// on the terminal line; allow generous lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &StreamReader{
		body:    body,
		scanner: scanner,
	}
}

// Read returns the next chunk from the stream.
// Returns nil, io.EOF after the chunk whose done flag was set has been
// delivered. A stream that ends without a done line, a malformed line,
// or a transport read failure all yield a ProtocolError.
func (s *StreamReader) Read(ctx context.Context) (*Chunk, error) {
	if s.closed || s.done {
		return nil, io.EOF
	}

	for {
		// Check context cancellation between lines.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, &ProtocolError{Message: "failed to read stream", Cause: err}
			}
			return nil, &ProtocolError{Message: "stream ended before terminal done marker"}
		}

		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk Chunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return nil, &ProtocolError{Message: "malformed stream chunk", Cause: err}
		}

		if chunk.Done {
			s.done = true
		}
		return &chunk, nil
	}
}

// Close closes the stream and releases the underlying connection.
func (s *StreamReader) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.body.Close()
}
