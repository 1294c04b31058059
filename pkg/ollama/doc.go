// Package ollama is the client for the upstream token-generation service.
//
// # Overview
//
// The upstream speaks a request/response streaming protocol over
// line-delimited JSON: one POST to /api/generate with
// {"model", "prompt", "system", "stream": true} yields a sequence of
// JSON lines, each possibly carrying an incremental "response" fragment
// and a "done" terminal marker. A successful exchange ends with a line
// where done is true.
//
// The client also exposes the /api/embeddings endpoint used by the
// offline ingestion pipeline.
//
// # Timeouts
//
// One coarse timeout bounds an entire streaming call, body read
// included. There is deliberately no per-chunk timeout: a stalled stream
// that still sends periodic fragments runs until the coarse ceiling.
//
// # Error Taxonomy
//
//   - RejectedError: the upstream returned a non-2xx status
//   - UnavailableError: the upstream could not be reached at all
//   - ProtocolError: the stream was malformed or ended before done
//
// No request is ever retried; a failed exchange is terminal.
package ollama
