package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Embedder turns a chunk of text into an embedding vector. It is
// satisfied by the upstream client's embeddings call.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Pipeline scans a source directory, chunks and embeds each document,
// and upserts the results into the store.
type Pipeline struct {
	sourceDir string
	chunker   *Chunker
	embedder  Embedder
	store     *Store
	logger    *slog.Logger
}

// NewPipeline creates an ingestion pipeline over the given directory.
func NewPipeline(sourceDir string, chunker *Chunker, embedder Embedder, store *Store) *Pipeline {
	return &Pipeline{
		sourceDir: sourceDir,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		logger:    slog.Default().With("component", "ingest"),
	}
}

// Stats summarizes one pipeline run.
type Stats struct {
	Files  int
	Chunks int
	Errors int
}

// Run ingests every .txt and .md file under the source directory. A
// failing file is logged and skipped; the run continues. The returned
// error covers only faults that stop the walk itself.
func (p *Pipeline) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	err := filepath.WalkDir(p.sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !ingestible(path) {
			return nil
		}

		chunks, err := p.ingestFile(ctx, path)
		if err != nil {
			p.logger.Warn("failed to ingest file", "path", path, "error", err)
			stats.Errors++
			return nil
		}
		stats.Files++
		stats.Chunks += chunks
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("ingestion walk failed: %w", err)
	}

	p.logger.Info("ingestion run completed",
		"files", stats.Files,
		"chunks", stats.Chunks,
		"errors", stats.Errors,
	)
	return stats, nil
}

// IngestFile ingests a single document and returns how many chunks it
// produced.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (int, error) {
	return p.ingestFile(ctx, path)
}

func (p *Pipeline) ingestFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %q: %w", path, err)
	}

	chunks := p.chunker.Split(string(data))
	for i, chunk := range chunks {
		embedding, err := p.embedder.Embed(ctx, chunk)
		if err != nil {
			return i, fmt.Errorf("failed to embed chunk %d of %q: %w", i, path, err)
		}

		doc := Document{
			ContentHash: HashContent(chunk),
			Content:     chunk,
			Embedding:   embedding,
			Metadata: map[string]string{
				"source": path,
				"chunk":  fmt.Sprintf("%d", i),
			},
		}
		if err := p.store.Upsert(ctx, doc); err != nil {
			return i, err
		}
	}
	return len(chunks), nil
}

// ingestible reports whether a file is a supported document type.
func ingestible(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}
