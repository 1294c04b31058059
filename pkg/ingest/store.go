package ingest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Document is one embedded chunk as stored in the database.
type Document struct {
	ContentHash string
	Content     string
	Embedding   []float64
	Metadata    map[string]string
	UpdatedAt   time.Time
}

// Store persists embedded chunks in a sqlite database. Rows are keyed
// by content hash; upserting existing content refreshes the row rather
// than duplicating it.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		content_hash TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		embedding TEXT NOT NULL,
		metadata TEXT,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Upsert inserts or refreshes one document. The operation is
// idempotent: re-ingesting identical content rewrites the same row.
func (s *Store) Upsert(ctx context.Context, doc Document) error {
	if doc.ContentHash == "" {
		return fmt.Errorf("document has no content hash")
	}

	embedding, err := json.Marshal(doc.Embedding)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (content_hash, content, embedding, metadata, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			content = excluded.content,
			embedding = excluded.embedding,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, doc.ContentHash, doc.Content, string(embedding), string(metadata), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// Get loads one document by content hash. It returns sql.ErrNoRows when
// the hash is not present.
func (s *Store) Get(ctx context.Context, contentHash string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT content_hash, content, embedding, metadata, updated_at
		FROM documents WHERE content_hash = ?
	`, contentHash)

	var doc Document
	var embedding, metadata string
	var updatedAt int64
	if err := row.Scan(&doc.ContentHash, &doc.Content, &embedding, &metadata, &updatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(embedding), &doc.Embedding); err != nil {
		return nil, fmt.Errorf("failed to decode embedding: %w", err)
	}
	if metadata != "" && metadata != "null" {
		if err := json.Unmarshal([]byte(metadata), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
	}
	doc.UpdatedAt = time.Unix(updatedAt, 0)
	return &doc, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
