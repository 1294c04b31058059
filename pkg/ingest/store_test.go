package ingest

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := Document{
		ContentHash: HashContent("hello world"),
		Content:     "hello world",
		Embedding:   []float64{0.1, 0.2, 0.3},
		Metadata:    map[string]string{"source": "a.txt"},
	}
	if err := store.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := store.Get(ctx, doc.ContentHash)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Content != "hello world" {
		t.Errorf("Content = %q", got.Content)
	}
	if len(got.Embedding) != 3 || got.Embedding[1] != 0.2 {
		t.Errorf("Embedding = %v", got.Embedding)
	}
	if got.Metadata["source"] != "a.txt" {
		t.Errorf("Metadata = %v", got.Metadata)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestStoreUpsertIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := Document{
		ContentHash: HashContent("same content"),
		Content:     "same content",
		Embedding:   []float64{1},
	}
	for i := 0; i < 3; i++ {
		if err := store.Upsert(ctx, doc); err != nil {
			t.Fatalf("Upsert() #%d error = %v", i, err)
		}
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1 after repeated upserts", n)
	}
}

func TestStoreUpsertRefreshes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hash := HashContent("stable")
	if err := store.Upsert(ctx, Document{ContentHash: hash, Content: "stable", Embedding: []float64{1}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx, Document{ContentHash: hash, Content: "stable", Embedding: []float64{2}}); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, hash)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Embedding) != 1 || got.Embedding[0] != 2 {
		t.Errorf("Embedding = %v, want the refreshed value", got.Embedding)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-hash")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Get() error = %v, want sql.ErrNoRows", err)
	}
}

func TestStoreRejectsEmptyHash(t *testing.T) {
	store := newTestStore(t)

	if err := store.Upsert(context.Background(), Document{Content: "x"}); err == nil {
		t.Error("expected an error for a document without a content hash")
	}
}

func TestHashContent(t *testing.T) {
	if HashContent("") != "" {
		t.Error("empty content should hash to the empty string")
	}
	a, b := HashContent("abc"), HashContent("abc")
	if a != b {
		t.Error("identical content must hash identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if HashContent("abc") == HashContent("abd") {
		t.Error("distinct content should hash differently")
	}
}
