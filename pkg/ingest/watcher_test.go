package ingest

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)
	defer d.stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.trigger(func() { calls.Add(1) })
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times for one burst, want 1", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.trigger(func() { calls.Add(1) })
	d.stop()

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after stop, want 0", got)
	}
}

func TestWatcherReingestsOnChange(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t)
	pipeline := NewPipeline(dir, NewChunker(2000, 200), &fakeEmbedder{}, store)

	watcher, err := NewWatcher(pipeline, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- watcher.Watch(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	writeDoc(t, dir, "new.md", "freshly written content")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		n, err := store.Count(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if n == 1 {
			break
		}
		time.Sleep(25 * time.Millisecond)
	}

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("store holds %d documents after change, want 1", n)
	}

	if err := watcher.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Watch() returned %v", err)
	}
}

func TestSchedulerRejectsInvalidExpression(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t)
	pipeline := NewPipeline(dir, NewChunker(2000, 200), &fakeEmbedder{}, store)

	s := NewScheduler(pipeline, "not a cron expression")
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected an error for an invalid cron expression")
	}
}

func TestSchedulerEmptyScheduleIsNoop(t *testing.T) {
	dir := t.TempDir()
	store := newTestStore(t)
	pipeline := NewPipeline(dir, NewChunker(2000, 200), &fakeEmbedder{}, store)

	s := NewScheduler(pipeline, "")
	if err := s.Start(context.Background()); err != nil {
		t.Errorf("Start() with empty schedule = %v, want nil", err)
	}
	s.Stop()
}
