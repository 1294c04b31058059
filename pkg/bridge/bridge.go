package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/n0ko/monty/pkg/events"
	"github.com/n0ko/monty/pkg/ollama"
	"github.com/n0ko/monty/pkg/session"
	"github.com/n0ko/monty/pkg/telemetry/metrics"
	"github.com/n0ko/monty/pkg/telemetry/tracing"
	"go.opentelemetry.io/otel/trace"
)

// DefaultSystemPrompt is the fixed system instruction sent with every
// upstream request when none is configured.
const DefaultSystemPrompt = `You are Monty, a friendly assistant for a personal website.
Answer questions about the site owner's professional background and projects.
Be concise and professional. If asked about unrelated topics, politely redirect.
You do NOT have access to any tools or the ability to execute commands.`

// Bridge drives one streaming upstream exchange per inbound message.
// It is safe for concurrent use; each Run invocation is independent
// apart from the shared session registry.
type Bridge struct {
	registry *session.Registry
	client   *ollama.Client
	tracer   *tracing.Tracer
	metrics  *metrics.Metrics
	system   string
	logger   *slog.Logger
}

// Options configures optional bridge collaborators.
type Options struct {
	// Tracer wraps each exchange in a span. Nil disables tracing.
	Tracer *tracing.Tracer

	// Metrics records task and stream instrumentation. Nil disables it.
	Metrics *metrics.Metrics

	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string
}

// New creates a bridge over the given registry and upstream client.
func New(registry *session.Registry, client *ollama.Client, opts Options) *Bridge {
	system := opts.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer, _ = tracing.New(&tracing.Config{Enabled: false})
	}

	return &Bridge{
		registry: registry,
		client:   client,
		tracer:   tracer,
		metrics:  opts.Metrics,
		system:   system,
		logger:   slog.Default().With("component", "bridge"),
	}
}

// Run executes one task: it appends the user turn, streams the upstream
// response to the sink as content frames, and finishes with exactly one
// terminal frame. The returned error mirrors the error frame when the
// task failed; a nil return means completed was emitted.
//
// The ctx should be cancelled when the client connection dies, which
// aborts the upstream read so the abandoned call does not leak.
func (b *Bridge) Run(ctx context.Context, conversationID, message, taskID string, sink events.Sink) error {
	start := time.Now()

	// The user turn lands before the upstream is consulted. It stays in
	// history even if generation fails; see the package comment.
	b.registry.AppendTurn(conversationID, session.RoleUser, message)
	prompt := RenderPrompt(b.registry.History(conversationID))

	ctx, span := b.tracer.Start(ctx, "bridge.generate")
	defer span.End()
	tracing.SetTaskAttributes(span, taskID, conversationID, b.client.Model())

	// A dedicated cancel lets a failed client write abort the upstream
	// stream mid-flight.
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := b.client.Generate(streamCtx, prompt, b.system)
	if err != nil {
		return b.fail(span, sink, taskID, conversationID, start, err)
	}
	defer stream.Close()

	var acc strings.Builder
	chunks := 0
	for {
		chunk, err := stream.Read(streamCtx)
		if err != nil {
			return b.fail(span, sink, taskID, conversationID, start, err)
		}

		if chunk.Response != "" {
			if err := sink.Emit(events.NewContentEvent(taskID, conversationID, chunk.Response)); err != nil {
				cancel()
				return b.fail(span, sink, taskID, conversationID, start,
					fmt.Errorf("failed to relay content to client: %w", err))
			}
			acc.WriteString(chunk.Response)
			chunks++
			if b.metrics != nil {
				b.metrics.RecordChunk()
			}
		}

		if chunk.Done {
			break
		}
	}

	b.registry.AppendTurn(conversationID, session.RoleAssistant, acc.String())
	tracing.SetStreamAttributes(span, chunks, acc.Len())

	if err := sink.Emit(events.NewCompletedEvent(taskID, conversationID)); err != nil {
		// The assistant turn is already recorded; the client just never
		// saw the terminal frame. Surface the write failure to the
		// handler, which will tear the connection down.
		b.logger.Warn("failed to deliver completed frame",
			"task_id", taskID,
			"conversation_id", conversationID,
			"error", err,
		)
		return err
	}

	if b.metrics != nil {
		b.metrics.RecordTask(string(events.TypeCompleted), time.Since(start))
	}
	b.logger.Info("task completed",
		"task_id", taskID,
		"conversation_id", conversationID,
		"chunks", chunks,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// fail emits the task's single error frame and records the fault. The
// emit itself is best-effort: if the client is already gone there is
// nobody left to tell. No assistant turn is appended on failure.
func (b *Bridge) fail(span trace.Span, sink events.Sink, taskID, conversationID string, start time.Time, err error) error {
	tracing.SetError(span, err)

	if emitErr := sink.Emit(events.NewErrorEvent(taskID, conversationID, err.Error())); emitErr != nil {
		b.logger.Warn("failed to deliver error frame",
			"task_id", taskID,
			"conversation_id", conversationID,
			"error", emitErr,
		)
	}

	if b.metrics != nil {
		b.metrics.RecordTask(string(events.TypeError), time.Since(start))
	}
	b.logger.Warn("task failed",
		"task_id", taskID,
		"conversation_id", conversationID,
		"error", err,
	)
	return err
}
