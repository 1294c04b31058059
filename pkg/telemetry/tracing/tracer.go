// Package tracing wraps OpenTelemetry span creation for the gateway.
//
// The bridge calls Start around each upstream exchange and annotates the
// span with stream statistics; tracing never alters control flow or
// error semantics. When disabled, a noop tracer is installed and span
// operations cost almost nothing.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials/insecure"
)

// Span attribute keys in the gateway's namespace.
const (
	// AttrConversation is the conversation id attribute.
	AttrConversation = "monty.conversation_id"

	// AttrTask is the task id attribute.
	AttrTask = "monty.task_id"

	// AttrModel is the upstream model identifier.
	AttrModel = "monty.model"

	// AttrChunks is the number of relayed content fragments.
	AttrChunks = "monty.stream.chunks"

	// AttrResponseBytes is the accumulated assistant text length.
	AttrResponseBytes = "monty.stream.response_bytes"
)

// Config contains configuration for the tracer.
type Config struct {
	// Enabled turns tracing on; when false all spans are noops.
	Enabled bool

	// ServiceName identifies this process in exported traces.
	ServiceName string

	// Endpoint is the OTLP/gRPC collector endpoint (host:port).
	Endpoint string

	// Insecure disables TLS towards the collector.
	Insecure bool

	// SampleRatio in [0,1]; 1 traces everything. Default: 1.
	SampleRatio float64
}

// Tracer wraps the OpenTelemetry tracer with the gateway's span
// vocabulary.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	enabled  bool
}

// New creates a tracer from the configuration. The returned tracer must
// be shut down before process exit:
//
//	defer tracer.Shutdown(context.Background())
func New(cfg *Config) (*Tracer, error) {
	if cfg == nil {
		return nil, errors.New("tracing config is nil")
	}

	t := &Tracer{enabled: cfg.Enabled}

	if !cfg.Enabled {
		t.tracer = trace.NewNoopTracerProvider().Tracer("monty")
		return t, nil
	}

	exporter, err := newOTLPExporter(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "monty-gateway"
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	t.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)

	otel.SetTracerProvider(t.provider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	t.tracer = t.provider.Tracer("monty")
	return t, nil
}

// newOTLPExporter creates the OTLP/gRPC exporter.
func newOTLPExporter(cfg *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}
	return exporter, nil
}

// Start begins a span. The span must be ended by the caller:
//
//	ctx, span := tracer.Start(ctx, "bridge.generate")
//	defer span.End()
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// Enabled reports whether spans are exported.
func (t *Tracer) Enabled() bool {
	return t.enabled
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if !t.enabled || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// SetStreamAttributes annotates a span with stream statistics.
func SetStreamAttributes(span trace.Span, chunks, responseBytes int) {
	span.SetAttributes(
		attribute.Int(AttrChunks, chunks),
		attribute.Int(AttrResponseBytes, responseBytes),
	)
}

// SetTaskAttributes annotates a span with request correlation ids.
func SetTaskAttributes(span trace.Span, taskID, conversationID, model string) {
	span.SetAttributes(
		attribute.String(AttrTask, taskID),
		attribute.String(AttrConversation, conversationID),
		attribute.String(AttrModel, model),
	)
}

// SetError marks the span as failed and records the error.
func SetError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String("error.message", err.Error()),
	)
	span.RecordError(err)
}
