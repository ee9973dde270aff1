package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Outcome classifies a single cache execution for telemetry purposes.
type Outcome int

const (
	// OutcomeHit means the key was present and the producer was skipped.
	OutcomeHit Outcome = iota

	// OutcomeStored means the key was absent, the producer ran, and the
	// result was written to the store.
	OutcomeStored

	// OutcomeRejected means the key was absent, the producer ran, and a
	// policy vetoed the write.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeStored:
		return "stored"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ExecMeta identifies a cache execution for telemetry purposes.
type ExecMeta struct {
	Cache string // Cache name (required)
	Key   string // Rendered key (optional; may be elided for cardinality)
}

// SpanName returns the deterministic span name for this cache.
// Format: cache.exec.<name>
func (m ExecMeta) SpanName() string {
	return "cache.exec." + m.Cache
}

// Tracer wraps OpenTelemetry tracing with cache-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a cache execution.
	StartSpan(ctx context.Context, meta ExecMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording the execution outcome.
	EndSpan(span trace.Span, outcome Outcome)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with cache metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta ExecMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("cache.name", meta.Cache),
	}
	if meta.Key != "" {
		attrs = append(attrs, attribute.String("cache.key", meta.Key))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records the outcome.
func (t *tracerImpl) EndSpan(span trace.Span, outcome Outcome) {
	span.SetAttributes(
		attribute.String("cache.outcome", outcome.String()),
		attribute.Bool("cache.hit", outcome == OutcomeHit),
	)
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta ExecMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, outcome Outcome) {
	span.End()
}
