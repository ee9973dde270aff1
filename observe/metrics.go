package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache execution metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordExecution records one execution with its outcome and, for the
	// miss paths, the time the producer took. Duration is ignored on a hit.
	RecordExecution(ctx context.Context, meta ExecMeta, outcome Outcome, produceDuration time.Duration)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter       metric.Meter
	totalCount  metric.Int64Counter
	hitCount    metric.Int64Counter
	missCount   metric.Int64Counter
	rejectCount metric.Int64Counter
	produceHist metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"cache.exec.total",
		metric.WithDescription("Total number of cache executions"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	hitCount, err := meter.Int64Counter(
		"cache.exec.hits",
		metric.WithDescription("Executions answered from the store"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	missCount, err := meter.Int64Counter(
		"cache.exec.misses",
		metric.WithDescription("Executions that invoked the producer"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	rejectCount, err := meter.Int64Counter(
		"cache.exec.rejects",
		metric.WithDescription("Miss executions whose write a policy vetoed"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	produceHist, err := meter.Float64Histogram(
		"cache.produce.duration_ms",
		metric.WithDescription("Producer execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:       meter,
		totalCount:  totalCount,
		hitCount:    hitCount,
		missCount:   missCount,
		rejectCount: rejectCount,
		produceHist: produceHist,
	}, nil
}

// RecordExecution records metrics for one cache execution.
func (m *metricsImpl) RecordExecution(ctx context.Context, meta ExecMeta, outcome Outcome, produceDuration time.Duration) {
	opt := metric.WithAttributes(
		attribute.String("cache.name", meta.Cache),
	)

	m.totalCount.Add(ctx, 1, opt)

	switch outcome {
	case OutcomeHit:
		m.hitCount.Add(ctx, 1, opt)
		return
	case OutcomeRejected:
		m.rejectCount.Add(ctx, 1, opt)
	}

	// Both miss outcomes ran the producer.
	m.missCount.Add(ctx, 1, opt)
	m.produceHist.Record(ctx, float64(produceDuration.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordExecution(ctx context.Context, meta ExecMeta, outcome Outcome, produceDuration time.Duration) {
}
