package observe

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/cacheup/cache"
)

// Instrumented wraps a cache engine with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: the telemetry sinks are safe for concurrent use, but the
//     wrapped engine keeps its single-owner contract; Instrumented adds no
//     synchronization of its own.
//   - Context: the context feeds telemetry only. The engine and the producer
//     never see it; there is no cancellation of a running producer.
//   - Ownership: keys and produced values pass through unmodified.
type Instrumented[K comparable, V any] struct {
	engine  *cache.CacheUp[K, V]
	name    string
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// Instrument wraps engine with telemetry from obs under the given cache name.
func Instrument[K comparable, V any](engine *cache.CacheUp[K, V], obs Observer, name string) (*Instrumented[K, V], error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if obs == nil {
		return nil, ErrNilObserver
	}
	if name == "" {
		return nil, ErrMissingCacheName
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return &Instrumented[K, V]{
		engine:  engine,
		name:    name,
		tracer:  newTracer(obs.Tracer()),
		metrics: metrics,
		logger:  obs.Logger().WithCache(name),
	}, nil
}

// Execute is cache.CacheUp.Execute with telemetry around it.
func (i *Instrumented[K, V]) Execute(ctx context.Context, key K, produce cache.Producer[V]) (V, bool) {
	return i.ExecuteWithOption(ctx, key, produce, nil)
}

// ExecuteWithOption is cache.CacheUp.ExecuteWithOption with telemetry around it.
func (i *Instrumented[K, V]) ExecuteWithOption(ctx context.Context, key K, produce cache.Producer[V], opt *cache.Option[K, V]) (V, bool) {
	meta := ExecMeta{Cache: i.name, Key: fmt.Sprintf("%v", key)}

	ctx, span := i.tracer.StartSpan(ctx, meta)

	var produceDuration time.Duration
	timed := func() V {
		start := time.Now()
		v := produce()
		produceDuration = time.Since(start)
		return v
	}

	value, hit := i.engine.ExecuteWithOption(key, timed, opt)

	outcome := OutcomeHit
	if !hit {
		// A miss that left no entry behind was vetoed by a policy; the
		// previous value was absent by definition on the miss path.
		if i.engine.Contains(key) {
			outcome = OutcomeStored
		} else {
			outcome = OutcomeRejected
		}
	}

	i.tracer.EndSpan(span, outcome)
	i.metrics.RecordExecution(ctx, meta, outcome, produceDuration)

	fields := []Field{
		{Key: "key", Value: meta.Key},
		{Key: "outcome", Value: outcome.String()},
	}
	if outcome != OutcomeHit {
		fields = append(fields, Field{Key: "produce_duration_ms", Value: float64(produceDuration.Milliseconds())})
	}
	i.logger.Debug(ctx, "cache execution", fields...)

	return value, hit
}

// Engine returns the wrapped engine.
func (i *Instrumented[K, V]) Engine() *cache.CacheUp[K, V] {
	return i.engine
}
