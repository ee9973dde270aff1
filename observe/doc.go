// Package observe provides observability for cacheup engines.
//
// It is a pure instrumentation layer: the core cache stays context-free and
// dependency-free, and consumers who want telemetry wrap an engine with
// Instrument. Tracing and metrics go through OpenTelemetry; logging is a
// minimal structured JSON logger.
package observe
