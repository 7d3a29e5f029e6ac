package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordCatalogBuild does nothing.
func (NoopMetrics) RecordCatalogBuild(_ context.Context, _ string, _ int) {}

// RecordAncestry does nothing.
func (NoopMetrics) RecordAncestry(_ context.Context, _ string, _ int) {}

// RecordReferencesCleared does nothing.
func (NoopMetrics) RecordReferencesCleared(_ context.Context, _ string, _ int) {}

// RecordCycle does nothing.
func (NoopMetrics) RecordCycle(_ context.Context, _ string) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartCatalogSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartCatalogSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartInvalidateSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartInvalidateSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartDeleteSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartDeleteSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
