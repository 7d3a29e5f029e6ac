package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the workflow tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("workflow")

// Span names.
const (
	SpanCatalog    = "workflow.catalog"
	SpanInvalidate = "workflow.invalidate"
	SpanDeleteNode = "workflow.delete_node"
	SpanDeleteEdge = "workflow.delete_edge"
)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCatalogSpan starts a span for building the reference catalog of a node.
	StartCatalogSpan(ctx context.Context, nodeID string) (context.Context, trace.Span)

	// StartInvalidateSpan starts a span for a reference invalidation pass.
	// trigger names the change that caused it.
	StartInvalidateSpan(ctx context.Context, trigger string) (context.Context, trace.Span)

	// StartDeleteSpan starts a span for deleting a node or an edge.
	// Any invalidation span should be a child of it.
	StartDeleteSpan(ctx context.Context, name, id string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCatalogSpan starts a catalog span.
func (m *otelSpanManager) StartCatalogSpan(ctx context.Context, nodeID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanCatalog,
		trace.WithAttributes(attribute.String("node.id", nodeID)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartInvalidateSpan starts an invalidation span.
func (m *otelSpanManager) StartInvalidateSpan(ctx context.Context, trigger string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanInvalidate,
		trace.WithAttributes(attribute.String("trigger", trigger)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDeleteSpan starts a delete span.
func (m *otelSpanManager) StartDeleteSpan(ctx context.Context, name, id string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("target.id", id)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
