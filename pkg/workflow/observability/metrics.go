package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records workflow editor metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCatalogBuild records a reference catalog built for a node.
	RecordCatalogBuild(ctx context.Context, nodeID string, options int)

	// RecordAncestry records the number of ancestors found for a node.
	RecordAncestry(ctx context.Context, nodeID string, size int)

	// RecordReferencesCleared records references cleared on a node.
	RecordReferencesCleared(ctx context.Context, nodeID string, count int)

	// RecordCycle records a cycle found while walking from a node.
	RecordCycle(ctx context.Context, nodeID string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	catalogBuilds     metric.Int64Counter
	catalogOptions    metric.Int64Histogram
	ancestrySize      metric.Int64Histogram
	referencesCleared metric.Int64Counter
	cyclesDetected    metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("workflow")

	catalogBuilds, err := meter.Int64Counter("workflow.catalog.builds",
		metric.WithDescription("Number of reference catalogs built"),
	)
	if err != nil {
		return nil, err
	}

	catalogOptions, err := meter.Int64Histogram("workflow.catalog.options",
		metric.WithDescription("Number of ancestor options per catalog"),
	)
	if err != nil {
		return nil, err
	}

	ancestrySize, err := meter.Int64Histogram("workflow.ancestry.size",
		metric.WithDescription("Number of ancestors found per lookup"),
	)
	if err != nil {
		return nil, err
	}

	referencesCleared, err := meter.Int64Counter("workflow.references.cleared",
		metric.WithDescription("Number of dangling references cleared"),
	)
	if err != nil {
		return nil, err
	}

	cyclesDetected, err := meter.Int64Counter("workflow.cycles.detected",
		metric.WithDescription("Number of cycles found during traversal"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		catalogBuilds:     catalogBuilds,
		catalogOptions:    catalogOptions,
		ancestrySize:      ancestrySize,
		referencesCleared: referencesCleared,
		cyclesDetected:    cyclesDetected,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCatalogBuild records a catalog build.
func (m *otelMetrics) RecordCatalogBuild(ctx context.Context, nodeID string, options int) {
	attrs := metric.WithAttributes(attribute.String("node_id", nodeID))
	m.catalogBuilds.Add(ctx, 1, attrs)
	m.catalogOptions.Record(ctx, int64(options), attrs)
}

// RecordAncestry records an ancestry lookup.
func (m *otelMetrics) RecordAncestry(ctx context.Context, nodeID string, size int) {
	m.ancestrySize.Record(ctx, int64(size), metric.WithAttributes(attribute.String("node_id", nodeID)))
}

// RecordReferencesCleared records cleared references.
func (m *otelMetrics) RecordReferencesCleared(ctx context.Context, nodeID string, count int) {
	if count == 0 {
		return
	}
	m.referencesCleared.Add(ctx, int64(count), metric.WithAttributes(attribute.String("node_id", nodeID)))
}

// RecordCycle records a detected cycle.
func (m *otelMetrics) RecordCycle(ctx context.Context, nodeID string) {
	m.cyclesDetected.Add(ctx, 1, metric.WithAttributes(attribute.String("node_id", nodeID)))
}
