package workflow

import (
	"log/slog"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/observability"
)

// resolveConfig holds configuration for traversal, catalog building and
// editor sessions.
type resolveConfig struct {
	maxDepth int
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
}

// defaultResolveConfig returns the default configuration.
func defaultResolveConfig() resolveConfig {
	return resolveConfig{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// quietResolveConfig returns a configuration that records nothing, for
// internal passes that must not show up in telemetry.
func quietResolveConfig() resolveConfig {
	return resolveConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

func newResolveConfig(opts []ResolveOption) resolveConfig {
	cfg := defaultResolveConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// ResolveOption configures graph resolution and editor sessions.
type ResolveOption func(*resolveConfig)

// WithMaxDepth bounds the recursion depth of ancestor lookups.
// Default: 0 (unbounded)
//
// Lookups that would go deeper return a *MaxDepthError.
//
// Example:
//
//	ancestors, err := workflow.AncestorsOf(id, nodes, edges, workflow.WithMaxDepth(64))
func WithMaxDepth(n int) ResolveOption {
	return func(c *resolveConfig) {
		if n >= 0 {
			c.maxDepth = n
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) ResolveOption {
	return func(c *resolveConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) ResolveOption {
	return func(c *resolveConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager.
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) ResolveOption {
	return func(c *resolveConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithObservability enables OpenTelemetry metrics and tracing using the
// global providers.
func WithObservability(metrics, tracing bool) ResolveOption {
	return func(c *resolveConfig) {
		if metrics {
			c.metrics = observability.NewMetricsRecorder()
		}
		if tracing {
			c.spans = observability.NewSpanManager()
		}
	}
}
