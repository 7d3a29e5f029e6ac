// Package observability provides logging, metrics and tracing for the
// workflow editor core.
//
// Features:
//   - Structured logging via slog (Go stdlib), with a charmbracelet/log
//     console handler
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"strings"
	"time"
)

// EnrichLogger adds workflow context to a logger.
// Returns a new logger with node_id and op fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "llm-1", "reference_options")
//	enriched.Debug("building catalog") // includes node_id, op
func EnrichLogger(logger *slog.Logger, nodeID, op string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("node_id", nodeID),
		slog.String("op", op),
	)
}

// LogCatalogBuilt logs a finished reference catalog.
func LogCatalogBuilt(logger *slog.Logger, nodeID string, ancestors, options int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("reference catalog built",
		slog.String("node_id", nodeID),
		slog.Int("ancestors", ancestors),
		slog.Int("options", options),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogReferencesCleared logs the references cleared on one node.
func LogReferencesCleared(logger *slog.Logger, nodeID string, refs []string) {
	if logger == nil || len(refs) == 0 {
		return
	}
	logger.Info("references cleared",
		slog.String("node_id", nodeID),
		slog.Int("count", len(refs)),
		slog.String("refs", strings.Join(refs, ",")),
	)
}

// LogCycleDetected logs a cycle found while walking the graph.
func LogCycleDetected(logger *slog.Logger, nodeID string, path []string) {
	if logger == nil {
		return
	}
	logger.Warn("cycle detected",
		slog.String("node_id", nodeID),
		slog.String("path", strings.Join(path, " -> ")),
	)
}

// LogUnknownNodeType logs a node whose type has no registry entry.
func LogUnknownNodeType(logger *slog.Logger, nodeID, nodeType string) {
	if logger == nil {
		return
	}
	logger.Debug("unknown node type",
		slog.String("node_id", nodeID),
		slog.String("node_type", nodeType),
	)
}

// LogGraphChange logs a topology change made in an editor session.
func LogGraphChange(logger *slog.Logger, change, id string) {
	if logger == nil {
		return
	}
	logger.Debug("graph changed",
		slog.String("change", change),
		slog.String("id", id),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
