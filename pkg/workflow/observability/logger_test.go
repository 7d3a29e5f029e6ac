package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	level slog.Level
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{
		buf:   &bytes.Buffer{},
		level: slog.LevelDebug,
	}
}

func (h *testHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &testHandler{
		buf:   h.buf,
		level: h.level,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

// lastEntry decodes the most recent log line.
func (h *testHandler) lastEntry(t *testing.T) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(h.buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestEnrichLogger(t *testing.T) {
	h := newTestHandler()
	logger := EnrichLogger(slog.New(h), "llm-1", "reference_options")
	logger.Info("hello")

	entry := h.lastEntry(t)
	assert.Equal(t, "llm-1", entry["node_id"])
	assert.Equal(t, "reference_options", entry["op"])

	assert.Nil(t, EnrichLogger(nil, "x", "y"))
}

func TestLogHelpers(t *testing.T) {
	h := newTestHandler()
	logger := slog.New(h)

	t.Run("catalog built", func(t *testing.T) {
		LogCatalogBuilt(logger, "end", 3, 2, 0.5)
		entry := h.lastEntry(t)
		assert.Equal(t, "reference catalog built", entry["msg"])
		assert.Equal(t, "DEBUG", entry["level"])
		assert.EqualValues(t, 3, entry["ancestors"])
		assert.EqualValues(t, 2, entry["options"])
	})

	t.Run("references cleared", func(t *testing.T) {
		LogReferencesCleared(logger, "end", []string{"a.x", "b.y"})
		entry := h.lastEntry(t)
		assert.Equal(t, "references cleared", entry["msg"])
		assert.EqualValues(t, 2, entry["count"])
		assert.Equal(t, "a.x,b.y", entry["refs"])
	})

	t.Run("nothing cleared is silent", func(t *testing.T) {
		before := h.buf.Len()
		LogReferencesCleared(logger, "end", nil)
		assert.Equal(t, before, h.buf.Len())
	})

	t.Run("cycle", func(t *testing.T) {
		LogCycleDetected(logger, "a", []string{"a", "b", "a"})
		entry := h.lastEntry(t)
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "a -> b -> a", entry["path"])
	})

	t.Run("unknown type", func(t *testing.T) {
		LogUnknownNodeType(logger, "x", "translator")
		entry := h.lastEntry(t)
		assert.Equal(t, "translator", entry["node_type"])
	})

	t.Run("graph change", func(t *testing.T) {
		LogGraphChange(logger, "delete_edge", "e1")
		entry := h.lastEntry(t)
		assert.Equal(t, "delete_edge", entry["change"])
		assert.Equal(t, "e1", entry["id"])
	})
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogCatalogBuilt(nil, "n", 1, 1, 1)
		LogReferencesCleared(nil, "n", []string{"a.b"})
		LogCycleDetected(nil, "n", nil)
		LogUnknownNodeType(nil, "n", "t")
		LogGraphChange(nil, "c", "id")
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	assert.GreaterOrEqual(t, done(), 0.0)
}
