package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConsoleLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewConsoleLogger(ConsoleOptions{Level: "debug", Format: "json", Writer: &buf})
	require.NoError(t, err)

	LogCatalogBuilt(logger, "end", 2, 1, 0.1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "reference catalog built", entry["msg"])
	assert.Equal(t, "end", entry["node_id"])
}

func TestNewConsoleLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewConsoleLogger(ConsoleOptions{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewConsoleLogger_Errors(t *testing.T) {
	_, err := NewConsoleLogger(ConsoleOptions{Level: "loud"})
	assert.Error(t, err)

	_, err = NewConsoleLogger(ConsoleOptions{Format: "xml"})
	assert.ErrorContains(t, err, "unsupported log format")
}
