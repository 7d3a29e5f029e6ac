package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/config"
)

func TestNew(t *testing.T) {
	assert.NotNil(t, config.New(nil).Raw())
	assert.Equal(t, map[string]any{"k": "v"}, config.New(map[string]any{"k": "v"}).Raw())
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want string
	}{
		{"key exists", map[string]any{"name": "alice"}, "alice"},
		{"key missing", map[string]any{"other": "value"}, "default"},
		{"empty string", map[string]any{"name": ""}, ""},
		{"wrong type", map[string]any{"name": 123}, "default"},
		{"nil map", nil, "default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.New(tt.data).String("name", "default"))
		})
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 5, 5},
		{"int64", int64(6), 6},
		{"whole float", float64(7), 7},
		{"fractional float", 7.5, -1},
		{"string", "8", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.New(map[string]any{"n": tt.value})
			assert.Equal(t, tt.want, c.Int("n", -1))
		})
	}
}

func TestBool(t *testing.T) {
	c := config.New(map[string]any{"yes": true, "str": "true"})
	assert.True(t, c.Bool("yes", false))
	assert.False(t, c.Bool("str", false))
	assert.True(t, c.Bool("missing", true))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Duration
	}{
		{"string", "1m30s", 90 * time.Second},
		{"int seconds", 3, 3 * time.Second},
		{"int64 seconds", int64(4), 4 * time.Second},
		{"float seconds", 1.5, 1500 * time.Millisecond},
		{"invalid string", "soon", time.Hour},
		{"wrong type", true, time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.New(map[string]any{"d": tt.value})
			assert.Equal(t, tt.want, c.Duration("d", time.Hour))
		})
	}
}

func TestSection(t *testing.T) {
	c := config.New(map[string]any{
		"store": map[string]any{"driver": "sqlite"},
		"flat":  "x",
	})
	assert.Equal(t, "sqlite", c.Section("store").String("driver", ""))
	assert.False(t, c.Section("flat").Has("driver"))
	assert.False(t, c.Section("missing").Has("driver"))
	assert.True(t, c.Has("flat"))
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    config.Format
		wantErr bool
	}{
		{"a.yaml", config.FormatYAML, false},
		{"a.YML", config.FormatYAML, false},
		{"dir/a.json", config.FormatJSON, false},
		{"a.toml", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := config.FormatOf(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	c, err := config.Parse([]byte("log:\n  level: debug\n"), config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Section("log").String("level", ""))

	c, err = config.Parse([]byte(`{"traversal": {"maxDepth": 12}}`), config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Section("traversal").Int("maxDepth", 0))

	c, err = config.Parse(nil, config.FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, c.Raw())

	_, err = config.Parse([]byte("{"), config.FormatJSON)
	assert.Error(t, err)
	_, err = config.Parse([]byte("a: [b"), config.FormatYAML)
	assert.Error(t, err)
	_, err = config.Parse(nil, "toml")
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.yml")
	require.NoError(t, os.WriteFile(path, []byte("prototypesFile: p.yaml\n"), 0o600))

	c, err := config.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "p.yaml", c.String("prototypesFile", ""))

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	_, err = config.FromFile(filepath.Join(dir, "workflow.ini"))
	assert.Error(t, err)
}
