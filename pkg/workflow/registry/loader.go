package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
)

// LoadPrototypes reads prototype overrides from a file, auto-detecting
// format by extension. Supported extensions: .yaml, .yml, .json
//
// The file maps node type tags to payloads:
//
//	llm:
//	  temperature: 0.2
//	  outputFormat: JSON
//	  outputVariables:
//	    - {name: output, type: string}
func LoadPrototypes(path string) (map[node.Type]node.Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prototypes file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return PrototypesFromYAML(data)
	case ".json":
		return PrototypesFromJSON(data)
	default:
		return nil, fmt.Errorf("unsupported prototypes file extension: %s", ext)
	}
}

// PrototypesFromYAML parses YAML prototype overrides.
func PrototypesFromYAML(data []byte) (map[node.Type]node.Data, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	raw := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("prototype %s: %w", k, err)
		}
		raw[k] = b
	}
	return decodePrototypes(raw)
}

// PrototypesFromJSON parses JSON prototype overrides.
func PrototypesFromJSON(data []byte) (map[node.Type]node.Data, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return decodePrototypes(raw)
}

func decodePrototypes(raw map[string]json.RawMessage) (map[node.Type]node.Data, error) {
	out := make(map[node.Type]node.Data, len(raw))
	for k, v := range raw {
		t := node.Type(k)
		if !t.Valid() {
			return nil, fmt.Errorf("prototype %s: %w", k, ErrUnknownNodeType)
		}
		d, err := node.DecodeData(t, v)
		if err != nil {
			return nil, fmt.Errorf("prototype %s: %w", k, err)
		}
		if d == nil {
			return nil, fmt.Errorf("prototype %s: empty payload", k)
		}
		if err := node.Validate(&node.Node{ID: k, Type: t, Data: d}); err != nil {
			return nil, fmt.Errorf("prototype %s: %w", k, err)
		}
		out[t] = d
	}
	return out, nil
}
