package node

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeData decodes a JSON payload into the variant for t.
// Unknown types decode into *UnknownData holding the raw bytes.
// An empty or null payload decodes to nil.
func DecodeData(t Type, raw json.RawMessage) (Data, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	d := newData(t)
	if d == nil {
		return &UnknownData{Tag: t, Raw: append(json.RawMessage(nil), trimmed...)}, nil
	}
	if err := json.Unmarshal(trimmed, d); err != nil {
		return nil, fmt.Errorf("decode %s data: %w", t, err)
	}
	return d, nil
}

// UnmarshalJSON decodes a node, choosing the payload variant by its type.
func (n *Node) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID       string          `json:"id"`
		Type     Type            `json:"type"`
		Name     string          `json:"name"`
		Position Position        `json:"position"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	data, err := DecodeData(aux.Type, aux.Data)
	if err != nil {
		return fmt.Errorf("node %s: %w", aux.ID, err)
	}
	*n = Node{
		ID:       aux.ID,
		Type:     aux.Type,
		Name:     aux.Name,
		Position: aux.Position,
		Data:     data,
	}
	return nil
}
