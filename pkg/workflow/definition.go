package workflow

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
)

// Definition is the persisted form of a workflow.
type Definition struct {
	Nodes []*node.Node `json:"nodes"`
	Edges []node.Edge  `json:"edges"`
}

// ParseDefinition decodes a JSON definition.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("parse definition: %w", err)
	}
	return def, nil
}

// Marshal encodes the definition as JSON.
func (d Definition) Marshal() ([]byte, error) {
	if d.Nodes == nil {
		d.Nodes = []*node.Node{}
	}
	if d.Edges == nil {
		d.Edges = []node.Edge{}
	}
	return json.Marshal(d)
}

// Clone returns a deep copy.
func (d Definition) Clone() Definition {
	out := Definition{
		Nodes: make([]*node.Node, len(d.Nodes)),
		Edges: append([]node.Edge(nil), d.Edges...),
	}
	for i, n := range d.Nodes {
		out.Nodes[i] = n.Clone()
	}
	return out
}

// Graph builds a Graph holding deep copies of the definition's nodes.
// Returns a joined error listing every node or edge that could not be added.
func (d Definition) Graph() (*Graph, error) {
	g := NewGraph()
	var errs []error
	for _, n := range d.Nodes {
		if n == nil {
			continue
		}
		if err := g.AddNode(n.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range d.Edges {
		if err := g.AddEdge(e); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// DefinitionOf snapshots any store into a Definition.
func DefinitionOf(store GraphStore) Definition {
	return Definition{Nodes: store.Nodes(), Edges: store.Edges()}.Clone()
}

// Store exposes the definition as a read-only GraphStore without the
// checks Graph applies, so malformed definitions can still be validated.
func (d Definition) Store() GraphStore {
	return definitionStore{def: d}
}

type definitionStore struct {
	def Definition
}

func (s definitionStore) Nodes() []*node.Node { return s.def.Nodes }
func (s definitionStore) Edges() []node.Edge  { return s.def.Edges }
