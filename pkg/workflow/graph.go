package workflow

import (
	"errors"
	"fmt"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
)

// GraphStore exposes the topology of a workflow.
//
// Implementations own the node and edge lists. Callers treat the returned
// slices as read-only, except that node payloads may be modified in place
// by reference invalidation.
type GraphStore interface {
	Nodes() []*node.Node
	Edges() []node.Edge
}

// Graph is an in-memory GraphStore.
//
// Graph is NOT safe for concurrent mutation. Use it from the goroutine that
// owns the editing session.
type Graph struct {
	nodes []*node.Node
	index map[string]*node.Node
	edges []node.Edge
}

// Compile-time interface check.
var _ GraphStore = (*Graph)(nil)

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]*node.Node)}
}

// Nodes returns the nodes in insertion order.
// The slice must not be modified. Later mutations of g leave it unchanged.
func (g *Graph) Nodes() []*node.Node {
	return g.nodes
}

// Edges returns the edges in insertion order.
// The slice must not be modified. Later mutations of g leave it unchanged.
func (g *Graph) Edges() []node.Edge {
	return g.edges
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*node.Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// AddNode adds a node.
// Panics if n is nil.
func (g *Graph) AddNode(n *node.Node) error {
	if n == nil {
		panic("workflow: node cannot be nil")
	}
	if n.ID == "" {
		return errors.New("node id cannot be empty")
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	g.nodes = append(g.nodes, n)
	g.index[n.ID] = n
	return nil
}

// RemoveNode removes a node and every edge touching it.
// Returns the removed node and edges.
func (g *Graph) RemoveNode(id string) (*node.Node, []node.Edge, error) {
	n, ok := g.index[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	delete(g.index, id)
	nodes := make([]*node.Node, 0, len(g.nodes)-1)
	for _, cur := range g.nodes {
		if cur.ID != id {
			nodes = append(nodes, cur)
		}
	}
	g.nodes = nodes

	var removed []node.Edge
	kept := make([]node.Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.Touches(id) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	return n, removed, nil
}

// AddEdge adds an edge between two existing nodes.
// Rejects an edge with the endpoints of an existing one, or with an
// existing non-empty id.
// Topology checks beyond endpoint existence belong to the Editor.
func (g *Graph) AddEdge(e node.Edge) error {
	if e.Source == e.Target {
		return fmt.Errorf("%w: %s", ErrSelfLoop, e.Source)
	}
	if _, ok := g.index[e.Source]; !ok {
		return fmt.Errorf("%w: edge source %s", ErrNodeNotFound, e.Source)
	}
	if _, ok := g.index[e.Target]; !ok {
		return fmt.Errorf("%w: edge target %s", ErrNodeNotFound, e.Target)
	}
	for _, cur := range g.edges {
		if cur.SameEndpoints(e) || (e.ID != "" && cur.ID == e.ID) {
			return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, e.Source, e.Target)
		}
	}
	g.edges = append(g.edges, e)
	return nil
}

// RemoveEdge removes the edge matching e (see node.Edge.Same).
// Returns the stored edge.
func (g *Graph) RemoveEdge(e node.Edge) (node.Edge, error) {
	for i, cur := range g.edges {
		if cur.Same(e) {
			edges := make([]node.Edge, 0, len(g.edges)-1)
			edges = append(edges, g.edges[:i]...)
			g.edges = append(edges, g.edges[i+1:]...)
			return cur, nil
		}
	}
	return node.Edge{}, fmt.Errorf("%w: %s -> %s", ErrEdgeNotFound, e.Source, e.Target)
}

// Successors returns the ids of the direct successors of nodeID, in edge
// order and without duplicates.
func Successors(store GraphStore, nodeID string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range store.Edges() {
		if e.Source == nodeID && !seen[e.Target] {
			seen[e.Target] = true
			out = append(out, e.Target)
		}
	}
	return out
}

// Predecessors returns the ids of the direct predecessors of nodeID, in
// edge order and without duplicates.
func Predecessors(store GraphStore, nodeID string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range store.Edges() {
		if e.Target == nodeID && !seen[e.Source] {
			seen[e.Source] = true
			out = append(out, e.Source)
		}
	}
	return out
}

// SuccessorsVia returns the targets of edges leaving nodeID through the
// given source handle. Condition nodes use it to follow one branch.
func SuccessorsVia(store GraphStore, nodeID, handle string) []string {
	var out []string
	for _, e := range store.Edges() {
		if e.Source == nodeID && e.SourceHandle == handle {
			out = append(out, e.Target)
		}
	}
	return out
}
