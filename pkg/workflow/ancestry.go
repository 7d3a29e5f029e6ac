package workflow

import (
	"context"
	"errors"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/observability"
)

// AncestorsOf returns every node from which nodeID is reachable by
// following edges forward.
//
// Each ancestor appears once, diamonds included. The order is the
// discovery order of a backwards walk: the direct parents in edge order,
// then their ancestors, recursively. Edge sources with no matching node are
// walked through but not returned. The node itself is never included.
//
// The graph is expected to be acyclic. If the walk meets a cycle it stops
// and returns a *CyclicGraphError instead of looping.
func AncestorsOf(nodeID string, nodes []*node.Node, edges []node.Edge, opts ...ResolveOption) ([]*node.Node, error) {
	cfg := newResolveConfig(opts)
	ids, err := ancestorIDs(context.Background(), nodeID, edges, cfg)
	if err != nil {
		return nil, err
	}
	return resolveNodes(ids, nodes), nil
}

// AncestorIDs returns the ids of the ancestors of nodeID as a set,
// including edge sources with no matching node.
func AncestorIDs(nodeID string, edges []node.Edge, opts ...ResolveOption) (map[string]struct{}, error) {
	cfg := newResolveConfig(opts)
	ids, err := ancestorIDs(context.Background(), nodeID, edges, cfg)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// expansion states of the backwards walk.
const (
	unexpanded = iota
	expanding
	expanded
)

type ancestorWalk struct {
	start    string
	parents  map[string][]string
	maxDepth int

	seen  map[string]bool
	state map[string]int
	stack []string
	order []string
}

// ancestorIDs walks incoming edges backwards from nodeID.
func ancestorIDs(ctx context.Context, nodeID string, edges []node.Edge, cfg resolveConfig) ([]string, error) {
	w := &ancestorWalk{
		start:    nodeID,
		parents:  incoming(edges),
		maxDepth: cfg.maxDepth,
		seen:     make(map[string]bool),
		state:    make(map[string]int),
	}
	if err := w.expand(nodeID, 0); err != nil {
		var cyc *CyclicGraphError
		if errors.As(err, &cyc) {
			cfg.metrics.RecordCycle(ctx, nodeID)
			observability.LogCycleDetected(cfg.logger, nodeID, cyc.Path)
		}
		return nil, err
	}
	cfg.metrics.RecordAncestry(ctx, nodeID, len(w.order))
	return w.order, nil
}

// expand records the unseen parents of id, then expands each parent.
// A parent that is still being expanded closes a cycle.
func (w *ancestorWalk) expand(id string, depth int) error {
	w.state[id] = expanding
	w.stack = append(w.stack, id)

	parents := w.parents[id]
	if len(parents) > 0 && w.maxDepth > 0 && depth >= w.maxDepth {
		return &MaxDepthError{NodeID: w.start, Max: w.maxDepth}
	}

	for _, p := range parents {
		if !w.seen[p] && p != w.start {
			w.seen[p] = true
			w.order = append(w.order, p)
		}
	}
	for _, p := range parents {
		switch w.state[p] {
		case expanding:
			return w.cycleAt(p)
		case unexpanded:
			if err := w.expand(p, depth+1); err != nil {
				return err
			}
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
	w.state[id] = expanded
	return nil
}

// cycleAt builds the cycle closed by reaching p again.
// The stack runs against edge direction, so it is reversed.
func (w *ancestorWalk) cycleAt(p string) error {
	i := len(w.stack) - 1
	for i > 0 && w.stack[i] != p {
		i--
	}
	back := append(append([]string(nil), w.stack[i:]...), p)
	path := make([]string, len(back))
	for j, id := range back {
		path[len(back)-1-j] = id
	}
	return &CyclicGraphError{Path: path}
}

// incoming maps each target to its edge sources, in edge order.
func incoming(edges []node.Edge) map[string][]string {
	parents := make(map[string][]string)
	for _, e := range edges {
		parents[e.Target] = append(parents[e.Target], e.Source)
	}
	return parents
}

// resolveNodes maps ids to nodes, dropping ids with no node.
func resolveNodes(ids []string, nodes []*node.Node) []*node.Node {
	byID := make(map[string]*node.Node, len(nodes))
	for _, n := range nodes {
		if n != nil {
			byID[n.ID] = n
		}
	}
	out := make([]*node.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
