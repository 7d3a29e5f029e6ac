package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/prompt"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/registry"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Validate checks a whole workflow and returns every problem found,
// joined. Each problem is a *Finding.
//
// Checks:
//  1. Exactly one start node
//  2. Node ids are unique and non-empty
//  3. Node types are registered, payloads are well formed and prompt
//     placeholders name declared inputs
//  4. Edge endpoints exist, edges are not self-loops, condition edges use
//     a known branch handle
//  5. The graph is acyclic
//  6. Every reference points at an output of an ancestor
func Validate(store GraphStore, reg *registry.Registry) error {
	findings := Findings(store, reg)
	if len(findings) == 0 {
		return nil
	}
	errs := make([]error, len(findings))
	for i := range findings {
		errs[i] = &findings[i]
	}
	return errors.Join(errs...)
}

// Findings runs the checks of Validate and returns the findings in order.
func Findings(store GraphStore, reg *registry.Registry) []Finding {
	if reg == nil {
		panic("workflow: registry cannot be nil")
	}
	var out []Finding
	add := func(nodeID, where string, err error) {
		out = append(out, Finding{NodeID: nodeID, Where: where, Err: err})
	}

	nodes := store.Nodes()
	edges := store.Edges()

	// 1-3. Nodes
	starts := 0
	byID := make(map[string]*node.Node, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.ID == "" {
			add("", "", errors.New("node with empty id"))
			continue
		}
		if _, dup := byID[n.ID]; dup {
			add(n.ID, "", ErrDuplicateNode)
			continue
		}
		byID[n.ID] = n
		if n.Type == node.TypeStart {
			starts++
		}
		if !reg.Has(n.Type) {
			add(n.ID, "", fmt.Errorf("%w: %q", ErrUnknownNodeType, n.Type))
			continue
		}
		if err := node.Validate(n); err != nil {
			add(n.ID, "data", err)
		}
		for _, p := range prompts(n.Data) {
			for _, name := range prompt.Undeclared(p.text, node.InputVariables(n.Data)) {
				add(n.ID, p.field, fmt.Errorf("%w: %s", ErrUndeclaredPromptVariable, name))
			}
		}
	}
	switch {
	case starts == 0:
		add("", "", ErrNoStartNode)
	case starts > 1:
		add("", "", fmt.Errorf("%w: found %d", ErrMultipleStartNodes, starts))
	}

	// 4. Edges
	for _, e := range edges {
		if e.Source == e.Target {
			add(e.Source, "edges", ErrSelfLoop)
			continue
		}
		src, ok := byID[e.Source]
		if !ok {
			add("", "", fmt.Errorf("%w: edge source %s", ErrNodeNotFound, e.Source))
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			add("", "", fmt.Errorf("%w: edge target %s", ErrNodeNotFound, e.Target))
			continue
		}
		if c, ok := src.Data.(*node.ConditionData); ok && !c.HasHandle(e.SourceHandle) {
			add(src.ID, "edges", fmt.Errorf("%w: %q", ErrBranchNotFound, e.SourceHandle))
		}
	}

	// 5. Cycles
	if cyc := findCycle(nodes, edges); cyc != nil {
		add(cyc.Path[0], "", cyc)
		return out
	}

	// 6. References
	for _, n := range nodes {
		if n == nil || n.Data == nil || byID[n.ID] != n {
			continue
		}
		options, err := referenceOptions(context.Background(), n.ID, store, reg, quietResolveConfig())
		if err != nil {
			add(n.ID, "", err)
			continue
		}
		eachReference(n.Data, func(slot, name string, v *variable.Value) {
			where := slot + "." + name
			r, err := v.Reference()
			if err != nil {
				add(n.ID, where, err)
				return
			}
			if !Contains(options, r) {
				add(n.ID, where, fmt.Errorf("%w: %s", ErrDanglingReference, r))
			}
		})
	}
	return out
}

type promptField struct {
	field string
	text  string
}

// prompts returns the prompt templates of a payload.
func prompts(data node.Data) []promptField {
	switch d := data.(type) {
	case *node.LLMData:
		return []promptField{{"systemPrompt", d.SystemPrompt}, {"prompt", d.Prompt}}
	case *node.ImageUnderstandingData:
		return []promptField{{"prompt", d.Prompt}}
	}
	return nil
}

// findCycle reports the first cycle reachable from any node, or nil.
func findCycle(nodes []*node.Node, edges []node.Edge) *CyclicGraphError {
	cfg := quietResolveConfig()
	for _, n := range nodes {
		if n == nil {
			continue
		}
		_, err := ancestorIDs(context.Background(), n.ID, edges, cfg)
		var cyc *CyclicGraphError
		if errors.As(err, &cyc) {
			return cyc
		}
	}
	return nil
}
