package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/observability"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/prompt"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/registry"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Editor is one editing session over a workflow graph.
//
// It keeps references consistent with the topology: every deletion is
// followed by an invalidation pass over all surviving nodes, and
// connections that would close a cycle are rejected.
//
// Editor is NOT thread-safe. Use a single goroutine per session.
type Editor struct {
	graph *Graph
	reg   *registry.Registry
	cfg   resolveConfig
	newID func() string
}

// NewEditor starts a session on an empty graph.
// Panics if reg is nil.
func NewEditor(reg *registry.Registry, opts ...ResolveOption) *Editor {
	if reg == nil {
		panic("workflow: registry cannot be nil")
	}
	return &Editor{
		graph: NewGraph(),
		reg:   reg,
		cfg:   newResolveConfig(opts),
		newID: uuid.NewString,
	}
}

// OpenEditor starts a session on a copy of def.
// The definition is taken as is; call Repair to drop stale references.
func OpenEditor(def Definition, reg *registry.Registry, opts ...ResolveOption) (*Editor, error) {
	e := NewEditor(reg, opts...)
	g, err := def.Graph()
	if err != nil {
		return nil, fmt.Errorf("open definition: %w", err)
	}
	if cyc := findCycle(g.Nodes(), g.Edges()); cyc != nil {
		return nil, fmt.Errorf("open definition: %w", cyc)
	}
	e.graph = g
	return e, nil
}

// Graph returns the session graph.
func (e *Editor) Graph() *Graph {
	return e.graph
}

// Registry returns the session registry.
func (e *Editor) Registry() *registry.Registry {
	return e.reg
}

// Definition snapshots the session graph.
func (e *Editor) Definition() Definition {
	return DefinitionOf(e.graph)
}

// AddNode adds a node of type t with a fresh id and the registry prototype
// as its payload.
func (e *Editor) AddNode(t node.Type, name string) (*node.Node, error) {
	data, err := e.reg.PrototypeFor(t)
	if err != nil {
		return nil, err
	}
	n := &node.Node{ID: e.newID(), Type: t, Name: name, Data: data}
	if err := e.graph.AddNode(n); err != nil {
		return nil, err
	}
	observability.LogGraphChange(e.cfg.logger, "add_node", n.ID)
	return n, nil
}

// Connect adds an edge and returns it with its id filled in.
//
// Rejects self-loops, unknown endpoints, duplicate edges, source handles
// that are not branches of a condition source, and edges that would close
// a cycle.
func (e *Editor) Connect(edge node.Edge) (node.Edge, error) {
	if edge.Source == edge.Target {
		return node.Edge{}, fmt.Errorf("%w: %s", ErrSelfLoop, edge.Source)
	}
	src, ok := e.graph.Node(edge.Source)
	if !ok {
		return node.Edge{}, fmt.Errorf("%w: edge source %s", ErrNodeNotFound, edge.Source)
	}
	if c, ok := src.Data.(*node.ConditionData); ok && !c.HasHandle(edge.SourceHandle) {
		return node.Edge{}, fmt.Errorf("%w: %q", ErrBranchNotFound, edge.SourceHandle)
	}

	// The edge closes a cycle when its target already reaches its source.
	ancestors, err := ancestorIDs(context.Background(), edge.Source, e.graph.Edges(), e.cfg)
	if err != nil {
		return node.Edge{}, err
	}
	for _, id := range ancestors {
		if id == edge.Target {
			return node.Edge{}, &CyclicGraphError{Path: []string{edge.Source, edge.Target, edge.Source}}
		}
	}

	if edge.ID == "" {
		edge.ID = e.newID()
	}
	if err := e.graph.AddEdge(edge); err != nil {
		return node.Edge{}, err
	}
	observability.LogGraphChange(e.cfg.logger, "connect", edge.ID)
	return edge, nil
}

// DeleteNode removes a node with its edges, then clears references that
// no longer point at an ancestor.
func (e *Editor) DeleteNode(ctx context.Context, id string) (Report, error) {
	ctx, span := e.cfg.spans.StartDeleteSpan(ctx, observability.SpanDeleteNode, id)
	if _, _, err := e.graph.RemoveNode(id); err != nil {
		e.cfg.spans.EndSpanWithError(span, err)
		return nil, err
	}
	observability.LogGraphChange(e.cfg.logger, "delete_node", id)
	report, err := e.invalidate(ctx, "delete_node")
	e.cfg.spans.EndSpanWithError(span, err)
	return report, err
}

// DeleteEdge removes an edge, then clears references that no longer point
// at an ancestor.
func (e *Editor) DeleteEdge(ctx context.Context, edge node.Edge) (Report, error) {
	ctx, span := e.cfg.spans.StartDeleteSpan(ctx, observability.SpanDeleteEdge, edge.ID)
	removed, err := e.graph.RemoveEdge(edge)
	if err != nil {
		e.cfg.spans.EndSpanWithError(span, err)
		return nil, err
	}
	observability.LogGraphChange(e.cfg.logger, "delete_edge", removed.ID)
	report, err := e.invalidate(ctx, "delete_edge")
	e.cfg.spans.EndSpanWithError(span, err)
	return report, err
}

// AddBranch appends a branch to a condition node and returns its handle.
func (e *Editor) AddBranch(nodeID string) (string, error) {
	c, err := e.conditionData(nodeID)
	if err != nil {
		return "", err
	}
	return c.AddBranch(), nil
}

// RemoveBranch removes a branch from a condition node together with the
// edges leaving through it, then clears references that no longer point at
// an ancestor.
func (e *Editor) RemoveBranch(ctx context.Context, nodeID, handle string) (Report, error) {
	c, err := e.conditionData(nodeID)
	if err != nil {
		return nil, err
	}
	if !c.RemoveBranch(handle) {
		return nil, fmt.Errorf("%w: %q", ErrBranchNotFound, handle)
	}

	var doomed []node.Edge
	for _, edge := range e.graph.Edges() {
		if edge.Source == nodeID && edge.SourceHandle == handle {
			doomed = append(doomed, edge)
		}
	}
	for _, edge := range doomed {
		if _, err := e.graph.RemoveEdge(edge); err != nil {
			return nil, err
		}
	}
	observability.LogGraphChange(e.cfg.logger, "remove_branch", handle)
	return e.invalidate(ctx, "remove_branch")
}

// ReferenceOptions lists what nodeID may reference (see ReferenceOptionsFor).
func (e *Editor) ReferenceOptions(ctx context.Context, nodeID string) ([]Option, error) {
	if _, ok := e.graph.Node(nodeID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	ctx, span := e.cfg.spans.StartCatalogSpan(ctx, nodeID)
	options, err := referenceOptions(ctx, nodeID, e.graph, e.reg, e.cfg)
	e.cfg.spans.EndSpanWithError(span, err)
	return options, err
}

// BindInput binds an input variable of nodeID to ref. The reference must be
// one the catalog offers for nodeID.
func (e *Editor) BindInput(ctx context.Context, nodeID, name string, ref variable.Reference) error {
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	inputs := node.InputVariables(n.Data)
	i := variable.Find(inputs, name)
	if i < 0 {
		return fmt.Errorf("%w: %s.%s", ErrVariableNotFound, nodeID, name)
	}
	options, err := e.ReferenceOptions(ctx, nodeID)
	if err != nil {
		return err
	}
	log := observability.EnrichLogger(e.cfg.logger, nodeID, "bind_input")
	if !Contains(options, ref) {
		if log != nil {
			log.Debug("reference rejected", "variable", name, "ref", ref.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidReference, ref)
	}
	inputs[i].Value = variable.Ref(ref)
	if log != nil {
		log.Debug("input bound", "variable", name, "ref", ref.String())
	}
	return nil
}

// PreviewPrompt renders the prompt of nodeID. Literal input values fill
// their placeholders unless values overrides them; placeholders without a
// value are kept.
func (e *Editor) PreviewPrompt(nodeID string, values map[string]any) (string, error) {
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	var text string
	found := false
	for _, p := range prompts(n.Data) {
		if p.field == "prompt" {
			text, found = p.text, true
		}
	}
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNoPrompt, nodeID)
	}

	vars := make(map[string]any)
	for _, v := range node.InputVariables(n.Data) {
		if !v.Value.IsRef() && v.Value.Content != "" {
			vars[v.Name] = v.Value.Content
		}
	}
	for k, v := range values {
		vars[k] = v
	}
	return prompt.Render(text, vars), nil
}

// StartInputs returns the declared inputs of the start node, or nil when
// the graph has none.
func (e *Editor) StartInputs() []variable.Variable {
	for _, n := range e.graph.Nodes() {
		if s, ok := n.Data.(*node.StartData); ok {
			return variable.Clone(s.InputVariables)
		}
	}
	return nil
}

// Validate checks the session graph (see Validate).
func (e *Editor) Validate() error {
	return Validate(e.graph, e.reg)
}

// Repair clears every reference that no longer points at an ancestor.
func (e *Editor) Repair(ctx context.Context) (Report, error) {
	return e.invalidate(ctx, "repair")
}

func (e *Editor) invalidate(ctx context.Context, trigger string) (Report, error) {
	ctx, span := e.cfg.spans.StartInvalidateSpan(ctx, trigger)
	report, err := repairReferences(ctx, e.graph, e.cfg)
	e.cfg.spans.EndSpanWithError(span, err)
	return report, err
}

func (e *Editor) conditionData(nodeID string) (*node.ConditionData, error) {
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, nodeID)
	}
	c, ok := n.Data.(*node.ConditionData)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConditionNode, nodeID)
	}
	return c, nil
}
