/*
Package workflow models visual AI workflows and keeps their variable
references consistent while the graph is edited.

# Overview

A workflow is a directed acyclic graph of typed nodes (start, llm,
condition, crawler, knowledge retrieval, ...). Nodes declare input and
output variables. An input can hold a literal or a reference to an output
of an ancestor node, written "nodeId.variableName".

The package answers two questions for an editor:
  - What may this node reference? (ReferenceOptionsFor)
  - Which references broke after this edit? (InvalidateReferences, RepairReferences)

# Basic Usage

	reg := registry.Default()
	ed := workflow.NewEditor(reg)

	start, _ := ed.AddNode(node.TypeStart, "Start")
	llm, _ := ed.AddNode(node.TypeLLM, "Summarize")
	ed.Connect(node.Edge{Source: start.ID, Target: llm.ID})

	options, _ := ed.ReferenceOptions(ctx, llm.ID)
	// options[0] is the start node with one child per start input

	err := ed.BindInput(ctx, llm.ID, "input", options[0].Reference(options[0].Children[0]))

Deleting a node or edge clears every reference that stopped pointing at an
ancestor:

	report, err := ed.DeleteNode(ctx, start.ID)
	for id, cleared := range report {
	    fmt.Println(id, cleared)
	}

# Stateless Functions

The editor is a convenience. The core operations work on plain slices or
any GraphStore:

	ancestors, err := workflow.AncestorsOf("end", nodes, edges)
	options, err := workflow.ReferenceOptionsFor("end", def.Store(), reg)
	isGone, err := workflow.NotAncestorOf("end", def.Store())
	cleared := workflow.InvalidateReferences(endNode.Data, isGone)

# Cycles

Graphs are expected to be acyclic. Traversals detect cycles and return a
*CyclicGraphError instead of looping; Editor.Connect refuses edges that
would close one.

# Error Handling

Errors wrap sentinels for errors.Is checks:

	if errors.Is(err, workflow.ErrCyclicGraph) {
	    var cyc *workflow.CyclicGraphError
	    errors.As(err, &cyc)
	    log.Printf("cycle: %v", cyc.Path)
	}

Validate reports every problem at once as a join of *Finding values.

# Observability

Logging uses log/slog (slog.Default unless WithLogger is given). Metrics
and tracing use OpenTelemetry and are off unless enabled:

	ed := workflow.NewEditor(reg,
	    workflow.WithLogger(logger),
	    workflow.WithObservability(true, true),
	)

# Subpackages

  - variable: variables, values and references
  - condition: condition branches and operators
  - node: node types, payloads and payload validation
  - registry: the node type registry and default prototypes
  - prompt: prompt template placeholders
  - observability: logging, metrics and tracing helpers
  - config: settings from files and environment
  - store: definition persistence (memory, SQLite, PostgreSQL)
*/
package workflow
