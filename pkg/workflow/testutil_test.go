package workflow

import (
	"context"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Test fixtures shared across the package tests.

func ref(nodeID, name string) variable.Reference {
	return variable.Reference{SourceNode: nodeID, SourceName: name}
}

func str(name string) variable.Variable {
	return variable.New(name, variable.TypeString)
}

func bound(name string, r variable.Reference) variable.Variable {
	return variable.Bound(name, variable.TypeString, r)
}

func startNode(id string, inputs ...variable.Variable) *node.Node {
	if inputs == nil {
		inputs = []variable.Variable{}
	}
	return &node.Node{ID: id, Type: node.TypeStart, Name: "Start", Data: &node.StartData{InputVariables: inputs}}
}

func endNode(id string, outputs ...variable.Variable) *node.Node {
	if outputs == nil {
		outputs = []variable.Variable{}
	}
	return &node.Node{ID: id, Type: node.TypeEnd, Name: "End", Data: &node.EndData{OutputVariables: outputs}}
}

// llmNode returns an llm node with a single "output" string output.
func llmNode(id string, inputs ...variable.Variable) *node.Node {
	if inputs == nil {
		inputs = []variable.Variable{}
	}
	return &node.Node{ID: id, Type: node.TypeLLM, Name: id, Data: &node.LLMData{
		Temperature:     0.7,
		TopP:            1,
		OutputFormat:    node.FormatText,
		InputVariables:  inputs,
		OutputVariables: []variable.Variable{str("output")},
	}}
}

func bareNode(id string) *node.Node {
	return &node.Node{ID: id, Type: node.TypeLLM}
}

func edge(id, source, target string) node.Edge {
	return node.Edge{ID: id, Source: source, Target: target}
}

// chain returns start -> llm -> end, wired by e1 and e2, where end reads
// both the llm output and the start input.
func chain() Definition {
	return Definition{
		Nodes: []*node.Node{
			startNode("start", str("input")),
			llmNode("llm", bound("prompt", ref("start", "input"))),
			endNode("end",
				bound("answer", ref("llm", "output")),
				bound("question", ref("start", "input")),
			),
		},
		Edges: []node.Edge{
			edge("e1", "start", "llm"),
			edge("e2", "llm", "end"),
		},
	}
}

// diamond returns start -> a -> c and start -> b -> c.
func diamond() Definition {
	return Definition{
		Nodes: []*node.Node{
			startNode("start", str("input")),
			llmNode("a"),
			llmNode("b"),
			llmNode("c"),
		},
		Edges: []node.Edge{
			edge("e1", "start", "a"),
			edge("e2", "start", "b"),
			edge("e3", "a", "c"),
			edge("e4", "b", "c"),
		},
	}
}

func ids(nodes []*node.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func inputValue(n *node.Node, name string) variable.Value {
	vars := node.InputVariables(n.Data)
	return vars[variable.Find(vars, name)].Value
}

func outputValue(n *node.Node, name string) variable.Value {
	vars := node.DeclaredOutputs(n.Data)
	return vars[variable.Find(vars, name)].Value
}

// recordingMetrics counts recorder calls.
type recordingMetrics struct {
	catalogs int
	ancestry int
	cleared  int
	cycles   int
}

func (m *recordingMetrics) RecordCatalogBuild(_ context.Context, _ string, _ int) { m.catalogs++ }
func (m *recordingMetrics) RecordAncestry(_ context.Context, _ string, _ int)     { m.ancestry++ }
func (m *recordingMetrics) RecordReferencesCleared(_ context.Context, _ string, n int) {
	m.cleared += n
}
func (m *recordingMetrics) RecordCycle(_ context.Context, _ string) { m.cycles++ }
