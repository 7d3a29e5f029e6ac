// Package node defines workflow nodes, edges and the per-type node payloads.
//
// Node payloads form a closed tagged union: Data is implemented only by the
// variant types in this package, one per node Type. Code that needs a
// per-type answer switches exhaustively over the variants instead of looking
// fields up by name.
package node

// Type is the node type tag.
type Type string

// Node types.
const (
	TypeStart                Type = "start"
	TypeEnd                  Type = "end"
	TypeLLM                  Type = "llm"
	TypeCondition            Type = "condition"
	TypeCrawler              Type = "crawler"
	TypeKnowledgeRetrieval   Type = "knowledgeRetrieval"
	TypeKnowledgeWrite       Type = "knowledgeWrite"
	TypeWebSearch            Type = "webSearch"
	TypeKeywordExtraction    Type = "keywordExtraction"
	TypeQuestionOptimization Type = "questionOptimization"
	TypeImageUnderstanding   Type = "imageUnderstanding"
	TypeOCR                  Type = "ocr"
)

// Types returns every known node type.
func Types() []Type {
	return []Type{
		TypeStart, TypeEnd, TypeLLM, TypeCondition, TypeCrawler,
		TypeKnowledgeRetrieval, TypeKnowledgeWrite, TypeWebSearch,
		TypeKeywordExtraction, TypeQuestionOptimization,
		TypeImageUnderstanding, TypeOCR,
	}
}

// Valid reports whether t is a known node type.
func (t Type) Valid() bool {
	return newData(t) != nil
}

// Position is the canvas position of a node.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Node is a workflow step on the canvas.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Type     Type     `json:"type" yaml:"type"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Position Position `json:"position" yaml:"position"`
	Data     Data     `json:"data" yaml:"data"`
}

// Label returns the display name, falling back to the node id.
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Data != nil {
		out.Data = n.Data.Clone()
	}
	return &out
}

// Edge is a directed connection between two nodes.
//
// SourceHandle selects which output of the source the edge leaves from;
// condition nodes use it to tie an edge to a branch.
type Edge struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Source       string `json:"source" yaml:"source"`
	Target       string `json:"target" yaml:"target"`
	SourceHandle string `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
}

// Same reports whether e and other denote the same edge.
// Edges with ids compare by id; otherwise by (source, target, source handle).
func (e Edge) Same(other Edge) bool {
	if e.ID != "" && other.ID != "" {
		return e.ID == other.ID
	}
	return e.SameEndpoints(other)
}

// SameEndpoints reports whether e and other connect the same source
// handle to the same target, whatever their ids.
func (e Edge) SameEndpoints(other Edge) bool {
	return e.Source == other.Source && e.Target == other.Target && e.SourceHandle == other.SourceHandle
}

// Touches reports whether the edge starts or ends at nodeID.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}
