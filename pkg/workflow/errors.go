package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/registry"
)

// Sentinel errors for graph traversal.
var (
	// ErrCyclicGraph indicates the edges contain a directed cycle.
	ErrCyclicGraph = errors.New("graph contains a cycle")

	// ErrMaxDepth indicates a traversal went deeper than the configured limit.
	ErrMaxDepth = errors.New("exceeded maximum traversal depth")
)

// Sentinel errors for graph editing.
var (
	// ErrUnknownNodeType indicates a node type with no registry entry.
	ErrUnknownNodeType = registry.ErrUnknownNodeType

	// ErrNodeNotFound indicates a node id that is not in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound indicates an edge that is not in the graph.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrDuplicateNode indicates a node id that is already in the graph.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrDuplicateEdge indicates an edge that is already in the graph.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrSelfLoop indicates an edge whose source and target are the same node.
	ErrSelfLoop = errors.New("edge connects a node to itself")

	// ErrNotConditionNode indicates a branch operation on a node that is
	// not a condition node.
	ErrNotConditionNode = errors.New("not a condition node")

	// ErrBranchNotFound indicates a branch handle unknown to its condition node.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrVariableNotFound indicates a variable name unknown to its node.
	ErrVariableNotFound = errors.New("variable not found")

	// ErrNoPrompt indicates a node whose type has no prompt template.
	ErrNoPrompt = errors.New("node has no prompt")

	// ErrInvalidReference indicates a reference to something that is not an
	// output of an ancestor.
	ErrInvalidReference = errors.New("reference is not an ancestor output")
)

// Sentinel errors for definition validation.
var (
	// ErrNoStartNode indicates a definition without a start node.
	ErrNoStartNode = errors.New("no start node")

	// ErrMultipleStartNodes indicates a definition with more than one start node.
	ErrMultipleStartNodes = errors.New("more than one start node")

	// ErrDanglingReference indicates a reference to a node that is not an
	// ancestor of the referencing node.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrUndeclaredPromptVariable indicates a prompt placeholder that names
	// no input variable of its node.
	ErrUndeclaredPromptVariable = errors.New("prompt uses undeclared variable")
)

// CyclicGraphError reports a cycle found during traversal.
type CyclicGraphError struct {
	// Path lists node ids along the cycle in edge direction.
	// The first and last entries are the same node.
	Path []string
}

// Error implements the error interface.
func (e *CyclicGraphError) Error() string {
	return fmt.Sprintf("graph contains a cycle: %s", strings.Join(e.Path, " -> "))
}

// Unwrap returns ErrCyclicGraph for errors.Is support.
func (e *CyclicGraphError) Unwrap() error {
	return ErrCyclicGraph
}

// MaxDepthError provides context when a traversal exceeds its depth limit.
type MaxDepthError struct {
	// NodeID is the node the traversal started from.
	NodeID string
	// Max is the configured depth limit.
	Max int
}

// Error implements the error interface.
func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("exceeded maximum traversal depth (%d) from node %s", e.Max, e.NodeID)
}

// Unwrap returns ErrMaxDepth for errors.Is support.
func (e *MaxDepthError) Unwrap() error {
	return ErrMaxDepth
}

// Finding is one problem reported by Validate.
type Finding struct {
	// NodeID is the node the problem belongs to, if any.
	NodeID string
	// Where locates the problem inside the node, e.g. "inputVariables.query".
	Where string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (f *Finding) Error() string {
	switch {
	case f.NodeID == "":
		return f.Err.Error()
	case f.Where == "":
		return fmt.Sprintf("node %s: %v", f.NodeID, f.Err)
	default:
		return fmt.Sprintf("node %s: %s: %v", f.NodeID, f.Where, f.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (f *Finding) Unwrap() error {
	return f.Err
}
