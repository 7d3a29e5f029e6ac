// Package condition provides the branch model of the workflow "condition" node.
//
// A condition node owns an ordered list of branches. Each branch carries a
// unique handle that outgoing edges use to select it, a connector (and/or)
// and a list of comparisons between two operands. The else branch is
// implicit: it has no handle (ElseHandle), no conditions, and is taken when
// no other branch matches.
package condition

import (
	"github.com/google/uuid"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// ElseHandle is the handle of the implicit else branch.
// Edges leaving a condition node without a source handle belong to it.
const ElseHandle = ""

// Connector joins the conditions of a branch.
type Connector string

// Connectors.
const (
	And Connector = "and"
	Or  Connector = "or"
)

// Operand is one side of a comparison: a literal or a reference.
type Operand struct {
	Type  variable.Type  `json:"type" yaml:"type" validate:"required,oneof=string number file array_str array_num ref"`
	Value variable.Value `json:"value" yaml:"value"`
}

// Condition compares two operands.
type Condition struct {
	Value1 Operand  `json:"value1" yaml:"value1"`
	Op     Operator `json:"op" yaml:"op" validate:"operator"`
	Value2 Operand  `json:"value2" yaml:"value2"`
}

// Branch is one outgoing path of a condition node.
type Branch struct {
	Handle     string      `json:"handle" yaml:"handle" validate:"required"`
	Connector  Connector   `json:"connector" yaml:"connector" validate:"oneof=and or"`
	Conditions []Condition `json:"conditions" yaml:"conditions" validate:"dive"`
}

// newHandle generates branch handles.
var newHandle = uuid.NewString

// NewBranch returns a branch with a fresh handle, the "and" connector and
// one condition comparing two empty string literals with "==".
func NewBranch() Branch {
	return Branch{
		Handle:     newHandle(),
		Connector:  And,
		Conditions: []Condition{NewCondition()},
	}
}

// NewCondition returns the default comparison of two empty string literals.
func NewCondition() Condition {
	return Condition{
		Value1: Operand{Type: variable.TypeString, Value: variable.Literal("")},
		Op:     OpEq,
		Value2: Operand{Type: variable.TypeString, Value: variable.Literal("")},
	}
}

// Clone returns a deep copy of the branch.
func (b Branch) Clone() Branch {
	out := b
	if b.Conditions != nil {
		out.Conditions = make([]Condition, len(b.Conditions))
		for i, c := range b.Conditions {
			out.Conditions[i] = c
			out.Conditions[i].Value1.Value.Options = cloneStrings(c.Value1.Value.Options)
			out.Conditions[i].Value2.Value.Options = cloneStrings(c.Value2.Value.Options)
		}
	}
	return out
}

// Operands returns pointers to every operand of the branch, in order.
// Callers may modify the operands in place.
func (b *Branch) Operands() []*Operand {
	ops := make([]*Operand, 0, 2*len(b.Conditions))
	for i := range b.Conditions {
		ops = append(ops, &b.Conditions[i].Value1, &b.Conditions[i].Value2)
	}
	return ops
}

// CloneBranches deep-copies a branch list.
func CloneBranches(branches []Branch) []Branch {
	if branches == nil {
		return nil
	}
	out := make([]Branch, len(branches))
	for i, b := range branches {
		out[i] = b.Clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
