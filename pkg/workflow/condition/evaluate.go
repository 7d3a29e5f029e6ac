package condition

import (
	"fmt"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Resolver turns an operand into its current value and effective type.
// Literal operands usually resolve to their own content and declared type;
// references resolve against whatever holds the source node's outputs.
type Resolver func(op Operand) (value string, t variable.Type, err error)

// LiteralResolver resolves literal operands only.
// References resolve to an error, so branches with unbound references
// never match silently.
func LiteralResolver(op Operand) (string, variable.Type, error) {
	if op.Value.IsRef() {
		ref, err := op.Value.Reference()
		if err != nil {
			return "", op.Type, err
		}
		return "", op.Type, fmt.Errorf("unresolved reference %s", ref)
	}
	return op.Value.Content, op.Type, nil
}

// Evaluate reports whether the branch's conditions hold.
//
// With the "and" connector every condition must hold; with "or" one is
// enough. Evaluation short-circuits. A branch without conditions holds for
// "and" and fails for "or".
func (b Branch) Evaluate(resolve Resolver) (bool, error) {
	isAnd := b.Connector != Or
	for i, c := range b.Conditions {
		ok, err := c.Evaluate(resolve)
		if err != nil {
			return false, fmt.Errorf("branch %s condition %d: %w", b.Handle, i, err)
		}
		if ok && !isAnd {
			return true, nil
		}
		if !ok && isAnd {
			return false, nil
		}
	}
	return isAnd, nil
}

// Evaluate resolves both operands and applies the operator.
func (c Condition) Evaluate(resolve Resolver) (bool, error) {
	left, leftType, err := resolve(c.Value1)
	if err != nil {
		return false, err
	}
	if c.Op.Unary() {
		return c.Op.Apply(left, "", leftType)
	}
	right, rightType, err := resolve(c.Value2)
	if err != nil {
		return false, err
	}
	if leftType != rightType {
		return false, fmt.Errorf("%w: %s, %s", ErrTypeMismatch, leftType, rightType)
	}
	return c.Op.Apply(left, right, leftType)
}

// Select returns the handle of the first branch whose conditions hold,
// or ElseHandle when none does.
func Select(branches []Branch, resolve Resolver) (string, error) {
	for _, b := range branches {
		ok, err := b.Evaluate(resolve)
		if err != nil {
			return "", err
		}
		if ok {
			return b.Handle, nil
		}
	}
	return ElseHandle, nil
}
