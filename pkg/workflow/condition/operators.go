package condition

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Operator is a comparison operator.
type Operator string

// Comparison operators.
const (
	OpEq          Operator = "=="
	OpNe          Operator = "!="
	OpGt          Operator = ">"
	OpLt          Operator = "<"
	OpGte         Operator = ">="
	OpLte         Operator = "<="
	OpContains    Operator = "contains"
	OpNotContains Operator = "!contains"
	OpEmpty       Operator = "empty"
	OpNotEmpty    Operator = "!empty"
)

// Sentinel errors for comparisons.
var (
	// ErrUnknownOperator indicates an operator outside the fixed set.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnsupportedOperator indicates an operator that does not apply to the operand type.
	ErrUnsupportedOperator = errors.New("operator not supported for type")

	// ErrInvalidOperand indicates an operand that cannot be read as its type.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrTypeMismatch indicates the two operands resolved to different types.
	ErrTypeMismatch = errors.New("operand type mismatch")
)

// Operators returns the full operator set.
func Operators() []Operator {
	return []Operator{OpEq, OpNe, OpGt, OpLt, OpGte, OpLte, OpContains, OpNotContains, OpEmpty, OpNotEmpty}
}

// Valid reports whether o is a known operator.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpLt, OpGte, OpLte, OpContains, OpNotContains, OpEmpty, OpNotEmpty:
		return true
	default:
		return false
	}
}

// Unary reports whether the operator ignores its right operand.
func (o Operator) Unary() bool {
	return o == OpEmpty || o == OpNotEmpty
}

// Supports reports whether the operator applies to operands of type t.
func (o Operator) Supports(t variable.Type) bool {
	switch t {
	case variable.TypeString:
		switch o {
		case OpEq, OpNe, OpContains, OpNotContains, OpEmpty, OpNotEmpty:
			return true
		}
	case variable.TypeNumber:
		switch o {
		case OpEq, OpNe, OpGt, OpLt, OpGte, OpLte:
			return true
		}
	case variable.TypeStringArray, variable.TypeNumberArray:
		return o.Unary()
	}
	return false
}

// Apply compares left and right as values of type t.
//
// Strings compare byte-wise and support containment. Numbers are parsed as
// float64. Arrays are JSON arrays and only support the emptiness checks.
func (o Operator) Apply(left, right string, t variable.Type) (bool, error) {
	if !o.Valid() {
		return false, fmt.Errorf("%w: %s", ErrUnknownOperator, o)
	}
	if !o.Supports(t) {
		return false, fmt.Errorf("%w: %s on %s", ErrUnsupportedOperator, o, t)
	}
	switch t {
	case variable.TypeString:
		return compareString(o, left, right), nil
	case variable.TypeNumber:
		return compareNumber(o, left, right)
	default:
		return compareArray(o, left)
	}
}

// compareString applies a string operator.
func compareString(op Operator, left, right string) bool {
	switch op {
	case OpEq:
		return left == right
	case OpNe:
		return left != right
	case OpContains:
		return strings.Contains(left, right)
	case OpNotContains:
		return !strings.Contains(left, right)
	case OpEmpty:
		return left == ""
	default:
		return left != ""
	}
}

// compareNumber applies a numeric operator.
func compareNumber(op Operator, left, right string) (bool, error) {
	l, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a number", ErrInvalidOperand, left)
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a number", ErrInvalidOperand, right)
	}
	switch op {
	case OpEq:
		return l == r, nil
	case OpNe:
		return l != r, nil
	case OpGt:
		return l > r, nil
	case OpLt:
		return l < r, nil
	case OpGte:
		return l >= r, nil
	default:
		return l <= r, nil
	}
}

// compareArray applies an emptiness check to a JSON array.
func compareArray(op Operator, left string) (bool, error) {
	var items []any
	if strings.TrimSpace(left) != "" {
		if err := json.Unmarshal([]byte(left), &items); err != nil {
			return false, fmt.Errorf("%w: not a JSON array", ErrInvalidOperand)
		}
	}
	if op == OpEmpty {
		return len(items) == 0, nil
	}
	return len(items) != 0, nil
}
