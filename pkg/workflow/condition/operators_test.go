package condition

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

func TestOperator_Apply_String(t *testing.T) {
	tests := []struct {
		name  string
		op    Operator
		left  string
		right string
		want  bool
	}{
		{"equal", OpEq, "yes", "yes", true},
		{"equal false", OpEq, "yes", "no", false},
		{"not equal", OpNe, "yes", "no", true},
		{"contains", OpContains, "hello world", "world", true},
		{"contains false", OpContains, "hello", "world", false},
		{"not contains", OpNotContains, "hello", "world", true},
		{"empty", OpEmpty, "", "ignored", true},
		{"empty false", OpEmpty, "x", "", false},
		{"not empty", OpNotEmpty, "x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.left, tt.right, variable.TypeString)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperator_Apply_Number(t *testing.T) {
	tests := []struct {
		name  string
		op    Operator
		left  string
		right string
		want  bool
	}{
		{"equal ints", OpEq, "3", "3.0", true},
		{"not equal", OpNe, "3", "4", true},
		{"greater", OpGt, "10", "9.5", true},
		{"less", OpLt, "-1", "0", true},
		{"greater or equal", OpGte, "2", "2", true},
		{"less or equal false", OpLte, "3", "2", false},
		{"padded", OpEq, " 7 ", "7", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.left, tt.right, variable.TypeNumber)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperator_Apply_Array(t *testing.T) {
	got, err := OpEmpty.Apply(`[]`, "", variable.TypeStringArray)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = OpNotEmpty.Apply(`["a"]`, "", variable.TypeStringArray)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = OpEmpty.Apply(``, "", variable.TypeNumberArray)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = OpEmpty.Apply(`{"a":1}`, "", variable.TypeNumberArray)
	assert.ErrorIs(t, err, ErrInvalidOperand)
}

func TestOperator_Apply_Errors(t *testing.T) {
	_, err := Operator("~=").Apply("a", "b", variable.TypeString)
	assert.ErrorIs(t, err, ErrUnknownOperator)

	_, err = OpGt.Apply("a", "b", variable.TypeString)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)

	_, err = OpContains.Apply("1", "2", variable.TypeNumber)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)

	_, err = OpEq.Apply("1", "2", variable.TypeFile)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)

	_, err = OpEq.Apply("one", "2", variable.TypeNumber)
	assert.True(t, errors.Is(err, ErrInvalidOperand))
}

func TestOperators_AllValid(t *testing.T) {
	ops := Operators()
	assert.Len(t, ops, 10)
	for _, op := range ops {
		assert.True(t, op.Valid(), op)
	}
	assert.False(t, Operator("").Valid())
}
