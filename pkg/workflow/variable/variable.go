// Package variable provides the typed value slots shared by every workflow node.
//
// A Variable is a named slot with a declared data type. Its Value is either a
// literal or a reference to an output variable of another node. References
// are stored structurally (source node id + variable name) so they can be
// re-validated against a freshly loaded graph.
package variable

// Type is the declared data type of a variable.
type Type string

// Variable data types.
const (
	TypeString      Type = "string"
	TypeNumber      Type = "number"
	TypeFile        Type = "file"
	TypeStringArray Type = "array_str"
	TypeNumberArray Type = "array_num"

	// TypeRef marks a variable whose type is taken from the referenced source.
	TypeRef Type = "ref"
)

// Valid reports whether t is one of the known variable types.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeFile, TypeStringArray, TypeNumberArray, TypeRef:
		return true
	default:
		return false
	}
}

// Kind tells whether a Value holds a literal or a reference.
type Kind string

// Value kinds.
const (
	KindLiteral Kind = "literal"
	KindRef     Kind = "ref"
)

// Value is the content of a variable slot.
//
// For KindRef values, SourceNode and SourceName identify the referenced
// output variable. Older definitions carry the dotted "node.name" form in
// Content instead; Reference accepts both.
type Value struct {
	Kind       Kind   `json:"type" yaml:"type" validate:"omitempty,oneof=literal ref"`
	Content    string `json:"content,omitempty" yaml:"content,omitempty"`
	SourceNode string `json:"sourceNode,omitempty" yaml:"sourceNode,omitempty"`
	SourceName string `json:"sourceName,omitempty" yaml:"sourceName,omitempty"`

	// Options caches the picker path the user selected ([node, variable]).
	Options []string `json:"refOption,omitempty" yaml:"refOption,omitempty"`
}

// Literal returns a literal value holding content.
func Literal(content string) Value {
	return Value{Kind: KindLiteral, Content: content}
}

// Ref returns a reference value pointing at ref.
func Ref(ref Reference) Value {
	return Value{
		Kind:       KindRef,
		SourceNode: ref.SourceNode,
		SourceName: ref.SourceName,
		Options:    []string{ref.SourceNode, ref.SourceName},
	}
}

// IsRef reports whether the value is a reference.
func (v Value) IsRef() bool {
	return v.Kind == KindRef
}

// Reference returns the reference held by the value.
// Returns ErrNotReference for literals and a *MalformedError when the
// reference fields cannot be parsed into a (node, name) pair.
func (v Value) Reference() (Reference, error) {
	if !v.IsRef() {
		return Reference{}, ErrNotReference
	}
	if v.SourceNode != "" || v.SourceName != "" {
		ref := Reference{SourceNode: v.SourceNode, SourceName: v.SourceName}
		if !ref.Valid() {
			return Reference{}, &MalformedError{Input: ref.String()}
		}
		return ref, nil
	}
	return ParseReference(v.Content)
}

// Clear resets the value to an unbound literal, dropping any reference and
// cached picker options. Clearing an already cleared value is a no-op.
func (v *Value) Clear() {
	*v = Value{Kind: KindLiteral}
}

// IsCleared reports whether the value is an unbound literal.
func (v Value) IsCleared() bool {
	return v.Kind == KindLiteral && v.Content == "" && v.SourceNode == "" &&
		v.SourceName == "" && len(v.Options) == 0
}

// Variable is a named, typed value slot.
type Variable struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Type     Type   `json:"type" yaml:"type" validate:"required,oneof=string number file array_str array_num ref"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Value    Value  `json:"value" yaml:"value"`
}

// New returns an unbound variable of the given type.
func New(name string, t Type) Variable {
	return Variable{Name: name, Type: t, Value: Value{Kind: KindLiteral}}
}

// Bound returns a variable bound by reference to ref.
func Bound(name string, t Type, ref Reference) Variable {
	return Variable{Name: name, Type: t, Value: Ref(ref)}
}

// Clone returns a deep copy of the list.
func Clone(vars []Variable) []Variable {
	if vars == nil {
		return nil
	}
	out := make([]Variable, len(vars))
	for i, v := range vars {
		out[i] = v
		if v.Value.Options != nil {
			out[i].Value.Options = append([]string(nil), v.Value.Options...)
		}
	}
	return out
}

// Find returns the index of the variable called name, or -1.
func Find(vars []Variable, name string) int {
	for i := range vars {
		if vars[i].Name == name {
			return i
		}
	}
	return -1
}
