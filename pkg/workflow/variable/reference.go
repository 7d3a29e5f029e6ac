package variable

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for reference handling.
var (
	// ErrNotReference indicates a literal value was asked for its reference.
	ErrNotReference = errors.New("value is not a reference")

	// ErrMalformedReference indicates a reference that does not parse into
	// a (source node, variable name) pair.
	ErrMalformedReference = errors.New("malformed reference")
)

// MalformedError describes a reference that could not be parsed.
type MalformedError struct {
	// Input is the offending reference text.
	Input string
}

// Error implements the error interface.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed reference %q", e.Input)
}

// Unwrap returns ErrMalformedReference for errors.Is support.
func (e *MalformedError) Unwrap() error {
	return ErrMalformedReference
}

// Reference identifies an output variable of another node.
type Reference struct {
	SourceNode string `json:"sourceNode" yaml:"sourceNode"`
	SourceName string `json:"sourceName" yaml:"sourceName"`
}

// ParseReference parses the dotted "node.name" form.
// The node id ends at the first dot; the variable name is the remainder.
func ParseReference(s string) (Reference, error) {
	s = strings.TrimSpace(s)
	node, name, ok := strings.Cut(s, ".")
	if !ok || node == "" || name == "" {
		return Reference{}, &MalformedError{Input: s}
	}
	return Reference{SourceNode: node, SourceName: name}, nil
}

// String returns the dotted form.
func (r Reference) String() string {
	return r.SourceNode + "." + r.SourceName
}

// IsZero reports whether neither field is set.
func (r Reference) IsZero() bool {
	return r.SourceNode == "" && r.SourceName == ""
}

// Valid reports whether both fields are set.
func (r Reference) Valid() bool {
	return r.SourceNode != "" && r.SourceName != ""
}
