package registry

import (
	"errors"
	"fmt"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// ErrUnknownNodeType indicates a node type tag with no registered entry.
var ErrUnknownNodeType = errors.New("unknown node type")

// Entry describes one node type.
type Entry struct {
	Type        node.Type
	Label       string
	Description string

	// Prototype returns a fresh default payload for new nodes of this type.
	Prototype func() node.Data
}

// Registry maps node types to their entries.
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	entries map[node.Type]Entry
	order   []node.Type
}

// Builder collects entries for a Registry.
// A Builder is not safe for concurrent use.
type Builder struct {
	entries   map[node.Type]Entry
	order     []node.Type
	overrides map[node.Type]node.Data
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		entries: make(map[node.Type]Entry),
	}
}

// Register adds or replaces the entry for e.Type.
// Panics if the entry has no type or no prototype.
func (b *Builder) Register(e Entry) *Builder {
	if e.Type == "" {
		panic("registry: entry type cannot be empty")
	}
	if e.Prototype == nil {
		panic(fmt.Sprintf("registry: entry %s has no prototype", e.Type))
	}
	if _, ok := b.entries[e.Type]; !ok {
		b.order = append(b.order, e.Type)
	}
	b.entries[e.Type] = e
	return b
}

// WithOverrides replaces the prototypes of the given types.
// Overrides for types that are never registered are ignored by Build.
func (b *Builder) WithOverrides(overrides map[node.Type]node.Data) *Builder {
	if b.overrides == nil {
		b.overrides = make(map[node.Type]node.Data, len(overrides))
	}
	for t, d := range overrides {
		b.overrides[t] = d
	}
	return b
}

// Build returns an immutable Registry. The builder may be reused.
func (b *Builder) Build() *Registry {
	r := &Registry{
		entries: make(map[node.Type]Entry, len(b.entries)),
		order:   append([]node.Type(nil), b.order...),
	}
	for t, e := range b.entries {
		if d, ok := b.overrides[t]; ok && d != nil {
			proto := d.Clone()
			e.Prototype = func() node.Data { return proto.Clone() }
		}
		r.entries[t] = e
	}
	return r
}

// Has reports whether t is registered.
func (r *Registry) Has(t node.Type) bool {
	_, ok := r.entries[t]
	return ok
}

// Entry returns the entry for t.
func (r *Registry) Entry(t node.Type) (Entry, bool) {
	e, ok := r.entries[t]
	return e, ok
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []node.Type {
	return append([]node.Type(nil), r.order...)
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.entries)
}

// PrototypeFor returns a fresh copy of the default payload for t.
// Mutating the result never affects later calls.
func (r *Registry) PrototypeFor(t node.Type) (node.Data, error) {
	e, ok := r.entries[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, t)
	}
	return e.Prototype(), nil
}

// OutputVariablesOf returns the values a node of type t with payload data
// exposes to its descendants. Unregistered types expose nothing.
func (r *Registry) OutputVariablesOf(t node.Type, data node.Data) []variable.Variable {
	if !r.Has(t) || data == nil {
		return nil
	}
	return node.OutputVariables(data)
}
