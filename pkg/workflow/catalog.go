package workflow

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/observability"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/registry"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Option is one ancestor in a reference picker.
type Option struct {
	// Label is the ancestor's display name.
	Label string `json:"label"`
	// Value is the ancestor's node id.
	Value    string        `json:"value"`
	Children []ChildOption `json:"children"`
}

// ChildOption is one output variable of an ancestor.
type ChildOption struct {
	Label string        `json:"label"`
	Value string        `json:"value"`
	Type  variable.Type `json:"type"`
}

// Reference returns the reference selecting child of parent.
func (o Option) Reference(child ChildOption) variable.Reference {
	return variable.Reference{SourceNode: o.Value, SourceName: child.Value}
}

// ReferenceOptionsFor lists the values nodeID may reference: one Option per
// ancestor, with one ChildOption per named output variable of that ancestor.
//
// Ancestors without data, with a type reg does not know, or without named
// outputs are left out. Options follow ancestor discovery order (see
// AncestorsOf).
func ReferenceOptionsFor(nodeID string, store GraphStore, reg *registry.Registry, opts ...ResolveOption) ([]Option, error) {
	if reg == nil {
		panic("workflow: registry cannot be nil")
	}
	return referenceOptions(context.Background(), nodeID, store, reg, newResolveConfig(opts))
}

func referenceOptions(ctx context.Context, nodeID string, store GraphStore, reg *registry.Registry, cfg resolveConfig) ([]Option, error) {
	done := observability.TimedOperation()

	ids, err := ancestorIDs(ctx, nodeID, store.Edges(), cfg)
	if err != nil {
		return nil, err
	}
	ancestors := resolveNodes(ids, store.Nodes())

	options := make([]Option, 0, len(ancestors))
	for _, a := range ancestors {
		if a.Data == nil {
			continue
		}
		if !reg.Has(a.Type) {
			observability.LogUnknownNodeType(cfg.logger, a.ID, string(a.Type))
			cfg.spans.AddSpanEvent(ctx, "unknown_node_type", attribute.String("node.id", a.ID))
			continue
		}
		children := childOptions(reg.OutputVariablesOf(a.Type, a.Data))
		if len(children) == 0 {
			continue
		}
		options = append(options, Option{
			Label:    a.Label(),
			Value:    a.ID,
			Children: children,
		})
	}

	cfg.metrics.RecordCatalogBuild(ctx, nodeID, len(options))
	observability.LogCatalogBuilt(cfg.logger, nodeID, len(ancestors), len(options), done())
	return options, nil
}

func childOptions(vars []variable.Variable) []ChildOption {
	var children []ChildOption
	for _, v := range vars {
		if v.Name == "" {
			continue
		}
		children = append(children, ChildOption{Label: v.Name, Value: v.Name, Type: v.Type})
	}
	return children
}

// Contains reports whether options offer ref.
func Contains(options []Option, ref variable.Reference) bool {
	_, ok := lookupChild(options, ref)
	return ok
}

// lookupChild finds the child option for ref.
func lookupChild(options []Option, ref variable.Reference) (ChildOption, bool) {
	for _, o := range options {
		if o.Value != ref.SourceNode {
			continue
		}
		for _, c := range o.Children {
			if c.Value == ref.SourceName {
				return c, true
			}
		}
	}
	return ChildOption{}, false
}
