package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/node"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/observability"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// Slots a cleared reference can live in.
const (
	SlotInput     = "inputVariables"
	SlotOutput    = "outputVariables"
	SlotCondition = "branches"
)

// Cleared describes one reference reset by InvalidateReferences.
type Cleared struct {
	// Slot is SlotInput, SlotOutput or SlotCondition.
	Slot string
	// Name is the variable name, or "<handle>[i].value1|value2" for condition operands.
	Name string
	// Reference is the dotted form of the dropped reference, or its raw
	// text when it was malformed.
	Reference string
	// Malformed is set when the reference could not be parsed.
	Malformed bool
}

// String returns "slot.name -> reference".
func (c Cleared) String() string {
	return fmt.Sprintf("%s.%s -> %s", c.Slot, c.Name, c.Reference)
}

// InvalidateReferences clears every reference in data whose source node
// isNoLongerValid rejects, along with every malformed reference.
//
// It scans the input list, the output list and, for condition nodes, the
// branch operands. Literals are never touched. Running it again on the same
// data clears nothing.
func InvalidateReferences(data node.Data, isNoLongerValid func(nodeID string) bool) []Cleared {
	if data == nil {
		return nil
	}
	var cleared []Cleared
	eachReference(data, func(slot, name string, v *variable.Value) {
		ref, err := v.Reference()
		switch {
		case err != nil:
			raw := v.Content
			var malformed *variable.MalformedError
			if errors.As(err, &malformed) {
				raw = malformed.Input
			}
			cleared = append(cleared, Cleared{Slot: slot, Name: name, Reference: raw, Malformed: true})
		case isNoLongerValid(ref.SourceNode):
			cleared = append(cleared, Cleared{Slot: slot, Name: name, Reference: ref.String()})
		default:
			return
		}
		v.Clear()
	})
	return cleared
}

// eachReference calls fn for every reference value in data, in slot order.
// fn may modify the value in place.
func eachReference(data node.Data, fn func(slot, name string, v *variable.Value)) {
	visit := func(slot, name string, v *variable.Value) {
		if v.IsRef() {
			fn(slot, name, v)
		}
	}
	inputs := node.InputVariables(data)
	for i := range inputs {
		visit(SlotInput, inputs[i].Name, &inputs[i].Value)
	}
	outputs := node.DeclaredOutputs(data)
	for i := range outputs {
		visit(SlotOutput, outputs[i].Name, &outputs[i].Value)
	}
	if c, ok := data.(*node.ConditionData); ok {
		for _, b := range c.Branches {
			for i := range b.Conditions {
				visit(SlotCondition, fmt.Sprintf("%s[%d].value1", b.Handle, i), &b.Conditions[i].Value1.Value)
				visit(SlotCondition, fmt.Sprintf("%s[%d].value2", b.Handle, i), &b.Conditions[i].Value2.Value)
			}
		}
	}
}

// NotAncestorOf returns a predicate reporting whether a node id is not an
// ancestor of nodeID in store.
func NotAncestorOf(nodeID string, store GraphStore, opts ...ResolveOption) (func(string) bool, error) {
	ancestors, err := AncestorIDs(nodeID, store.Edges(), opts...)
	if err != nil {
		return nil, err
	}
	return func(id string) bool {
		_, ok := ancestors[id]
		return !ok
	}, nil
}

// Report lists cleared references by node id.
type Report map[string][]Cleared

// Total returns the number of cleared references.
func (r Report) Total() int {
	n := 0
	for _, c := range r {
		n += len(c)
	}
	return n
}

// RepairReferences runs InvalidateReferences on every node of store against
// that node's ancestors. Nodes whose ancestry cannot be computed are left
// untouched and their errors are joined into the returned error.
func RepairReferences(store GraphStore, opts ...ResolveOption) (Report, error) {
	return repairReferences(context.Background(), store, newResolveConfig(opts))
}

func repairReferences(ctx context.Context, store GraphStore, cfg resolveConfig) (Report, error) {
	report := make(Report)
	edges := store.Edges()
	var errs []error

	for _, n := range store.Nodes() {
		if n == nil || n.Data == nil {
			continue
		}
		ids, err := ancestorIDs(ctx, n.ID, edges, cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("node %s: %w", n.ID, err))
			continue
		}
		ancestors := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			ancestors[id] = struct{}{}
		}
		cleared := InvalidateReferences(n.Data, func(id string) bool {
			_, ok := ancestors[id]
			return !ok
		})
		if len(cleared) == 0 {
			continue
		}
		report[n.ID] = cleared

		refs := make([]string, len(cleared))
		for i, c := range cleared {
			refs[i] = c.Reference
		}
		cfg.metrics.RecordReferencesCleared(ctx, n.ID, len(cleared))
		observability.LogReferencesCleared(cfg.logger, n.ID, refs)
	}

	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}
	return report, nil
}
