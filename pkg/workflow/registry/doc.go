// Package registry provides the node type registry of the workflow editor.
//
// A Registry maps every node type tag to its display label, description and
// prototype payload. It is built once at startup and is immutable afterwards,
// so a single instance can be shared by any number of editor sessions.
//
// # Basic Usage
//
//	reg := registry.Default()
//
//	data, err := reg.PrototypeFor(node.TypeLLM)
//	if err != nil {
//	    return err // errors.Is(err, registry.ErrUnknownNodeType)
//	}
//
// PrototypeFor always returns a fresh copy; editing it never changes the
// registry.
//
// # Prototype Overrides
//
// Deployments can tune the default payloads from a YAML or JSON file:
//
//	overrides, err := registry.LoadPrototypes("prototypes.yaml")
//	if err != nil {
//	    return err
//	}
//	reg := registry.DefaultBuilder().WithOverrides(overrides).Build()
//
// # Output Variables
//
// OutputVariablesOf answers which values a node exposes to its descendants.
// Start nodes expose their declared inputs; condition and knowledge write
// nodes expose nothing; unregistered types expose nothing.
package registry
