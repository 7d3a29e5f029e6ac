/*
Package config loads workflow editor settings from files and the environment.

# Documents

Config wraps a decoded YAML or JSON document and extracts typed values,
falling back to defaults on missing keys or mismatched types:

	c, err := config.FromFile("workflow.yaml")
	depth := c.Section("traversal").Int("maxDepth", 0)

# Settings

Settings is the typed view used by the editor process. Load combines the
three sources in order: defaults, the file, then WORKFLOW_* variables
(optionally from a .env file):

	s, err := config.Load("workflow.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	reg, err := s.Registry()
	opts, err := s.EditorOptions()
	ed := workflow.NewEditor(reg, opts...)

Validate reports every invalid field at once.
*/
package config
