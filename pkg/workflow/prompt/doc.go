/*
Package prompt handles the placeholders of LLM prompt templates.

# Overview

Prompts of llm and imageUnderstanding nodes are Go-template style strings
whose placeholders name the node's input variables:

	Answer the question: {{.question}}
	Context: {{ .documents }}

The package lists those placeholders, checks them against declared inputs,
and renders previews with sample values.

# Placeholders

	names := prompt.Placeholders("{{.a}} and {{.b}} and {{.a}}")
	// names: [a b]

Undeclared reports placeholders with no matching input variable:

	missing := prompt.Undeclared(data.Prompt, data.InputVariables)

# Rendering

By default, missing values are kept as-is:

	result := prompt.Render("Hello {{.name}}", nil)
	// result: "Hello {{.name}}"

Configure behavior with options:

	r := prompt.NewRenderer(prompt.WithMissingAction(prompt.MissingError))
	_, err := r.Render("Hello {{.name}}", nil)
	// err: undefined variable: name

Only plain field placeholders are recognised. Other template actions
({{if}}, {{range}}, pipelines) are left untouched.
*/
package prompt
