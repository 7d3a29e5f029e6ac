package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// placeholderPattern matches {{.name}}, allowing spaces and trim markers
// inside the braces.
var placeholderPattern = regexp.MustCompile(`\{\{-?\s*\.([a-zA-Z_][a-zA-Z0-9_]*)\s*-?\}\}`)

// Placeholders returns the distinct variable names used by s, in order of
// first appearance.
func Placeholders(s string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderPattern.FindAllStringSubmatch(s, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Undeclared returns the placeholders of s that name no variable in inputs.
func Undeclared(s string, inputs []variable.Variable) []string {
	var out []string
	for _, name := range Placeholders(s) {
		if variable.Find(inputs, name) < 0 {
			out = append(out, name)
		}
	}
	return out
}

// Renderer substitutes values into prompt placeholders.
//
// Create with NewRenderer and configure with Option functions.
// Renderer is safe for concurrent use after construction.
type Renderer struct {
	missingAction MissingAction
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{missingAction: MissingKeep}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render replaces each placeholder of s with the matching value of vars.
//
// Errors are only returned when MissingAction is MissingError and a
// placeholder has no value. The partially rendered string is returned
// alongside the error.
func (r *Renderer) Render(s string, vars map[string]any) (string, error) {
	if s == "" {
		return "", nil
	}

	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if val, ok := vars[name]; ok {
			return fmt.Sprintf("%v", val)
		}
		switch r.missingAction {
		case MissingEmpty:
			return ""
		case MissingError:
			missing = append(missing, name)
			return match
		default:
			return match
		}
	})

	if len(missing) > 0 {
		return result, &UndefinedVariableError{Names: missing}
	}
	return result, nil
}

// UndefinedVariableError is returned when MissingError is set and one or
// more placeholders have no value.
type UndefinedVariableError struct {
	// Names lists the placeholders without a value.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

var defaultRenderer = NewRenderer()

// Render renders s with the default renderer, keeping placeholders that
// have no value.
func Render(s string, vars map[string]any) string {
	result, _ := defaultRenderer.Render(s, vars)
	return result
}
