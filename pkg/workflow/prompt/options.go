package prompt

// MissingAction specifies how to handle placeholders without a value.
type MissingAction int

const (
	// MissingKeep keeps the placeholder as-is.
	// This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the placeholder with an empty string.
	MissingEmpty

	// MissingError returns an *UndefinedVariableError.
	MissingError
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithMissingAction sets how placeholders without a value are handled.
//
// Default: MissingKeep
func WithMissingAction(action MissingAction) Option {
	return func(r *Renderer) {
		r.missingAction = action
	}
}
