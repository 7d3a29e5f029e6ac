package node

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/condition"
	"github.com/StellarisJAY/workflow-ai/pkg/workflow/variable"
)

// validate is a singleton validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = validate.RegisterValidation("operator", func(fl validator.FieldLevel) bool {
		return condition.Operator(fl.Field().String()).Valid()
	})
}

// Validate checks a node's identity and payload.
func Validate(n *Node) error {
	if n == nil {
		return errors.New("node cannot be nil")
	}
	if n.ID == "" {
		return errors.New("id: field is required")
	}
	if n.Data == nil {
		return nil
	}
	if _, ok := n.Data.(*UnknownData); ok {
		return nil
	}
	if n.Data.Type() != n.Type {
		return fmt.Errorf("data is %s, node is %s", n.Data.Type(), n.Type)
	}
	if err := validate.Struct(n.Data); err != nil {
		return formatValidationError(err)
	}
	if err := uniqueNames("inputVariables", InputVariables(n.Data)); err != nil {
		return err
	}
	if err := uniqueNames("outputVariables", DeclaredOutputs(n.Data)); err != nil {
		return err
	}
	if c, ok := n.Data.(*ConditionData); ok {
		seen := make(map[string]bool, len(c.Branches))
		for _, b := range c.Branches {
			if seen[b.Handle] {
				return fmt.Errorf("branches: duplicate handle %q", b.Handle)
			}
			seen[b.Handle] = true
		}
	}
	return nil
}

func uniqueNames(field string, vars []variable.Variable) error {
	seen := make(map[string]bool, len(vars))
	for _, v := range vars {
		if seen[v.Name] {
			return fmt.Errorf("%s: duplicate variable %q", field, v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}

// formatValidationError converts validator errors to a readable form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failure only.
	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, e.Param(), e.Value())
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "lte":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "operator":
			return fmt.Errorf("%s: unknown operator %q", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
