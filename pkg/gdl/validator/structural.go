package validator

import (
	"fmt"

	"arbor-hq/canopy/pkg/gdl/ast"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

// StructuralValidator checks grammar-level invariants: the grammar must
// define at least one rule, and rule names must be non-empty and unique.
type StructuralValidator struct {
	errors *gdlerrors.ErrorList
}

// NewStructuralValidator creates a new structural validator.
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{
		errors: gdlerrors.NewErrorList(),
	}
}

// Validate performs structural validation on a grammar.
// It returns an ErrorList containing all structural errors found.
func (v *StructuralValidator) Validate(grammar *ast.Grammar) error {
	v.errors = gdlerrors.NewErrorList()

	if grammar.Name == "" {
		v.errors.AddErrorWithSuggestion(
			gdlerrors.TypeSemantic,
			"name",
			"grammar name is empty",
			"set a non-empty \"name\" in the grammar description",
		)
	}

	if len(grammar.Rules) == 0 {
		v.errors.AddErrorWithSuggestion(
			gdlerrors.TypeSemantic,
			"rules",
			"grammar defines no rules",
			"a grammar needs at least a start rule",
		)
		return v.errors.ToError()
	}

	seen := make(map[string]bool, len(grammar.Rules))
	for _, entry := range grammar.Rules {
		if entry.Name == "" {
			v.errors.AddError(
				gdlerrors.TypeSemantic,
				"rules",
				"rule has an empty name",
			)
			continue
		}
		if seen[entry.Name] {
			v.errors.AddError(
				gdlerrors.TypeSemantic,
				"rules."+entry.Name,
				fmt.Sprintf("rule %q is defined more than once", entry.Name),
			)
		}
		seen[entry.Name] = true
	}

	return v.errors.ToError()
}
