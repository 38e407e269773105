package validator

import (
	"arbor-hq/canopy/pkg/gdl/ast"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

// Validator orchestrates the validation passes over a built grammar.
// It runs structural and semantic validation in sequence.
//
// The validator only ever sees grammars the builder accepted, so it
// checks grammar-level invariants, not node shapes.
type Validator struct {
	structural *StructuralValidator
	semantic   *SemanticValidator
}

// NewValidator creates a new validator with all validation passes.
func NewValidator() *Validator {
	return &Validator{
		structural: NewStructuralValidator(),
		semantic:   NewSemanticValidator(),
	}
}

// Validate runs all validation passes on a grammar.
// It accumulates errors from all passes and returns them together.
func (v *Validator) Validate(grammar *ast.Grammar) error {
	errors := gdlerrors.NewErrorList()

	if err := v.structural.Validate(grammar); err != nil {
		if errList, ok := err.(*gdlerrors.ErrorList); ok {
			errors.Errors = append(errors.Errors, errList.Errors...)
		}
	}

	// Semantic validation only runs on structurally sound grammars.
	// This prevents cascading errors.
	if !errors.HasErrors() {
		if err := v.semantic.Validate(grammar); err != nil {
			if errList, ok := err.(*gdlerrors.ErrorList); ok {
				errors.Errors = append(errors.Errors, errList.Errors...)
			}
		}
	}

	return errors.ToError()
}

// ValidateStructural runs only structural validation.
func (v *Validator) ValidateStructural(grammar *ast.Grammar) error {
	return v.structural.Validate(grammar)
}

// ValidateSemantic runs only semantic validation.
func (v *Validator) ValidateSemantic(grammar *ast.Grammar) error {
	return v.semantic.Validate(grammar)
}

// Warnings returns non-fatal findings for a grammar: rules that can
// never be reached from the start rule. Warnings do not fail validation;
// the lint command's strict mode promotes them to errors.
func (v *Validator) Warnings(grammar *ast.Grammar) []*gdlerrors.Error {
	return v.semantic.Warnings(grammar)
}
