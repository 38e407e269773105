package gdl

import (
	"arbor-hq/canopy/pkg/gdl/ast"
	"arbor-hq/canopy/pkg/gdl/parser"
	"arbor-hq/canopy/pkg/gdl/validator"
)

// ParseAndValidate is a convenience function that parses and validates a
// grammar description file. It returns the typed grammar if successful,
// or an error if building or validation fails.
func ParseAndValidate(path string) (*ast.Grammar, error) {
	p := parser.NewParser()
	grammar, err := p.Parse(path)
	if err != nil {
		return nil, err
	}

	v := validator.NewValidator()
	if err := v.Validate(grammar); err != nil {
		return nil, err
	}

	return grammar, nil
}

// ParseAndValidateBytes parses and validates a JSON grammar description
// from bytes.
func ParseAndValidateBytes(data []byte, sourcePath string) (*ast.Grammar, error) {
	p := parser.NewParser()
	grammar, err := p.ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}

	v := validator.NewValidator()
	if err := v.Validate(grammar); err != nil {
		return nil, err
	}

	return grammar, nil
}

// Parse parses a grammar description file without validation.
// Use this to inspect a grammar before validating it.
func Parse(path string) (*ast.Grammar, error) {
	p := parser.NewParser()
	return p.Parse(path)
}

// Build assembles a typed grammar from an in-memory dynamic description
// without validation.
func Build(desc any) (*ast.Grammar, error) {
	return parser.BuildGrammar(desc)
}

// Validate validates a built grammar.
func Validate(grammar *ast.Grammar) error {
	v := validator.NewValidator()
	return v.Validate(grammar)
}
