package gdl

import (
	"testing"

	"arbor-hq/canopy/pkg/gdl/ast"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

const testdata = "../../internal/gdl/testdata"

func TestParseAndValidate(t *testing.T) {
	grammar, err := ParseAndValidate(testdata + "/valid/arithmetic.json")
	if err != nil {
		t.Fatalf("ParseAndValidate() failed: %v", err)
	}
	if grammar.Name != "arithmetic" {
		t.Errorf("Name = %q, want %q", grammar.Name, "arithmetic")
	}
}

func TestParseAndValidate_UndefinedSymbol(t *testing.T) {
	// The description builds fine but references a rule that does not
	// exist, which validation must catch.
	_, err := ParseAndValidate(testdata + "/invalid/undefined_symbol.json")
	if err == nil {
		t.Fatal("ParseAndValidate() succeeded, want semantic error")
	}
	if _, ok := err.(*gdlerrors.ErrorList); !ok {
		t.Errorf("error is %T, want *gdlerrors.ErrorList from validation", err)
	}
}

func TestParseAndValidateBytes(t *testing.T) {
	data := []byte(`{"name": "g", "rules": {"start": {"type": "BLANK"}}}`)
	grammar, err := ParseAndValidateBytes(data, "inline")
	if err != nil {
		t.Fatalf("ParseAndValidateBytes() failed: %v", err)
	}
	if !ast.Equal(grammar.Rule("start"), ast.Blank{}) {
		t.Errorf("start = %s, want (blank)", grammar.Rule("start"))
	}
}

func TestParse_SkipsValidation(t *testing.T) {
	// Parse alone must accept a grammar that validation would reject.
	grammar, err := Parse(testdata + "/invalid/undefined_symbol.json")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if err := Validate(grammar); err == nil {
		t.Error("Validate() succeeded, want undefined symbol error")
	}
}

func TestBuild(t *testing.T) {
	grammar, err := Build(map[string]any{
		"name": "g",
		"rules": map[string]any{
			"start": map[string]any{"type": "STRING", "value": "x"},
		},
	})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if grammar.Name != "g" {
		t.Errorf("Name = %q, want %q", grammar.Name, "g")
	}
}
