package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

const testdata = "../../internal/gdl/testdata"

func TestValidateGrammarFile_Valid(t *testing.T) {
	result := validateGrammarFile(testdata + "/valid/arithmetic.json")

	if !result.Valid {
		t.Fatalf("Valid = false, errors: %v", result.Errors)
	}
	if result.Grammar != "arithmetic" {
		t.Errorf("Grammar = %q, want %q", result.Grammar, "arithmetic")
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
}

func TestValidateGrammarFile_UnknownRuleType(t *testing.T) {
	result := validateGrammarFile(testdata + "/invalid/unknown_type.json")

	if result.Valid {
		t.Fatal("Valid = true for grammar with unknown rule type")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
	}

	finding := result.Errors[0]
	if finding.Type != string(gdlerrors.TypeUnknownRuleType) {
		t.Errorf("Type = %q, want %q", finding.Type, gdlerrors.TypeUnknownRuleType)
	}
	if finding.Message != "unexpected rule type: REPEAT1" {
		t.Errorf("Message = %q, want the exact offending discriminator", finding.Message)
	}
	if finding.Severity != "error" {
		t.Errorf("Severity = %q, want error", finding.Severity)
	}
}

func TestValidateGrammarFile_SemanticFindings(t *testing.T) {
	result := validateGrammarFile(testdata + "/invalid/undefined_symbol.json")

	if result.Valid {
		t.Fatal("Valid = true for grammar with undefined symbol")
	}
	if len(result.Errors) == 0 {
		t.Fatal("Errors is empty, want undefined symbol finding")
	}
	if !strings.Contains(result.Errors[0].Message, "undefined symbol") {
		t.Errorf("Message = %q, want undefined symbol finding", result.Errors[0].Message)
	}
}

func TestValidateGrammarFile_Warnings(t *testing.T) {
	// kitchen.yaml is fully reachable; arithmetic too. Build one with an
	// orphan rule inline instead.
	path := filepath.Join(t.TempDir(), "orphan.json")
	grammar := `{
		"name": "g",
		"rules": {
			"start": {"type": "BLANK"},
			"orphan": {"type": "BLANK"}
		}
	}`
	if err := os.WriteFile(path, []byte(grammar), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	result := validateGrammarFile(path)
	if !result.Valid {
		t.Fatalf("Valid = false, errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(result.Warnings))
	}
	if result.Warnings[0].Severity != "warning" {
		t.Errorf("Severity = %q, want warning", result.Warnings[0].Severity)
	}
}

func TestFindingsFrom(t *testing.T) {
	list := gdlerrors.NewErrorList()
	list.AddError(gdlerrors.TypeSemantic, "rules.a", "first")
	list.AddError(gdlerrors.TypeSemantic, "rules.b", "second")

	findings := findingsFrom(list)
	if len(findings) != 2 {
		t.Fatalf("len = %d, want 2", len(findings))
	}
	if findings[0].Path != "rules.a" || findings[1].Path != "rules.b" {
		t.Errorf("paths = [%s %s], want [rules.a rules.b]", findings[0].Path, findings[1].Path)
	}

	single := findingsFrom(gdlerrors.New(gdlerrors.TypeSyntax, "g.json", "bad JSON"))
	if len(single) != 1 || single[0].Type != "syntax" {
		t.Errorf("single = %v, want one syntax finding", single)
	}

	plain := findingsFrom(errors.New("something else"))
	if len(plain) != 1 || plain[0].Message != "something else" {
		t.Errorf("plain = %v, want the raw message", plain)
	}
}
