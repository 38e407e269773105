package parser

import (
	"strings"
	"testing"

	"arbor-hq/canopy/pkg/gdl/ast"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

func TestBuildRule_AllVariants(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  ast.Rule
	}{
		{
			name:  "blank",
			input: map[string]any{"type": "BLANK"},
			want:  ast.Blank{},
		},
		{
			name:  "string",
			input: map[string]any{"type": "STRING", "value": "hello"},
			want:  ast.String{Value: "hello"},
		},
		{
			name:  "pattern",
			input: map[string]any{"type": "PATTERN", "value": `\d+`},
			want:  ast.Pattern{Value: `\d+`},
		},
		{
			name:  "symbol",
			input: map[string]any{"type": "SYMBOL", "name": "expression"},
			want:  ast.Symbol{Name: "expression"},
		},
		{
			name: "repeat",
			input: map[string]any{
				"type":  "REPEAT",
				"value": map[string]any{"type": "STRING", "value": "x"},
			},
			want: ast.Repeat{Value: ast.String{Value: "x"}},
		},
		{
			name: "error",
			input: map[string]any{
				"type":  "ERROR",
				"value": map[string]any{"type": "BLANK"},
			},
			want: ast.Error{Value: ast.Blank{}},
		},
		{
			name: "choice",
			input: map[string]any{
				"type": "CHOICE",
				"members": []any{
					map[string]any{"type": "STRING", "value": "a"},
					map[string]any{"type": "BLANK"},
				},
			},
			want: ast.Choice{Members: []ast.Rule{ast.String{Value: "a"}, ast.Blank{}}},
		},
		{
			name: "seq",
			input: map[string]any{
				"type": "SEQ",
				"members": []any{
					map[string]any{"type": "STRING", "value": "a"},
					map[string]any{"type": "SYMBOL", "name": "b"},
				},
			},
			want: ast.Seq{Members: []ast.Rule{ast.String{Value: "a"}, ast.Symbol{Name: "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildRule(tt.input)
			if err != nil {
				t.Fatalf("BuildRule() failed: %v", err)
			}
			if !ast.Equal(got, tt.want) {
				t.Errorf("BuildRule() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBuildRule_NotAnObject(t *testing.T) {
	for _, input := range []any{nil, "STRING", 42.0, []any{}, true} {
		_, err := BuildRule(input)
		if err == nil {
			t.Errorf("BuildRule(%v) succeeded, want structural error", input)
			continue
		}
		if !gdlerrors.IsType(err, gdlerrors.TypeStructural) {
			t.Errorf("BuildRule(%v) error type = %v, want structural", input, err)
		}
	}
}

func TestBuildRule_TypeDiscriminator(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
	}{
		{"missing type", map[string]any{"value": "x"}},
		{"non-string type", map[string]any{"type": 7.0}},
		{"null type", map[string]any{"type": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRule(tt.input)
			if err == nil {
				t.Fatal("BuildRule() succeeded, want structural error")
			}
			if !gdlerrors.IsType(err, gdlerrors.TypeStructural) {
				t.Errorf("error type = %v, want structural", err)
			}
		})
	}
}

func TestBuildRule_UnknownType(t *testing.T) {
	_, err := BuildRule(map[string]any{"type": "REPEAT1"})
	if err == nil {
		t.Fatal("BuildRule() succeeded, want unknown rule type error")
	}

	gdlErr := gdlerrors.AsError(err)
	if gdlErr == nil {
		t.Fatalf("error is %T, want *gdlerrors.Error", err)
	}
	if gdlErr.Type != gdlerrors.TypeUnknownRuleType {
		t.Errorf("Type = %q, want %q", gdlErr.Type, gdlerrors.TypeUnknownRuleType)
	}
	// The offending discriminator must come back verbatim.
	if gdlErr.RuleType != "REPEAT1" {
		t.Errorf("RuleType = %q, want %q", gdlErr.RuleType, "REPEAT1")
	}
	if gdlErr.Message != "unexpected rule type: REPEAT1" {
		t.Errorf("Message = %q, want %q", gdlErr.Message, "unexpected rule type: REPEAT1")
	}
}

func TestBuildRule_MemberOrderSignificant(t *testing.T) {
	ab := map[string]any{
		"type": "CHOICE",
		"members": []any{
			map[string]any{"type": "STRING", "value": "a"},
			map[string]any{"type": "STRING", "value": "b"},
		},
	}
	ba := map[string]any{
		"type": "CHOICE",
		"members": []any{
			map[string]any{"type": "STRING", "value": "b"},
			map[string]any{"type": "STRING", "value": "a"},
		},
	}

	ruleAB, err := BuildRule(ab)
	if err != nil {
		t.Fatalf("BuildRule(ab) failed: %v", err)
	}
	ruleBA, err := BuildRule(ba)
	if err != nil {
		t.Fatalf("BuildRule(ba) failed: %v", err)
	}

	if ast.Equal(ruleAB, ruleBA) {
		t.Error("CHOICE [a b] compares equal to CHOICE [b a]; member order must be significant")
	}
}

func TestBuildRule_NestedFailureAborts(t *testing.T) {
	input := map[string]any{
		"type": "SEQ",
		"members": []any{
			map[string]any{"type": "STRING", "value": "ok"},
			map[string]any{"type": "SYMBOL"}, // missing name
			map[string]any{"type": "STRING", "value": "never reached"},
		},
	}

	got, err := BuildRule(input)
	if err == nil {
		t.Fatal("BuildRule() succeeded, want error for malformed member")
	}
	if got != nil {
		t.Errorf("BuildRule() returned partial rule %s alongside error", got)
	}

	gdlErr := gdlerrors.AsError(err)
	if gdlErr == nil {
		t.Fatalf("error is %T, want *gdlerrors.Error", err)
	}
	if want := "rule.members[1]"; gdlErr.Path != want {
		t.Errorf("Path = %q, want %q", gdlErr.Path, want)
	}
}

func TestBuildRule_CompositeMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
	}{
		{"choice without members", map[string]any{"type": "CHOICE"}},
		{"seq with non-array members", map[string]any{"type": "SEQ", "members": "a, b"}},
		{"repeat without value", map[string]any{"type": "REPEAT"}},
		{"error without value", map[string]any{"type": "ERROR"}},
		{"string without value", map[string]any{"type": "STRING"}},
		{"pattern with numeric value", map[string]any{"type": "PATTERN", "value": 1.0}},
		{"symbol without name", map[string]any{"type": "SYMBOL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRule(tt.input)
			if err == nil {
				t.Fatal("BuildRule() succeeded, want structural error")
			}
			if !gdlerrors.IsType(err, gdlerrors.TypeStructural) {
				t.Errorf("error type = %v, want structural", err)
			}
		})
	}
}

func TestBuildRule_Idempotent(t *testing.T) {
	input := map[string]any{
		"type": "REPEAT",
		"value": map[string]any{
			"type": "CHOICE",
			"members": []any{
				map[string]any{"type": "PATTERN", "value": "[0-9]+"},
				map[string]any{"type": "BLANK"},
			},
		},
	}

	first, err := BuildRule(input)
	if err != nil {
		t.Fatalf("first BuildRule() failed: %v", err)
	}
	second, err := BuildRule(input)
	if err != nil {
		t.Fatalf("second BuildRule() failed: %v", err)
	}
	if !ast.Equal(first, second) {
		t.Errorf("BuildRule() not deterministic: %s vs %s", first, second)
	}
}

func TestBuildGrammar(t *testing.T) {
	input := map[string]any{
		"name": "demo",
		"rules": map[string]any{
			"zeta":  map[string]any{"type": "BLANK"},
			"alpha": map[string]any{"type": "STRING", "value": "a"},
		},
	}

	grammar, err := BuildGrammar(input)
	if err != nil {
		t.Fatalf("BuildGrammar() failed: %v", err)
	}

	if grammar.Name != "demo" {
		t.Errorf("Name = %q, want %q", grammar.Name, "demo")
	}
	if len(grammar.Rules) != 2 {
		t.Fatalf("len(Rules) = %d, want 2", len(grammar.Rules))
	}

	// Plain maps carry no document order; rule order is pinned to
	// lexicographic key order.
	if grammar.Rules[0].Name != "alpha" || grammar.Rules[1].Name != "zeta" {
		t.Errorf("rule order = [%s %s], want [alpha zeta]",
			grammar.Rules[0].Name, grammar.Rules[1].Name)
	}
	if !ast.Equal(grammar.Rules[0].Rule, ast.String{Value: "a"}) {
		t.Errorf("alpha = %s, want (str \"a\")", grammar.Rules[0].Rule)
	}
}

func TestBuildGrammar_MissingRules(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		wantText string
	}{
		{
			name:     "no rules field",
			input:    map[string]any{"name": "g"},
			wantText: "expected grammar rules to be an object",
		},
		{
			name:     "rules is an array",
			input:    map[string]any{"name": "g", "rules": []any{}},
			wantText: "expected grammar rules to be an object",
		},
		{
			name: "name is a number",
			input: map[string]any{
				"name":  5.0,
				"rules": map[string]any{"start": map[string]any{"type": "BLANK"}},
			},
			wantText: "expected grammar name to be a string",
		},
		{
			name:     "not an object at all",
			input:    "grammar",
			wantText: "expected grammar description to be an object",
		},
		{
			// Rules are checked before the name, so a description
			// missing both reports the rules problem.
			name:     "missing both",
			input:    map[string]any{},
			wantText: "expected grammar rules to be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGrammar(tt.input)
			if err == nil {
				t.Fatal("BuildGrammar() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestBuildGrammar_FirstFailureAborts(t *testing.T) {
	input := map[string]any{
		"name": "g",
		"rules": map[string]any{
			"bad":  map[string]any{"type": "NOPE"},
			"good": map[string]any{"type": "BLANK"},
		},
	}

	grammar, err := BuildGrammar(input)
	if err == nil {
		t.Fatal("BuildGrammar() succeeded, want error")
	}
	if grammar != nil {
		t.Errorf("BuildGrammar() returned partial grammar alongside error")
	}
	if !gdlerrors.IsType(err, gdlerrors.TypeUnknownRuleType) {
		t.Errorf("error type = %v, want unknown rule type", err)
	}
}

// deepRepeatRule nests REPEAT nodes n levels around a terminal string.
func deepRepeatRule(n int) map[string]any {
	rule := map[string]any{"type": "STRING", "value": "x"}
	for i := 0; i < n; i++ {
		rule = map[string]any{"type": "REPEAT", "value": rule}
	}
	return rule
}

func TestBuildRule_NestingDepthBounded(t *testing.T) {
	_, err := BuildRule(deepRepeatRule(5000))
	if err == nil {
		t.Fatal("BuildRule() accepted a 5000-deep rule tree, want depth error")
	}

	gdlErr := gdlerrors.AsError(err)
	if gdlErr == nil {
		t.Fatalf("error is %T, want *gdlerrors.Error", err)
	}
	if gdlErr.Type != gdlerrors.TypeStructural {
		t.Errorf("Type = %q, want %q", gdlErr.Type, gdlerrors.TypeStructural)
	}
	if !strings.Contains(gdlErr.Message, "maximum nesting depth") {
		t.Errorf("Message = %q, want nesting depth message", gdlErr.Message)
	}
}

func TestBuildRule_DeepButBoundedNesting(t *testing.T) {
	rule, err := BuildRule(deepRepeatRule(50))
	if err != nil {
		t.Fatalf("BuildRule() error = %v, want 50-deep tree accepted", err)
	}
	if _, ok := rule.(ast.Repeat); !ok {
		t.Errorf("rule is %T, want ast.Repeat", rule)
	}
}

func TestBuildGrammar_NestingDepthBounded(t *testing.T) {
	_, err := BuildGrammar(map[string]any{
		"name":  "deep",
		"rules": map[string]any{"start": deepRepeatRule(5000)},
	})
	if err == nil {
		t.Fatal("BuildGrammar() accepted a 5000-deep rule tree, want depth error")
	}
	if !gdlerrors.IsType(err, gdlerrors.TypeStructural) {
		t.Errorf("error = %v, want type structural", err)
	}
}
