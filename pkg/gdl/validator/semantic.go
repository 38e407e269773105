package validator

import (
	"fmt"

	"arbor-hq/canopy/pkg/gdl/ast"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

// SemanticValidator checks that symbol references inside rule trees
// resolve to rules the grammar actually defines.
type SemanticValidator struct {
	errors *gdlerrors.ErrorList
}

// NewSemanticValidator creates a new semantic validator.
func NewSemanticValidator() *SemanticValidator {
	return &SemanticValidator{
		errors: gdlerrors.NewErrorList(),
	}
}

// Validate performs semantic validation on a grammar.
func (v *SemanticValidator) Validate(grammar *ast.Grammar) error {
	v.errors = gdlerrors.NewErrorList()

	defined := make(map[string]bool, len(grammar.Rules))
	for _, entry := range grammar.Rules {
		defined[entry.Name] = true
	}

	for _, entry := range grammar.Rules {
		reported := make(map[string]bool)
		for _, ref := range ast.Symbols(entry.Rule) {
			if defined[ref] || reported[ref] {
				continue
			}
			reported[ref] = true

			err := gdlerrors.Newf(
				gdlerrors.TypeSemantic,
				"rules."+entry.Name,
				"rule %q references undefined symbol %q", entry.Name, ref,
			)
			if near := nearestRuleName(ref, grammar.RuleNames()); near != "" {
				err.Suggestion = fmt.Sprintf("did you mean %q?", near)
			}
			v.errors.Add(err)
		}
	}

	return v.errors.ToError()
}

// Warnings returns rules unreachable from the start rule. These are not
// errors: the grammar still compiles, the rules are just dead.
func (v *SemanticValidator) Warnings(grammar *ast.Grammar) []*gdlerrors.Error {
	start := grammar.Start()
	if start == nil {
		return nil
	}

	reachable := make(map[string]bool, len(grammar.Rules))
	var visit func(name string)
	visit = func(name string) {
		if reachable[name] {
			return
		}
		reachable[name] = true
		rule := grammar.Rule(name)
		if rule == nil {
			return
		}
		for _, ref := range ast.Symbols(rule) {
			visit(ref)
		}
	}
	visit(start.Name)

	var warnings []*gdlerrors.Error
	for _, entry := range grammar.Rules {
		if !reachable[entry.Name] {
			warnings = append(warnings, gdlerrors.Newf(
				gdlerrors.TypeSemantic,
				"rules."+entry.Name,
				"rule %q is unreachable from start rule %q", entry.Name, start.Name,
			))
		}
	}
	return warnings
}

// nearestRuleName returns the defined rule name closest to ref, or ""
// when nothing is close enough to be a plausible typo.
func nearestRuleName(ref string, names []string) string {
	best := ""
	bestDist := len(ref)/2 + 1 // anything further is not a typo
	for _, name := range names {
		if d := editDistance(ref, name); d < bestDist {
			best = name
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
