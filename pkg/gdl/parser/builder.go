package parser

import (
	"fmt"
	"sort"

	"arbor-hq/canopy/pkg/gdl/ast"
	gdlerrors "arbor-hq/canopy/pkg/gdl/errors"
)

// Recognized rule type discriminators, as they appear in descriptions.
const (
	ruleTypeBlank   = "BLANK"
	ruleTypeChoice  = "CHOICE"
	ruleTypeError   = "ERROR"
	ruleTypePattern = "PATTERN"
	ruleTypeRepeat  = "REPEAT"
	ruleTypeSeq     = "SEQ"
	ruleTypeString  = "STRING"
	ruleTypeSymbol  = "SYMBOL"
)

// RuleTypes lists the recognized discriminators in a stable order.
var RuleTypes = []string{
	ruleTypeBlank, ruleTypeChoice, ruleTypeError, ruleTypePattern,
	ruleTypeRepeat, ruleTypeSeq, ruleTypeString, ruleTypeSymbol,
}

// defaultMaxDepth bounds rule tree nesting. Grammar rules nest deeper
// than most configuration trees, so the default is generous; hitting it
// indicates a pathological or adversarial description.
const defaultMaxDepth = 100

// BuildRule converts one dynamic rule node into a typed ast.Rule.
//
// The node must be a map carrying a "type" discriminator string and the
// variant's required fields. The build is fail-fast: the first violation
// anywhere in the tree aborts the whole call, and no partial rule is ever
// returned. BuildRule is a pure function of its argument. Nesting is
// bounded at 100 levels; use a Parser with WithMaxDepth for a different
// bound.
func BuildRule(v any) (ast.Rule, error) {
	return buildRule(v, "rule", 0, defaultMaxDepth)
}

// BuildGrammar assembles a typed grammar from a dynamic description: a
// map with a "name" string and a "rules" object mapping rule names to
// dynamic rule nodes.
//
// A plain Go map carries no document order, so rule order is pinned to
// lexicographic key order. Wire input parsed by this package preserves
// the source document's rule order instead; see Parser.
//
// On the first malformed entry the whole assembly fails and entries
// already built are discarded.
func BuildGrammar(v any) (*ast.Grammar, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, "grammar",
			"expected grammar description to be an object, got %s", describe(v))
	}
	return assembleGrammar(obj["name"], obj["rules"], nil, defaultMaxDepth)
}

// assembleGrammar builds every named rule of the description, in the
// given order, and wraps the results in a Grammar. A nil order means the
// description had no document order; lexicographic key order is used.
func assembleGrammar(name, rules any, order []string, maxDepth int) (*ast.Grammar, error) {
	ruleMap, ok := rules.(map[string]any)
	if !ok {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, "rules",
			"expected grammar rules to be an object, got %s", describe(rules))
	}

	nameStr, ok := name.(string)
	if !ok {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, "name",
			"expected grammar name to be a string, got %s", describe(name))
	}

	if order == nil {
		order = make([]string, 0, len(ruleMap))
		for ruleName := range ruleMap {
			order = append(order, ruleName)
		}
		sort.Strings(order)
	}

	entries := make([]ast.RuleEntry, 0, len(order))
	for _, ruleName := range order {
		rule, err := buildRule(ruleMap[ruleName], "rules."+ruleName, 0, maxDepth)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.RuleEntry{Name: ruleName, Rule: rule})
	}

	return &ast.Grammar{Name: nameStr, Rules: entries}, nil
}

// buildRule dispatches on the node's type discriminator and recursively
// builds children. path names the node's position for error reporting;
// depth tracks how far below the root this node sits.
func buildRule(v any, path string, depth, maxDepth int) (ast.Rule, error) {
	if depth > maxDepth {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, path,
			"rule exceeds maximum nesting depth of %d", maxDepth)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, path,
			"expected rule to be an object, got %s", describe(v))
	}

	typ, ok := obj["type"].(string)
	if !ok {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, path,
			"expected rule type to be a string, got %s", describe(obj["type"]))
	}

	switch typ {
	case ruleTypeBlank:
		return ast.Blank{}, nil

	case ruleTypeChoice:
		members, err := buildMembers(obj, path, depth, maxDepth)
		if err != nil {
			return nil, err
		}
		return ast.Choice{Members: members}, nil

	case ruleTypeError:
		value, err := buildValueRule(obj, path, depth, maxDepth)
		if err != nil {
			return nil, err
		}
		return ast.Error{Value: value}, nil

	case ruleTypePattern:
		value, err := stringField(obj, "value", path)
		if err != nil {
			return nil, err
		}
		return ast.Pattern{Value: value}, nil

	case ruleTypeRepeat:
		value, err := buildValueRule(obj, path, depth, maxDepth)
		if err != nil {
			return nil, err
		}
		return ast.Repeat{Value: value}, nil

	case ruleTypeSeq:
		members, err := buildMembers(obj, path, depth, maxDepth)
		if err != nil {
			return nil, err
		}
		return ast.Seq{Members: members}, nil

	case ruleTypeString:
		value, err := stringField(obj, "value", path)
		if err != nil {
			return nil, err
		}
		return ast.String{Value: value}, nil

	case ruleTypeSymbol:
		name, err := stringField(obj, "name", path)
		if err != nil {
			return nil, err
		}
		return ast.Symbol{Name: name}, nil

	default:
		return nil, &gdlerrors.Error{
			Type:       gdlerrors.TypeUnknownRuleType,
			Message:    fmt.Sprintf("unexpected rule type: %s", typ),
			Path:       path,
			RuleType:   typ,
			Suggestion: "recognized types are BLANK, CHOICE, ERROR, PATTERN, REPEAT, SEQ, STRING, SYMBOL",
		}
	}
}

// buildMembers builds the ordered children of a CHOICE or SEQ node.
// Child order is preserved exactly: it determines alternative precedence
// and sequencing downstream. The first failing child aborts the call
// without materializing a partial node.
func buildMembers(obj map[string]any, path string, depth, maxDepth int) ([]ast.Rule, error) {
	raw, ok := obj["members"].([]any)
	if !ok {
		return nil, gdlerrors.Newf(gdlerrors.TypeStructural, path,
			"expected rule members to be an array, got %s", describe(obj["members"]))
	}

	members := make([]ast.Rule, 0, len(raw))
	for i, el := range raw {
		member, err := buildRule(el, fmt.Sprintf("%s.members[%d]", path, i), depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

// buildValueRule builds the single sub-rule carried in a node's "value"
// field (ERROR and REPEAT).
func buildValueRule(obj map[string]any, path string, depth, maxDepth int) (ast.Rule, error) {
	return buildRule(obj["value"], path+".value", depth+1, maxDepth)
}

// stringField reads a required string field from a rule node.
func stringField(obj map[string]any, key, path string) (string, error) {
	s, ok := obj[key].(string)
	if !ok {
		return "", gdlerrors.Newf(gdlerrors.TypeStructural, path,
			"expected rule %s to be a string, got %s", key, describe(obj[key]))
	}
	return s, nil
}

// describe names a dynamic value's shape for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case map[string]any:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64, int, int64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
