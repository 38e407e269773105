// Package parser converts dynamically-shaped grammar descriptions into
// typed grammars.
//
// The package has two layers. The wire layer (Parser) decodes JSON or
// YAML documents into dynamic values, preserving the document's rule
// order. The builder layer (BuildRule, BuildGrammar) validates those
// dynamic values and constructs the typed AST.
//
// # Building
//
// BuildRule converts one dynamic rule node (a map with a "type"
// discriminator and variant-specific fields) into one ast.Rule:
//
//	rule, err := parser.BuildRule(map[string]any{
//	    "type": "SEQ",
//	    "members": []any{
//	        map[string]any{"type": "STRING", "value": "a"},
//	        map[string]any{"type": "SYMBOL", "name": "b"},
//	    },
//	})
//
// BuildGrammar assembles a whole description (name plus rules mapping)
// into an ast.Grammar. Both are fail-fast: the first structural
// violation or unknown rule type anywhere in the input aborts the call,
// and no partially-built value escapes.
//
// # Rule order
//
// Rule order is semantically significant (the first rule is the start
// rule), so the parser pins it deterministically: wire documents keep
// their source order, and plain Go maps, which carry no document order,
// use lexicographic key order.
//
// # Errors
//
// All failures are *errors.Error values from package
// arbor-hq/canopy/pkg/gdl/errors, carrying a category, the structural
// path of the violation, and for unknown rule types the exact offending
// discriminator string.
package parser
