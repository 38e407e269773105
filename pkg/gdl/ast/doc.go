// Package ast defines the typed representation of a grammar: the Rule
// sum type and the Grammar container.
//
// A Rule is a closed tagged variant with one concrete type per recognized
// node kind: Blank, Choice, Error, Pattern, Repeat, Seq, String, Symbol.
// Every Rule value is produced by the builder in package parser after
// successful validation, so downstream consumers (validators, compilers)
// can type-switch over variants exhaustively without re-checking shape.
//
// A Grammar pairs a name with an ordered sequence of named rules. Entry
// order is preserved from the source description; the first entry is the
// start rule.
//
// # Basic Usage
//
//	grammar, err := gdl.Parse("grammar.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, entry := range grammar.Rules {
//	    fmt.Println(entry.Name, entry.Rule)
//	}
//
//	// Type-switch over variants
//	switch r := grammar.Start().Rule.(type) {
//	case ast.Seq:
//	    fmt.Println("start is a sequence of", len(r.Members))
//	case ast.String:
//	    fmt.Println("start is the literal", r.Value)
//	}
//
// Walk traverses a rule tree depth-first; Equal and EqualGrammar compare
// trees structurally.
package ast
