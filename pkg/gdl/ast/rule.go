package ast

import (
	"fmt"
	"strings"
)

// Rule is the typed representation of one grammar rule node.
// It is a closed set: the only implementations are the variant types in
// this package, one per recognized node kind. Consumers can switch over
// the concrete type exhaustively without re-validating shape, because a
// Rule value only ever exists after successful validation.
//
// Rule trees are acyclic and immutable once built. Composite variants
// exclusively own their children.
type Rule interface {
	fmt.Stringer

	// isRule restricts implementations to this package.
	isRule()
}

// Blank matches the empty string.
type Blank struct{}

// Choice matches any one of its members. Member order is significant:
// it determines alternative precedence downstream.
type Choice struct {
	Members []Rule
}

// Error wraps a sub-rule as an error-recovery point.
type Error struct {
	Value Rule
}

// Pattern matches text against a regular expression. The pattern text is
// not checked here; regex validity belongs to the downstream compiler.
type Pattern struct {
	Value string
}

// Repeat matches zero or more occurrences of its sub-rule.
type Repeat struct {
	Value Rule
}

// Seq matches its members one after another, in order.
type Seq struct {
	Members []Rule
}

// String matches a literal string.
type String struct {
	Value string
}

// Symbol references another named rule in the grammar.
type Symbol struct {
	Name string
}

func (Blank) isRule()   {}
func (Choice) isRule()  {}
func (Error) isRule()   {}
func (Pattern) isRule() {}
func (Repeat) isRule()  {}
func (Seq) isRule()     {}
func (String) isRule()  {}
func (Symbol) isRule()  {}

// String renders the rule as an S-expression for debugging and tests.
func (Blank) String() string { return "(blank)" }

func (r Choice) String() string { return renderList("choice", r.Members) }

func (r Error) String() string { return fmt.Sprintf("(error %s)", r.Value) }

func (r Pattern) String() string { return fmt.Sprintf("(pattern %q)", r.Value) }

func (r Repeat) String() string { return fmt.Sprintf("(repeat %s)", r.Value) }

func (r Seq) String() string { return renderList("seq", r.Members) }

func (r String) String() string { return fmt.Sprintf("(str %q)", r.Value) }

func (r Symbol) String() string { return fmt.Sprintf("(sym %s)", r.Name) }

func renderList(tag string, members []Rule) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(tag)
	for _, m := range members {
		sb.WriteString(" ")
		sb.WriteString(m.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Equal reports whether two rule trees are structurally identical:
// same variant at every node, same payloads, same child order.
func Equal(a, b Rule) bool {
	switch x := a.(type) {
	case Blank:
		_, ok := b.(Blank)
		return ok
	case Choice:
		y, ok := b.(Choice)
		return ok && equalMembers(x.Members, y.Members)
	case Error:
		y, ok := b.(Error)
		return ok && Equal(x.Value, y.Value)
	case Pattern:
		y, ok := b.(Pattern)
		return ok && x.Value == y.Value
	case Repeat:
		y, ok := b.(Repeat)
		return ok && Equal(x.Value, y.Value)
	case Seq:
		y, ok := b.(Seq)
		return ok && equalMembers(x.Members, y.Members)
	case String:
		y, ok := b.(String)
		return ok && x.Value == y.Value
	case Symbol:
		y, ok := b.(Symbol)
		return ok && x.Name == y.Name
	default:
		return false
	}
}

func equalMembers(a, b []Rule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
