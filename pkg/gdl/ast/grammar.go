package ast

// RuleEntry is one named rule of a grammar. Entries are ordered: the
// first entry is the grammar's start rule.
type RuleEntry struct {
	Name string
	Rule Rule
}

// Grammar is the typed, validated form of a grammar description.
// A Grammar value exists only if every rule of the description was built
// successfully; there is no partially-assembled Grammar.
type Grammar struct {
	Name  string
	Rules []RuleEntry
}

// Rule returns the rule with the given name, or nil if not defined.
func (g *Grammar) Rule(name string) Rule {
	for _, entry := range g.Rules {
		if entry.Name == name {
			return entry.Rule
		}
	}
	return nil
}

// HasRule reports whether a rule with the given name is defined.
func (g *Grammar) HasRule(name string) bool {
	return g.Rule(name) != nil
}

// Start returns the start rule entry (the first entry), or nil for an
// empty grammar.
func (g *Grammar) Start() *RuleEntry {
	if len(g.Rules) == 0 {
		return nil
	}
	return &g.Rules[0]
}

// RuleNames returns the rule names in grammar order.
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.Rules))
	for i, entry := range g.Rules {
		names[i] = entry.Name
	}
	return names
}

// EqualGrammar reports whether two grammars are structurally identical:
// same name, same rules in the same order, with structurally equal trees.
func EqualGrammar(a, b *Grammar) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || len(a.Rules) != len(b.Rules) {
		return false
	}
	for i := range a.Rules {
		if a.Rules[i].Name != b.Rules[i].Name {
			return false
		}
		if !Equal(a.Rules[i].Rule, b.Rules[i].Rule) {
			return false
		}
	}
	return true
}
