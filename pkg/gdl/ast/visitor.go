package ast

// Walk traverses a rule tree depth-first, calling fn for each node before
// descending into its children. Traversal stops at the first error, which
// is returned to the caller.
func Walk(rule Rule, fn func(Rule) error) error {
	if err := fn(rule); err != nil {
		return err
	}

	switch r := rule.(type) {
	case Choice:
		for _, m := range r.Members {
			if err := Walk(m, fn); err != nil {
				return err
			}
		}
	case Seq:
		for _, m := range r.Members {
			if err := Walk(m, fn); err != nil {
				return err
			}
		}
	case Error:
		return Walk(r.Value, fn)
	case Repeat:
		return Walk(r.Value, fn)
	}

	return nil
}

// Symbols returns the names of all symbols referenced anywhere in the
// rule tree, in traversal order. Duplicates are preserved.
func Symbols(rule Rule) []string {
	var names []string
	Walk(rule, func(r Rule) error {
		if sym, ok := r.(Symbol); ok {
			names = append(names, sym.Name)
		}
		return nil
	})
	return names
}
