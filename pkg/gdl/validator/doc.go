// Package validator checks built grammars for problems the builder
// cannot see.
//
// The builder in package parser guarantees shape: every node is a
// recognized variant with its required fields. The validator checks the
// grammar as a whole:
//
//   - structural pass: the grammar has a name, defines at least one
//     rule, and rule names are non-empty and unique
//   - semantic pass: every Symbol reference resolves to a defined rule
//     (with a typo suggestion when a defined name is close)
//
// Warnings reports rules unreachable from the start rule. Unreachable
// rules are dead weight, not errors; the lint command's strict mode
// promotes them.
//
// Validation accumulates every finding of a pass into an
// errors.ErrorList, unlike the builder, which fails on the first
// violation.
package validator
