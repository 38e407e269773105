// Package errors defines the error types reported while building and
// validating grammar descriptions.
//
// Every failure is an *Error carrying a category (Type), a message, the
// structural path at which the violation was detected, and an optional
// suggestion. Categories:
//
//   - syntax: the wire document (JSON/YAML) could not be decoded
//   - structural: a value was not the expected container or field shape
//     (rule node not an object, missing type, missing members, grammar
//     name or rules absent or mistyped)
//   - unknown_rule_type: the type discriminator is a string outside the
//     recognized set; RuleType carries the exact offending value
//   - semantic: a validator finding on an already well-formed grammar
//   - io: file access failure
//
// The builder is fail-fast: it returns the first *Error and never
// aggregates. ErrorList exists for the validator, which reports every
// finding of a pass at once.
//
// Use IsType (or errors.Is against an *Error with only Type set) to test
// for a failure class:
//
//	_, err := parser.BuildRule(node)
//	if gdlerrors.IsType(err, gdlerrors.TypeUnknownRuleType) {
//	    offending := gdlerrors.AsError(err).RuleType
//	    ...
//	}
package errors
