package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Type categorizes an error encountered while handling a grammar
// description.
type Type string

const (
	TypeSyntax          Type = "syntax"            // malformed JSON/YAML document
	TypeStructural      Type = "structural"        // value is not the expected container or field shape
	TypeUnknownRuleType Type = "unknown_rule_type" // unrecognized rule type discriminator
	TypeSemantic        Type = "semantic"          // reference or reachability problem in a built grammar
	TypeIO              Type = "io"                // file access error
)

// Error is a build or validation error with the structural path at which
// it was detected and an optional suggested fix.
type Error struct {
	Type       Type   // Category of error
	Message    string // Error message
	Path       string // Structural path, e.g. "rules.expression.members[2]"
	RuleType   string // Offending type discriminator, set for TypeUnknownRuleType
	Suggestion string // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Path != "" {
		sb.WriteString(fmt.Sprintf("\n  --> %s", e.Path))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Is makes errors.Is match on category: two *Error values match when
// their Types are equal. This lets callers test for a class of failure
// without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// New creates an error with the given category, path, and message.
func New(errType Type, path, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Path:    path,
	}
}

// Newf creates an error with a formatted message.
func Newf(errType Type, path, format string, args ...any) *Error {
	return New(errType, path, fmt.Sprintf(format, args...))
}

// IsType reports whether err is (or wraps) an *Error of the given
// category.
func IsType(err error, errType Type) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// AsError extracts the *Error from err, or nil if err carries none.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
