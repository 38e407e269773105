package errors

import (
	"fmt"
	"strings"
)

// ErrorList accumulates multiple errors. It is used by the validator,
// which reports every finding in one pass. The builder never aggregates:
// a build fails on the first violation.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType Type, path, message string) {
	el.Add(New(errType, path, message))
}

// AddErrorWithSuggestion creates and adds a new error with a suggestion.
func (el *ErrorList) AddErrorWithSuggestion(errType Type, path, message, suggestion string) {
	err := New(errType, path, message)
	err.Suggestion = suggestion
	el.Add(err)
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface, formatting all errors.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("found %d error(s):\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("\nerror %d:\n%s\n", i+1, err.Error()))
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns all errors of the given category.
func (el *ErrorList) ByType(errType Type) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}
