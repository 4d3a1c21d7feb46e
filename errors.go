package guard

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorBuilder accumulates a validation message together with the structural
// location of the failure. Segments are appended innermost-first while the
// failure propagates out of nested combinators; Render reverses them so the
// outermost container appears first.
//
// An ErrorBuilder belongs to a single validation call. Each failing leaf
// creates its own instance; builders are never shared across calls.
type ErrorBuilder struct {
	msg  string
	path []string // innermost-first
}

// NewError creates a builder with an empty segment list.
func NewError(msg string) *ErrorBuilder { return &ErrorBuilder{msg: msg} }

// Errorf creates a builder from a format string.
func Errorf(format string, args ...any) *ErrorBuilder {
	return &ErrorBuilder{msg: fmt.Sprintf(format, args...)}
}

// ErrIn appends one field-name segment and returns the receiver for chaining.
// Each enclosing structural level calls this exactly once on the propagation
// path of a failure.
func (e *ErrorBuilder) ErrIn(field string) *ErrorBuilder {
	e.path = append(e.path, field)
	return e
}

// ErrAt appends one array/tuple index segment.
func (e *ErrorBuilder) ErrAt(index int) *ErrorBuilder {
	return e.ErrIn(strconv.Itoa(index))
}

// Render produces the final single-line diagnostic, e.g.
// "in messages.0.content: Expected string, got 42". Without segments it
// returns the bare message.
func (e *ErrorBuilder) Render() string {
	if len(e.path) == 0 {
		return e.msg
	}
	parts := make([]string, len(e.path))
	for i, seg := range e.path {
		parts[len(e.path)-1-i] = seg
	}
	return "in " + strings.Join(parts, ".") + ": " + e.msg
}

// Error implements the error interface so builders can cross API boundaries
// that expect a language-native error.
func (e *ErrorBuilder) Error() string { return e.Render() }
