// Package flowerr defines the error taxonomy shared by the parser,
// transform and execution engine.
package flowerr

import (
	"errors"
	"fmt"
)

// Kind discriminates which stage of the pipeline raised the error.
type Kind int

const (
	ParseError Kind = iota
	TransformError
	ExecutionError
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case TransformError:
		return "TransformError"
	case ExecutionError:
		return "ExecutionError"
	default:
		return "UnknownError"
	}
}

// Error carries a stage-tagged message and an optional source position.
// Position is only meaningful for ParseError; transform and execution
// errors name the node instead.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
	Err     error // wrapped cause, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 || e.Column > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Parse builds a ParseError with a source position.
func Parse(line, column int, format string, args ...any) *Error {
	return &Error{Kind: ParseError, Message: fmt.Sprintf(format, args...), Line: line, Column: column}
}

// Transform builds a TransformError (no source position is tracked past
// the parse stage).
func Transform(format string, args ...any) *Error {
	return &Error{Kind: TransformError, Message: fmt.Sprintf(format, args...)}
}

// Execution builds an ExecutionError, optionally wrapping a cause (e.g. one
// raised by a task resolver or the expression evaluator).
func Execution(cause error, format string, args ...any) *Error {
	return &Error{Kind: ExecutionError, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Is reports whether err is a flowerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var fe *Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Kind == kind
}
