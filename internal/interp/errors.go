package interp

import (
	"fmt"

	"github.com/ky0422/sanetaka/internal/token"
)

// RuntimeKind is the closed set of runtime failure kinds: faults only
// observable during evaluation, each reported as
// "<Kind>: <message> at line %d, column %d", same as a type error.
type RuntimeKind int

const (
	UndefinedVariable RuntimeKind = iota
	NotAFunction
	NotAnArray
	IndexOutOfBounds
	InvalidOperator
	InvalidOperands
)

var runtimeKindNames = map[RuntimeKind]string{
	UndefinedVariable: "UndefinedVariable",
	NotAFunction:      "NotAFunction",
	NotAnArray:        "NotAnArray",
	IndexOutOfBounds:  "IndexOutOfBounds",
	InvalidOperator:   "InvalidOperator",
	InvalidOperands:   "InvalidOperands",
}

func (k RuntimeKind) String() string { return runtimeKindNames[k] }

// RuntimeError is a single evaluation failure.
type RuntimeError struct {
	Kind    RuntimeKind
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s at line %d, column %d", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
}

func newRuntimeError(kind RuntimeKind, pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}
