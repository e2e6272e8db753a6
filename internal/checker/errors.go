package checker

import (
	"fmt"

	"github.com/ky0422/sanetaka/internal/token"
)

// Kind is the closed set of type-checking failure kinds.
type Kind int

const (
	ExpectedDataType Kind = iota
	ExpectedArguments
	UndefinedIdentifier
	UndefinedType
	UnknownArrayType
	NotCallable
	NotIndexable
	SpreadParameterMustBeLast
	Unsupported
)

var kindNames = map[Kind]string{
	ExpectedDataType:          "ExpectedDataType",
	ExpectedArguments:         "ExpectedArguments",
	UndefinedIdentifier:       "UndefinedIdentifier",
	UndefinedType:             "UndefinedType",
	UnknownArrayType:          "UnknownArrayType",
	NotCallable:               "NotCallable",
	NotIndexable:              "NotIndexable",
	SpreadParameterMustBeLast: "SpreadParameterMustBeLast",
	Unsupported:               "Unsupported",
}

func (k Kind) String() string { return kindNames[k] }

// Error is a single type-checking failure: a kind, a human-readable message,
// and the position it occurred at. Error() renders
// "<Kind>: <message> at line <l>, column <c>".
type Error struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at line %d, column %d", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
}

func newError(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func errExpectedDataType(pos token.Position, expected, got string) *Error {
	return newError(ExpectedDataType, pos, "expected %s, got %s", expected, got)
}

func errExpectedArguments(pos token.Position, expected, got int) *Error {
	return newError(ExpectedArguments, pos, "expected %d argument(s), got %d", expected, got)
}

func errUndefinedIdentifier(pos token.Position, name string) *Error {
	return newError(UndefinedIdentifier, pos, "undefined identifier %q", name)
}

func errUndefinedType(pos token.Position, name string) *Error {
	return newError(UndefinedType, pos, "undefined type %q", name)
}

func errUnknownArrayType(pos token.Position) *Error {
	return newError(UnknownArrayType, pos, "cannot infer array element type")
}

func errNotCallable(pos token.Position, got string) *Error {
	return newError(NotCallable, pos, "%s is not callable", got)
}

func errNotIndexable(pos token.Position, got string) *Error {
	return newError(NotIndexable, pos, "%s is not indexable", got)
}

func errSpreadMustBeLast(pos token.Position) *Error {
	return newError(SpreadParameterMustBeLast, pos, "a spread parameter may only appear as the last parameter")
}

func errUnsupported(pos token.Position, what string) *Error {
	return newError(Unsupported, pos, "%s is not supported", what)
}
