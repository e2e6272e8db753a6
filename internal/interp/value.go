// Package interp is the tree-walking evaluator for the IR the compiler
// produces, including its runtime value system, lexically scoped
// environments, and built-in function registry.
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ky0422/sanetaka/internal/ir"
)

// Value is a runtime value. All concrete runtime types implement it.
type Value interface {
	Type() string
	String() string
}

// NumberValue is a 64-bit float value.
type NumberValue struct {
	Value float64
}

func (v NumberValue) Type() string { return "number" }
func (v NumberValue) String() string {
	return strconv.FormatFloat(v.Value, 'g', -1, 64)
}

// StringValue is a string value.
type StringValue struct {
	Value string
}

func (v StringValue) Type() string   { return "string" }
func (v StringValue) String() string { return v.Value }

// BooleanValue is a true/false value.
type BooleanValue struct {
	Value bool
}

func (v BooleanValue) Type() string   { return "boolean" }
func (v BooleanValue) String() string { return strconv.FormatBool(v.Value) }

// ArrayValue is an ordered, fixed-length sequence of elements.
type ArrayValue struct {
	Elements []Value
}

func (v ArrayValue) Type() string { return "array" }
func (v ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FunctionValue is a closure: the lowered function together with the
// environment in effect where the function literal was evaluated. Env is
// set when the closure is created and shared, not copied, so bindings later
// stored into that frame are visible to the closure; each call builds a
// fresh child of it.
type FunctionValue struct {
	Fn  *ir.Function
	Env *Environment
}

func (v *FunctionValue) Type() string   { return "function" }
func (v *FunctionValue) String() string { return fmt.Sprintf("fn(...) -> %s", v.Fn.ReturnType.String()) }

// BuiltinValue is a host function exposed to sanetaka programs.
type BuiltinValue struct {
	Name string
	Fn   func(args []Value) Value
}

func (v *BuiltinValue) Type() string   { return "builtin" }
func (v *BuiltinValue) String() string { return "builtin:" + v.Name }
