package interp

import (
	"fmt"
	"io"
	"strings"
)

// registerBuiltins returns the fixed built-in registry: host functions
// that appear pre-bound in every program's global environment.
func registerBuiltins(output io.Writer) map[string]Value {
	return map[string]Value{
		"print": &BuiltinValue{Name: "print", Fn: builtinPrint(output)},
	}
}

// builtinPrint writes every argument's display form, space-separated,
// followed by a newline, and always returns false.
func builtinPrint(output io.Writer) func(args []Value) Value {
	return func(args []Value) Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		fmt.Fprintln(output, strings.Join(parts, " "))
		return BooleanValue{Value: false}
	}
}
