package interp

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/ky0422/sanetaka/internal/compiler"
	"github.com/ky0422/sanetaka/internal/lexer"
	"github.com/ky0422/sanetaka/internal/parser"
)

// runProgram lexes, parses, compiles, and interprets source, returning its
// captured stdout.
func runProgram(t *testing.T, source string) string {
	t.Helper()
	p := parser.New(lexer.New(source))
	program := p.ParseProgram()
	require.Empty(t, program.Errors, "unexpected parse errors: %v", program.Errors)

	instructions, cerr := compiler.New().Compile(program)
	require.Nil(t, cerr, "unexpected compile error: %v", cerr)

	var out bytes.Buffer
	_, rerr := New(&out).Run(instructions)
	require.Nil(t, rerr, "unexpected runtime error: %v", rerr)
	return out.String()
}

// TestProgramFixtures snapshots the stdout of small, representative
// end-to-end programs: closures, spread parameters, array typing,
// if-branch symmetry, and builtin use.
func TestProgramFixtures(t *testing.T) {
	fixtures := []struct {
		name   string
		source string
	}{
		{
			name: "closure_captures_enclosing_binding",
			source: `
auto makeAdder = fn(base: number) -> fn(number) -> number {
	return fn(n: number) -> number { return base + n; };
};
auto addTen = makeAdder(10);
auto addHundred = makeAdder(100);
print(addTen(1), addHundred(1));
`,
		},
		{
			name: "spread_sum",
			source: `
auto sum = fn(...xs: number) -> number {
	return xs[0] + xs[1] + xs[2];
};
print(sum(1, 2, 3));
`,
		},
		{
			name: "array_of_strings",
			source: `
let names: string[] = ["ann", "bo", "cy"];
print(names[0], names[1], names[2]);
`,
		},
		{
			name: "if_branch_symmetry",
			source: `
auto classify = fn(n: number) -> string {
	return if (n < 0) {
		return "negative";
	} else {
		return "non-negative";
	};
};
print(classify(-3), classify(3));
`,
		},
		{
			name: "typeof_builtin",
			source: `
print(typeof(1), typeof("s"), typeof(true), typeof([1]));
`,
		},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			output := runProgram(t, f.source)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", f.name), output)
		})
	}
}
