package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ky0422/sanetaka/internal/compiler"
	"github.com/ky0422/sanetaka/internal/lexer"
	"github.com/ky0422/sanetaka/internal/parser"
)

func compileAndRun(t *testing.T, source string) (Value, *bytes.Buffer) {
	t.Helper()
	p := parser.New(lexer.New(source))
	program := p.ParseProgram()
	require.Empty(t, program.Errors, "unexpected parse errors: %v", program.Errors)

	instructions, cerr := compiler.New().Compile(program)
	require.Nil(t, cerr, "unexpected compile error: %v", cerr)

	var out bytes.Buffer
	interp := New(&out)
	value, rerr := interp.Run(instructions)
	require.Nil(t, rerr, "unexpected runtime error: %v", rerr)
	return value, &out
}

func TestRunArithmetic(t *testing.T) {
	value, _ := compileAndRun(t, `let x: number = (2 + 3) * 4;`)
	n, ok := value.(NumberValue)
	require.True(t, ok)
	require.Equal(t, 20.0, n.Value)
}

func TestRunStringLiteral(t *testing.T) {
	value, _ := compileAndRun(t, `auto greeting = "hello";`)
	s, ok := value.(StringValue)
	require.True(t, ok)
	require.Equal(t, "hello", s.Value)
}

func TestRunIfExpression(t *testing.T) {
	value, _ := compileAndRun(t, `auto x = if (1 < 2) { return "yes"; } else { return "no"; };`)
	s, ok := value.(StringValue)
	require.True(t, ok)
	require.Equal(t, "yes", s.Value)
}

func TestRunStringComparison(t *testing.T) {
	value, _ := compileAndRun(t, `auto x = "apple" < "banana";`)
	b, ok := value.(BooleanValue)
	require.True(t, ok)
	require.True(t, b.Value)

	value, _ = compileAndRun(t, `auto x = "banana" <= "banana";`)
	b, ok = value.(BooleanValue)
	require.True(t, ok)
	require.True(t, b.Value)

	value, _ = compileAndRun(t, `auto x = "banana" > "apple";`)
	b, ok = value.(BooleanValue)
	require.True(t, ok)
	require.True(t, b.Value)
}

func TestRunFunctionCallAndClosure(t *testing.T) {
	value, _ := compileAndRun(t, `
auto makeAdder = fn(a: number) -> fn(number) -> number {
	return fn(b: number) -> number { return a + b; };
};
auto addFive = makeAdder(5);
auto result = addFive(3);
`)
	n, ok := value.(NumberValue)
	require.True(t, ok)
	require.Equal(t, 8.0, n.Value)
}

func TestRunSpreadFunctionCall(t *testing.T) {
	value, _ := compileAndRun(t, `
auto first = fn(...xs: number) -> number { return xs[0]; };
auto result = first(10, 20, 30);
`)
	n, ok := value.(NumberValue)
	require.True(t, ok)
	require.Equal(t, 10.0, n.Value)
}

func TestRunArrayIndexOutOfBounds(t *testing.T) {
	p := parser.New(lexer.New(`
auto xs = [1, 2, 3];
auto x = xs[5];
`))
	program := p.ParseProgram()
	require.Empty(t, program.Errors)
	instructions, cerr := compiler.New().Compile(program)
	require.Nil(t, cerr)

	var out bytes.Buffer
	interp := New(&out)
	_, rerr := interp.Run(instructions)
	require.NotNil(t, rerr)
	require.Equal(t, IndexOutOfBounds, rerr.Kind)
}

func TestRunPrintBuiltin(t *testing.T) {
	_, out := compileAndRun(t, `auto _ = print("hello", 1, true);`)
	require.Equal(t, "hello 1 true\n", out.String())
}

func TestRunEarlyReturnInsideIf(t *testing.T) {
	value, _ := compileAndRun(t, `
auto abs = fn(n: number) -> number {
	if (n < 0) {
		return -n;
	} else {
		return n;
	};
	return n;
};
auto result = abs(-7);
`)
	n, ok := value.(NumberValue)
	require.True(t, ok)
	require.Equal(t, 7.0, n.Value)
}

func TestRunTypeofAtRuntime(t *testing.T) {
	value, _ := compileAndRun(t, `auto t = typeof([1, 2]);`)
	s, ok := value.(StringValue)
	require.True(t, ok)
	require.Equal(t, "number[]", s.Value)
}

func TestEnvironmentShadowing(t *testing.T) {
	env := NewEnvironment()
	env.Set("x", NumberValue{Value: 1})
	child := Enclose(env)
	child.Set("x", NumberValue{Value: 2})

	childVal, ok := child.Get("x")
	require.True(t, ok)
	require.Equal(t, NumberValue{Value: 2}, childVal)

	parentVal, ok := env.Get("x")
	require.True(t, ok)
	require.Equal(t, NumberValue{Value: 1}, parentVal)
}
