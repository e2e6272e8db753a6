package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ky0422/sanetaka/internal/ast"
	"github.com/ky0422/sanetaka/internal/ir"
	"github.com/ky0422/sanetaka/internal/lexer"
	"github.com/ky0422/sanetaka/internal/parser"
)

func compileSource(t *testing.T, input string) ([]ir.Instruction, *Compiler) {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, program.Errors, "unexpected parse errors: %v", program.Errors)
	c := New()
	instrs, err := c.Compile(program)
	require.Nil(t, err, "unexpected compile error: %v", err)
	return instrs, c
}

func TestCompileLetStatement(t *testing.T) {
	instrs, _ := compileSource(t, `let x: number = 2 + 3;`)
	require.Len(t, instrs, 1)
	store, ok := instrs[0].Kind.(ir.StoreName)
	require.True(t, ok)
	require.Equal(t, "x", store.Name)
	infix, ok := store.Value.(ir.Infix)
	require.True(t, ok)
	require.Equal(t, "+", infix.Op)
}

func TestCompileLetTypeMismatchIsError(t *testing.T) {
	p := parser.New(lexer.New(`let x: string = 1;`))
	program := p.ParseProgram()
	require.Empty(t, program.Errors)
	c := New()
	_, err := c.Compile(program)
	require.NotNil(t, err)
}

func TestCompileAutoStatement(t *testing.T) {
	instrs, c := compileSource(t, `auto x = "hi";`)
	require.Len(t, instrs, 1)
	dt, ok := c.declared.Get("x")
	require.True(t, ok)
	require.Equal(t, ast.StringType{}, dt)
}

func TestCompileTypeAndDeclareAreErased(t *testing.T) {
	instrs, _ := compileSource(t, "type N = number;\ndeclare console: object;")
	require.Len(t, instrs, 2)
	_, ok := instrs[0].Kind.(ir.None)
	require.True(t, ok)
	_, ok = instrs[1].Kind.(ir.None)
	require.True(t, ok)
}

func TestCompileFunctionLiteralAndCall(t *testing.T) {
	instrs, _ := compileSource(t, `
auto add = fn(a: number, b: number) -> number { return a + b; };
auto r = add(1, 2);
`)
	require.Len(t, instrs, 2)
	fnStore := instrs[0].Kind.(ir.StoreName)
	fn, ok := fnStore.Value.(*ir.Function)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 2)
	require.Len(t, fn.Body, 1)

	callStore := instrs[1].Kind.(ir.StoreName)
	call, ok := callStore.Value.(ir.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
}

func TestCompileSpreadCallBundlesTrailingArgs(t *testing.T) {
	instrs, _ := compileSource(t, `
auto sum = fn(...xs: number) -> number { return xs[0]; };
auto r = sum(1, 2, 3);
`)
	callStore := instrs[1].Kind.(ir.StoreName)
	call := callStore.Value.(ir.Call)
	require.Len(t, call.Args, 1)
	arr, ok := call.Args[0].(ir.ArrayLiteral)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
}

func TestCompileSpreadNotLastIsError(t *testing.T) {
	p := parser.New(lexer.New(`auto f = fn(...xs: number, y: number) -> number { return y; };`))
	program := p.ParseProgram()
	require.Empty(t, program.Errors)
	c := New()
	_, err := c.Compile(program)
	require.NotNil(t, err)
}

func TestCompileIfExpression(t *testing.T) {
	instrs, _ := compileSource(t, `auto x = if (true) { 1; } else { 2; };`)
	store := instrs[0].Kind.(ir.StoreName)
	ifExpr, ok := store.Value.(ir.If)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Alt)
}

func TestCompileTypeofLowersToStringLiteral(t *testing.T) {
	instrs, _ := compileSource(t, `auto t = typeof(1);`)
	store := instrs[0].Kind.(ir.StoreName)
	str, ok := store.Value.(ir.StringLiteral)
	require.True(t, ok)
	require.Equal(t, "number", str.Value)
}

func TestCompileBuiltinCallLowersToIdentifierCall(t *testing.T) {
	instrs, _ := compileSource(t, `auto r = print(1, "two", true);`)
	store := instrs[0].Kind.(ir.StoreName)
	call, ok := store.Value.(ir.Call)
	require.True(t, ok)
	ident, ok := call.Callee.(ir.Identifier)
	require.True(t, ok)
	require.Equal(t, "print", ident.Name)
	require.Len(t, call.Args, 3)
}

func TestCompileUndefinedBareCallIsError(t *testing.T) {
	p := parser.New(lexer.New(`auto r = nope(1);`))
	program := p.ParseProgram()
	require.Empty(t, program.Errors)
	c := New()
	_, err := c.Compile(program)
	require.NotNil(t, err)
}

func TestCompileStructStatementIsUnsupported(t *testing.T) {
	c := New()
	program := &ast.Program{Statements: []ast.Statement{&ast.StructStatement{}}}
	_, err := c.Compile(program)
	require.NotNil(t, err)
}
