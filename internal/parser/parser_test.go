package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ky0422/sanetaka/internal/ast"
	"github.com/ky0422/sanetaka/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, program.Errors, "unexpected parse errors: %v", program.Errors)
	return program
}

func TestParseLetStatement(t *testing.T) {
	program := parseProgram(t, `let x: number = 2 + 3;`)
	require.Len(t, program.Statements, 1)

	let, ok := program.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	require.Equal(t, "x", let.Name)
	require.Equal(t, ast.NumberType{}, let.DeclaredType)

	infix, ok := let.Value.(*ast.InfixExpression)
	require.True(t, ok)
	require.Equal(t, "+", infix.Operator)
}

func TestParseAutoStatement(t *testing.T) {
	program := parseProgram(t, `auto x = "hi";`)
	require.Len(t, program.Statements, 1)

	auto, ok := program.Statements[0].(*ast.AutoStatement)
	require.True(t, ok)
	require.Equal(t, "x", auto.Name)
	str, ok := auto.Value.(*ast.StringLiteral)
	require.True(t, ok)
	require.Equal(t, "hi", str.Value)
}

func TestParseTypeAndDeclareStatements(t *testing.T) {
	program := parseProgram(t, "type N = number;\ndeclare console: object;")
	require.Len(t, program.Statements, 2)

	typeStmt, ok := program.Statements[0].(*ast.TypeStatement)
	require.True(t, ok)
	require.Equal(t, "N", typeStmt.Name)
	require.Equal(t, ast.NumberType{}, typeStmt.DataType)

	decl, ok := program.Statements[1].(*ast.DeclareStatement)
	require.True(t, ok)
	require.Equal(t, "console", decl.Name)
	require.Equal(t, ast.ObjectType{}, decl.DataType)
}

func TestParseArrayLiteralAndType(t *testing.T) {
	program := parseProgram(t, `let a: number[] = [1, 2, 3];`)
	let := program.Statements[0].(*ast.LetStatement)
	require.Equal(t, ast.ArrayType{Elem: ast.NumberType{}}, let.DeclaredType)

	arr, ok := let.Value.(*ast.ArrayLiteral)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
}

func TestParseFunctionLiteral(t *testing.T) {
	program := parseProgram(t, `auto f = fn(a: number, b: number) -> number { return a + b; };`)
	auto := program.Statements[0].(*ast.AutoStatement)
	fn, ok := auto.Value.(*ast.FunctionLiteral)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 2)
	require.Equal(t, "a", fn.Parameters[0].Name)
	require.Equal(t, ast.NumberType{}, fn.ReturnType)
	require.Len(t, fn.Body.Statements, 1)
}

func TestParseSpreadParameter(t *testing.T) {
	program := parseProgram(t, `auto f = fn(...xs: number) -> number { return xs[0]; };`)
	auto := program.Statements[0].(*ast.AutoStatement)
	fn := auto.Value.(*ast.FunctionLiteral)
	require.Len(t, fn.Parameters, 1)
	require.True(t, fn.Parameters[0].Spread)
}

func TestParseFunctionTypeGrammar(t *testing.T) {
	program := parseProgram(t, `declare apply: fn(...number, string) -> boolean;`)
	decl := program.Statements[0].(*ast.DeclareStatement)
	fnType, ok := decl.DataType.(ast.FnType)
	require.True(t, ok)
	require.Len(t, fnType.Fn.Params, 2)
	require.True(t, fnType.Fn.Params[0].Spread)
	require.Equal(t, ast.BooleanType{}, fnType.Fn.Return)
}

func TestParseGenericTypeApplication(t *testing.T) {
	program := parseProgram(t, `declare box: Box<number>;`)
	decl := program.Statements[0].(*ast.DeclareStatement)
	g, ok := decl.DataType.(ast.GenericType)
	require.True(t, ok)
	require.Equal(t, "Box", g.Base)
	require.Len(t, g.Args, 1)
}

func TestParseIfExpression(t *testing.T) {
	program := parseProgram(t, `auto x = if (true) { 1; } else { 2; };`)
	auto := program.Statements[0].(*ast.AutoStatement)
	ifExpr, ok := auto.Value.(*ast.IfExpression)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Alternative)
}

func TestParseCallAndIndexExpressions(t *testing.T) {
	program := parseProgram(t, `auto x = f(1, 2)[0];`)
	auto := program.Statements[0].(*ast.AutoStatement)
	idx, ok := auto.Value.(*ast.IndexExpression)
	require.True(t, ok)
	call, ok := idx.Left.(*ast.CallExpression)
	require.True(t, ok)
	require.Len(t, call.Arguments, 2)
}

func TestParseMissingSemicolonIsError(t *testing.T) {
	p := New(lexer.New(`let x: number = 1`))
	program := p.ParseProgram()
	require.NotEmpty(t, program.Errors)
	require.Empty(t, program.Statements)
}

func TestParseTypeofExpression(t *testing.T) {
	program := parseProgram(t, `auto t = typeof(1);`)
	auto := program.Statements[0].(*ast.AutoStatement)
	_, ok := auto.Value.(*ast.TypeofExpression)
	require.True(t, ok)
}
