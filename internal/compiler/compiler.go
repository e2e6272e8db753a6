// Package compiler lowers a parsed Program into the IR the interpreter
// walks, consulting the type checker as it goes.
package compiler

import (
	"github.com/ky0422/sanetaka/internal/ast"
	"github.com/ky0422/sanetaka/internal/checker"
	"github.com/ky0422/sanetaka/internal/ir"
	"github.com/ky0422/sanetaka/internal/scope"
	"github.com/ky0422/sanetaka/internal/token"
)

// Compiler owns the top-level declared-identifier and custom-alias scopes
// for one program. Each statement it compiles extends these scopes in
// place, so later top-level statements see earlier ones' bindings.
type Compiler struct {
	declared *scope.Types
	customs  *scope.Types
}

// New creates a Compiler with empty top-level scopes.
func New() *Compiler {
	return &Compiler{declared: scope.New(), customs: scope.New()}
}

// Compile lowers every top-level statement of program into an IR
// instruction, stopping at the first error.
func (c *Compiler) Compile(program *ast.Program) ([]ir.Instruction, *checker.Error) {
	instructions := make([]ir.Instruction, 0, len(program.Statements))
	for _, stmt := range program.Statements {
		instr, err := compileStatement(stmt, c.declared, c.customs)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, instr)
	}
	return instructions, nil
}

func compileStatement(stmt ast.Statement, declared, customs *scope.Types) (ir.Instruction, *checker.Error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		declaredType, err := checker.Resolve(s.DeclaredType, customs, s.Pos())
		if err != nil {
			return ir.Instruction{}, err
		}
		valueType, err := checker.TypeOf(s.Value, declared, customs, declaredType)
		if err != nil {
			return ir.Instruction{}, err
		}
		if !declaredType.Equals(valueType) {
			return ir.Instruction{}, expectedDataType(s.Pos(), declaredType.String(), valueType.String())
		}
		value, err := compileExpression(s.Value, declared, customs, declaredType)
		if err != nil {
			return ir.Instruction{}, err
		}
		declared.Set(s.Name, declaredType)
		return ir.Instruction{Kind: ir.StoreName{Name: s.Name, Value: value}, Pos: s.Pos()}, nil

	case *ast.AutoStatement:
		valueType, err := checker.TypeOf(s.Value, declared, customs, nil)
		if err != nil {
			return ir.Instruction{}, err
		}
		value, err := compileExpression(s.Value, declared, customs, nil)
		if err != nil {
			return ir.Instruction{}, err
		}
		declared.Set(s.Name, valueType)
		return ir.Instruction{Kind: ir.StoreName{Name: s.Name, Value: value}, Pos: s.Pos()}, nil

	case *ast.ReturnStatement:
		if _, err := checker.TypeOf(s.Value, declared, customs, nil); err != nil {
			return ir.Instruction{}, err
		}
		value, err := compileExpression(s.Value, declared, customs, nil)
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.Instruction{Kind: ir.Return{Value: value}, Pos: s.Pos()}, nil

	case *ast.TypeStatement:
		resolved, err := checker.Resolve(s.DataType, customs, s.Pos())
		if err != nil {
			return ir.Instruction{}, err
		}
		customs.Set(s.Name, resolved)
		return ir.Instruction{Kind: ir.None{}, Pos: s.Pos()}, nil

	case *ast.DeclareStatement:
		resolved, err := checker.Resolve(s.DataType, customs, s.Pos())
		if err != nil {
			return ir.Instruction{}, err
		}
		declared.Set(s.Name, resolved)
		return ir.Instruction{Kind: ir.None{}, Pos: s.Pos()}, nil

	case *ast.ExpressionStatement:
		if _, err := checker.TypeOf(s.Expr, declared, customs, nil); err != nil {
			return ir.Instruction{}, err
		}
		value, err := compileExpression(s.Expr, declared, customs, nil)
		if err != nil {
			return ir.Instruction{}, err
		}
		return ir.Instruction{Kind: ir.ExpressionStmt{Value: value}, Pos: s.Pos()}, nil

	case *ast.StructStatement:
		return ir.Instruction{}, unsupported(s.Pos(), "struct declarations")
	}

	return ir.Instruction{}, unsupported(stmt.Pos(), "statement")
}

// compileBlockInstructions lowers a block's statements into IR instructions
// under a fresh child scope, so bindings made inside the block never leak
// to its caller's scope.
func compileBlockInstructions(block *ast.BlockExpression, declared, customs *scope.Types) ([]ir.Instruction, *checker.Error) {
	localDeclared := scope.Enclose(declared)
	localCustoms := scope.Enclose(customs)

	instructions := make([]ir.Instruction, 0, len(block.Statements))
	for _, stmt := range block.Statements {
		instr, err := compileStatement(stmt, localDeclared, localCustoms)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, instr)
	}
	return instructions, nil
}

// compileExpression derives expr's type under context (the redundancy
// pass the compiler performs alongside lowering) and then lowers it to
// an IR expression.
func compileExpression(expr ast.Expression, declared, customs *scope.Types, context ast.DataType) (ir.Expression, *checker.Error) {
	dt, err := checker.TypeOf(expr, declared, customs, context)
	if err != nil {
		return nil, err
	}

	switch e := expr.(type) {
	case *ast.Identifier:
		return ir.Identifier{Name: e.Value, P: e.Pos()}, nil
	case *ast.NumberLiteral:
		return ir.NumberLiteral{Value: e.Value, P: e.Pos()}, nil
	case *ast.StringLiteral:
		return ir.StringLiteral{Value: e.Value, P: e.Pos()}, nil
	case *ast.BooleanLiteral:
		return ir.BooleanLiteral{Value: e.Value, P: e.Pos()}, nil
	case *ast.ArrayLiteral:
		arrType := dt.(ast.ArrayType)
		elements := make([]ir.Expression, len(e.Elements))
		for i, el := range e.Elements {
			ee, err := compileExpression(el, declared, customs, arrType.Elem)
			if err != nil {
				return nil, err
			}
			elements[i] = ee
		}
		return ir.ArrayLiteral{Elements: elements, P: e.Pos()}, nil
	case *ast.FunctionLiteral:
		return compileFunctionLiteral(e, declared, customs)
	case *ast.BlockExpression:
		instructions, err := compileBlockInstructions(e, declared, customs)
		if err != nil {
			return nil, err
		}
		return ir.Block{Instructions: instructions, P: e.Pos()}, nil
	case *ast.IfExpression:
		return compileIf(e, declared, customs)
	case *ast.CallExpression:
		return compileCall(e, declared, customs)
	case *ast.IndexExpression:
		left, err := compileExpression(e.Left, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		idx, err := compileExpression(e.Index, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		return ir.Index{Left: left, Idx: idx, P: e.Pos()}, nil
	case *ast.PrefixExpression:
		right, err := compileExpression(e.Right, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		return ir.Prefix{Op: e.Operator, Expr: right, P: e.Pos()}, nil
	case *ast.InfixExpression:
		left, err := compileExpression(e.Left, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		right, err := compileExpression(e.Right, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		return ir.Infix{Left: left, Op: e.Operator, Right: right, P: e.Pos()}, nil
	case *ast.TypeofExpression:
		innerType, err := checker.TypeOf(e.Expr, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		return ir.StringLiteral{Value: innerType.String(), P: e.Pos()}, nil
	}

	return nil, unsupported(expr.Pos(), "expression")
}

func compileFunctionLiteral(e *ast.FunctionLiteral, declared, customs *scope.Types) (ir.Expression, *checker.Error) {
	childDeclared := scope.Enclose(declared)
	params := make([]ir.Param, len(e.Parameters))
	spreadSeen := false

	for i, p := range e.Parameters {
		if spreadSeen {
			return nil, &checker.Error{Kind: checker.SpreadParameterMustBeLast, Message: "a spread parameter may only appear as the last parameter", Pos: e.Pos()}
		}
		resolved, err := checker.Resolve(p.Type, customs, e.Pos())
		if err != nil {
			return nil, err
		}
		bodyType := resolved
		if p.Spread {
			spreadSeen = true
			bodyType = ast.ArrayType{Elem: resolved}
		}
		childDeclared.Set(p.Name, bodyType)
		params[i] = ir.Param{Name: p.Name, Type: bodyType, Spread: p.Spread}
	}

	returnType, err := checker.Resolve(e.ReturnType, customs, e.Pos())
	if err != nil {
		return nil, err
	}

	body, err := compileBlockInstructions(e.Body, childDeclared, customs)
	if err != nil {
		return nil, err
	}

	return &ir.Function{Parameters: params, Body: body, ReturnType: returnType, P: e.Pos()}, nil
}

func compileIf(e *ast.IfExpression, declared, customs *scope.Types) (ir.Expression, *checker.Error) {
	cond, err := compileExpression(e.Condition, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	cons, err := compileExpression(e.Consequence, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	var alt ir.Expression
	if e.Alternative != nil {
		alt, err = compileExpression(e.Alternative, declared, customs, nil)
		if err != nil {
			return nil, err
		}
	}
	return ir.If{Cond: cond, Cons: cons, Alt: alt, P: e.Pos()}, nil
}

// compileCall lowers a call expression, bundling every argument from the
// callee's spread parameter (if any) onward into a single IR array literal,
// so the interpreter never needs to special-case spread binding at call
// time — it only ever zips one argument expression per parameter.
func compileCall(e *ast.CallExpression, declared, customs *scope.Types) (ir.Expression, *checker.Error) {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		if _, found := declared.Get(ident.Value); !found {
			if _, isBuiltin := checker.BuiltinReturnTypes[ident.Value]; isBuiltin {
				return compileBuiltinCall(e, ident, declared, customs)
			}
		}
	}

	callee, err := compileExpression(e.Callee, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	calleeType, err := checker.TypeOf(e.Callee, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	fnType, ok := calleeType.(ast.FnType)
	if !ok {
		return nil, &checker.Error{Kind: checker.NotCallable, Message: calleeType.String() + " is not callable", Pos: e.Pos()}
	}

	params := fnType.Fn.Params
	spreadIdx := -1
	for i, p := range params {
		if p.Spread {
			spreadIdx = i
			break
		}
	}

	var args []ir.Expression
	if spreadIdx == -1 {
		args = make([]ir.Expression, len(e.Arguments))
		for i, a := range e.Arguments {
			ae, err := compileExpression(a, declared, customs, params[i].Type)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
	} else {
		args = make([]ir.Expression, spreadIdx+1)
		for i := 0; i < spreadIdx; i++ {
			ae, err := compileExpression(e.Arguments[i], declared, customs, params[i].Type)
			if err != nil {
				return nil, err
			}
			args[i] = ae
		}
		elemType := params[spreadIdx].Type
		rest := make([]ir.Expression, 0, len(e.Arguments)-spreadIdx)
		for i := spreadIdx; i < len(e.Arguments); i++ {
			ae, err := compileExpression(e.Arguments[i], declared, customs, elemType)
			if err != nil {
				return nil, err
			}
			rest = append(rest, ae)
		}
		args[spreadIdx] = ir.ArrayLiteral{Elements: rest, P: e.Pos()}
	}

	return ir.Call{Callee: callee, Args: args, P: e.Pos()}, nil
}

// compileBuiltinCall lowers a call whose callee is a bare identifier naming
// a builtin: unlike an ordinary call, a builtin has no declared FnType and
// no fixed arity, so each argument is compiled with no expected type and
// the callee lowers to a plain identifier the interpreter resolves by an
// ordinary environment lookup, finding the builtin pre-bound in its global
// environment unless a user binding of the same name is found first.
func compileBuiltinCall(e *ast.CallExpression, callee *ast.Identifier, declared, customs *scope.Types) (ir.Expression, *checker.Error) {
	args := make([]ir.Expression, len(e.Arguments))
	for i, a := range e.Arguments {
		ae, err := compileExpression(a, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		args[i] = ae
	}
	return ir.Call{Callee: ir.Identifier{Name: callee.Value, P: callee.Pos()}, Args: args, P: e.Pos()}, nil
}

func expectedDataType(pos token.Position, expected, got string) *checker.Error {
	return &checker.Error{Kind: checker.ExpectedDataType, Message: "expected " + expected + ", got " + got, Pos: pos}
}

func unsupported(pos token.Position, what string) *checker.Error {
	return &checker.Error{Kind: checker.Unsupported, Message: what + " is not supported", Pos: pos}
}
