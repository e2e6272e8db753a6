// Package checker implements a pure function from an AST expression plus
// two read-only scopes to its DataType, or a typed error.
package checker

import (
	"github.com/ky0422/sanetaka/internal/ast"
	"github.com/ky0422/sanetaka/internal/scope"
	"github.com/ky0422/sanetaka/internal/token"
)

// Resolve replaces every Custom(name) reachable inside dt with its target
// from customs, recursively. Resolve never mutates customs; it only reads
// it.
func Resolve(dt ast.DataType, customs *scope.Types, pos token.Position) (ast.DataType, *Error) {
	switch t := dt.(type) {
	case ast.CustomType:
		target, ok := customs.Get(t.Name)
		if !ok {
			return nil, errUndefinedType(pos, t.Name)
		}
		return Resolve(target, customs, pos)
	case ast.ArrayType:
		elem, err := Resolve(t.Elem, customs, pos)
		if err != nil {
			return nil, err
		}
		return ast.ArrayType{Elem: elem}, nil
	case ast.FnType:
		params := make([]ast.Param, len(t.Fn.Params))
		for i, p := range t.Fn.Params {
			if p.Spread && i != len(t.Fn.Params)-1 {
				return nil, errSpreadMustBeLast(pos)
			}
			pt, err := Resolve(p.Type, customs, pos)
			if err != nil {
				return nil, err
			}
			params[i] = ast.Param{Type: pt, Spread: p.Spread}
		}
		var ret ast.DataType
		if t.Fn.Return != nil {
			r, err := Resolve(t.Fn.Return, customs, pos)
			if err != nil {
				return nil, err
			}
			ret = r
		}
		return ast.FnType{Fn: ast.FunctionType{Generics: t.Fn.Generics, Params: params, Return: ret}}, nil
	case ast.GenericType:
		args := make([]ast.DataType, len(t.Args))
		for i, a := range t.Args {
			ra, err := Resolve(a, customs, pos)
			if err != nil {
				return nil, err
			}
			args[i] = ra
		}
		return ast.GenericType{Base: t.Base, Args: args}, nil
	default:
		return dt, nil
	}
}

// TypeOf derives the DataType of expr under the given declared-identifier
// and custom-alias scopes. context, when non-nil, is the type the caller
// expects expr to produce (used by array/function literal inference and by
// alias resolution of the context itself before checking).
func TypeOf(expr ast.Expression, declared, customs *scope.Types, context ast.DataType) (ast.DataType, *Error) {
	if context != nil {
		resolved, err := Resolve(context, customs, expr.Pos())
		if err != nil {
			return nil, err
		}
		context = resolved
	}

	switch e := expr.(type) {
	case *ast.Identifier:
		return typeOfIdentifier(e, declared)
	case *ast.NumberLiteral:
		return ast.NumberType{}, nil
	case *ast.StringLiteral:
		return ast.StringType{}, nil
	case *ast.BooleanLiteral:
		return ast.BooleanType{}, nil
	case *ast.ArrayLiteral:
		return typeOfArray(e, declared, customs, context)
	case *ast.FunctionLiteral:
		return typeOfFunction(e, declared, customs, context)
	case *ast.BlockExpression:
		return typeOfBlock(e, declared, customs)
	case *ast.IfExpression:
		return typeOfIf(e, declared, customs)
	case *ast.CallExpression:
		return typeOfCall(e, declared, customs)
	case *ast.IndexExpression:
		return typeOfIndex(e, declared, customs)
	case *ast.PrefixExpression:
		return typeOfPrefix(e, declared, customs)
	case *ast.InfixExpression:
		return typeOfInfix(e, declared, customs)
	case *ast.TypeofExpression:
		if _, err := TypeOf(e.Expr, declared, customs, nil); err != nil {
			return nil, err
		}
		return ast.StringType{}, nil
	}

	return nil, newError(Unsupported, expr.Pos(), "unsupported expression %T", expr)
}

func typeOfIdentifier(e *ast.Identifier, declared *scope.Types) (ast.DataType, *Error) {
	dt, ok := declared.Get(e.Value)
	if !ok {
		return nil, errUndefinedIdentifier(e.Pos(), e.Value)
	}
	return dt, nil
}

func typeOfArray(e *ast.ArrayLiteral, declared, customs *scope.Types, context ast.DataType) (ast.DataType, *Error) {
	var elemType ast.DataType = ast.UnknownType{}

	for _, el := range e.Elements {
		t, err := TypeOf(el, declared, customs, nil)
		if err != nil {
			return nil, err
		}
		if _, unknown := elemType.(ast.UnknownType); unknown {
			elemType = t
			continue
		}
		if !elemType.Equals(t) {
			return nil, errExpectedDataType(el.Pos(), elemType.String(), t.String())
		}
	}

	if _, unknown := elemType.(ast.UnknownType); unknown {
		if ctxArr, ok := context.(ast.ArrayType); ok {
			elemType = ctxArr.Elem
		} else {
			return nil, errUnknownArrayType(e.Pos())
		}
	}

	result := ast.ArrayType{Elem: elemType}
	if context != nil && !context.Equals(result) {
		return nil, errExpectedDataType(e.Pos(), context.String(), result.String())
	}
	return result, nil
}

func typeOfFunction(e *ast.FunctionLiteral, declared, customs *scope.Types, context ast.DataType) (ast.DataType, *Error) {
	childDeclared := scope.Enclose(declared)
	params := make([]ast.Param, len(e.Parameters))

	for i, p := range e.Parameters {
		resolved, err := Resolve(p.Type, customs, e.Pos())
		if err != nil {
			return nil, err
		}
		params[i] = ast.Param{Type: resolved, Spread: p.Spread}

		bodyType := resolved
		if p.Spread {
			bodyType = ast.ArrayType{Elem: resolved}
		}
		childDeclared.Set(p.Name, bodyType)
	}

	declaredReturn, err := Resolve(e.ReturnType, customs, e.Pos())
	if err != nil {
		return nil, err
	}

	bodyType, err := typeOfBlock(e.Body, childDeclared, customs)
	if err != nil {
		return nil, err
	}
	if !bodyType.Equals(declaredReturn) {
		return nil, errExpectedDataType(e.Body.Pos(), declaredReturn.String(), bodyType.String())
	}

	result := ast.FnType{Fn: ast.FunctionType{Generics: e.Generics, Params: params, Return: declaredReturn}}
	if context != nil && !context.Equals(result) {
		return nil, errExpectedDataType(e.Pos(), context.String(), result.String())
	}
	return result, nil
}

// typeOfBlock walks a block's statements in its own child scope (never
// mutating the caller's declared/customs), threading Let/Auto/Declare/Type
// bindings statement-by-statement, and returns the block's value type per
// the §4.F rule: the last instruction's expression type if it is a Return or
// a StoreName (Let/Auto), else Boolean. Empty blocks are Boolean.
func typeOfBlock(block *ast.BlockExpression, declared, customs *scope.Types) (ast.DataType, *Error) {
	localDeclared := scope.Enclose(declared)
	localCustoms := scope.Enclose(customs)

	var result ast.DataType = ast.BooleanType{}

	for i, stmt := range block.Statements {
		isLast := i == len(block.Statements)-1

		switch s := stmt.(type) {
		case *ast.LetStatement:
			declaredType, err := Resolve(s.DeclaredType, localCustoms, s.Pos())
			if err != nil {
				return nil, err
			}
			valueType, err := TypeOf(s.Value, localDeclared, localCustoms, declaredType)
			if err != nil {
				return nil, err
			}
			if !declaredType.Equals(valueType) {
				return nil, errExpectedDataType(s.Pos(), declaredType.String(), valueType.String())
			}
			localDeclared.Set(s.Name, declaredType)
			if isLast {
				result = valueType
			}
		case *ast.AutoStatement:
			valueType, err := TypeOf(s.Value, localDeclared, localCustoms, nil)
			if err != nil {
				return nil, err
			}
			localDeclared.Set(s.Name, valueType)
			if isLast {
				result = valueType
			}
		case *ast.ReturnStatement:
			valueType, err := TypeOf(s.Value, localDeclared, localCustoms, nil)
			if err != nil {
				return nil, err
			}
			if isLast {
				result = valueType
			}
		case *ast.TypeStatement:
			resolved, err := Resolve(s.DataType, localCustoms, s.Pos())
			if err != nil {
				return nil, err
			}
			localCustoms.Set(s.Name, resolved)
		case *ast.DeclareStatement:
			resolved, err := Resolve(s.DataType, localCustoms, s.Pos())
			if err != nil {
				return nil, err
			}
			localDeclared.Set(s.Name, resolved)
		case *ast.ExpressionStatement:
			if _, err := TypeOf(s.Expr, localDeclared, localCustoms, nil); err != nil {
				return nil, err
			}
		case *ast.StructStatement:
			return nil, errUnsupported(s.Pos(), "struct declarations")
		}
	}

	return result, nil
}

func typeOfIf(e *ast.IfExpression, declared, customs *scope.Types) (ast.DataType, *Error) {
	condType, err := TypeOf(e.Condition, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	if _, ok := condType.(ast.BooleanType); !ok {
		return nil, errExpectedDataType(e.Condition.Pos(), ast.BooleanType{}.String(), condType.String())
	}

	consType, err := typeOfBlock(e.Consequence, declared, customs)
	if err != nil {
		return nil, err
	}

	var altType ast.DataType = ast.BooleanType{}
	if e.Alternative != nil {
		altType, err = typeOfBlock(e.Alternative, declared, customs)
		if err != nil {
			return nil, err
		}
	}

	if !consType.Equals(altType) {
		return nil, errExpectedDataType(e.Pos(), consType.String(), altType.String())
	}
	return consType, nil
}

// BuiltinReturnTypes records the static return type of each name in the
// builtin registry. A builtin is not an ordinary FnType binding in
// declared, since print accepts any number of arguments of any type; it
// is instead consulted only when a call's callee is a bare identifier
// absent from declared.
var BuiltinReturnTypes = map[string]ast.DataType{
	"print": ast.BooleanType{},
}

func typeOfCall(e *ast.CallExpression, declared, customs *scope.Types) (ast.DataType, *Error) {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		if _, found := declared.Get(ident.Value); !found {
			ret, isBuiltin := BuiltinReturnTypes[ident.Value]
			if !isBuiltin {
				return nil, errUndefinedIdentifier(ident.Pos(), ident.Value)
			}
			for _, arg := range e.Arguments {
				if _, err := TypeOf(arg, declared, customs, nil); err != nil {
					return nil, err
				}
			}
			return ret, nil
		}
	}

	calleeType, err := TypeOf(e.Callee, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	fnType, ok := calleeType.(ast.FnType)
	if !ok {
		return nil, errNotCallable(e.Pos(), calleeType.String())
	}

	params := fnType.Fn.Params
	spreadIdx := -1
	for i, p := range params {
		if p.Spread {
			spreadIdx = i
			break
		}
	}

	if spreadIdx == -1 {
		if len(e.Arguments) != len(params) {
			return nil, errExpectedArguments(e.Pos(), len(params), len(e.Arguments))
		}
		for i, arg := range e.Arguments {
			argType, err := TypeOf(arg, declared, customs, params[i].Type)
			if err != nil {
				return nil, err
			}
			if !argType.Equals(params[i].Type) {
				return nil, errExpectedDataType(arg.Pos(), params[i].Type.String(), argType.String())
			}
		}
		return fnType.Fn.Return, nil
	}

	effectiveCount := spreadIdx + 1
	if len(e.Arguments) < effectiveCount {
		return nil, errExpectedArguments(e.Pos(), effectiveCount, len(e.Arguments))
	}
	for i := 0; i < spreadIdx; i++ {
		argType, err := TypeOf(e.Arguments[i], declared, customs, params[i].Type)
		if err != nil {
			return nil, err
		}
		if !argType.Equals(params[i].Type) {
			return nil, errExpectedDataType(e.Arguments[i].Pos(), params[i].Type.String(), argType.String())
		}
	}
	elemType := params[spreadIdx].Type
	for i := spreadIdx; i < len(e.Arguments); i++ {
		argType, err := TypeOf(e.Arguments[i], declared, customs, elemType)
		if err != nil {
			return nil, err
		}
		if !argType.Equals(elemType) {
			return nil, errExpectedDataType(e.Arguments[i].Pos(), elemType.String(), argType.String())
		}
	}
	return fnType.Fn.Return, nil
}

func typeOfIndex(e *ast.IndexExpression, declared, customs *scope.Types) (ast.DataType, *Error) {
	leftType, err := TypeOf(e.Left, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	arrType, ok := leftType.(ast.ArrayType)
	if !ok {
		return nil, errNotIndexable(e.Pos(), leftType.String())
	}
	idxType, err := TypeOf(e.Index, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	if _, ok := idxType.(ast.NumberType); !ok {
		return nil, errExpectedDataType(e.Index.Pos(), ast.NumberType{}.String(), idxType.String())
	}
	return arrType.Elem, nil
}

func typeOfPrefix(e *ast.PrefixExpression, declared, customs *scope.Types) (ast.DataType, *Error) {
	operandType, err := TypeOf(e.Right, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		if _, ok := operandType.(ast.NumberType); !ok {
			return nil, errExpectedDataType(e.Pos(), ast.NumberType{}.String(), operandType.String())
		}
		return ast.NumberType{}, nil
	case "!":
		if _, ok := operandType.(ast.BooleanType); !ok {
			return nil, errExpectedDataType(e.Pos(), ast.BooleanType{}.String(), operandType.String())
		}
		return ast.BooleanType{}, nil
	}
	return operandType, nil
}

var comparisonOperators = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

func typeOfInfix(e *ast.InfixExpression, declared, customs *scope.Types) (ast.DataType, *Error) {
	leftType, err := TypeOf(e.Left, declared, customs, nil)
	if err != nil {
		return nil, err
	}
	rightType, err := TypeOf(e.Right, declared, customs, nil)
	if err != nil {
		return nil, err
	}

	if comparisonOperators[e.Operator] {
		if !leftType.Equals(rightType) {
			return nil, errExpectedDataType(e.Pos(), leftType.String(), rightType.String())
		}
		return ast.BooleanType{}, nil
	}

	// Arithmetic: +, -, *, /, %. Only Number is accepted here even though
	// the interpreter additionally accepts string "+" concatenation at
	// runtime, reachable only from IR that was not produced by the
	// compiler (which runs this checker on every expression).
	if _, ok := leftType.(ast.NumberType); !ok {
		return nil, errExpectedDataType(e.Pos(), ast.NumberType{}.String(), leftType.String())
	}
	if _, ok := rightType.(ast.NumberType); !ok {
		return nil, errExpectedDataType(e.Pos(), ast.NumberType{}.String(), rightType.String())
	}
	return ast.NumberType{}, nil
}
