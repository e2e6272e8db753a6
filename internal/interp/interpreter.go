package interp

import (
	"io"

	"github.com/ky0422/sanetaka/internal/ir"
)

// returnValue is the internal signal a `return` statement produces: it
// carries the returned Value up through any number of enclosing block and
// if-expression evaluations until it reaches the function-call boundary
// that unwraps it.
type returnValue struct {
	Value Value
}

func (r *returnValue) Type() string   { return "return" }
func (r *returnValue) String() string { return r.Value.String() }

// Interpreter walks IR instructions against a chain of Environments,
// evaluating expression-oriented constructs (blocks, if-expressions,
// function calls) to the value each ultimately produces.
type Interpreter struct {
	globals *Environment
	output  io.Writer
}

// New creates an Interpreter with the fixed builtin registry pre-bound in
// its global environment.
func New(output io.Writer) *Interpreter {
	i := &Interpreter{globals: NewEnvironment(), output: output}
	for name, builtin := range registerBuiltins(output) {
		i.globals.Set(name, builtin)
	}
	return i
}

// Run evaluates a compiled program's top-level instructions in the global
// environment and returns the program's final value, following the same
// block-evaluation rule as a function body (see evalBlock): the value of an
// explicit return if one is reached, else the last instruction's value if
// it is a StoreName, else Boolean(false).
func (i *Interpreter) Run(instructions []ir.Instruction) (Value, *RuntimeError) {
	result, err := i.evalBlock(instructions, i.globals)
	if err != nil {
		return nil, err
	}
	if rv, ok := result.(*returnValue); ok {
		return rv.Value, nil
	}
	return result, nil
}

// evalBlock executes instructions in env and returns its block-protocol
// value: the last instruction's value if it is a Return or a StoreName,
// otherwise Boolean(false); an empty instruction list is Boolean(false).
// A `return` anywhere in the sequence short-circuits the remaining
// instructions, propagating a *returnValue upward.
func (i *Interpreter) evalBlock(instructions []ir.Instruction, env *Environment) (Value, *RuntimeError) {
	var result Value = BooleanValue{Value: false}

	for idx, instr := range instructions {
		switch k := instr.Kind.(type) {
		case ir.StoreName:
			v, err := i.evalExpr(k.Value, env)
			if err != nil {
				return nil, err
			}
			if rv, ok := v.(*returnValue); ok {
				return rv, nil
			}
			env.Set(k.Name, v)
			if idx == len(instructions)-1 {
				result = v
			}
		case ir.Return:
			v, err := i.evalExpr(k.Value, env)
			if err != nil {
				return nil, err
			}
			if rv, ok := v.(*returnValue); ok {
				return rv, nil
			}
			return &returnValue{Value: v}, nil
		case ir.ExpressionStmt:
			v, err := i.evalExpr(k.Value, env)
			if err != nil {
				return nil, err
			}
			if rv, ok := v.(*returnValue); ok {
				return rv, nil
			}
		case ir.None:
			// erased `type`/`declare` statement: no runtime effect
		}
	}

	return result, nil
}

// evalExpr evaluates a single IR expression. Its result may be a
// *returnValue signal, which callers that sit below a function-call
// boundary must propagate rather than interpret as a plain value.
func (i *Interpreter) evalExpr(expr ir.Expression, env *Environment) (Value, *RuntimeError) {
	switch e := expr.(type) {
	case ir.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, newRuntimeError(UndefinedVariable, e.Pos(), "undefined identifier %q", e.Name)
		}
		return v, nil
	case ir.NumberLiteral:
		return NumberValue{Value: e.Value}, nil
	case ir.StringLiteral:
		return StringValue{Value: e.Value}, nil
	case ir.BooleanLiteral:
		return BooleanValue{Value: e.Value}, nil
	case ir.ArrayLiteral:
		elements := make([]Value, len(e.Elements))
		for idx, el := range e.Elements {
			v, err := i.evalExpr(el, env)
			if err != nil {
				return nil, err
			}
			if rv, ok := v.(*returnValue); ok {
				return rv, nil
			}
			elements[idx] = v
		}
		return ArrayValue{Elements: elements}, nil
	case *ir.Function:
		return &FunctionValue{Fn: e, Env: env}, nil
	case ir.Block:
		return i.evalBlock(e.Instructions, Enclose(env))
	case ir.If:
		return i.evalIf(e, env)
	case ir.Call:
		return i.evalCall(e, env)
	case ir.Index:
		return i.evalIndex(e, env)
	case ir.Prefix:
		return i.evalPrefix(e, env)
	case ir.Infix:
		return i.evalInfix(e, env)
	}
	return nil, newRuntimeError(InvalidOperator, expr.Pos(), "unsupported expression")
}

func (i *Interpreter) evalIf(e ir.If, env *Environment) (Value, *RuntimeError) {
	cond, err := i.evalExpr(e.Cond, env)
	if err != nil {
		return nil, err
	}
	if rv, ok := cond.(*returnValue); ok {
		return rv, nil
	}
	b, ok := cond.(BooleanValue)
	if !ok {
		return nil, newRuntimeError(InvalidOperands, e.Pos(), "if condition is %s, not boolean", cond.Type())
	}
	if b.Value {
		return i.evalExpr(e.Cons, env)
	}
	if e.Alt != nil {
		return i.evalExpr(e.Alt, env)
	}
	return BooleanValue{Value: false}, nil
}

func (i *Interpreter) evalIndex(e ir.Index, env *Environment) (Value, *RuntimeError) {
	left, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	if rv, ok := left.(*returnValue); ok {
		return rv, nil
	}
	arr, ok := left.(ArrayValue)
	if !ok {
		return nil, newRuntimeError(NotAnArray, e.Pos(), "%s is not indexable", left.Type())
	}

	idxVal, err := i.evalExpr(e.Idx, env)
	if err != nil {
		return nil, err
	}
	if rv, ok := idxVal.(*returnValue); ok {
		return rv, nil
	}
	n, ok := idxVal.(NumberValue)
	if !ok {
		return nil, newRuntimeError(InvalidOperands, e.Pos(), "array index is %s, not number", idxVal.Type())
	}

	idx := int(n.Value)
	if idx < 0 || idx >= len(arr.Elements) {
		return nil, newRuntimeError(IndexOutOfBounds, e.Pos(), "index %d out of bounds for array of length %d", idx, len(arr.Elements))
	}
	return arr.Elements[idx], nil
}

func (i *Interpreter) evalCall(e ir.Call, env *Environment) (Value, *RuntimeError) {
	calleeVal, err := i.evalExpr(e.Callee, env)
	if err != nil {
		return nil, err
	}
	if rv, ok := calleeVal.(*returnValue); ok {
		return rv, nil
	}

	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		if rv, ok := v.(*returnValue); ok {
			return rv, nil
		}
		args[idx] = v
	}

	switch fn := calleeVal.(type) {
	case *BuiltinValue:
		return fn.Fn(args), nil
	case *FunctionValue:
		if len(args) != len(fn.Fn.Parameters) {
			// Unreachable for any program that passed the checker, which
			// rejects arity mismatches on every non-builtin call; kept as a
			// defensive check.
			return nil, newRuntimeError(InvalidOperands, e.Pos(), "expected %d argument(s), got %d", len(fn.Fn.Parameters), len(args))
		}
		callEnv := Enclose(fn.Env)
		for idx, p := range fn.Fn.Parameters {
			callEnv.Set(p.Name, args[idx])
		}
		result, err := i.evalBlock(fn.Fn.Body, callEnv)
		if err != nil {
			return nil, err
		}
		if rv, ok := result.(*returnValue); ok {
			return rv.Value, nil
		}
		return result, nil
	default:
		return nil, newRuntimeError(NotAFunction, e.Pos(), "%s is not callable", calleeVal.Type())
	}
}
