// Package ir defines the post-lowering instruction tree the compiler
// produces and the interpreter consumes.
package ir

import (
	"github.com/ky0422/sanetaka/internal/ast"
	"github.com/ky0422/sanetaka/internal/token"
)

// Instruction pairs an InstructionKind with its source position.
type Instruction struct {
	Kind InstructionKind
	Pos  token.Position
}

// InstructionKind is the closed set of top-level IR instructions.
type InstructionKind interface {
	instructionNode()
}

// StoreName binds Name to the value of Value in the current environment.
type StoreName struct {
	Name  string
	Value Expression
}

func (StoreName) instructionNode() {}

// Return ends evaluation and yields Value as the result of the enclosing
// function call (or of the program, at top level), leaving every block and
// if-expression in between.
type Return struct {
	Value Expression
}

func (Return) instructionNode() {}

// ExpressionStmt evaluates Value and discards the result.
type ExpressionStmt struct {
	Value Expression
}

func (ExpressionStmt) instructionNode() {}

// None is an erased instruction, produced by `type` and `declare`
// statements which contribute no runtime behavior.
type None struct{}

func (None) instructionNode() {}

// Expression is the closed set of IR expression kinds.
type Expression interface {
	expressionNode()
	Pos() token.Position
}

// Identifier references a bound name at runtime.
type Identifier struct {
	Name string
	P    token.Position
}

func (e Identifier) expressionNode()     {}
func (e Identifier) Pos() token.Position { return e.P }

// NumberLiteral is a literal 64-bit float.
type NumberLiteral struct {
	Value float64
	P     token.Position
}

func (e NumberLiteral) expressionNode()     {}
func (e NumberLiteral) Pos() token.Position { return e.P }

// StringLiteral is a literal string.
type StringLiteral struct {
	Value string
	P     token.Position
}

func (e StringLiteral) expressionNode()     {}
func (e StringLiteral) Pos() token.Position { return e.P }

// BooleanLiteral is a literal boolean.
type BooleanLiteral struct {
	Value bool
	P     token.Position
}

func (e BooleanLiteral) expressionNode()     {}
func (e BooleanLiteral) Pos() token.Position { return e.P }

// ArrayLiteral is an ordered sequence of lowered element expressions.
type ArrayLiteral struct {
	Elements []Expression
	P        token.Position
}

func (e ArrayLiteral) expressionNode()     {}
func (e ArrayLiteral) Pos() token.Position { return e.P }

// Param is a lowered function parameter: its name and resolved type. The
// spread flag is preserved so the interpreter can tell the last parameter
// apart when needed for diagnostics; the compiler has already converted its
// declared type to Array(T).
type Param struct {
	Name   string
	Type   ast.DataType
	Spread bool
}

// Function is a lowered function literal: its parameters, body
// instructions, and declared return type. It carries no environment of its
// own; the interpreter pairs one with the environment active when the
// literal is evaluated to form a closure.
type Function struct {
	Parameters []Param
	Body       []Instruction
	ReturnType ast.DataType
	P          token.Position
}

func (e *Function) expressionNode()     {}
func (e *Function) Pos() token.Position { return e.P }

// Block is a sequence of instructions evaluated as an expression: it
// yields its last instruction's value when that is a StoreName, and
// Boolean(false) otherwise; a Return reached anywhere in it ends the
// block and carries its value out to the enclosing function call.
type Block struct {
	Instructions []Instruction
	P            token.Position
}

func (e Block) expressionNode()     {}
func (e Block) Pos() token.Position { return e.P }

// If is a lowered conditional; Alt is nil when there is no else-branch.
type If struct {
	Cond Expression
	Cons Expression
	Alt  Expression
	P    token.Position
}

func (e If) expressionNode()     {}
func (e If) Pos() token.Position { return e.P }

// Call applies Callee to Args.
type Call struct {
	Callee Expression
	Args   []Expression
	P      token.Position
}

func (e Call) expressionNode()     {}
func (e Call) Pos() token.Position { return e.P }

// Index is `Left[Idx]`.
type Index struct {
	Left Expression
	Idx  Expression
	P    token.Position
}

func (e Index) expressionNode()     {}
func (e Index) Pos() token.Position { return e.P }

// Prefix is a unary operator applied to Expr.
type Prefix struct {
	Op   string
	Expr Expression
	P    token.Position
}

func (e Prefix) expressionNode()     {}
func (e Prefix) Pos() token.Position { return e.P }

// Infix is a binary operator applied to Left and Right.
type Infix struct {
	Left  Expression
	Op    string
	Right Expression
	P     token.Position
}

func (e Infix) expressionNode()     {}
func (e Infix) Pos() token.Position { return e.P }
