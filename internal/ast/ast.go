// Package ast defines the Abstract Syntax Tree produced by the parser:
// statements, expressions, and the data-type grammar they carry.
package ast

import (
	"bytes"
	"strings"

	"github.com/ky0422/sanetaka/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Statement is a node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root AST node: an ordered sequence of statements plus any
// accumulated parse errors. If Errors is non-empty, downstream stages must
// treat Statements as empty.
type Program struct {
	Statements []Statement
	Errors     []ParseError
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// ParseError is a single accumulated parser error.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e ParseError) Error() string {
	return e.Message
}

// ---- Statements -----------------------------------------------------------

// LetStatement binds name to value under an explicitly declared type.
type LetStatement struct {
	Token        token.Token // the `let` token
	Name         string
	DeclaredType DataType
	Value        Expression
}

func (s *LetStatement) statementNode()       {}
func (s *LetStatement) TokenLiteral() string { return s.Token.Literal }
func (s *LetStatement) Pos() token.Position  { return s.Token.Pos }
func (s *LetStatement) String() string {
	return "let " + s.Name + ": " + typeString(s.DeclaredType) + " = " + exprString(s.Value) + ";"
}

// AutoStatement binds name to value with the type inferred from value.
type AutoStatement struct {
	Token token.Token // the `auto` token
	Name  string
	Value Expression
}

func (s *AutoStatement) statementNode()       {}
func (s *AutoStatement) TokenLiteral() string { return s.Token.Literal }
func (s *AutoStatement) Pos() token.Position  { return s.Token.Pos }
func (s *AutoStatement) String() string {
	return "auto " + s.Name + " = " + exprString(s.Value) + ";"
}

// ReturnStatement returns value from the enclosing function body.
type ReturnStatement struct {
	Token token.Token // the `return` token
	Value Expression
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	return "return " + exprString(s.Value) + ";"
}

// TypeStatement introduces a user-defined alias name for data_type, with an
// optional generic parameter list carried syntactically.
type TypeStatement struct {
	Token    token.Token // the `type` token
	Name     string
	Generics []string
	DataType DataType
}

func (s *TypeStatement) statementNode()       {}
func (s *TypeStatement) TokenLiteral() string { return s.Token.Literal }
func (s *TypeStatement) Pos() token.Position  { return s.Token.Pos }
func (s *TypeStatement) String() string {
	return "type " + s.Name + " = " + typeString(s.DataType) + ";"
}

// DeclareStatement introduces an external binding with a type but no value.
type DeclareStatement struct {
	Token    token.Token // the `declare` token
	Name     string
	DataType DataType
}

func (s *DeclareStatement) statementNode()       {}
func (s *DeclareStatement) TokenLiteral() string { return s.Token.Literal }
func (s *DeclareStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DeclareStatement) String() string {
	return "declare " + s.Name + ": " + typeString(s.DataType) + ";"
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Token token.Token // the expression's first token
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ExpressionStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExpressionStatement) String() string       { return exprString(s.Expr) + ";" }

// StructStatement is reserved syntax; the parser may build it but the
// compiler must always reject it as unsupported, since struct literals are
// not implemented.
type StructStatement struct {
	Token token.Token
}

func (s *StructStatement) statementNode()       {}
func (s *StructStatement) TokenLiteral() string { return s.Token.Literal }
func (s *StructStatement) Pos() token.Position  { return s.Token.Pos }
func (s *StructStatement) String() string       { return "struct <unsupported>;" }

// ---- Expressions ------------------------------------------------------

// Identifier references a bound name.
type Identifier struct {
	Token token.Token
	Value string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) Pos() token.Position  { return e.Token.Pos }
func (e *Identifier) String() string       { return e.Value }

// NumberLiteral is a 64-bit float literal.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (e *NumberLiteral) expressionNode()      {}
func (e *NumberLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *NumberLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *NumberLiteral) String() string       { return e.Token.Literal }

// StringLiteral is a string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) expressionNode()      {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *StringLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *StringLiteral) String() string       { return "\"" + e.Value + "\"" }

// BooleanLiteral is a true/false literal.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (e *BooleanLiteral) expressionNode()      {}
func (e *BooleanLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *BooleanLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *BooleanLiteral) String() string       { return e.Token.Literal }

// ArrayLiteral is an ordered sequence of element expressions.
type ArrayLiteral struct {
	Token    token.Token // the `[` token
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *ArrayLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = exprString(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Parameter is a function-literal parameter: name, declared type, and
// whether it is the (necessarily final) spread parameter.
type Parameter struct {
	Name   string
	Type   DataType
	Spread bool
}

// FunctionLiteral is a `fn<generics>(params) -> ret { body }` expression.
type FunctionLiteral struct {
	Token      token.Token // the `fn` token
	Generics   []string
	Parameters []Parameter
	ReturnType DataType
	Body       *BlockExpression
}

func (e *FunctionLiteral) expressionNode()      {}
func (e *FunctionLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *FunctionLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *FunctionLiteral) String() string {
	parts := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		prefix := ""
		if p.Spread {
			prefix = "..."
		}
		parts[i] = prefix + p.Name + ": " + typeString(p.Type)
	}
	return "fn(" + strings.Join(parts, ", ") + ") -> " + typeString(e.ReturnType) + " " + e.Body.String()
}

// BlockExpression is a sequence of statements evaluated as an expression:
// its value is that of its last statement when that is a return, let or
// auto statement, and boolean false otherwise (including an empty block).
type BlockExpression struct {
	Token      token.Token // the `{` token
	Statements []Statement
}

func (e *BlockExpression) expressionNode()      {}
func (e *BlockExpression) TokenLiteral() string { return e.Token.Literal }
func (e *BlockExpression) Pos() token.Position  { return e.Token.Pos }
func (e *BlockExpression) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range e.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// PrefixExpression is a unary `-` or `!` applied to Right.
type PrefixExpression struct {
	Token    token.Token // the operator token
	Operator string
	Right    Expression
}

func (e *PrefixExpression) expressionNode()      {}
func (e *PrefixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *PrefixExpression) Pos() token.Position  { return e.Token.Pos }
func (e *PrefixExpression) String() string {
	return "(" + e.Operator + exprString(e.Right) + ")"
}

// InfixExpression is a binary operator applied to Left and Right.
type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *InfixExpression) expressionNode()      {}
func (e *InfixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *InfixExpression) Pos() token.Position  { return e.Token.Pos }
func (e *InfixExpression) String() string {
	return "(" + exprString(e.Left) + " " + e.Operator + " " + exprString(e.Right) + ")"
}

// IfExpression is `if (cond) { cons } else { alt }`, alt optional.
type IfExpression struct {
	Token       token.Token // the `if` token
	Condition   Expression
	Consequence *BlockExpression
	Alternative *BlockExpression
}

func (e *IfExpression) expressionNode()      {}
func (e *IfExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpression) Pos() token.Position  { return e.Token.Pos }
func (e *IfExpression) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(exprString(e.Condition))
	out.WriteString(") ")
	out.WriteString(e.Consequence.String())
	if e.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(e.Alternative.String())
	}
	return out.String()
}

// CallExpression applies Callee to Arguments.
type CallExpression struct {
	Token     token.Token // the `(` token
	Callee    Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpression) Pos() token.Position  { return e.Token.Pos }
func (e *CallExpression) String() string {
	parts := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		parts[i] = exprString(a)
	}
	return exprString(e.Callee) + "(" + strings.Join(parts, ", ") + ")"
}

// IndexExpression is `left[index]`.
type IndexExpression struct {
	Token token.Token // the `[` token
	Left  Expression
	Index Expression
}

func (e *IndexExpression) expressionNode()      {}
func (e *IndexExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IndexExpression) Pos() token.Position  { return e.Token.Pos }
func (e *IndexExpression) String() string {
	return "(" + exprString(e.Left) + "[" + exprString(e.Index) + "])"
}

// TypeofExpression reports the static type of Expr as a string at runtime.
type TypeofExpression struct {
	Token token.Token // the `typeof` token
	Expr  Expression
}

func (e *TypeofExpression) expressionNode()      {}
func (e *TypeofExpression) TokenLiteral() string { return e.Token.Literal }
func (e *TypeofExpression) Pos() token.Position  { return e.Token.Pos }
func (e *TypeofExpression) String() string {
	return "typeof(" + exprString(e.Expr) + ")"
}

func exprString(e Expression) string {
	if e == nil {
		return ""
	}
	return e.String()
}

func typeString(t DataType) string {
	if t == nil {
		return "unknown"
	}
	return t.String()
}
