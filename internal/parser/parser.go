// Package parser implements a hand-written Pratt parser that turns a token
// stream into the AST defined by internal/ast.
package parser

import (
	"fmt"

	"github.com/ky0422/sanetaka/internal/ast"
	"github.com/ky0422/sanetaka/internal/lexer"
	"github.com/ky0422/sanetaka/internal/token"
)

// Precedence levels, ascending.
const (
	_ int = iota
	LOWEST
	EQUALS      // == != <= >=
	LESSGREATER // < >
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f(...)
	INDEX       // a[...]
)

var precedences = map[token.Type]int{
	token.EQ:       EQUALS,
	token.NEQ:      EQUALS,
	token.LTE:      EQUALS,
	token.GTE:      EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a two-token-lookahead Pratt parser.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []ast.ParseError

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.NUMBER:   p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.BOOL:     p.parseBooleanLiteral,
		token.BANG:     p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACE:   func() ast.Expression { return p.parseBlockExpression() },
		token.LBRACKET: p.parseArrayLiteral,
		token.FN:       p.parseFunctionLiteral,
		token.IF:       p.parseIfExpression,
		token.TYPEOF:   p.parseTypeofExpression,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.PERCENT:  p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NEQ:      p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LTE:      p.parseInfixExpression,
		token.GTE:      p.parseInfixExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it matches t, else records an
// "expected token" parse error.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, ast.ParseError{
		Message: fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type),
		Pos:     p.peekToken.Pos,
	})
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, ast.ParseError{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream. The result either has
// statements and no errors, or errors and no statements.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	program.Errors = p.errors
	if len(program.Errors) > 0 {
		program.Statements = nil
	}
	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.AUTO:
		return p.parseAutoStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.TYPE:
		return p.parseTypeStatement()
	case token.DECLARE:
		return p.parseDeclareStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() ast.Statement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return p.skipToSemicolon()
	}
	stmt.Name = p.curToken.Literal

	if !p.expectPeek(token.COLON) {
		return p.skipToSemicolon()
	}
	p.nextToken()
	stmt.DeclaredType = p.parseDataType()

	if !p.expectPeek(token.ASSIGN) {
		return p.skipToSemicolon()
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	if !p.expectPeek(token.SEMICOLON) {
		return p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseAutoStatement() ast.Statement {
	stmt := &ast.AutoStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return p.skipToSemicolon()
	}
	stmt.Name = p.curToken.Literal

	if !p.expectPeek(token.ASSIGN) {
		return p.skipToSemicolon()
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	if !p.expectPeek(token.SEMICOLON) {
		return p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	if !p.expectPeek(token.SEMICOLON) {
		return p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseTypeStatement() ast.Statement {
	stmt := &ast.TypeStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return p.skipToSemicolon()
	}
	stmt.Name = p.curToken.Literal

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.Generics = p.parseGenericParams()
	}

	if !p.expectPeek(token.ASSIGN) {
		return p.skipToSemicolon()
	}
	p.nextToken()
	stmt.DataType = p.parseDataType()

	if !p.expectPeek(token.SEMICOLON) {
		return p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseDeclareStatement() ast.Statement {
	stmt := &ast.DeclareStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return p.skipToSemicolon()
	}
	stmt.Name = p.curToken.Literal

	if !p.expectPeek(token.COLON) {
		return p.skipToSemicolon()
	}
	p.nextToken()
	stmt.DataType = p.parseDataType()

	if !p.expectPeek(token.SEMICOLON) {
		return p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expr = p.parseExpression(LOWEST)

	if !p.expectPeek(token.SEMICOLON) {
		return p.skipToSemicolon()
	}
	return stmt
}

// skipToSemicolon performs minimal error recovery: it advances past tokens
// until it finds a statement terminator (or EOF), so one malformed statement
// doesn't cascade into unrelated errors for the rest of the program. The
// caller's error has already been recorded; Program.Errors being non-empty
// means ParseProgram discards all statements regardless.
func (p *Parser) skipToSemicolon() ast.Statement {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	return nil
}

// parseGenericParams parses `<IDENT (, IDENT)*>` with curToken on `<`,
// leaving curToken on the closing `>`.
func (p *Parser) parseGenericParams() []string {
	var names []string

	if p.peekTokenIs(token.GT) {
		p.nextToken()
		return names
	}

	p.nextToken()
	names = append(names, p.curToken.Literal)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		names = append(names, p.curToken.Literal)
	}

	if !p.expectPeek(token.GT) {
		return names
	}
	return names
}

// Errors returns the accumulated parse errors.
func (p *Parser) Errors() []ast.ParseError {
	return p.errors
}
