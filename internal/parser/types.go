package parser

import (
	"github.com/ky0422/sanetaka/internal/ast"
	"github.com/ky0422/sanetaka/internal/token"
)

// parseDataType is the entry point of the type grammar: a primitive
// keyword, a `fn` type, or an identifier (custom alias, optionally
// generic), followed by zero or more trailing `[]` array layers. curToken is
// the first token of the type on entry; it is left on the last token consumed.
func (p *Parser) parseDataType() ast.DataType {
	var base ast.DataType

	switch p.curToken.Type {
	case token.NUMBER_TYPE:
		base = ast.NumberType{}
	case token.STRING_TYPE:
		base = ast.StringType{}
	case token.BOOLEAN_TYPE:
		base = ast.BooleanType{}
	case token.OBJECT_TYPE:
		base = ast.ObjectType{}
	case token.FN:
		base = p.parseFunctionType()
	case token.IDENT:
		base = p.parseCustomOrGenericType()
	default:
		p.errorf(p.curToken.Pos, "expected a type, got %s instead", p.curToken.Type)
		return ast.UnknownType{}
	}

	for p.peekTokenIs(token.LBRACKET) {
		p.nextToken()
		if !p.expectPeek(token.RBRACKET) {
			break
		}
		base = ast.ArrayType{Elem: base}
	}

	return base
}

// parseFunctionType parses `fn<G…>(T, …) -> R` with curToken on `fn`.
func (p *Parser) parseFunctionType() ast.DataType {
	ft := ast.FunctionType{}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		ft.Generics = p.parseGenericParams()
	}

	if !p.expectPeek(token.LPAREN) {
		return ast.FnType{Fn: ft}
	}

	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		ft.Params = append(ft.Params, p.parseOneParamType())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			ft.Params = append(ft.Params, p.parseOneParamType())
		}
	}
	p.expectPeek(token.RPAREN)

	if !p.expectPeek(token.ARROW) {
		return ast.FnType{Fn: ft}
	}
	p.nextToken()
	ft.Return = p.parseDataType()

	return ast.FnType{Fn: ft}
}

// parseOneParamType parses `...? type` inside a function-type parameter
// list, with curToken on the first token of the entry on call.
func (p *Parser) parseOneParamType() ast.Param {
	spread := false
	if p.curTokenIs(token.ELLIPSIS) {
		spread = true
		p.nextToken()
	}
	return ast.Param{Type: p.parseDataType(), Spread: spread}
}

// parseCustomOrGenericType parses an identifier, optionally followed by a
// `<Arg, …>` generic application, with curToken on the identifier.
func (p *Parser) parseCustomOrGenericType() ast.DataType {
	name := p.curToken.Literal

	if !p.peekTokenIs(token.LT) {
		return ast.CustomType{Name: name}
	}
	p.nextToken() // consume '<'

	var args []ast.DataType
	p.nextToken()
	args = append(args, p.parseDataType())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseDataType())
	}
	p.expectPeek(token.GT)

	return ast.GenericType{Base: name, Args: args}
}
