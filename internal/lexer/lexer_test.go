package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ky0422/sanetaka/internal/token"
)

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := `=+-!*/%,:;(){}[] == != < > <= >= ->`

	expected := []token.Type{
		token.ASSIGN, token.PLUS, token.MINUS, token.BANG, token.ASTERISK,
		token.SLASH, token.PERCENT, token.COMMA, token.COLON, token.SEMICOLON,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE, token.ARROW,
		token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		require.Equalf(t, want, tok.Type, "token %d", i)
	}
}

func TestNextTokenKeywordsAndIdentifiers(t *testing.T) {
	input := `let auto return type declare if else fn typeof number string boolean object foo true false`

	expected := []struct {
		kind    token.Type
		literal string
	}{
		{token.LET, "let"},
		{token.AUTO, "auto"},
		{token.RETURN, "return"},
		{token.TYPE, "type"},
		{token.DECLARE, "declare"},
		{token.IF, "if"},
		{token.ELSE, "else"},
		{token.FN, "fn"},
		{token.TYPEOF, "typeof"},
		{token.NUMBER_TYPE, "number"},
		{token.STRING_TYPE, "string"},
		{token.BOOLEAN_TYPE, "boolean"},
		{token.OBJECT_TYPE, "object"},
		{token.IDENT, "foo"},
		{token.BOOL, "true"},
		{token.BOOL, "false"},
	}

	l := New(input)
	for _, want := range expected {
		tok := l.NextToken()
		require.Equal(t, want.kind, tok.Type)
		require.Equal(t, want.literal, tok.Literal)
	}

	require.Equal(t, token.EOF, l.NextToken().Type)
}

func TestNextTokenNumberLiteral(t *testing.T) {
	l := New("3.14 42")

	tok := l.NextToken()
	require.Equal(t, token.NUMBER, tok.Type)
	require.InDelta(t, 3.14, tok.Number, 1e-9)

	tok = l.NextToken()
	require.Equal(t, token.NUMBER, tok.Type)
	require.InDelta(t, 42.0, tok.Number, 1e-9)
}

func TestNextTokenStringLiteralWithEscapes(t *testing.T) {
	l := New(`"hello\nworld\t\"quoted\""`)

	tok := l.NextToken()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "hello\nworld\t\"quoted\"", tok.Literal)
}

func TestNextTokenIllegalCharacter(t *testing.T) {
	l := New("@")

	tok := l.NextToken()
	require.Equal(t, token.ILLEGAL, tok.Type)
	require.Equal(t, "@", tok.Literal)
}

// TestPositionMonotonic checks the §8 testable property: column numbers are
// monotonically non-decreasing within a line and reset after a newline; line
// numbers are monotonically non-decreasing.
func TestPositionMonotonic(t *testing.T) {
	input := "let x: number = 1;\nlet y: number = 2;"

	l := New(input)
	lastLine, lastCol := 1, 0
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		require.GreaterOrEqual(t, tok.Pos.Line, lastLine)
		if tok.Pos.Line == lastLine {
			require.GreaterOrEqual(t, tok.Pos.Column, lastCol)
		} else {
			lastCol = 0
		}
		lastLine, lastCol = tok.Pos.Line, tok.Pos.Column
	}
}
