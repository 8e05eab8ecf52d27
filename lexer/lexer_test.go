package lexer

import (
	"testing"

	"github.com/skx/tinybasic/token"
)

// Trivial test of the parsing of numbers and identifiers.
func TestParseNumbers(t *testing.T) {
	input := `10 200 X1`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.NUMBER, "10"},
		{token.NUMBER, "200"},
		{token.IDENT, "X1"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Trivial test of the parsing of operators, including the two-character
// relational operators.
func TestParseOperators(t *testing.T) {
	input := `+ - * / ( ) = <> >= > <= <`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.ASSIGN, "="},
		{token.NE, "<>"},
		{token.GE, ">="},
		{token.GT, ">"},
		{token.LE, "<="},
		{token.LT, "<"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// A newline separates statements, and must come through as its own token.
func TestNewlineIsSignificant(t *testing.T) {
	input := "10 PRINT 1\n20 END"

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.NUMBER, "10"},
		{token.PRINT, "PRINT"},
		{token.NUMBER, "1"},
		{token.NEWLINE, "\n"},
		{token.NUMBER, "20"},
		{token.END, "END"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// String literals are read raw: the \n and \t escapes are left
// unexpanded here and are only resolved later, during codegen's
// lowering of a Print statement.
func TestParseString(t *testing.T) {
	input := `"HELLO\n" "A\tB"`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.STRING, `HELLO\n`},
		{token.STRING, `A\tB`},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Keywords are recognised case-sensitively; an unrecognised word lexes as
// a plain identifier rather than as an error - TinyBASIC variable names
// are unconstrained single identifiers.
func TestKeywordsAndIdentifiers(t *testing.T) {
	input := `LET GOTO GOSUB RETURN INPUT IF THEN ELSE REM COUNT`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LET, "LET"},
		{token.GOTO, "GOTO"},
		{token.GOSUB, "GOSUB"},
		{token.RETURN, "RETURN"},
		{token.INPUT, "INPUT"},
		{token.IF, "IF"},
		{token.THEN, "THEN"},
		{token.ELSE, "ELSE"},
		{token.REM, "REM"},
		{token.IDENT, "COUNT"},
		{token.EOF, ""},
	}
	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - Literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// An unexpected character, such as `!`, lexes as an ERROR token rather
// than panicking.
func TestParseBogus(t *testing.T) {
	input := `!`

	l := New(input)
	tok := l.NextToken()
	if tok.Type != token.ERROR {
		t.Fatalf("expected ERROR, got=%q", tok.Type)
	}
}
