package lexer

import (
	"strings"

	"github.com/skx/tinybasic/token"
)

// Lexer holds our object-state.
type Lexer struct {
	position     int    //current character position
	readPosition int    //next character position
	ch           rune   //current character
	characters   []rune //rune slice of input string
}

// New creates a Lexer instance from string input.
func New(input string) *Lexer {
	l := &Lexer{characters: []rune(input)}
	l.readChar()
	return l
}

// read one forward character
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.characters) {
		l.ch = rune(0)
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// NextToken reads the next token. Spaces and tabs are skipped, but a
// newline is returned as its own NEWLINE token: TinyBASIC statements are
// one per line, so the parser needs to see where a line ends.
func (l *Lexer) NextToken() token.Token {
	var tok token.Token
	l.skipSpace()

	switch l.ch {
	case rune('\n'):
		tok = newToken(token.NEWLINE, l.ch)
	case rune('+'):
		tok = newToken(token.PLUS, l.ch)
	case rune('-'):
		tok = newToken(token.MINUS, l.ch)
	case rune('*'):
		tok = newToken(token.ASTERISK, l.ch)
	case rune('/'):
		tok = newToken(token.SLASH, l.ch)
	case rune('('):
		tok = newToken(token.LPAREN, l.ch)
	case rune(')'):
		tok = newToken(token.RPAREN, l.ch)
	case rune('='):
		tok = newToken(token.ASSIGN, l.ch)
	case rune('<'):
		if l.peekChar() == rune('>') {
			l.readChar()
			tok = token.Token{Type: token.NE, Literal: "<>"}
		} else if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.LE, Literal: "<="}
		} else {
			tok = newToken(token.LT, l.ch)
		}
	case rune('>'):
		if l.peekChar() == rune('=') {
			l.readChar()
			tok = token.Token{Type: token.GE, Literal: ">="}
		} else {
			tok = newToken(token.GT, l.ch)
		}
	case rune('"'):
		tok.Type = token.STRING
		tok.Literal = l.readStringLiteral()
	case rune(0):
		tok.Literal = ""
		tok.Type = token.EOF
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}

		if isLetter(l.ch) {
			lit := l.readIdentifier()
			tok.Type = token.LookupIdentifier(lit)
			tok.Literal = lit
			return tok
		}

		tok.Type = token.ERROR
		tok.Literal = "unexpected character " + string(l.ch)
	}
	l.readChar()
	return tok
}

// return new token
func newToken(tokenType token.Type, ch rune) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}

// skipSpace skips spaces, tabs and carriage returns. A newline is
// significant and is not skipped here.
func (l *Lexer) skipSpace() {
	for l.ch == rune(' ') || l.ch == rune('\t') || l.ch == rune('\r') {
		l.readChar()
	}
}

// readNumber handles reading a number, comprising of digits 0-9. TinyBASIC
// has no floating point literals: this is used for both line numbers and
// integer constants.
func (l *Lexer) readNumber() token.Token {
	str := ""

	accept := "0123456789"

	for strings.Contains(accept, string(l.ch)) {
		str += string(l.ch)
		l.readChar()
	}
	return token.Token{Type: token.NUMBER, Literal: str}
}

// readStringLiteral reads the raw body of a double-quoted string. The
// `\n`/`\t` escapes are deliberately left unexpanded here - that happens
// later, during codegen's lowering of a Print statement - so this only
// needs to recognise `\"` and `\\` well enough not to stop early.
func (l *Lexer) readStringLiteral() string {
	var out strings.Builder

	l.readChar() // move past the opening quote

	for l.ch != rune('"') && l.ch != rune(0) {
		if l.ch == rune('\\') && (l.peekChar() == rune('"') || l.peekChar() == rune('\\')) {
			out.WriteRune(l.ch)
			l.readChar()
			out.WriteRune(l.ch)
		} else {
			out.WriteRune(l.ch)
		}
		l.readChar()
	}

	return out.String()
}

// peek character
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return rune(0)
	}
	return l.characters[l.readPosition]
}

// is Digit
func isDigit(ch rune) bool {
	return rune('0') <= ch && ch <= rune('9')
}

// readIdentifier reads a run of letters and digits, starting with a
// letter - either a keyword (PRINT, LET, ...) or a bare variable name.
func (l *Lexer) readIdentifier() string {

	id := ""

	for isLetter(l.ch) || isDigit(l.ch) {
		id += string(l.ch)
		l.readChar()
	}

	return id
}

// isLetter reports whether ch can start, or continue, a bare word.
func isLetter(ch rune) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}
