// Package parser is a hand-written recursive-descent parser: it reads
// tokens from a lexer.Lexer and builds an ast.SyntaxTree against a
// mutable symtab.SymbolTable, exactly as described for AST construction.
//
// There is no separate parser-generator rule tree in this codebase - the
// retrieval pack carries none - so the "rule tree" and "AST construction"
// steps collapse into this one hand-written pass.
package parser

import (
	"strconv"

	"github.com/skx/tinybasic/ast"
	"github.com/skx/tinybasic/lexer"
	"github.com/skx/tinybasic/symtab"
	"github.com/skx/tinybasic/token"
)

// Parser holds per-program parsing state. lastLine lives here, as a
// struct field, rather than as a package-level mutable counter, so that
// parsing two programs in one process - as a test suite routinely does -
// needs no reset between them.
type Parser struct {
	lex    *lexer.Lexer
	symtab *symtab.SymbolTable

	cur  token.Token
	peek token.Token

	lastLine int
}

// New returns a Parser that will build its tree against tbl.
func New(l *lexer.Lexer, tbl *symtab.SymbolTable) *Parser {
	p := &Parser{lex: l, symtab: tbl}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

// Parse consumes the whole token stream and returns the finished tree,
// or the first syntax error encountered.
func (p *Parser) Parse() (*ast.SyntaxTree, error) {
	tree := &ast.SyntaxTree{}

	for p.cur.Type != token.EOF {
		line, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		tree.Lines = append(tree.Lines, line)
	}

	return tree, nil
}

// parseLine handles the three line shapes: a blank line, a REM comment
// (both number 0, NoOp, per the language's line-numbering rule), and a
// numbered-or-auto-numbered statement line.
func (p *Parser) parseLine() (*ast.Line, error) {
	if p.cur.Type == token.NEWLINE {
		p.nextToken()
		return &ast.Line{Number: 0, Stmt: &ast.Stmt{Kind: ast.StmtNoOp}}, nil
	}

	if p.cur.Type == token.REM {
		for p.cur.Type != token.NEWLINE && p.cur.Type != token.EOF {
			p.nextToken()
		}
		if p.cur.Type == token.NEWLINE {
			p.nextToken()
		}
		return &ast.Line{Number: 0, Stmt: &ast.Stmt{Kind: ast.StmtNoOp}}, nil
	}

	number, err := p.lineNumber()
	if err != nil {
		return nil, err
	}

	stmt, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	if p.cur.Type == token.NEWLINE {
		p.nextToken()
	} else if p.cur.Type != token.EOF {
		return nil, syntaxError("expected a newline after the statement, found %q", p.cur.Literal)
	}

	return &ast.Line{Number: number, Stmt: stmt}, nil
}

// lineNumber reads an optional leading NUMBER, enforcing strictly
// increasing order, or auto-assigns lastLine+1 when one is absent.
func (p *Parser) lineNumber() (int, error) {
	if p.cur.Type != token.NUMBER {
		p.lastLine++
		return p.lastLine, nil
	}

	n, err := strconv.Atoi(p.cur.Literal)
	if err != nil {
		return 0, syntaxError("invalid line number %q: %s", p.cur.Literal, err)
	}
	if n <= p.lastLine {
		return 0, &WrongLineNumber{Line: n}
	}

	p.lastLine = n
	p.nextToken()
	return n, nil
}
