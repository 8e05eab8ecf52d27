package parser

import (
	"strconv"

	"github.com/skx/tinybasic/ast"
	"github.com/skx/tinybasic/symtab"
	"github.com/skx/tinybasic/token"
)

// parseStmt dispatches on the leading keyword, inserting identifiers
// into the symbol table for INPUT/LET during parsing - so the symbol
// exists by the time codegen lowers any Arexpr referencing it. LET
// inserts its target after parsing the right-hand side.
func (p *Parser) parseStmt() (*ast.Stmt, error) {
	switch p.cur.Type {
	case token.PRINT:
		return p.parsePrint()
	case token.LET:
		return p.parseLet()
	case token.INPUT:
		return p.parseInput()
	case token.IF:
		return p.parseIf()
	case token.GOTO, token.GOSUB:
		return p.parseGoto()
	case token.RETURN, token.END:
		p.nextToken()
		return &ast.Stmt{Kind: ast.StmtEnd}, nil
	case token.NEWLINE, token.EOF:
		return &ast.Stmt{Kind: ast.StmtNoOp}, nil
	default:
		return nil, syntaxError("unexpected token %q at start of statement", p.cur.Literal)
	}
}

func (p *Parser) parsePrint() (*ast.Stmt, error) {
	p.nextToken() // past PRINT

	if p.cur.Type == token.STRING {
		s := p.cur.Literal
		p.nextToken()
		return &ast.Stmt{Kind: ast.StmtPrint, Expr: ast.StringExpr(s)}, nil
	}

	expr, err := p.parseArexpr()
	if err != nil {
		return nil, err
	}
	return &ast.Stmt{Kind: ast.StmtPrint, Expr: ast.ArexprExpr(expr)}, nil
}

func (p *Parser) parseLet() (*ast.Stmt, error) {
	p.nextToken() // past LET

	if p.cur.Type != token.IDENT {
		return nil, syntaxError("expected an identifier after LET, found %q", p.cur.Literal)
	}
	ident := p.cur.Literal
	p.nextToken()

	if p.cur.Type != token.ASSIGN {
		return nil, syntaxError("expected '=' in LET, found %q", p.cur.Literal)
	}
	p.nextToken()

	expr, err := p.parseArexpr()
	if err != nil {
		return nil, err
	}

	p.symtab.Insert(ident, symtab.TypeInt)
	return &ast.Stmt{Kind: ast.StmtLet, Ident: ident, Arexpr: expr}, nil
}

func (p *Parser) parseInput() (*ast.Stmt, error) {
	p.nextToken() // past INPUT

	if p.cur.Type != token.IDENT {
		return nil, syntaxError("expected an identifier after INPUT, found %q", p.cur.Literal)
	}
	ident := p.cur.Literal
	p.nextToken()

	p.symtab.Insert(ident, symtab.TypeInt)
	return &ast.Stmt{Kind: ast.StmtInput, Ident: ident}, nil
}

func (p *Parser) parseGoto() (*ast.Stmt, error) {
	p.nextToken() // past GOTO/GOSUB

	if p.cur.Type != token.NUMBER {
		return nil, syntaxError("expected a line number after GOTO/GOSUB, found %q", p.cur.Literal)
	}
	n, err := strconv.Atoi(p.cur.Literal)
	if err != nil {
		return nil, syntaxError("invalid GOTO/GOSUB target %q: %s", p.cur.Literal, err)
	}
	p.nextToken()

	return &ast.Stmt{Kind: ast.StmtGoto, GotoLine: n}, nil
}

func (p *Parser) parseIf() (*ast.Stmt, error) {
	p.nextToken() // past IF

	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.THEN {
		return nil, syntaxError("expected THEN, found %q", p.cur.Literal)
	}
	p.nextToken()

	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	var els *ast.Stmt
	if p.cur.Type == token.ELSE {
		p.nextToken()
		els, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}

	return &ast.Stmt{Kind: ast.StmtIf, Cond: cond, Then: then, Else: els}, nil
}
