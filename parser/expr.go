package parser

import (
	"strconv"

	"github.com/skx/tinybasic/ast"
	"github.com/skx/tinybasic/stack"
	"github.com/skx/tinybasic/token"
)

// precedence assigns the two binding tiers arexpr grammar has: mul/div
// bind tighter than add/sub.
func precedence(op ast.ArOp) int {
	switch op {
	case ast.OpMul, ast.OpDiv:
		return 2
	default:
		return 1
	}
}

func arOpFor(tt token.Type) (ast.ArOp, bool) {
	switch tt {
	case token.PLUS:
		return ast.OpAdd, true
	case token.MINUS:
		return ast.OpSub, true
	case token.ASTERISK:
		return ast.OpMul, true
	case token.SLASH:
		return ast.OpDiv, true
	default:
		return 0, false
	}
}

// parseArexpr climbs operator precedence with a pair of explicit stacks:
// values built so far, and operators still waiting for their right-hand
// side. Both binding tiers are left-associative, so an operator is
// applied whenever the incoming one does not bind tighter than the one
// on top of the stack.
func (p *Parser) parseArexpr() (*ast.Arexpr, error) {
	values := stack.New[*ast.Arexpr]()
	ops := stack.New[ast.ArOp]()

	apply := func() error {
		rhs, err := values.Pop()
		if err != nil {
			return err
		}
		lhs, err := values.Pop()
		if err != nil {
			return err
		}
		op, err := ops.Pop()
		if err != nil {
			return err
		}
		values.Push(ast.BinExpr(lhs, op, rhs))
		return nil
	}

	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	values.Push(first)

	for {
		op, ok := arOpFor(p.cur.Type)
		if !ok {
			break
		}

		for !ops.Empty() {
			top, _ := ops.Peek()
			if precedence(top) < precedence(op) {
				break
			}
			if err := apply(); err != nil {
				return nil, syntaxError("malformed arithmetic expression: %s", err)
			}
		}

		ops.Push(op)
		p.nextToken()

		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		values.Push(factor)
	}

	for !ops.Empty() {
		if err := apply(); err != nil {
			return nil, syntaxError("malformed arithmetic expression: %s", err)
		}
	}

	return values.Pop()
}

// parseFactor parses a single arexpr leaf: a parenthesised
// sub-expression, a numeric literal, or an identifier load.
func (p *Parser) parseFactor() (*ast.Arexpr, error) {
	switch p.cur.Type {
	case token.LPAREN:
		p.nextToken()
		expr, err := p.parseArexpr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != token.RPAREN {
			return nil, syntaxError("expected ')', found %q", p.cur.Literal)
		}
		p.nextToken()
		return expr, nil

	case token.NUMBER:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 32)
		if err != nil {
			return nil, syntaxError("invalid numeric literal %q: %s", p.cur.Literal, err)
		}
		p.nextToken()
		return ast.NumExpr(int32(n)), nil

	case token.IDENT:
		name := p.cur.Literal
		p.nextToken()
		return ast.IdentExpr(name), nil

	default:
		return nil, syntaxError("expected a number, identifier or '(', found %q", p.cur.Literal)
	}
}

// parseCond parses lhs relop rhs. Unlike an Arexpr leaf, a Cond operand
// that names an identifier must already be declared - undeclared use
// here is rejected eagerly rather than left as an unspecified access.
func (p *Parser) parseCond() (*ast.Cond, error) {
	lhs, err := p.parseCondOperand()
	if err != nil {
		return nil, err
	}

	relop, err := p.parseRelop()
	if err != nil {
		return nil, err
	}

	rhs, err := p.parseCondOperand()
	if err != nil {
		return nil, err
	}

	return &ast.Cond{LHS: lhs, Relop: relop, RHS: rhs}, nil
}

func (p *Parser) parseCondOperand() (ast.CondOperand, error) {
	switch p.cur.Type {
	case token.NUMBER:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 32)
		if err != nil {
			return ast.CondOperand{}, syntaxError("invalid numeric literal %q: %s", p.cur.Literal, err)
		}
		p.nextToken()
		return ast.NumOperand(int32(n)), nil

	case token.IDENT:
		name := p.cur.Literal
		if _, ok := p.symtab.Get(name); !ok {
			return ast.CondOperand{}, &UndeclaredIdentifier{Name: name}
		}
		p.nextToken()
		return ast.IdentOperand(name), nil

	default:
		return ast.CondOperand{}, syntaxError("expected a number or identifier, found %q", p.cur.Literal)
	}
}

func (p *Parser) parseRelop() (ast.RelOp, error) {
	defer p.nextToken()

	switch p.cur.Type {
	case token.ASSIGN:
		return ast.Eq, nil
	case token.NE:
		return ast.Ne, nil
	case token.GE:
		return ast.Ge, nil
	case token.GT:
		return ast.Gt, nil
	case token.LE:
		return ast.Le, nil
	case token.LT:
		return ast.Lt, nil
	default:
		return 0, syntaxError("expected a relational operator, found %q", p.cur.Literal)
	}
}
