package ast

import "strconv"

// Source re-renders the tree as TinyBASIC source text. It exists so the
// round trip - parse, render, re-parse - can be checked: feeding the
// output back through the lexer and parser must reproduce an equal tree,
// up to the line numbers a source omitted and had auto-assigned the
// first time around.
//
// GOTO/GOSUB and END/RETURN are each folded onto one Stmt kind at parse
// time (see StmtGoto's and StmtEnd's doc comments), so which spelling the
// original source used is already lost by the time a tree exists to
// render; Source always emits the GOTO/END spelling.
func (t *SyntaxTree) Source() string {
	var out string
	for _, line := range t.Lines {
		out += line.Source()
	}
	return out
}

// Source renders one line. An empty line (blank or REM in the original)
// renders as a blank line, which re-lexes back to the same Number-0,
// StmtNoOp line without disturbing any other line's auto-assigned
// number - blank and REM lines never advance the parser's line counter.
func (l *Line) Source() string {
	if l.IsEmpty() {
		return "\n"
	}
	return strconv.Itoa(l.Number) + " " + l.Stmt.source() + "\n"
}

func (s *Stmt) source() string {
	switch s.Kind {
	case StmtEnd:
		return "END"
	case StmtGoto:
		return "GOTO " + strconv.Itoa(s.GotoLine)
	case StmtIf:
		out := "IF " + s.Cond.source() + " THEN " + s.Then.source()
		if s.Else != nil {
			out += " ELSE " + s.Else.source()
		}
		return out
	case StmtInput:
		return "INPUT " + s.Ident
	case StmtLet:
		return "LET " + s.Ident + " = " + s.Arexpr.source()
	case StmtPrint:
		return "PRINT " + s.Expr.source()
	case StmtNoOp:
		return ""
	}
	return ""
}

func (c *Cond) source() string {
	return c.LHS.source() + " " + c.Relop.String() + " " + c.RHS.source()
}

func (o CondOperand) source() string {
	if o.Kind == CondIdent {
		return o.Ident
	}
	return strconv.Itoa(int(o.Num))
}

func (e *Expr) source() string {
	if e.Kind == ExprString {
		return "\"" + e.Str + "\""
	}
	return e.Arexpr.source()
}

// source renders an arexpr tree, parenthesising a sub-expression exactly
// when omitting the parens would let precedence or left-associativity
// regroup it differently on re-parse.
func (a *Arexpr) source() string {
	switch a.Kind {
	case ArexprNum:
		return strconv.Itoa(int(a.Num))
	case ArexprIdent:
		return a.Ident
	case ArexprBin:
		lhs := a.LHS.source()
		if a.LHS.Kind == ArexprBin && precedenceOf(a.LHS.Op) < precedenceOf(a.Op) {
			lhs = "(" + lhs + ")"
		}
		rhs := a.RHS.source()
		if a.RHS.Kind == ArexprBin && precedenceOf(a.RHS.Op) <= precedenceOf(a.Op) {
			rhs = "(" + rhs + ")"
		}
		return lhs + " " + a.Op.String() + " " + rhs
	}
	return ""
}

// precedenceOf mirrors the parser's own binding tiers for ArOp: mul/div
// bind tighter than add/sub. Kept in this package rather than imported
// from parser, since ast cannot depend on parser without a cycle.
func precedenceOf(op ArOp) int {
	switch op {
	case OpMul, OpDiv:
		return 2
	default:
		return 1
	}
}
