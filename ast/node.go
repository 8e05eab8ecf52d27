package ast

import (
	"fmt"

	"github.com/skx/tinybasic/dot"
)

// ToNode renders the whole program as a "program" root node with one
// child per non-empty line - the shape parse_tree.dot, ast.dot and
// ost.dot all share.
func (t *SyntaxTree) ToNode() *dot.Node {
	root := dot.NewNode("program")
	for _, line := range t.Lines {
		if !line.IsEmpty() {
			root.Add(line.ToNode())
		}
	}
	return root
}

// ToNode renders a line as "line (N)" with its statement as its only child.
func (l *Line) ToNode() *dot.Node {
	return dot.NewNode(fmt.Sprintf("line (%d)", l.Number)).Add(l.Stmt.ToNode())
}

// ToNode renders a statement node.
func (s *Stmt) ToNode() *dot.Node {
	switch s.Kind {
	case StmtEnd:
		return dot.NewNode("end")
	case StmtGoto:
		return dot.NewNode("goto").Add(dot.NewNode(fmt.Sprintf("%d", s.GotoLine)))
	case StmtIf:
		n := dot.NewNode("if").Add(s.Cond.ToNode()).Add(s.Then.ToNode())
		if s.Else != nil {
			n.Add(s.Else.ToNode())
		}
		return n
	case StmtInput:
		return dot.NewNode("input").Add(dot.NewNode(s.Ident))
	case StmtLet:
		return dot.NewNode("let").Add(dot.NewNode(s.Ident)).Add(s.Arexpr.ToNode())
	case StmtPrint:
		return dot.NewNode("print").Add(s.Expr.ToNode())
	default:
		return dot.NewNode("")
	}
}

// ToNode renders a condition as its relop with both operands as children.
func (c *Cond) ToNode() *dot.Node {
	return dot.NewNode(c.Relop.String()).Add(c.LHS.ToNode()).Add(c.RHS.ToNode())
}

// ToNode renders a Cond operand.
func (o CondOperand) ToNode() *dot.Node {
	if o.Kind == CondNum {
		return dot.NewNode(fmt.Sprintf("%d", o.Num))
	}
	return dot.NewNode(o.Ident)
}

// ToNode renders a Print operand.
func (e *Expr) ToNode() *dot.Node {
	if e.Kind == ExprString {
		return dot.NewNode(fmt.Sprintf("%q", e.Str))
	}
	return e.Arexpr.ToNode()
}

// ToNode renders an arithmetic expression node.
func (a *Arexpr) ToNode() *dot.Node {
	switch a.Kind {
	case ArexprNum:
		return dot.NewNode(fmt.Sprintf("%d", a.Num))
	case ArexprIdent:
		return dot.NewNode(a.Ident)
	default:
		return dot.NewNode(a.Op.String()).Add(a.LHS.ToNode()).Add(a.RHS.ToNode())
	}
}
