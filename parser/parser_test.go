package parser

import (
	"errors"
	"testing"

	"github.com/skx/tinybasic/ast"
	"github.com/skx/tinybasic/lexer"
	"github.com/skx/tinybasic/symtab"
)

func parse(t *testing.T, src string) *ast.SyntaxTree {
	t.Helper()
	tbl := symtab.New()
	p := New(lexer.New(src), tbl)
	tree, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return tree
}

func TestParsePrintString(t *testing.T) {
	tree := parse(t, `10 PRINT "HI"`)

	if len(tree.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(tree.Lines))
	}
	line := tree.Lines[0]
	if line.Number != 10 {
		t.Errorf("expected line number 10, got %d", line.Number)
	}
	if line.Stmt.Kind != ast.StmtPrint || line.Stmt.Expr.Kind != ast.ExprString || line.Stmt.Expr.Str != "HI" {
		t.Fatalf("expected PRINT \"HI\", got %+v", line.Stmt)
	}
}

func TestParseLetPrecedence(t *testing.T) {
	// 2 + 3 * 4 must parse as 2 + (3 * 4), not (2 + 3) * 4.
	tree := parse(t, "10 LET A = 2 + 3 * 4")

	arexpr := tree.Lines[0].Stmt.Arexpr
	if arexpr.Kind != ast.ArexprBin || arexpr.Op != ast.OpAdd {
		t.Fatalf("expected the root operator to be +, got %+v", arexpr)
	}
	if arexpr.RHS.Kind != ast.ArexprBin || arexpr.RHS.Op != ast.OpMul {
		t.Fatalf("expected the right subtree to be the * term, got %+v", arexpr.RHS)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	// 10 - 3 - 2 must parse as (10 - 3) - 2, not 10 - (3 - 2).
	tree := parse(t, "10 LET A = 10 - 3 - 2")

	arexpr := tree.Lines[0].Stmt.Arexpr
	if arexpr.Kind != ast.ArexprBin || arexpr.Op != ast.OpSub {
		t.Fatalf("expected root -, got %+v", arexpr)
	}
	if arexpr.LHS.Kind != ast.ArexprBin || arexpr.LHS.Op != ast.OpSub {
		t.Fatalf("expected the left subtree to itself be a - node, got %+v", arexpr.LHS)
	}
	if arexpr.RHS.Kind != ast.ArexprNum || arexpr.RHS.Num != 2 {
		t.Fatalf("expected the final operand to be 2, got %+v", arexpr.RHS)
	}
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	tree := parse(t, "10 LET A = (2 + 3) * 4")

	arexpr := tree.Lines[0].Stmt.Arexpr
	if arexpr.Kind != ast.ArexprBin || arexpr.Op != ast.OpMul {
		t.Fatalf("expected root *, got %+v", arexpr)
	}
	if arexpr.LHS.Kind != ast.ArexprBin || arexpr.LHS.Op != ast.OpAdd {
		t.Fatalf("expected the left subtree to be the + term, got %+v", arexpr.LHS)
	}
}

func TestParseIfThenElse(t *testing.T) {
	tree := parse(t, `10 LET X = 5
20 IF X > 3 THEN PRINT "Y" ELSE PRINT "N"`)

	stmt := tree.Lines[1].Stmt
	if stmt.Kind != ast.StmtIf {
		t.Fatalf("expected an If statement, got %+v", stmt)
	}
	if stmt.Cond.Relop != ast.Gt {
		t.Errorf("expected > relop, got %v", stmt.Cond.Relop)
	}
	if stmt.Then.Expr.Str != "Y" || stmt.Else.Expr.Str != "N" {
		t.Errorf("expected then/else branches Y/N, got %+v / %+v", stmt.Then, stmt.Else)
	}
}

func TestParseGotoAndGosubAlias(t *testing.T) {
	tree := parse(t, "10 GOTO 30\n20 GOSUB 30\n30 END")

	if tree.Lines[0].Stmt.Kind != ast.StmtGoto || tree.Lines[0].Stmt.GotoLine != 30 {
		t.Errorf("expected GOTO 30, got %+v", tree.Lines[0].Stmt)
	}
	if tree.Lines[1].Stmt.Kind != ast.StmtGoto || tree.Lines[1].Stmt.GotoLine != 30 {
		t.Errorf("expected GOSUB aliased to Goto, got %+v", tree.Lines[1].Stmt)
	}
}

func TestParseReturnAliasesEnd(t *testing.T) {
	tree := parse(t, "10 RETURN")

	if tree.Lines[0].Stmt.Kind != ast.StmtEnd {
		t.Errorf("expected RETURN to alias End, got %+v", tree.Lines[0].Stmt)
	}
}

func TestParseAutoAssignsLineNumber(t *testing.T) {
	tree := parse(t, "10 LET A = 1\nPRINT A\n30 END")

	if tree.Lines[1].Number != 11 {
		t.Errorf("expected the unnumbered line to inherit 11, got %d", tree.Lines[1].Number)
	}
}

func TestParseBlankAndRemLinesAreNoOpWithNumberZero(t *testing.T) {
	tree := parse(t, "10 END\n\nREM a comment\n")

	if len(tree.Lines) != 3 {
		t.Fatalf("expected three lines (End, blank, rem), got %d", len(tree.Lines))
	}
	for _, l := range tree.Lines[1:] {
		if l.Number != 0 || !l.IsEmpty() {
			t.Errorf("expected a NoOp line numbered 0, got %+v", l)
		}
	}
}

func TestParseInsertsLetAndInputIdentifiers(t *testing.T) {
	tbl := symtab.New()
	p := New(lexer.New("10 LET A = 1\n20 INPUT B"), tbl)
	if _, err := p.Parse(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := tbl.Get("A"); !ok {
		t.Errorf("expected LET to insert A into the symbol table")
	}
	if _, ok := tbl.Get("B"); !ok {
		t.Errorf("expected INPUT to insert B into the symbol table")
	}
}

func TestParseWrongLineNumberIsRejected(t *testing.T) {
	tbl := symtab.New()
	p := New(lexer.New("10 END\n20 END\n15 END"), tbl)
	_, err := p.Parse()

	var wrong *WrongLineNumber
	if !errors.As(err, &wrong) {
		t.Fatalf("expected a WrongLineNumber error, got %v", err)
	}
	if wrong.Line != 15 {
		t.Errorf("expected the error to name line 15, got %d", wrong.Line)
	}
}

func TestParseUndeclaredIdentifierInCondIsRejected(t *testing.T) {
	tbl := symtab.New()
	p := New(lexer.New("10 IF X > 3 THEN END"), tbl)
	_, err := p.Parse()

	var undeclared *UndeclaredIdentifier
	if !errors.As(err, &undeclared) {
		t.Fatalf("expected an UndeclaredIdentifier error, got %v", err)
	}
	if undeclared.Name != "X" {
		t.Errorf("expected the error to name X, got %q", undeclared.Name)
	}
}

func TestParseCondAgainstDeclaredIdentifierSucceeds(t *testing.T) {
	tree := parse(t, "10 LET X = 1\n20 IF X > 0 THEN END")

	stmt := tree.Lines[1].Stmt
	if stmt.Cond.LHS.Kind != ast.CondIdent || stmt.Cond.LHS.Ident != "X" {
		t.Fatalf("expected the condition to reference X, got %+v", stmt.Cond)
	}
}

func TestParseEndToEndProgramMatchesScenarioFive(t *testing.T) {
	// 10 LET I=0 / 20 LET I=I+1 / 30 IF I<3 THEN GOTO 20 / 40 PRINT I
	tree := parse(t, "10 LET I = 0\n20 LET I = I + 1\n30 IF I < 3 THEN GOTO 20\n40 PRINT I")

	if len(tree.Lines) != 4 {
		t.Fatalf("expected four lines, got %d", len(tree.Lines))
	}
	if tree.Lines[2].Stmt.Then.Kind != ast.StmtGoto || tree.Lines[2].Stmt.Then.GotoLine != 20 {
		t.Fatalf("expected the If's then-arm to be GOTO 20, got %+v", tree.Lines[2].Stmt.Then)
	}
}
