// Package codegen lowers an ast.SyntaxTree into an asm.Program.
//
// Codegen holds the counters the lowering rules need - condCount for
// if-label numbering, literalCount for string-literal data labels -
// as struct fields rather than package-level mutable statics, so that
// compiling two programs in the same process (as a test suite routinely
// does) doesn't require resetting any global state.
package codegen

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/skx/tinybasic/asm"
	"github.com/skx/tinybasic/ast"
	"github.com/skx/tinybasic/symtab"
)

// Codegen lowers one program's AST into assembly, against a single
// symbol table built during parsing.
type Codegen struct {
	symtab       *symtab.SymbolTable
	condCount    int
	literalCount int
}

// New returns a Codegen that will lower statements against tbl.
func New(tbl *symtab.SymbolTable) *Codegen {
	return &Codegen{symtab: tbl}
}

// Generate lowers the whole program: prologue, every line in source
// order, the jump over the helper blocks, the three helper blocks
// themselves (printn, print, read), and the exit label.
func (c *Codegen) Generate(tree *ast.SyntaxTree) (*asm.Program, error) {
	prog := asm.New()

	prog.Add(asm.Mov(asm.R15, asm.RSP)).
		Add(asm.Sub(asm.RSP, asm.Imm(int32(c.symtab.Size()))))

	for _, line := range tree.Lines {
		var err error
		prog, err = c.genLine(line, prog)
		if err != nil {
			return nil, err
		}
	}

	prog.Add(asm.Jmp("exit"))

	c.genHelpers(prog)

	prog.Label("exit").
		Add(asm.Mov(asm.RAX, asm.Imm(60))).
		Add(asm.Mov(asm.RDI, asm.Imm(0))).
		Add(asm.Syscall())

	return prog, nil
}

// genHelpers emits the three compiler-provided routines every program
// carries, regardless of whether it calls all of them.
func (c *Codegen) genHelpers(prog *asm.Program) {
	prog.Func("printn").
		Add(asm.Mov(asm.RAX, asm.RSI)).
		Add(asm.Xor(asm.RCX, asm.RCX)).
		Add(asm.Mov(asm.RBX, asm.Imm(10))).
		Add(asm.Jmp("printn_inner_cond")).
		Label("printn_inner").
		Add(asm.Xor(asm.RDX, asm.RDX)).
		Add(asm.IDiv(asm.RBX)).
		Add(asm.Add(asm.RDX, asm.Imm(int32('0')))).
		Add(asm.Push(asm.RDX)).
		Add(asm.Inc(asm.RCX)).
		Label("printn_inner_cond").
		Add(asm.Cmp(asm.RAX, asm.Imm(10))).
		Add(asm.Jge("printn_inner")).
		Add(asm.Add(asm.RAX, asm.Imm(int32('0')))).
		Add(asm.Push(asm.RAX)).
		Add(asm.Inc(asm.RCX)).
		Add(asm.Mov(asm.RSI, asm.RSP)).
		// digit count * 8, because every pushed digit occupies a full
		// 8-byte stack slot - see the design note on printn in
		// DESIGN.md. Deliberate, not a bug.
		Add(asm.IMul(asm.RCX, asm.Imm(8))).
		Add(asm.Mov(asm.RDX, asm.RCX)).
		Add(asm.Call("print")).
		FuncEnd()

	prog.Func("print").
		Add(asm.Mov(asm.RAX, asm.Imm(1))).
		Add(asm.Mov(asm.RDI, asm.Imm(1))).
		Add(asm.Syscall()).
		FuncEnd()

	prog.Func("read").
		Add(asm.Mov(asm.RAX, asm.Imm(0))).
		Add(asm.Mov(asm.RDI, asm.Imm(0))).
		Add(asm.Syscall()).
		FuncEnd()
}

// genLine emits the line's label (unless it's empty, in which case
// neither label nor code is emitted) followed by its statement.
func (c *Codegen) genLine(line *ast.Line, prog *asm.Program) (*asm.Program, error) {
	if line.IsEmpty() {
		return prog, nil
	}

	prog.Label(fmt.Sprintf("line%d", line.Number))
	return c.genStmt(line.Stmt, prog)
}

// genStmt dispatches on the statement's kind, per the lowering table.
func (c *Codegen) genStmt(s *ast.Stmt, prog *asm.Program) (*asm.Program, error) {
	switch s.Kind {
	case ast.StmtEnd:
		return prog.Add(asm.Jmp("exit")), nil

	case ast.StmtGoto:
		return prog.Add(asm.Jmp(fmt.Sprintf("line%d", s.GotoLine))), nil

	case ast.StmtIf:
		return c.genIf(s, prog)

	case ast.StmtInput:
		return c.genInput(s, prog)

	case ast.StmtLet:
		return c.genLet(s, prog)

	case ast.StmtPrint:
		return c.genPrint(s, prog)

	case ast.StmtNoOp:
		return prog, nil

	default:
		return prog, errors.Errorf("unimplemented statement kind %d", s.Kind)
	}
}
