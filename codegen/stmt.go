package codegen

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/skx/tinybasic/asm"
	"github.com/skx/tinybasic/ast"
)

// escapeReplacer expands the two escapes TinyBASIC string literals carry.
// This runs here, not in the lexer, deliberately: see lexer.readStringLiteral.
var escapeReplacer = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

// genInput reads directly into the target's own stack slot, then
// converts the stored byte from its ASCII code to its numeric value:
// RSI is pointed at R15 - end_offset(x) rather than a scratch buffer,
// since read(2) is happy to write straight into the frame.
func (c *Codegen) genInput(s *ast.Stmt, prog *asm.Program) (*asm.Program, error) {
	sym, ok := c.symtab.Get(s.Ident)
	if !ok {
		return prog, errors.Errorf("input into undeclared identifier %q", s.Ident)
	}

	prog.
		Add(asm.Mov(asm.RSI, asm.R15)).
		Add(asm.Sub(asm.RSI, asm.Imm(int32(sym.EndAddr())))).
		Add(asm.Mov(asm.RDX, asm.Imm(8))).
		Add(asm.Call("read"))

	prog, err := c.symtab.Access(s.Ident, prog)
	if err != nil {
		return prog, err
	}
	prog.Add(asm.Sub(asm.RBX, asm.Imm(int32('0'))))

	return c.symtab.Write(s.Ident, asm.RBX, prog)
}

// genLet lowers the expression and stores the result into the target
// identifier's stack slot.
func (c *Codegen) genLet(s *ast.Stmt, prog *asm.Program) (*asm.Program, error) {
	prog, err := c.genArexpr(s.Arexpr, prog)
	if err != nil {
		return prog, err
	}

	prog.Add(asm.Pop(asm.RBX))
	return c.symtab.Write(s.Ident, asm.RBX, prog)
}

// genPrint lowers either branch of a Print: a string literal is interned
// into the data section under a fresh label, with its escapes expanded
// here; an arithmetic expression is lowered and handed to printn.
func (c *Codegen) genPrint(s *ast.Stmt, prog *asm.Program) (*asm.Program, error) {
	if s.Expr.Kind == ast.ExprString {
		text := escapeReplacer.Replace(s.Expr.Str)
		label := fmt.Sprintf("literal%d", c.literalCount)
		c.literalCount++

		prog.InsertData(label, []byte(text))
		prog.
			Add(asm.Mov(asm.RSI, asm.Memory{Label: label})).
			Add(asm.Mov(asm.RDX, asm.Imm(int32(len(text))))).
			Add(asm.Call("print"))
		return prog, nil
	}

	prog, err := c.genArexpr(s.Expr.Arexpr, prog)
	if err != nil {
		return prog, err
	}

	prog.Add(asm.Pop(asm.RSI)).Add(asm.Call("printn"))
	return prog, nil
}

// genIf lowers a conditional branch: the Jcc falls through into the else
// arm (emitted inline, with no label of its own), then jumps to fi{k};
// the then arm follows under its own then{k} label and falls into fi{k}.
// k is condCount, so nested or repeated Ifs never collide.
func (c *Codegen) genIf(s *ast.Stmt, prog *asm.Program) (*asm.Program, error) {
	c.condCount++
	k := c.condCount

	thenLabel := fmt.Sprintf("then%d", k)
	fiLabel := fmt.Sprintf("fi%d", k)

	prog, err := c.genCond(s.Cond, thenLabel, prog)
	if err != nil {
		return prog, err
	}

	if s.Else != nil {
		prog, err = c.genStmt(s.Else, prog)
		if err != nil {
			return prog, err
		}
	}
	prog.Add(asm.Jmp(fiLabel))

	prog.Label(thenLabel)
	prog, err = c.genStmt(s.Then, prog)
	if err != nil {
		return prog, err
	}

	prog.Label(fiLabel)
	return prog, nil
}
