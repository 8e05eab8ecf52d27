package codegen

import (
	"github.com/skx/tinybasic/asm"
	"github.com/skx/tinybasic/ast"
)

// genArexpr lowers an arithmetic expression as a tiny stack machine: a
// leaf pushes its value, a binary node lowers both sides (each leaving
// its result on the stack), pops them off in rhs-then-lhs order, and
// pushes the combined result back.
func (c *Codegen) genArexpr(e *ast.Arexpr, prog *asm.Program) (*asm.Program, error) {
	switch e.Kind {
	case ast.ArexprNum:
		return prog.Add(asm.Push(asm.Imm(e.Num))), nil

	case ast.ArexprIdent:
		var err error
		prog, err = c.symtab.Access(e.Ident, prog)
		if err != nil {
			return prog, err
		}
		return prog.Add(asm.Push(asm.RBX)), nil

	default:
		var err error
		prog, err = c.genArexpr(e.LHS, prog)
		if err != nil {
			return prog, err
		}
		prog, err = c.genArexpr(e.RHS, prog)
		if err != nil {
			return prog, err
		}

		prog.Add(asm.Pop(asm.R9)).Add(asm.Pop(asm.R8))

		prog = c.genArOp(e.Op, prog)
		return prog.Add(asm.Push(asm.R8)), nil
	}
}

// genArOp combines R8 (lhs) and R9 (rhs) per op, leaving the result in R8.
func (c *Codegen) genArOp(op ast.ArOp, prog *asm.Program) *asm.Program {
	switch op {
	case ast.OpAdd:
		return prog.Add(asm.Add(asm.R8, asm.R9))
	case ast.OpSub:
		return prog.Add(asm.Sub(asm.R8, asm.R9))
	case ast.OpMul:
		return prog.Add(asm.IMul(asm.R8, asm.R9))
	default: // OpDiv
		return prog.
			Add(asm.Mov(asm.RAX, asm.R8)).
			Add(asm.Xor(asm.RDX, asm.RDX)).
			Add(asm.IDiv(asm.R9)).
			Add(asm.Mov(asm.R8, asm.RAX))
	}
}

// genCond loads both operands of a condition through RBX - the same
// value register everything else in this compiler reads into - then
// copies each into R8/R9, compares them, and jumps to thenLabel when
// the comparison holds. The caller is responsible for what happens when
// it falls through.
func (c *Codegen) genCond(cond *ast.Cond, thenLabel string, prog *asm.Program) (*asm.Program, error) {
	var err error

	prog, err = c.genCondOperand(cond.LHS, prog)
	if err != nil {
		return prog, err
	}
	prog.Add(asm.Mov(asm.R8, asm.RBX))

	prog, err = c.genCondOperand(cond.RHS, prog)
	if err != nil {
		return prog, err
	}
	prog.Add(asm.Mov(asm.R9, asm.RBX))

	prog.Add(asm.Cmp(asm.R8, asm.R9))

	switch cond.Relop {
	case ast.Eq:
		prog.Add(asm.Je(thenLabel))
	case ast.Ne:
		prog.Add(asm.Jne(thenLabel))
	case ast.Ge:
		prog.Add(asm.Jge(thenLabel))
	case ast.Gt:
		prog.Add(asm.Jg(thenLabel))
	case ast.Le:
		prog.Add(asm.Jle(thenLabel))
	case ast.Lt:
		prog.Add(asm.Jl(thenLabel))
	}

	return prog, nil
}

// genCondOperand loads one side of a condition into RBX.
func (c *Codegen) genCondOperand(op ast.CondOperand, prog *asm.Program) (*asm.Program, error) {
	if op.Kind == ast.CondNum {
		return prog.Add(asm.Mov(asm.RBX, asm.Imm(op.Num))), nil
	}
	return c.symtab.Access(op.Ident, prog)
}
