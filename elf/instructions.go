package elf

import (
	"github.com/pkg/errors"
	"github.com/skx/tinybasic/asm"
)

// emitInstruction encodes one IR instruction into the code buffer,
// queuing a fixup for any operand that names a label. Every mnemonic
// this compiler's codegen actually emits (see asm.go's constructor
// list) has a case; anything else is a codegen bug, not a user error,
// so it is reported rather than silently skipped.
func (a *assembler) emitInstruction(i asm.Instruction) error {
	switch i.Op {
	case "mov":
		return a.emitMov(i.Args[0], i.Args[1])
	case "add":
		return a.emitArith(0x01, 0x81, 0, i.Args[0], i.Args[1])
	case "sub":
		return a.emitArith(0x29, 0x81, 5, i.Args[0], i.Args[1])
	case "xor":
		return a.emitArith(0x31, 0x81, 6, i.Args[0], i.Args[1])
	case "imul":
		return a.emitImul(i.Args[0], i.Args[1])
	case "idiv":
		return a.emitIdiv(i.Args[0])
	case "cmp":
		return a.emitCmp(i.Args[0], i.Args[1])
	case "push":
		return a.emitPush(i.Args[0])
	case "pop":
		return a.emitPop(i.Args[0])
	case "inc":
		return a.emitIncDec(0, i.Args[0])
	case "dec":
		return a.emitIncDec(1, i.Args[0])
	case "jmp":
		return a.emitJmp(0xe9, nil, i.Args[0])
	case "je":
		return a.emitJmp(0x0f, []byte{0x84}, i.Args[0])
	case "jne":
		return a.emitJmp(0x0f, []byte{0x85}, i.Args[0])
	case "jge":
		return a.emitJmp(0x0f, []byte{0x8d}, i.Args[0])
	case "jg":
		return a.emitJmp(0x0f, []byte{0x8f}, i.Args[0])
	case "jle":
		return a.emitJmp(0x0f, []byte{0x8e}, i.Args[0])
	case "jl":
		return a.emitJmp(0x0f, []byte{0x8c}, i.Args[0])
	case "call":
		return a.emitCall(i.Args[0])
	case "syscall":
		a.emit(0x0f, 0x05)
		return nil
	default:
		return errors.Errorf("unencodable instruction %q", i.Op)
	}
}

func asReg(o asm.Operand) (asm.Register, bool) {
	r, ok := o.(asm.Register)
	return r, ok
}

// emitMov handles all three shapes codegen produces: register to
// register, an immediate into a register, and a data label's absolute
// address into a register (a movabs, backpatched once the data
// segment's base is known).
func (a *assembler) emitMov(dst, src asm.Operand) error {
	dstReg, ok := asReg(dst)
	if !ok {
		return errors.Errorf("mov destination must be a register, got %v", dst)
	}
	dstCode, err := regCode(dstReg)
	if err != nil {
		return err
	}

	switch v := src.(type) {
	case asm.Register:
		srcCode, err := regCode(v)
		if err != nil {
			return err
		}
		a.emit(rex(true, srcCode >= 8, dstCode >= 8), 0x89, modRM(srcCode, dstCode))
		return nil

	case asm.Immediate:
		a.emit(rex(true, false, dstCode >= 8), 0xc7, modRM(0, dstCode))
		a.emitImm32(int32(v.Value))
		return nil

	case asm.Memory:
		a.emit(rex(true, false, dstCode >= 8), 0xb8+(dstCode&7))
		a.queueAbsFixup(v.Label)
		a.emitImm64(0)
		return nil

	default:
		return errors.Errorf("unencodable mov source %v", src)
	}
}

// emitArith handles the register-register and register-immediate forms
// shared by ADD/SUB/XOR: regOp is the r/m64,r64 opcode, immOp is the
// r/m64,imm32 opcode (opcode group 0x81), and immReg selects that
// group's /digit extension.
func (a *assembler) emitArith(regOp, immOp, immReg byte, dst, src asm.Operand) error {
	dstReg, ok := asReg(dst)
	if !ok {
		return errors.Errorf("arithmetic destination must be a register, got %v", dst)
	}
	dstCode, err := regCode(dstReg)
	if err != nil {
		return err
	}

	switch v := src.(type) {
	case asm.Register:
		srcCode, err := regCode(v)
		if err != nil {
			return err
		}
		a.emit(rex(true, srcCode >= 8, dstCode >= 8), regOp, modRM(srcCode, dstCode))
		return nil

	case asm.Immediate:
		a.emit(rex(true, false, dstCode >= 8), immOp, modRM(immReg, dstCode))
		a.emitImm32(int32(v.Value))
		return nil

	default:
		return errors.Errorf("unencodable arithmetic source %v", src)
	}
}

// emitImul handles both IMUL forms this compiler uses: two-operand
// register multiply (R8 *= R9), and a register multiplied in place by
// an immediate (RCX *= 8 in the printn helper).
func (a *assembler) emitImul(dst, src asm.Operand) error {
	dstReg, ok := asReg(dst)
	if !ok {
		return errors.Errorf("imul destination must be a register, got %v", dst)
	}
	dstCode, err := regCode(dstReg)
	if err != nil {
		return err
	}

	switch v := src.(type) {
	case asm.Register:
		srcCode, err := regCode(v)
		if err != nil {
			return err
		}
		a.emit(rex(true, dstCode >= 8, srcCode >= 8), 0x0f, 0xaf, modRM(dstCode, srcCode))
		return nil

	case asm.Immediate:
		a.emit(rex(true, dstCode >= 8, dstCode >= 8), 0x69, modRM(dstCode, dstCode))
		a.emitImm32(int32(v.Value))
		return nil

	default:
		return errors.Errorf("unencodable imul source %v", src)
	}
}

// emitIdiv encodes IDIV src: the dividend is the implicit RDX:RAX pair,
// exactly as genArOp/printn set it up before calling here.
func (a *assembler) emitIdiv(src asm.Operand) error {
	reg, ok := asReg(src)
	if !ok {
		return errors.Errorf("idiv operand must be a register, got %v", src)
	}
	code, err := regCode(reg)
	if err != nil {
		return err
	}
	a.emit(rex(true, false, code >= 8), 0xf7, modRM(7, code))
	return nil
}

// emitCmp encodes CMP lhs, rhs as "lhs - rhs", so the Jcc that follows
// in genCond/the printn helper reads the flags the way its mnemonic
// promises.
func (a *assembler) emitCmp(lhs, rhs asm.Operand) error {
	lhsReg, ok := asReg(lhs)
	if !ok {
		return errors.Errorf("cmp left operand must be a register, got %v", lhs)
	}
	lhsCode, err := regCode(lhsReg)
	if err != nil {
		return err
	}

	switch v := rhs.(type) {
	case asm.Register:
		rhsCode, err := regCode(v)
		if err != nil {
			return err
		}
		a.emit(rex(true, rhsCode >= 8, lhsCode >= 8), 0x39, modRM(rhsCode, lhsCode))
		return nil

	case asm.Immediate:
		a.emit(rex(true, false, lhsCode >= 8), 0x81, modRM(7, lhsCode))
		a.emitImm32(int32(v.Value))
		return nil

	default:
		return errors.Errorf("unencodable cmp operand %v", rhs)
	}
}

func (a *assembler) emitPush(src asm.Operand) error {
	switch v := src.(type) {
	case asm.Register:
		code, err := regCode(v)
		if err != nil {
			return err
		}
		if code >= 8 {
			a.emit(0x41)
		}
		a.emit(0x50 + (code & 7))
		return nil

	case asm.Immediate:
		a.emit(0x68)
		a.emitImm32(int32(v.Value))
		return nil

	default:
		return errors.Errorf("unencodable push operand %v", src)
	}
}

func (a *assembler) emitPop(dst asm.Operand) error {
	reg, ok := asReg(dst)
	if !ok {
		return errors.Errorf("pop destination must be a register, got %v", dst)
	}
	code, err := regCode(reg)
	if err != nil {
		return err
	}
	if code >= 8 {
		a.emit(0x41)
	}
	a.emit(0x58 + (code & 7))
	return nil
}

func (a *assembler) emitIncDec(digit byte, dst asm.Operand) error {
	reg, ok := asReg(dst)
	if !ok {
		return errors.Errorf("inc/dec operand must be a register, got %v", dst)
	}
	code, err := regCode(reg)
	if err != nil {
		return err
	}
	a.emit(rex(true, false, code >= 8), 0xff, modRM(digit, code))
	return nil
}

// emitJmp encodes JMP and every Jcc this compiler uses: opcode is the
// leading byte (0xe9 for JMP, 0x0f for a two-byte Jcc), ext is the
// second byte of a two-byte opcode (nil for JMP), and target is always
// a Memory operand naming a code label - control flow never targets a
// register or an immediate in this IR.
func (a *assembler) emitJmp(opcode byte, ext []byte, target asm.Operand) error {
	label, ok := target.(asm.Memory)
	if !ok {
		return errors.Errorf("jump target must be a label, got %v", target)
	}
	a.emit(opcode)
	a.emit(ext...)
	a.queueRelFixup(label.Label)
	a.emitImm32(0)
	return nil
}

func (a *assembler) emitCall(target asm.Operand) error {
	label, ok := target.(asm.Memory)
	if !ok {
		return errors.Errorf("call target must be a label, got %v", target)
	}
	a.emit(0xe8)
	a.queueRelFixup(label.Label)
	a.emitImm32(0)
	return nil
}
