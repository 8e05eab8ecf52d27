// Package asm is the assembly intermediate representation that sits
// between the AST lowering in codegen and the ELF emitter: an ordered
// list of instructions, labels and function-block markers, plus a
// byte-addressable data section, built with a fluent API.
//
// There is no memory operand of the form [base+offset] - the original
// design this is ported from makes the same simplification, pushing the
// complexity of synthesising addresses onto symtab's access/write helpers
// instead (see design note in symtab).
package asm

import "fmt"

// Width is the bit-width of an immediate operand.
type Width int

// Immediate widths. Width32 is the only one any instruction this
// compiler emits actually needs - codegen's line numbers, literal
// values and syscall arguments all fit in 32 bits - so it is the only
// width constant kept; see DESIGN.md's asm grounding entry for why a
// richer Width enum isn't carried unused.
const (
	Width32 Width = 32
)

// Operand is any value an instruction can act on: a register, an
// immediate, or a symbolic label reference.
type Operand interface {
	fmt.Stringer
	isOperand()
}

// Register names the fixed set of general-purpose registers this compiler
// uses. See codegen for the convention each one is assigned.
type Register int

// The registers this compiler emits code for.
const (
	RAX Register = iota
	RBX
	RCX
	RDX
	RSI
	RDI
	RSP
	RBP
	R8
	R9
	R14
	R15
)

var registerNames = map[Register]string{
	RAX: "RAX", RBX: "RBX", RCX: "RCX", RDX: "RDX",
	RSI: "RSI", RDI: "RDI", RSP: "RSP", RBP: "RBP",
	R8: "R8", R9: "R9", R14: "R14", R15: "R15",
}

func (r Register) String() string { return registerNames[r] }
func (Register) isOperand()       {}

// Immediate is a constant value with a declared width.
type Immediate struct {
	Value int64
	Width Width
}

// Imm builds a 32-bit immediate, the width used throughout codegen for
// line numbers, literal values and syscall arguments.
func Imm(v int32) Immediate { return Immediate{Value: int64(v), Width: Width32} }

func (i Immediate) String() string { return fmt.Sprintf("%d", i.Value) }
func (Immediate) isOperand()       {}

// Memory is a symbolic reference to a label: a jump/call target, or -
// when it appears as an instruction operand elsewhere - a data-section
// address to be resolved by the ELF emitter's backpatch pass.
type Memory struct {
	Label string
}

func (m Memory) String() string { return m.Label }
func (Memory) isOperand()       {}

// Instruction is one mnemonic plus its operands.
type Instruction struct {
	Op   string
	Args []Operand
}

func inst(op string, args ...Operand) Instruction {
	return Instruction{Op: op, Args: args}
}

// Mov, Add, Sub ... one constructor per mnemonic this compiler emits,
// mirroring the instruction-variant constructors of the system this was
// ported from.
func Mov(dst, src Operand) Instruction  { return inst("mov", dst, src) }
func Add(dst, src Operand) Instruction  { return inst("add", dst, src) }
func Sub(dst, src Operand) Instruction  { return inst("sub", dst, src) }
func IMul(dst, src Operand) Instruction { return inst("imul", dst, src) }
func IDiv(src Operand) Instruction      { return inst("idiv", src) }
func Xor(dst, src Operand) Instruction  { return inst("xor", dst, src) }
func Cmp(lhs, rhs Operand) Instruction  { return inst("cmp", lhs, rhs) }
func Push(src Operand) Instruction      { return inst("push", src) }
func Pop(dst Operand) Instruction       { return inst("pop", dst) }
func Inc(dst Operand) Instruction       { return inst("inc", dst) }
func Dec(dst Operand) Instruction       { return inst("dec", dst) }
func Jmp(label string) Instruction      { return inst("jmp", Memory{Label: label}) }
func Je(label string) Instruction       { return inst("je", Memory{Label: label}) }
func Jne(label string) Instruction      { return inst("jne", Memory{Label: label}) }
func Jge(label string) Instruction      { return inst("jge", Memory{Label: label}) }
func Jg(label string) Instruction       { return inst("jg", Memory{Label: label}) }
func Jle(label string) Instruction      { return inst("jle", Memory{Label: label}) }
func Jl(label string) Instruction       { return inst("jl", Memory{Label: label}) }
func Call(label string) Instruction     { return inst("call", Memory{Label: label}) }
func Syscall() Instruction              { return inst("syscall") }

// EntryKind distinguishes the four things a Program's entry list can hold.
type EntryKind int

// Kinds of Program entry.
const (
	EntryInstruction EntryKind = iota
	EntryLabel
	EntryFuncBegin
	EntryFuncEnd
)

// Entry is one element of a Program: either an instruction, or one of the
// three marker kinds (label, function begin, function end).
type Entry struct {
	Kind        EntryKind
	Instruction Instruction
	Label       string
}

// DataEntry is one named blob in the data section.
type DataEntry struct {
	Label string
	Bytes []byte
}

// Program is the ordered instruction stream plus its data section.
type Program struct {
	Entries []Entry
	Data    []DataEntry
}

// New returns an empty Program.
func New() *Program {
	return &Program{}
}

// Add appends an instruction and returns the Program for chaining.
func (p *Program) Add(i Instruction) *Program {
	p.Entries = append(p.Entries, Entry{Kind: EntryInstruction, Instruction: i})
	return p
}

// Label appends a label declaration.
func (p *Program) Label(name string) *Program {
	p.Entries = append(p.Entries, Entry{Kind: EntryLabel, Label: name})
	return p
}

// Func opens a named function-block (printn, print, read): a label that
// also demarcates a helper routine for rendering and debug purposes.
func (p *Program) Func(name string) *Program {
	p.Entries = append(p.Entries, Entry{Kind: EntryFuncBegin, Label: name})
	return p
}

// FuncEnd closes the most recently opened function-block. It carries no
// return instruction of its own - the IR has none - callers reach helper
// blocks only via Call, so elf.Assemble is what turns this marker into an
// actual RET byte during encoding.
func (p *Program) FuncEnd() *Program {
	p.Entries = append(p.Entries, Entry{Kind: EntryFuncEnd})
	return p
}

// InsertData appends a named blob to the data section and returns the
// Program for chaining.
func (p *Program) InsertData(label string, data []byte) *Program {
	p.Data = append(p.Data, DataEntry{Label: label, Bytes: data})
	return p
}
