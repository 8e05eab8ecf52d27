// Package symtab holds the compiler's symbol table: a process-local
// mapping from identifier to stack slot, built during AST construction
// and consulted read-only during lowering.
//
// Access/write live here, rather than as a plain lookup plus a generic
// memory-operand encode in codegen, because the assembly IR this
// compiler targets has no [base+offset] memory operand (see asm). An
// address is instead synthesised by temporarily repointing RSP at the
// frame base held in R15, pushing or popping through it, then restoring
// RSP from the scratch register R14. This is a deliberate simplification
// of the IR, not a property of the language.
package symtab

import (
	"github.com/pkg/errors"
	"github.com/skx/tinybasic/asm"
)

// Type is the type of a symbol table entry.
type Type int

// The two symbol types TinyBASIC variables can have. Strings are never
// stored in a variable by this language - Non-goal, see SPEC_FULL.md -
// so TypeString exists only to keep Size() total and mirror the
// original design's enum.
const (
	TypeInt Type = iota
	TypeString
)

// Size returns the stack footprint of a symbol of this type.
func (t Type) Size() uint32 {
	if t == TypeInt {
		return 8
	}
	return 0
}

// Symbol is one entry: its type and its offset from the frame base.
type Symbol struct {
	Type    Type
	Address uint32
}

// StartAddr is this symbol's start offset from the frame base - used
// when writing.
func (s Symbol) StartAddr() uint32 { return s.Address }

// EndAddr is this symbol's end offset from the frame base - used when
// reading, since the value sits just below the end of its slot once
// pushed.
func (s Symbol) EndAddr() uint32 { return s.Address + s.Type.Size() }

// SymbolTable maps identifiers to stack slots, in first-declaration-wins,
// insertion order.
type SymbolTable struct {
	symbols        map[string]Symbol
	order          []string
	currentAddress uint32
}

// New returns an empty symbol table.
func New() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// Insert records a new symbol if name is not already known. Re-declaring
// an existing name is a no-op: first declaration wins, which is
// TinyBASIC's variable-introduction rule.
func (t *SymbolTable) Insert(name string, ty Type) {
	if _, ok := t.symbols[name]; ok {
		return
	}

	t.symbols[name] = Symbol{Type: ty, Address: t.currentAddress}
	t.order = append(t.order, name)
	t.currentAddress += 8
}

// Get looks up a symbol by name.
func (t *SymbolTable) Get(name string) (Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Size is the number of bytes to reserve on the stack at program entry:
// 8 bytes for every distinct Int symbol. Strings are never stack-resident.
func (t *SymbolTable) Size() uint32 {
	var total uint32
	for _, name := range t.order {
		s := t.symbols[name]
		if s.Type != TypeString {
			total += s.Type.Size()
		}
	}
	return total
}

// Access emits code that loads name's value into RBX, the value
// register, via a temporary RSP reassignment through the frame base in
// R15.
func (t *SymbolTable) Access(name string, program *asm.Program) (*asm.Program, error) {
	sym, ok := t.Get(name)
	if !ok {
		return program, errors.Errorf("access of undeclared identifier %q", name)
	}

	addr := int32(sym.EndAddr())

	return program.
		Add(asm.Mov(asm.R14, asm.RSP)).
		Add(asm.Mov(asm.RSP, asm.R15)).
		Add(asm.Sub(asm.RSP, asm.Imm(addr))).
		Add(asm.Pop(asm.RBX)).
		Add(asm.Mov(asm.RSP, asm.R14)), nil
}

// Write emits code that stores value at name's stack slot, via the same
// RSP-juggling trick as Access.
func (t *SymbolTable) Write(name string, value asm.Operand, program *asm.Program) (*asm.Program, error) {
	sym, ok := t.Get(name)
	if !ok {
		return program, errors.Errorf("write to undeclared identifier %q", name)
	}

	addr := int32(sym.StartAddr())

	return program.
		Add(asm.Mov(asm.R14, asm.RSP)).
		Add(asm.Mov(asm.RSP, asm.R15)).
		Add(asm.Sub(asm.RSP, asm.Imm(addr))).
		Add(asm.Push(value)).
		Add(asm.Mov(asm.RSP, asm.R14)), nil
}
