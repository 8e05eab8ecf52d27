// Package elf turns a finished asm.Program into a static Linux/x86-64
// ELF64 executable: instruction encoding, two-pass label backpatching,
// and the minimal header/program-header layout a freestanding binary
// needs. There is no disassembler, no relocations beyond the handful
// this compiler's own IR produces, and no section headers - only what
// the kernel's loader requires to map and run the image.
package elf

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/skx/tinybasic/asm"
)

// fixupKind distinguishes the two displacement shapes a backpatch can
// need: IP-relative for control flow, absolute for data references.
type fixupKind int

const (
	fixupRel32 fixupKind = iota
	fixupAbs64
)

// fixup records one placeholder's position and the label it resolves
// against; queued during instruction encoding, resolved once every
// label's final address is known.
type fixup struct {
	pos   int
	label string
	kind  fixupKind
}

// Assembly is the encoded byte stream for one Program: raw code, raw
// data, and everything Resolve needs to backpatch the former against
// final load addresses.
type Assembly struct {
	Code []byte
	Data []byte

	labels     map[string]int
	dataLabels map[string]int
	fixups     []fixup
}

// Assemble walks prog's entries in source order, encoding each
// instruction and recording the byte offset of every label - including
// the three helper function labels, which are labels like any other
// from the encoder's point of view. Symbolic operands are left as
// zeroed placeholders with a queued fixup; Resolve patches them once
// segment base addresses are known.
func Assemble(prog *asm.Program) (*Assembly, error) {
	a := &assembler{
		labels:     make(map[string]int),
		dataLabels: make(map[string]int),
	}

	for _, d := range prog.Data {
		a.dataLabels[d.Label] = len(a.data)
		a.data = append(a.data, d.Bytes...)
	}

	for _, e := range prog.Entries {
		switch e.Kind {
		case asm.EntryLabel, asm.EntryFuncBegin:
			a.labels[e.Label] = len(a.code)
		case asm.EntryFuncEnd:
			// The IR marks a helper's end structurally, with no
			// explicit return instruction (see asm.Program.FuncEnd) -
			// the encoder is what turns that marker into a RET.
			a.emit(0xc3)
		case asm.EntryInstruction:
			if err := a.emitInstruction(e.Instruction); err != nil {
				return nil, err
			}
		}
	}

	return &Assembly{
		Code:       a.code,
		Data:       a.data,
		labels:     a.labels,
		dataLabels: a.dataLabels,
		fixups:     a.fixups,
	}, nil
}

// Resolve patches every queued fixup now that codeBase and dataBase -
// the final load addresses of the two segments - are known. Rel32
// fixups (JMP/Jcc/CALL) compute the displacement from the end of the
// four-byte placeholder to the label's resolved address; Abs64 fixups
// (a data label loaded into a register) write the label's absolute
// address in place.
func (a *Assembly) Resolve(codeBase, dataBase uint64) error {
	for _, f := range a.fixups {
		switch f.kind {
		case fixupRel32:
			off, ok := a.labels[f.label]
			if !ok {
				return errors.Errorf("undefined label %q", f.label)
			}
			target := int64(codeBase) + int64(off)
			instrEnd := int64(codeBase) + int64(f.pos) + 4
			rel := target - instrEnd
			if rel > int64(1<<31-1) || rel < -int64(1<<31) {
				return errors.Errorf("displacement to %q out of rel32 range", f.label)
			}
			binary.LittleEndian.PutUint32(a.Code[f.pos:], uint32(int32(rel)))

		case fixupAbs64:
			off, ok := a.dataLabels[f.label]
			if !ok {
				return errors.Errorf("undefined data label %q", f.label)
			}
			binary.LittleEndian.PutUint64(a.Code[f.pos:], dataBase+uint64(off))
		}
	}
	return nil
}

// assembler is the mutable state Assemble builds up in a single forward
// pass over the program's entries.
type assembler struct {
	code []byte
	data []byte

	labels     map[string]int
	dataLabels map[string]int
	fixups     []fixup
}

func (a *assembler) emit(b ...byte) { a.code = append(a.code, b...) }

func (a *assembler) emitImm32(v int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	a.emit(b[:]...)
}

func (a *assembler) emitImm64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	a.emit(b[:]...)
}

func (a *assembler) queueRelFixup(label string) {
	a.fixups = append(a.fixups, fixup{pos: len(a.code), label: label, kind: fixupRel32})
}

func (a *assembler) queueAbsFixup(label string) {
	a.fixups = append(a.fixups, fixup{pos: len(a.code), label: label, kind: fixupAbs64})
}
