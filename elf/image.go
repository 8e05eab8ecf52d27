package elf

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/skx/tinybasic/asm"
)

// ELF64/Linux-x86-64 structural constants.
const (
	elfHeaderSize  = 64
	progHeaderSize = 56
	numProgHeaders = 2

	// baseAddr is the fixed load address of the code segment, the
	// convention lcox74-bfcc's and tinyrange-rtg's backends both use for
	// a non-PIE static binary; nothing here needs position-independence.
	baseAddr = 0x400000
	pageSize = 0x1000
)

// ELF/program header field constants this emitter actually uses.
const (
	etExec     = 2
	emX86_64   = 0x3e
	ptLoad     = 1
	pfExecute  = 1
	pfWrite    = 2
	pfRead     = 4
)

func align(v, to uint64) uint64 {
	return (v + to - 1) &^ (to - 1)
}

// Build lays out prog as a static ELF64 executable: one R-X PT_LOAD
// covering the ELF/program headers and the code (so the loader can map
// entry without a separate segment for them), one RW PT_LOAD for the
// data section immediately after, page-aligned. Entry is the first
// instruction codegen emitted - the program's prologue.
func Build(prog *asm.Program) ([]byte, error) {
	as, err := Assemble(prog)
	if err != nil {
		return nil, err
	}

	headersSize := uint64(elfHeaderSize + progHeaderSize*numProgHeaders)
	codeOffset := headersSize
	codeVaddr := uint64(baseAddr) + codeOffset
	entry := codeVaddr

	codeSize := uint64(len(as.Code))
	dataOffset := align(codeOffset+codeSize, pageSize)
	dataVaddr := uint64(baseAddr) + dataOffset
	dataSize := uint64(len(as.Data))

	if err := as.Resolve(codeVaddr, dataVaddr); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writeELFHeader(&buf, entry)

	writeProgramHeader(&buf, programHeader{
		ptype:  ptLoad,
		flags:  pfRead | pfExecute,
		offset: 0,
		vaddr:  baseAddr,
		filesz: codeOffset + codeSize,
		memsz:  codeOffset + codeSize,
		align:  pageSize,
	})
	writeProgramHeader(&buf, programHeader{
		ptype:  ptLoad,
		flags:  pfRead | pfWrite,
		offset: dataOffset,
		vaddr:  dataVaddr,
		filesz: dataSize,
		memsz:  dataSize,
		align:  pageSize,
	})

	buf.Write(as.Code)
	for uint64(buf.Len()) < dataOffset {
		buf.WriteByte(0)
	}
	buf.Write(as.Data)

	return buf.Bytes(), nil
}

// WriteFile runs Build and writes the result to path, then marks it
// executable - spec's two final ELF-emission steps, kept together since
// neither means anything without the other.
func WriteFile(path string, prog *asm.Program) error {
	data, err := Build(prog)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	return os.Chmod(path, 0o755)
}

func writeU16(buf *bytes.Buffer, v uint16) { binary.Write(buf, binary.LittleEndian, v) }
func writeU32(buf *bytes.Buffer, v uint32) { binary.Write(buf, binary.LittleEndian, v) }
func writeU64(buf *bytes.Buffer, v uint64) { binary.Write(buf, binary.LittleEndian, v) }

func writeELFHeader(buf *bytes.Buffer, entry uint64) {
	buf.Write([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}) // magic, 64-bit, LE, version 1, SYSV ABI
	buf.Write(make([]byte, 8))                         // ABI version + padding, rest of e_ident

	writeU16(buf, etExec)
	writeU16(buf, emX86_64)
	writeU32(buf, 1) // e_version

	writeU64(buf, entry)
	writeU64(buf, elfHeaderSize) // e_phoff
	writeU64(buf, 0)             // e_shoff: no section headers

	writeU32(buf, 0) // e_flags
	writeU16(buf, elfHeaderSize)
	writeU16(buf, progHeaderSize)
	writeU16(buf, numProgHeaders)
	writeU16(buf, 0) // e_shentsize
	writeU16(buf, 0) // e_shnum
	writeU16(buf, 0) // e_shstrndx
}

type programHeader struct {
	ptype, flags           uint32
	offset, vaddr          uint64
	filesz, memsz, align   uint64
}

func writeProgramHeader(buf *bytes.Buffer, h programHeader) {
	writeU32(buf, h.ptype)
	writeU32(buf, h.flags)
	writeU64(buf, h.offset)
	writeU64(buf, h.vaddr)
	writeU64(buf, h.vaddr) // p_paddr, unused under Linux but required
	writeU64(buf, h.filesz)
	writeU64(buf, h.memsz)
	writeU64(buf, h.align)
}
