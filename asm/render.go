package asm

import (
	"fmt"
	"strings"
)

// AsAsm renders the program as AT&T-free, mnemonic-first assembly text,
// suitable for the udump.asm/dump.asm artifacts. It is a debugging aid,
// not the code path that produces the executable - that's elf.Assemble.
func (p *Program) AsAsm() string {
	var b strings.Builder

	for _, e := range p.Entries {
		switch e.Kind {
		case EntryLabel, EntryFuncBegin:
			fmt.Fprintf(&b, "%s:\n", e.Label)
		case EntryFuncEnd:
			// no text; purely a structural marker
		case EntryInstruction:
			fmt.Fprintf(&b, "    %s\n", instructionText(e.Instruction))
		}
	}

	if len(p.Data) > 0 {
		b.WriteString("\n.data\n")
		for _, d := range p.Data {
			fmt.Fprintf(&b, "%s: %s\n", d.Label, quoteBytes(d.Bytes))
		}
	}

	return b.String()
}

func instructionText(i Instruction) string {
	if len(i.Args) == 0 {
		return strings.ToUpper(i.Op)
	}

	parts := make([]string, len(i.Args))
	for idx, a := range i.Args {
		parts[idx] = a.String()
	}
	return strings.ToUpper(i.Op) + " " + strings.Join(parts, ", ")
}

// quoteBytes renders a data blob as a Go-style quoted string with escapes,
// which is legible in the .asm dump without needing a real assembler's
// `.byte`/`.ascii` directive grammar.
func quoteBytes(data []byte) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range data {
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case 0:
			b.WriteString(`\0`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
