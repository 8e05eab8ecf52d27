package asm

// Peephole runs the instruction-stream optimization pass: a single
// forward scan that rewrites four patterns. Labels and function-block
// markers pass through untouched and do not interrupt the window - the
// "previous instruction" a PUSH/POP pair is matched against can be
// several lines above a label in the rendered text.
func Peephole(p *Program) *Program {
	out := &Program{Data: p.Data}

	// Index into out.Entries of a trailing, not-yet-consumed PUSH
	// instruction, or -1 if the previous emitted instruction wasn't one.
	lastPushIdx := -1
	var lastPushOperand Operand

	for _, e := range p.Entries {
		if e.Kind != EntryInstruction {
			out.Entries = append(out.Entries, e)
			continue
		}

		in := e.Instruction

		switch {
		case isAddOrSub(in) && isImmValue(in.Args[1], 1):
			op := "inc"
			if in.Op == "sub" {
				op = "dec"
			}
			out.Entries = append(out.Entries, Entry{
				Kind:        EntryInstruction,
				Instruction: Instruction{Op: op, Args: []Operand{in.Args[0]}},
			})
			lastPushIdx = -1

		case isAddOrSub(in) && isImmValue(in.Args[1], 0):
			// ADD/SUB by zero is a no-op: drop it. The window
			// (lastPushIdx) is left exactly as it was, matching the
			// semantics of the pass this was ported from.
			continue

		case in.Op == "mov" && isImmValue(in.Args[1], 0):
			dst := in.Args[0]
			out.Entries = append(out.Entries, Entry{
				Kind:        EntryInstruction,
				Instruction: Instruction{Op: "xor", Args: []Operand{dst, dst}},
			})
			lastPushIdx = -1

		case in.Op == "pop" && lastPushIdx >= 0:
			out.Entries[lastPushIdx] = Entry{
				Kind:        EntryInstruction,
				Instruction: Instruction{Op: "mov", Args: []Operand{in.Args[0], lastPushOperand}},
			}
			lastPushIdx = -1

		default:
			out.Entries = append(out.Entries, e)
			if in.Op == "push" {
				lastPushIdx = len(out.Entries) - 1
				lastPushOperand = in.Args[0]
			} else {
				lastPushIdx = -1
			}
		}
	}

	return out
}

func isAddOrSub(i Instruction) bool {
	return (i.Op == "add" || i.Op == "sub") && len(i.Args) == 2
}

func isImmValue(o Operand, v int64) bool {
	imm, ok := o.(Immediate)
	return ok && imm.Value == v
}
