package asm

import "testing"

// The literal scenario from the end-to-end peephole test: PUSH RAX; POP
// RBX; ADD RCX, 1; ADD RDX, 0; MOV R8, 0 folds to MOV RBX, RAX; INC RCX;
// XOR R8, R8.
func TestPeepholeLiteralScenario(t *testing.T) {
	p := New().
		Add(Push(RAX)).
		Add(Pop(RBX)).
		Add(Add(RCX, Imm(1))).
		Add(Add(RDX, Imm(0))).
		Add(Mov(R8, Imm(0)))

	got := Peephole(p)

	want := []Instruction{
		Mov(RBX, RAX),
		Inc(RCX),
		Xor(R8, R8),
	}

	if len(got.Entries) != len(want) {
		t.Fatalf("expected %d instructions, got %d (%+v)", len(want), len(got.Entries), got.Entries)
	}
	for i, e := range got.Entries {
		if e.Kind != EntryInstruction {
			t.Fatalf("entry %d: expected instruction, got kind %d", i, e.Kind)
		}
		if e.Instruction.Op != want[i].Op {
			t.Errorf("entry %d: expected op %q, got %q", i, want[i].Op, e.Instruction.Op)
		}
	}
}

func TestPeepholeIncDec(t *testing.T) {
	p := New().Add(Add(RAX, Imm(1))).Add(Sub(RBX, Imm(1)))

	got := Peephole(p)
	if got.Entries[0].Instruction.Op != "inc" {
		t.Errorf("expected inc, got %s", got.Entries[0].Instruction.Op)
	}
	if got.Entries[1].Instruction.Op != "dec" {
		t.Errorf("expected dec, got %s", got.Entries[1].Instruction.Op)
	}
}

func TestPeepholeDropsAddSubZero(t *testing.T) {
	p := New().Add(Add(RAX, Imm(0))).Add(Sub(RBX, Imm(0))).Add(Mov(RCX, Imm(5)))

	got := Peephole(p)
	if len(got.Entries) != 1 {
		t.Fatalf("expected the zero adds/subs to be dropped, got %+v", got.Entries)
	}
	if got.Entries[0].Instruction.Op != "mov" {
		t.Errorf("expected the surviving mov, got %+v", got.Entries[0])
	}
}

func TestPeepholeLabelsDoNotBreakPushPopWindow(t *testing.T) {
	p := New().Add(Push(RAX)).Label("line20").Add(Pop(RBX))

	// A label sits between the push and the pop; the rewrite from the
	// system this pass is ported from does not consider labels part of
	// the instruction stream, so the rewrite still fires.
	got := Peephole(p)

	var ops []string
	for _, e := range got.Entries {
		if e.Kind == EntryInstruction {
			ops = append(ops, e.Instruction.Op)
		}
	}
	if len(ops) != 1 || ops[0] != "mov" {
		t.Errorf("expected a single mov, got %+v", ops)
	}
}

func TestPeepholeIsIdempotent(t *testing.T) {
	p := New().
		Add(Push(RAX)).
		Add(Pop(RBX)).
		Add(Add(RCX, Imm(1))).
		Add(Mov(R8, Imm(0)))

	once := Peephole(p)
	twice := Peephole(once)

	if len(once.Entries) != len(twice.Entries) {
		t.Fatalf("peephole is not idempotent: %+v vs %+v", once.Entries, twice.Entries)
	}
	for i := range once.Entries {
		if once.Entries[i].Instruction.Op != twice.Entries[i].Instruction.Op {
			t.Errorf("entry %d changed on second pass: %q vs %q", i, once.Entries[i].Instruction.Op, twice.Entries[i].Instruction.Op)
		}
	}
}
