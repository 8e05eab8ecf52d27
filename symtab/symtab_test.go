package symtab

import (
	"testing"

	"github.com/skx/tinybasic/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertThenGetRoundTrips(t *testing.T) {
	tbl := New()

	tbl.Insert("A", TypeInt)
	tbl.Insert("B", TypeInt)

	a, ok := tbl.Get("A")
	require.True(t, ok)
	assert.Equal(t, uint32(0), a.Address)

	b, ok := tbl.Get("B")
	require.True(t, ok)
	assert.Equal(t, uint32(8), b.Address)
}

func TestInsertIsNoOpForExistingName(t *testing.T) {
	tbl := New()

	tbl.Insert("A", TypeInt)
	tbl.Insert("A", TypeInt)

	a, ok := tbl.Get("A")
	require.True(t, ok)
	assert.Equal(t, uint32(0), a.Address, "re-declaring an existing name must not move its slot")
	assert.Equal(t, uint32(8), tbl.Size())
}

func TestSizeCountsEightBytesPerIntSymbol(t *testing.T) {
	tbl := New()

	names := []string{"A", "B", "C", "D"}
	for _, n := range names {
		tbl.Insert(n, TypeInt)
	}

	assert.Equal(t, uint32(8*len(names)), tbl.Size())
}

func TestStringSymbolsAreNotStackAllocated(t *testing.T) {
	tbl := New()

	tbl.Insert("A", TypeInt)
	tbl.Insert("MSG", TypeString)

	assert.Equal(t, uint32(8), tbl.Size())
}

func TestAccessOfUndeclaredIdentifierErrors(t *testing.T) {
	tbl := New()

	_, err := tbl.Access("MISSING", asm.New())
	require.Error(t, err)
}

func TestAccessEmitsFrameJuggleSequence(t *testing.T) {
	tbl := New()
	tbl.Insert("A", TypeInt)

	prog, err := tbl.Access("A", asm.New())
	require.NoError(t, err)

	require.Len(t, prog.Entries, 5)
	assert.Equal(t, "mov", prog.Entries[0].Instruction.Op)
	assert.Equal(t, "pop", prog.Entries[3].Instruction.Op)
	assert.Equal(t, asm.RBX, prog.Entries[3].Instruction.Args[0])
}

func TestWriteEmitsFrameJuggleSequence(t *testing.T) {
	tbl := New()
	tbl.Insert("A", TypeInt)

	prog, err := tbl.Write("A", asm.RBX, asm.New())
	require.NoError(t, err)

	require.Len(t, prog.Entries, 5)
	assert.Equal(t, "push", prog.Entries[3].Instruction.Op)
}
