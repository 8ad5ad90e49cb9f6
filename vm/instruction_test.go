package vm

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestInstructionSize(t *testing.T) {
	var i Instruction
	require.EqualValues(t, 16, unsafe.Sizeof(i), "Instruction must stay a fixed 16-byte record")
}

func TestPushInstrRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 3.5, -0.25, 1e300, -1e-300} {
		instr := pushInstr(v)
		require.Equal(t, OpPush, instr.Op)
		require.Equal(t, v, instr.Double())
	}
}

func TestIntInstrRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, -1, 1000, -1000, 1<<20 - 1} {
		instr := intInstr(OpGet, n)
		require.Equal(t, n, instr.Int())
	}
}

func TestOpcodeString(t *testing.T) {
	require.Equal(t, "push", OpPush.String())
	require.Equal(t, "get_indirect", OpGetIndirect.String())
	require.Contains(t, Opcode(200).String(), "unknown")
}

func TestInstructionString(t *testing.T) {
	require.Contains(t, pushInstr(2.5).String(), "2.5")
	require.Contains(t, intInstr(OpJmp, 7).String(), "7")
	require.Equal(t, "add", bareInstr(OpAdd).String())
}
