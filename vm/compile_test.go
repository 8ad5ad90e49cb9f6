package vm

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTree() Node {
	return Sequence(
		Store(Int(0), Constant(3)),
		If(
			Binary(Gt, Load(Int(0)), Constant(1)),
			While(Binary(Lt, Load(Int(0)), Constant(10)), Store(Int(0), Binary(Add, Load(Int(0)), Constant(1)))),
			Constant(-1),
		),
		Load(Int(0)),
	)
}

func TestCompileIdempotent(t *testing.T) {
	root := sampleTree()
	first := Compile(root)
	second := Compile(root)
	require.True(t, reflect.DeepEqual(first, second), "compiling the same tree twice must produce identical instruction streams")
}

func TestLowerIdempotent(t *testing.T) {
	root := sampleTree()
	a := Lower(root)
	b := Lower(root)

	ctxA := NewContext(1)
	ctxB := NewContext(1)
	require.Equal(t, a(ctxA), b(ctxB))
}

func TestCompileConstantIndexUsesDirectSet(t *testing.T) {
	prog := Compile(Store(Int(5), Constant(1)))
	require.Equal(t, OpSet, prog[len(prog)-1].Op)
	require.Equal(t, 5, prog[len(prog)-1].Int())
}

func TestCompileDynamicIndexUsesIndirect(t *testing.T) {
	prog := Compile(Store(Load(Int(0)), Constant(1)))
	var sawIndirect bool
	for _, instr := range prog {
		if instr.Op == OpSetIndirect {
			sawIndirect = true
		}
	}
	require.True(t, sawIndirect, "a non-constant index must compile through OpSetIndirect")
}

func TestDisassembleDoesNotPanicOnAnyProgram(t *testing.T) {
	prog := Compile(sampleTree())
	out := Disassemble(prog)
	require.NotEmpty(t, out)
}
