package vm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStoreValueAsymmetry documents a deliberate divergence between the
// tree walker and the bytecode compiler: a Store used directly in value
// position. Evaluate returns the stored value (the assignment-as-expression
// reading every backend otherwise agrees on); Compile/Run does not, because
// StoreNode.compileInto never re-pushes the value it just wrote regardless
// of useValue. Nothing in this repository's sample programs puts a Store in
// value position, so the two backends never disagree on anything that is
// actually used — see the design notes for the decision to leave it this
// way rather than spend an extra push/pop pair keeping them in lockstep.
func TestStoreValueAsymmetry(t *testing.T) {
	ctx := NewContext(1)
	root := Store(Int(0), Constant(42))

	treeResult := Evaluate(root, cloneContext(ctx))
	require.Equal(t, 42.0, treeResult, "tree walker yields the stored value")

	bytecodeResult := Run(Compile(root), cloneContext(ctx))
	require.Equal(t, 0.0, bytecodeResult, "bytecode leaves nothing on the stack for a value-position Store")
}

// TestWhileValueAsymmetry checks the companion Open Question: a While used
// in value position. Unlike Store, this never actually produces a different
// number — WhileNode.eval always returns 0, and the bytecode compiler's
// refusal to push anything for a While also leaves Run defaulting to 0 for
// an empty stack. The two backends reach the same answer by different
// means: the tree walker returns 0 explicitly, the bytecode compiler simply
// never produces a value to return.
func TestWhileValueAsymmetry(t *testing.T) {
	ctx := NewContext(1)
	root := While(Constant(0), Constant(1))

	treeResult := Evaluate(root, cloneContext(ctx))
	bytecodeResult := Run(Compile(root), cloneContext(ctx))

	require.Zero(t, treeResult)
	require.Zero(t, bytecodeResult)
}
