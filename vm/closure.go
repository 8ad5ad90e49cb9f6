package vm

// Closure is a pre-resolved, directly callable form of a Node. Lowering a
// tree walks it exactly once; invoking the resulting Closure does no tree
// traversal at all, only calls into closures captured at lowering time —
// this isolates the cost of variant dispatch from the cost of recursion
// itself, per the design notes.
type Closure func(ctx *Context) float64

// Lower transforms root into a Closure. Invoking the result on any Context
// must produce the same value Evaluate would on the same tree and Context.
func Lower(root Node) Closure {
	return root.lower()
}

// Invoke runs c against ctx and recovers an out-of-range Load/Store panic
// into an error, the Closure-backend equivalent of EvaluateChecked and
// RunChecked.
func (c Closure) Invoke(ctx *Context) (result float64, err error) {
	defer recoverAsError(&err)
	result = c(ctx)
	return
}

func (n ConstantNode) lower() Closure {
	v := n.Value
	return func(ctx *Context) float64 { return v }
}

func (n SequenceNode) lower() Closure {
	children := make([]Closure, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.lower()
	}
	return func(ctx *Context) float64 {
		result := 0.0
		for _, child := range children {
			result = child(ctx)
		}
		return result
	}
}

func (n IfNode) lower() Closure {
	cond := n.Cond.lower()
	then := n.Then.lower()
	els := n.Else.lower()
	return func(ctx *Context) float64 {
		if cond(ctx) != 0 {
			return then(ctx)
		}
		return els(ctx)
	}
}

func (n WhileNode) lower() Closure {
	cond := n.Cond.lower()
	body := n.Body.lower()
	return func(ctx *Context) float64 {
		for cond(ctx) != 0 {
			body(ctx)
		}
		return 0
	}
}

func (n LoadNode) lower() Closure {
	index := n.Index.lower()
	return func(ctx *Context) float64 {
		return ctx.Load(IndexFromDouble(index(ctx)))
	}
}

func (n StoreNode) lower() Closure {
	index := n.Index.lower()
	value := n.Value.lower()
	return func(ctx *Context) float64 {
		i := IndexFromDouble(index(ctx))
		v := value(ctx)
		ctx.Store(i, v)
		return v
	}
}

func (n BinaryNode) lower() Closure {
	op := n.Op
	left := n.Left.lower()
	right := n.Right.lower()
	return func(ctx *Context) float64 {
		l := left(ctx)
		r := right(ctx)
		return evalBinOp(op, l, r)
	}
}

func (n UnaryNode) lower() Closure {
	op := n.Op
	x := n.X.lower()
	return func(ctx *Context) float64 {
		return evalUnOp(op, x(ctx))
	}
}
