package programs

import "exprbench/vm"

// Memory layout used by Fibonacci. FibN must be set by the caller before a
// run; FibResult holds the answer afterward (and is also the tree's value,
// since the last statement loads it).
const (
	FibN = iota
	FibA
	FibB
	FibI
	FibTmp
	FibResult

	// FibMemorySize is the minimum Context size Fibonacci needs.
	FibMemorySize
)

// Fibonacci builds an iterative Fibonacci computation: starting from
// mem[FibN], it computes the FibN'th Fibonacci number using a three-variable
// swap inside a counted while loop, the same algorithm every imperative
// Fibonacci sample uses, just expressed as a vm.Node tree instead of source
// text.
func Fibonacci() vm.Node {
	return Seq(
		Set(FibA, Num(0)),
		Set(FibB, Num(1)),
		Set(FibI, Num(0)),
		While(
			Lt(Get(FibI), Get(FibN)),
			Seq(
				Set(FibTmp, Add(Get(FibA), Get(FibB))),
				Set(FibA, Get(FibB)),
				Set(FibB, Get(FibTmp)),
				Set(FibI, Add(Get(FibI), Num(1))),
			),
		),
		Set(FibResult, Get(FibA)),
		Get(FibResult),
	)
}

// NewFibonacciContext allocates a Context sized for Fibonacci with mem[FibN]
// preset to n.
func NewFibonacciContext(n int) *vm.Context {
	ctx := vm.NewContext(FibMemorySize)
	ctx.Store(FibN, float64(n))
	return ctx
}
