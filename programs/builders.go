// Package programs collects hand-built expression trees used by the
// benchmark driver and by the cross-backend tests in package vm. None of
// this is part of the core evaluation model — it is sugar on top of the
// vm.Node constructors so the sample programs below read closer to the
// language they describe than to a tree literal.
package programs

import "exprbench/vm"

// Seq chains statements, discarding every value but the last.
func Seq(nodes ...vm.Node) vm.Node { return vm.Sequence(nodes...) }

// Set stores value at a fixed memory address.
func Set(addr int, value vm.Node) vm.Node {
	return vm.Store(vm.Int(addr), value)
}

// Get reads a fixed memory address.
func Get(addr int) vm.Node {
	return vm.Load(vm.Int(addr))
}

// GetAt reads the memory cell at a runtime-computed address, for array-style
// indexing where the index isn't known until the tree runs.
func GetAt(index vm.Node) vm.Node { return vm.Load(index) }

// SetAt writes value to the memory cell at a runtime-computed address.
func SetAt(index, value vm.Node) vm.Node { return vm.Store(index, value) }

// Num is sugar for an integer-valued constant.
func Num(v int) vm.Node { return vm.Int(v) }

func Add(l, r vm.Node) vm.Node { return vm.Binary(vm.Add, l, r) }
func Sub(l, r vm.Node) vm.Node { return vm.Binary(vm.Sub, l, r) }
func Mul(l, r vm.Node) vm.Node { return vm.Binary(vm.Mul, l, r) }
func Lt(l, r vm.Node) vm.Node  { return vm.Binary(vm.Lt, l, r) }
func Gt(l, r vm.Node) vm.Node  { return vm.Binary(vm.Gt, l, r) }
func Lte(l, r vm.Node) vm.Node { return vm.Binary(vm.Lte, l, r) }
func Gte(l, r vm.Node) vm.Node { return vm.Binary(vm.Gte, l, r) }
func Eq(l, r vm.Node) vm.Node  { return vm.Binary(vm.Eq, l, r) }
func And(l, r vm.Node) vm.Node { return vm.Binary(vm.And, l, r) }
func Not(x vm.Node) vm.Node    { return vm.Unary(vm.Not, x) }

// If and While pass straight through; kept here so callers only need to
// import package programs, not vm, when assembling a sample program.
func If(cond, then, els vm.Node) vm.Node { return vm.If(cond, then, els) }
func While(cond, body vm.Node) vm.Node   { return vm.While(cond, body) }
