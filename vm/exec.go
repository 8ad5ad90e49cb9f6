package vm

import (
	"fmt"
	"math"
)

// DefaultStackCapacity is used by Run (and by a zero-value Machine) when no
// explicit capacity is set. 1024 is comfortably more than the two sample
// programs in package programs ever need.
const DefaultStackCapacity = 1024

// Machine configures one invocation of the stack-based bytecode
// interpreter. The zero value is a usable Machine with default stack
// capacity, no step limit, and debug assertions disabled — the same
// "struct with sane zero value" shape the teacher uses for its Thread-like
// configuration types.
type Machine struct {
	// StackCapacity bounds the operand stack. Zero means DefaultStackCapacity.
	StackCapacity int

	// MaxSteps bounds the number of dispatched instructions before Run
	// panics with an "exceeded step limit" error. Zero means unlimited. This
	// exists as a courtesy guard for the property-based tests in
	// vm/quickcheck_test.go, whose generated While loops are already bounded
	// by their own counters — it has no effect on any program that finishes
	// within MaxSteps instructions.
	MaxSteps uint64

	// Debug enables the stack-depth assertions called for in the stack
	// discipline property: a violated invariant is reported as
	// ErrStackCorruption instead of corrupting Context memory or panicking
	// with a bare index-out-of-range.
	Debug bool
}

// Run executes prog against ctx using default Machine settings and returns
// the top of the operand stack at termination, or 0 if the stack is empty.
// It panics with a typed error (see errors.go) on an invalid program; use
// RunChecked to get that back as a plain error instead.
func Run(prog []Instruction, ctx *Context) float64 {
	var m Machine
	return m.Run(prog, ctx)
}

// RunChecked behaves like Run but recovers a panic raised by the unchecked
// path and returns it as an error, mirroring the teacher's
// getDefaultRecoverFuncForVM.
func RunChecked(prog []Instruction, ctx *Context) (result float64, err error) {
	defer recoverAsError(&err)
	result = Run(prog, ctx)
	return
}

func (m *Machine) stackCapacity() int {
	if m.StackCapacity > 0 {
		return m.StackCapacity
	}
	return DefaultStackCapacity
}

// Run executes prog against ctx with this Machine's configuration.
func (m *Machine) Run(prog []Instruction, ctx *Context) (result float64) {
	stack := make([]float64, m.stackCapacity())
	sp := 0
	ip := 0
	var steps uint64

	if m.Debug {
		defer func() {
			if r := recover(); r == nil {
				return
			} else if ee, ok := r.(*execError); ok {
				panic(ee)
			} else {
				panic(newExecError(ErrStackCorruption, ip))
			}
		}()
	}

	for ip < len(prog) {
		if m.MaxSteps > 0 {
			steps++
			if steps > m.MaxSteps {
				panic(newExecError(fmt.Errorf("vm: exceeded step limit %d", m.MaxSteps), ip))
			}
		}

		instr := prog[ip]
		switch instr.Op {
		case OpNoop:
			// placeholder left over only if a jump target was never patched
		case OpPush:
			stack[sp] = instr.Double()
			sp++
		case OpPop:
			sp--
		case OpJmp:
			target := m.validJumpTarget(instr, ip, len(prog))
			ip = target
			continue
		case OpPopJmpIfFalse:
			sp--
			cond := stack[sp]
			if cond == 0 {
				ip = m.validJumpTarget(instr, ip, len(prog))
				continue
			}
		case OpPopJmpIfTrue:
			sp--
			cond := stack[sp]
			if cond != 0 {
				ip = m.validJumpTarget(instr, ip, len(prog))
				continue
			}
		case OpGet:
			stack[sp] = ctx.Load(instr.Int())
			sp++
		case OpSet:
			sp--
			ctx.Store(instr.Int(), stack[sp])
		case OpGetIndirect:
			addr := IndexFromDouble(stack[sp-1])
			stack[sp-1] = ctx.Load(addr)
		case OpSetIndirect:
			v := stack[sp-1]
			addr := IndexFromDouble(stack[sp-2])
			ctx.Store(addr, v)
			sp -= 2
		case OpAdd:
			stack[sp-2] = stack[sp-2] + stack[sp-1]
			sp--
		case OpSub:
			stack[sp-2] = stack[sp-2] - stack[sp-1]
			sp--
		case OpMul:
			stack[sp-2] = stack[sp-2] * stack[sp-1]
			sp--
		case OpDiv:
			stack[sp-2] = stack[sp-2] / stack[sp-1]
			sp--
		case OpMod:
			stack[sp-2] = math.Mod(stack[sp-2], stack[sp-1])
			sp--
		case OpEq:
			stack[sp-2] = boolToFloat(stack[sp-2] == stack[sp-1])
			sp--
		case OpNeq:
			stack[sp-2] = boolToFloat(stack[sp-2] != stack[sp-1])
			sp--
		case OpLt:
			stack[sp-2] = boolToFloat(stack[sp-2] < stack[sp-1])
			sp--
		case OpGt:
			stack[sp-2] = boolToFloat(stack[sp-2] > stack[sp-1])
			sp--
		case OpLte:
			stack[sp-2] = boolToFloat(stack[sp-2] <= stack[sp-1])
			sp--
		case OpGte:
			stack[sp-2] = boolToFloat(stack[sp-2] >= stack[sp-1])
			sp--
		case OpAnd:
			stack[sp-2] = boolToFloat(stack[sp-2] != 0 && stack[sp-1] != 0)
			sp--
		case OpOr:
			stack[sp-2] = boolToFloat(stack[sp-2] != 0 || stack[sp-1] != 0)
			sp--
		case OpNot:
			stack[sp-1] = boolToFloat(stack[sp-1] == 0)
		default:
			panic(newExecError(ErrInvalidProgram, ip))
		}

		if m.Debug && (sp < 0 || sp > len(stack)) {
			panic(newExecError(ErrStackCorruption, ip))
		}

		ip++
	}

	if m.Debug && sp > 1 {
		panic(newExecError(ErrStackCorruption, ip))
	}

	if sp > 0 {
		return stack[sp-1]
	}
	return 0
}

// validJumpTarget decodes and bounds-checks a jump instruction's address.
// Landing exactly on progLen is legal (the next dispatch check ends the
// loop); anything else outside [0, progLen] is an invalid program.
func (m *Machine) validJumpTarget(instr Instruction, ip, progLen int) int {
	target := instr.Int()
	if target < 0 || target > progLen {
		panic(newExecError(ErrInvalidProgram, ip))
	}
	return target
}
