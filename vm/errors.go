package vm

import (
	"errors"
	"fmt"
)

// Sentinel errors for the conditions spec'd in the error handling design.
// NumericResult is deliberately absent: division/modulo by zero and
// overflow flow through the program as IEEE-754 Inf/NaN, they are not
// errors.
var (
	// ErrMemoryOutOfRange is surfaced by the *Checked entry points when a
	// Load/Store index falls outside the Context's memory.
	ErrMemoryOutOfRange = errors.New("vm: memory index out of range")

	// ErrInvalidProgram is raised when a compiled program decodes an
	// unknown opcode or jumps to an address outside [0, len(prog)]; a jump
	// to exactly len(prog) is legal and ends the run.
	ErrInvalidProgram = errors.New("vm: invalid program")

	// ErrStackCorruption is raised by the debug-assert path in the bytecode
	// interpreter when the operand stack underflows, overflows, or fails
	// to end the program at depth 0 or 1.
	ErrStackCorruption = errors.New("vm: stack corruption")
)

// execError pins a sentinel to the instruction pointer where it occurred,
// in the spirit of the teacher's formatInstructionStr debug helper.
type execError struct {
	err error
	ip  int
}

func (e *execError) Error() string {
	return fmt.Sprintf("%s at instruction %d", e.err, e.ip)
}

func (e *execError) Unwrap() error {
	return e.err
}

func newExecError(err error, ip int) *execError {
	return &execError{err: err, ip: ip}
}

// recoverAsError turns a panic raised by the unchecked entry points into an
// error, following the teacher's getDefaultRecoverFuncForVM pattern. Any
// panic value that isn't one of our own errors is re-wrapped as
// ErrMemoryOutOfRange: for trees and Compile output the only other panics
// the unchecked paths produce are Go's own slice-bounds panics from an
// out-of-range Load/Store index. A hand-built program that over- or
// underflows the operand stack under a non-Debug Machine also panics with a
// slice-bounds error and is reported the same way.
func recoverAsError(dst *error) {
	r := recover()
	if r == nil {
		return
	}
	switch v := r.(type) {
	case *execError:
		*dst = v
	case error:
		*dst = fmt.Errorf("%w: %v", ErrMemoryOutOfRange, v)
	default:
		*dst = fmt.Errorf("%w: %v", ErrMemoryOutOfRange, v)
	}
}
