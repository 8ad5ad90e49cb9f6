package vm

import (
	"fmt"
	"strings"
)

// Disassemble renders prog as one instruction per line, address-prefixed,
// for use in test failure output and the benchmark driver's -disasm flag.
// It never fails: an out-of-range jump target or unknown opcode is printed
// as-is rather than erroring, since the whole point is to inspect a
// possibly-broken program.
func Disassemble(prog []Instruction) string {
	var b strings.Builder
	width := len(fmt.Sprintf("%d", len(prog)))
	for addr, instr := range prog {
		fmt.Fprintf(&b, "%*d  %s\n", width, addr, instr)
	}
	return b.String()
}
