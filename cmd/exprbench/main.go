// Command exprbench runs the sample programs in package programs under all
// three execution backends and reports how long each one takes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dolthub/swiss"
	"github.com/fatih/color"

	"exprbench/programs"
	"exprbench/vm"
)

var (
	iterations = flag.Int("iterations", 1000, "number of times to run each (program, backend) pair")
	fibN       = flag.Int("fib-n", 25, "n passed to the Fibonacci sample program")
	sortSize   = flag.Int("sort-size", 64, "element count for the insertion sort sample program")
	disasm     = flag.Bool("disasm", false, "print the compiled bytecode for each sample program and exit")
)

func init() {
	flag.Parse()
}

// backend names one of the three execution strategies a sample program can
// run under.
type backend string

const (
	backendTree     backend = "tree"
	backendClosure  backend = "closure"
	backendBytecode backend = "bytecode"
)

var allBackends = []backend{backendTree, backendClosure, backendBytecode}

// sample pairs a sample program's tree with a fresh-Context factory, since
// every timed run needs its own Context rather than one mutated run over
// run.
type sample struct {
	name   string
	root   vm.Node
	newCtx func() *vm.Context
}

func samples() []sample {
	n := *fibN
	size := *sortSize
	values := make([]float64, size)
	for i := range values {
		values[i] = float64((size - i) * 7 % (size + 1))
	}

	return []sample{
		{
			name:   "fibonacci",
			root:   programs.Fibonacci(),
			newCtx: func() *vm.Context { return programs.NewFibonacciContext(n) },
		},
		{
			name:   "insertion_sort",
			root:   programs.InsertionSortAlternatingSum(size),
			newCtx: func() *vm.Context { return programs.NewInsertionSortContext(values) },
		},
	}
}

// resultKey identifies one (program, backend) pair in the timing table. It
// must be comparable to serve as a swiss.Map key.
type resultKey struct {
	program string
	backend backend
}

func main() {
	progs := samples()

	if *disasm {
		for _, s := range progs {
			fmt.Printf("-- %s --\n%s\n", s.name, vm.Disassemble(vm.Compile(s.root)))
		}
		return
	}

	timings := swiss.NewMap[resultKey, time.Duration](uint32(len(progs) * len(allBackends)))

	for _, s := range progs {
		prog := vm.Compile(s.root)
		closure := vm.Lower(s.root)

		for _, b := range allBackends {
			elapsed := timeBackend(b, s.root, prog, closure, s.newCtx)
			timings.Put(resultKey{program: s.name, backend: b}, elapsed)
		}
	}

	printReport(progs, timings)
}

func timeBackend(b backend, root vm.Node, prog []vm.Instruction, closure vm.Closure, newCtx func() *vm.Context) time.Duration {
	start := time.Now()
	for i := 0; i < *iterations; i++ {
		ctx := newCtx()
		switch b {
		case backendTree:
			vm.Evaluate(root, ctx)
		case backendClosure:
			closure(ctx)
		case backendBytecode:
			vm.Run(prog, ctx)
		default:
			fmt.Fprintf(os.Stderr, "exprbench: unknown backend %q\n", b)
			os.Exit(1)
		}
		ctx.Close()
	}
	return time.Since(start)
}

func printReport(samples []sample, timings *swiss.Map[resultKey, time.Duration]) {
	header := color.New(color.FgHiWhite, color.Bold)
	header.Printf("%-16s %-10s %14s %16s\n", "program", "backend", "total", "per-run")

	for _, s := range samples {
		fastest := fastestBackend(s.name, timings)
		for _, b := range allBackends {
			elapsed, ok := timings.Get(resultKey{program: s.name, backend: b})
			if !ok {
				continue
			}
			perRun := elapsed / time.Duration(*iterations)
			line := fmt.Sprintf("%-16s %-10s %14s %16s", s.name, b, elapsed, perRun)
			if b == fastest {
				color.Green("%s", line)
			} else {
				fmt.Println(line)
			}
		}
	}
}

// fastestBackend reports which backend had the lowest total time for
// program, so printReport can highlight it.
func fastestBackend(program string, timings *swiss.Map[resultKey, time.Duration]) backend {
	var best backend
	var bestElapsed time.Duration
	for _, b := range allBackends {
		elapsed, ok := timings.Get(resultKey{program: program, backend: b})
		if !ok {
			continue
		}
		if best == "" || elapsed < bestElapsed {
			best, bestElapsed = b, elapsed
		}
	}
	return best
}
