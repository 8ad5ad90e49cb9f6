package vm

import (
	"fmt"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// NewMappedContext allocates a Context whose memory cells live in an
// anonymous mmap region rather than on the Go heap, the same way
// go-interpreter-wagon keeps its WebAssembly linear memory outside the
// reach of the garbage collector: the backing bytes are never scanned by
// the GC and the allocation is a single syscall regardless of size.
//
// This only matters for very large Contexts run under GOGC pressure; for
// the sample programs in package programs, NewContext is simpler and just
// as fast. Close must be called to release the mapping.
func NewMappedContext(size int) (*Context, error) {
	if size <= 0 {
		panic("vm: context size must be positive")
	}

	byteLen := size * int(unsafe.Sizeof(float64(0)))
	region, err := mmap.MapRegion(nil, byteLen, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, fmt.Errorf("vm: mmap context memory: %w", err)
	}

	memory := unsafe.Slice((*float64)(unsafe.Pointer(&region[0])), size)
	return &Context{memory: memory, region: mmapBacking{region}}, nil
}

// mmapBacking adapts mmap.MMap to the mmapRegion interface so context.go
// doesn't need to import the mmap package for the common, non-mapped path.
type mmapBacking struct {
	region mmap.MMap
}

func (b mmapBacking) unmap() error {
	return b.region.Unmap()
}
