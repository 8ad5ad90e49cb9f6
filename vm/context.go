package vm

// DefaultMemorySize is a size callers can pass to NewContext when they don't
// need a specific bound; NewContext itself always takes an explicit size. It
// is large enough that none of the sample programs in package programs come
// close to exhausting it.
const DefaultMemorySize = 65536

// Context is the linear, value-addressable memory shared by all three
// execution backends for the lifetime of a program run. Nothing in this
// package resets cells between runs; callers set their own inputs.
//
// A Context is not safe for concurrent mutation. Separate Contexts may be
// driven from separate goroutines without coordination since none of the
// backends holds process-wide state.
type Context struct {
	memory []float64

	// region is non-nil only for mmap-backed contexts, see NewMappedContext.
	region mmapRegion
}

// NewContext allocates a Context with size memory cells, each initialized to
// zero. size must be positive.
func NewContext(size int) *Context {
	if size <= 0 {
		panic("vm: context size must be positive")
	}
	return &Context{memory: make([]float64, size)}
}

// Len reports the number of addressable cells.
func (c *Context) Len() int {
	return len(c.memory)
}

// Load returns the value at index i, truncated toward zero if called with a
// fractional address by the caller's conversion step (see IndexFromDouble).
// Reference semantics are unchecked: an out-of-range i panics with the same
// runtime bounds-check panic Go gives any slice, which RunChecked and
// friends convert into ErrMemoryOutOfRange.
func (c *Context) Load(i int) float64 {
	return c.memory[i]
}

// Store writes v to index i. See Load for the bounds-checking contract.
func (c *Context) Store(i int, v float64) {
	c.memory[i] = v
}

// Close releases any resources backing the Context. Plain contexts (created
// via NewContext) need no cleanup; Close is a no-op for them. It is safe to
// call Close more than once.
func (c *Context) Close() error {
	if c.region == nil {
		return nil
	}
	err := c.region.unmap()
	c.region = nil
	return err
}

// IndexFromDouble truncates a double toward zero to obtain a memory index,
// per the Load/Store index conversion rule shared by all three backends.
func IndexFromDouble(v float64) int {
	return int(v)
}

// mmapRegion is the minimal surface NewMappedContext needs from the backing
// allocation; it keeps the mmap import confined to context_mmap.go. The
// package as a whole still depends on the mmap module at build time.
type mmapRegion interface {
	unmap() error
}
