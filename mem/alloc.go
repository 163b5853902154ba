package mem

// Allocator is the raw allocation capability containers are parameterized
// over: sized byte buffers in, byte buffers out.
//
// Implementations:
//   - Default: process allocator (Go heap)
//   - Arena: bump-pointer allocator over one memory mapping
//   - LimitAllocator: budget-enforcing wrapper
//   - CountingAllocator: statistics wrapper
type Allocator interface {
	// Alloc returns a zeroed buffer of exactly size bytes.
	Alloc(size int) ([]byte, error)

	// Free returns a buffer previously obtained from Alloc. Free(nil) is a
	// no-op. Buffers must be freed at most once.
	Free(buf []byte)
}

// Default is the process allocator. Buffers come from the Go heap and are
// reclaimed by the garbage collector; Free is a no-op.
var Default Allocator = sysAllocator{}

type sysAllocator struct{}

func (sysAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrBadSize
	}
	return make([]byte, size), nil
}

func (sysAllocator) Free([]byte) {}

var _ Allocator = sysAllocator{}
