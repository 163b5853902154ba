package robinmap

import "github.com/joshuapare/memkit/mem"

type config struct {
	capacity int
	alloc    mem.Allocator
}

// Option configures a map at construction time.
type Option func(*config)

// WithCapacity pre-sizes the table for at least n slots, rounded up to a
// power of two. It avoids rehashing during an initial bulk load.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithAllocator sources the slot array from a, for example an arena or a
// budget-enforcing allocator. The constructor panics if the key or value
// type contains pointers, since raw buffers are invisible to the garbage
// collector.
func WithAllocator(a mem.Allocator) Option {
	return func(c *config) {
		c.alloc = a
	}
}
