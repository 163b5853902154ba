package minheap

import "github.com/joshuapare/memkit/mem"

type config struct {
	capacity int
	alloc    mem.Allocator
}

// Option configures a Heap at construction.
type Option func(*config)

// WithCapacity pre-sizes the heap's buffer to n slots.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithAllocator stores elements in raw buffers from a. The element type must
// be pointer-free (see mem.AllocPool); New panics otherwise.
func WithAllocator(a mem.Allocator) Option {
	return func(c *config) {
		c.alloc = a
	}
}
