package mem

// AllocStats is a snapshot of a CountingAllocator's accounting.
type AllocStats struct {
	Allocs uint64 // successful Alloc calls
	Frees  uint64 // Free calls with a non-nil buffer
	Live   int    // bytes currently held
	Peak   int    // highest Live seen
}

// CountingAllocator wraps an inner allocator and tracks allocation traffic.
// Like the containers themselves it is not synchronized.
type CountingAllocator struct {
	inner Allocator
	stats AllocStats
}

// NewCounting wraps inner with traffic accounting.
func NewCounting(inner Allocator) *CountingAllocator {
	return &CountingAllocator{inner: inner}
}

// Alloc forwards to the inner allocator and records the result.
func (c *CountingAllocator) Alloc(size int) ([]byte, error) {
	buf, err := c.inner.Alloc(size)
	if err != nil {
		return nil, err
	}
	c.stats.Allocs++
	c.stats.Live += size
	if c.stats.Live > c.stats.Peak {
		c.stats.Peak = c.stats.Live
	}
	return buf, nil
}

// Free records the refund and forwards to the inner allocator.
func (c *CountingAllocator) Free(buf []byte) {
	if buf != nil {
		c.stats.Frees++
		c.stats.Live -= len(buf)
		if c.stats.Live < 0 {
			c.stats.Live = 0
		}
	}
	c.inner.Free(buf)
}

// Stats returns the current accounting snapshot.
func (c *CountingAllocator) Stats() AllocStats { return c.stats }

var _ Allocator = (*CountingAllocator)(nil)
