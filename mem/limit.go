package mem

import "fmt"

// LimitAllocator enforces a byte budget over an inner allocator. Allocations
// that would push live bytes past the budget fail with ErrBudget; Free
// refunds the buffer's bytes. It gives callers and tests a deterministic
// allocation-failure path.
type LimitAllocator struct {
	inner  Allocator
	budget int
	used   int
}

// NewLimit wraps inner with a budget of bytes.
func NewLimit(inner Allocator, budget int) *LimitAllocator {
	return &LimitAllocator{inner: inner, budget: budget}
}

// Alloc allocates from the inner allocator if the budget allows.
func (l *LimitAllocator) Alloc(size int) ([]byte, error) {
	if size < 0 {
		return nil, ErrBadSize
	}
	if l.used > l.budget-size {
		return nil, fmt.Errorf("mem: limit alloc of %d bytes (used %d of %d): %w",
			size, l.used, l.budget, ErrBudget)
	}
	buf, err := l.inner.Alloc(size)
	if err != nil {
		return nil, err
	}
	l.used += size
	return buf, nil
}

// Free refunds the buffer's bytes and forwards to the inner allocator.
func (l *LimitAllocator) Free(buf []byte) {
	l.used -= len(buf)
	if l.used < 0 {
		l.used = 0
	}
	l.inner.Free(buf)
}

// Used returns the live byte count under the budget.
func (l *LimitAllocator) Used() int { return l.used }

// Budget returns the configured byte budget.
func (l *LimitAllocator) Budget() int { return l.budget }

var _ Allocator = (*LimitAllocator)(nil)
