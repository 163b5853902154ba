// Package minheap provides an array-backed binary min-heap with explicit
// capacity management and pluggable element storage.
//
// # Overview
//
// A Heap keeps its elements in one owned buffer: a live prefix of length
// Len() ordered by the heap invariant (no element is less than its parent),
// with buf[0] the minimum. Growth doubles the buffer (or starts at 8 slots);
// Reserve allocates exactly the requested capacity. The buffer comes from a
// mem.Pool: the Go heap by default, or raw allocator memory for
// pointer-free element types via WithAllocator.
//
// # API Tiers
//
// Accessors that require a non-empty heap come in two tiers:
//
//   - Top, Pop panic on an empty heap (programmer error)
//   - TryTop, TryPop return (zero, false) instead
//
// Growth that fails to allocate panics with an error wrapping the
// allocator's failure (for example mem.ErrBudget under a LimitAllocator).
//
// # Ownership
//
// A Heap must not be copied after first use; Clone makes an independent
// copy and Move transfers the buffer to a new Heap, leaving the source
// empty but usable. Pointers and iterators into the heap are invalidated
// by any operation that grows the buffer or relocates elements.
//
// Heaps are not synchronized; callers serialize access.
package minheap
