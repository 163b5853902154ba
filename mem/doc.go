// Package mem provides the allocation capability the memkit containers are
// built over: raw byte allocators and typed element pools.
//
// # Overview
//
// Containers in this module never call make directly for element storage.
// They acquire buffers through a Pool, which is either backed by the Go heap
// (the default, safe for every element type) or bridged onto a raw Allocator
// for pointer-free element types. This keeps allocation policy pluggable:
// the same container can run on the process heap, inside a memory-mapped
// arena, or under a hard byte budget.
//
// # Allocators
//
// The core abstraction is the Allocator interface:
//
//   - Alloc(size): Returns a zeroed buffer of exactly size bytes
//   - Free(buf): Returns a buffer to the allocator
//
// Implementations:
//
// Default: the process allocator (Go heap). Alloc is make; Free is a no-op
// because the garbage collector reclaims buffers.
//
// Arena: a bump-pointer allocator over a single anonymous memory mapping.
// O(1) allocation, no per-buffer free; Reset reclaims everything at once and
// Close unmaps the region. On non-unix builds the region is a heap slice.
//
// LimitAllocator: wraps an inner allocator with a byte budget. Allocations
// beyond the budget fail with ErrBudget, which makes allocation-failure paths
// deterministic in tests.
//
// CountingAllocator: wraps an inner allocator and tracks allocation counts,
// live bytes, and peak bytes for tooling.
//
// # Typed Pools
//
// Pool[T] hands out zeroed element slices:
//
//	pool := mem.HeapPool[int]()
//	buf, err := pool.Make(64)
//
// AllocPool[T] carves element arrays out of raw byte buffers. It is
// restricted to pointer-free element types: buffers obtained from an
// arbitrary Allocator are invisible to the garbage collector, so storing
// pointers in them would hide live references. AllocPool returns
// ErrPointerType for element types that contain pointers.
//
// # Zeroing
//
// Every Alloc and Make returns zeroed memory. Containers rely on this for
// their empty-slot representation; implementations must preserve it (the
// Arena re-zeroes the used prefix on Reset).
//
// # Thread Safety
//
// Allocators and pools are not thread-safe. Callers must synchronize access
// externally, matching the containers built on top of them.
package mem
