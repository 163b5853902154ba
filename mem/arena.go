package mem

import (
	"fmt"
	"os"
)

// Arena is a bump-pointer allocator over a single anonymous memory mapping.
//
// Key characteristics:
//   - O(1) allocation: pure pointer bump, no free lists
//   - Free is a no-op; memory is reclaimed wholesale by Reset or Close
//   - Every buffer base is 16-byte aligned
//   - Fresh regions are zero pages; Reset re-zeroes the used prefix
//
// An Arena suits container workloads with phase-oriented lifetimes: build a
// map or heap inside the arena, drop the whole structure, Reset, repeat.
type Arena struct {
	region []byte
	off    int
	closed bool
}

// NewArena creates an arena of at least size bytes, rounded up to the page
// size. The region is memory-mapped on unix builds and heap-backed elsewhere.
func NewArena(size int) (*Arena, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	page := os.Getpagesize()
	size = (size + page - 1) &^ (page - 1)
	region, err := mapRegion(size)
	if err != nil {
		return nil, fmt.Errorf("mem: arena map of %d bytes: %w", size, err)
	}
	return &Arena{region: region}, nil
}

// Alloc returns a zeroed buffer of exactly size bytes from the region.
// Fails with ErrArenaFull when the region cannot fit the request and
// ErrClosed after Close.
func (a *Arena) Alloc(size int) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		return nil, ErrBadSize
	}
	if size == 0 {
		return []byte{}, nil
	}
	need := Align16(size)
	if need < 0 || a.off > len(a.region)-need {
		return nil, fmt.Errorf("mem: arena alloc of %d bytes (used %d of %d): %w",
			size, a.off, len(a.region), ErrArenaFull)
	}
	buf := a.region[a.off : a.off+size : a.off+need]
	a.off += need
	return buf, nil
}

// Free is a no-op. Arena memory is reclaimed by Reset or Close.
func (a *Arena) Free([]byte) {}

// Reset rewinds the arena, discarding every buffer handed out so far.
// The used prefix is re-zeroed so subsequent Allocs keep the zeroed-buffer
// contract. Buffers obtained before Reset must not be used afterwards.
func (a *Arena) Reset() {
	if a.closed {
		return
	}
	clear(a.region[:a.off])
	a.off = 0
}

// Len returns the number of bytes currently in use.
func (a *Arena) Len() int { return a.off }

// Cap returns the total region size in bytes.
func (a *Arena) Cap() int { return len(a.region) }

// Close releases the region. Close is idempotent; all buffers obtained from
// the arena are invalid afterwards.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	region := a.region
	a.region = nil
	a.off = 0
	return unmapRegion(region)
}

var _ Allocator = (*Arena)(nil)
