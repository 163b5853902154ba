package minheap

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/joshuapare/memkit/introspect"
	"github.com/joshuapare/memkit/mem"
)

// Heap is an array-backed binary min-heap. The zero value is not usable;
// construct with New or NewOrdered.
type Heap[T any] struct {
	buf    []T
	length int
	less   func(a, b T) bool
	pool   mem.Pool[T]
}

// New creates a heap ordered by less. less must describe a strict weak
// ordering; New panics if it is nil.
func New[T any](less func(a, b T) bool, opts ...Option) *Heap[T] {
	if less == nil {
		panic("minheap: nil less function")
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Heap[T]{less: less, pool: mem.HeapPool[T]()}
	if cfg.alloc != nil {
		pool, err := mem.AllocPool[T](cfg.alloc)
		if err != nil {
			panic(fmt.Errorf("minheap: %w", err))
		}
		h.pool = pool
	}
	if cfg.capacity > 0 {
		buf, err := h.pool.Make(cfg.capacity)
		if err != nil {
			panic(fmt.Errorf("minheap: alloc %d slots: %w", cfg.capacity, err))
		}
		h.buf = buf
	}
	return h
}

// NewOrdered creates a heap of an ordered type using <.
func NewOrdered[T cmp.Ordered](opts ...Option) *Heap[T] {
	return New(func(a, b T) bool { return a < b }, opts...)
}

// Len returns the number of elements held.
func (h *Heap[T]) Len() int { return h.length }

// Empty reports whether the heap holds no elements.
func (h *Heap[T]) Empty() bool { return h.length == 0 }

// Full reports whether the next Push must grow the buffer.
func (h *Heap[T]) Full() bool { return h.length == len(h.buf) }

// Cap returns the buffer capacity in slots.
func (h *Heap[T]) Cap() int { return len(h.buf) }

// Reserve grows the buffer to exactly n slots. It is a no-op when n does not
// exceed the current capacity. Pointers into the heap are invalidated.
func (h *Heap[T]) Reserve(n int) {
	if n <= len(h.buf) {
		return
	}
	next, err := h.pool.Make(n)
	if err != nil {
		panic(fmt.Errorf("minheap: reserve %d slots: %w", n, err))
	}
	copy(next, h.buf[:h.length])
	old := h.buf
	h.buf = next
	h.pool.Release(old)
}

// grow doubles the capacity, or starts at 8 slots.
func (h *Heap[T]) grow() {
	if len(h.buf) == 0 {
		h.Reserve(8)
		return
	}
	h.Reserve(2 * len(h.buf))
}

// Push adds v to the heap, growing if full. Panics if allocation fails.
func (h *Heap[T]) Push(v T) {
	if h.Full() {
		h.grow()
	}
	h.buf[h.length] = v
	h.length++
	h.up(h.length - 1)
}

// Top returns the minimum element. Panics on an empty heap; use TryTop when
// emptiness is a normal case.
func (h *Heap[T]) Top() T {
	if h.length == 0 {
		panic("minheap: top of empty heap")
	}
	return h.buf[0]
}

// TryTop returns the minimum element, or (zero, false) on an empty heap.
func (h *Heap[T]) TryTop() (T, bool) {
	if h.length == 0 {
		var zero T
		return zero, false
	}
	return h.buf[0], true
}

// Pop removes and returns the minimum element. Panics on an empty heap; use
// TryPop when emptiness is a normal case. Pointers into the heap are
// invalidated.
func (h *Heap[T]) Pop() T {
	if h.length == 0 {
		panic("minheap: pop of empty heap")
	}
	var zero T
	root := h.buf[0]
	h.length--
	if h.length > 0 {
		h.buf[0] = h.buf[h.length]
		h.buf[h.length] = zero
		h.down(0)
	} else {
		h.buf[0] = zero
	}
	return root
}

// TryPop removes and returns the minimum element, or (zero, false) on an
// empty heap.
func (h *Heap[T]) TryPop() (T, bool) {
	if h.length == 0 {
		var zero T
		return zero, false
	}
	return h.Pop(), true
}

// Clear removes all elements, retaining capacity.
func (h *Heap[T]) Clear() {
	clear(h.buf[:h.length])
	h.length = 0
}

// Clone returns an independent heap with the same elements, ordering, and
// capacity.
func (h *Heap[T]) Clone() *Heap[T] {
	return h.CloneFunc(func(v T) T { return v })
}

// CloneFunc returns an independent heap, deep-cloning every live element
// through clone.
func (h *Heap[T]) CloneFunc(clone func(T) T) *Heap[T] {
	c := &Heap[T]{less: h.less, pool: h.pool, length: h.length}
	if h.buf != nil {
		buf, err := h.pool.Make(len(h.buf))
		if err != nil {
			panic(fmt.Errorf("minheap: clone: %w", err))
		}
		for i := 0; i < h.length; i++ {
			buf[i] = clone(h.buf[i])
		}
		c.buf = buf
	}
	return c
}

// Move transfers the buffer to a new heap and leaves the receiver empty with
// zero capacity. The receiver keeps its ordering and storage configuration
// and remains usable.
func (h *Heap[T]) Move() *Heap[T] {
	moved := &Heap[T]{buf: h.buf, length: h.length, less: h.less, pool: h.pool}
	h.buf = nil
	h.length = 0
	return moved
}

// All iterates the live prefix in heap-array order, not sorted order. The
// heap must not be mutated during iteration.
func (h *Heap[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < h.length; i++ {
			if !yield(h.buf[i]) {
				return
			}
		}
	}
}

// up restores the heap invariant from index i toward the root.
func (h *Heap[T]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.buf[i], h.buf[parent]) {
			return
		}
		h.buf[i], h.buf[parent] = h.buf[parent], h.buf[i]
		i = parent
	}
}

// down restores the heap invariant from index i toward the leaves, swapping
// with the smaller child and preferring the left child on ties.
func (h *Heap[T]) down(i int) {
	for {
		left := 2*i + 1
		right := left + 1
		if right < h.length {
			switch {
			case h.less(h.buf[left], h.buf[i]) && !h.less(h.buf[right], h.buf[left]):
				h.buf[i], h.buf[left] = h.buf[left], h.buf[i]
				i = left
			case h.less(h.buf[right], h.buf[i]) && !h.less(h.buf[left], h.buf[right]):
				h.buf[i], h.buf[right] = h.buf[right], h.buf[i]
				i = right
			default:
				return
			}
		} else if left < h.length {
			if h.less(h.buf[left], h.buf[i]) {
				h.buf[i], h.buf[left] = h.buf[left], h.buf[i]
			}
			return
		} else {
			return
		}
	}
}

// Stats is a structural summary of a heap.
type Stats struct {
	Length   int
	Capacity int
}

// Stats returns the current structural summary.
func (h *Heap[T]) Stats() Stats {
	return Stats{Length: h.length, Capacity: len(h.buf)}
}

// Fields exposes the heap's internal fields by name for introspection
// tooling. The data field is a snapshot of the live prefix.
func (h *Heap[T]) Fields() []introspect.Field {
	data := make([]T, h.length)
	copy(data, h.buf[:h.length])
	return []introspect.Field{
		{Name: "data", Value: data},
		{Name: "length", Value: h.length},
		{Name: "capacity", Value: len(h.buf)},
	}
}

var _ introspect.Introspectable = (*Heap[int])(nil)
