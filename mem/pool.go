package mem

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Pool hands out zeroed element slices for container storage.
//
// Implementations:
//   - HeapPool: Go-heap slices, safe for every element type
//   - AllocPool: raw Allocator buffers, pointer-free element types only
type Pool[T any] interface {
	// Make returns a zeroed slice with len(s) == n.
	Make(n int) ([]T, error)

	// Release returns a slice previously obtained from Make. Release(nil)
	// is a no-op.
	Release(s []T)
}

// HeapPool returns the Go-heap pool for T: Make is make, Release is a no-op.
func HeapPool[T any]() Pool[T] { return heapPool[T]{} }

type heapPool[T any] struct{}

func (heapPool[T]) Make(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	return make([]T, n), nil
}

func (heapPool[T]) Release([]T) {}

// AllocPool bridges a raw Allocator into a typed pool by casting its byte
// buffers to element arrays.
//
// The element type must be pointer-free: raw buffers are invisible to the
// garbage collector, so a pointer stored in one would keep nothing alive.
// Pointer-carrying types fail with ErrPointerType; they always use HeapPool.
func AllocPool[T any](a Allocator) (Pool[T], error) {
	t := reflect.TypeFor[T]()
	if hasPointers(t) {
		return nil, fmt.Errorf("mem: alloc pool for %s: %w", t, ErrPointerType)
	}
	return &allocPool[T]{a: a, size: int(t.Size()), align: uintptr(t.Align())}, nil
}

type allocPool[T any] struct {
	a     Allocator
	size  int
	align uintptr
}

func (p *allocPool[T]) Make(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrBadSize
	}
	if n == 0 || p.size == 0 {
		return make([]T, n), nil
	}
	bytes := n * p.size
	if bytes/p.size != n {
		return nil, ErrTooLarge
	}
	buf, err := p.a.Alloc(bytes)
	if err != nil {
		return nil, err
	}
	base := unsafe.Pointer(unsafe.SliceData(buf))
	if uintptr(base)%p.align != 0 {
		p.a.Free(buf)
		return nil, ErrMisaligned
	}
	return unsafe.Slice((*T)(base), n), nil
}

func (p *allocPool[T]) Release(s []T) {
	bytes := cap(s) * p.size
	if bytes == 0 {
		return
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), bytes)
	p.a.Free(buf)
}

// SizeOf returns the byte size of T, as a Pool sizes its buffers.
func SizeOf[T any]() int {
	return int(reflect.TypeFor[T]().Size())
}

// hasPointers reports whether values of t contain pointers the garbage
// collector must track.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Chan, Func, Interface, Map, Pointer, Slice, String, UnsafePointer.
		return true
	}
}
