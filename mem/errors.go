package mem

import "errors"

var (
	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = errors.New("mem: size must be non-negative")

	// ErrBudget indicates that a LimitAllocator would exceed its byte budget.
	ErrBudget = errors.New("mem: allocation budget exceeded")

	// ErrArenaFull indicates that an Arena has no room left for the request.
	ErrArenaFull = errors.New("mem: arena full")

	// ErrClosed indicates an operation on a closed Arena.
	ErrClosed = errors.New("mem: arena closed")

	// ErrPointerType indicates an element type that contains pointers and
	// therefore cannot live in raw allocator memory.
	ErrPointerType = errors.New("mem: element type contains pointers")

	// ErrMisaligned indicates a raw buffer whose base address does not meet
	// the element type's alignment.
	ErrMisaligned = errors.New("mem: buffer misaligned for element type")

	// ErrTooLarge indicates a request whose byte size overflows.
	ErrTooLarge = errors.New("mem: allocation size overflows")
)
