package mem

// Alignment utilities for allocator implementations. The Arena aligns every
// allocation so that typed pools can safely cast its buffers.

const (
	align8Mask  = 8 - 1
	align16Mask = 16 - 1
)

// Align8 returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + align8Mask) &^ align8Mask
}

// Align16 returns n aligned up to the next 16-byte boundary.
// The Arena rounds every allocation with this, so buffer bases satisfy the
// alignment of any Go element type.
//
// Example:
//
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
func Align16(n int) int {
	return (n + align16Mask) &^ align16Mask
}
