package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArena_Alloc tests bump allocation basics.
func TestArena_Alloc(t *testing.T) {
	a, err := NewArena(4096)
	require.NoError(t, err)
	defer a.Close()

	assert.GreaterOrEqual(t, a.Cap(), 4096, "region rounds up to page size")
	assert.Equal(t, 0, a.Len())

	buf, err := a.Alloc(100)
	require.NoError(t, err)
	require.Len(t, buf, 100)
	assert.Equal(t, Align16(100), a.Len(), "offset advances by the aligned size")

	for i, b := range buf {
		require.Zero(t, b, "byte %d should be zero", i)
	}
}

// TestArena_Alignment tests that consecutive buffers start on 16-byte boundaries.
func TestArena_Alignment(t *testing.T) {
	a, err := NewArena(4096)
	require.NoError(t, err)
	defer a.Close()

	sizes := []int{1, 3, 17, 16, 33}
	for _, size := range sizes {
		before := a.Len()
		buf, err := a.Alloc(size)
		require.NoError(t, err)
		require.Len(t, buf, size)
		assert.Zero(t, before%16, "size %d: buffer base offset %d not aligned", size, before)
	}
}

// TestArena_NoOverlap tests that buffers never alias.
func TestArena_NoOverlap(t *testing.T) {
	a, err := NewArena(4096)
	require.NoError(t, err)
	defer a.Close()

	one, err := a.Alloc(32)
	require.NoError(t, err)
	two, err := a.Alloc(32)
	require.NoError(t, err)

	for i := range one {
		one[i] = 0xAA
	}
	for _, b := range two {
		assert.Zero(t, b, "second buffer must not see the first buffer's writes")
	}
}

// TestArena_Full tests exhaustion.
func TestArena_Full(t *testing.T) {
	a, err := NewArena(4096)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Alloc(a.Cap() - 16)
	require.NoError(t, err)
	_, err = a.Alloc(64)
	require.ErrorIs(t, err, ErrArenaFull)

	// A no-op free does not create room.
	a.Free(nil)
	_, err = a.Alloc(64)
	require.ErrorIs(t, err, ErrArenaFull)
}

// TestArena_Reset tests rewind and re-zeroing.
func TestArena_Reset(t *testing.T) {
	a, err := NewArena(4096)
	require.NoError(t, err)
	defer a.Close()

	buf, err := a.Alloc(128)
	require.NoError(t, err)
	for i := range buf {
		buf[i] = 0xFF
	}

	a.Reset()
	assert.Equal(t, 0, a.Len())

	again, err := a.Alloc(128)
	require.NoError(t, err)
	for i, b := range again {
		require.Zero(t, b, "byte %d should be re-zeroed after Reset", i)
	}
}

// TestArena_Close tests idempotent close and post-close errors.
func TestArena_Close(t *testing.T) {
	a, err := NewArena(4096)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "close is idempotent")

	_, err = a.Alloc(1)
	require.ErrorIs(t, err, ErrClosed)

	a.Reset() // must not panic after close
}

// TestArena_BadSize tests argument validation.
func TestArena_BadSize(t *testing.T) {
	_, err := NewArena(0)
	require.ErrorIs(t, err, ErrBadSize)
	_, err = NewArena(-1)
	require.ErrorIs(t, err, ErrBadSize)

	a, err := NewArena(4096)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Alloc(-1)
	require.ErrorIs(t, err, ErrBadSize)

	buf, err := a.Alloc(0)
	require.NoError(t, err)
	assert.Len(t, buf, 0)
}
