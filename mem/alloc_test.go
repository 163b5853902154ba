package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault_Alloc tests the process allocator basics.
func TestDefault_Alloc(t *testing.T) {
	buf, err := Default.Alloc(64)
	require.NoError(t, err)
	require.Len(t, buf, 64)

	for i, b := range buf {
		require.Zero(t, b, "byte %d should be zero", i)
	}

	// Free is a no-op but must accept any buffer.
	Default.Free(buf)
	Default.Free(nil)
}

// TestDefault_BadSize tests the negative-size error path.
func TestDefault_BadSize(t *testing.T) {
	_, err := Default.Alloc(-1)
	require.ErrorIs(t, err, ErrBadSize)
}

// TestDefault_ZeroSize tests that a zero-byte request succeeds.
func TestDefault_ZeroSize(t *testing.T) {
	buf, err := Default.Alloc(0)
	require.NoError(t, err)
	assert.Len(t, buf, 0)
}

// TestLimitAllocator_Budget tests budget enforcement and refunds.
func TestLimitAllocator_Budget(t *testing.T) {
	l := NewLimit(Default, 128)

	a, err := l.Alloc(64)
	require.NoError(t, err)
	b, err := l.Alloc(64)
	require.NoError(t, err)
	assert.Equal(t, 128, l.Used())

	// Budget exhausted.
	_, err = l.Alloc(1)
	require.ErrorIs(t, err, ErrBudget)

	// Freeing refunds the budget.
	l.Free(a)
	assert.Equal(t, 64, l.Used())
	c, err := l.Alloc(32)
	require.NoError(t, err)
	require.Len(t, c, 32)

	l.Free(b)
	l.Free(c)
	assert.Equal(t, 0, l.Used())
	assert.Equal(t, 128, l.Budget())
}

// TestLimitAllocator_ExactFit tests an allocation that exactly consumes the budget.
func TestLimitAllocator_ExactFit(t *testing.T) {
	l := NewLimit(Default, 100)
	buf, err := l.Alloc(100)
	require.NoError(t, err)
	require.Len(t, buf, 100)

	_, err = l.Alloc(0)
	require.NoError(t, err, "zero-byte alloc should fit a full budget")
}

// TestCountingAllocator_Stats tests traffic accounting.
func TestCountingAllocator_Stats(t *testing.T) {
	c := NewCounting(Default)

	a, err := c.Alloc(100)
	require.NoError(t, err)
	b, err := c.Alloc(50)
	require.NoError(t, err)

	st := c.Stats()
	assert.Equal(t, uint64(2), st.Allocs)
	assert.Equal(t, 150, st.Live)
	assert.Equal(t, 150, st.Peak)

	c.Free(a)
	st = c.Stats()
	assert.Equal(t, uint64(1), st.Frees)
	assert.Equal(t, 50, st.Live)
	assert.Equal(t, 150, st.Peak, "peak should not drop on free")

	c.Free(b)
	assert.Equal(t, 0, c.Stats().Live)

	// Failed allocations are not counted.
	_, err = c.Alloc(-5)
	require.Error(t, err)
	assert.Equal(t, uint64(2), c.Stats().Allocs)
}

// TestAlign tests the rounding helpers.
func TestAlign(t *testing.T) {
	assert.Equal(t, 8, Align8(1))
	assert.Equal(t, 8, Align8(8))
	assert.Equal(t, 16, Align8(9))
	assert.Equal(t, 0, Align8(0))

	assert.Equal(t, 16, Align16(1))
	assert.Equal(t, 16, Align16(16))
	assert.Equal(t, 32, Align16(17))
	assert.Equal(t, 0, Align16(0))
}
