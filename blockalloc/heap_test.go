package blockalloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSizes(t *testing.T) {
	assert.Equal(t, uint(8), BlockBits[uint8]())
	assert.Equal(t, uint(16), BlockBits[uint16]())
	assert.Equal(t, uint(32), BlockBits[uint32]())
	assert.Equal(t, uint(64), BlockBits[uint64]())
	assert.Equal(t, 4, BlockBytes[uint32]())
	assert.Equal(t, math.MaxInt/8, MaxHeapBlocks[uint64]())
}

func TestHeap(t *testing.T) {
	h := NewHeap[uint32]()

	buf, err := h.Allocate(3)
	require.NoError(t, err)
	assert.Len(t, buf, 3)
	h.Deallocate(buf)
	h.Deallocate(nil)

	_, err = h.Allocate(h.MaxBlocks() + 1)
	assert.ErrorIs(t, err, ErrTooLarge)

	assert.True(t, h.Equal(NewHeap[uint32]()))
	assert.True(t, h.Policy().AlwaysEqual)
	assert.Same(t, Allocator[uint32](h), SelectOnCopy[uint32](h))
}
