package xbits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorAdvance(t *testing.T) {
	buf := make([]uint8, 4)
	begin := iterIn[Dibit, uint8](buf, 0)
	n := BlocksToElements[Dibit, uint8](len(buf))

	for start := 0; start <= n; start++ {
		for step := -start; step <= n-start; step++ {
			it := iterIn[Dibit, uint8](buf, start).Add(step)
			require.Equal(t, start+step, it.Diff(begin), "start %d step %d", start, step)
			require.GreaterOrEqual(t, it.c.off, 0)
			require.Less(t, it.c.off, FieldsPerBlock[Dibit, uint8]())
			require.True(t, it.Sub(step).Equal(iterIn[Dibit, uint8](buf, start)))
		}
	}
}

func TestIteratorStepAcrossBlocks(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		blk  int
		off  int
	}{
		{"begin", 0, 0, 0},
		{"last in block", 3, 0, 3},
		{"first of next block", 4, 1, 0},
		{"before begin", -1, -1, 3},
		{"end", 8, 2, 0},
	}
	buf := make([]uint8, 2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := iterIn[Dibit, uint8](buf, tt.pos)
			assert.Equal(t, tt.blk, it.c.blk)
			assert.Equal(t, tt.off, it.c.off)
			assert.True(t, it.Next().Prev().Equal(it))
			assert.True(t, it.Prev().Next().Equal(it))
			assert.Equal(t, 1, it.Next().Diff(it))
		})
	}
}

func TestIteratorReadWrite(t *testing.T) {
	buf := make([]uint8, 2)
	it := iterIn[Dibit, uint8](buf, 5)
	it.Set(3)
	assert.Equal(t, []uint8{0, 0b1100}, buf)
	assert.Equal(t, uint8(3), iterIn[Dibit, uint8](buf, 0).At(5).Get())
	assert.Equal(t, uint8(3), it.Const().Get())

	it.Const().Set(0)
	assert.Equal(t, uint8(3), it.Get())
	assert.Equal(t, uint8(3), iterIn[Dibit, uint8](buf, 1).Const().At(4))
}

func TestIteratorOrdering(t *testing.T) {
	buf := make([]uint32, 2)
	a := iterIn[Quadbit, uint32](buf, 3)
	b := iterIn[Quadbit, uint32](buf, 9)

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -6, a.Diff(b))
	assert.True(t, a.Add(6).Equal(b))
	assert.True(t, a.Const().Less(b.Const()))
	assert.Equal(t, 6, b.Const().Diff(a.Const()))
}

func TestConstIterSameBuffer(t *testing.T) {
	buf := make([]uint8, 1)
	other := make([]uint8, 1)
	it := iterIn[Bit, uint8](buf, 3).Const()
	assert.True(t, it.sameBuffer(buf))
	assert.False(t, it.sameBuffer(other))
	assert.False(t, it.sameBuffer(nil))
}
