package xbits

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tribit struct{}

func (tribit) Bits() uint { return 3 }

type noBits struct{}

func (noBits) Bits() uint { return 0 }

type wide struct{}

func (wide) Bits() uint { return 16 }

func TestElementBlockConversions(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		blocks int
		align  int
	}{
		{"0", 0, 0, 0},
		{"1", 1, 1, 4},
		{"4", 4, 1, 4},
		{"5", 5, 2, 8},
		{"16", 16, 4, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocks, ElementsToBlocks[Dibit, uint8](tt.n))
			assert.Equal(t, tt.align, AlignElements[Dibit, uint8](tt.n))
			assert.Equal(t, tt.align, BlocksToElements[Dibit, uint8](tt.blocks))
		})
	}
}

func TestFieldsPerBlock(t *testing.T) {
	assert.Equal(t, 8, FieldsPerBlock[Bit, uint8]())
	assert.Equal(t, 32, FieldsPerBlock[Dibit, uint64]())
	assert.Equal(t, 4, FieldsPerBlock[Quadbit, uint16]())
	assert.Equal(t, uint8(0b11), FieldMask[Dibit, uint8]())
	assert.Equal(t, uint64(0xF), FieldMask[Quadbit, uint64]())
}

func TestMaxElements(t *testing.T) {
	assert.Equal(t, math.MaxInt/2/4*4, MaxElements[Dibit, uint8](math.MaxInt))
	assert.Equal(t, 40, MaxElements[Dibit, uint8](10))
	assert.Equal(t, 160, MaxElements[Dibit, uint32](10))
}

func TestMaxElementsFitsTheAllocator(t *testing.T) {
	check := func(t *testing.T, limit, got, epb, blocks int) {
		assert.LessOrEqual(t, blocks, limit, "limit %d", limit)
		assert.Zero(t, got%epb, "limit %d", limit)
	}
	for _, limit := range []int{math.MaxInt, math.MaxInt / 2 / 4, math.MaxInt/2/4 + 1, 1 << 20} {
		n := MaxElements[Dibit, uint8](limit)
		check(t, limit, n, 4, ElementsToBlocks[Dibit, uint8](n))
		assert.Equal(t, n, AlignElements[Dibit, uint8](n))
	}
	for _, limit := range []int{math.MaxInt, math.MaxInt / 2 / 5, 12} {
		n := MaxElements[tribit, uint16](limit)
		check(t, limit, n, 5, ElementsToBlocks[tribit, uint16](n))
	}
	for _, limit := range []int{math.MaxInt, math.MaxInt / 2 / 16} {
		n := MaxElements[Quadbit, uint64](limit)
		check(t, limit, n, 16, ElementsToBlocks[Quadbit, uint64](n))
	}
}

func TestRecommendCapacity(t *testing.T) {
	tests := []struct {
		name      string
		capacity  int
		requested int
		want      int
	}{
		{"empty rounds to block", 0, 5, 8},
		{"doubles", 8, 9, 16},
		{"request larger than double", 8, 30, 32},
		{"half max goes to max", 60, 61, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RecommendCapacity[Dibit, uint8](tt.capacity, tt.requested, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := RecommendCapacity[Dibit, uint8](0, 101, 100)
	assert.ErrorIs(t, err, ErrLength)
}

func TestCheckWidth(t *testing.T) {
	assert.NoError(t, CheckWidth[Bit, uint8]())
	assert.NoError(t, CheckWidth[Quadbit, uint64]())
	assert.ErrorIs(t, CheckWidth[tribit, uint8](), ErrBadWidth)
	assert.ErrorIs(t, CheckWidth[noBits, uint8](), ErrBadWidth)
	assert.ErrorIs(t, CheckWidth[wide, uint64](), ErrBadWidth)

	_, err := New[tribit, uint32]()
	assert.ErrorIs(t, err, ErrBadWidth)
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct {
		a, b, q, m int
	}{
		{7, 4, 1, 3},
		{-1, 4, -1, 3},
		{-4, 4, -1, 0},
		{-5, 4, -2, 3},
		{0, 4, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.q, floorDiv(tt.a, tt.b), "%d / %d", tt.a, tt.b)
		assert.Equal(t, tt.m, floorMod(tt.a, tt.b), "%d mod %d", tt.a, tt.b)
	}
}
