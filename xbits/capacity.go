package xbits

import (
	"math"

	"github.com/pkg/errors"
)

// ElementsToBlocks returns the number of blocks needed to hold n fields.
func ElementsToBlocks[W Width, B Block](n int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/FieldsPerBlock[W, B]() + 1
}

// BlocksToElements returns the number of fields n blocks hold.
func BlocksToElements[W Width, B Block](n int) int {
	return n * FieldsPerBlock[W, B]()
}

// AlignElements rounds n up to a whole number of blocks worth of fields.
func AlignElements[W Width, B Block](n int) int {
	epb := FieldsPerBlock[W, B]()
	return (n + epb - 1) / epb * epb
}

// MaxElements derives the largest representable field count from the
// allocator's block limit. The element count range is halved so that the
// difference of two positions can never overflow. The result is always a
// whole number of blocks.
func MaxElements[W Width, B Block](allocMaxBlocks int) int {
	epb := FieldsPerBlock[W, B]()
	nblocks := math.MaxInt / 2 / epb
	if nblocks <= allocMaxBlocks {
		return nblocks * epb
	}
	return BlocksToElements[W, B](allocMaxBlocks)
}

// RecommendCapacity returns the field capacity to grow to when a container
// holding capacity fields needs room for requested fields. It doubles, and
// never returns less than requested rounded up to whole blocks.
func RecommendCapacity[W Width, B Block](capacity, requested, maxSize int) (int, error) {
	if requested > maxSize || requested < 0 {
		return 0, errors.Wrapf(ErrLength, "%d fields requested, maximum %d", requested, maxSize)
	}
	if capacity >= maxSize/2 {
		return maxSize, nil
	}
	return max(2*capacity, AlignElements[W, B](requested)), nil
}
