package xbits

import (
	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/pkg/errors"
)

func widthOf[W Width]() uint {
	var w W
	return w.Bits()
}

func blockBits[B Block]() uint { return blockalloc.BlockBits[B]() }

// FieldsPerBlock returns how many W wide fields fit in one B.
func FieldsPerBlock[W Width, B Block]() int {
	return int(blockBits[B]() / widthOf[W]())
}

// FieldMask returns the all ones pattern of one field, unshifted:
//
//	mask = maxBlock >> (blockBits - N)
func FieldMask[W Width, B Block]() B {
	return ^B(0) >> (blockBits[B]() - widthOf[W]())
}

// CheckWidth rejects widths the packing scheme cannot address. A field must
// be at least one bit, fit a uint8 value and divide the block evenly.
func CheckWidth[W Width, B Block]() error {
	n := widthOf[W]()
	bb := blockBits[B]()
	if n == 0 || n > MaxFieldBits || n > bb || bb%n != 0 {
		return errors.Wrapf(ErrBadWidth, "%d bit fields in %d bit blocks", n, bb)
	}
	return nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns the non negative residue of a modulo b, for b > 0.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
