// Package nucleo stores DNA sequences at two bits per base.
//
// Bases are coded A=0, C=1, G=2, T=3, so the bitwise complement of a code is
// the code of the complementary base.
package nucleo

import (
	"strings"

	"github.com/forestrie/go-xbits/xbits"
	"github.com/pkg/errors"
)

const (
	A uint8 = iota
	C
	G
	T
)

const bases = "ACGT"

// Code returns the two bit code of base, which may be upper or lower case.
func Code(base byte) (uint8, error) {
	switch base {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	}
	return 0, errors.Wrapf(ErrBadBase, "%q", base)
}

// Base returns the upper case letter for a two bit code.
func Base(code uint8) byte {
	return bases[code&3]
}

// Encode packs s, which must contain only the letters ACGT in either case.
func Encode[B xbits.Block](s string, opts ...xbits.Option) (*xbits.Vector[xbits.Dibit, B], error) {
	codes := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c, err := Code(s[i])
		if err != nil {
			return nil, errors.Wrapf(err, "offset %d", i)
		}
		codes[i] = c
	}
	return xbits.NewFromSlice[xbits.Dibit, B](codes, opts...)
}

func Decode[B xbits.Block](seq *xbits.Vector[xbits.Dibit, B]) string {
	var sb strings.Builder
	sb.Grow(seq.Len())
	for x := range seq.Values() {
		sb.WriteByte(Base(x))
	}
	return sb.String()
}

// Complement replaces every base with its pair, in place.
func Complement[B xbits.Block](seq *xbits.Vector[xbits.Dibit, B]) {
	seq.Flip()
}

// ReverseComplement turns seq into the sequence of the opposite strand, read
// in its own 5' to 3' direction.
func ReverseComplement[B xbits.Block](seq *xbits.Vector[xbits.Dibit, B]) {
	seq.Flip()
	xbits.Reverse(seq.Begin(), seq.End())
}

// GCContent returns the fraction of G and C bases, or 0 for an empty sequence.
func GCContent[B xbits.Block](seq *xbits.Vector[xbits.Dibit, B]) float64 {
	if seq.Empty() {
		return 0
	}
	return float64(seq.Count(C)+seq.Count(G)) / float64(seq.Len())
}
