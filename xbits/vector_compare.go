package xbits

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Equal reports whether v and o hold the same fields in the same order.
func (v *Vector[W, B]) Equal(o *Vector[W, B]) bool {
	return v.size == o.size && EqualRange(v.CBegin(), v.CEnd(), o.CBegin())
}

// Compare orders v and o lexicographically by field value and returns -1, 0
// or +1.
func (v *Vector[W, B]) Compare(o *Vector[W, B]) int {
	return CompareRange(v.CBegin(), v.CEnd(), o.CBegin(), o.CEnd())
}

// Count returns how many fields equal x.
func (v *Vector[W, B]) Count(x uint8) int {
	return Count(v.CBegin(), v.CEnd(), x)
}

func (v *Vector[W, B]) Less(i, j int) bool { return v.Get(i) < v.Get(j) }

func (v *Vector[W, B]) Swap(i, j int) { SwapFields(v.Index(i), v.Index(j)) }

// Sort orders the fields ascending. Fields are at most 8 bits wide, so a
// counting pass replaces comparisons.
func (v *Vector[W, B]) Sort() {
	var counts [1 << MaxFieldBits]int
	for x := range v.Values() {
		counts[x]++
	}
	it := v.Begin()
	for x, n := range counts {
		it = FillN(it, n, uint8(x))
	}
}

// String renders v as a bracketed, space separated list of field values.
func (v *Vector[W, B]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(x)))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (v *Vector[W, B]) checkInvariants() error {
	if v.alloc == nil {
		return errors.New("xbits: vector has no allocator")
	}
	if v.buf == nil {
		if v.size != 0 {
			return errors.Errorf("xbits: size %d without a buffer", v.size)
		}
		return nil
	}
	if v.size < 0 || v.size > v.Cap() {
		return errors.Errorf("xbits: size %d outside capacity %d", v.size, v.Cap())
	}
	if v.Cap() > v.MaxSize() {
		return errors.Errorf("xbits: capacity %d exceeds maximum %d", v.Cap(), v.MaxSize())
	}
	return nil
}
