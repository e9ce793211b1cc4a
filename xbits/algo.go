package xbits

// Copy copies [first, last) to the range starting at dst, front to back, and
// returns the end of the destination range. The destination may overlap the
// source only if it starts before it.
func Copy[W Width, B Block](first, last ConstIter[W, B], dst Iter[W, B]) Iter[W, B] {
	for ; !first.Equal(last); first, dst = first.Next(), dst.Next() {
		dst.Set(first.Get())
	}
	return dst
}

// CopyBackward copies [first, last) to the range ending at dstEnd, back to
// front, and returns the start of the destination range. Use it when the
// destination overlaps the tail of the source.
func CopyBackward[W Width, B Block](first, last ConstIter[W, B], dstEnd Iter[W, B]) Iter[W, B] {
	for !last.Equal(first) {
		last = last.Prev()
		dstEnd = dstEnd.Prev()
		dstEnd.Set(last.Get())
	}
	return dstEnd
}

// CopySlice writes vals starting at dst and returns the end of the written
// range.
func CopySlice[W Width, B Block](vals []uint8, dst Iter[W, B]) Iter[W, B] {
	for _, v := range vals {
		dst.Set(v)
		dst = dst.Next()
	}
	return dst
}

// FillN writes v into n fields starting at first.
func FillN[W Width, B Block](first Iter[W, B], n int, v uint8) Iter[W, B] {
	for ; n > 0; n-- {
		first.Set(v)
		first = first.Next()
	}
	return first
}

func Fill[W Width, B Block](first, last Iter[W, B], v uint8) {
	FillN(first, last.Diff(first), v)
}

// Reverse reverses [first, last) in place.
func Reverse[W Width, B Block](first, last Iter[W, B]) {
	for first.Less(last) {
		last = last.Prev()
		if !first.Less(last) {
			return
		}
		SwapFields(first.Field(), last.Field())
		first = first.Next()
	}
}

// Rotate moves [middle, last) in front of [first, middle) and returns the new
// position of the element that was at first.
func Rotate[W Width, B Block](first, middle, last Iter[W, B]) Iter[W, B] {
	if first.Equal(middle) {
		return last
	}
	if middle.Equal(last) {
		return first
	}
	Reverse(first, middle)
	Reverse(middle, last)
	Reverse(first, last)
	return first.Add(last.Diff(middle))
}

// EqualRange reports whether [first1, last1) equals the range of the same
// length starting at first2.
func EqualRange[W Width, B Block](first1, last1, first2 ConstIter[W, B]) bool {
	for ; !first1.Equal(last1); first1, first2 = first1.Next(), first2.Next() {
		if first1.Get() != first2.Get() {
			return false
		}
	}
	return true
}

// CompareRange compares two ranges lexicographically, field by field. A
// proper prefix orders first.
func CompareRange[W Width, B Block](first1, last1, first2, last2 ConstIter[W, B]) int {
	for ; !first1.Equal(last1); first1, first2 = first1.Next(), first2.Next() {
		if first2.Equal(last2) {
			return 1
		}
		a, b := first1.Get(), first2.Get()
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	if first2.Equal(last2) {
		return 0
	}
	return -1
}

// Count returns the number of fields in [first, last) equal to v.
func Count[W Width, B Block](first, last ConstIter[W, B], v uint8) int {
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		if first.Get() == v {
			n++
		}
	}
	return n
}
