package xbits

// cursor is the position arithmetic shared by Iter and ConstIter: the buffer
// being walked, a block index and the field offset inside that block.
//
// The block index may step one past either end of the buffer, so End and
// positions reached by walking back from Begin are representable. Only
// dereferencing needs a block inside the buffer.
type cursor[W Width, B Block] struct {
	blocks []B
	blk    int
	off    int
}

func cursorAt[W Width, B Block](blocks []B, pos int) cursor[W, B] {
	epb := FieldsPerBlock[W, B]()
	return cursor[W, B]{blocks: blocks, blk: floorDiv(pos, epb), off: floorMod(pos, epb)}
}

func (c cursor[W, B]) next() cursor[W, B] {
	if c.off != FieldsPerBlock[W, B]()-1 {
		c.off++
	} else {
		c.off = 0
		c.blk++
	}
	return c
}

func (c cursor[W, B]) prev() cursor[W, B] {
	if c.off != 0 {
		c.off--
	} else {
		c.off = FieldsPerBlock[W, B]() - 1
		c.blk--
	}
	return c
}

// advance moves n fields, in either direction. Floor division keeps the
// offset a non negative residue when n is negative.
func (c cursor[W, B]) advance(n int) cursor[W, B] {
	epb := FieldsPerBlock[W, B]()
	c.blk += floorDiv(n+c.off, epb)
	c.off = floorMod(n+c.off, epb)
	return c
}

func (c cursor[W, B]) distance(o cursor[W, B]) int {
	return (c.blk-o.blk)*FieldsPerBlock[W, B]() + c.off - o.off
}

func (c cursor[W, B]) compare(o cursor[W, B]) int {
	switch {
	case c.blk < o.blk:
		return -1
	case c.blk > o.blk:
		return 1
	case c.off < o.off:
		return -1
	case c.off > o.off:
		return 1
	}
	return 0
}

func (c cursor[W, B]) field() Field[W, B] {
	return newField[W, B](&c.blocks[c.blk], c.off)
}

// Iter is a random access cursor over the fields of a buffer. Dereferencing
// produces a write-through Field.
//
// Iterators are plain values holding a non owning reference to the buffer.
// Any operation that reallocates or shifts the container invalidates them.
type Iter[W Width, B Block] struct {
	c cursor[W, B]
}

func (it Iter[W, B]) Field() Field[W, B] { return it.c.field() }

func (it Iter[W, B]) Get() uint8 { return it.c.field().Get() }

func (it Iter[W, B]) Set(v uint8) { it.c.field().Set(v) }

// At returns the field n positions away, it[n] == *(it + n).
func (it Iter[W, B]) At(n int) Field[W, B] { return it.Add(n).Field() }

func (it Iter[W, B]) Next() Iter[W, B] { return Iter[W, B]{it.c.next()} }

func (it Iter[W, B]) Prev() Iter[W, B] { return Iter[W, B]{it.c.prev()} }

func (it Iter[W, B]) Add(n int) Iter[W, B] { return Iter[W, B]{it.c.advance(n)} }

func (it Iter[W, B]) Sub(n int) Iter[W, B] { return Iter[W, B]{it.c.advance(-n)} }

// Diff returns the signed number of fields from o to it.
func (it Iter[W, B]) Diff(o Iter[W, B]) int { return it.c.distance(o.c) }

func (it Iter[W, B]) Equal(o Iter[W, B]) bool { return it.c.compare(o.c) == 0 }

func (it Iter[W, B]) Less(o Iter[W, B]) bool { return it.c.compare(o.c) < 0 }

// Compare orders iterators by block then offset. The result only means
// something for iterators over the same buffer.
func (it Iter[W, B]) Compare(o Iter[W, B]) int { return it.c.compare(o.c) }

// Const widens it to a read-only iterator at the same position.
func (it Iter[W, B]) Const() ConstIter[W, B] { return ConstIter[W, B]{it.c} }

// ConstIter is the read-only iterator. Dereferencing yields a value copy and
// Set discards its argument.
type ConstIter[W Width, B Block] struct {
	c cursor[W, B]
}

func (it ConstIter[W, B]) Field() ConstField[W, B] { return it.c.field().Const() }

func (it ConstIter[W, B]) Get() uint8 { return it.c.field().Get() }

func (it ConstIter[W, B]) Set(uint8) {}

func (it ConstIter[W, B]) At(n int) uint8 { return it.Add(n).Get() }

func (it ConstIter[W, B]) Next() ConstIter[W, B] { return ConstIter[W, B]{it.c.next()} }

func (it ConstIter[W, B]) Prev() ConstIter[W, B] { return ConstIter[W, B]{it.c.prev()} }

func (it ConstIter[W, B]) Add(n int) ConstIter[W, B] { return ConstIter[W, B]{it.c.advance(n)} }

func (it ConstIter[W, B]) Sub(n int) ConstIter[W, B] { return ConstIter[W, B]{it.c.advance(-n)} }

func (it ConstIter[W, B]) Diff(o ConstIter[W, B]) int { return it.c.distance(o.c) }

func (it ConstIter[W, B]) Equal(o ConstIter[W, B]) bool { return it.c.compare(o.c) == 0 }

func (it ConstIter[W, B]) Less(o ConstIter[W, B]) bool { return it.c.compare(o.c) < 0 }

func (it ConstIter[W, B]) Compare(o ConstIter[W, B]) int { return it.c.compare(o.c) }

// sameBuffer reports whether it walks the given buffer.
func (it ConstIter[W, B]) sameBuffer(buf []B) bool {
	return len(it.c.blocks) > 0 && len(buf) > 0 && &it.c.blocks[0] == &buf[0]
}
