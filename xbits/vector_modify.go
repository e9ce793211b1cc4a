package xbits

import (
	"io"

	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/pkg/errors"
)

// PushBack appends x, growing the buffer if it is full.
func (v *Vector[W, B]) PushBack(x uint8) error {
	if v.size < v.Cap() {
		v.constructAtEndN(1, x)
		return nil
	}
	_, err := v.Insert(v.CEnd(), x)
	return err
}

// Append pushes vals onto the back with at most one reallocation.
func (v *Vector[W, B]) Append(vals ...uint8) error {
	_, err := v.InsertSlice(v.CEnd(), vals)
	return err
}

// PopBack removes the last field. It reports ErrOutOfRange on an empty
// Vector.
func (v *Vector[W, B]) PopBack() error {
	if v.size == 0 {
		return errors.Wrap(ErrOutOfRange, "pop from empty vector")
	}
	v.size--
	return nil
}

// openGap makes room for n fields in front of pos and returns an iterator to
// the first field of the gap. The gap contents are unspecified. Either the
// gap is opened or v is left untouched.
func (v *Vector[W, B]) openGap(pos ConstIter[W, B], n int) (Iter[W, B], error) {
	off := v.offsetOf(pos)
	if err := v.checkPosition(off); err != nil {
		return Iter[W, B]{}, err
	}
	if n > v.MaxSize()-v.size {
		return Iter[W, B]{}, errors.Wrapf(ErrLength, "inserting %d fields into %d", n, v.size)
	}
	p := v.iterAt(off).Const()
	if c := v.Cap(); n <= c && v.size <= c-n {
		oldEnd := v.CEnd()
		v.size += n
		CopyBackward(p, oldEnd, v.End())
		return v.iterAt(off), nil
	}
	newCap, err := v.recommend(v.size + n)
	if err != nil {
		return Iter[W, B]{}, err
	}
	buf, err := v.allocateFor(newCap)
	if err != nil {
		return Iter[W, B]{}, err
	}
	newSize := v.size + n
	gap := Copy(v.CBegin(), p, iterIn[W, B](buf, 0))
	CopyBackward(p, v.CEnd(), iterIn[W, B](buf, newSize))
	v.adopt(buf, newSize)
	return v.iterAt(gap.Diff(iterIn[W, B](buf, 0))), nil
}

// Insert places x in front of pos and returns an iterator to it.
func (v *Vector[W, B]) Insert(pos ConstIter[W, B], x uint8) (Iter[W, B], error) {
	r, err := v.openGap(pos, 1)
	if err != nil {
		return r, err
	}
	r.Set(x)
	return r, nil
}

// InsertN places n copies of x in front of pos. With n == 0 it returns pos
// and does nothing else.
func (v *Vector[W, B]) InsertN(pos ConstIter[W, B], n int, x uint8) (Iter[W, B], error) {
	if n < 0 {
		return Iter[W, B]{}, errors.Wrapf(ErrLength, "negative count %d", n)
	}
	if n == 0 {
		off := v.offsetOf(pos)
		return v.iterAt(off), v.checkPosition(off)
	}
	r, err := v.openGap(pos, n)
	if err != nil {
		return r, err
	}
	FillN(r, n, x)
	return r, nil
}

func (v *Vector[W, B]) InsertSlice(pos ConstIter[W, B], vals []uint8) (Iter[W, B], error) {
	if len(vals) == 0 {
		off := v.offsetOf(pos)
		return v.iterAt(off), v.checkPosition(off)
	}
	r, err := v.openGap(pos, len(vals))
	if err != nil {
		return r, err
	}
	CopySlice(vals, r)
	return r, nil
}

// InsertRange copies [first, last) in front of pos. The range may come from v
// itself.
func (v *Vector[W, B]) InsertRange(pos ConstIter[W, B], first, last ConstIter[W, B]) (Iter[W, B], error) {
	n := last.Diff(first)
	if n < 0 {
		return Iter[W, B]{}, ErrBadRange
	}
	if n == 0 {
		off := v.offsetOf(pos)
		return v.iterAt(off), v.checkPosition(off)
	}
	if first.sameBuffer(v.buf) {
		vals := make([]uint8, 0, n)
		for it := first; !it.Equal(last); it = it.Next() {
			vals = append(vals, it.Get())
		}
		return v.InsertSlice(pos, vals)
	}
	r, err := v.openGap(pos, n)
	if err != nil {
		return r, err
	}
	Copy(first, last, r)
	return r, nil
}

// InsertReader inserts everything r yields in front of pos.
//
// Fields are first appended into the spare capacity. Whatever does not fit is
// staged in a temporary Vector, the buffer is grown once, and the appended
// run is rotated into place before the staged fields are inserted after it.
// If r or the allocator fails, v is restored to its prior contents.
func (v *Vector[W, B]) InsertReader(pos ConstIter[W, B], r FieldReader) (Iter[W, B], error) {
	off := v.offsetOf(pos)
	if err := v.checkPosition(off); err != nil {
		return Iter[W, B]{}, err
	}
	oldSize := v.size
	rollback := func(err error) (Iter[W, B], error) {
		v.size = oldSize
		return v.iterAt(off), err
	}

	for v.size < v.Cap() {
		x, err := r.ReadField()
		if errors.Is(err, io.EOF) {
			Rotate(v.iterAt(off), v.iterAt(oldSize), v.End())
			return v.iterAt(off), nil
		}
		if err != nil {
			return rollback(err)
		}
		v.constructAtEndN(1, x)
	}

	tmp := &Vector[W, B]{alloc: v.alloc, log: v.log}
	defer tmp.Release()
	if err := tmp.appendReader(r); err != nil {
		return rollback(err)
	}
	if tmp.size > 0 {
		if tmp.size > v.MaxSize()-v.size {
			return rollback(errors.Wrapf(ErrLength, "inserting %d fields into %d", tmp.size, v.size))
		}
		newCap, err := v.recommend(v.size + tmp.size)
		if err != nil {
			return rollback(err)
		}
		if err := v.Reserve(newCap); err != nil {
			return rollback(err)
		}
	}
	appended := v.size - oldSize
	Rotate(v.iterAt(off), v.iterAt(oldSize), v.End())
	if _, err := v.InsertRange(v.iterAt(off+appended).Const(), tmp.CBegin(), tmp.CEnd()); err != nil {
		// Reserve above already made room, so this cannot fail. Restore order
		// anyway before reporting.
		Rotate(v.iterAt(off), v.iterAt(off+appended), v.End())
		return rollback(err)
	}
	return v.iterAt(off), nil
}

// appendReader pushes everything r yields onto the back.
func (v *Vector[W, B]) appendReader(r FieldReader) error {
	for {
		x, err := r.ReadField()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := v.PushBack(x); err != nil {
			return err
		}
	}
}

// Erase removes the field at pos and returns an iterator to the field that
// followed it. It panics if pos does not address a field of v.
func (v *Vector[W, B]) Erase(pos ConstIter[W, B]) Iter[W, B] {
	off := v.offsetOf(pos)
	if off < 0 || off >= v.size {
		panic(errors.Wrapf(ErrOutOfRange, "erase at %d, size %d", off, v.size))
	}
	p := v.iterAt(off)
	Copy(p.Next().Const(), v.CEnd(), p)
	v.size--
	return v.iterAt(off)
}

// EraseRange removes [first, last). An empty range changes nothing. It panics
// if the range is not within v.
func (v *Vector[W, B]) EraseRange(first, last ConstIter[W, B]) Iter[W, B] {
	lo, hi := v.offsetOf(first), v.offsetOf(last)
	if lo < 0 || hi < lo || hi > v.size {
		panic(errors.Wrapf(ErrBadRange, "erase [%d, %d), size %d", lo, hi, v.size))
	}
	if lo != hi {
		Copy(v.iterAt(hi).Const(), v.CEnd(), v.iterAt(lo))
		v.size -= hi - lo
	}
	return v.iterAt(lo)
}

// Resize changes the size to n, appending zero fields when growing.
func (v *Vector[W, B]) Resize(n int) error {
	return v.ResizeFill(n, 0)
}

// ResizeFill changes the size to n, appending copies of x when growing.
func (v *Vector[W, B]) ResizeFill(n int, x uint8) error {
	if n < 0 {
		return errors.Wrapf(ErrLength, "negative size %d", n)
	}
	if n <= v.size {
		v.size = n
		return nil
	}
	_, err := v.InsertN(v.CEnd(), n-v.size, x)
	return err
}

// Clear sets the size to zero and keeps the buffer.
func (v *Vector[W, B]) Clear() {
	v.size = 0
}

// Flip complements every field. Bits past the size in the last block are
// flipped as well; they hold no meaning.
func (v *Vector[W, B]) Flip() {
	nb := v.NumBlocks()
	for i := range v.buf[:nb] {
		v.buf[i] = ^v.buf[i]
	}
}

// SwapWith exchanges contents with o. Allocators follow their contents only
// when the policy asks for it. Otherwise they must compare equal, and
// ErrAllocatorMismatch is returned with both vectors left as they were.
func (v *Vector[W, B]) SwapWith(o *Vector[W, B]) error {
	if v == o {
		return nil
	}
	propagate := v.alloc.Policy().PropagateOnSwap
	if !propagate && !blockalloc.Equal(v.alloc, o.alloc) {
		return errors.Wrapf(ErrAllocatorMismatch, "swap between %v and %v", v.alloc, o.alloc)
	}
	v.buf, o.buf = o.buf, v.buf
	v.size, o.size = o.size, v.size
	if propagate {
		v.alloc, o.alloc = o.alloc, v.alloc
	}
	return nil
}
