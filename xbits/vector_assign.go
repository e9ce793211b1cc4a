package xbits

import (
	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/pkg/errors"
)

// Clone returns a copy of v. The copy's allocator is chosen by
// blockalloc.SelectOnCopy.
func (v *Vector[W, B]) Clone() (*Vector[W, B], error) {
	return v.CloneWith(blockalloc.SelectOnCopy(v.alloc))
}

// CloneWith returns a copy of v whose storage comes from a.
func (v *Vector[W, B]) CloneWith(a blockalloc.Allocator[B]) (*Vector[W, B], error) {
	o := &Vector[W, B]{alloc: a, log: v.log}
	if v.size > 0 {
		if err := o.vallocate(v.size); err != nil {
			return nil, err
		}
		o.constructAtEndRange(v.CBegin(), v.CEnd())
	}
	return o, nil
}

// Move transfers v's buffer and allocator to a new Vector and leaves v empty
// with no buffer.
func (v *Vector[W, B]) Move() *Vector[W, B] {
	o := &Vector[W, B]{buf: v.buf, size: v.size, alloc: v.alloc, log: v.log}
	v.buf = nil
	v.size = 0
	return o
}

// MoveWith is Move with a replacement allocator. When a and v's allocator
// compare equal the buffer is transferred; otherwise the fields are copied
// into storage from a and v is left as it was.
func (v *Vector[W, B]) MoveWith(a blockalloc.Allocator[B]) (*Vector[W, B], error) {
	if blockalloc.Equal(a, v.alloc) {
		o := v.Move()
		o.alloc = a
		return o, nil
	}
	return v.CloneWith(a)
}

// CopyFrom replaces the contents of v with a copy of o.
//
// If v's allocator policy propagates on copy assignment, v adopts o's
// allocator. The replacement buffer is obtained before the old one is
// released, so on failure v is unchanged.
func (v *Vector[W, B]) CopyFrom(o *Vector[W, B]) error {
	if v == o {
		return nil
	}
	if v.alloc.Policy().PropagateOnCopyAssign {
		if !blockalloc.Equal(v.alloc, o.alloc) {
			nv, err := o.CloneWith(o.alloc)
			if err != nil {
				return err
			}
			v.Release()
			v.buf, v.size, v.alloc = nv.buf, nv.size, nv.alloc
			return nil
		}
		v.alloc = o.alloc
	}
	return v.AssignRange(o.CBegin(), o.CEnd())
}

// MoveFrom replaces the contents of v with those of o. The buffer is taken
// over when the allocator policy propagates on move or the two allocators
// compare equal, and o is left empty. Otherwise the fields are copied and o
// keeps its contents.
func (v *Vector[W, B]) MoveFrom(o *Vector[W, B]) error {
	if v == o {
		return nil
	}
	propagate := v.alloc.Policy().PropagateOnMoveAssign
	if !propagate && !blockalloc.Equal(v.alloc, o.alloc) {
		return v.AssignRange(o.CBegin(), o.CEnd())
	}
	v.Release()
	if propagate {
		v.alloc = o.alloc
	}
	v.buf, v.size = o.buf, o.size
	o.buf, o.size = nil, 0
	return nil
}

// Assign replaces the contents with n copies of x.
func (v *Vector[W, B]) Assign(n int, x uint8) error {
	if n < 0 {
		return errors.Wrapf(ErrLength, "negative size %d", n)
	}
	if n <= v.Cap() {
		v.size = n
		FillN(v.Begin(), n, x)
		return nil
	}
	buf, err := v.allocateFor(n)
	if err != nil {
		return err
	}
	FillN(iterIn[W, B](buf, 0), n, x)
	v.adopt(buf, n)
	return nil
}

func (v *Vector[W, B]) AssignSlice(vals []uint8) error {
	n := len(vals)
	if n <= v.Cap() {
		v.size = n
		CopySlice(vals, v.Begin())
		return nil
	}
	buf, err := v.allocateFor(n)
	if err != nil {
		return err
	}
	CopySlice(vals, iterIn[W, B](buf, 0))
	v.adopt(buf, n)
	return nil
}

// AssignRange replaces the contents with a copy of [first, last), which may
// lie within v.
func (v *Vector[W, B]) AssignRange(first, last ConstIter[W, B]) error {
	n := last.Diff(first)
	if n < 0 {
		return ErrBadRange
	}
	if n <= v.Cap() {
		// A source inside v starts at or after Begin, so a forward copy is safe.
		Copy(first, last, v.Begin())
		v.size = n
		return nil
	}
	buf, err := v.allocateFor(n)
	if err != nil {
		return err
	}
	Copy(first, last, iterIn[W, B](buf, 0))
	v.adopt(buf, n)
	return nil
}

// AssignReader replaces the contents with everything r yields. On error v
// holds the fields read so far.
func (v *Vector[W, B]) AssignReader(r FieldReader) error {
	v.Clear()
	return v.appendReader(r)
}

// Reserve grows the buffer to hold at least n fields. It never shrinks.
func (v *Vector[W, B]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	buf, err := v.allocateFor(n)
	if err != nil {
		return err
	}
	Copy(v.CBegin(), v.CEnd(), iterIn[W, B](buf, 0))
	v.adopt(buf, v.size)
	return nil
}

// ShrinkToFit reduces the buffer to the fewest blocks that hold the current
// size, releasing it entirely when v is empty. It is best effort: if the
// smaller buffer cannot be allocated v keeps the one it has.
func (v *Vector[W, B]) ShrinkToFit() {
	if v.Cap() <= AlignElements[W, B](v.size) {
		return
	}
	if v.size == 0 {
		v.vdeallocate()
		return
	}
	buf, err := v.allocateFor(v.size)
	if err != nil {
		if v.log != nil {
			v.log.Infof("xbits: shrink to %d fields skipped: %v", v.size, err)
		}
		return
	}
	Copy(v.CBegin(), v.CEnd(), iterIn[W, B](buf, 0))
	v.adopt(buf, v.size)
}
