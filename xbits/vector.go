package xbits

import (
	"iter"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/dustin/go-humanize"
	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/pkg/errors"
)

// Vector is a growable sequence of W wide unsigned fields packed into blocks
// of type B.
//
// It owns a single buffer obtained from its allocator. When the buffer is nil
// both the size and the capacity are zero; otherwise size <= Cap(). Capacity
// is always reported in fields, never in blocks.
//
// A Vector is not safe for concurrent use.
type Vector[W Width, B Block] struct {
	buf   []B
	size  int
	alloc blockalloc.Allocator[B]
	log   logger.Logger
}

// New returns an empty Vector that has not allocated any storage.
func New[W Width, B Block](opts ...Option) (*Vector[W, B], error) {
	if err := CheckWidth[W, B](); err != nil {
		return nil, err
	}
	o := newOptions[B](opts)
	return &Vector[W, B]{alloc: o.Allocator, log: o.Log}, nil
}

func NewDibit[B Block](opts ...Option) (*Vector[Dibit, B], error) {
	return New[Dibit, B](opts...)
}

func NewQuadbit[B Block](opts ...Option) (*Vector[Quadbit, B], error) {
	return New[Quadbit, B](opts...)
}

// NewSized returns a Vector of n zero fields.
func NewSized[W Width, B Block](n int, opts ...Option) (*Vector[W, B], error) {
	return NewFilled[W, B](n, 0, opts...)
}

// NewFilled returns a Vector of n fields, each set to x.
func NewFilled[W Width, B Block](n int, x uint8, opts ...Option) (*Vector[W, B], error) {
	v, err := New[W, B](opts...)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrLength, "negative size %d", n)
	}
	if n > 0 {
		if err := v.vallocate(n); err != nil {
			return nil, err
		}
		v.constructAtEndN(n, x)
	}
	return v, nil
}

// NewFromSlice returns a Vector holding vals, truncated to the field width.
func NewFromSlice[W Width, B Block](vals []uint8, opts ...Option) (*Vector[W, B], error) {
	v, err := New[W, B](opts...)
	if err != nil {
		return nil, err
	}
	if len(vals) > 0 {
		if err := v.vallocate(len(vals)); err != nil {
			return nil, err
		}
		v.size = len(vals)
		CopySlice(vals, v.Begin())
	}
	return v, nil
}

// NewFromRange returns a Vector holding a copy of [first, last). The range is
// measured first so the buffer is allocated exactly once.
func NewFromRange[W Width, B Block](first, last ConstIter[W, B], opts ...Option) (*Vector[W, B], error) {
	n := last.Diff(first)
	if n < 0 {
		return nil, ErrBadRange
	}
	v, err := New[W, B](opts...)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		if err := v.vallocate(n); err != nil {
			return nil, err
		}
		v.constructAtEndRange(first, last)
	}
	return v, nil
}

// NewFromReader consumes r until io.EOF, growing as it goes. If r or the
// allocator fails part way the partially built buffer is released and no
// Vector is returned.
func NewFromReader[W Width, B Block](r FieldReader, opts ...Option) (*Vector[W, B], error) {
	v, err := New[W, B](opts...)
	if err != nil {
		return nil, err
	}
	if err := v.appendReader(r); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

// Release returns the buffer to the allocator and leaves v empty. The Vector
// remains usable.
func (v *Vector[W, B]) Release() {
	v.vdeallocate()
}

func (v *Vector[W, B]) Len() int { return v.size }

func (v *Vector[W, B]) Size() int { return v.size }

// Cap returns the number of fields the current buffer can hold.
func (v *Vector[W, B]) Cap() int { return BlocksToElements[W, B](len(v.buf)) }

func (v *Vector[W, B]) Empty() bool { return v.size == 0 }

// Data returns the whole allocated buffer, including blocks past the size.
func (v *Vector[W, B]) Data() []B { return v.buf }

// NumBlocks returns the number of blocks spanned by the current size.
func (v *Vector[W, B]) NumBlocks() int { return ElementsToBlocks[W, B](v.size) }

func (v *Vector[W, B]) MaxSize() int { return MaxElements[W, B](v.alloc.MaxBlocks()) }

func (v *Vector[W, B]) Allocator() blockalloc.Allocator[B] { return v.alloc }

// Index returns the accessor for field i without bounds checking against the
// size.
func (v *Vector[W, B]) Index(i int) Field[W, B] { return v.iterAt(i).Field() }

func (v *Vector[W, B]) Get(i int) uint8 { return v.iterAt(i).Get() }

func (v *Vector[W, B]) Set(i int, x uint8) { v.iterAt(i).Set(x) }

// At returns field i, or ErrOutOfRange if i is not below the size.
func (v *Vector[W, B]) At(i int) (uint8, error) {
	f, err := v.FieldAt(i)
	if err != nil {
		return 0, err
	}
	return f.Get(), nil
}

// FieldAt is the checked form of Index.
func (v *Vector[W, B]) FieldAt(i int) (Field[W, B], error) {
	if i < 0 || i >= v.size {
		return Field[W, B]{}, errors.Wrapf(ErrOutOfRange, "index %d, size %d", i, v.size)
	}
	return v.Index(i), nil
}

func (v *Vector[W, B]) Front() Field[W, B] { return v.Begin().Field() }

func (v *Vector[W, B]) Back() Field[W, B] { return v.End().Prev().Field() }

func (v *Vector[W, B]) Begin() Iter[W, B] { return v.iterAt(0) }

func (v *Vector[W, B]) End() Iter[W, B] { return v.iterAt(v.size) }

func (v *Vector[W, B]) CBegin() ConstIter[W, B] { return v.Begin().Const() }

func (v *Vector[W, B]) CEnd() ConstIter[W, B] { return v.End().Const() }

// All yields the index and value of every field, front to back.
func (v *Vector[W, B]) All() iter.Seq2[int, uint8] {
	return func(yield func(int, uint8) bool) {
		it := v.CBegin()
		for i := 0; i < v.size; i, it = i+1, it.Next() {
			if !yield(i, it.Get()) {
				return
			}
		}
	}
}

// Backward yields the index and value of every field, back to front.
func (v *Vector[W, B]) Backward() iter.Seq2[int, uint8] {
	return func(yield func(int, uint8) bool) {
		it := v.CEnd()
		for i := v.size - 1; i >= 0; i-- {
			it = it.Prev()
			if !yield(i, it.Get()) {
				return
			}
		}
	}
}

func (v *Vector[W, B]) Values() iter.Seq[uint8] {
	return func(yield func(uint8) bool) {
		for _, x := range v.All() {
			if !yield(x) {
				return
			}
		}
	}
}

// Slice copies the fields out into a plain slice.
func (v *Vector[W, B]) Slice() []uint8 {
	out := make([]uint8, 0, v.size)
	for x := range v.Values() {
		out = append(out, x)
	}
	return out
}

func (v *Vector[W, B]) iterAt(pos int) Iter[W, B] {
	return Iter[W, B]{cursorAt[W, B](v.buf, pos)}
}

func iterIn[W Width, B Block](buf []B, pos int) Iter[W, B] {
	return Iter[W, B]{cursorAt[W, B](buf, pos)}
}

// offsetOf converts an iterator over v back into a field index.
func (v *Vector[W, B]) offsetOf(p ConstIter[W, B]) int {
	return p.Diff(v.CBegin())
}

func (v *Vector[W, B]) checkPosition(off int) error {
	if off < 0 || off > v.size {
		return errors.Wrapf(ErrOutOfRange, "position %d, size %d", off, v.size)
	}
	return nil
}

// allocateFor obtains a buffer able to hold n fields, without touching v.
func (v *Vector[W, B]) allocateFor(n int) ([]B, error) {
	if ms := v.MaxSize(); n > ms {
		return nil, errors.Wrapf(ErrLength, "%d fields requested, maximum %d", n, ms)
	}
	nb := ElementsToBlocks[W, B](n)
	buf, err := v.alloc.Allocate(nb)
	if err != nil {
		return nil, errors.Wrapf(err, "allocating %d blocks", nb)
	}
	return buf, nil
}

// vallocate gives an unallocated v a buffer for n fields and a size of zero.
func (v *Vector[W, B]) vallocate(n int) error {
	buf, err := v.allocateFor(n)
	if err != nil {
		return err
	}
	v.buf = buf
	v.size = 0
	return nil
}

func (v *Vector[W, B]) vdeallocate() {
	if v.buf != nil {
		v.alloc.Deallocate(v.buf)
		v.buf = nil
		v.size = 0
	}
}

// adopt installs a fully populated replacement buffer. The previous buffer is
// released only now, after its contents have been copied out.
func (v *Vector[W, B]) adopt(buf []B, size int) {
	old := len(v.buf)
	if v.buf != nil {
		v.alloc.Deallocate(v.buf)
	}
	v.buf = buf
	v.size = size
	if v.log != nil {
		v.log.Debugf("xbits: reallocated %d fields from %d to %d blocks (%s)",
			size, old, len(buf), humanize.IBytes(uint64(len(buf))*uint64(blockalloc.BlockBytes[B]())))
	}
}

func (v *Vector[W, B]) recommend(n int) (int, error) {
	return RecommendCapacity[W, B](v.Cap(), n, v.MaxSize())
}

func (v *Vector[W, B]) constructAtEndN(n int, x uint8) {
	old := v.size
	v.size += n
	FillN(v.iterAt(old), n, x)
}

func (v *Vector[W, B]) constructAtEndRange(first, last ConstIter[W, B]) {
	old := v.size
	v.size += last.Diff(first)
	Copy(first, last, v.iterAt(old))
}
