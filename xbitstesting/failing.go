package xbitstesting

import (
	"io"

	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	ErrInjectedAllocation = errors.New("xbitstesting: injected allocation failure")
	ErrInjectedRead       = errors.New("xbitstesting: injected read failure")
)

// FailingAllocator delegates to an inner allocator until FailAfter successful
// allocations have been made, then fails every further request. A negative
// FailAfter never fails.
type FailingAllocator[B constraints.Unsigned] struct {
	TestCallCounter
	Inner     blockalloc.Allocator[B]
	FailAfter int
}

func NewFailingAllocator[B constraints.Unsigned](inner blockalloc.Allocator[B], failAfter int) *FailingAllocator[B] {
	return &FailingAllocator[B]{Inner: inner, FailAfter: failAfter}
}

func (a *FailingAllocator[B]) Allocate(n int) ([]B, error) {
	calls := a.IncMethodCall("Allocate")
	if a.FailAfter >= 0 && calls > a.FailAfter {
		return nil, errors.Wrapf(ErrInjectedAllocation, "allocation %d of %d blocks", calls, n)
	}
	return a.Inner.Allocate(n)
}

func (a *FailingAllocator[B]) Deallocate(buf []B) {
	a.IncMethodCall("Deallocate")
	a.Inner.Deallocate(buf)
}

func (a *FailingAllocator[B]) MaxBlocks() int { return a.Inner.MaxBlocks() }

func (a *FailingAllocator[B]) Equal(other blockalloc.Allocator[B]) bool {
	o, ok := other.(*FailingAllocator[B])
	return ok && o == a
}

func (a *FailingAllocator[B]) Policy() blockalloc.Policy { return a.Inner.Policy() }

// FailingReader yields Values in order and returns Err instead of the
// element at index FailAt. With FailAt beyond the values it ends with io.EOF.
type FailingReader struct {
	Values []uint8
	FailAt int
	Err    error
	pos    int
}

func NewFailingReader(vals []uint8, failAt int) *FailingReader {
	return &FailingReader{Values: vals, FailAt: failAt, Err: ErrInjectedRead}
}

func (r *FailingReader) ReadField() (uint8, error) {
	if r.pos == r.FailAt {
		return 0, r.Err
	}
	if r.pos >= len(r.Values) {
		return 0, io.EOF
	}
	r.pos++
	return r.Values[r.pos-1], nil
}

// Read returns how many fields have been handed out.
func (r *FailingReader) Read() int { return r.pos }
