package blockalloc

import (
	"math"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Allocator hands out zero filled buffers of blocks to a container.
//
// Allocate must return a slice whose length is exactly n. Deallocate is passed
// the very slice Allocate returned and must tolerate a nil buffer.
type Allocator[B constraints.Unsigned] interface {
	Allocate(n int) ([]B, error)
	Deallocate(buf []B)

	// MaxBlocks is the largest single request the allocator can service.
	MaxBlocks() int

	// Equal reports whether buffers from other may be released through this
	// allocator (and the reverse).
	Equal(other Allocator[B]) bool

	Policy() Policy
}

// Policy describes whether an allocator travels with the buffer when the
// owning container is copy assigned, move assigned or swapped.
type Policy struct {
	PropagateOnCopyAssign bool
	PropagateOnMoveAssign bool
	PropagateOnSwap       bool

	// AlwaysEqual is set by stateless allocators. Every instance can release
	// buffers from every other instance.
	AlwaysEqual bool
}

// CopySelector is implemented by allocators that want a container copy to use
// a different allocator than the container it copies. Allocators that do not
// implement it are shared by the copy.
type CopySelector[B constraints.Unsigned] interface {
	SelectOnCopy() Allocator[B]
}

// SelectOnCopy returns the allocator a copy of a container using a should
// use.
func SelectOnCopy[B constraints.Unsigned](a Allocator[B]) Allocator[B] {
	if cs, ok := a.(CopySelector[B]); ok {
		return cs.SelectOnCopy()
	}
	return a
}

// Equal compares two allocators, honouring AlwaysEqual.
func Equal[B constraints.Unsigned](a, b Allocator[B]) bool {
	if a.Policy().AlwaysEqual && b.Policy().AlwaysEqual {
		return true
	}
	return a.Equal(b)
}

// BlockBits returns the width in bits of the block type B.
func BlockBits[B constraints.Unsigned]() uint {
	return uint(bits.OnesCount64(uint64(^B(0))))
}

// BlockBytes returns the size in bytes of one block of type B.
func BlockBytes[B constraints.Unsigned]() int {
	return int(BlockBits[B]() / 8)
}

// MaxHeapBlocks is the largest block count whose byte size still fits an int.
func MaxHeapBlocks[B constraints.Unsigned]() int {
	return math.MaxInt / BlockBytes[B]()
}
