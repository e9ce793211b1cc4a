package blockalloc

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Heap allocates from the Go heap. It is stateless, so every Heap is equal to
// every other and nothing needs to propagate between containers.
type Heap[B constraints.Unsigned] struct{}

func NewHeap[B constraints.Unsigned]() *Heap[B] { return &Heap[B]{} }

func (h *Heap[B]) Allocate(n int) ([]B, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n > h.MaxBlocks() {
		return nil, errors.Wrapf(ErrTooLarge, "heap: %d blocks", n)
	}
	if n == 0 {
		return nil, nil
	}
	return make([]B, n), nil
}

// Deallocate leaves the buffer to the garbage collector.
func (h *Heap[B]) Deallocate(buf []B) {}

func (h *Heap[B]) MaxBlocks() int { return MaxHeapBlocks[B]() }

func (h *Heap[B]) Equal(other Allocator[B]) bool {
	_, ok := other.(*Heap[B])
	return ok
}

func (h *Heap[B]) Policy() Policy { return Policy{AlwaysEqual: true} }
