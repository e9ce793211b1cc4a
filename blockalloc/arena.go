package blockalloc

import (
	"fmt"
	"sync"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

const DefaultArenaBudget = 1 << 20

// Arena is a budgeted allocator that keeps account of every buffer it has
// handed out. The account lives in a ledger identified by a uuid. Arenas
// obtained from Share use the same ledger and compare equal, so a buffer from
// one may be released through the other. Separately created arenas never
// compare equal, and a container moved between them has to copy its contents.
//
// The ledger is guarded by a mutex because one arena may back several
// containers. The containers themselves are not safe for concurrent use.
type Arena[B constraints.Unsigned] struct {
	policy Policy
	log    logger.Logger
	ledger *ledger[B]
}

type ledger[B constraints.Unsigned] struct {
	id     uuid.UUID
	budget int

	mu          sync.Mutex
	inUse       int
	live        map[*B]int
	allocations int
	releases    int
}

type ArenaOptions struct {
	Budget int
	Policy Policy
	Log    logger.Logger
}

type ArenaOption func(*ArenaOptions)

// WithArenaBudget caps the number of blocks outstanding at any one time. It
// has no effect on Share, which keeps the budget of the ledger.
func WithArenaBudget(blocks int) ArenaOption {
	return func(o *ArenaOptions) {
		o.Budget = blocks
	}
}

func WithArenaPolicy(p Policy) ArenaOption {
	return func(o *ArenaOptions) {
		o.Policy = p
	}
}

func WithArenaLogger(log logger.Logger) ArenaOption {
	return func(o *ArenaOptions) {
		o.Log = log
	}
}

func NewArena[B constraints.Unsigned](opts ...ArenaOption) *Arena[B] {
	o := ArenaOptions{Budget: DefaultArenaBudget}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Budget <= 0 || o.Budget > MaxHeapBlocks[B]() {
		o.Budget = MaxHeapBlocks[B]()
	}
	return &Arena[B]{
		policy: o.Policy,
		log:    o.Log,
		ledger: &ledger[B]{
			id:     uuid.New(),
			budget: o.Budget,
			live:   map[*B]int{},
		},
	}
}

// Share returns an arena that draws on the same ledger as a. It takes its
// policy and logger from opts, not from a.
func (a *Arena[B]) Share(opts ...ArenaOption) *Arena[B] {
	var o ArenaOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Arena[B]{policy: o.Policy, log: o.Log, ledger: a.ledger}
}

func (a *Arena[B]) Allocate(n int) ([]B, error) {
	l := a.ledger
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n > l.budget {
		return nil, errors.Wrapf(ErrTooLarge, "arena %s: %d blocks, budget %d", l.id, n, l.budget)
	}
	if n == 0 {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inUse+n > l.budget {
		return nil, errors.Wrapf(ErrExhausted, "arena %s: %d blocks requested, %d of %d in use", l.id, n, l.inUse, l.budget)
	}
	buf := make([]B, n)
	l.live[&buf[0]] = n
	l.inUse += n
	l.allocations++
	return buf, nil
}

func (a *Arena[B]) Deallocate(buf []B) {
	if len(buf) == 0 {
		return
	}
	l := a.ledger

	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.live[&buf[0]]
	if !ok {
		if a.log != nil {
			a.log.Infof("%v: arena %s, %d blocks", ErrUnknownBuffer, l.id, len(buf))
		}
		return
	}
	delete(l.live, &buf[0])
	l.inUse -= n
	l.releases++
}

func (a *Arena[B]) MaxBlocks() int { return a.ledger.budget }

// Equal reports whether other draws on the same ledger.
func (a *Arena[B]) Equal(other Allocator[B]) bool {
	o, ok := other.(*Arena[B])
	return ok && o.ledger == a.ledger
}

func (a *Arena[B]) Policy() Policy { return a.policy }

func (a *Arena[B]) ID() uuid.UUID { return a.ledger.id }

// InUse returns the number of blocks currently handed out.
func (a *Arena[B]) InUse() int {
	a.ledger.mu.Lock()
	defer a.ledger.mu.Unlock()
	return a.ledger.inUse
}

// Outstanding returns the number of buffers not yet released.
func (a *Arena[B]) Outstanding() int {
	a.ledger.mu.Lock()
	defer a.ledger.mu.Unlock()
	return len(a.ledger.live)
}

func (a *Arena[B]) Allocations() int {
	a.ledger.mu.Lock()
	defer a.ledger.mu.Unlock()
	return a.ledger.allocations
}

func (a *Arena[B]) Releases() int {
	a.ledger.mu.Lock()
	defer a.ledger.mu.Unlock()
	return a.ledger.releases
}

func (a *Arena[B]) String() string {
	l := a.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	return fmt.Sprintf("arena %s: %d/%d blocks in use (%s)",
		l.id, l.inUse, l.budget, humanize.IBytes(uint64(l.inUse)*uint64(BlockBytes[B]())))
}
