package bloom

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/forestrie/go-xbits/xbits"
	"github.com/pkg/errors"
)

const bloomDomainV1 = 0xB0

type counterVector = xbits.Vector[xbits.Quadbit, uint64]

// Counting is a 4-way counting Bloom filter.
type Counting struct {
	k         uint8
	mCounters uint32
	counters  *counterVector
	inserted  [Filters]uint32
	log       logger.Logger
}

type CountingOptions struct {
	Allocator blockalloc.Allocator[uint64]
	Log       logger.Logger
}

type CountingOption func(*CountingOptions)

// WithCounterAllocator sets the allocator the counter storage comes from.
func WithCounterAllocator(a blockalloc.Allocator[uint64]) CountingOption {
	return func(o *CountingOptions) {
		o.Allocator = a
	}
}

func WithCounterLogger(log logger.Logger) CountingOption {
	return func(o *CountingOptions) {
		o.Log = log
	}
}

// NewCounting returns an empty filter with mCounters = countersPerElement *
// leafCount counters in each of the 4 filters, and k counters per element.
func NewCounting(leafCount uint64, countersPerElement uint64, k uint8, opts ...CountingOption) (*Counting, error) {
	if leafCount == 0 || countersPerElement == 0 {
		return nil, ErrBadMCounters
	}
	if err := CheckCPE(countersPerElement); err != nil {
		return nil, err
	}
	if k == 0 || k > MaxK {
		return nil, errors.Wrapf(ErrBadK, "k=%d", k)
	}
	mCounters := MCountersSafeCast(MCounters(leafCount, countersPerElement))
	if mCounters == 0 {
		return nil, ErrMCountersOverflow
	}

	o := CountingOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	vopts := []xbits.Option{xbits.WithLogger(o.Log)}
	if o.Allocator != nil {
		vopts = append(vopts, xbits.WithAllocator[uint64](o.Allocator))
	}
	counters, err := xbits.NewSized[xbits.Quadbit, uint64](int(Filters)*int(mCounters), vopts...)
	if err != nil {
		return nil, errors.Wrapf(err, "bloom: allocating %d counters", int(Filters)*int(mCounters))
	}
	return &Counting{k: k, mCounters: mCounters, counters: counters, log: o.Log}, nil
}

func (c *Counting) K() uint8 { return c.k }

func (c *Counting) MCounters() uint32 { return c.mCounters }

// Inserted returns the number of Insert calls, less successful Remove calls,
// made against filterIdx.
func (c *Counting) Inserted(filterIdx uint8) uint32 {
	if filterIdx >= Filters {
		return 0
	}
	return c.inserted[filterIdx]
}

// Insert increments the k counters elem selects in filterIdx. Saturated
// counters are left at CounterMax.
func (c *Counting) Insert(filterIdx uint8, elem []byte) error {
	base, err := c.check(filterIdx, elem)
	if err != nil {
		return err
	}
	saturated := 0
	c.eachIndex(filterIdx, elem, func(j uint64) bool {
		f := c.counters.Index(base + int(j))
		if f.Get() == CounterMax {
			saturated++
			return true
		}
		f.Inc()
		return true
	})
	if saturated > 0 && c.log != nil {
		c.log.Debugf("bloom: filter %d, %d of %d counters saturated", filterIdx, saturated, c.k)
	}
	c.inserted[filterIdx]++
	return nil
}

// Remove decrements the counters elem selects in filterIdx. If any of them is
// zero the element cannot have been inserted: ErrNotPresent is returned and
// nothing changes.
func (c *Counting) Remove(filterIdx uint8, elem []byte) error {
	base, err := c.check(filterIdx, elem)
	if err != nil {
		return err
	}
	if c.estimate(base, filterIdx, elem) == 0 {
		return ErrNotPresent
	}
	c.eachIndex(filterIdx, elem, func(j uint64) bool {
		f := c.counters.Index(base + int(j))
		if v := f.Get(); v > 0 && v < CounterMax {
			f.Dec()
		}
		return true
	})
	if c.inserted[filterIdx] > 0 {
		c.inserted[filterIdx]--
	}
	return nil
}

// MaybeContains checks membership for elem in filterIdx.
//
// Returns (false,nil) if the filter says "definitely not present".
// Returns (true,nil) if the filter says "maybe present".
func (c *Counting) MaybeContains(filterIdx uint8, elem []byte) (bool, error) {
	base, err := c.check(filterIdx, elem)
	if err != nil {
		return false, err
	}
	return c.estimate(base, filterIdx, elem) > 0, nil
}

// Count returns the smallest of the counters elem selects: an upper bound on
// how many times elem was inserted, capped at CounterMax.
func (c *Counting) Count(filterIdx uint8, elem []byte) (uint8, error) {
	base, err := c.check(filterIdx, elem)
	if err != nil {
		return 0, err
	}
	return c.estimate(base, filterIdx, elem), nil
}

// Occupied returns how many counters of filterIdx are non zero.
func (c *Counting) Occupied(filterIdx uint8) (int, error) {
	base, err := filterBase(filterIdx, c.mCounters)
	if err != nil {
		return 0, err
	}
	first := c.counters.CBegin().Add(base)
	last := first.Add(int(c.mCounters))
	return int(c.mCounters) - xbits.Count(first, last, 0), nil
}

// Reset zeroes every counter of filterIdx.
func (c *Counting) Reset(filterIdx uint8) error {
	base, err := filterBase(filterIdx, c.mCounters)
	if err != nil {
		return err
	}
	first := c.counters.Begin().Add(base)
	xbits.FillN(first, int(c.mCounters), 0)
	c.inserted[filterIdx] = 0
	return nil
}

// Release returns the counter storage to its allocator. The filter must not
// be used afterwards.
func (c *Counting) Release() {
	c.counters.Release()
}

func (c *Counting) check(filterIdx uint8, elem []byte) (int, error) {
	base, err := filterBase(filterIdx, c.mCounters)
	if err != nil {
		return 0, err
	}
	if len(elem) != ValueBytes {
		return 0, ErrBadElemSize
	}
	return base, nil
}

func (c *Counting) estimate(base int, filterIdx uint8, elem []byte) uint8 {
	least := CounterMax
	c.eachIndex(filterIdx, elem, func(j uint64) bool {
		least = min(least, c.counters.Get(base+int(j)))
		return least > 0
	})
	return least
}

// eachIndex calls fn with the k counter indexes of elem, stopping early if fn
// returns false.
func (c *Counting) eachIndex(filterIdx uint8, elem []byte, fn func(j uint64) bool) {
	h1, h2 := hashPairV1(filterIdx, elem)
	m := uint64(c.mCounters)
	for i := uint64(0); i < uint64(c.k); i++ {
		if !fn((h1 + i*h2) % m) {
			return
		}
	}
}

func hashPairV1(filterIdx uint8, elem32 []byte) (h1 uint64, h2 uint64) {
	// SHA-256( 0xB0 || filterIdx || elem32 )
	var buf [1 + 1 + ValueBytes]byte
	buf[0] = bloomDomainV1
	buf[1] = filterIdx
	copy(buf[2:], elem32)
	sum := sha256.Sum256(buf[:])
	h1 = binary.BigEndian.Uint64(sum[0:8])
	h2 = binary.BigEndian.Uint64(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}
