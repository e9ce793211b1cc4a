package bloom

import "github.com/pkg/errors"

const (
	// ValueBytes is the fixed element width.
	ValueBytes = 32

	// Filters is the number of parallel Bloom filters.
	Filters uint8 = 4

	// CounterMax is the saturation value of a 4-bit counter.
	CounterMax uint8 = 15

	// MaxK bounds the number of hash functions per element.
	MaxK uint8 = 32
)

var (
	ErrBadElemSize    = errors.New("bloom: element must be 32 bytes")
	ErrBadFilterIndex = errors.New("bloom: invalid filter index")
	ErrBadK           = errors.New("bloom: k invalid")
	ErrBadMCounters   = errors.New("bloom: mCounters invalid")
	ErrNotPresent     = errors.New("bloom: element not present")

	ErrMCountersOverflow = errors.New("bloom: mCounters overflows supported range")
)
