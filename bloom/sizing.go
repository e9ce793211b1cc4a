package bloom

import (
	"math"

	"github.com/forestrie/go-xbits/xbits"
)

// CheckCPE validates countersPerElement for safe sizing computations.
func CheckCPE(countersPerElement uint64) error {
	if countersPerElement == 0 {
		return ErrBadMCounters
	}
	if countersPerElement > uint64(^uint32(0)) {
		return ErrMCountersOverflow
	}
	return nil
}

// MCounters returns countersPerElement * leafCount.
//
// The caller is responsible for ensuring:
//   - leafCount > 0
//   - countersPerElement > 0
//   - countersPerElement <= uint64(^uint32(0))
//
// CheckCPE can be used to check these conditions.
func MCounters(leafCount uint64, countersPerElement uint64) uint64 {
	return countersPerElement * leafCount
}

// MCountersSafeCast returns mCounters as uint32, or 0 if it is not safe to
// downcast. The 4 filters together must also stay addressable as an int.
func MCountersSafeCast(mCounters64 uint64) uint32 {
	if mCounters64 == 0 || mCounters64 > uint64(^uint32(0)) {
		return 0
	}
	if mCounters64 > uint64(xbits.MaxElements[xbits.Quadbit, uint64](math.MaxInt)/int(Filters)) {
		return 0
	}
	return uint32(mCounters64)
}

// CounterBlocks returns the number of uint64 blocks holding all 4 filters.
func CounterBlocks(mCounters uint32) int {
	return xbits.ElementsToBlocks[xbits.Quadbit, uint64](int(Filters) * int(mCounters))
}

// RegionBytes returns the storage, in bytes, of all 4 filters.
func RegionBytes(mCounters uint32) uint64 {
	return uint64(CounterBlocks(mCounters)) * 8
}

func filterBase(filterIdx uint8, mCounters uint32) (int, error) {
	if filterIdx >= Filters {
		return 0, ErrBadFilterIndex
	}
	return int(filterIdx) * int(mCounters), nil
}
