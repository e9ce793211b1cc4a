package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizing(t *testing.T) {
	require.NoError(t, CheckCPE(10))
	m64 := MCounters(1, 10)
	require.Equal(t, uint64(10), m64)
	m := MCountersSafeCast(m64)
	require.Equal(t, uint32(10), m)

	// 40 counters, 16 per block.
	require.Equal(t, 3, CounterBlocks(m))
	require.Equal(t, uint64(24), RegionBytes(m))

	m2 := MCountersSafeCast(MCounters(8, 8)) // 4*64 counters fill 16 blocks exactly
	require.Equal(t, uint32(64), m2)
	require.Equal(t, uint64(128), RegionBytes(m2))
}

func TestSizing_MCountersSafeCast(t *testing.T) {
	require.Equal(t, uint32(0), MCountersSafeCast(0))
	require.Equal(t, uint32(0), MCountersSafeCast(uint64(^uint32(0))+1))
	require.Equal(t, uint32(^uint32(0)), MCountersSafeCast(uint64(^uint32(0))))
}

func TestCheckCPE(t *testing.T) {
	require.ErrorIs(t, CheckCPE(0), ErrBadMCounters)
	require.ErrorIs(t, CheckCPE(uint64(^uint32(0))+1), ErrMCountersOverflow)
}
