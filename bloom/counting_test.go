package bloom

import (
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-xbits/blockalloc"
	"github.com/forestrie/go-xbits/xbits"
	"github.com/stretchr/testify/require"
)

func elem(b byte) []byte {
	x := make([]byte, ValueBytes)
	x[0] = b
	x[1] = b ^ 0x5A
	return x
}

func TestCountingInsertAndQuery(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	c, err := NewCounting(128, 10, 7, WithCounterLogger(logger.Sugar.WithServiceName("bloom")))
	require.NoError(t, err)
	require.Equal(t, uint8(7), c.K())
	require.Equal(t, uint32(1280), c.MCounters())

	// Empty filters are definitely-not-present for any element.
	ok, err := c.MaybeContains(0, elem(1))
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Insert(0, elem(1)))
	ok, err = c.MaybeContains(0, elem(1))
	require.NoError(t, err)
	require.True(t, ok)

	// Filters are independent.
	ok, err = c.MaybeContains(1, elem(1))
	require.NoError(t, err)
	require.False(t, ok)

	for i := byte(0); i < 10; i++ {
		require.NoError(t, c.Insert(2, elem(i)))
	}
	for i := byte(0); i < 10; i++ {
		ok, err := c.MaybeContains(2, elem(i))
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, uint32(1), c.Inserted(0))
	require.Equal(t, uint32(10), c.Inserted(2))

	occupied, err := c.Occupied(2)
	require.NoError(t, err)
	require.Greater(t, occupied, 0)
	require.LessOrEqual(t, occupied, 70)
}

func TestCountingRemove(t *testing.T) {
	c, err := NewCounting(64, 16, 4)
	require.NoError(t, err)

	require.NoError(t, c.Insert(3, elem(9)))
	require.NoError(t, c.Insert(3, elem(9)))

	n, err := c.Count(3, elem(9))
	require.NoError(t, err)
	require.Equal(t, uint8(2), n)

	require.NoError(t, c.Remove(3, elem(9)))
	ok, err := c.MaybeContains(3, elem(9))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Remove(3, elem(9)))
	ok, err = c.MaybeContains(3, elem(9))
	require.NoError(t, err)
	require.False(t, ok)

	occupied, err := c.Occupied(3)
	require.NoError(t, err)
	require.Zero(t, occupied)
	require.Zero(t, c.Inserted(3))

	require.ErrorIs(t, c.Remove(3, elem(9)), ErrNotPresent)
}

func TestCountingSaturates(t *testing.T) {
	c, err := NewCounting(8, 8, 3)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		require.NoError(t, c.Insert(1, elem(4)))
	}
	n, err := c.Count(1, elem(4))
	require.NoError(t, err)
	require.Equal(t, CounterMax, n)

	// Saturated counters never come back down.
	for i := 0; i < 20; i++ {
		require.NoError(t, c.Remove(1, elem(4)))
	}
	ok, err := c.MaybeContains(1, elem(4))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, c.Reset(1))
	ok, err = c.MaybeContains(1, elem(4))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCountingUsesAllocator(t *testing.T) {
	a := blockalloc.NewArena[uint64]()
	c, err := NewCounting(8, 8, 5, WithCounterAllocator(a))
	require.NoError(t, err)
	require.Equal(t, CounterBlocks(c.MCounters()), a.InUse())

	c.Release()
	require.Zero(t, a.InUse())

	small := blockalloc.NewArena[uint64](blockalloc.WithArenaBudget(2))
	_, err = NewCounting(8, 8, 5, WithCounterAllocator(small))
	require.ErrorIs(t, err, xbits.ErrLength)
}

func TestCountingRejectsBadInputs(t *testing.T) {
	_, err := NewCounting(0, 8, 5)
	require.ErrorIs(t, err, ErrBadMCounters)
	_, err = NewCounting(8, 8, 0)
	require.ErrorIs(t, err, ErrBadK)
	_, err = NewCounting(8, 8, MaxK+1)
	require.ErrorIs(t, err, ErrBadK)

	c, err := NewCounting(8, 8, 5)
	require.NoError(t, err)

	// Bad filter index.
	err = c.Insert(4, make([]byte, ValueBytes))
	require.ErrorIs(t, err, ErrBadFilterIndex)

	_, err = c.MaybeContains(4, make([]byte, ValueBytes))
	require.ErrorIs(t, err, ErrBadFilterIndex)

	_, err = c.Occupied(4)
	require.ErrorIs(t, err, ErrBadFilterIndex)

	// Bad element size.
	err = c.Insert(0, make([]byte, ValueBytes-1))
	require.ErrorIs(t, err, ErrBadElemSize)

	_, err = c.MaybeContains(0, make([]byte, ValueBytes+1))
	require.ErrorIs(t, err, ErrBadElemSize)

	require.ErrorIs(t, c.Remove(0, nil), ErrBadElemSize)
}
