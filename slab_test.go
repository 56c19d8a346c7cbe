package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireSlab(t *testing.T) {
	t.Run("zero slots acquire no storage", func(t *testing.T) {
		inner := newCountingAllocator[int]()
		s, err := acquireSlab[int](inner, 0)
		require.NoError(t, err)
		require.Nil(t, s.block)
		require.Zero(t, s.slots)
		require.Zero(t, inner.allocates)
	})

	t.Run("negative slot count panics", func(t *testing.T) {
		require.Panics(t, func() {
			_, _ = acquireSlab[int](NewHeapAllocator[int](), -1)
		})
	})

	t.Run("slots are addressable and zeroed", func(t *testing.T) {
		s, err := acquireSlab[int](NewHeapAllocator[int](), 4)
		require.NoError(t, err)
		require.Equal(t, 4, s.slots)
		for i := 0; i < 4; i++ {
			require.Zero(t, *s.index(i))
		}
		*s.index(2) = 7
		require.Equal(t, 7, *s.index(2))
	})

	t.Run("oversized request fails before allocating", func(t *testing.T) {
		type wide struct{ _ [1 << 10]byte }
		inner := newCountingAllocator[wide]()
		_, err := acquireSlab[wide](inner, math.MaxInt/4)
		require.ErrorIs(t, err, ErrOutOfMemory)
		require.Zero(t, inner.allocates)
	})

	t.Run("allocator failure propagates", func(t *testing.T) {
		inner := newCountingAllocator[int]()
		inner.failNextAllocate(errScheduled)
		_, err := acquireSlab[int](inner, 4)
		require.ErrorIs(t, err, errScheduled)
	})
}

func TestSlabKeepsOverProvisionedBlocks(t *testing.T) {
	// A pooling allocator rounds 5 up to 8; the slab must address only
	// the requested 5 slots but hand the full block back on release.
	alloc := NewBucketedAllocator[int](64)
	s, err := acquireSlab[int](alloc, 5)
	require.NoError(t, err)
	require.Equal(t, 5, s.slots)
	require.Equal(t, 8, cap(s.block))
	require.Panics(t, func() { s.index(5) })
	s.release(alloc)
}

func TestSlabIndexBounds(t *testing.T) {
	s, err := acquireSlab[int](NewHeapAllocator[int](), 3)
	require.NoError(t, err)

	require.Panics(t, func() { s.index(-1) })
	require.Panics(t, func() { s.index(3) })

	var empty rawSlab[int]
	require.Panics(t, func() { empty.index(0) })
}

func TestSlabView(t *testing.T) {
	s, err := acquireSlab[int](NewHeapAllocator[int](), 8)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		*s.index(i) = i + 1
	}

	v := s.view(3)
	require.Equal(t, []int{1, 2, 3}, v)
	require.Equal(t, 3, cap(v), "view must not expose vacant slots to append")

	// Appending to the view reallocates instead of spilling into slot 3.
	_ = append(v, 99)
	require.Equal(t, 4, *s.index(3))

	require.Panics(t, func() { s.view(9) })
	require.Panics(t, func() { s.view(-1) })

	var empty rawSlab[int]
	require.Nil(t, empty.view(0))
}

func TestSlabReleaseIsIdempotent(t *testing.T) {
	inner := newCountingAllocator[int]()
	s, err := acquireSlab[int](inner, 4)
	require.NoError(t, err)

	s.release(inner)
	require.Nil(t, s.block)
	require.Zero(t, s.slots)
	s.release(inner)
	require.Equal(t, 1, inner.releases)
	inner.verifyBalanced(t)
}

func TestExchangeSlabs(t *testing.T) {
	alloc := NewHeapAllocator[int]()
	a, err := acquireSlab[int](alloc, 2)
	require.NoError(t, err)
	*a.index(0) = 1
	var b rawSlab[int]

	exchangeSlabs(&a, &b)
	require.Zero(t, a.slots)
	require.Equal(t, 2, b.slots)
	require.Equal(t, 1, *b.index(0))
}
