package vector

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketedAllocatorRoundsUp(t *testing.T) {
	alloc := NewBucketedAllocator[int](256)

	tests := []struct {
		name     string
		request  int
		wantSize int
	}{
		{"single slot", 1, 1},
		{"exact power of two", 8, 8},
		{"rounds to next power", 5, 8},
		{"one past a power", 9, 16},
		{"bucket maximum", 256, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := alloc.Allocate(tt.request)
			require.NoError(t, err)
			require.Len(t, block, tt.wantSize)
			require.Equal(t, tt.wantSize, cap(block))
			alloc.Release(block)
		})
	}
}

func TestBucketedAllocatorOversizeFallsThrough(t *testing.T) {
	alloc := NewBucketedAllocator[int](64)

	// Requests beyond the largest bucket are served exactly and are not
	// pooled on release.
	block, err := alloc.Allocate(100)
	require.NoError(t, err)
	require.Len(t, block, 100)
	require.Equal(t, 100, cap(block))
	alloc.Release(block)
}

func TestBucketedAllocatorRecyclesZeroed(t *testing.T) {
	alloc := NewBucketedAllocator[int](64)

	block, err := alloc.Allocate(8)
	require.NoError(t, err)
	for i := range block {
		block[i] = i + 1
	}
	alloc.Release(block)

	// Whether or not the pool returns the same block, the contract is
	// the same: every slot reads zero.
	again, err := alloc.Allocate(8)
	require.NoError(t, err)
	for i, v := range again {
		require.Zerof(t, v, "slot %d not zeroed after recycling", i)
	}
	alloc.Release(again)
}

func TestBucketedAllocatorMaxRoundsUp(t *testing.T) {
	alloc := NewBucketedAllocator[int](100)
	require.Equal(t, 128, alloc.MaxSlots())

	require.Panics(t, func() { NewBucketedAllocator[int](0) })
	require.Panics(t, func() { NewBucketedAllocator[int](-5) })
}

func TestBucketedAllocatorIgnoresForeignBlocks(t *testing.T) {
	alloc := NewBucketedAllocator[int](64)

	alloc.Release(nil)
	alloc.Release(make([]int, 7))   // not a power of two
	alloc.Release(make([]int, 128)) // beyond the bucket maximum

	require.Panics(t, func() { alloc.Allocate(0) })
}

func TestBucketedAllocatorConcurrentUse(t *testing.T) {
	const goroutines = 8
	const iterations = 500

	alloc := NewBucketedAllocator[int](1 << 10)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				n := 1 + (seed+i)%100
				block, err := alloc.Allocate(n)
				if err != nil {
					t.Error(err)
					return
				}
				for j := range block {
					if block[j] != 0 {
						t.Errorf("slot %d not zeroed", j)
						return
					}
					block[j] = j
				}
				alloc.Release(block)
			}
		}(g)
	}
	wg.Wait()
}
