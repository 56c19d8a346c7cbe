package vector

import (
	"math/bits"
	"sync"
)

// BucketedAllocator recycles released blocks through power-of-two size
// buckets backed by sync.Pool. It is a reuse layer only: it never fails
// on its own, and requests larger than the configured maximum bypass the
// buckets and fall through to a direct allocation.
//
// Recycled blocks are zeroed before they are handed out again, so
// callers always observe the Allocator contract of zero-valued slots.
// Compose with a LimitAllocator when byte accounting is needed:
//
//	budget := vector.NewMemoryBudget(64<<20, nil)
//	alloc := vector.NewLimitAllocator(vector.NewBucketedAllocator[Row](1<<16), budget)
type BucketedAllocator[T any] struct {
	buckets  []sync.Pool // bucket i serves blocks of exactly 1<<i slots
	maxSlots int
}

var _ Allocator[int] = (*BucketedAllocator[int])(nil)

// NewBucketedAllocator returns an allocator with buckets for 1 up to
// maxSlots slots, rounded up to the next power of two.
func NewBucketedAllocator[T any](maxSlots int) *BucketedAllocator[T] {
	if maxSlots < 1 {
		panic("vector: bucketed allocator needs a positive maximum size")
	}
	count := bucketFor(maxSlots) + 1
	return &BucketedAllocator[T]{
		buckets:  make([]sync.Pool, count),
		maxSlots: 1 << (count - 1),
	}
}

func (a *BucketedAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		panic("vector: Allocate called with non-positive slot count")
	}
	if n > a.maxSlots {
		return make([]T, n), nil
	}

	i := bucketFor(n)
	if x := a.buckets[i].Get(); x != nil {
		block := *(x.(*[]T))
		clear(block)
		return block, nil
	}
	return make([]T, 1<<i), nil
}

func (a *BucketedAllocator[T]) Release(block []T) {
	c := cap(block)
	if c == 0 || c > a.maxSlots || !isPowerOfTwo(c) {
		// Not one of ours: either nil, from the fall-through path, or a
		// foreign block. Leave it to the garbage collector.
		return
	}
	block = block[:c]
	a.buckets[bucketFor(c)].Put(&block)
}

// MaxSlots returns the largest request served from the buckets.
func (a *BucketedAllocator[T]) MaxSlots() int {
	return a.maxSlots
}

// bucketFor returns the index of the smallest bucket whose block size
// (1 << index) is at least n.
func bucketFor(n int) int {
	return bits.Len(uint(n - 1))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
