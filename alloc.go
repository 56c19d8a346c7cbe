package vector

import (
	"github.com/pkg/errors"
)

// ErrOutOfMemory is returned when an allocator cannot satisfy a request.
// Failures are clean: when an error is returned, nothing has been
// allocated and no accounting has changed. Use errors.Is to test for it;
// allocators wrap it with request details.
var ErrOutOfMemory = errors.New("vector: out of memory")

// Allocator hands out blocks of element slots and takes them back.
// It is the only collaborator a Vector depends on.
//
// Allocate returns a block with len == cap >= n holding zero values.
// Every slot is storage only: allocators never construct or destroy
// elements, and a slot holds no live value until the container places
// one there.
//
// Release accepts a block previously returned by Allocate, exactly once.
// Release(nil) is a no-op. Implementations may recycle released blocks,
// but a recycled block must be zeroed again before it is handed out.
//
// Implementations must be safe for concurrent use: one allocator is
// commonly shared by many vectors, even though each vector itself is
// single-threaded.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Release(block []T)
}

// heapAllocator is the default allocator: plain make, with released
// blocks left to the garbage collector.
type heapAllocator[T any] struct{}

var _ Allocator[int] = heapAllocator[int]{}

// NewHeapAllocator returns the default allocator, backed directly by the
// Go heap. It performs no tracking and never fails in practice.
func NewHeapAllocator[T any]() Allocator[T] {
	return heapAllocator[T]{}
}

func (heapAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		panic("vector: Allocate called with non-positive slot count")
	}
	return make([]T, n), nil
}

func (heapAllocator[T]) Release([]T) {}

// LimitAllocator applies a shared MemoryBudget to an inner allocator.
// The block is obtained first and accounted after, based on its real
// capacity rather than the requested size; a rejected block is returned
// to the inner allocator and the budget is left unchanged.
type LimitAllocator[T any] struct {
	inner  Allocator[T]
	budget *MemoryBudget
}

var _ Allocator[int] = (*LimitAllocator[int])(nil)

// NewLimitAllocator wraps inner with the given budget. A nil inner uses
// the heap allocator. The budget may be shared across element types;
// accounting is done in bytes (capacity times element size).
func NewLimitAllocator[T any](inner Allocator[T], budget *MemoryBudget) *LimitAllocator[T] {
	if inner == nil {
		inner = NewHeapAllocator[T]()
	}
	return &LimitAllocator[T]{inner: inner, budget: budget}
}

func (a *LimitAllocator[T]) Allocate(n int) ([]T, error) {
	block, err := a.inner.Allocate(n)
	if err != nil {
		return nil, err
	}

	bytes := uint64(cap(block)) * uint64(sizeOf[T]())
	if err := a.budget.grow(bytes); err != nil {
		a.inner.Release(block)
		return nil, errors.Wrapf(err, "allocating %d slots", n)
	}

	return block, nil
}

func (a *LimitAllocator[T]) Release(block []T) {
	if block == nil {
		return
	}
	a.budget.shrink(uint64(cap(block)) * uint64(sizeOf[T]()))
	a.inner.Release(block)
}

// Budget returns the budget this allocator charges against.
func (a *LimitAllocator[T]) Budget() *MemoryBudget {
	return a.budget
}
