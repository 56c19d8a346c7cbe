package vector

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// sizeOf returns the in-memory size of one element slot in bytes.
func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// rawSlab is an allocator-acquired block of element slots. It owns the
// slots as storage only: no element is ever constructed, destroyed,
// copied or moved here. Which slots hold live values is tracked entirely
// by the owning container; a slab cannot tell a live slot from a vacant
// one and must never be asked to.
//
// The zero value is the empty slab: no block, no slots. A slab is not
// copyable (two owners of one block could not know which slots are
// live); transfer ownership with exchangeSlabs.
type rawSlab[T any] struct {
	block []T // full block as returned by the allocator; nil when slots == 0
	slots int // addressable capacity, in element slots
}

// acquireSlab obtains storage for exactly n slots from alloc. n == 0
// acquires nothing and yields the empty slab. The allocator may
// over-provision; the extra capacity is carried only so the full block
// can be handed back on release, and is never addressed.
func acquireSlab[T any](alloc Allocator[T], n int) (rawSlab[T], error) {
	if n < 0 {
		panic(fmt.Sprintf("vector: acquire of negative slot count %d", n))
	}
	if n == 0 {
		return rawSlab[T]{}, nil
	}
	if s := sizeOf[T](); s > 0 && uintptr(n) > uintptr(math.MaxInt)/s {
		return rawSlab[T]{}, errors.Wrapf(ErrOutOfMemory,
			"%d slots of %d-byte elements overflow the address space", n, s)
	}

	block, err := alloc.Allocate(n)
	if err != nil {
		return rawSlab[T]{}, err
	}
	return rawSlab[T]{block: block, slots: n}, nil
}

// release hands the block back to the allocator that produced it and
// resets the slab to the empty state. Safe to call on the empty slab;
// calling it twice releases nothing twice. The caller must have
// destroyed any live elements first: storage release is not element
// destruction.
func (s *rawSlab[T]) release(alloc Allocator[T]) {
	if s.block != nil {
		alloc.Release(s.block)
	}
	s.block = nil
	s.slots = 0
}

// index returns the address of slot i. The slot may be vacant; the
// caller is responsible for knowing its lifetime state.
func (s *rawSlab[T]) index(i int) *T {
	if i < 0 || i >= s.slots {
		panic(fmt.Sprintf("vector: slab index %d out of range [0, %d)", i, s.slots))
	}
	return &s.block[i]
}

// view returns the first n slots as a slice, capped so appends cannot
// spill into the remaining slots.
func (s *rawSlab[T]) view(n int) []T {
	if n < 0 || n > s.slots {
		panic(fmt.Sprintf("vector: slab view of %d slots out of range [0, %d]", n, s.slots))
	}
	return s.block[:n:n]
}

// exchangeSlabs swaps the storage owned by a and b in O(1). No
// element-level work happens; live slots travel with their block.
func exchangeSlabs[T any](a, b *rawSlab[T]) {
	*a, *b = *b, *a
}
