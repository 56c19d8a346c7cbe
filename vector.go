package vector

import (
	"fmt"
	"math"
)

// Vector is a generic, resizable, contiguous array. Elements live in a
// single allocator-acquired slab; the slots [0, Len()) hold live values
// and the slots [Len(), Cap()) are vacant storage that is never read,
// destroyed or handed out.
//
// A fresh vector owns no storage at all: nothing is allocated until the
// first element arrives or capacity is requested. Append is amortized
// O(1) with doubling growth; Insert and Erase are O(n).
//
// Mutations that need new storage follow one discipline: acquire the new
// slab, place any new element into it first, relocate the existing
// elements per the lifecycle's copy-or-move policy, destroy the stale
// originals, exchange slabs, release the old block. If any step fails,
// the new slab is cleaned up and released, and the vector is exactly as
// it was before the call. The exceptions are the in-capacity shifts of
// Insert and Erase and the overwriting path of CopyFrom, where a failing
// element transfer leaves values partially shifted or partially copied;
// the vector remains structurally valid (every slot below Len() is live
// or zero, and destruction stays balanced), but the element order is
// then unspecified. With the zero Lifecycle none of the element
// operations can fail, so only allocation errors remain.
//
// Out-of-range indexes, popping an empty vector and similar caller bugs
// panic; errors are reserved for allocation failures and failing element
// lifecycles.
//
// The zero Vector is ready to use: an empty vector of plain-data
// elements on the heap allocator.
//
// A Vector is not safe for concurrent use. Allocators and budgets are
// shareable; the container itself belongs to one goroutine at a time.
type Vector[T any] struct {
	data  rawSlab[T]
	size  int
	alloc Allocator[T]
	life  Lifecycle[T]
}

// New returns an empty vector of plain-data elements backed by the heap
// allocator. No storage is allocated.
func New[T any]() *Vector[T] {
	return &Vector[T]{alloc: NewHeapAllocator[T]()}
}

// NewIn returns an empty vector drawing storage from alloc. A nil alloc
// uses the heap allocator. No storage is allocated.
func NewIn[T any](alloc Allocator[T]) *Vector[T] {
	if alloc == nil {
		alloc = NewHeapAllocator[T]()
	}
	return &Vector[T]{alloc: alloc}
}

// NewManaged returns an empty vector whose elements follow the given
// lifecycle. A nil alloc uses the heap allocator. No storage is
// allocated.
func NewManaged[T any](life Lifecycle[T], alloc Allocator[T]) *Vector[T] {
	v := NewIn[T](alloc)
	v.life = life
	return v
}

// NewWithLength returns a vector of n default-constructed elements,
// acquired in a single allocation of exactly n slots.
func NewWithLength[T any](n int) (*Vector[T], error) {
	return NewWithLengthIn[T](n, nil)
}

// NewWithLengthIn is NewWithLength drawing storage from alloc.
func NewWithLengthIn[T any](n int, alloc Allocator[T]) (*Vector[T], error) {
	v := NewIn[T](alloc)
	if err := v.Resize(n); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots currently acquired. Len() <= Cap()
// holds after every operation.
func (v *Vector[T]) Cap() int {
	return v.data.slots
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

func (v *Vector[T]) checkIndex(i int) {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vector: index %d out of range [0, %d)", i, v.size))
	}
}

// At returns the element at index i.
func (v *Vector[T]) At(i int) T {
	v.checkIndex(i)
	return *v.data.index(i)
}

// Ptr returns the address of the element at index i, for in-place
// mutation. The pointer is valid until the next operation that grows,
// shrinks or shifts the vector.
func (v *Vector[T]) Ptr(i int) *T {
	v.checkIndex(i)
	return v.data.index(i)
}

// Set destroys the element at index i and stores value in its place,
// taking ownership of value.
func (v *Vector[T]) Set(i int, value T) {
	v.checkIndex(i)
	slot := v.data.index(i)
	v.life.destroy(slot)
	*slot = value
}

// Front returns the first element. It panics if the vector is empty.
func (v *Vector[T]) Front() T {
	if v.size == 0 {
		panic("vector: Front of empty vector")
	}
	return *v.data.index(0)
}

// Back returns the last element. It panics if the vector is empty.
func (v *Vector[T]) Back() T {
	if v.size == 0 {
		panic("vector: Back of empty vector")
	}
	return *v.data.index(v.size - 1)
}

// Reserve ensures capacity for at least n elements, reallocating to
// exactly n slots if the current storage is smaller. Existing elements
// are preserved. On failure the vector is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vector: Reserve of negative capacity %d", n))
	}
	if n <= v.data.slots {
		return nil
	}
	return v.regrow(n)
}

// Resize sets the length to n: shrinking destroys the tail, growing
// default-constructs new elements after ensuring capacity. If a
// construction fails, the freshly constructed tail is destroyed again
// and the length is unchanged; capacity may remain grown.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vector: Resize to negative length %d", n))
	}
	if n < v.size {
		v.destroyRange(n, v.size)
		v.size = n
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	for i := v.size; i < n; i++ {
		if err := v.life.construct(v.data.index(i)); err != nil {
			v.destroyRange(v.size, i)
			return err
		}
	}
	v.size = n
	return nil
}

// ShrinkToFit reallocates so that capacity equals length, releasing the
// excess. An empty vector returns to the no-storage state.
func (v *Vector[T]) ShrinkToFit() error {
	if v.size == v.data.slots {
		return nil
	}
	if v.size == 0 {
		v.data.release(v.allocator())
		return nil
	}
	return v.regrow(v.size)
}

// Append places value at the end, taking ownership of it. Amortized
// O(1); growth doubles the capacity, starting at one slot. On failure
// the vector is unchanged.
func (v *Vector[T]) Append(value T) error {
	if v.size == v.data.slots {
		next, err := acquireSlab(v.allocator(), v.grownCapacity())
		if err != nil {
			return err
		}
		// Place the new element before touching the existing ones, so
		// nothing needs unwinding beyond the unused slab on failure.
		*next.index(v.size) = value
		if err := v.transfer(&next, 0, v.size, 0); err != nil {
			v.life.destroy(next.index(v.size))
			next.release(v.allocator())
			return err
		}
		v.replaceSlab(&next)
	} else {
		*v.data.index(v.size) = value
	}
	v.size++
	return nil
}

// AppendInPlace constructs a new element directly in its final slot by
// calling build on the vacant slot. A build error aborts the append with
// the vector unchanged. Returns the slot address, valid until the next
// structural change.
func (v *Vector[T]) AppendInPlace(build func(*T) error) (*T, error) {
	if build == nil {
		panic("vector: AppendInPlace with nil build func")
	}
	if v.size == v.data.slots {
		next, err := acquireSlab(v.allocator(), v.grownCapacity())
		if err != nil {
			return nil, err
		}
		slot := next.index(v.size)
		if err := build(slot); err != nil {
			v.life.discard(slot)
			next.release(v.allocator())
			return nil, err
		}
		if err := v.transfer(&next, 0, v.size, 0); err != nil {
			v.life.destroy(slot)
			next.release(v.allocator())
			return nil, err
		}
		v.replaceSlab(&next)
	} else {
		slot := v.data.index(v.size)
		if err := build(slot); err != nil {
			v.life.discard(slot)
			return nil, err
		}
	}
	v.size++
	return v.data.index(v.size - 1), nil
}

// PopBack destroys the last element. It panics if the vector is empty.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		panic("vector: PopBack of empty vector")
	}
	v.size--
	v.life.destroy(v.data.index(v.size))
}

// Insert places value at index i, shifting later elements one slot
// toward the back; i == Len() appends. Takes ownership of value. O(n).
// Growing inserts carry the strong failure guarantee; a failing element
// move during the in-capacity shift leaves the order unspecified.
func (v *Vector[T]) Insert(i int, value T) error {
	_, err := v.InsertInPlace(i, func(slot *T) error {
		*slot = value
		return nil
	})
	return err
}

// InsertInPlace is Insert with the element constructed directly in its
// slot by build. Returns the slot address, valid until the next
// structural change.
func (v *Vector[T]) InsertInPlace(i int, build func(*T) error) (*T, error) {
	if build == nil {
		panic("vector: InsertInPlace with nil build func")
	}
	if i < 0 || i > v.size {
		panic(fmt.Sprintf("vector: insert position %d out of range [0, %d]", i, v.size))
	}
	if i == v.size {
		return v.AppendInPlace(build)
	}

	n := v.size
	if n < v.data.slots {
		// Room available: open a gap at i by chaining moves toward the
		// back. Each move vacates the slot the next move fills, ending
		// with slot i vacant.
		if err := v.life.moveInto(v.data.index(n), v.data.index(n-1)); err != nil {
			return nil, err
		}
		v.size = n + 1
		for k := n - 2; k >= i; k-- {
			if err := v.life.moveInto(v.data.index(k+1), v.data.index(k)); err != nil {
				return nil, err
			}
		}
		slot := v.data.index(i)
		if err := build(slot); err != nil {
			v.life.discard(slot)
			return nil, err
		}
		return slot, nil
	}

	next, err := acquireSlab(v.allocator(), v.grownCapacity())
	if err != nil {
		return nil, err
	}
	slot := next.index(i)
	if err := build(slot); err != nil {
		v.life.discard(slot)
		next.release(v.allocator())
		return nil, err
	}
	if err := v.transfer(&next, 0, i, 0); err != nil {
		v.life.destroy(slot)
		next.release(v.allocator())
		return nil, err
	}
	if err := v.transfer(&next, i, n, i+1); err != nil {
		v.undoTransfer(&next, 0, i)
		v.life.destroy(slot)
		next.release(v.allocator())
		return nil, err
	}
	v.replaceSlab(&next)
	v.size = n + 1
	return v.data.index(i), nil
}

// Erase removes the element at index i, shifting later elements one
// slot toward the front; the element that followed i is afterwards at
// i. O(n). A failing element move mid-shift leaves the order
// unspecified; the length is then unchanged.
func (v *Vector[T]) Erase(i int) error {
	v.checkIndex(i)
	v.life.destroy(v.data.index(i))
	n := v.size
	for k := i; k < n-1; k++ {
		if err := v.life.moveInto(v.data.index(k), v.data.index(k+1)); err != nil {
			return err
		}
	}
	v.size = n - 1
	v.life.destroy(v.data.index(n - 1))
	return nil
}

// Clear destroys all elements but keeps the acquired storage.
func (v *Vector[T]) Clear() {
	v.destroyRange(0, v.size)
	v.size = 0
}

// Close destroys all elements and returns the storage to the allocator.
// The vector is empty afterwards and may be reused; pair every vector
// that draws from a pooling or limiting allocator with a Close.
func (v *Vector[T]) Close() {
	v.Clear()
	v.data.release(v.allocator())
}

// Clone returns an independent copy: exactly Len() slots, each element
// copy-constructed. The clone shares the allocator and lifecycle. On
// failure nothing is leaked and the source is untouched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := &Vector[T]{alloc: v.alloc, life: v.life}
	if err := out.cloneFrom(v); err != nil {
		return nil, err
	}
	return out, nil
}

// CopyFrom makes this vector an element-wise copy of src. When src does
// not fit the current capacity, a full independent copy is built first
// and exchanged in, so a failure leaves this vector unchanged. When
// capacity suffices, storage is reused: the overlapping prefix is
// copy-assigned and the tail destroyed or copy-constructed as needed.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.size > v.data.slots {
		tmp := &Vector[T]{alloc: v.alloc, life: v.life}
		if err := tmp.cloneFrom(src); err != nil {
			return err
		}
		exchangeSlabs(&v.data, &tmp.data)
		v.size, tmp.size = tmp.size, v.size
		tmp.Close()
		return nil
	}

	overlap := min(v.size, src.size)
	for i := 0; i < overlap; i++ {
		if err := v.assign(v.data.index(i), *src.data.index(i)); err != nil {
			return err
		}
	}
	if src.size < v.size {
		v.destroyRange(src.size, v.size)
	} else {
		for i := v.size; i < src.size; i++ {
			if err := v.life.copyInto(v.data.index(i), *src.data.index(i)); err != nil {
				v.destroyRange(v.size, i)
				return err
			}
		}
	}
	v.size = src.size
	return nil
}

// MoveFrom adopts src's storage and elements in O(1), destroying this
// vector's current contents first. src is left empty with no storage;
// it keeps its allocator and lifecycle and may be reused. Never fails.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	v.Close()
	v.data, src.data = src.data, rawSlab[T]{}
	v.size, src.size = src.size, 0
	v.alloc = src.alloc
	v.life = src.life
}

// Swap exchanges the full contents of the two vectors in O(1),
// allocators and lifecycles included.
func (v *Vector[T]) Swap(other *Vector[T]) {
	*v, *other = *other, *v
}

// UnsafeSlice returns the live elements [0, Len()) as a direct view of
// the underlying storage. Callers may read and write elements through
// it but must not grow it; the view is invalidated by any operation
// that grows, shrinks or shifts the vector.
func (v *Vector[T]) UnsafeSlice() []T {
	return v.data.view(v.size)
}

// ToSlice returns the elements copy-constructed into a fresh, ordinary
// Go slice, independent of the vector's storage.
func (v *Vector[T]) ToSlice() ([]T, error) {
	if v.size == 0 {
		return nil, nil
	}
	out := make([]T, v.size)
	for i := range out {
		if err := v.life.copyInto(&out[i], *v.data.index(i)); err != nil {
			for j := 0; j < i; j++ {
				v.life.destroy(&out[j])
			}
			return nil, err
		}
	}
	return out, nil
}

// allocator returns the storage source, defaulting the zero Vector to
// the heap allocator.
func (v *Vector[T]) allocator() Allocator[T] {
	if v.alloc == nil {
		v.alloc = NewHeapAllocator[T]()
	}
	return v.alloc
}

// destroyRange destroys the elements in slots [from, to).
func (v *Vector[T]) destroyRange(from, to int) {
	for i := from; i < to; i++ {
		v.life.destroy(v.data.index(i))
	}
}

// transfer relocates the elements in slots [from, to) into dst slots
// starting at dstFrom, per the copy-or-move policy. On failure every
// element this call constructed in dst is destroyed again; under the
// copy policy the source is then untouched.
func (v *Vector[T]) transfer(dst *rawSlab[T], from, to, dstFrom int) error {
	if v.life.moveIsSafe() {
		for i := from; i < to; i++ {
			if err := v.life.moveInto(dst.index(dstFrom+i-from), v.data.index(i)); err != nil {
				v.undoTransfer(dst, dstFrom, dstFrom+i-from)
				return err
			}
		}
		return nil
	}
	for i := from; i < to; i++ {
		if err := v.life.copyInto(dst.index(dstFrom+i-from), *v.data.index(i)); err != nil {
			v.undoTransfer(dst, dstFrom, dstFrom+i-from)
			return err
		}
	}
	return nil
}

// undoTransfer destroys the elements previously transferred into dst
// slots [from, to).
func (v *Vector[T]) undoTransfer(dst *rawSlab[T], from, to int) {
	for i := from; i < to; i++ {
		v.life.destroy(dst.index(i))
	}
}

// replaceSlab destroys the stale elements in the current slab, installs
// next in its place and releases the old block. next must already hold
// the transferred elements.
func (v *Vector[T]) replaceSlab(next *rawSlab[T]) {
	v.destroyRange(0, v.size)
	exchangeSlabs(&v.data, next)
	next.release(v.allocator())
}

// regrow moves the contents into a fresh slab of exactly newCap slots.
func (v *Vector[T]) regrow(newCap int) error {
	next, err := acquireSlab(v.allocator(), newCap)
	if err != nil {
		return err
	}
	if err := v.transfer(&next, 0, v.size, 0); err != nil {
		next.release(v.allocator())
		return err
	}
	v.replaceSlab(&next)
	return nil
}

// cloneFrom fills this storageless vector with a copy of src's
// elements, acquiring exactly src.size slots.
func (v *Vector[T]) cloneFrom(src *Vector[T]) error {
	next, err := acquireSlab(v.allocator(), src.size)
	if err != nil {
		return err
	}
	for i := 0; i < src.size; i++ {
		if err := v.life.copyInto(next.index(i), *src.data.index(i)); err != nil {
			v.undoTransfer(&next, 0, i)
			next.release(v.allocator())
			return err
		}
	}
	exchangeSlabs(&v.data, &next)
	next.release(v.allocator())
	v.size = src.size
	return nil
}

// assign replaces the live element in slot with a copy of src. The copy
// is made first, so a copy failure leaves the element intact.
func (v *Vector[T]) assign(slot *T, src T) error {
	if v.life.NoCopy {
		return ErrNoCopy
	}
	if v.life.Copy == nil {
		if v.life.Destroy != nil {
			v.life.Destroy(slot)
		}
		*slot = src
		return nil
	}
	fresh, err := v.life.Copy(src)
	if err != nil {
		return err
	}
	v.life.destroy(slot)
	*slot = fresh
	return nil
}

// grownCapacity returns the capacity after one doubling step.
func (v *Vector[T]) grownCapacity() int {
	if v.data.slots == 0 {
		return 1
	}
	if v.data.slots > math.MaxInt/2 {
		return math.MaxInt
	}
	return v.data.slots * 2
}
