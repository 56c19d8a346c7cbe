package vector

import (
	"fmt"
	"iter"
)

// Iterator walks a vector in both directions. The cursor sits between
// elements: Next returns the element after it and advances, Prev
// returns the element before it and retreats. A fresh iterator sits
// before the first element.
//
// The iterator reads through the live vector, so elements mutated in
// place are observed. Any operation that grows, shrinks or shifts the
// vector invalidates outstanding iterators; using one afterwards may
// panic or return stale values.
type Iterator[T any] struct {
	v   *Vector[T]
	pos int
}

// Iter returns an iterator positioned before the first element.
func (v *Vector[T]) Iter() *Iterator[T] {
	return &Iterator[T]{v: v}
}

// HasNext reports whether a Next call would return an element.
func (it *Iterator[T]) HasNext() bool {
	return it.pos < it.v.size
}

// Next returns the next element and advances past it. It panics when
// the cursor is at the end.
func (it *Iterator[T]) Next() T {
	if it.pos >= it.v.size {
		panic("vector: Next past the end")
	}
	e := *it.v.data.index(it.pos)
	it.pos++
	return e
}

// HasPrev reports whether a Prev call would return an element.
func (it *Iterator[T]) HasPrev() bool {
	return it.pos > 0
}

// Prev returns the previous element and retreats before it. It panics
// when the cursor is at the start.
func (it *Iterator[T]) Prev() T {
	if it.pos == 0 {
		panic("vector: Prev before the start")
	}
	it.pos--
	return *it.v.data.index(it.pos)
}

// Peek returns the element a Next call would return without moving the
// cursor, and false at the end.
func (it *Iterator[T]) Peek() (T, bool) {
	if it.pos >= it.v.size {
		var zero T
		return zero, false
	}
	return *it.v.data.index(it.pos), true
}

// Ptr returns the address of the element a Next call would return, for
// in-place mutation. It panics when the cursor is at the end.
func (it *Iterator[T]) Ptr() *T {
	if it.pos >= it.v.size {
		panic("vector: Ptr past the end")
	}
	return it.v.data.index(it.pos)
}

// Index returns the cursor position: the index Next would return, in
// [0, Len()].
func (it *Iterator[T]) Index() int {
	return it.pos
}

// Rewind moves the cursor back before the first element.
func (it *Iterator[T]) Rewind() {
	it.pos = 0
}

// SeekTo places the cursor so that Next returns the element at index i;
// i == Len() seeks to the end. It panics outside that range.
func (it *Iterator[T]) SeekTo(i int) {
	if i < 0 || i > it.v.size {
		panic(fmt.Sprintf("vector: seek position %d out of range [0, %d]", i, it.v.size))
	}
	it.pos = i
}

// All returns an index/element sequence over the live elements, for use
// with a range statement. The vector must not be structurally modified
// during the walk.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.data.index(i)) {
				return
			}
		}
	}
}

// Values returns an element sequence over the live elements, for use
// with a range statement. The vector must not be structurally modified
// during the walk.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.data.index(i)) {
				return
			}
		}
	}
}
