package vector

import (
	"github.com/pkg/errors"
)

// ErrNoCopy is returned when an operation needs to copy elements of a
// type whose lifecycle forbids copying.
var ErrNoCopy = errors.New("vector: element type does not support copying")

// Lifecycle describes how a vector constructs, transfers and destroys
// its elements. The zero value treats T as plain data: zero-value
// construction, shallow copies and moves that cannot fail, and no
// finalizer. Element types that own resources, or whose transfer can
// fail, opt in by setting the relevant funcs.
//
// When relocating live elements into new storage, the vector
// move-constructs them only when the move is guaranteed not to fail
// (Move is nil, or MoveNeverFails is set), or when copying is impossible
// (NoCopy). Otherwise it copy-constructs, and destroys the originals
// only after every copy has succeeded: a move that failed halfway
// through a relocation would leave the source half-moved and
// unrecoverable, while failed copies leave the originals intact. A type
// whose copy can also fail mid-relocation is outside the strong
// guarantee; the vector still cleans up the new storage, but the
// operation is then only all-or-nothing per element, not per call.
//
// Values handed in by the caller (Append, Insert, Set and the build
// funcs of the in-place forms) enter the vector as-is: ownership
// transfers without running Copy or Move. The hooks run only for
// default construction, relocation, cloning, copy-assignment and
// destruction.
type Lifecycle[T any] struct {
	// New produces a default-constructed element, used by Resize and the
	// sized constructors. nil means the zero value, which cannot fail.
	New func() (T, error)

	// Copy produces an independent copy of src. nil means a shallow
	// copy, which cannot fail.
	Copy func(src T) (T, error)

	// Move transfers the value out of src. The vector zeroes *src
	// afterwards; Destroy must therefore tolerate moved-from (zero)
	// values, since destruction still runs on vacated slots. nil means a
	// shallow move, which cannot fail.
	Move func(src *T) (T, error)

	// Destroy finalizes an element before its slot is vacated. The slot
	// is zeroed afterwards regardless, so dead elements never pin
	// referenced memory. nil means no finalizer.
	Destroy func(*T)

	// MoveNeverFails promises that Move always returns a nil error,
	// making moves eligible for relocation.
	MoveNeverFails bool

	// NoCopy marks T uncopyable: Clone, CopyFrom and ToSlice fail with
	// ErrNoCopy, and relocation always moves.
	NoCopy bool
}

// moveIsSafe reports whether relocation may move instead of copy.
func (lc Lifecycle[T]) moveIsSafe() bool {
	return lc.Move == nil || lc.MoveNeverFails || lc.NoCopy
}

// construct places a default-constructed element into a vacant slot.
func (lc Lifecycle[T]) construct(slot *T) error {
	if lc.New == nil {
		var zero T
		*slot = zero
		return nil
	}
	v, err := lc.New()
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// copyInto copy-constructs src into a vacant slot.
func (lc Lifecycle[T]) copyInto(slot *T, src T) error {
	if lc.NoCopy {
		return ErrNoCopy
	}
	if lc.Copy == nil {
		*slot = src
		return nil
	}
	v, err := lc.Copy(src)
	if err != nil {
		return err
	}
	*slot = v
	return nil
}

// moveInto move-constructs *src into a vacant slot, leaving *src zeroed.
func (lc Lifecycle[T]) moveInto(slot, src *T) error {
	var zero T
	if lc.Move == nil {
		*slot = *src
		*src = zero
		return nil
	}
	v, err := lc.Move(src)
	if err != nil {
		return err
	}
	*slot = v
	*src = zero
	return nil
}

// destroy finalizes the element in the slot and zeroes it.
func (lc Lifecycle[T]) destroy(slot *T) {
	if lc.Destroy != nil {
		lc.Destroy(slot)
	}
	var zero T
	*slot = zero
}

// discard zeroes a slot whose construction never completed. No
// finalizer runs: a half-built element was never an element.
func (lc Lifecycle[T]) discard(slot *T) {
	var zero T
	*slot = zero
}
