package vector

import "sync"

// ArenaAllocator serves blocks by bumping through chunked storage and
// reclaims them wholesale. Release on an individual block is a no-op;
// everything comes back at once through Reset. That makes it a fit for
// request-scoped work: give a batch of vectors one arena, run the
// request, Close the vectors, Reset the arena.
//
// Reset and Close take back every block ever handed out, so they must
// only run once all vectors drawing on this allocator are done. Chunks
// survive Reset for reuse; Close drops them and any later use panics.
//
// Growth through an arena trades space for allocation speed: each
// doubling bumps a fresh block and the old one stays occupied until
// Reset. Size the chunks for the batch, not for a single vector.
//
// An ArenaAllocator is safe for concurrent use, as the Allocator
// contract requires; the bump core itself is single-threaded and the
// wrapper serializes access.
type ArenaAllocator[T any] struct {
	mu sync.Mutex
	a  arena[T]
}

var _ Allocator[int] = (*ArenaAllocator[int])(nil)

// NewArenaAllocator returns an arena allocator with chunks of
// chunkSlots element slots. chunkSlots <= 0 uses
// DefaultArenaChunkSlots.
func NewArenaAllocator[T any](chunkSlots int) *ArenaAllocator[T] {
	return &ArenaAllocator[T]{a: newArena[T](chunkSlots)}
}

// Allocate bumps a zeroed block of exactly n slots. It never fails:
// storage comes from the Go heap a chunk at a time.
func (s *ArenaAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		panic("vector: Allocate called with non-positive slot count")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.allocate(n), nil
}

// Release is a no-op: arena blocks are reclaimed in bulk by Reset, not
// one at a time.
func (s *ArenaAllocator[T]) Release([]T) {}

// Reset takes back every block handed out and keeps the chunks for
// reuse. All vectors drawing on this allocator must be done first.
func (s *ArenaAllocator[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.reset()
}

// Close drops all chunks for the garbage collector. The allocator is
// unusable afterwards; any operation panics.
func (s *ArenaAllocator[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.close()
}

// ReservedSlots returns the slots held across all chunks, handed out or
// not.
func (s *ArenaAllocator[T]) ReservedSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.reservedSlots()
}

// UsedSlots returns the slots currently handed out.
func (s *ArenaAllocator[T]) UsedSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.usedSlots()
}
