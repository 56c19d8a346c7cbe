package vector

// DefaultArenaChunkSlots is the chunk size, in element slots, used when
// an arena allocator is created without one.
const DefaultArenaChunkSlots = 1024

// arenaChunk is one contiguous run of slots; blocks are bumped off its
// front until it runs out.
type arenaChunk[T any] struct {
	buf []T
	off int
}

func (c *arenaChunk[T]) take(n int) ([]T, bool) {
	if c.off+n > len(c.buf) {
		return nil, false
	}
	block := c.buf[c.off : c.off+n : c.off+n]
	c.off += n
	return block, true
}

// arena is a chunked bump store of element slots. Blocks are carved off
// the current chunk in order; a request that does not fit moves on to
// the next chunk, opening a fresh one when none is left. Individual
// blocks are never reclaimed: reset takes everything back at once and
// keeps the chunks for reuse.
//
// Not safe for concurrent use. ArenaAllocator adds the locking and is
// the public face.
type arena[T any] struct {
	chunks     []arenaChunk[T]
	cur        int // chunk currently bumped from
	chunkSlots int
	closed     bool
}

func newArena[T any](chunkSlots int) arena[T] {
	if chunkSlots <= 0 {
		chunkSlots = DefaultArenaChunkSlots
	}
	return arena[T]{chunkSlots: chunkSlots}
}

// allocate bumps a block of exactly n slots. Chunks start out zeroed
// and reset re-zeroes the used part, so the block always holds zero
// values. A request larger than the chunk size gets a dedicated chunk.
func (a *arena[T]) allocate(n int) []T {
	a.panicIfClosed()
	for a.cur < len(a.chunks) {
		if block, ok := a.chunks[a.cur].take(n); ok {
			return block
		}
		a.cur++
	}

	size := a.chunkSlots
	if n > size {
		size = n
	}
	a.chunks = append(a.chunks, arenaChunk[T]{buf: make([]T, size)})
	a.cur = len(a.chunks) - 1
	block, _ := a.chunks[a.cur].take(n)
	return block
}

// reset takes every outstanding block back and rewinds to the first
// chunk, keeping the chunks for reuse. The used part of each chunk is
// zeroed so reused slots honor the zero-value contract.
func (a *arena[T]) reset() {
	a.panicIfClosed()
	for i := range a.chunks {
		c := &a.chunks[i]
		clear(c.buf[:c.off])
		c.off = 0
	}
	a.cur = 0
}

// close drops all chunks for the garbage collector and makes the arena
// unusable. Any operation afterwards panics.
func (a *arena[T]) close() {
	a.chunks = nil
	a.cur = 0
	a.closed = true
}

func (a *arena[T]) panicIfClosed() {
	if a.closed {
		panic("vector: arena allocator used after Close")
	}
}

// reservedSlots returns the slots held across all chunks.
func (a *arena[T]) reservedSlots() int {
	total := 0
	for i := range a.chunks {
		total += len(a.chunks[i].buf)
	}
	return total
}

// usedSlots returns the slots currently handed out.
func (a *arena[T]) usedSlots() int {
	used := 0
	for i := range a.chunks {
		used += a.chunks[i].off
	}
	return used
}
