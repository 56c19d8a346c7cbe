package vector

import (
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
)

// MemoryBudget caps the total bytes held through the LimitAllocators
// that share it, and tracks the peak for reporting. A limit of zero
// means unlimited: the budget only tracks.
//
// A budget is safe for concurrent use and is typically shared by every
// allocator of one workload, regardless of element type.
type MemoryBudget struct {
	limit uint64

	inUse atomic.Uint64
	peak  atomic.Uint64

	// rejections, when set, is incremented the first time this budget
	// rejects a request. One budget usually maps to one unit of work,
	// so repeated rejections of the same work are not re-counted.
	rejections prometheus.Counter
	rejected   atomic.Bool
}

// NewMemoryBudget returns a budget capped at limit bytes. rejections may
// be nil.
func NewMemoryBudget(limit uint64, rejections prometheus.Counter) *MemoryBudget {
	return &MemoryBudget{
		limit:      limit,
		rejections: rejections,
	}
}

// grow reserves n more bytes, or fails without reserving anything.
func (b *MemoryBudget) grow(n uint64) error {
	for {
		current := b.inUse.Load()
		if b.limit > 0 && current+n > b.limit {
			if b.rejections != nil && b.rejected.CompareAndSwap(false, true) {
				b.rejections.Inc()
			}
			return errors.Wrapf(ErrOutOfMemory,
				"budget limit of %s exceeded (%s in use, %s requested)",
				humanize.IBytes(b.limit), humanize.IBytes(current), humanize.IBytes(n))
		}
		if b.inUse.CompareAndSwap(current, current+n) {
			b.raisePeak(current + n)
			return nil
		}
	}
}

// shrink returns n bytes to the budget. Returning more than is in use
// means a block was released twice, which is a bug in the caller, not a
// recoverable condition.
func (b *MemoryBudget) shrink(n uint64) {
	for {
		current := b.inUse.Load()
		if n > current {
			panic("vector: memory budget underflow: a block was released more than once")
		}
		if b.inUse.CompareAndSwap(current, current-n) {
			return
		}
	}
}

func (b *MemoryBudget) raisePeak(candidate uint64) {
	for {
		peak := b.peak.Load()
		if candidate <= peak || b.peak.CompareAndSwap(peak, candidate) {
			return
		}
	}
}

// InUse returns the bytes currently reserved.
func (b *MemoryBudget) InUse() uint64 {
	return b.inUse.Load()
}

// Peak returns the highest number of bytes ever reserved at once.
func (b *MemoryBudget) Peak() uint64 {
	return b.peak.Load()
}

// Limit returns the configured cap in bytes; zero means unlimited.
func (b *MemoryBudget) Limit() uint64 {
	return b.limit
}

// String formats the budget state in human-readable units.
func (b *MemoryBudget) String() string {
	limit := "unlimited"
	if b.limit > 0 {
		limit = humanize.IBytes(b.limit)
	}
	return "in use " + humanize.IBytes(b.InUse()) +
		", peak " + humanize.IBytes(b.Peak()) +
		", limit " + limit
}
