package vector

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// LiveBytes returns the bytes occupied by live elements.
func (v *Vector[T]) LiveBytes() uint64 {
	return uint64(v.size) * uint64(sizeOf[T]())
}

// ReservedBytes returns the bytes of acquired storage, live and vacant
// slots together.
func (v *Vector[T]) ReservedBytes() uint64 {
	return uint64(v.data.slots) * uint64(sizeOf[T]())
}

// Utilization returns the ratio of live to acquired slots (0.0 to 1.0).
// Returns 0.0 if no storage is acquired.
func (v *Vector[T]) Utilization() float64 {
	if v.data.slots == 0 {
		return 0
	}
	return float64(v.size) / float64(v.data.slots)
}

// Stats returns a snapshot of vector statistics.
func (v *Vector[T]) Stats() Stats {
	return Stats{
		Len:           v.size,
		Cap:           v.data.slots,
		ElementSize:   int(sizeOf[T]()),
		LiveBytes:     v.LiveBytes(),
		ReservedBytes: v.ReservedBytes(),
		Utilization:   v.Utilization(),
	}
}

// Stats contains statistical information about a vector.
type Stats struct {
	Len           int     // Live elements
	Cap           int     // Acquired slots
	ElementSize   int     // Bytes per element slot
	LiveBytes     uint64  // Bytes occupied by live elements
	ReservedBytes uint64  // Bytes of acquired storage
	Utilization   float64 // Ratio of live to acquired slots (0.0-1.0)
}

// String renders the snapshot in human-readable units.
func (s Stats) String() string {
	return fmt.Sprintf("%d/%d elements, %s of %s (%.0f%% utilized)",
		s.Len, s.Cap,
		humanize.IBytes(s.LiveBytes), humanize.IBytes(s.ReservedBytes),
		s.Utilization*100)
}
