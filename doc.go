// Package vector implements a generic, resizable, contiguous array with
// explicit element lifetimes and pluggable storage allocation.
//
// # Overview
//
// A Vector keeps its elements in one contiguous allocator-acquired
// block and separates storage management from element lifetime: slots
// below Len() hold live elements, slots up to Cap() are vacant storage.
// This is particularly useful for:
//
//   - Collections of elements that own resources needing paired cleanup
//   - Workloads that recycle element storage through pools
//   - Enforcing memory budgets on unbounded result sets
//   - Deterministic failure handling when copying elements can fail
//
// # Basic Usage
//
//	v := vector.New[int]()
//	defer v.Close() // Return storage to the allocator
//
//	// Grow one element at a time (amortized O(1))
//	if err := v.Append(42); err != nil {
//		return err
//	}
//
//	// Random access
//	first := v.At(0)
//	v.Set(0, first*2)
//
//	// Positional insert and erase (O(n))
//	_ = v.Insert(0, 7)
//	_ = v.Erase(0)
//
// # Storage and Budgets
//
// Storage comes from an Allocator. The default heap allocator defers to
// the Go runtime; BucketedAllocator recycles power-of-two blocks
// through pools, ArenaAllocator bump-allocates blocks that are
// reclaimed wholesale by Reset, and LimitAllocator enforces a
// MemoryBudget shared by any number of vectors:
//
//	budget := vector.NewMemoryBudget(64<<20, rejectionsCounter)
//	alloc := vector.NewLimitAllocator[Row](vector.NewBucketedAllocator[Row](1<<16), budget)
//	v := vector.NewIn[Row](alloc)
//	defer v.Close()
//
// # Element Lifetimes
//
// Plain data needs no setup: the zero Lifecycle copies shallowly and
// never fails. Types that own resources attach hooks through
// NewManaged; the vector then construct/copy/move/destroys elements
// through them and picks copy or move when relocating storage based on
// the declared failure behavior.
//
// # Thread Safety
//
// A Vector is not safe for concurrent use; it belongs to one goroutine
// at a time. Allocators and MemoryBudget are safe to share between
// goroutines and vectors.
//
// # Performance Characteristics
//
//   - Append: O(1) amortized, doubling growth starting at one slot
//   - Insert, Erase: O(n) element moves
//   - At, Set, PopBack, Swap, MoveFrom: O(1)
//   - Reserve, Resize, Clone, CopyFrom: O(n)
//
// # Important Notes
//
//   - Pointers, views and iterators are invalidated by any operation
//     that grows, shrinks or shifts the vector
//   - Close returns storage to the allocator; pooling and limiting
//     allocators rely on it being called exactly once per acquired block
//   - Out-of-range indexes and popping an empty vector panic
//   - Operations that allocate or run fallible lifecycles return errors;
//     on error the vector stays structurally valid
//
// # Metrics and Monitoring
//
// The vector provides snapshots for monitoring memory usage, and
// budgets expose rejection counters for Prometheus scraping:
//
//	stats := v.Stats()
//	fmt.Printf("Utilization: %.2f%%\n", stats.Utilization*100)
//	fmt.Printf("Live: %d bytes\n", stats.LiveBytes)
//	fmt.Printf("Reserved: %d bytes\n", stats.ReservedBytes)
package vector
