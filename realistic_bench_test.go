package vector

import (
	"testing"
)

var benchSink int64

// BenchmarkRealisticUsage tests scenarios the vector is built for
func BenchmarkRealisticUsage(b *testing.B) {

	// Test 1: append-heavy growth from empty
	b.Run("AppendGrowth/Vector", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			v := New[int64]()
			for j := 0; j < 1000; j++ {
				_ = v.Append(int64(j))
			}
			v.Close()
		}
	})

	b.Run("AppendGrowth/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var s []int64
			for j := 0; j < 1000; j++ {
				s = append(s, int64(j))
			}
			benchSink = s[len(s)-1]
		}
	})

	// Test 2: storage recycling through the bucketed allocator
	b.Run("PooledReuse/Vector", func(b *testing.B) {
		alloc := NewBucketedAllocator[int64](1 << 12)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			v := NewIn[int64](alloc)
			for j := 0; j < 512; j++ {
				_ = v.Append(int64(j))
			}
			v.Close() // Blocks go back to the pools
		}
	})

	b.Run("PooledReuse/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			s := make([]int64, 0, 512)
			for j := 0; j < 512; j++ {
				s = append(s, int64(j))
			}
			benchSink = s[len(s)-1]
		}
	})

	// Test 3: pre-sized fill
	b.Run("PresizedFill/Vector", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			v := New[int64]()
			_ = v.Reserve(1000)
			for j := 0; j < 1000; j++ {
				_ = v.Append(int64(j))
			}
			v.Close()
		}
	})

	b.Run("PresizedFill/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			s := make([]int64, 0, 1000)
			for j := 0; j < 1000; j++ {
				s = append(s, int64(j))
			}
			benchSink = s[len(s)-1]
		}
	})

	// Test 4: front insertion worst case
	b.Run("FrontInsert/Vector", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			v := New[int64]()
			for j := 0; j < 256; j++ {
				_ = v.Insert(0, int64(j))
			}
			v.Close()
		}
	})

	b.Run("FrontInsert/Builtin", func(b *testing.B) {
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var s []int64
			for j := 0; j < 256; j++ {
				s = append(s, 0)
				copy(s[1:], s)
				s[0] = int64(j)
			}
			benchSink = s[0]
		}
	})

	// Test 5: sequential scans
	v := New[int64]()
	for j := 0; j < 4096; j++ {
		_ = v.Append(int64(j))
	}
	defer v.Close()

	b.Run("Scan/VectorAt", func(b *testing.B) {
		b.ResetTimer()
		var sum int64
		for i := 0; i < b.N; i++ {
			for j := 0; j < v.Len(); j++ {
				sum += v.At(j)
			}
		}
		benchSink = sum
	})

	b.Run("Scan/VectorUnsafeSlice", func(b *testing.B) {
		b.ResetTimer()
		var sum int64
		for i := 0; i < b.N; i++ {
			for _, e := range v.UnsafeSlice() {
				sum += e
			}
		}
		benchSink = sum
	})

	b.Run("Scan/Builtin", func(b *testing.B) {
		s := make([]int64, 4096)
		for j := range s {
			s[j] = int64(j)
		}
		b.ResetTimer()
		var sum int64
		for i := 0; i < b.N; i++ {
			for _, e := range s {
				sum += e
			}
		}
		benchSink = sum
	})
}
