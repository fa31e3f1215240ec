// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestSlots(t *testing.T) {
	tests := []struct {
		workers int
		n       int
		want    int
	}{
		{4, 0, 0},
		{4, 1, 1},
		{4, 3, 3},
		{4, 4, 4},
		{4, 100, 4},
		// chunk = ceil(10/4) = 3 -> [0,3) [3,6) [6,9) [9,10)
		{4, 10, 4},
		// chunk = ceil(9/8) = 2 -> only 5 non-empty chunks
		{8, 9, 5},
	}

	for _, tt := range tests {
		pool := New(tt.workers)
		if got := pool.Slots(tt.n); got != tt.want {
			t.Errorf("New(%d).Slots(%d) = %d, want %d", tt.workers, tt.n, got, tt.want)
		}
		pool.Close()
	}
}

func TestParallelForWorker(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	n := 9
	slots := pool.Slots(n)
	owner := make([]int, n)
	seen := make([]atomic.Int32, slots)

	pool.ParallelForWorker(n, func(slot, start, end int) {
		if start >= end {
			t.Errorf("slot %d got empty range [%d, %d)", slot, start, end)
		}
		seen[slot].Add(1)
		for i := start; i < end; i++ {
			owner[i] = slot
		}
	})

	for s := range slots {
		if seen[s].Load() != 1 {
			t.Errorf("slot %d called %d times, want 1", s, seen[s].Load())
		}
	}
	// Slots cover ascending ranges.
	for i := 1; i < n; i++ {
		if owner[i] < owner[i-1] {
			t.Errorf("owner[%d] = %d < owner[%d] = %d", i, owner[i], i-1, owner[i-1])
		}
	}
}

func TestParallelForWorkerPrivateSums(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 1000
	partial := make([]int, pool.Slots(n))

	pool.ParallelForWorker(n, func(slot, start, end int) {
		for i := start; i < end; i++ {
			partial[slot] += i
		}
	})

	total := 0
	for _, p := range partial {
		total += p
	}
	if want := n * (n - 1) / 2; total != want {
		t.Errorf("total = %d, want %d", total, want)
	}
}

func TestParallelForAtomic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForAtomic(n, func(i int) {
		results[i] = i * 2
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForAtomicBatched(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelForAtomicBatched(n, 10, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// Test with n smaller than workers
	n := 3
	var count atomic.Int32

	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestConcurrentCallers(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	const callers = 8
	n := 500
	var wg sync.WaitGroup
	sums := make([]int64, callers)

	for c := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var sum atomic.Int64
			pool.ParallelFor(n, func(start, end int) {
				for i := start; i < end; i++ {
					sum.Add(int64(i))
				}
			})
			sums[c] = sum.Load()
		}()
	}
	wg.Wait()

	want := int64(n * (n - 1) / 2)
	for c, s := range sums {
		if s != want {
			t.Errorf("caller %d sum = %d, want %d", c, s, want)
		}
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	if got := pool.Slots(n); got != 1 {
		t.Errorf("closed pool Slots(%d) = %d, want 1", n, got)
	}

	// Should still work (sequential fallback)
	pool.ParallelForWorker(n, func(slot, start, end int) {
		if slot != 0 {
			t.Errorf("closed pool used slot %d", slot)
		}
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(n, func(start, end int) {
			// Simulate work
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelForAtomic(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelForAtomic(n, func(i int) {
			_ = i * i
		})
	}
}

func BenchmarkParallelForAtomicBatched(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelForAtomicBatched(n, 10, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}
