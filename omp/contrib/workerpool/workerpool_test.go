// Copyright 2025 openmp-talk Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/reissmann/openmp-talk/omp/contrib/schedule"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
	if pool.TeamSize() != 4 {
		t.Errorf("TeamSize() = %d, want 4", pool.TeamSize())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallel(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var seen [4]atomic.Int32
	pool.Parallel(func(w Worker) {
		if w.NumWorkers != 4 {
			t.Errorf("NumWorkers = %d, want 4", w.NumWorkers)
		}
		seen[w.ID].Add(1)
	})

	for id := range seen {
		if got := seen[id].Load(); got != 1 {
			t.Errorf("worker %d ran %d times, want 1", id, got)
		}
	}
}

func TestParallelBarrier(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	// Every worker must see all phase-1 writes after the barrier.
	var phase1 atomic.Int32
	var failures atomic.Int32
	pool.Parallel(func(w Worker) {
		phase1.Add(1)
		w.Barrier()
		if phase1.Load() != int32(w.NumWorkers) {
			failures.Add(1)
		}
	})

	if failures.Load() != 0 {
		t.Errorf("%d workers passed the barrier early", failures.Load())
	}
}

func TestParallelRegionsReuse(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	for range 20 {
		var count atomic.Int32
		pool.Parallel(func(w Worker) {
			w.Barrier()
			count.Add(1)
			w.Barrier()
		})
		if count.Load() != 3 {
			t.Fatalf("count = %d, want 3", count.Load())
		}
	}
}

func TestConcurrentRegions(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	var wg sync.WaitGroup
	var total atomic.Int32
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Parallel(func(w Worker) {
				w.Barrier()
				total.Add(1)
			})
		}()
	}
	wg.Wait()

	if total.Load() != 8 {
		t.Errorf("total = %d, want 8", total.Load())
	}
}

func TestSections(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var a, b []int
	var workers [2]int
	pool.Sections(
		func(worker int) {
			workers[0] = worker
			a = []int{1, 2, 3}
		},
		func(worker int) {
			workers[1] = worker
			b = []int{4, 5, 6}
		},
	)

	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("sections did not complete before return: a=%v b=%v", a, b)
	}
	if workers != [2]int{0, 1} {
		t.Errorf("section workers = %v, want [0 1]", workers)
	}
}

func TestSectionsSingleWorker(t *testing.T) {
	pool := New(1)
	defer pool.Close()

	var order []int
	pool.Sections(
		func(worker int) { order = append(order, 0+worker) },
		func(worker int) { order = append(order, 1+worker) },
	)

	if len(order) != 2 || order[0] != 0 || order[1] != 1 {
		t.Errorf("order = %v, want [0 1]", order)
	}
}

func TestParallelForSchedule(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, s := range []schedule.Schedule{
		schedule.Default(),
		{Kind: schedule.Static},
		{Kind: schedule.Dynamic, Chunk: 3},
		{Kind: schedule.Guided},
	} {
		t.Run(s.String(), func(t *testing.T) {
			n := 100
			results := make([]int, n)

			pool.ParallelForSchedule(s, n, func(worker, start, end int) {
				for i := start; i < end; i++ {
					results[i] += i * 2
				}
			})

			for i := 0; i < n; i++ {
				if results[i] != i*2 {
					t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
				}
			}
		})
	}
}

func TestParallelForScheduleStaticOwnership(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	n := 32
	owners := make([]int, n)
	pool.ParallelForSchedule(schedule.Default(), n, func(worker, start, end int) {
		for i := start; i < end; i++ {
			owners[i] = worker
		}
	})

	for i, w := range owners {
		if want := schedule.Owner(i, schedule.DefaultChunk, 3); w != want {
			t.Errorf("row %d ran on worker %d, want %d", i, w, want)
		}
	}
}

func TestParallelForScheduleZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelForSchedule(schedule.Default(), 0, func(worker, start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelForSchedule with n=0 should not call fn")
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

	if pool.TeamSize() != 1 {
		t.Errorf("TeamSize() after Close = %d, want 1", pool.TeamSize())
	}

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelForSchedule(schedule.Default(), n, func(worker, start, end int) {
		if worker != 0 {
			t.Errorf("closed pool ran work on worker %d", worker)
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

func TestCloseAfterConstructs(t *testing.T) {
	pool := New(3)

	var count atomic.Int32
	pool.Parallel(func(w Worker) { count.Add(1) })
	pool.Close()

	pool.Parallel(func(w Worker) {
		if w.ID != 0 || w.NumWorkers != 1 {
			t.Errorf("closed pool region ran as worker %d of %d", w.ID, w.NumWorkers)
		}
		w.Barrier()
		count.Add(1)
	})

	var order []int
	pool.Sections(
		func(worker int) { order = append(order, worker) },
		func(worker int) { order = append(order, worker+1) },
	)

	if count.Load() != 4 {
		t.Errorf("count = %d, want 4", count.Load())
	}
	if len(order) != 2 || order[0] != 0 || order[1] != 1 {
		t.Errorf("closed pool sections order = %v, want [0 1]", order)
	}
}

func TestBarrierCyclic(t *testing.T) {
	const parties = 5
	const rounds = 10
	b := NewBarrier(parties)
	if b.Parties() != parties {
		t.Fatalf("Parties() = %d, want %d", b.Parties(), parties)
	}

	var counter atomic.Int32
	var wg sync.WaitGroup
	var bad atomic.Int32
	for range parties {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rounds {
				counter.Add(1)
				b.Wait()
				if got := counter.Load(); got < int32((r+1)*parties) {
					bad.Add(1)
				}
				b.Wait()
			}
		}()
	}
	wg.Wait()

	if bad.Load() != 0 {
		t.Errorf("%d waits released before all parties arrived", bad.Load())
	}
}

func TestNewBarrierPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewBarrier(0) should panic")
		}
	}()
	NewBarrier(0)
}

func BenchmarkParallelForSchedule(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelForSchedule(schedule.Default(), n, func(worker, start, end int) {
			// Simulate work
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelBarrier(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Parallel(func(w Worker) {
			w.Barrier()
		})
	}
}
