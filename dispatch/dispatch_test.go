package dispatch

import (
	"context"
	"testing"

	"github.com/bcdannyboy/mcengine/rng"
)

// TestRunDeterministicForFixedThreadCount exercises property 1: two runs
// with identical (seed, path count, thread count) are bit-identical.
// Thread count is part of that identity -- each thread draws from its own
// master.JumpN(i) substream over its partition, so *changing* the thread
// count changes which substream produces which path's draw and is
// expected to change the result (no cross-thread-count invariance claim).
func TestRunDeterministicForFixedThreadCount(t *testing.T) {
	const paths = 4000
	fn := func(stream *rng.State) float64 {
		return stream.NextNormal()
	}

	for _, threads := range []int{1, 4, 8} {
		first, err := Run(context.Background(), rng.Seed(42), paths, threads, fn)
		if err != nil {
			t.Fatalf("threads=%d: %v", threads, err)
		}
		second, err := Run(context.Background(), rng.Seed(42), paths, threads, fn)
		if err != nil {
			t.Fatalf("threads=%d (rerun): %v", threads, err)
		}
		if first.Count != paths || second.Count != paths {
			t.Fatalf("threads=%d: path counts %d %d, want %d", threads, first.Count, second.Count, paths)
		}
		if first.Sum != second.Sum || first.SumSq != second.SumSq {
			t.Errorf("threads=%d: repeated run diverged: %+v vs %+v", threads, first, second)
		}
	}
}

// TestRunDiffersAcrossThreadCounts documents that changing only the
// thread count is expected to change the result, since it changes the
// per-path substream assignment.
func TestRunDiffersAcrossThreadCounts(t *testing.T) {
	const paths = 4000
	fn := func(stream *rng.State) float64 {
		return stream.NextNormal()
	}

	one, err := Run(context.Background(), rng.Seed(42), paths, 1, fn)
	if err != nil {
		t.Fatalf("threads=1: %v", err)
	}
	four, err := Run(context.Background(), rng.Seed(42), paths, 4, fn)
	if err != nil {
		t.Fatalf("threads=4: %v", err)
	}
	if one.Sum == four.Sum {
		t.Errorf("expected different sums across thread counts (different substream partitioning), got equal sums %v", one.Sum)
	}
}

func TestRunRejectsNonPositivePaths(t *testing.T) {
	master := rng.Seed(1)
	_, err := Run(context.Background(), master, 0, 4, func(s *rng.State) float64 { return 0 })
	if err == nil {
		t.Fatal("expected error for n=0")
	}
}

func TestBoundsPartitionIsExhaustiveAndDisjoint(t *testing.T) {
	const n = 97
	const threads = 8
	covered := make([]bool, n)
	for i := 0; i < threads; i++ {
		start, end := bounds(i, threads, n)
		for p := start; p < end; p++ {
			if covered[p] {
				t.Fatalf("path %d covered by more than one thread", p)
			}
			covered[p] = true
		}
	}
	for p, ok := range covered {
		if !ok {
			t.Errorf("path %d not covered by any thread", p)
		}
	}
}

func TestPartialMeanAndVariance(t *testing.T) {
	p := Partial{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		p.Count++
		p.Sum += v
		p.SumSq += v * v
	}
	if got := p.Mean(); got != 3 {
		t.Errorf("Mean() = %v, want 3", got)
	}
	if got := p.Variance(); got != 2 {
		t.Errorf("Variance() = %v, want 2", got)
	}
}
