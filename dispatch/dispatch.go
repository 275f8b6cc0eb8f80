// Package dispatch implements the fixed-count goroutine fan-out that
// drives every parallel pricing routine: work is partitioned into
// contiguous path ranges, one goroutine per thread, each seeded with a
// deterministically jumped RNG substream, and partial results are
// reduced in thread-id order so that the final estimate depends only on
// (seed, thread count, path count) -- never on scheduling order.
package dispatch

import (
	"context"
	"math"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/sync/errgroup"

	"github.com/bcdannyboy/mcengine/mcerrors"
	"github.com/bcdannyboy/mcengine/rng"
)

// Partial is one worker's contribution: the count of paths it processed
// and the accumulated sum of its per-path values, ready for a weighted
// merge across threads.
type Partial struct {
	Count int
	Sum   float64
	SumSq float64
}

// PathFunc simulates a single path using the given RNG stream and
// returns its payoff/estimator value.
type PathFunc func(stream *rng.State) float64

// DefaultThreads returns a thread-count heuristic based on the number of
// logical cores gopsutil reports, falling back to runtime.NumCPU if the
// platform query fails. It never returns less than 1.
func DefaultThreads() int {
	counts, err := cpu.Counts(true)
	if err != nil || counts <= 0 {
		counts = runtime.NumCPU()
	}
	if counts < 1 {
		counts = 1
	}
	return counts
}

// bounds returns the [start, end) path range owned by thread i out of
// threads total, over a total path count of n, via the standard
// floor-division partition floor(i*n/threads)..floor((i+1)*n/threads).
func bounds(i, threads, n int) (start, end int) {
	start = i * n / threads
	end = (i + 1) * n / threads
	return
}

// Run partitions n paths across threads goroutines, draws each path
// from a substream of master jumped by the thread index, and reduces
// the per-thread partials in thread-id order. It returns
// mcerrors.ErrThreading if any worker goroutine fails to complete; the
// pool of Go's own runtime otherwise cannot fail a plain compute
// goroutine, but a worker checks for a cancelled ctx before starting its
// path loop, and errgroup's Wait() surfaces that the same way. There is
// no cooperative cancellation check inside the per-path loop itself.
func Run(ctx context.Context, master rng.State, n, threads int, fn PathFunc) (Partial, error) {
	return RunWithProgress(ctx, master, n, threads, fn, nil)
}

// RunWithProgress behaves like Run but invokes onWorkerDone(i) each time
// thread i finishes its work unit, for callers driving a progress bar
// (see cmd/mcprice). onWorkerDone may be nil.
func RunWithProgress(ctx context.Context, master rng.State, n, threads int, fn PathFunc, onWorkerDone func(thread int)) (Partial, error) {
	if n <= 0 {
		return Partial{}, mcerrors.ErrInvalidArgument
	}
	if threads < 1 {
		threads = 1
	}
	if threads > n {
		threads = n
	}

	partials := make([]Partial, threads)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		i := i
		g.Go(func() error {
			start, end := bounds(i, threads, n)
			stream := master.JumpN(i)

			if err := gctx.Err(); err != nil {
				return err
			}

			var p Partial
			for path := start; path < end; path++ {
				v := fn(&stream)
				p.Count++
				p.Sum += v
				p.SumSq += v * v
			}
			partials[i] = p
			if onWorkerDone != nil {
				onWorkerDone(i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Partial{}, mcerrors.ErrThreading
	}

	var total Partial
	for i := 0; i < threads; i++ {
		total.Count += partials[i].Count
		total.Sum += partials[i].Sum
		total.SumSq += partials[i].SumSq
	}
	return total, nil
}

// Mean returns the sample mean of a Partial's accumulated paths, or 0
// if it accumulated none.
func (p Partial) Mean() float64 {
	if p.Count == 0 {
		return 0
	}
	return p.Sum / float64(p.Count)
}

// Variance returns the population variance of a Partial's accumulated
// paths, or 0 if it accumulated fewer than 2.
func (p Partial) Variance() float64 {
	if p.Count < 2 {
		return 0
	}
	n := float64(p.Count)
	mean := p.Mean()
	return p.SumSq/n - mean*mean
}

// StdError returns the standard error of the mean, sqrt(Var/N).
func (p Partial) StdError() float64 {
	v := p.Variance()
	if v <= 0 || p.Count == 0 {
		return 0
	}
	return math.Sqrt(v / float64(p.Count))
}
