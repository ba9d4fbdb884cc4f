// Package compare is the O(N^2) comparison driver: it enumerates every
// unordered pair of snapshots, diffs and scores each pair once, and
// populates the two directed weight cells the pair produces.
package compare

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/vhi/pkg/divergence"
	"github.com/utkarsh5026/vhi/pkg/snapdiff"
	"github.com/utkarsh5026/vhi/pkg/snapshot"
	"github.com/utkarsh5026/vhi/pkg/vhilog"
)

var logger = vhilog.With("component", "compare")

// Matrix holds the populated N x N divergence weights plus the richer
// per-pair results the forest assembler needs to label edges.
type Matrix struct {
	N   int
	D   [][]float32
	Res [][]divergence.Result // Res[i][j] is the forward result of diffing i into j
}

func newMatrix(n int) *Matrix {
	d := make([][]float32, n)
	res := make([][]divergence.Result, n)
	for i := range d {
		d[i] = make([]float32, n)
		res[i] = make([]divergence.Result, n)
	}
	return &Matrix{N: n, D: d, Res: res}
}

// Options configures a comparison run.
type Options struct {
	// Parallel selects the parallel comparison driver. Defaults to true
	// when Options is the zero value is NOT assumed by Run; callers pass
	// an explicit Options{Parallel: true} to opt in.
	Parallel bool

	// Progress, if non-nil, is invoked once per completed pair with the
	// number of pairs done so far and the total pair count. When Parallel
	// is true the calls come from worker goroutines but are serialized
	// under a mutex, so they never overlap.
	Progress func(done, total int)
}

type pairResult struct {
	i, j              int
	forward, backward divergence.Result
}

// Run populates and returns the weight matrix for the given snapshots.
// snapshots[0] must be the synthetic Empty root; every other index is
// compared against every other exactly once. N=1 (only Empty) is
// degenerate and returns a 1x1 zero matrix with no pairs evaluated.
func Run(ctx context.Context, snapshots []snapshot.Snapshot, opts Options) (*Matrix, error) {
	n := len(snapshots)
	m := newMatrix(n)
	if n <= 1 {
		return m, nil
	}

	pairs := make([][2]int, 0, n*(n-1)/2)
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	logger.Info("starting comparison", "snapshots", n, "pairs", len(pairs), "parallel", opts.Parallel)

	computePair := func(i, j int) pairResult {
		d := snapdiff.Diff(snapshots[i], snapshots[j])
		forward, backward := divergence.Calculate(d)
		return pairResult{i: i, j: j, forward: forward, backward: backward}
	}

	var results []pairResult
	var done int64

	if !opts.Parallel {
		results = make([]pairResult, 0, len(pairs))
		for _, p := range pairs {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			results = append(results, computePair(p[0], p[1]))
			done++
			if opts.Progress != nil {
				opts.Progress(int(done), len(pairs))
			}
		}
	} else {
		results = make([]pairResult, len(pairs))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))

		var mu sync.Mutex
		var progressDone int64

		for idx, p := range pairs {
			idx, p := idx, p
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[idx] = computePair(p[0], p[1])

				if opts.Progress != nil {
					mu.Lock()
					progressDone++
					opts.Progress(int(progressDone), len(pairs))
					mu.Unlock()
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("compare: pair workers: %w", err)
		}
	}

	// Serially install every result into the matrix: disjoint cells, so no
	// locking is needed, but a single owner keeps the write pattern simple
	// and auditable.
	for _, r := range results {
		m.D[r.i][r.j] = r.forward.Divergence
		m.D[r.j][r.i] = r.backward.Divergence
		m.Res[r.i][r.j] = r.forward
		m.Res[r.j][r.i] = r.backward
	}

	logger.Info("comparison complete", "snapshots", n, "pairs", len(pairs))
	return m, nil
}
