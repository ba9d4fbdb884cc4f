// Package inference is the top-level orchestration: it wires pkg/compare,
// pkg/msa, and pkg/forest together into the single Infer call that takes
// a set of version snapshots to a labelled descent tree.
package inference

import (
	"context"
	"fmt"

	"github.com/utkarsh5026/vhi/pkg/compare"
	"github.com/utkarsh5026/vhi/pkg/forest"
	"github.com/utkarsh5026/vhi/pkg/msa"
	"github.com/utkarsh5026/vhi/pkg/snapshot"
	"github.com/utkarsh5026/vhi/pkg/tree"
	"github.com/utkarsh5026/vhi/pkg/vhierrors"
	"github.com/utkarsh5026/vhi/pkg/vhilog"
)

var logger = vhilog.With("component", "inference")

// Options configures one inference run.
type Options struct {
	// Parallel selects pkg/compare's parallel driver.
	Parallel bool
	// Progress, if non-nil, is forwarded to pkg/compare's Options.Progress.
	Progress func(done, total int)
}

// Result is everything one inference run produces: the assembled tree
// plus the comparison matrix it was built from, which callers may want to
// persist or inspect independently (e.g. for a --stat report).
type Result struct {
	Tree   *tree.Node[forest.DiffInfo]
	Matrix *compare.Matrix
}

// Infer takes the set of real (non-Empty) snapshots a caller discovered
// and returns the inferred descent tree rooted at the synthetic Empty
// snapshot. snapshots must not itself contain one named "Empty" and must
// not contain duplicate names.
func Infer(ctx context.Context, snapshots []snapshot.Snapshot, opts Options) (*Result, error) {
	if err := checkNames(snapshots); err != nil {
		return nil, err
	}

	all := make([]snapshot.Snapshot, 0, len(snapshots)+1)
	all = append(all, snapshot.Empty())
	all = append(all, snapshots...)

	logger.Info("starting inference", "snapshots", len(all))

	m, err := compare.Run(ctx, all, compare.Options{Parallel: opts.Parallel, Progress: opts.Progress})
	if err != nil {
		return nil, fmt.Errorf("inference: compare: %w", err)
	}

	// pkg/msa.Find is a plain minimiser of its raw input, and the
	// asymmetric penalties in pkg/divergence already make every real
	// ancestor's edge cheaper than Empty's (history grows, so the
	// smaller-to-larger edge is the low-cost one): the divergence matrix
	// is fed to Find directly, un-negated, so the solver picks the
	// cheapest explaining parent for each vertex (see pkg/msa's package
	// doc and its own tests, which assert this same minimising contract
	// against spec.md's worked matrices).
	parent, err := msa.Find(m.D, 0)
	if err != nil {
		return nil, fmt.Errorf("inference: msa: %w", err)
	}

	root, err := forest.Build(all, parent, m)
	if err != nil {
		return nil, fmt.Errorf("inference: forest: %w", err)
	}

	logger.Info("inference complete", "snapshots", len(all), "nodes", tree.Count(root))

	return &Result{Tree: root, Matrix: m}, nil
}

func checkNames(snapshots []snapshot.Snapshot) error {
	seen := make(map[string]bool, len(snapshots)+1)
	seen[snapshot.EmptyName] = true
	for _, s := range snapshots {
		if seen[s.Name] {
			return fmt.Errorf("inference: %q: %w", s.Name, vhierrors.ErrDuplicateName)
		}
		seen[s.Name] = true
	}
	return nil
}

