// Package divergence collapses a snapshot diff into two directed edge
// weights: a forward score (old -> new) and a backward score (new -> old).
// Deletion is penalised more heavily than addition so the MSA solver prefers
// edges from smaller to larger snapshots, since history usually grows.
package divergence

import (
	"github.com/utkarsh5026/vhi/pkg/snapdiff"
	"github.com/utkarsh5026/vhi/pkg/textdiff"
)

// Per-occurrence penalties. See the component design: line counts are
// capped at LineCap per file before multiplication, so one churny file
// can't dominate the distance.
const (
	PAddFile float32 = 2.0
	PDelFile float32 = 4.0
	PModFile float32 = 1.0
	PAddLine float32 = 0.02
	PDelLine float32 = 0.05

	LineCap = 50
)

// Result is one direction's summary: counts of added/deleted/modified
// files and the scalar divergence score.
type Result struct {
	Added      int
	Deleted    int
	Modified   int
	Divergence float32
}

func countTag(changes []textdiff.TextChange, tag textdiff.ChangeTag) int {
	n := 0
	for _, c := range changes {
		if c.Tag == tag {
			n++
		}
	}
	return n
}

func cap50(n int) float32 {
	if n > LineCap {
		n = LineCap
	}
	return float32(n)
}

// lineContribution returns the (forward, backward) line-penalty for one
// file's changes: inserted lines cost PAddLine forward / PDelLine backward,
// deleted lines the reverse, each independently capped at LineCap before
// multiplication.
func lineContribution(changes []textdiff.TextChange) (forward, backward float32) {
	inserts := cap50(countTag(changes, textdiff.Insert))
	deletes := cap50(countTag(changes, textdiff.Delete))

	forward = inserts*PAddLine + deletes*PDelLine
	backward = inserts*PDelLine + deletes*PAddLine
	return forward, backward
}

// Calculate computes the forward and backward divergence for one snapshot
// diff in a single pass. Backward's added equals forward's deleted and vice
// versa; modified is identical in both; divergence is independently
// accumulated with the swapped penalties.
func Calculate(d snapdiff.Diff) (forward, backward Result) {
	var fwdScore, bwdScore float32

	for _, fc := range d.Added {
		fwdScore += PAddFile
		bwdScore += PDelFile
		lf, lb := lineContribution(fc.Changes)
		fwdScore += lf
		bwdScore += lb
	}

	for _, fc := range d.Deleted {
		fwdScore += PDelFile
		bwdScore += PAddFile
		lf, lb := lineContribution(fc.Changes)
		fwdScore += lf
		bwdScore += lb
	}

	for _, fc := range d.Modified {
		fwdScore += PModFile
		bwdScore += PModFile
		lf, lb := lineContribution(fc.Changes)
		fwdScore += lf
		bwdScore += lb
	}

	added, deleted, modified := len(d.Added), len(d.Deleted), len(d.Modified)

	forward = Result{
		Added:      added,
		Deleted:    deleted,
		Modified:   modified,
		Divergence: fwdScore,
	}
	backward = Result{
		Added:      deleted,
		Deleted:    added,
		Modified:   modified,
		Divergence: bwdScore,
	}

	return forward, backward
}
