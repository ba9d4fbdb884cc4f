// Package bench benchmarks the comparison driver against synthetic
// snapshots of growing N, the way Raven's internal/agent fan-out
// benchmarks scale a bounded-concurrency errgroup against growing agent
// counts.
package bench

import (
	"context"
	"fmt"
	"testing"

	"github.com/utkarsh5026/vhi/pkg/compare"
	"github.com/utkarsh5026/vhi/pkg/snapshot"
)

// syntheticSnapshots builds n snapshots of a single file whose content
// grows by linesPerStep appended lines per snapshot, so every pair has a real,
// non-trivial diff to compute.
func syntheticSnapshots(n, linesPerStep int) []snapshot.Snapshot {
	snapshots := make([]snapshot.Snapshot, n)
	text := ""
	for i := 0; i < n; i++ {
		for l := 0; l < linesPerStep; l++ {
			text += fmt.Sprintf("line %d-%d\n", i, l)
		}
		snapshots[i] = snapshot.Snapshot{
			Name:  fmt.Sprintf("v%d", i),
			Files: map[string]snapshot.Content{"main.go": {Text: text, IsText: true}},
		}
	}
	return snapshots
}

func benchmarkRun(b *testing.B, n int, parallel bool) {
	snapshots := syntheticSnapshots(n, 20)
	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		if _, err := compare.Run(ctx, snapshots, compare.Options{Parallel: parallel}); err != nil {
			b.Fatalf("compare.Run: %v", err)
		}
	}
}

func BenchmarkRunSequential_N10(b *testing.B)  { benchmarkRun(b, 10, false) }
func BenchmarkRunParallel_N10(b *testing.B)    { benchmarkRun(b, 10, true) }
func BenchmarkRunSequential_N50(b *testing.B)  { benchmarkRun(b, 50, false) }
func BenchmarkRunParallel_N50(b *testing.B)    { benchmarkRun(b, 50, true) }
func BenchmarkRunParallel_N200(b *testing.B)   { benchmarkRun(b, 200, true) }
