// Package forest turns a parent vector and its comparison matrix into the
// labelled tree the rest of the system renders, persists, or replays into
// a git history.
package forest

import (
	"fmt"
	"sort"

	"github.com/utkarsh5026/vhi/pkg/compare"
	"github.com/utkarsh5026/vhi/pkg/snapshot"
	"github.com/utkarsh5026/vhi/pkg/tree"
	"github.com/utkarsh5026/vhi/pkg/vhierrors"
)

const noParent = -1

// DiffInfo labels one node of the inferred tree: its snapshot name and the
// edge-level counts/score that justified its attachment to its parent. The
// root (the Empty snapshot) carries zero counts, since it has no parent.
type DiffInfo struct {
	Name       string
	Added      int
	Deleted    int
	Modified   int
	Divergence float32
}

// Build assembles a *tree.Node[DiffInfo] from a parent vector (as returned
// by pkg/msa, indexed in parallel with snapshots) and the comparison
// matrix that produced it. Children are ordered by name for a
// deterministic, reproducible tree.
func Build(snapshots []snapshot.Snapshot, parent []int, m *compare.Matrix) (*tree.Node[DiffInfo], error) {
	n := len(snapshots)
	if n == 0 {
		return nil, vhierrors.ErrEmptyInput
	}
	if len(parent) != n {
		return nil, fmt.Errorf("forest: parent vector length %d does not match %d snapshots: %w", len(parent), n, vhierrors.ErrForestAssembly)
	}

	root := -1
	children := make([][]int, n)
	for i, p := range parent {
		if p == noParent {
			if root != -1 {
				return nil, fmt.Errorf("forest: more than one root (%d and %d): %w", root, i, vhierrors.ErrForestAssembly)
			}
			root = i
			continue
		}
		if p < 0 || p >= n {
			return nil, fmt.Errorf("forest: snapshot %d has out-of-range parent %d: %w", i, p, vhierrors.ErrForestAssembly)
		}
		children[p] = append(children[p], i)
	}
	if root == -1 {
		return nil, fmt.Errorf("forest: no root found in parent vector: %w", vhierrors.ErrForestAssembly)
	}

	for i := range children {
		sort.Slice(children[i], func(a, b int) bool {
			return snapshots[children[i][a]].Name < snapshots[children[i][b]].Name
		})
	}

	visited := make([]bool, n)
	built, err := buildNode(root, snapshots, children, m, visited)
	if err != nil {
		return nil, err
	}

	for i, v := range visited {
		if !v {
			return nil, fmt.Errorf("forest: snapshot %q unreachable from root: %w", snapshots[i].Name, vhierrors.ErrForestAssembly)
		}
	}

	return built, nil
}

func buildNode(idx int, snapshots []snapshot.Snapshot, children [][]int, m *compare.Matrix, visited []bool) (*tree.Node[DiffInfo], error) {
	if visited[idx] {
		return nil, fmt.Errorf("forest: snapshot %q reached twice (cycle in parent vector): %w", snapshots[idx].Name, vhierrors.ErrForestAssembly)
	}
	visited[idx] = true

	node := &tree.Node[DiffInfo]{
		Value:    DiffInfo{Name: snapshots[idx].Name},
		Children: make([]*tree.Node[DiffInfo], 0, len(children[idx])),
	}

	for _, c := range children[idx] {
		res := m.Res[idx][c]
		child, err := buildNode(c, snapshots, children, m, visited)
		if err != nil {
			return nil, err
		}
		child.Value.Added = res.Added
		child.Value.Deleted = res.Deleted
		child.Value.Modified = res.Modified
		child.Value.Divergence = res.Divergence
		node.Children = append(node.Children, child)
	}

	return node, nil
}
