// Package msa implements the Chu-Liu/Edmonds algorithm for finding a
// minimum-weight spanning arborescence of a complete directed graph.
//
// Find is a plain minimiser, and its caller (pkg/inference) feeds it the
// divergence matrix unmodified: pkg/divergence's asymmetric penalties
// already make a real ancestor's edge cheaper than the synthetic Empty
// root's (history grows, so the smaller-to-larger edge is the low-cost
// one), so the tree that best explains the corpus is the minimum, not
// the maximum, arborescence of the raw matrix. Keeping the solver a
// plain minimiser with no polarity knowledge of its own is what makes it
// independently testable against the worked matrices the scorer's design
// was validated against.
package msa

import (
	"fmt"

	"github.com/utkarsh5026/vhi/pkg/vhierrors"
)

const noParent = -1

// edge references an original (pre-contraction) vertex pair, carried
// through contraction rounds so the final arborescence can be expanded
// back in terms of the caller's original vertex indices.
type edge struct {
	from, to int
	weight   float32
}

// Find returns a parent vector P of length n (n = len(weights)) for the
// minimum-weight arborescence of weights rooted at root: P[root] = -1,
// and for every other vertex v, P[v] is the vertex its cheapest
// structurally-consistent incoming edge comes from. weights must be an
// n x n matrix with weights[i][j] the cost of edge i -> j; the diagonal
// and the root's incoming column are never consulted.
//
// The graph is assumed complete (every i != j has a defined edge), which
// holds for every weight matrix pkg/compare produces. Find returns
// vhierrors.ErrMSANotTree if the assembled result is not a valid
// single-root tree, which would indicate a bug in the contraction step
// rather than a property of real input.
func Find(weights [][]float32, root int) ([]int, error) {
	n := len(weights)
	if n == 0 {
		return nil, vhierrors.ErrEmptyInput
	}
	if n == 1 {
		return []int{noParent}, nil
	}

	edges := make([]edge, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			edges = append(edges, edge{from: i, to: j, weight: weights[i][j]})
		}
	}

	parent, err := minArborescence(n, root, edges)
	if err != nil {
		return nil, err
	}
	if err := validateTree(parent, root); err != nil {
		return nil, err
	}
	return parent, nil
}

// minArborescence is the recursive core: vertices are always numbered
// 0..n-1 for the current recursion level, and contractAndRecurse maps a
// contracted level's indices back to the level above. It returns a parent
// vector over 0..n-1 for this level.
func minArborescence(n, root int, edges []edge) ([]int, error) {
	minIn := make([]*edge, n)
	for i := range edges {
		e := &edges[i]
		if e.to == root {
			continue
		}
		if minIn[e.to] == nil || e.weight < minIn[e.to].weight {
			minIn[e.to] = e
		}
	}

	for v := 0; v < n; v++ {
		if v != root && minIn[v] == nil {
			return nil, fmt.Errorf("msa: vertex %d has no incoming edge: %w", v, vhierrors.ErrMSANotTree)
		}
	}

	cycle, onCycle := findCycle(n, root, minIn)
	if cycle == nil {
		parent := make([]int, n)
		parent[root] = noParent
		for v := 0; v < n; v++ {
			if v != root {
				parent[v] = minIn[v].from
			}
		}
		return parent, nil
	}

	return contractAndRecurse(n, root, edges, minIn, cycle, onCycle)
}

// findCycle walks the min_in chain from every unvisited vertex looking
// for a repeat. Returns the cycle's member list and a membership set, or
// (nil, nil) if min_in forms a forest (no cycle).
func findCycle(n, root int, minIn []*edge) ([]int, map[int]bool) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make([]int, n)

	for start := 0; start < n; start++ {
		if start == root || state[start] != unvisited {
			continue
		}

		var chain []int
		cur := start
		for cur != root && state[cur] == unvisited {
			state[cur] = visiting
			chain = append(chain, cur)
			cur = minIn[cur].from
		}

		if cur != root && state[cur] == visiting {
			onCycle := map[int]bool{}
			member := cur
			for {
				onCycle[member] = true
				member = minIn[member].from
				if member == cur {
					break
				}
			}
			cycleList := make([]int, 0, len(onCycle))
			for v := range onCycle {
				cycleList = append(cycleList, v)
			}
			return cycleList, onCycle
		}

		for _, v := range chain {
			state[v] = done
		}
	}

	return nil, nil
}

// contractAndRecurse contracts the detected cycle into a single
// supervertex, recurses on the smaller graph, then expands the
// contracted vertex's chosen parent edge back into the original vertex
// space, breaking the cycle at exactly the vertex that edge enters.
func contractAndRecurse(n, root int, edges []edge, minIn []*edge, cycle []int, onCycle map[int]bool) ([]int, error) {
	nonCycleCount := 0
	for v := 0; v < n; v++ {
		if !onCycle[v] {
			nonCycleCount++
		}
	}
	// The supervertex's id must fall inside the reduced graph's own
	// index range [0, reducedN), not the outer n: reducedN is the
	// non-cycle count plus one, so the supervertex is the last index.
	superID := nonCycleCount
	reducedN := nonCycleCount + 1

	id := make([]int, n) // original vertex -> reduced-graph vertex id
	next := 0
	for v := 0; v < n; v++ {
		if onCycle[v] {
			id[v] = superID
		} else {
			id[v] = next
			next++
		}
	}
	reducedRoot := id[root]

	invID := make([]int, next) // non-cycle reduced id -> original vertex
	for v := 0; v < n; v++ {
		if !onCycle[v] {
			invID[id[v]] = v
		}
	}

	// For each reduced edge entering the supervertex, remember which
	// original (from, to) pair achieved its minimal adjusted weight, so
	// expansion can find the one original edge that breaks the cycle.
	type best struct {
		w          float32
		origFrom   int
		origTo     int
		haveWeight bool
	}
	bestIntoSuper := map[int]*best{}    // reduced from-vertex -> best entry
	bestOutOfSuper := map[int]*best{}   // reduced to-vertex -> best exit
	var reducedEdges []edge
	reducedOriginal := map[[2]int][2]int{} // (reducedFrom,reducedTo) -> (origFrom,origTo), for non-cycle edges

	for _, e := range edges {
		fromCycle, toCycle := onCycle[e.from], onCycle[e.to]
		if fromCycle && toCycle {
			continue // internal to the cycle, discarded
		}

		rf, rt := id[e.from], id[e.to]

		switch {
		case toCycle:
			// entry edge: adjust by subtracting the cost of the cycle
			// vertex's own chosen in-cycle edge.
			adjusted := e.weight - minIn[e.to].weight
			b, ok := bestIntoSuper[rf]
			if !ok || adjusted < b.w {
				bestIntoSuper[rf] = &best{w: adjusted, origFrom: e.from, origTo: e.to, haveWeight: true}
			}
		case fromCycle:
			b, ok := bestOutOfSuper[rt]
			if !ok || e.weight < b.w {
				bestOutOfSuper[rt] = &best{w: e.weight, origFrom: e.from, origTo: e.to, haveWeight: true}
			}
		default:
			reducedEdges = append(reducedEdges, edge{from: rf, to: rt, weight: e.weight})
			reducedOriginal[[2]int{rf, rt}] = [2]int{e.from, e.to}
		}
	}

	for rf, b := range bestIntoSuper {
		reducedEdges = append(reducedEdges, edge{from: rf, to: superID, weight: b.w})
		reducedOriginal[[2]int{rf, superID}] = [2]int{b.origFrom, b.origTo}
	}
	for rt, b := range bestOutOfSuper {
		reducedEdges = append(reducedEdges, edge{from: superID, to: rt, weight: b.w})
		reducedOriginal[[2]int{superID, rt}] = [2]int{b.origFrom, b.origTo}
	}

	reducedParent, err := minArborescence(reducedN, reducedRoot, reducedEdges)
	if err != nil {
		return nil, err
	}

	parent := make([]int, n)
	parent[root] = noParent

	// Seed every non-cycle vertex with its min_in edge; the loop below
	// replaces each of these with the parent the recursion chose.
	for v := 0; v < n; v++ {
		if v != root && !onCycle[v] {
			parent[v] = minIn[v].from
		}
	}
	// Every cycle vertex keeps its in-cycle min_in edge, except the one
	// vertex the entering edge breaks into (set below).
	for v := range onCycle {
		parent[v] = minIn[v].from
	}

	// The supervertex's chosen parent in the reduced tree identifies the
	// one original edge that breaks the cycle.
	reducedParentOfSuper := reducedParent[superID]
	orig, ok := reducedOriginal[[2]int{reducedParentOfSuper, superID}]
	if !ok {
		return nil, fmt.Errorf("msa: lost original edge for contracted vertex: %w", vhierrors.ErrMSANotTree)
	}
	parent[orig[1]] = orig[0]

	// Any non-cycle vertex whose reduced parent was the supervertex needs
	// its original edge recovered the same way.
	for v := 0; v < n; v++ {
		if v == root || onCycle[v] {
			continue
		}
		rv := id[v]
		rp := reducedParent[rv]
		if rp == superID {
			orig, ok := reducedOriginal[[2]int{superID, rv}]
			if !ok {
				return nil, fmt.Errorf("msa: lost original edge leaving contracted vertex: %w", vhierrors.ErrMSANotTree)
			}
			parent[orig[1]] = orig[0]
		} else {
			// rp is a non-cycle reduced id, which maps 1:1 back to an
			// original vertex; the recursion's choice is taken as is and
			// need not be minIn[v].from.
			parent[v] = invID[rp]
		}
	}

	return parent, nil
}

// validateTree checks the parent vector describes exactly one root and
// no cycles, which should always hold for minArborescence's output on a
// complete graph; a failure here signals a solver bug, not bad input.
func validateTree(parent []int, root int) error {
	n := len(parent)
	for v := 0; v < n; v++ {
		if v == root {
			if parent[v] != noParent {
				return fmt.Errorf("msa: root %d has a parent: %w", root, vhierrors.ErrMSANotTree)
			}
			continue
		}
		if parent[v] == noParent {
			return fmt.Errorf("msa: vertex %d has no parent: %w", v, vhierrors.ErrMSANotTree)
		}
		seen := map[int]bool{v: true}
		cur := parent[v]
		for cur != root {
			if cur == noParent {
				return fmt.Errorf("msa: chain from %d never reaches root: %w", v, vhierrors.ErrMSANotTree)
			}
			if seen[cur] {
				return fmt.Errorf("msa: cycle detected through vertex %d: %w", cur, vhierrors.ErrMSANotTree)
			}
			seen[cur] = true
			cur = parent[cur]
		}
	}
	return nil
}
