package revgraph

import (
	"fmt"
	"slices"
)

// Range is the include/exclude pair handed to the log renderer. The
// rendered commit set is everything reachable from Include minus everything
// reachable from Exclude. Both lists are deterministically ordered: Include
// keeps candidate input order, Exclude is newest-first with ID as the final
// tie-break.
type Range struct {
	Include []CommitID
	Exclude []CommitID
}

// Solve computes the minimal Range that renders every candidate plus the
// history connecting them.
//
// Candidates are deduplicated up front; a duplicate contributes nothing.
// Every candidate must be present in g, otherwise Solve fails with
// ErrUnknownCandidate (wrapped with the offending ID). An empty candidate
// list yields ErrNoCandidates.
//
// The walk visits each commit at most once per candidate, so the total work
// is bounded by candidates x reachable commits even on heavily merged
// histories.
func Solve(g *Graph, candidates []CommitID) (Range, error) {
	cands := dedupe(candidates)
	if len(cands) == 0 {
		return Range{}, ErrNoCandidates
	}
	for _, c := range cands {
		if !g.Contains(c) {
			return Range{}, fmt.Errorf("%w: %s", ErrUnknownCandidate, c)
		}
	}

	// Per-candidate ancestor depths. depths[i][x] is the minimum number of
	// parent edges from candidate i to commit x; presence in the map means
	// x is reachable from candidate i.
	depths := make([]map[CommitID]int, len(cands))
	for i, c := range cands {
		depths[i] = ancestorDepths(g, c)
	}

	boundary := boundarySet(g, cands, depths)
	covers := descendants(g, cands)

	exclude := exclusions(g, boundary, covers)
	exclude = append(exclude, stragglers(g, depths, boundary, covers)...)
	sortNewestFirst(g, exclude)

	return Range{Include: cands, Exclude: exclude}, nil
}

// dedupe removes repeated IDs preserving first-occurrence order. Two refs
// pointing at the same commit count as one candidate.
func dedupe(ids []CommitID) []CommitID {
	seen := make(map[CommitID]struct{}, len(ids))
	out := make([]CommitID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ancestorDepths walks parent edges breadth-first from start and returns
// the minimum edge distance to every reachable commit, start included at
// depth zero. Revisited commits are skipped, which bounds the walk.
func ancestorDepths(g *Graph, start CommitID) map[CommitID]int {
	depths := map[CommitID]int{start: 0}
	queue := []CommitID{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, p := range g.Parents(curr) {
			if _, ok := depths[p]; ok {
				continue
			}
			depths[p] = depths[curr] + 1
			queue = append(queue, p)
		}
	}
	return depths
}

// boundarySet returns the union of pairwise merge-bases across all
// candidates. A pair with no common ancestor contributes nothing, which is
// what makes disjoint histories render in full.
func boundarySet(g *Graph, cands []CommitID, depths []map[CommitID]int) map[CommitID]struct{} {
	boundary := make(map[CommitID]struct{})
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			if base, ok := mergeBase(g, depths[i], depths[j]); ok {
				boundary[base] = struct{}{}
			}
		}
	}
	return boundary
}

// mergeBase picks the nearest common ancestor of two candidates given their
// depth maps: lowest combined depth first, then latest committer time, then
// smallest ID so the result is deterministic.
func mergeBase(g *Graph, a, b map[CommitID]int) (CommitID, bool) {
	var (
		best      CommitID
		bestDepth int
		found     bool
	)
	// Iterate the smaller map; common ancestors appear in both.
	if len(b) < len(a) {
		a, b = b, a
	}
	for id, da := range a {
		db, ok := b[id]
		if !ok {
			continue
		}
		depth := da + db
		if !found || depth < bestDepth || (depth == bestDepth && laterCommit(g, id, best)) {
			best, bestDepth, found = id, depth, true
		}
	}
	return best, found
}

// laterCommit reports whether a should win a tie against b: strictly newer
// committer time, or equal time and lexicographically smaller ID.
func laterCommit(g *Graph, a, b CommitID) bool {
	ca, _ := g.Commit(a)
	cb, _ := g.Commit(b)
	if !ca.When.Equal(cb.When) {
		return ca.When.After(cb.When)
	}
	return a < b
}

// exclusions turns the boundary set into the exclusion list: the parents of
// every boundary commit, minus any parent that would hide a candidate
// (covers holds the descendants of all candidates). A root boundary commit
// has no parents and contributes nothing.
func exclusions(g *Graph, boundary, covers map[CommitID]struct{}) []CommitID {
	if len(boundary) == 0 {
		return nil
	}
	seen := make(map[CommitID]struct{})
	var exclude []CommitID
	for b := range boundary {
		for _, p := range g.Parents(b) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			if _, hides := covers[p]; hides {
				continue
			}
			exclude = append(exclude, p)
		}
	}
	return exclude
}

// stragglers finds side branches that fork below the boundary and merge
// back into the visible window. The boundary exclusions cannot hide them
// (the merge keeps them reachable from a candidate), so each one drags its
// full pre-fork history into the graph unless its merged-in tip gets an
// exclusion entry of its own.
//
// Visibility is seeded at the boundary commits and propagated child-ward
// through the window in topological order: a commit is visible when any of
// its parents is. A non-visible parent of a visible commit is a straggler
// tip, except when excluding it would hide a candidate or a convergence
// point (a commit reachable from two or more candidates connects their
// histories and must stay displayed).
func stragglers(g *Graph, depths []map[CommitID]int, boundary, covers map[CommitID]struct{}) []CommitID {
	if len(boundary) == 0 {
		return nil
	}

	// Everything at or below the boundary is already hidden by the
	// boundary-parent exclusions.
	hidden := make(map[CommitID]struct{})
	for b := range boundary {
		for id := range ancestorDepths(g, b) {
			hidden[id] = struct{}{}
		}
	}

	// The window: reachable from a candidate and not hidden. coverage
	// counts how many candidates reach each window commit.
	window := make(map[CommitID]struct{})
	coverage := make(map[CommitID]int)
	for _, d := range depths {
		for id := range d {
			coverage[id]++
			if _, ok := hidden[id]; !ok {
				window[id] = struct{}{}
			}
		}
	}

	visible := make(map[CommitID]struct{}, len(boundary))
	for b := range boundary {
		visible[b] = struct{}{}
	}

	seen := make(map[CommitID]struct{})
	var out []CommitID
	for _, id := range topoOrder(g, window) {
		reached := false
		for _, p := range g.Parents(id) {
			if _, ok := visible[p]; ok {
				reached = true
				break
			}
		}
		if !reached {
			continue
		}
		visible[id] = struct{}{}
		for _, p := range g.Parents(id) {
			if _, ok := visible[p]; ok {
				continue
			}
			if _, ok := hidden[p]; ok {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			if _, hides := covers[p]; hides {
				continue
			}
			if coverage[p] > 1 {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// topoOrder returns the window commits with every parent before its
// children, so visibility propagation sees each parent's final state.
// The straggler set is independent of which valid order is produced.
func topoOrder(g *Graph, window map[CommitID]struct{}) []CommitID {
	indeg := make(map[CommitID]int, len(window))
	children := make(map[CommitID][]CommitID, len(window))
	for id := range window {
		for _, p := range g.Parents(id) {
			if _, ok := window[p]; !ok {
				continue
			}
			indeg[id]++
			children[p] = append(children[p], id)
		}
	}
	queue := make([]CommitID, 0, len(window))
	for id := range window {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}
	order := make([]CommitID, 0, len(window))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)
		for _, c := range children[curr] {
			indeg[c]--
			if indeg[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	return order
}

// sortNewestFirst orders the exclusion list by committer time descending,
// then by ID, so output is stable across runs.
func sortNewestFirst(g *Graph, ids []CommitID) {
	slices.SortFunc(ids, func(a, b CommitID) int {
		ca, _ := g.Commit(a)
		cb, _ := g.Commit(b)
		switch {
		case ca.When.After(cb.When):
			return -1
		case cb.When.After(ca.When):
			return 1
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	})
}

// descendants returns every commit that can reach one of the given commits
// via parent edges (the commits themselves included), computed with a
// breadth-first walk over the reverse adjacency.
func descendants(g *Graph, from []CommitID) map[CommitID]struct{} {
	children := g.children()
	out := make(map[CommitID]struct{}, len(from))
	queue := make([]CommitID, 0, len(from))
	for _, id := range from {
		if _, ok := out[id]; ok {
			continue
		}
		out[id] = struct{}{}
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, child := range children[curr] {
			if _, ok := out[child]; ok {
				continue
			}
			out[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return out
}
