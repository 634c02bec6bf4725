// Package revgraph computes minimal revision ranges for commit graphs.
//
// git log has no direct way to show a set of commits together with the
// history connecting them. What it does accept is a list of included and
// excluded revisions: it displays every commit reachable from an included
// revision that is not reachable from an excluded one. revgraph transforms
// a set of "candidate" tip commits into such an include/exclude pair, chosen
// so that the rendered graph contains every candidate, every merge and
// branch point connecting them, and as little else as possible.
//
// # Model
//
// The package operates on an arena-style [Graph]: a flat table of immutable
// [Commit] values keyed by [CommitID], with parent edges expressed as ID
// slices rather than pointers. All traversal state lives in auxiliary maps
// built per call, so a Graph can be shared by concurrent solves.
//
// # Algorithm
//
// [Solve] walks ancestors of every candidate with a reverse breadth-first
// search, recording per-candidate depths. Commits reachable from two or
// more candidates are convergence points; for every candidate pair the
// nearest common ancestor (lowest combined depth, latest committer time on
// ties) becomes a boundary commit. The parents of boundary commits form
// the exclusion list: excluding them hides everything older than the point
// where the candidates' histories join, while the boundary commit itself
// stays visible. Candidates with no common ancestor contribute no boundary,
// so genuinely disjoint histories render in full.
//
// A second pass hides stragglers: side branches that fork below the
// boundary and merge back into the visible window. The merge keeps them
// reachable, so without an exclusion entry of their own their whole
// pre-fork history would render. The pass propagates visibility child-ward
// from the boundary and excludes each non-visible side parent of a visible
// merge, unless doing so would hide a candidate or a convergence point.
//
// # Example
//
//	g := revgraph.NewGraph()
//	g.Add(revgraph.Commit{ID: "root"})
//	g.Add(revgraph.Commit{ID: "a", ParentIDs: []revgraph.CommitID{"root"}})
//	g.Add(revgraph.Commit{ID: "b", ParentIDs: []revgraph.CommitID{"root"}})
//
//	rng, err := revgraph.Solve(g, []revgraph.CommitID{"a", "b"})
//	// rng.Include == ["a", "b"], rng.Exclude == [] (root has no parents)
package revgraph
