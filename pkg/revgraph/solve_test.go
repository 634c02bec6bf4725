package revgraph

import (
	"errors"
	"slices"
	"strconv"
	"testing"
	"time"
)

func TestSolveLinearHistory(t *testing.T) {
	// A <- B <- C, candidates {C}: a plain single-branch log.
	g := NewGraph()
	chain(t, g, "A", "B", "C")

	rng, err := Solve(g, []CommitID{"C"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(rng.Include, []CommitID{"C"}) {
		t.Errorf("Include = %v, want [C]", rng.Include)
	}
	if len(rng.Exclude) != 0 {
		t.Errorf("Exclude = %v, want empty for a single candidate", rng.Exclude)
	}
}

func TestSolveDiamond(t *testing.T) {
	// R <- X, R <- Y, M merges X and Y. Candidates {X, Y}: merge-base is R,
	// a root, so nothing is excluded and the divergence point stays visible.
	g := NewGraph()
	mustAdd(t, g, Commit{ID: "R", When: time.Unix(1000, 0)})
	mustAdd(t, g, Commit{ID: "X", ParentIDs: []CommitID{"R"}, When: time.Unix(1001, 0)})
	mustAdd(t, g, Commit{ID: "Y", ParentIDs: []CommitID{"R"}, When: time.Unix(1002, 0)})
	mustAdd(t, g, Commit{ID: "M", ParentIDs: []CommitID{"X", "Y"}, When: time.Unix(1003, 0)})

	rng, err := Solve(g, []CommitID{"X", "Y"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(rng.Include, []CommitID{"X", "Y"}) {
		t.Errorf("Include = %v, want [X Y]", rng.Include)
	}
	if len(rng.Exclude) != 0 {
		t.Errorf("Exclude = %v, want empty (merge-base is a root)", rng.Exclude)
	}
}

func TestSolveDeepSharedHistory(t *testing.T) {
	// Two long-lived branches forking at a commit deep in shared history.
	// The exclusion must be the fork point's parent, truncating everything
	// older, and the shared tail must stay hidden.
	g := NewGraph()
	shared := make([]CommitID, 0, 500)
	for i := range 500 {
		shared = append(shared, CommitID("c"+strconv.Itoa(i)))
	}
	chain(t, g, shared...)
	fork := shared[len(shared)-1]
	mustAdd(t, g, Commit{ID: "tip1", ParentIDs: []CommitID{fork}, When: time.Unix(9001, 0)})
	mustAdd(t, g, Commit{ID: "tip2", ParentIDs: []CommitID{fork}, When: time.Unix(9002, 0)})

	rng, err := Solve(g, []CommitID{"tip1", "tip2"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	want := []CommitID{shared[len(shared)-2]}
	if !slices.Equal(rng.Exclude, want) {
		t.Errorf("Exclude = %v, want %v (parent of the fork point)", rng.Exclude, want)
	}
}

func TestSolveDisjointHistories(t *testing.T) {
	// Two unrelated root chains: no common ancestor, so both histories are
	// shown in full rather than failing or hiding one of them.
	g := NewGraph()
	chain(t, g, "a1", "a2", "a3")
	chain(t, g, "b1", "b2")

	rng, err := Solve(g, []CommitID{"a3", "b2"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(rng.Include, []CommitID{"a3", "b2"}) {
		t.Errorf("Include = %v, want [a3 b2]", rng.Include)
	}
	if len(rng.Exclude) != 0 {
		t.Errorf("Exclude = %v, want empty for disjoint histories", rng.Exclude)
	}
}

func TestSolveDuplicateCandidates(t *testing.T) {
	g := NewGraph()
	chain(t, g, "A", "B", "C")

	base, err := Solve(g, []CommitID{"C"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	dup, err := Solve(g, []CommitID{"C", "C"})
	if err != nil {
		t.Fatalf("Solve with duplicate: %v", err)
	}
	if !slices.Equal(base.Include, dup.Include) || !slices.Equal(base.Exclude, dup.Exclude) {
		t.Errorf("duplicate candidate changed the range: %v vs %v", base, dup)
	}
}

func TestSolveCandidateAncestorOfCandidate(t *testing.T) {
	// B is an ancestor of C; both are candidates. B stays in the include
	// list (harmless) and must not end up hidden by an exclusion.
	g := NewGraph()
	chain(t, g, "A", "B", "C")

	rng, err := Solve(g, []CommitID{"C", "B"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(rng.Include, []CommitID{"C", "B"}) {
		t.Errorf("Include = %v, want [C B]", rng.Include)
	}
	// merge-base(C, B) = B; B's parent A is not a candidate descendant,
	// so A is excluded, truncating history below B.
	if !slices.Equal(rng.Exclude, []CommitID{"A"}) {
		t.Errorf("Exclude = %v, want [A]", rng.Exclude)
	}
	assertRangeCovers(t, g, rng, []CommitID{"C", "B"})
}

func TestSolveExclusionNeverHidesCandidate(t *testing.T) {
	// deep <- low <- mid <- A, and B branching from mid. The A/B merge-base
	// is mid, whose parent is the candidate low: excluding low would hide
	// it, so the solver must drop that exclusion and instead cut below low.
	g := NewGraph()
	chain(t, g, "deep", "low", "mid")
	mustAdd(t, g, Commit{ID: "A", ParentIDs: []CommitID{"mid"}, When: time.Unix(2001, 0)})
	mustAdd(t, g, Commit{ID: "B", ParentIDs: []CommitID{"mid"}, When: time.Unix(2002, 0)})

	rng, err := Solve(g, []CommitID{"A", "B", "low"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if slices.Contains(rng.Exclude, "low") {
		t.Fatalf("Exclude = %v hides candidate low", rng.Exclude)
	}
	assertRangeCovers(t, g, rng, []CommitID{"A", "B", "low"})
}

func TestSolveMergeBaseTieBreak(t *testing.T) {
	// Criss-cross: two common ancestors at equal combined depth. The newer
	// one (by committer time) must win so the displayed window is smaller.
	//
	//   old -- ca1 -- X
	//      \       /
	//       ca2 --+--- Y   (X merges ca1+ca2, Y merges ca1+ca2)
	g := NewGraph()
	mustAdd(t, g, Commit{ID: "old", When: time.Unix(1000, 0)})
	mustAdd(t, g, Commit{ID: "ca1", ParentIDs: []CommitID{"old"}, When: time.Unix(1001, 0)})
	mustAdd(t, g, Commit{ID: "ca2", ParentIDs: []CommitID{"old"}, When: time.Unix(1002, 0)})
	mustAdd(t, g, Commit{ID: "X", ParentIDs: []CommitID{"ca1", "ca2"}, When: time.Unix(1003, 0)})
	mustAdd(t, g, Commit{ID: "Y", ParentIDs: []CommitID{"ca1", "ca2"}, When: time.Unix(1004, 0)})

	rng, err := Solve(g, []CommitID{"X", "Y"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	// Winner is ca2 (newer); its parent old gets excluded.
	if !slices.Equal(rng.Exclude, []CommitID{"old"}) {
		t.Errorf("Exclude = %v, want [old]", rng.Exclude)
	}
}

func TestSolveStragglerSideBranch(t *testing.T) {
	// A side branch forks at o2, deep below the boundary, and merges back
	// into candidate t1's line. The boundary exclusion (o5) cannot hide it
	// because the merge keeps it reachable, so its tip s3 needs an
	// exclusion entry of its own or s1..s3 render in full.
	//
	//   o1 <- o2 <- o3 <- o4 <- o5 <- base
	//          \                        \-- a1 <- t1 (merges s3)
	//           s1 <- s2 <- s3 --------------/
	//                                   \-- b1 <- t2
	g := NewGraph()
	chain(t, g, "o1", "o2", "o3", "o4", "o5", "base")
	mustAdd(t, g, Commit{ID: "s1", ParentIDs: []CommitID{"o2"}, When: time.Unix(2001, 0)})
	mustAdd(t, g, Commit{ID: "s2", ParentIDs: []CommitID{"s1"}, When: time.Unix(2002, 0)})
	mustAdd(t, g, Commit{ID: "s3", ParentIDs: []CommitID{"s2"}, When: time.Unix(2003, 0)})
	mustAdd(t, g, Commit{ID: "a1", ParentIDs: []CommitID{"base"}, When: time.Unix(3001, 0)})
	mustAdd(t, g, Commit{ID: "b1", ParentIDs: []CommitID{"base"}, When: time.Unix(3002, 0)})
	mustAdd(t, g, Commit{ID: "t1", ParentIDs: []CommitID{"a1", "s3"}, When: time.Unix(3003, 0)})
	mustAdd(t, g, Commit{ID: "t2", ParentIDs: []CommitID{"b1"}, When: time.Unix(3004, 0)})

	rng, err := Solve(g, []CommitID{"t1", "t2"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(rng.Exclude, []CommitID{"s3", "o5"}) {
		t.Errorf("Exclude = %v, want [s3 o5]", rng.Exclude)
	}
	shown := rendered(g, rng.Include, rng.Exclude)
	for _, hidden := range []CommitID{"s1", "s2", "s3", "o5", "o1"} {
		if _, ok := shown[hidden]; ok {
			t.Errorf("commit %s rendered, want hidden", hidden)
		}
	}
	assertRangeCovers(t, g, rng, []CommitID{"t1", "t2"})
}

func TestSolveStragglerKeepsConvergencePoints(t *testing.T) {
	// Criss-cross: ca2 is the chosen merge-base, leaving ca1 as a
	// non-visible side parent of both X and Y. ca1 connects the two
	// candidate histories, so it must not be excluded as a straggler.
	g := NewGraph()
	mustAdd(t, g, Commit{ID: "old", When: time.Unix(1000, 0)})
	mustAdd(t, g, Commit{ID: "ca1", ParentIDs: []CommitID{"old"}, When: time.Unix(1001, 0)})
	mustAdd(t, g, Commit{ID: "ca2", ParentIDs: []CommitID{"old"}, When: time.Unix(1002, 0)})
	mustAdd(t, g, Commit{ID: "X", ParentIDs: []CommitID{"ca1", "ca2"}, When: time.Unix(1003, 0)})
	mustAdd(t, g, Commit{ID: "Y", ParentIDs: []CommitID{"ca1", "ca2"}, When: time.Unix(1004, 0)})

	rng, err := Solve(g, []CommitID{"X", "Y"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !slices.Equal(rng.Exclude, []CommitID{"old"}) {
		t.Errorf("Exclude = %v, want [old]", rng.Exclude)
	}
	shown := rendered(g, rng.Include, rng.Exclude)
	for _, conv := range []CommitID{"ca1", "ca2"} {
		if _, ok := shown[conv]; !ok {
			t.Errorf("convergence point %s not rendered", conv)
		}
	}
}

func TestSolveErrors(t *testing.T) {
	g := NewGraph()
	chain(t, g, "A", "B")

	if _, err := Solve(g, nil); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Solve(nil) error = %v, want ErrNoCandidates", err)
	}
	if _, err := Solve(g, []CommitID{"ghost"}); !errors.Is(err, ErrUnknownCandidate) {
		t.Errorf("Solve(ghost) error = %v, want ErrUnknownCandidate", err)
	}
}

func TestSolveMinimality(t *testing.T) {
	// Two branches off a deep chain: dropping the exclusion entry must
	// reveal ancestors that are neither candidates nor convergence points.
	g := NewGraph()
	chain(t, g, "c1", "c2", "c3", "fork")
	mustAdd(t, g, Commit{ID: "t1", ParentIDs: []CommitID{"fork"}, When: time.Unix(3001, 0)})
	mustAdd(t, g, Commit{ID: "t2", ParentIDs: []CommitID{"fork"}, When: time.Unix(3002, 0)})

	rng, err := Solve(g, []CommitID{"t1", "t2"})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	full := rendered(g, rng.Include, rng.Exclude)
	relaxed := rendered(g, rng.Include, nil)
	if len(relaxed) <= len(full) {
		t.Errorf("removing the exclusion revealed nothing: %d vs %d commits", len(relaxed), len(full))
	}
	for _, inc := range rng.Include {
		without := slices.DeleteFunc(slices.Clone(rng.Include), func(id CommitID) bool { return id == inc })
		reduced := rendered(g, without, rng.Exclude)
		if _, ok := reduced[inc]; ok {
			t.Errorf("inclusion %s is redundant: still rendered without it", inc)
		}
	}
}

// assertRangeCovers checks the coverage invariant: every candidate is
// reachable from Include and not reachable from Exclude.
func assertRangeCovers(t *testing.T, g *Graph, rng Range, cands []CommitID) {
	t.Helper()
	shown := rendered(g, rng.Include, rng.Exclude)
	for _, c := range cands {
		if _, ok := shown[c]; !ok {
			t.Errorf("candidate %s not rendered by range %v", c, rng)
		}
	}
}

// rendered simulates git log semantics: ancestors of include minus
// ancestors of exclude.
func rendered(g *Graph, include, exclude []CommitID) map[CommitID]struct{} {
	hidden := make(map[CommitID]struct{})
	for _, e := range exclude {
		for id := range ancestorDepths(g, e) {
			hidden[id] = struct{}{}
		}
	}
	shown := make(map[CommitID]struct{})
	for _, i := range include {
		for id := range ancestorDepths(g, i) {
			if _, ok := hidden[id]; !ok {
				shown[id] = struct{}{}
			}
		}
	}
	return shown
}
