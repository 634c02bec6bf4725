package revgraph

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCommitID is returned by [Graph.Add] when the commit ID is
	// empty. All commits must have non-empty identifiers.
	ErrInvalidCommitID = errors.New("commit ID must not be empty")

	// ErrDuplicateCommit is returned by [Graph.Add] when a commit with the
	// same ID is already present. Commit IDs are content hashes and unique.
	ErrDuplicateCommit = errors.New("duplicate commit ID")

	// ErrUnknownCandidate is returned by [Solve] when a candidate commit is
	// not present in the graph. Candidates are derived from refs read from
	// the same snapshot as the graph, so hitting this is an internal
	// invariant violation, not a user error.
	ErrUnknownCandidate = errors.New("candidate commit not in graph")

	// ErrNoCandidates is returned by [Solve] when the candidate list is
	// empty after deduplication.
	ErrNoCandidates = errors.New("no candidate commits")
)

// CommitID is an opaque commit identifier (the hex content hash as emitted
// by git). Equality and map keying are by value.
type CommitID string

// Commit is an immutable snapshot of one commit's graph-relevant metadata.
// ParentIDs preserves parent order: empty for a root commit, length two or
// more for a merge. When is the committer timestamp; it is only consulted
// to break ties between equally-near common ancestors.
type Commit struct {
	ID        CommitID
	ParentIDs []CommitID
	Author    string
	Committer string
	When      time.Time
}

// IsRoot reports whether the commit has no parents.
func (c Commit) IsRoot() bool { return len(c.ParentIDs) == 0 }

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool { return len(c.ParentIDs) > 1 }

// Graph is an arena of commits keyed by ID. Parent edges reference IDs, not
// nodes, so the structure is acyclic by construction and needs no cycle
// handling. A parent ID without a corresponding commit in the arena is
// treated as a cut-off edge (this happens at shallow-clone boundaries).
//
// The zero value is not usable - use [NewGraph]. Graph is safe for
// concurrent reads once populated; Add must not race with readers.
type Graph struct {
	commits map[CommitID]Commit
}

// NewGraph creates an empty commit graph.
func NewGraph() *Graph {
	return &Graph{commits: make(map[CommitID]Commit)}
}

// Add inserts a commit into the arena. Returns ErrInvalidCommitID for an
// empty ID or ErrDuplicateCommit if the ID is already present.
func (g *Graph) Add(c Commit) error {
	if c.ID == "" {
		return ErrInvalidCommitID
	}
	if _, exists := g.commits[c.ID]; exists {
		return ErrDuplicateCommit
	}
	g.commits[c.ID] = c
	return nil
}

// Commit returns the commit with the given ID and true, or a zero Commit
// and false when absent.
func (g *Graph) Commit(id CommitID) (Commit, bool) {
	c, ok := g.commits[id]
	return c, ok
}

// Contains reports whether the graph holds a commit with the given ID.
func (g *Graph) Contains(id CommitID) bool {
	_, ok := g.commits[id]
	return ok
}

// Parents returns the parent IDs of the given commit that are present in
// the arena, preserving parent order. Unknown IDs yield nil.
func (g *Graph) Parents(id CommitID) []CommitID {
	c, ok := g.commits[id]
	if !ok {
		return nil
	}
	parents := make([]CommitID, 0, len(c.ParentIDs))
	for _, p := range c.ParentIDs {
		if _, ok := g.commits[p]; ok {
			parents = append(parents, p)
		}
	}
	return parents
}

// Len returns the number of commits in the arena.
func (g *Graph) Len() int { return len(g.commits) }

// children builds the reverse adjacency (parent -> children) for the
// commits currently in the arena. Used by the solver to test whether a
// candidate is reachable from a proposed exclusion.
func (g *Graph) children() map[CommitID][]CommitID {
	children := make(map[CommitID][]CommitID, len(g.commits))
	for id, c := range g.commits {
		for _, p := range c.ParentIDs {
			if _, ok := g.commits[p]; ok {
				children[p] = append(children[p], id)
			}
		}
	}
	return children
}
