// Package gitrepo reads a repository snapshot and turns its references into
// candidate tip commits.
//
// The package is split along the data flow: Snapshot (read-only view over
// go-git), classification (Ref, OwnedRemotes), and selection
// (SelectCandidates). Classification and selection are pure functions over
// plain values so every (remote, username) combination is independently
// testable without a repository on disk.
package gitrepo

import (
	"path/filepath"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/matzehuels/gitscope/pkg/errors"
	"github.com/matzehuels/gitscope/pkg/revgraph"
)

// Snapshot is a read-only view of refs and commit metadata as of invocation
// time. Refs are re-enumerated fresh on every call; nothing is persisted
// across runs and nothing in the repository is ever written.
type Snapshot struct {
	repo *gitlib.Repository
	path string
}

// Open opens the repository at repoPath (searching upward for .git, like
// the git binary does). Failure to open is a repository error: fatal and
// not retried.
func Open(repoPath string) (*Snapshot, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve path %q", repoPath)
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "open repository at %s", abs)
	}
	return &Snapshot{repo: repo, path: abs}, nil
}

// RepoPath returns the path the snapshot was opened from.
func (s *Snapshot) RepoPath() string {
	return s.path
}

// Refs enumerates and classifies every reference: HEAD, local branches,
// remote-tracking branches and tags. Annotated tags are peeled to their
// target commit. Symbolic remote HEAD entries (origin/HEAD) are skipped;
// they duplicate the remote's default branch. A ref that cannot be read is
// a repository error.
func (s *Snapshot) Refs() ([]Ref, error) {
	var refs []Ref

	head, err := s.repo.Head()
	if err != nil && err != plumbing.ErrReferenceNotFound {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "resolve HEAD")
	}
	if head != nil {
		refs = append(refs, Ref{
			Name:   "HEAD",
			Target: revgraph.CommitID(head.Hash().String()),
			Origin: OriginHead,
		})
	}

	iter, err := s.repo.References()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "enumerate references")
	}
	defer iter.Close()

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		short := name.Short()
		switch {
		case name.IsBranch():
			refs = append(refs, Ref{
				Name:   short,
				Target: revgraph.CommitID(ref.Hash().String()),
				Origin: OriginLocal,
			})
		case name.IsRemote():
			if strings.HasSuffix(short, "/HEAD") {
				return nil
			}
			remote, _, _ := strings.Cut(short, "/")
			refs = append(refs, Ref{
				Name:   short,
				Target: revgraph.CommitID(ref.Hash().String()),
				Origin: OriginRemote,
				Remote: remote,
			})
		case name.IsTag():
			hash := ref.Hash()
			if peeled, ok := s.peelTag(hash); ok {
				hash = peeled
			}
			refs = append(refs, Ref{
				Name:   short,
				Target: revgraph.CommitID(hash.String()),
				Origin: OriginTag,
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "iterate references")
	}
	return refs, nil
}

// peelTag resolves a tag ref hash to its target commit. Lightweight tags
// point directly at a commit; annotated tags chain through tag objects.
func (s *Snapshot) peelTag(hash plumbing.Hash) (plumbing.Hash, bool) {
	if _, err := s.repo.CommitObject(hash); err == nil {
		return hash, true
	}
	cur := hash
	for range 8 {
		tag, err := s.repo.TagObject(cur)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			return tag.Target, true
		case plumbing.TagObject:
			cur = tag.Target
		default:
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ZeroHash, false
}

// RemoteURLs returns the first fetch URL of every configured remote, for
// the ownership heuristic.
func (s *Snapshot) RemoteURLs() (map[string]string, error) {
	remotes, err := s.repo.Remotes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "list remotes")
	}
	urls := make(map[string]string, len(remotes))
	for _, r := range remotes {
		cfg := r.Config()
		if len(cfg.URLs) > 0 {
			urls[cfg.Name] = cfg.URLs[0]
		}
	}
	return urls, nil
}

// Upstreams returns, for every local branch with a configured upstream, the
// upstream's short remote-tracking name (e.g. main -> origin/main).
func (s *Snapshot) Upstreams() (map[string]string, error) {
	cfg, err := s.repo.Config()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "read repository config")
	}
	upstreams := make(map[string]string, len(cfg.Branches))
	for name, branch := range cfg.Branches {
		if branch.Remote == "" || branch.Merge == "" {
			continue
		}
		merge := strings.TrimPrefix(branch.Merge.String(), "refs/heads/")
		upstreams[name] = branch.Remote + "/" + merge
	}
	return upstreams, nil
}

// Username resolves the configured git user.name, falling back through
// local, global and system config. Empty when unset.
func (s *Snapshot) Username() string {
	cfg, err := s.repo.ConfigScoped(gitcfg.SystemScope)
	if err != nil {
		return ""
	}
	return cfg.User.Name
}

// Identity returns an identity lookup over the snapshot, for the ownership
// heuristic on remote branch tips.
func (s *Snapshot) Identity() Identity {
	return func(id revgraph.CommitID) (string, string, bool) {
		commit, err := s.repo.CommitObject(plumbing.NewHash(string(id)))
		if err != nil {
			return "", "", false
		}
		return commit.Author.String(), commit.Committer.String(), true
	}
}

// Graph loads the parent-edge graph reachable from the given tips into an
// arena. A tip that cannot be read is an internal invariant violation:
// tips are always derived from refs read from this same snapshot. Parents
// that are unreadable (shallow-clone boundaries) become cut-off edges.
func (s *Snapshot) Graph(tips []revgraph.CommitID) (*revgraph.Graph, error) {
	g := revgraph.NewGraph()
	queue := make([]revgraph.CommitID, 0, len(tips))

	for _, tip := range tips {
		if g.Contains(tip) {
			continue
		}
		commit, err := s.loadCommit(tip)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "candidate %s missing from snapshot", tip)
		}
		if err := g.Add(commit); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add candidate %s", tip)
		}
		queue = append(queue, tip)
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		commit, _ := g.Commit(curr)
		for _, p := range commit.ParentIDs {
			if g.Contains(p) {
				continue
			}
			parent, err := s.loadCommit(p)
			if err != nil {
				// Shallow boundary: the parent hash is recorded but the
				// object is absent. Treat the edge as cut off.
				continue
			}
			if err := g.Add(parent); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "add commit %s", p)
			}
			queue = append(queue, p)
		}
	}
	return g, nil
}

func (s *Snapshot) loadCommit(id revgraph.CommitID) (revgraph.Commit, error) {
	commit, err := s.repo.CommitObject(plumbing.NewHash(string(id)))
	if err != nil {
		return revgraph.Commit{}, err
	}
	parents := make([]revgraph.CommitID, len(commit.ParentHashes))
	for i, p := range commit.ParentHashes {
		parents[i] = revgraph.CommitID(p.String())
	}
	return revgraph.Commit{
		ID:        id,
		ParentIDs: parents,
		Author:    commit.Author.String(),
		Committer: commit.Committer.String(),
		When:      commit.Committer.When,
	}, nil
}
