package gitrepo

import (
	"github.com/matzehuels/gitscope/pkg/revgraph"
)

// SelectCandidates turns classified refs into the set of tip commits that
// must appear in the rendered graph. Rules, in precedence order:
//
//  1. HEAD's target is always a candidate.
//  2. Every local branch tip is always a candidate.
//  3. Remote branch tips are candidates when their remote is owned.
//  4. Remote branch tips sharing a base name with a local branch are
//     candidates even on foreign remotes.
//  5. The upstream tip of every local branch is a candidate (upstreams maps
//     local branch name to the upstream's short ref name, e.g. origin/main).
//  6. Tags are never candidates; they mark release points, not active work,
//     and would bloat the view.
//
// The result preserves rule order and is deduplicated. It is empty only
// when refs contains no HEAD and no branch at all (e.g. an unborn
// repository); otherwise HEAD guarantees at least one entry.
func SelectCandidates(refs []Ref, owned map[string]bool, upstreams map[string]string) []revgraph.CommitID {
	var out []revgraph.CommitID
	seen := make(map[revgraph.CommitID]struct{})
	add := func(id revgraph.CommitID) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	localNames := make(map[string]struct{})
	upstreamNames := make(map[string]struct{})
	for _, ref := range refs {
		if ref.Origin == OriginLocal {
			localNames[ref.Name] = struct{}{}
			if up, ok := upstreams[ref.Name]; ok {
				upstreamNames[up] = struct{}{}
			}
		}
	}

	for _, ref := range refs {
		if ref.Origin == OriginHead {
			add(ref.Target)
		}
	}
	for _, ref := range refs {
		if ref.Origin == OriginLocal {
			add(ref.Target)
		}
	}
	for _, ref := range refs {
		if ref.Origin != OriginRemote {
			continue
		}
		_, sameName := localNames[ref.BaseName()]
		_, isUpstream := upstreamNames[ref.Name]
		if owned[ref.Remote] || sameName || isUpstream {
			add(ref.Target)
		}
	}
	return out
}
