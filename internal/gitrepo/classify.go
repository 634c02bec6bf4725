package gitrepo

import (
	"strings"

	"github.com/matzehuels/gitscope/pkg/revgraph"
)

// Origin classifies where a ref lives.
type Origin uint8

const (
	// OriginLocal is a branch under refs/heads.
	OriginLocal Origin = iota
	// OriginRemote is a remote-tracking branch under refs/remotes.
	OriginRemote
	// OriginTag is a tag under refs/tags (annotated tags are peeled to
	// their target commit).
	OriginTag
	// OriginHead is the resolved HEAD, attached or detached.
	OriginHead
)

// String returns the lowercase origin name for display.
func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginRemote:
		return "remote"
	case OriginTag:
		return "tag"
	case OriginHead:
		return "head"
	default:
		return "unknown"
	}
}

// Ref is one classified reference from the snapshot. Names are short
// (main, origin/main, v1.2); one ref exists per (name, origin) pair.
// Remote is set only for OriginRemote.
type Ref struct {
	Name   string
	Target revgraph.CommitID
	Origin Origin
	Remote string
}

// BaseName returns the branch name without its remote prefix: origin/main
// becomes main. Local refs return their name unchanged.
func (r Ref) BaseName() string {
	if r.Origin != OriginRemote {
		return r.Name
	}
	if _, base, ok := strings.Cut(r.Name, "/"); ok {
		return base
	}
	return r.Name
}

// Identity looks up the author and committer identities of a commit.
// ok is false when the commit cannot be read; ownership rules then skip
// the identity heuristic for that tip (conservative default).
type Identity func(id revgraph.CommitID) (author, committer string, ok bool)

// OwnedRemotes decides, for every remote observed in refs, whether that
// remote's branches belong to the invoking user.
//
// With no username configured every remote is foreign: only local refs and
// HEAD drive candidate selection. With a username, a remote is owned when
// any of these enumerated rules matches (case-insensitive):
//
//  1. the remote's name equals the username,
//  2. the remote's URL contains the username as a path segment
//     (git@github.com:alice/repo.git, https://github.com/alice/repo), or
//  3. the author or committer identity on one of the remote's branch tips
//     contains the username.
//
// A remote that matches no rule stays foreign. That is the conservative
// resolution for ambiguity: a foreign remote's commits still render when
// reachable from an owned tip, so under-inclusion is recoverable.
func OwnedRemotes(refs []Ref, remoteURLs map[string]string, username string, identity Identity) map[string]bool {
	owned := make(map[string]bool)
	for _, ref := range refs {
		if ref.Origin == OriginRemote && ref.Remote != "" {
			if _, seen := owned[ref.Remote]; !seen {
				owned[ref.Remote] = false
			}
		}
	}
	if username == "" {
		return owned
	}

	for remote := range owned {
		if strings.EqualFold(remote, username) {
			owned[remote] = true
			continue
		}
		if urlHasSegment(remoteURLs[remote], username) {
			owned[remote] = true
		}
	}

	if identity == nil {
		return owned
	}
	for _, ref := range refs {
		if ref.Origin != OriginRemote || ref.Remote == "" || owned[ref.Remote] {
			continue
		}
		author, committer, ok := identity(ref.Target)
		if !ok {
			continue
		}
		if containsFold(author, username) || containsFold(committer, username) {
			owned[ref.Remote] = true
		}
	}
	return owned
}

// urlHasSegment reports whether url contains name as a standalone path
// segment. Handles both scp-like (git@host:user/repo.git) and URL forms
// (https://host/user/repo); the trailing .git suffix is ignored.
func urlHasSegment(url, name string) bool {
	if url == "" || name == "" {
		return false
	}
	url = strings.TrimSuffix(url, ".git")
	for _, seg := range strings.FieldsFunc(url, func(r rune) bool {
		return r == '/' || r == ':' || r == '@'
	}) {
		if strings.EqualFold(seg, name) {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
