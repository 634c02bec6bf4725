package gitrepo

import (
	"slices"
	"testing"

	"github.com/matzehuels/gitscope/pkg/revgraph"
)

func TestSelectCandidates(t *testing.T) {
	refs := []Ref{
		{Name: "HEAD", Target: "head", Origin: OriginHead},
		{Name: "main", Target: "local-main", Origin: OriginLocal},
		{Name: "feature", Target: "local-feature", Origin: OriginLocal},
		{Name: "origin/main", Target: "remote-main", Origin: OriginRemote, Remote: "origin"},
		{Name: "origin/other", Target: "remote-other", Origin: OriginRemote, Remote: "origin"},
		{Name: "fork/experiment", Target: "fork-exp", Origin: OriginRemote, Remote: "fork"},
		{Name: "v1.0", Target: "tag-commit", Origin: OriginTag},
	}

	tests := []struct {
		name      string
		owned     map[string]bool
		upstreams map[string]string
		want      []revgraph.CommitID
	}{
		{
			// Foreign remotes contribute only the same-name match.
			name:  "no owned remotes",
			owned: map[string]bool{"origin": false, "fork": false},
			want:  []revgraph.CommitID{"head", "local-main", "local-feature", "remote-main"},
		},
		{
			name:  "owned remote contributes all branches",
			owned: map[string]bool{"origin": true, "fork": false},
			want:  []revgraph.CommitID{"head", "local-main", "local-feature", "remote-main", "remote-other"},
		},
		{
			// Tracked upstream pulls in a foreign remote's branch.
			name:      "upstream of local branch",
			owned:     map[string]bool{"origin": false, "fork": false},
			upstreams: map[string]string{"feature": "fork/experiment"},
			want:      []revgraph.CommitID{"head", "local-main", "local-feature", "remote-main", "fork-exp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectCandidates(refs, tt.owned, tt.upstreams)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SelectCandidates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectCandidatesTagsNever(t *testing.T) {
	refs := []Ref{
		{Name: "HEAD", Target: "head", Origin: OriginHead},
		{Name: "v1.0", Target: "tag1", Origin: OriginTag},
		{Name: "v2.0", Target: "tag2", Origin: OriginTag},
	}
	got := SelectCandidates(refs, nil, nil)
	if !slices.Equal(got, []revgraph.CommitID{"head"}) {
		t.Errorf("SelectCandidates() = %v, want [head] (tags never)", got)
	}
}

func TestSelectCandidatesDetachedHeadOnly(t *testing.T) {
	// Detached HEAD, no branches, no owned remotes: HEAD is the sole
	// candidate so the range is never empty.
	refs := []Ref{{Name: "HEAD", Target: "detached", Origin: OriginHead}}
	got := SelectCandidates(refs, nil, nil)
	if !slices.Equal(got, []revgraph.CommitID{"detached"}) {
		t.Errorf("SelectCandidates() = %v, want [detached]", got)
	}
}

func TestSelectCandidatesDeduplicates(t *testing.T) {
	// HEAD attached to main: both point at the same commit, one candidate.
	refs := []Ref{
		{Name: "HEAD", Target: "tip", Origin: OriginHead},
		{Name: "main", Target: "tip", Origin: OriginLocal},
	}
	got := SelectCandidates(refs, nil, nil)
	if !slices.Equal(got, []revgraph.CommitID{"tip"}) {
		t.Errorf("SelectCandidates() = %v, want [tip]", got)
	}
}

func TestSelectCandidatesUnbornRepository(t *testing.T) {
	if got := SelectCandidates(nil, nil, nil); len(got) != 0 {
		t.Errorf("SelectCandidates(nil) = %v, want empty", got)
	}
}
