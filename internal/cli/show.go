package cli

import (
	"context"

	"github.com/matzehuels/gitscope/internal/gitrepo"
	"github.com/matzehuels/gitscope/internal/logcmd"
	"github.com/matzehuels/gitscope/pkg/errors"
	"github.com/matzehuels/gitscope/pkg/revgraph"
)

// showOpts holds the command-line flags shared by the root command and the
// inspection subcommands.
type showOpts struct {
	debug       bool     // print candidates and range before rendering
	user        string   // username override for ownership decisions
	repo        string   // repository path
	passthrough []string // tokens handed to git log unmodified
}

// analysis is the result of one snapshot->classify->select->solve pass.
type analysis struct {
	Refs       []gitrepo.Ref
	Owned      map[string]bool
	Username   string
	Candidates []revgraph.CommitID
	Range      revgraph.Range
}

// runShow executes the full pipeline and spawns the renderer.
func (c *CLI) runShow(ctx context.Context, opts *showOpts) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, snap, err := c.analyze(opts, cfg)
	if err != nil {
		return err
	}
	if opts.debug {
		printReport(res)
	}

	passthrough := opts.passthrough
	if len(passthrough) == 0 {
		passthrough = cfg.LogArgs
	}
	return logcmd.Run(ctx, logcmd.Options{
		RepoPath:    snap.RepoPath(),
		Range:       res.Range,
		Passthrough: passthrough,
	})
}

// analyze runs snapshot, classification, selection and the range solver.
// It never mutates the repository; all state lives in the returned values.
func (c *CLI) analyze(opts *showOpts, cfg Config) (*analysis, *gitrepo.Snapshot, error) {
	timer := newProgress(c.Logger)

	snap, err := gitrepo.Open(opts.repo)
	if err != nil {
		return nil, nil, err
	}
	refs, err := snap.Refs()
	if err != nil {
		return nil, nil, err
	}
	urls, err := snap.RemoteURLs()
	if err != nil {
		return nil, nil, err
	}
	upstreams, err := snap.Upstreams()
	if err != nil {
		return nil, nil, err
	}

	username := opts.user
	if username == "" {
		username = cfg.Username
	}
	if username == "" {
		username = snap.Username()
	}

	owned := gitrepo.OwnedRemotes(refs, urls, username, snap.Identity())
	candidates := gitrepo.SelectCandidates(refs, owned, upstreams)
	if len(candidates) == 0 {
		return nil, nil, errors.New(errors.ErrCodeRepository, "repository has no commits to show")
	}
	c.Logger.Debugf("classified %d refs, %d candidates, username %q", len(refs), len(candidates), username)

	graph, err := snap.Graph(candidates)
	if err != nil {
		return nil, nil, err
	}
	rng, err := revgraph.Solve(graph, candidates)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "solve revision range")
	}
	timer.done("computed revision range")

	return &analysis{
		Refs:       refs,
		Owned:      owned,
		Username:   username,
		Candidates: candidates,
		Range:      rng,
	}, snap, nil
}
