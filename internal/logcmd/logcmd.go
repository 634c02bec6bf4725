// Package logcmd invokes the external log renderer: git log --graph with
// the computed inclusion/exclusion revision arguments and the caller's
// passthrough formatting tokens.
package logcmd

import (
	"context"
	"os"
	"os/exec"

	"github.com/matzehuels/gitscope/pkg/revgraph"
)

// DefaultFormat is used when the caller passes no passthrough tokens:
// auto-colored short hash, ref decorations, subject truncated to keep the
// graph columns readable.
const DefaultFormat = "--format=%C(auto)%h %d %<(50,trunc)%s"

// Options describes one renderer invocation.
type Options struct {
	// RepoPath is passed to git via -C so the renderer resolves the same
	// repository the snapshot was read from.
	RepoPath string

	// Range holds the computed inclusions and exclusions.
	Range revgraph.Range

	// Passthrough tokens are handed to git log unmodified, before the
	// revision arguments. Empty means DefaultFormat.
	Passthrough []string
}

// Args builds the git argument vector: log --graph, formatting tokens,
// inclusions, then ^-prefixed exclusions. Exclusions use the caret form
// rather than A..B so multiple inclusion roots compose.
func Args(o Options) []string {
	args := []string{"log", "--graph"}
	if len(o.Passthrough) > 0 {
		args = append(args, o.Passthrough...)
	} else {
		args = append(args, DefaultFormat)
	}
	for _, id := range o.Range.Include {
		args = append(args, string(id))
	}
	for _, id := range o.Range.Exclude {
		args = append(args, "^"+string(id))
	}
	return args
}

// Run spawns git log with inherited stdio so the renderer's pager and
// color detection behave exactly as if the user had run it directly.
func Run(ctx context.Context, o Options) error {
	argv := Args(o)
	if o.RepoPath != "" {
		argv = append([]string{"-C", o.RepoPath}, argv...)
	}
	cmd := exec.CommandContext(ctx, "git", argv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
