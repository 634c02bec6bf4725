// Package cli implements the gitscope command-line interface.
//
// gitscope decides which commits in a repository are worth looking at
// (branch tips, their upstreams, and the points where their histories
// meet) and hands git log --graph exactly the inclusion/exclusion
// revision arguments needed to draw them without dumping years of
// shared history.
//
// # Commands
//
// The root command runs the full pipeline and spawns the renderer. Two
// inspection subcommands expose intermediate results:
//   - range: print the computed inclusion/exclusion lists without rendering
//   - refs: print classified references and remote ownership decisions
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging on stderr.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitscope/pkg/buildinfo"
)

// appName is the application name used for config paths and display.
const appName = "gitscope"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. The root command itself runs the selection pipeline and
// spawns the renderer; everything after a "--" separator is passed to
// git log unmodified.
func (c *CLI) RootCommand() *cobra.Command {
	opts := &showOpts{}

	root := &cobra.Command{
		Use:   "gitscope [flags] [-- git log args]",
		Short: "Show the interesting commits of a repository as a graph",
		Long: `Gitscope selects the branch tips worth looking at (local branches, HEAD,
owned remotes, tracked upstreams), computes the minimal revision range that
connects them, and renders it with git log --graph.

Arguments after -- are passed to git log unmodified:

  gitscope -- --oneline --since=1.week`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.passthrough = args
			return c.runShow(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().BoolVarP(&opts.debug, "debug", "d", false, "print candidates and the computed range before rendering")
	root.PersistentFlags().StringVarP(&opts.user, "user", "u", "", "username for remote ownership (default: config file, then git user.name)")
	root.PersistentFlags().StringVarP(&opts.repo, "repo", "C", ".", "repository path")

	root.AddCommand(c.rangeCommand(opts))
	root.AddCommand(c.refsCommand(opts))
	root.AddCommand(c.completionCommand())

	return root
}
