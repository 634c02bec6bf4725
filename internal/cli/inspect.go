package cli

import (
	"github.com/spf13/cobra"
)

// rangeCommand creates the range subcommand: run the pipeline and print the
// computed inclusion/exclusion lists instead of invoking the renderer.
// This is the observable surface for verifying the solver's output.
func (c *CLI) rangeCommand(opts *showOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "range",
		Short: "Print the computed inclusion/exclusion revision lists",
		Long: `Range runs reference classification, candidate selection and the range
solver, then prints the resulting revision arguments without spawning
git log. Useful for scripting and for inspecting what would be rendered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, _, err := c.analyze(opts, cfg)
			if err != nil {
				return err
			}
			printReport(res)
			return nil
		},
	}
}

// refsCommand creates the refs subcommand: print every classified ref and
// the per-remote ownership decision.
func (c *CLI) refsCommand(opts *showOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "Print classified references and remote ownership",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, _, err := c.analyze(opts, cfg)
			if err != nil {
				return err
			}
			printRefs(res)
			return nil
		},
	}
}
