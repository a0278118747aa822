package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [pipelines...]",
		Short: "Run pipeline files, reusing cached step results",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Run(cmd.Context(), pipelineArgs(args), force)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Recompute every step, bypassing the cache")
	return cmd
}
