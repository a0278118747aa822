// Package commands implements the CLI commands for the lineage pipeline tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/lineage/internal/app"
	"go.trai.ch/lineage/internal/build"
)

// DefaultPipelineFile is used when a command gets no pipeline arguments.
const DefaultPipelineFile = "lineage.yaml"

// CLI represents the command line interface for lineage.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lineage",
		Short:         "A caching runner for staged analysis pipelines",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// pipelineArgs falls back to the default pipeline file in the working
// directory when the user names none.
func pipelineArgs(args []string) []string {
	if len(args) == 0 {
		return []string{DefaultPipelineFile}
	}
	return args
}
