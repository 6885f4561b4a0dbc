package root

import (
	"github.com/flarebyte/contest/cmd/contest/record"
	"github.com/flarebyte/contest/cmd/contest/run"
	"github.com/flarebyte/contest/cmd/contest/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for contest.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contest",
		Short: "CLI: a recipe-driven test harness for console programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(run.Cmd)
	cmd.AddCommand(record.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
