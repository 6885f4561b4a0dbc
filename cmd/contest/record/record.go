package record

import (
	"errors"
	"os"

	"github.com/flarebyte/contest/internal/logging"
	"github.com/flarebyte/contest/internal/recorder"
	"github.com/spf13/cobra"
)

var (
	flagName    string
	flagVerbose bool
)

// Cmd represents the `contest record` command.
var Cmd = &cobra.Command{
	Use:           "record <recipe> --name <case> -- <program> [args...]",
	Short:         "Record a program run as a new test case",
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagName == "" {
			return errors.New("missing required flag: --name")
		}
		log := logging.Setup(flagVerbose)

		recipePath := args[0]
		program := args[1:]
		if at := cmd.ArgsLenAtDash(); at >= 0 {
			if at != 1 {
				return errors.New("expected exactly the recipe path before --")
			}
			program = args[at:]
		}
		if len(program) == 0 {
			return errors.New("missing program to record")
		}

		return recorder.Record(cmd.Context(), recipePath, flagName, program, os.Stdin, log)
	},
}

func init() {
	Cmd.Flags().StringVar(&flagName, "name", "", "Name for the recorded case; must be unused in the recipe")
	Cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Verbose output")
}
