package run

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flarebyte/contest/internal/harness"
	"github.com/flarebyte/contest/internal/logging"
	"github.com/flarebyte/contest/internal/recipe"
	"github.com/spf13/cobra"
)

var (
	flagFilters        []string
	flagExcludeFilters []string
	flagWorkers        int
	flagProgress       bool
	flagVerbose        bool
)

// Cmd represents the `contest run` command.
var Cmd = &cobra.Command{
	Use:           "run <recipe>",
	Short:         "Run the test cases of a recipe",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.Setup(flagVerbose)
		recipePath := args[0]

		log.Info("Loading " + recipePath)
		rec, err := recipe.Load(recipePath)
		if err != nil {
			return err
		}

		all := rec.Names()
		names, err := filterCases(all, flagFilters, flagExcludeFilters)
		if err != nil {
			return err
		}
		log.Info(fmt.Sprintf("Found %d tests", len(all)))
		log.Info(fmt.Sprintf("Running %d tests", len(names)))

		reporter := newProgressReporter(flagProgress, os.Stderr, len(names))
		reporter.start()
		defer reporter.stop()

		runner := &harness.Runner{
			Workers:    flagWorkers,
			Log:        log,
			OnCaseDone: reporter.update,
		}
		results, err := runner.Run(cmd.Context(), rec, filepath.Dir(recipePath), names)
		reporter.stop()
		if err != nil {
			return err
		}

		passed := 0
		for _, res := range results {
			if res.Passed() {
				passed++
			}
		}
		fmt.Fprintf(os.Stdout, "%d/%d tests passed!\n", passed, len(results))
		return evaluateRunExit(results)
	},
}

func init() {
	Cmd.Flags().StringArrayVar(&flagFilters, "filter", nil, "Regex pattern for case names to include")
	Cmd.Flags().StringArrayVar(&flagExcludeFilters, "exclude-filter", nil, "Regex pattern for case names to exclude")
	Cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel case workers (default: number of CPUs)")
	Cmd.Flags().BoolVar(&flagProgress, "progress", false, "Emit periodic progress lines on stderr")
	Cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Verbose output")
}
