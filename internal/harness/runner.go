package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flarebyte/contest/internal/recipe"
)

// Result is the outcome of one case.
type Result struct {
	Name     string
	Skipped  bool
	Failures []string
}

// Passed reports whether the case ran and found no failures.
func (r Result) Passed() bool {
	return !r.Skipped && len(r.Failures) == 0
}

// Runner executes recipe cases.
type Runner struct {
	// Workers caps per-level parallelism; 0 means NumCPU.
	Workers int
	// Log receives per-case progress; nil discards.
	Log *slog.Logger
	// OnCaseDone, when set, is called after every finished case with the
	// running totals.
	OnCaseDone func(done, total, failures int)
}

func (r *Runner) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run executes the named cases of the recipe, honoring requires ordering.
// Results come back in the order of names. The error covers harness problems
// (cycles, unwritable case dirs); case failures live in the results.
func (r *Runner) Run(ctx context.Context, rec *recipe.Recipe, recipeDir string, names []string) ([]Result, error) {
	levels, err := scheduleLevels(names, rec.Cases)
	if err != nil {
		return nil, err
	}

	workers := workerCount(r.Workers)
	outcomes := make(map[string]Result, len(names))
	failed := make(map[string]bool)
	done, failures := 0, 0

	for _, level := range levels {
		results := runIndexedParallel(len(level), workers, func(i int) Result {
			name := level[i]
			if req, ok := failedPrereq(rec.Cases[name].Requires, failed); ok {
				r.log().With("case", name).Info("Skipped", "requires", req)
				return Result{Name: name, Skipped: true, Failures: []string{fmt.Sprintf("skipped: required case %s failed", req)}}
			}
			return r.runCase(ctx, rec, recipeDir, name)
		})
		for _, res := range results {
			outcomes[res.Name] = res
			done++
			if !res.Passed() {
				failed[res.Name] = true
				failures++
			}
			if r.OnCaseDone != nil {
				r.OnCaseDone(done, len(names), failures)
			}
		}
	}

	out := make([]Result, 0, len(names))
	for _, n := range names {
		out = append(out, outcomes[n])
	}
	return out, nil
}

func failedPrereq(requires []string, failed map[string]bool) (string, bool) {
	for _, req := range requires {
		if failed[req] {
			return req, true
		}
	}
	return "", false
}

// runCase executes a single case in its own directory underneath test_output.
func (r *Runner) runCase(ctx context.Context, rec *recipe.Recipe, recipeDir, name string) Result {
	log := r.log().With("case", name)
	log.Info("Starting test")

	c := rec.Cases[name]
	home := filepath.Join(recipeDir, "test_output", name)
	if err := os.MkdirAll(home, 0o755); err != nil {
		return Result{Name: name, Failures: []string{fmt.Sprintf("cannot create case dir: %v", err)}}
	}

	exe := c.Executable
	if exe == "" {
		exe = rec.Executable
	}
	args := resolveCommand(exe, c.Argv, recipeDir)
	if len(args) == 0 {
		return Result{Name: name, Failures: []string{"empty executable"}}
	}
	log.Debug("Running", "args", args, "home", home)

	res := runProgram(ctx, execSpec{
		args:      args,
		dir:       home,
		stdin:     string(c.Stdin),
		timeoutMs: c.TimeoutMs,
	})

	var failures []string
	if res.timedOut {
		failures = append(failures, "your program took too long to run! Perhaps you have an infinite loop?")
	}
	if res.errorMsg != "" {
		failures = append(failures, res.errorMsg)
	}

	if ok, msg := compareStreams(c.Stdout, res.stdout); !ok {
		log.Debug("stdout mismatch")
		failures = append(failures, "stdout "+msg)
	}
	if ok, msg := compareStreams(c.Stderr, res.stderr); !ok {
		log.Debug("stderr mismatch")
		failures = append(failures, "stderr "+msg)
	}
	if c.ReturnCode != nil && *c.ReturnCode != res.exitCode {
		failures = append(failures, fmt.Sprintf("FAILURE:\n         Expected return code %d, received %d", *c.ReturnCode, res.exitCode))
	}

	failures = append(failures, compareOFStreams(c.OFStreams, home, recipeDir)...)
	failures = append(failures, runChecks(name, c.Checks, recipeDir, args[1:], res)...)

	if len(failures) == 0 {
		log.Info("OK!")
	} else {
		for _, f := range failures {
			log.Info(f)
		}
	}
	return Result{Name: name, Failures: failures}
}

// compareOFStreams checks files the program wrote against their reference copies.
func compareOFStreams(ofs []recipe.OFStream, home, recipeDir string) []string {
	var failures []string
	for _, of := range ofs {
		if of.TestFile == "" || of.BaseFile == "" {
			continue
		}
		got, err := os.ReadFile(filepath.Join(home, filepath.FromSlash(of.TestFile)))
		if err != nil {
			failures = append(failures, fmt.Sprintf("ofstream %s: %v", of.TestFile, err))
			continue
		}
		want, err := os.ReadFile(filepath.Join(recipeDir, filepath.FromSlash(of.BaseFile)))
		if err != nil {
			failures = append(failures, fmt.Sprintf("ofstream %s: %v", of.BaseFile, err))
			continue
		}
		if ok, msg := compareStreams(string(want), string(got)); !ok {
			failures = append(failures, of.BaseFile+" "+msg)
		}
	}
	return failures
}
