package run

import (
	"fmt"

	"github.com/flarebyte/contest/internal/harness"
)

const (
	exitCodeSuccess  = 0
	exitCodeExecErr  = 1
	exitCodeCaseFail = 2
)

type runExitError struct {
	code int
	msg  string
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }

func countResults(results []harness.Result) (passed int, failed int) {
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return
}

// evaluateRunExit maps case outcomes to the process exit code: nil for an
// all-green run, exit code 2 when any case failed or was skipped.
func evaluateRunExit(results []harness.Result) error {
	_, failed := countResults(results)
	if failed == 0 {
		return nil
	}
	return runExitError{code: exitCodeCaseFail, msg: fmt.Sprintf("%d test case(s) failed", failed)}
}
