package harness

import (
	"fmt"
	"os"
	"path/filepath"
)

// runChecks executes the case's Lua check scripts against the captured run.
// Each script sees the globals case, argv, exit_code, stdout and stderr, and
// passes by returning true. A returned string becomes the failure message.
func runChecks(caseName string, scripts []string, recipeDir string, argv []string, res execResult) []string {
	var failures []string
	for _, script := range scripts {
		code, err := os.ReadFile(filepath.Join(recipeDir, filepath.FromSlash(script)))
		if err != nil {
			failures = append(failures, fmt.Sprintf("check %s: %v", script, err))
			continue
		}
		globals := map[string]any{
			"case":      caseName,
			"argv":      argv,
			"exit_code": res.exitCode,
			"stdout":    res.stdout,
			"stderr":    res.stderr,
		}
		ret, violation, err := runLuaCheckScript(script, caseName, globals, string(code))
		if err != nil {
			failures = append(failures, fmt.Sprintf("check %s: %v", script, err))
			continue
		}
		if violation != "" {
			failures = append(failures, fmt.Sprintf("check %s: %s", script, violation))
			continue
		}
		switch v := ret.(type) {
		case bool:
			if !v {
				failures = append(failures, fmt.Sprintf("check %s failed", script))
			}
		case string:
			failures = append(failures, fmt.Sprintf("check %s: %s", script, v))
		default:
			failures = append(failures, fmt.Sprintf("check %s: expected boolean return", script))
		}
	}
	return failures
}
