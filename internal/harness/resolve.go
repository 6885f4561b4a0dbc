package harness

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// resolveCommand builds the argument list for a case. A one-token executable
// that exists relative to the recipe dir is made absolute; for a two-token
// executable whose interpreter is on PATH (e.g. "python3 script.py"), the
// script path is made absolute instead. Remaining argv is appended as-is.
func resolveCommand(exe string, argv []string, recipeDir string) []string {
	parts := strings.Fields(exe)
	if len(parts) == 0 {
		return nil
	}

	if p, ok := fileAt(recipeDir, parts[0]); ok {
		parts[0] = p
	} else if len(parts) > 1 {
		if _, err := exec.LookPath(parts[0]); err == nil {
			if p, ok := fileAt(recipeDir, parts[1]); ok {
				parts[1] = p
			}
		}
	}

	return append(parts, argv...)
}

// fileAt reports whether rel names a file under dir, returning its absolute path.
func fileAt(dir, rel string) (string, bool) {
	p := filepath.Join(dir, rel)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", false
	}
	return abs, true
}
