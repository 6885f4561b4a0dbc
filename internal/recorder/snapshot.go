package recorder

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitfield/script"
)

// snapshotFiles lists all files under dir as slash-separated relative paths.
func snapshotFiles(dir string) (map[string]struct{}, error) {
	files, err := script.FindFiles(dir).Slice()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			continue
		}
		set[filepath.ToSlash(rel)] = struct{}{}
	}
	return set, nil
}

// newFiles returns the sorted relative paths present in after but not before,
// skipping bookkeeping paths and anything the directory's .gitignore covers.
func newFiles(dir string, before, after map[string]struct{}, recipeRel string) []string {
	var out []string
	for rel := range after {
		if _, ok := before[rel]; ok {
			continue
		}
		if rel == recipeRel || isBookkeepingPath(rel) {
			continue
		}
		if matchIgnore(dir, filepath.FromSlash(rel), false) {
			continue
		}
		out = append(out, rel)
	}
	sort.Strings(out)
	return out
}

func isBookkeepingPath(rel string) bool {
	return rel == ".git" ||
		strings.HasPrefix(rel, ".git/") ||
		strings.HasPrefix(rel, "test_output/")
}
