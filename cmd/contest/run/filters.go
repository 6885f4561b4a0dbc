package run

import (
	"fmt"
	"regexp"
)

// filterCases keeps names matching any include pattern (all names when no
// includes are given) and drops names matching any exclude pattern. Excludes
// win over includes.
func filterCases(names, includes, excludes []string) ([]string, error) {
	inc, err := compilePatterns(includes)
	if err != nil {
		return nil, err
	}
	exc, err := compilePatterns(excludes)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if matchAny(exc, name) {
			continue
		}
		if len(inc) == 0 || matchAny(inc, name) {
			out = append(out, name)
		}
	}
	return out, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid filter %q: %v", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func matchAny(patterns []*regexp.Regexp, name string) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
