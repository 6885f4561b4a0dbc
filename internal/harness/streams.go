package harness

import (
	"fmt"
	"regexp"
)

var lineRuns = regexp.MustCompile(`\n+`)

// compareStreams compares expected and received stream content line by line,
// splitting on runs of newlines. Lines beyond the shorter side are not
// compared. On the first mismatch it returns a failure message pointing at
// the offending column.
func compareStreams(expected, received string) (bool, string) {
	el := lineRuns.Split(expected, -1)
	rl := lineRuns.Split(received, -1)
	n := len(el)
	if len(rl) < n {
		n = len(rl)
	}
	for i := 0; i < n; i++ {
		if el[i] == rl[i] {
			continue
		}
		col := mismatchColumn(el[i], rl[i])
		locator := spaces(col) + "^ ERROR"
		msg := fmt.Sprintf("FAILURE:\n        Expected \"%s\"\n        Received \"%s\"\n                  %s", el[i], rl[i], locator)
		return false, msg
	}
	return true, ""
}

// mismatchColumn finds the first differing column by scanning 5-character chunks.
func mismatchColumn(e, r string) int {
	i := 0
	for {
		s1 := sliceAt(e, i, 5)
		s2 := sliceAt(r, i, 5)
		if s1 != s2 {
			limit := len(s1)
			if len(s2) < limit {
				limit = len(s2)
			}
			off := limit
			for idx := 0; idx < limit; idx++ {
				if s1[idx] != s2[idx] {
					off = idx
					break
				}
			}
			return i + off
		}
		i += 5
	}
}

func sliceAt(s string, start, n int) string {
	if start >= len(s) {
		return ""
	}
	end := start + n
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
