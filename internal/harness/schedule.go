package harness

import (
	"fmt"

	"github.com/flarebyte/contest/internal/recipe"
	"github.com/gammazero/toposort"
)

// scheduleLevels groups the selected cases into dependency levels: every case
// lands one level after its deepest prerequisite. Requirements pointing at
// cases outside the selection do not constrain the order. A cycle is fatal.
func scheduleLevels(names []string, cases map[string]recipe.Case) ([][]string, error) {
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}

	edges := make([]toposort.Edge, 0)
	prereqs := make(map[string][]string)
	for _, n := range names {
		for _, req := range cases[n].Requires {
			if !selected[req] {
				continue
			}
			edges = append(edges, toposort.Edge{req, n})
			prereqs[n] = append(prereqs[n], req)
		}
	}

	if len(edges) == 0 {
		return [][]string{names}, nil
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("requires cycle: %v", err)
	}

	depth := make(map[string]int, len(names))
	maxDepth := 0
	for _, node := range sorted {
		name := node.(string)
		d := 0
		for _, req := range prereqs[name] {
			if depth[req]+1 > d {
				d = depth[req] + 1
			}
		}
		depth[name] = d
		if d > maxDepth {
			maxDepth = d
		}
	}

	levels := make([][]string, maxDepth+1)
	for _, n := range names {
		d := depth[n]
		levels[d] = append(levels[d], n)
	}
	return levels, nil
}
