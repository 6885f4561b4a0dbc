package harness

import (
	"testing"

	"github.com/flarebyte/contest/internal/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleLevelsNoRequires(t *testing.T) {
	cases := map[string]recipe.Case{"a": {}, "b": {}, "c": {}}
	levels, err := scheduleLevels([]string{"a", "b", "c"}, cases)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}}, levels)
}

func TestScheduleLevelsChain(t *testing.T) {
	cases := map[string]recipe.Case{
		"setup":   {},
		"use":     {Requires: []string{"setup"}},
		"cleanup": {Requires: []string{"use"}},
		"other":   {},
	}
	levels, err := scheduleLevels([]string{"setup", "use", "cleanup", "other"}, cases)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, []string{"setup", "other"}, levels[0])
	assert.Equal(t, []string{"use"}, levels[1])
	assert.Equal(t, []string{"cleanup"}, levels[2])
}

func TestScheduleLevelsDiamond(t *testing.T) {
	cases := map[string]recipe.Case{
		"root":  {},
		"left":  {Requires: []string{"root"}},
		"right": {Requires: []string{"root"}},
		"join":  {Requires: []string{"left", "right"}},
	}
	levels, err := scheduleLevels([]string{"root", "left", "right", "join"}, cases)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Equal(t, []string{"root"}, levels[0])
	assert.Equal(t, []string{"left", "right"}, levels[1])
	assert.Equal(t, []string{"join"}, levels[2])
}

func TestScheduleLevelsCycle(t *testing.T) {
	cases := map[string]recipe.Case{
		"a": {Requires: []string{"b"}},
		"b": {Requires: []string{"a"}},
	}
	_, err := scheduleLevels([]string{"a", "b"}, cases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires cycle")
}

func TestScheduleLevelsIgnoresUnselectedRequires(t *testing.T) {
	cases := map[string]recipe.Case{
		"setup": {},
		"use":   {Requires: []string{"setup"}},
	}
	levels, err := scheduleLevels([]string{"use"}, cases)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"use"}}, levels)
}
