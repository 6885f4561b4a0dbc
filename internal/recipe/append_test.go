package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendCreatesRecipe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest_recipe.yaml")

	err := Append(path, "greeting", Recorded{
		Executable: "./main",
		ReturnCode: 0,
		Stdin:      []string{"Alice"},
		Stdout:     "Hello! What is your name?\nWelcome to the world, Alice!\n",
	})
	require.NoError(t, err)

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./main", r.Executable)
	assert.Equal(t, []string{"greeting"}, r.Names())
	c := r.Cases["greeting"]
	require.NotNil(t, c.ReturnCode)
	assert.Equal(t, 0, *c.ReturnCode)
	assert.Equal(t, "Alice\n", string(c.Stdin))
	assert.Contains(t, c.Stdout, "Welcome to the world, Alice!")
	assert.Empty(t, c.Executable)
}

func TestAppendPreservesOrderAndExecutableOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest_recipe.yaml")

	require.NoError(t, Append(path, "first", Recorded{Executable: "./main", Stdout: "a\n"}))
	require.NoError(t, Append(path, "second", Recorded{Executable: "./main", Stdout: "b\n"}))
	require.NoError(t, Append(path, "other", Recorded{Executable: "./other", Stdout: "c\n"}))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "other"}, r.Names())
	assert.Empty(t, r.Cases["second"].Executable)
	assert.Equal(t, "./other", r.Cases["other"].Executable)
}

func TestAppendRejectsDuplicateName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest_recipe.yaml")

	require.NoError(t, Append(path, "greeting", Recorded{Executable: "./main"}))
	err := Append(path, "greeting", Recorded{Executable: "./main"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already a test case")
}

func TestAppendRecordsOFStreams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest_recipe.yaml")

	err := Append(path, "writer", Recorded{
		Executable: "./main",
		OFStreams: []OFStream{
			{BaseFile: "contest_out.txt", TestFile: "out.txt"},
		},
	})
	require.NoError(t, err)

	r, err := Load(path)
	require.NoError(t, err)
	require.Len(t, r.Cases["writer"].OFStreams, 1)
	assert.Equal(t, "contest_out.txt", r.Cases["writer"].OFStreams[0].BaseFile)
	assert.Equal(t, "out.txt", r.Cases["writer"].OFStreams[0].TestFile)
}

func TestAppendMultilineStdoutRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contest_recipe.yaml")
	stdout := "Hello! What is your name?\nWelcome to the world, Alice!\n"

	require.NoError(t, Append(path, "greeting", Recorded{Executable: "./main", Stdout: stdout}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "stdout: |")

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, stdout, r.Cases["greeting"].Stdout)
}
