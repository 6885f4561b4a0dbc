package recorder

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flarebyte/contest/internal/recipe"
)

// Record runs the program interactively and appends the captured run to the
// recipe at recipePath under caseName. Files the program created are moved to
// contest_-prefixed reference copies and recorded as ofstream pairs.
func Record(ctx context.Context, recipePath, caseName string, args []string, in io.Reader, log *slog.Logger) error {
	recipeDir := filepath.Dir(recipePath)
	recipeRel, err := filepath.Rel(recipeDir, recipePath)
	if err != nil {
		recipeRel = filepath.Base(recipePath)
	}

	before, err := snapshotFiles(recipeDir)
	if err != nil {
		return err
	}

	log.Debug("Starting recording", "args", args)
	captured, err := runInteractive(ctx, recipeDir, args, in)
	if err != nil {
		return err
	}
	log.Debug("Recording complete... writing to recipe...")

	after, err := snapshotFiles(recipeDir)
	if err != nil {
		return err
	}

	ofstreams, err := moveToBaseFiles(recipeDir, newFiles(recipeDir, before, after, filepath.ToSlash(recipeRel)))
	if err != nil {
		return err
	}

	rec := recipe.Recorded{
		Executable: args[0],
		ReturnCode: captured.ReturnCode,
		Argv:       args[1:],
		Stdin:      captured.Stdin,
		Stdout:     captured.Stdout,
		Stderr:     captured.Stderr,
		OFStreams:  ofstreams,
	}
	return recipe.Append(recipePath, caseName, rec)
}

// moveToBaseFiles renames each newly created file F to contest_F alongside it
// and returns the matching ofstream pairs.
func moveToBaseFiles(recipeDir string, files []string) ([]recipe.OFStream, error) {
	var out []recipe.OFStream
	for _, rel := range files {
		dirName, fileName := filepath.Split(filepath.FromSlash(rel))
		baseRel := filepath.Join(dirName, "contest_"+fileName)
		if err := os.Rename(filepath.Join(recipeDir, filepath.FromSlash(rel)), filepath.Join(recipeDir, baseRel)); err != nil {
			return nil, err
		}
		out = append(out, recipe.OFStream{
			BaseFile: filepath.ToSlash(baseRel),
			TestFile: rel,
		})
	}
	return out, nil
}
