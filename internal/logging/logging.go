package logging

import (
	"log/slog"
	"os"
)

// Setup builds the CLI logger: text output on stderr, Info level by default,
// Debug when verbose.
func Setup(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
