// Package commands provides CLI command handlers for schemagen.
package commands

import (
	"io"
	"log/slog"

	"github.com/erraggy/schemagen/generator"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// FormatBundlePath returns a display-friendly path for the bundle.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatBundlePath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// NewLogger returns a generator logger writing slog text records to w.
// verbose enables debug records; quiet keeps only errors.
func NewLogger(w io.Writer, verbose, quiet bool) generator.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return generator.NewSlogAdapter(slog.New(handler))
}
