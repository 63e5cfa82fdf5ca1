// Package cliutil provides output helpers for the schemagen command line.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteSection writes a usage section: a blank line, "title:", then each line
// indented by two spaces.
func WriteSection(w io.Writer, title string, lines ...string) {
	Writef(w, "\n%s:\n", title)
	for _, line := range lines {
		Writef(w, "  %s\n", line)
	}
}
