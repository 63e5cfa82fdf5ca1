package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWritef(t *testing.T) {
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"no args", "Usage: schemagen generate [flags] <file|->\n", nil, "Usage: schemagen generate [flags] <file|->\n"},
		{"path", "wrote %s\n", []any{"unit.go"}, "wrote unit.go\n"},
		{"counts", "%d file(s), %d failure(s)", []any{3, 0}, "3 file(s), 0 failure(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Writef(&buf, tt.format, tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

// errorWriter always fails.
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, errors.New("simulated write error")
}

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(errorWriter{}, "This will fail") })
}

func TestWriteSection(t *testing.T) {
	var buf bytes.Buffer
	WriteSection(&buf, "Examples",
		"schemagen generate -o ./pkg/yaml schema.json",
		"schemagen generate --dry-run --json schema.json",
	)
	want := "\nExamples:\n" +
		"  schemagen generate -o ./pkg/yaml schema.json\n" +
		"  schemagen generate --dry-run --json schema.json\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	WriteSection(&buf, "Notes")
	assert.Equal(t, "\nNotes:\n", buf.String())
}
