package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
	"mvdan.cc/gofumpt/format"

	"github.com/erraggy/schemagen/internal/fileutil"
)

// PostProcessor runs once over the output directory after every file has
// been written. files are the written paths relative to dir.
type PostProcessor interface {
	Process(dir string, files []string) error
}

// GoFormatter fixes imports and formats generated files in place.
//
// Formatting is best effort: a file the formatter rejects is left as it was
// written and reported through the logger.
type GoFormatter struct {
	// Gofumpt enables a stricter gofumpt pass after goimports
	Gofumpt bool
	// Logger receives one warning per file that could not be formatted
	Logger Logger
}

// Format returns the formatted form of src. name is only used in messages.
func (f *GoFormatter) Format(name string, src []byte) ([]byte, error) {
	out, err := imports.Process(name, src, nil)
	if err != nil {
		return nil, err
	}
	if f.Gofumpt {
		out, err = format.Source(out, format.Options{})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Process implements PostProcessor. It returns an error only when a file
// cannot be read back or rewritten.
func (f *GoFormatter) Process(dir string, files []string) error {
	log := f.Logger
	if log == nil {
		log = NopLogger{}
	}

	var errs []error
	for _, rel := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		src, err := os.ReadFile(path) //nolint:gosec // G304: path was written by this run
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s: %w", rel, err))
			continue
		}

		out, err := f.Format(rel, src)
		if err != nil {
			log.Warn("leaving file unformatted", "file", rel, "error", err)
			continue
		}
		if bytes.Equal(out, src) {
			continue
		}
		if err := os.WriteFile(path, out, fileutil.ReadableByAll); err != nil {
			errs = append(errs, fmt.Errorf("failed to rewrite %s: %w", rel, err))
			continue
		}
		log.Debug("formatted file", "file", rel)
	}
	return errors.Join(errs...)
}

var _ PostProcessor = (*GoFormatter)(nil)
