package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/schemagen/internal/fileutil"
)

// Writer persists one generated file. rel is slash separated and relative
// to the writer's root.
type Writer interface {
	WriteFile(rel string, content []byte) error
}

// DirWriter writes files below Root, creating parent directories as needed.
type DirWriter struct {
	Root string
}

// WriteFile implements Writer.
func (w DirWriter) WriteFile(rel string, content []byte) error {
	if !filepath.IsLocal(filepath.FromSlash(rel)) {
		return fmt.Errorf("invalid file name %q: must stay inside %s", rel, w.Root)
	}

	path := filepath.Join(w.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirReadableByAll); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

var _ Writer = DirWriter{}
