package generator

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/erraggy/schemagen/generrors"
	"github.com/erraggy/schemagen/internal/naming"
	"github.com/erraggy/schemagen/schema"
)

// goExt is the extension of generated files.
const goExt = ".go"

// outputPath derives the output path of def from its x-file annotation by
// replacing the source extension with ".go". The second result is false when
// the definition has no annotation and the path was derived from its name.
func outputPath(def *schema.Definition) (string, bool, error) {
	var file string
	if def.Schema != nil {
		file = def.Schema.File
	}

	annotated := file != ""
	if !annotated {
		file = naming.ToSnakeCase(def.Name)
		if file == "" {
			return "", false, &generrors.SchemaShapeError{
				Definition: def.Name,
				Path:       "x-file",
				Message:    "cannot derive an output file name",
			}
		}
	}

	file = filepath.ToSlash(file)
	if !filepath.IsLocal(filepath.FromSlash(file)) {
		return "", annotated, &generrors.SchemaShapeError{
			Definition: def.Name,
			Path:       "x-file",
			Message:    "output path " + file + " is not inside the output directory",
		}
	}

	file = path.Clean(file)
	file = strings.TrimSuffix(file, path.Ext(file)) + goExt
	return file, annotated, nil
}

// plannedFile pairs a definition with its output path.
type plannedFile struct {
	def  *schema.Definition
	path string
}

// checkCollisions returns an OutputCollisionError for the first output path
// claimed by more than one definition, in bundle order. Paths that differ
// only in case collide too.
func checkCollisions(plan []plannedFile) error {
	owners := make(map[string][]string, len(plan))
	first := make(map[string]string, len(plan))
	var order []string
	for _, p := range plan {
		key := strings.ToLower(p.path)
		if _, seen := owners[key]; !seen {
			order = append(order, key)
			first[key] = p.path
		}
		owners[key] = append(owners[key], p.def.Name)
	}
	for _, key := range order {
		if len(owners[key]) > 1 {
			return &generrors.OutputCollisionError{Path: first[key], Definitions: owners[key]}
		}
	}
	return nil
}
