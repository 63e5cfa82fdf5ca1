package generator

import (
	"bytes"
	"embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/erraggy/schemagen/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// structTemplate is the entry template for one generated file.
const structTemplate = "struct.go.tmpl"

// Renderer turns a record into Go source text. Implementations must be
// deterministic and free of side effects.
type Renderer interface {
	Render(rec *Record) ([]byte, error)
}

// TemplateRenderer renders records with the embedded text/template set.
// The output is valid but unformatted Go; imports are left to the
// post-processor.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses the embedded templates.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").
		Funcs(templateFuncs()).
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render implements Renderer.
func (r *TemplateRenderer) Render(rec *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, structTemplate, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ Renderer = (*TemplateRenderer)(nil)

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"quote":    strconv.Quote,
		"comment":  formatComment,
		"typeName": naming.TypeName,
	}
}

// formatComment turns free text into Go line comments. Lines that already
// start with "//" are kept as they are.
func formatComment(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		switch {
		case strings.HasPrefix(line, "//"):
			lines[i] = line
		case line == "":
			lines[i] = "//"
		default:
			lines[i] = "// " + line
		}
	}
	return strings.Join(lines, "\n")
}
