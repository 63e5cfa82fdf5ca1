package generator

import (
	"errors"
	"fmt"
	"go/token"
	"time"

	"github.com/erraggy/schemagen/generrors"
	"github.com/erraggy/schemagen/schema"
	"github.com/erraggy/schemagen/typemap"
	"github.com/erraggy/schemagen/variant"
)

// DefaultPackageName is the package clause used when none is configured.
const DefaultPackageName = "yaml"

// Generator turns a schema bundle into one Go file per definition.
//
// A Generator is not safe for concurrent use by multiple goroutines while
// its fields are being modified; Generate itself does not mutate it.
type Generator struct {
	// PackageName is the package clause of every generated file.
	// Default: "yaml"
	PackageName string

	// OutputDir is the directory generated files are written to. Required
	// unless Writer is set or DryRun is enabled.
	OutputDir string

	// Header is placed above the package clause of every file, typically a
	// license. Lines not starting with "//" are turned into line comments.
	Header string

	// RefPrefix is the pointer prefix of local definition references.
	// Default: "#/definitions/"
	RefPrefix string

	// Strict turns bundle-wide problems such as dangling references into
	// errors that fail the run.
	Strict bool

	// DryRun renders every file without writing or post-processing.
	DryRun bool

	// Gofumpt enables the stricter gofumpt pass of the default formatter.
	Gofumpt bool

	// Renderer renders records. Default: the embedded template renderer.
	Renderer Renderer

	// Writer persists rendered files. Default: a DirWriter rooted at OutputDir.
	Writer Writer

	// PostProcessor runs over the output directory after all writes.
	// Default: a GoFormatter when OutputDir is set.
	PostProcessor PostProcessor

	// Logger receives progress and failures. Default: NopLogger.
	Logger Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		PackageName: DefaultPackageName,
		RefPrefix:   schema.DefaultRefPrefix,
	}
}

// GenerateFile parses the bundle at path and generates code from it.
func (g *Generator) GenerateFile(path string) (*GenerateResult, error) {
	b, err := schema.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return g.Generate(b)
}

// run holds the collaborators resolved for one Generate call.
type run struct {
	writer  Writer
	post    PostProcessor
	render  Renderer
	log     Logger
	builder *recordBuilder
	refs    schema.RefConvention
}

// Generate walks the bundle's definitions in order and writes one file per
// definition.
//
// The returned error is non-nil only for problems that stop the whole run:
// invalid configuration and output paths claimed by more than one
// definition. A definition that cannot be mapped, rendered or written is
// recorded in the result's Failures and Issues and the walk continues with
// the next one; check GenerateResult.Failed.
func (g *Generator) Generate(b *schema.Bundle) (*GenerateResult, error) {
	start := time.Now()
	if b == nil {
		return nil, &generrors.ConfigError{Option: "bundle", Message: "no bundle to generate from"}
	}

	r, err := g.prepare()
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		PackageName: r.builder.pkg,
		OutputDir:   g.OutputDir,
		SourcePath:  b.SourcePath,
		Definitions: b.Len(),
		DryRun:      g.DryRun,
		Strict:      g.Strict,
	}
	r.log.Info("generating", "definitions", b.Len(), "source", b.SourcePath)

	g.checkRefs(b, r, result)

	var plan []plannedFile
	for _, def := range b.Definitions {
		if def.Err != nil {
			g.fail(r, result, def.Name, &generrors.SchemaShapeError{
				Definition: def.Name,
				Message:    "definition cannot be decoded",
				Cause:      def.Err,
			})
			continue
		}
		path, annotated, err := outputPath(def)
		if err != nil {
			g.fail(r, result, def.Name, err)
			continue
		}
		if !annotated {
			result.addIssue(SeverityInfo, def.Name, "x-file", "no x-file annotation, writing "+path)
		}
		plan = append(plan, plannedFile{def: def, path: path})
	}
	if err := checkCollisions(plan); err != nil {
		r.log.Error("output collision", "error", err)
		return nil, err
	}

	var written []string
	for _, p := range plan {
		file, err := g.generateOne(r, p)
		if err != nil {
			g.fail(r, result, p.def.Name, err)
			continue
		}
		result.Files = append(result.Files, *file)
		if !g.DryRun {
			written = append(written, file.Path)
		}
	}

	if r.post != nil && len(written) > 0 {
		if err := r.post.Process(g.OutputDir, written); err != nil {
			r.log.Warn("post-processing failed", "error", err)
			result.addIssue(SeverityWarning, "", "", fmt.Sprintf("post-processing failed: %v", err))
		}
	}

	result.GenerateTime = time.Since(start)
	r.log.Info("generation finished",
		"files", len(result.Files),
		"failures", len(result.Failures),
		"elapsed", result.GenerateTime)
	return result, nil
}

// prepare validates the configuration and resolves default collaborators.
func (g *Generator) prepare() (*run, error) {
	pkg := g.PackageName
	if pkg == "" {
		pkg = DefaultPackageName
	}
	if !token.IsIdentifier(pkg) {
		return nil, &generrors.ConfigError{Option: "package", Value: pkg, Message: "not a valid Go package name"}
	}

	r := &run{
		writer: g.Writer,
		post:   g.PostProcessor,
		render: g.Renderer,
		log:    g.Logger,
		refs:   schema.RefConvention{Prefix: g.RefPrefix},
	}
	if r.refs.Prefix == "" {
		r.refs = schema.DefaultRefConvention()
	}
	if r.log == nil {
		r.log = NopLogger{}
	}

	if r.writer == nil && !g.DryRun {
		if g.OutputDir == "" {
			return nil, &generrors.ConfigError{Option: "output", Message: "an output directory is required"}
		}
		r.writer = DirWriter{Root: g.OutputDir}
	}
	if g.DryRun {
		r.writer = nil
		r.post = nil
	} else if r.post == nil && g.OutputDir != "" {
		r.post = &GoFormatter{Gofumpt: g.Gofumpt, Logger: r.log}
	}
	if r.post != nil && g.OutputDir == "" {
		return nil, &generrors.ConfigError{Option: "output", Message: "a post-processor needs an output directory"}
	}

	if r.render == nil {
		tr, err := NewTemplateRenderer()
		if err != nil {
			return nil, fmt.Errorf("generator: failed to load templates: %w", err)
		}
		r.render = tr
	}

	conv := variant.DefaultConvention()
	conv.Refs = r.refs
	r.builder = &recordBuilder{
		mapper:    typemap.New(r.refs),
		extractor: variant.New(conv),
		pkg:       pkg,
		header:    g.Header,
		log:       r.log,
	}
	return r, nil
}

// checkRefs records every $ref that does not resolve to a definition.
func (g *Generator) checkRefs(b *schema.Bundle, r *run, result *GenerateResult) {
	sev := SeverityWarning
	if g.Strict {
		sev = SeverityError
	}
	for _, d := range schema.CheckRefs(b, r.refs) {
		msg := "reference target is not a definition of the bundle"
		if !d.Local {
			msg = "reference is outside " + r.refs.Prefix
		}
		r.log.Warn("dangling reference", "ref", d.Ref)
		result.addIssue(sev, "", d.Ref, msg)
	}
}

// generateOne builds, renders and writes the file of one definition.
func (g *Generator) generateOne(r *run, p plannedFile) (*GeneratedFile, error) {
	log := r.log.With("definition", p.def.Name)

	rec, err := r.builder.build(p.def, p.path)
	if err != nil {
		return nil, err
	}

	src, err := r.render.Render(rec)
	if err != nil {
		return nil, &generrors.RenderError{Definition: p.def.Name, Cause: err}
	}

	if r.writer != nil {
		if err := r.writer.WriteFile(p.path, src); err != nil {
			return nil, &generrors.WriteError{Definition: p.def.Name, Path: p.path, Cause: err}
		}
		log.Info("wrote file", "path", p.path, "type", rec.TypeName)
	} else {
		log.Info("rendered file", "path", p.path, "type", rec.TypeName)
	}

	file := &GeneratedFile{
		Definition: p.def.Name,
		TypeName:   rec.TypeName,
		Path:       p.path,
		Size:       len(src),
		Fields:     len(rec.Fields),
		Content:    src,
		Record:     rec,
	}
	for _, v := range rec.Variants {
		file.Variants = append(file.Variants, v.Tag)
	}
	return file, nil
}

// fail records a definition that produced no file.
func (g *Generator) fail(r *run, result *GenerateResult, def string, err error) {
	r.log.Error("definition failed", "definition", def, "error", err)
	result.Failures = append(result.Failures, Failure{Definition: def, Err: err})

	path := ""
	var shapeErr *generrors.SchemaShapeError
	if errors.As(err, &shapeErr) {
		path = joinPath(shapeErr.Property, shapeErr.Path)
	}
	result.addIssue(SeverityCritical, def, path, err.Error())
}

func joinPath(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "." + b
	}
}
