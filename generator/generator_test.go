package generator

import (
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagen/generrors"
	"github.com/erraggy/schemagen/internal/testutil"
	"github.com/erraggy/schemagen/schema"
)

// memWriter records writes in memory.
type memWriter struct {
	files map[string][]byte
	order []string
	fail  map[string]bool
}

func newMemWriter() *memWriter {
	return &memWriter{files: map[string][]byte{}, fail: map[string]bool{}}
}

func (w *memWriter) WriteFile(rel string, content []byte) error {
	if w.fail[rel] {
		return errors.New("disk full")
	}
	w.files[rel] = content
	w.order = append(w.order, rel)
	return nil
}

// failingRenderer fails for one definition and delegates otherwise.
type failingRenderer struct {
	next Renderer
	def  string
}

func (r failingRenderer) Render(rec *Record) ([]byte, error) {
	if rec.Definition == r.def {
		return nil, errors.New("template exploded")
	}
	return r.next.Render(rec)
}

func mustParse(t *testing.T, src string) *schema.Bundle {
	t.Helper()
	b, err := schema.ParseBytes([]byte(src))
	require.NoError(t, err)
	return b
}

func mustRenderer(t *testing.T) Renderer {
	t.Helper()
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	return r
}

func TestGenerate_ActionScenario(t *testing.T) {
	w := newMemWriter()
	result, err := GenerateWithOptions(
		WithBytes([]byte(testutil.ActionBundle)),
		WithWriter(w),
	)
	require.NoError(t, err)
	require.False(t, result.Failed())

	assert.Equal(t, []string{"action.go", "step.go"}, w.order)
	assert.Equal(t, "// Code generated by schemagen; DO NOT EDIT.\n"+
		"\n"+
		"package yaml\n"+
		"\n"+
		"type Action struct {\n"+
		"\tName string `json:\"name,omitempty\"`\n"+
		"\tSteps []*Step `json:\"steps,omitempty\"`\n"+
		"}\n", string(w.files["action.go"]))

	rec := result.GetFile("Action").Record
	require.NotNil(t, rec)
	assert.Equal(t, "Action", rec.TypeName)
	assert.Empty(t, rec.Description)
	assert.False(t, rec.IsPolymorphic())
	assert.Empty(t, rec.Variants)
}

func TestGenerate_MoveAttackScenario(t *testing.T) {
	w := newMemWriter()
	result, err := GenerateWithOptions(WithBytes([]byte(testutil.UnitBundle)), WithWriter(w))
	require.NoError(t, err)
	require.False(t, result.Failed())

	unit := result.GetFile("Unit")
	require.NotNil(t, unit)
	assert.Equal(t, []string{"move", "attack"}, unit.Variants)

	rec := unit.Record
	require.Len(t, rec.Variants, 2)
	assert.Equal(t, "move", rec.Variants[0].Tag)
	assert.Equal(t, "Move", rec.Variants[0].Type)
	assert.Equal(t, "attack", rec.Variants[1].Tag)
	assert.Equal(t, "Attack", rec.Variants[1].Type)
	assert.Equal(t, "Type", rec.DiscriminatorField())
	assert.Equal(t, "Spec", rec.PayloadField())
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "type", rec.Fields[0].JSONName)
	assert.Equal(t, "spec", rec.Fields[1].JSONName)
	assert.Equal(t, "any", rec.Field("spec").Type.GoType())

	src := string(w.files["unit.go"])
	assert.Contains(t, src, "func (v *Unit) UnmarshalJSON(data []byte) error {")
	assert.Contains(t, src, "case \"move\":\n\t\tv.Spec = new(Move)")
	assert.Contains(t, src, "case \"attack\":\n\t\tv.Spec = new(Attack)")
	assert.Contains(t, src, `return fmt.Errorf("unknown type %q", v.Type)`)

	for _, f := range result.Files {
		_, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, parser.AllErrors)
		assert.NoError(t, err, "rendered %s must be valid Go", f.Path)
	}
	assert.Empty(t, result.GetFile("Move").Variants)
}

func TestGenerate_UnmarshalLocalsDoNotShadowTypes(t *testing.T) {
	const bundle = `{"definitions": {
  "S": {
    "x-file": "s.yaml",
    "properties": {"type": {"enum": ["t"]}},
    "oneOf": [{"allOf": [
      {"properties": {"type": {"const": "t"}}},
      {"properties": {"spec": {"$ref": "#/definitions/T"}}}
    ]}]
  },
  "T": {"x-file": "t.yaml", "properties": {"n": {"type": "integer"}}}
}}`
	result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithDryRun(true))
	require.NoError(t, err)
	require.False(t, result.Failed())

	src := string(result.GetFile("S").Content)
	assert.Contains(t, src, "type plain S\n")
	assert.Contains(t, src, "obj := &wire{plain: (*plain)(v)}")
	assert.Contains(t, src, "v.Spec = new(T)")
	assert.NotContains(t, src, "type S S")

	_, err = parser.ParseFile(token.NewFileSet(), "s.go", src, parser.AllErrors)
	assert.NoError(t, err)
}

func TestGenerate_CollisionWritesNothing(t *testing.T) {
	const bundle = `{
  "definitions": {
    "Foo": {"x-file": "foo.yaml", "properties": {"a": {"type": "string"}}},
    "Other": {"x-file": "other.yaml", "properties": {"b": {"type": "string"}}},
    "Bar": {"x-file": "foo.yaml", "properties": {"c": {"type": "string"}}}
  }
}`
	w := newMemWriter()
	result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithWriter(w))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, generrors.ErrOutputCollision))

	var collision *generrors.OutputCollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "foo.go", collision.Path)
	assert.Equal(t, []string{"Foo", "Bar"}, collision.Definitions)
	assert.Empty(t, w.files)
}

func TestGenerate_PreservesFieldOrder(t *testing.T) {
	const bundle = `{
  "definitions": {
    "Z": {"x-file": "z.yaml", "properties": {
      "zeta": {"type": "string"},
      "alpha": {"type": "integer"},
      "mid": {"type": "boolean"}
    }}
  }
}`
	result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithDryRun(true))
	require.NoError(t, err)

	var names []string
	for _, f := range result.GetFile("Z").Record.Fields {
		names = append(names, f.JSONName)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestGenerate_RecordsDependOnlyOnShape(t *testing.T) {
	const bundle = `{
  "definitions": {
    "First": {"x-file": "first.yaml", "properties": {
      "name": {"type": "string"},
      "tags": {"type": "array", "items": {"type": "string"}}
    }},
    "Second": {"x-file": "second.yaml", "properties": {
      "name": {"type": "string"},
      "tags": {"type": "array", "items": {"type": "string"}}
    }}
  }
}`
	result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithDryRun(true))
	require.NoError(t, err)

	first := *result.GetFile("First").Record
	second := *result.GetFile("Second").Record
	assert.NotEqual(t, first.TypeName, second.TypeName)
	assert.NotEqual(t, first.Path, second.Path)

	second.Definition, second.TypeName, second.Path = first.Definition, first.TypeName, first.Path
	assert.Equal(t, first, second)
}

func TestGenerate_IdempotentOutput(t *testing.T) {
	for _, gofumpt := range []bool{false, true} {
		dirs := []string{t.TempDir(), t.TempDir()}
		for _, dir := range dirs {
			result, err := GenerateWithOptions(
				WithBytes([]byte(testutil.UnitBundle)),
				WithOutputDir(dir),
				WithGofumpt(gofumpt),
			)
			require.NoError(t, err)
			require.False(t, result.Failed())
		}

		for _, name := range []string{"unit.go", "move.go", "attack.go"} {
			a, err := os.ReadFile(filepath.Join(dirs[0], name))
			require.NoError(t, err)
			b, err := os.ReadFile(filepath.Join(dirs[1], name))
			require.NoError(t, err)
			assert.Equal(t, a, b, "%s differs between runs (gofumpt=%v)", name, gofumpt)
		}
	}
}

func TestGenerate_WritesFormattedFiles(t *testing.T) {
	dir := t.TempDir()
	result, err := GenerateWithOptions(
		WithBytes([]byte(testutil.ActionBundle)),
		WithOutputDir(dir),
		WithHeader("Copyright 2026 Example Authors\nSPDX-License-Identifier: Apache-2.0"),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"action.go", "step.go"}, result.Paths())

	data, err := os.ReadFile(filepath.Join(dir, "step.go"))
	require.NoError(t, err)
	src := string(data)
	assert.Contains(t, src, "// Copyright 2026 Example Authors\n// SPDX-License-Identifier: Apache-2.0\n")
	assert.Contains(t, src, "// Step is a single unit of work.\ntype Step struct {")
	assert.Contains(t, src, "map[string]string")

	_, err = parser.ParseFile(token.NewFileSet(), "step.go", data, parser.ParseComments)
	assert.NoError(t, err)
}

func TestGenerate_ScopedFailures(t *testing.T) {
	t.Run("shape error", func(t *testing.T) {
		const bundle = `{
  "definitions": {
    "Bad": {"x-file": "bad.yaml", "properties": {"list": {"type": "array"}}},
    "Good": {"x-file": "good.yaml", "properties": {"n": {"type": "number"}}}
  }
}`
		w := newMemWriter()
		result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithWriter(w))
		require.NoError(t, err)
		assert.True(t, result.Failed())
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "Bad", result.Failures[0].Definition)
		assert.True(t, errors.Is(result.Failures[0].Err, generrors.ErrSchemaShape))
		assert.Equal(t, []string{"good.go"}, w.order)
		assert.Equal(t, 1, result.CountBySeverity(SeverityCritical))
		assert.Equal(t, "list", result.Issues[len(result.Issues)-1].Path)
	})

	t.Run("undecodable definition", func(t *testing.T) {
		const bundle = `{
  "definitions": {
    "A": {"x-file": "a.yaml", "properties": {"x": true}},
    "B": {"x-file": "b.yaml", "properties": {"n": {"type": "number"}}}
  }
}`
		w := newMemWriter()
		result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithWriter(w))
		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "A", result.Failures[0].Definition)
		assert.True(t, errors.Is(result.Failures[0].Err, generrors.ErrSchemaShape))
		assert.True(t, errors.Is(result.Failures[0].Err, generrors.ErrParse))
		assert.Contains(t, result.Failures[0].Err.Error(), "definitions.A.properties.x")
		assert.Equal(t, []string{"b.go"}, w.order)
	})

	t.Run("property name unusable in struct tag", func(t *testing.T) {
		const bundle = `{
  "definitions": {
    "A": {"x-file": "a.yaml", "properties": {"ok": {"type": "string"}, "q\"x": {"type": "string"}}},
    "B": {"x-file": "b.yaml", "properties": {"a,b": {"type": "string"}}},
    "C": {"x-file": "c.yaml", "properties": {"n": {"type": "number"}}}
  }
}`
		w := newMemWriter()
		result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithWriter(w))
		require.NoError(t, err)
		assert.True(t, result.Failed())
		require.Len(t, result.Failures, 2)
		assert.Equal(t, "A", result.Failures[0].Definition)
		assert.Equal(t, "B", result.Failures[1].Definition)
		assert.Equal(t, []string{"c.go"}, w.order)
	})

	t.Run("render error", func(t *testing.T) {
		w := newMemWriter()
		result, err := GenerateWithOptions(
			WithBytes([]byte(testutil.ActionBundle)),
			WithWriter(w),
			WithRenderer(failingRenderer{next: mustRenderer(t), def: "Action"}),
		)
		require.NoError(t, err)
		require.Len(t, result.Failures, 1)
		assert.True(t, errors.Is(result.Failures[0].Err, generrors.ErrRender))
		assert.Equal(t, []string{"step.go"}, w.order)
	})

	t.Run("write error", func(t *testing.T) {
		w := newMemWriter()
		w.fail["action.go"] = true
		result, err := GenerateWithOptions(WithBytes([]byte(testutil.ActionBundle)), WithWriter(w))
		require.NoError(t, err)
		require.Len(t, result.Failures, 1)

		var writeErr *generrors.WriteError
		require.True(t, errors.As(result.Failures[0].Err, &writeErr))
		assert.Equal(t, "action.go", writeErr.Path)
		assert.Equal(t, []string{"step.go"}, w.order)
	})
}

func TestGenerate_DryRun(t *testing.T) {
	dir := t.TempDir()
	result, err := GenerateWithOptions(
		WithBytes([]byte(testutil.ActionBundle)),
		WithOutputDir(dir),
		WithDryRun(true),
	)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	require.Len(t, result.Files, 2)
	assert.NotEmpty(t, result.Files[0].Content)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_MissingFileAnnotation(t *testing.T) {
	const bundle = `{"definitions": {"PipelineStage": {"properties": {"name": {"type": "string"}}}}}`
	result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithDryRun(true))
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "pipeline_stage.go", result.Files[0].Path)
	assert.Equal(t, 1, result.CountBySeverity(SeverityInfo))
}

func TestGenerate_UnsafeOutputPath(t *testing.T) {
	const bundle = `{"definitions": {
  "Escape": {"x-file": "../escape.yaml", "properties": {}},
  "Fine": {"x-file": "nested/fine.yaml", "properties": {}}
}}`
	w := newMemWriter()
	result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithWriter(w))
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Escape", result.Failures[0].Definition)
	assert.Equal(t, []string{"nested/fine.go"}, w.order)
}

func TestGenerate_DanglingRefs(t *testing.T) {
	const bundle = `{"definitions": {
  "Holder": {"x-file": "holder.yaml", "properties": {"gone": {"$ref": "#/definitions/Gone"}}}
}}`
	t.Run("lenient", func(t *testing.T) {
		result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithDryRun(true))
		require.NoError(t, err)
		assert.False(t, result.Failed())
		assert.Equal(t, 1, result.CountBySeverity(SeverityWarning))
	})

	t.Run("strict", func(t *testing.T) {
		result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithDryRun(true), WithStrict(true))
		require.NoError(t, err)
		assert.True(t, result.Failed())
		assert.Equal(t, 1, result.CountBySeverity(SeverityError))
		assert.Len(t, result.Files, 1)
	})
}

func TestGenerate_Config(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no input", nil},
		{"two inputs", []Option{WithBytes([]byte(testutil.ActionBundle)), WithFilePath("schema.json")}},
		{"empty package", []Option{WithBytes([]byte(testutil.ActionBundle)), WithPackageName("")}},
		{"invalid package", []Option{WithBytes([]byte(testutil.ActionBundle)), WithPackageName("my-types"), WithDryRun(true)}},
		{"keyword package", []Option{WithBytes([]byte(testutil.ActionBundle)), WithPackageName("type"), WithDryRun(true)}},
		{"no output dir", []Option{WithBytes([]byte(testutil.ActionBundle))}},
		{"empty ref prefix", []Option{WithBytes([]byte(testutil.ActionBundle)), WithRefPrefix("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GenerateWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, generrors.ErrConfig), "got %v", err)
		})
	}
}

func TestGenerate_ParseError(t *testing.T) {
	_, err := GenerateWithOptions(WithBytes([]byte("definitions: [")), WithDryRun(true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrParse))

	_, err = GenerateWithOptions(WithFilePath(filepath.Join(t.TempDir(), "missing.json")), WithDryRun(true))
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrParse))
}

func TestGenerate_CustomRefPrefix(t *testing.T) {
	const bundle = `{"definitions": {
  "Holder": {"x-file": "holder.yaml", "properties": {"item": {"$ref": "#/$defs/Item"}}},
  "Item": {"x-file": "item.yaml", "properties": {}}
}}`
	result, err := GenerateWithOptions(
		WithBytes([]byte(bundle)),
		WithDryRun(true),
		WithRefPrefix("#/$defs/"),
	)
	require.NoError(t, err)
	require.False(t, result.Failed())
	assert.Equal(t, "*Item", result.GetFile("Holder").Record.Field("item").Type.GoType())
	assert.Zero(t, result.CountBySeverity(SeverityWarning))
}

func TestGenerator_GenerateFile(t *testing.T) {
	path := testutil.WriteTempBundle(t, testutil.ActionBundle)

	out := filepath.Join(t.TempDir(), "out")
	g := New()
	g.OutputDir = out
	g.PackageName = "model"
	result, err := g.GenerateFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, 2, result.Definitions)

	data, err := os.ReadFile(filepath.Join(out, "action.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package model\n")
}

func TestGenerate_NilBundle(t *testing.T) {
	_, err := New().Generate(nil)
	assert.True(t, errors.Is(err, generrors.ErrConfig))
}

func TestGenerateResult_MarshalReport(t *testing.T) {
	const bundle = `{"definitions": {
  "Bad": {"x-file": "bad.yaml", "properties": {"list": {"type": "array"}}},
  "Good": {"x-file": "good.yaml", "properties": {}}
}}`
	result, err := GenerateWithOptions(WithBytes([]byte(bundle)), WithDryRun(true))
	require.NoError(t, err)

	data, err := result.MarshalReport()
	require.NoError(t, err)
	report := string(data)
	assert.Contains(t, report, `"package": "yaml"`)
	assert.Contains(t, report, `"path": "good.go"`)
	assert.Contains(t, report, `"definition": "Bad"`)
	assert.Contains(t, report, `"severity": "critical"`)
	assert.NotContains(t, report, "Content")
}
