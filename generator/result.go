package generator

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/erraggy/schemagen/internal/issues"
	"github.com/erraggy/schemagen/internal/severity"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates output that may not compile or decode as expected
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates bundle-wide problems that fail strict runs
	SeverityError = severity.SeverityError
	// SeverityCritical indicates definitions that could not be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue
type GenerateIssue = issues.Issue

// GeneratedFile describes one file produced for a definition.
type GeneratedFile struct {
	// Definition is the schema definition name
	Definition string `json:"definition"`
	// TypeName is the generated Go type
	TypeName string `json:"type"`
	// Path is relative to the output directory, slash separated
	Path string `json:"path"`
	// Size is the rendered size in bytes, before post-processing
	Size int `json:"size"`
	// Fields is the number of struct fields
	Fields int `json:"fields"`
	// Variants lists the variant tags of a polymorphic record
	Variants []string `json:"variants,omitempty"`

	// Content is the rendered source
	Content []byte `json:"-"`
	// Record is the record the file was rendered from
	Record *Record `json:"-"`
}

// Failure is a definition that produced no file.
type Failure struct {
	Definition string `json:"definition"`
	Err        error  `json:"-"`
}

// MarshalJSON includes the error text.
func (f Failure) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Definition string `json:"definition"`
		Error      string `json:"error"`
	}{f.Definition, msg})
}

// GenerateResult contains the outcome of one generation run
type GenerateResult struct {
	// PackageName is the package clause of the generated files
	PackageName string `json:"package"`
	// OutputDir is the directory files were written to (empty for custom writers)
	OutputDir string `json:"outputDir,omitempty"`
	// SourcePath is the bundle file, when read from disk
	SourcePath string `json:"source,omitempty"`
	// Definitions is the number of definitions in the bundle
	Definitions int `json:"definitions"`
	// Files in bundle order
	Files []GeneratedFile `json:"files"`
	// Failures in bundle order
	Failures []Failure `json:"failures,omitempty"`
	// Issues contains every issue found during the run
	Issues []GenerateIssue `json:"issues,omitempty"`
	// DryRun is true when nothing was written
	DryRun bool `json:"dryRun,omitempty"`
	// Strict is true when strict mode was enabled
	Strict bool `json:"strict,omitempty"`
	// GenerateTime is the wall time of the run
	GenerateTime time.Duration `json:"generateTime"`
}

// Failed reports whether any definition failed, or, in strict mode, whether
// any error-level issue was recorded.
func (r *GenerateResult) Failed() bool {
	if len(r.Failures) > 0 {
		return true
	}
	if !r.Strict {
		return false
	}
	for _, iss := range r.Issues {
		if iss.IsError() {
			return true
		}
	}
	return false
}

// CountBySeverity returns the number of issues at sev.
func (r *GenerateResult) CountBySeverity(sev Severity) int {
	n := 0
	for _, iss := range r.Issues {
		if iss.Severity == sev {
			n++
		}
	}
	return n
}

// GetFile returns the generated file for the definition, or nil if not found
func (r *GenerateResult) GetFile(definition string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Definition == definition {
			return &r.Files[i]
		}
	}
	return nil
}

// Paths returns the written paths in bundle order.
func (r *GenerateResult) Paths() []string {
	paths := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// MarshalReport encodes the run summary as indented JSON.
func (r *GenerateResult) MarshalReport() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func (r *GenerateResult) addIssue(sev Severity, def, path, msg string) {
	r.Issues = append(r.Issues, GenerateIssue{
		Definition: def,
		Path:       path,
		Message:    msg,
		Severity:   sev,
	})
}
