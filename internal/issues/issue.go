// Package issues provides the issue record attached to a generation result.
package issues

import (
	"fmt"

	"github.com/erraggy/schemagen/internal/severity"
)

// Issue represents a single problem or notice found while generating code.
type Issue struct {
	// Definition is the schema definition the issue belongs to (empty for bundle-wide issues)
	Definition string `json:"definition,omitempty"`
	// Path locates the problem inside the definition (e.g. "steps.items")
	Path string `json:"path,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Line is the 1-based line number in the bundle (0 if unknown)
	Line int `json:"line,omitempty"`
	// Column is the 1-based column number in the bundle (0 if unknown)
	Column int `json:"column,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Definition
	if i.Path != "" {
		if where != "" {
			where += "."
		}
		where += i.Path
	}
	if where == "" {
		where = "bundle"
	}

	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", symbol, where, i.Line, i.Column, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
}

// IsError reports whether the issue is an error or critical issue.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError || i.Severity == severity.SeverityCritical
}
