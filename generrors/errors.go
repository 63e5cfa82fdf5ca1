package generrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSchemaShape indicates a schema fragment matched no recognized pattern.
	ErrSchemaShape = errors.New("schema shape error")

	// ErrOutputCollision indicates two definitions derived the same output path.
	ErrOutputCollision = errors.New("output collision")

	// ErrRender indicates the renderer failed on a record.
	ErrRender = errors.New("render error")

	// ErrWrite indicates a generated file could not be written.
	ErrWrite = errors.New("write error")

	// ErrParse indicates the schema bundle could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// SchemaShapeError reports a property or definition that does not match any
// recognized pattern.
type SchemaShapeError struct {
	// Definition is the name of the schema definition being generated
	Definition string
	// Property is the property key being classified (empty for definition-level problems)
	Property string
	// Path locates the fragment inside the property or definition (e.g. "items", "oneOf[1].allOf[0]")
	Path string
	// Message describes the mismatch
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaShapeError) Error() string {
	msg := "schema shape error"
	if loc := e.location(); loc != "" {
		msg += " at " + loc
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaShapeError) location() string {
	var parts []string
	if e.Definition != "" {
		parts = append(parts, e.Definition)
	}
	if e.Property != "" {
		parts = append(parts, e.Property)
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	return strings.Join(parts, ".")
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaShapeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaShapeError) Is(target error) bool {
	return target == ErrSchemaShape
}

// OutputCollisionError reports two or more definitions that derive the same
// output path.
type OutputCollisionError struct {
	// Path is the shared output path
	Path string
	// Definitions lists the colliding definition names in bundle order
	Definitions []string
}

// Error returns a human-readable error message.
func (e *OutputCollisionError) Error() string {
	msg := "output collision"
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if len(e.Definitions) > 0 {
		msg += fmt.Sprintf(" (definitions: %s)", strings.Join(e.Definitions, ", "))
	}
	return msg
}

// Unwrap returns nil as OutputCollisionError has no underlying cause.
func (e *OutputCollisionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *OutputCollisionError) Is(target error) bool {
	return target == ErrOutputCollision
}

// RenderError reports a renderer failure for one definition.
type RenderError struct {
	// Definition is the name of the definition whose record failed to render
	Definition string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *RenderError) Error() string {
	msg := "render error"
	if e.Definition != "" {
		msg += " for " + e.Definition
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// WriteError reports a failure to write one generated file.
type WriteError struct {
	// Definition is the definition whose output failed to write
	Definition string
	// Path is the output path
	Path string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *WriteError) Error() string {
	msg := "write error"
	if e.Path != "" {
		msg += " for " + e.Path
	}
	if e.Definition != "" {
		msg += " (" + e.Definition + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

// ParseError represents a failure to read or decode the schema bundle.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// IsScoped reports whether err only affects a single definition, as opposed
// to aborting the whole run.
func IsScoped(err error) bool {
	return errors.Is(err, ErrSchemaShape) || errors.Is(err, ErrRender) || errors.Is(err, ErrWrite)
}
