package generator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/erraggy/schemagen/generrors"
	"github.com/erraggy/schemagen/internal/naming"
	"github.com/erraggy/schemagen/schema"
	"github.com/erraggy/schemagen/typemap"
	"github.com/erraggy/schemagen/variant"
)

// Record is the renderer-ready description of one generated type.
type Record struct {
	// Definition is the schema definition name
	Definition string
	// TypeName is the Go type name
	TypeName string
	// Description is the definition's description (may be empty)
	Description string
	// Path is the output path relative to the output directory, slash separated
	Path string
	// Package is the Go package clause of the generated file
	Package string
	// Header is the license header placed above the package clause (may be empty)
	Header string
	// Fields in schema declaration order
	Fields []Field
	// Variants in oneOf order; empty when the definition is not polymorphic
	Variants []variant.Entry

	// DiscriminatorKey and PayloadKey are the JSON names of the tagged-union
	// properties; set only when Variants is non-empty
	DiscriminatorKey string
	PayloadKey       string
}

// Field is one struct field of a Record.
type Field struct {
	// Name is the Go identifier
	Name string
	// JSONName is the original property key
	JSONName string
	// Type is the mapped Go type
	Type typemap.TypeDescriptor
}

// IsPolymorphic reports whether the record carries a variant table.
func (r *Record) IsPolymorphic() bool {
	return len(r.Variants) > 0
}

// Field returns the field generated for the JSON key, or nil.
func (r *Record) Field(jsonName string) *Field {
	for i := range r.Fields {
		if r.Fields[i].JSONName == jsonName {
			return &r.Fields[i]
		}
	}
	return nil
}

// DiscriminatorField returns the Go name of the discriminator field.
func (r *Record) DiscriminatorField() string {
	if f := r.Field(r.DiscriminatorKey); f != nil {
		return f.Name
	}
	return ""
}

// PayloadField returns the Go name of the payload field.
func (r *Record) PayloadField() string {
	if f := r.Field(r.PayloadKey); f != nil {
		return f.Name
	}
	return ""
}

// recordBuilder assembles records. It holds only immutable collaborators.
type recordBuilder struct {
	mapper    *typemap.Mapper
	extractor *variant.Extractor
	pkg       string
	header    string
	log       Logger
}

// build assembles the record of def, to be written at path.
func (rb *recordBuilder) build(def *schema.Definition, path string) (*Record, error) {
	s := def.Schema
	if s == nil {
		s = &schema.Schema{}
	}

	rec := &Record{
		Definition:  def.Name,
		TypeName:    naming.TypeName(def.Name),
		Description: s.Description,
		Path:        path,
		Package:     rb.pkg,
		Header:      rb.header,
	}

	variants, err := rb.extractor.Extract(def)
	if err != nil {
		return nil, err
	}
	conv := rb.extractor.Convention()
	if len(variants) > 0 {
		rec.Variants = variants
		rec.DiscriminatorKey = conv.Discriminator
		rec.PayloadKey = conv.Payload
	}

	names := make(map[string]string, s.Properties.Len())
	for key, prop := range s.Properties.All() {
		if !validJSONName(key) {
			return nil, &generrors.SchemaShapeError{
				Definition: def.Name,
				Property:   key,
				Message:    fmt.Sprintf("property name %q cannot be used as a JSON struct tag", key),
			}
		}
		field := Field{Name: naming.FieldName(key), JSONName: key}
		if prev, dup := names[field.Name]; dup {
			return nil, fieldClash(def.Name, key, field.Name, prev)
		}
		names[field.Name] = key

		if rec.IsPolymorphic() && key == conv.Payload {
			field.Type = typemap.Payload()
		} else {
			t, err := rb.mapper.Map(prop)
			if err != nil {
				return nil, withDefinition(err, def.Name, key)
			}
			field.Type = t
		}

		rb.log.Debug("mapped property", "definition", def.Name, "property", key, "type", field.Type.GoType())
		rec.Fields = append(rec.Fields, field)
	}

	if rec.IsPolymorphic() {
		// The payload is usually declared only inside the oneOf alternatives.
		if rec.Field(conv.Payload) == nil {
			name := naming.FieldName(conv.Payload)
			if prev, dup := names[name]; dup {
				return nil, fieldClash(def.Name, conv.Payload, name, prev)
			}
			rec.Fields = append(rec.Fields, Field{Name: name, JSONName: conv.Payload, Type: typemap.Payload()})
		}
		if f := rec.Field(conv.Discriminator); f == nil || f.Type.GoType() != "string" {
			return nil, &generrors.SchemaShapeError{
				Definition: def.Name,
				Property:   conv.Discriminator,
				Message:    "discriminator must be a string",
			}
		}
	}

	return rec, nil
}

func fieldClash(def, prop, name, prev string) error {
	return &generrors.SchemaShapeError{
		Definition: def,
		Property:   prop,
		Message:    fmt.Sprintf("field name %s already generated for property %q", name, prev),
	}
}

// validJSONName reports whether encoding/json honors key as a struct tag name.
// It accepts the same runes as encoding/json: letters, digits and a fixed set
// of punctuation that excludes quotes, backslashes and commas.
func validJSONName(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		switch {
		case strings.ContainsRune("!#$%&()*+-./:;<=>?@[]^_{|}~ ", c):
		case unicode.IsLetter(c), unicode.IsDigit(c):
		default:
			return false
		}
	}
	return true
}

// withDefinition attaches the definition and property to a mapper error.
func withDefinition(err error, def, prop string) error {
	var shapeErr *generrors.SchemaShapeError
	if errors.As(err, &shapeErr) {
		shapeErr.Definition = def
		shapeErr.Property = prop
		return shapeErr
	}
	return &generrors.SchemaShapeError{Definition: def, Property: prop, Cause: err}
}
