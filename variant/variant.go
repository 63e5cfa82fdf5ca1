// Package variant detects the tagged-union pattern in a schema definition and
// extracts its variant table.
//
// A definition is polymorphic when its discriminator property ("type") carries
// an enum and the definition declares oneOf alternatives. Each alternative is
// an allOf pair: the first element pins the discriminator to one constant (the
// tag), the second points its payload property ("spec") at the definition
// holding the variant's fields.
//
//	"oneOf": [
//	  {"allOf": [
//	    {"properties": {"type": {"const": "move"}}},
//	    {"properties": {"spec": {"$ref": "#/definitions/Move"}}}
//	  ]}
//	]
package variant

import (
	"fmt"

	"github.com/erraggy/schemagen/generrors"
	"github.com/erraggy/schemagen/schema"
)

// Entry maps one discriminator value to its payload type.
type Entry struct {
	// Tag is the discriminator value
	Tag string
	// Type is the referenced definition name
	Type string
}

// Convention names the properties that make up the tagged-union pattern.
type Convention struct {
	// Discriminator is the property whose value selects the variant
	Discriminator string
	// Payload is the property holding the variant-specific value
	Payload string
	// Refs resolves payload references to definition names
	Refs schema.RefConvention
}

// DefaultConvention returns the type/spec convention with local
// "#/definitions/" references.
func DefaultConvention() Convention {
	return Convention{
		Discriminator: "type",
		Payload:       "spec",
		Refs:          schema.DefaultRefConvention(),
	}
}

// Extractor builds variant tables.
type Extractor struct {
	conv Convention
}

// New returns an Extractor for conv.
func New(conv Convention) *Extractor {
	return &Extractor{conv: conv}
}

// Convention returns the extractor's convention.
func (e *Extractor) Convention() Convention {
	return e.conv
}

// IsPolymorphic reports whether s follows the tagged-union pattern.
func (e *Extractor) IsPolymorphic(s *schema.Schema) bool {
	if s == nil || len(s.OneOf) == 0 {
		return false
	}
	disc := s.Property(e.conv.Discriminator)
	return disc != nil && len(disc.Enum) > 0
}

// Extract returns the variant table of def in oneOf order, or nil when def is
// not polymorphic. A structurally malformed alternative yields a
// *generrors.SchemaShapeError.
func (e *Extractor) Extract(def *schema.Definition) ([]Entry, error) {
	if def == nil || !e.IsPolymorphic(def.Schema) {
		return nil, nil
	}

	entries := make([]Entry, 0, len(def.Schema.OneOf))
	seen := make(map[string]int, len(def.Schema.OneOf))
	for i, alt := range def.Schema.OneOf {
		entry, err := e.entry(alt, fmt.Sprintf("oneOf[%d]", i))
		if err != nil {
			err.Definition = def.Name
			return nil, err
		}
		if prev, dup := seen[entry.Tag]; dup {
			return nil, &generrors.SchemaShapeError{
				Definition: def.Name,
				Path:       fmt.Sprintf("oneOf[%d]", i),
				Message:    fmt.Sprintf("tag %q already used by oneOf[%d]", entry.Tag, prev),
			}
		}
		seen[entry.Tag] = i
		entries = append(entries, entry)
	}
	return entries, nil
}

func (e *Extractor) entry(alt *schema.Schema, path string) (Entry, *generrors.SchemaShapeError) {
	if alt == nil || len(alt.AllOf) != 2 {
		n := 0
		if alt != nil {
			n = len(alt.AllOf)
		}
		return Entry{}, shapeError(path+".allOf", fmt.Sprintf("expected 2 allOf elements, found %d", n))
	}

	tagProp := alt.AllOf[0].Property(e.conv.Discriminator)
	tag, ok := tagProp.SingleString()
	if !ok {
		return Entry{}, shapeError(
			fmt.Sprintf("%s.allOf[0].properties.%s", path, e.conv.Discriminator),
			"expected a single constant discriminator value",
		)
	}

	payloadPath := fmt.Sprintf("%s.allOf[1].properties.%s", path, e.conv.Payload)
	payload := alt.AllOf[1].Property(e.conv.Payload)
	if payload == nil || payload.Ref == "" {
		return Entry{}, shapeError(payloadPath, "expected a $ref")
	}
	name, ok := e.conv.Refs.Name(payload.Ref)
	if !ok {
		return Entry{}, shapeError(payloadPath, fmt.Sprintf("unsupported reference %q", payload.Ref))
	}
	return Entry{Tag: tag, Type: name}, nil
}

func shapeError(path, msg string) *generrors.SchemaShapeError {
	return &generrors.SchemaShapeError{Path: path, Message: msg}
}
