package typemap

import (
	"fmt"

	"github.com/erraggy/schemagen/generrors"
	"github.com/erraggy/schemagen/schema"
)

// Mapper maps property schemas to type descriptors.
type Mapper struct {
	refs schema.RefConvention
}

// New returns a Mapper resolving references with refs.
func New(refs schema.RefConvention) *Mapper {
	return &Mapper{refs: refs}
}

// Map classifies s. The returned error is a *generrors.SchemaShapeError whose
// Path locates the failing sub-fragment; the caller fills in the definition
// and property.
func (m *Mapper) Map(s *schema.Schema) (TypeDescriptor, error) {
	return m.classify(s, "")
}

func (m *Mapper) classify(s *schema.Schema, path string) (TypeDescriptor, error) {
	if s == nil {
		return TypeDescriptor{}, shapeError(path, "missing schema")
	}

	// Rule 1: single allowed string value.
	if v, ok := s.SingleString(); ok {
		return constant(v), nil
	}

	switch {
	// Rule 2: arrays.
	case s.Type == schema.TypeArray:
		if s.Items == nil {
			return TypeDescriptor{}, shapeError(path, "array has no items schema")
		}
		elem, err := m.classify(s.Items, join(path, "items"))
		if err != nil {
			return TypeDescriptor{}, err
		}
		return arrayOf(elem), nil

	// Rule 3: string-keyed maps.
	case s.Type == schema.TypeObject && !s.HasProperties() && s.AdditionalProperties != nil:
		elem, err := m.classify(s.AdditionalProperties, join(path, "additionalProperties"))
		if err != nil {
			return TypeDescriptor{}, err
		}
		return mapOf(elem), nil

	case s.Type == schema.TypeObject && !s.HasProperties() && s.AdditionalAllowed != nil && *s.AdditionalAllowed && s.Ref == "":
		return mapOf(Payload()), nil

	// Rule 4: local references.
	case s.Ref != "":
		name, ok := m.refs.Name(s.Ref)
		if !ok {
			return TypeDescriptor{}, shapeError(path, fmt.Sprintf("unsupported reference %q", s.Ref))
		}
		return refTo(name), nil
	}

	// Rule 5: primitives.
	switch s.Type {
	case schema.TypeString:
		return scalar(KindString), nil
	case schema.TypeInteger:
		return scalar(KindInteger), nil
	case schema.TypeNumber:
		return scalar(KindNumber), nil
	case schema.TypeBoolean:
		return scalar(KindBoolean), nil
	}

	// Untyped string enums, such as a discriminator listing its tags.
	if s.Type == "" {
		if values, ok := s.StringEnum(); ok {
			return constant(values...), nil
		}
	}

	return TypeDescriptor{}, shapeError(path, describe(s))
}

func shapeError(path, msg string) error {
	return &generrors.SchemaShapeError{Path: path, Message: msg}
}

func join(path, elem string) string {
	if path == "" {
		return elem
	}
	return path + "." + elem
}

// describe explains why no rule matched.
func describe(s *schema.Schema) string {
	switch {
	case s.Type == schema.TypeObject && s.HasProperties():
		return "inline object with properties is not supported, use a $ref"
	case s.Type == schema.TypeObject:
		return "object without additionalProperties schema"
	case s.Type != "":
		return fmt.Sprintf("unsupported type %q", s.Type)
	case len(s.OneOf) > 0 || len(s.AllOf) > 0:
		return "composed schema (oneOf/allOf) cannot be mapped to a field type"
	default:
		return "schema declares no type"
	}
}
