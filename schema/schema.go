package schema

import (
	"iter"
)

// Primitive JSON-Schema type names.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
)

// Schema is a single decoded schema fragment.
type Schema struct {
	// Type is the primary declared type ("null" is skipped when a type list is given)
	Type string
	// Types holds every declared type, in source order
	Types []string
	// Description is the human-readable description
	Description string
	// File is the x-file annotation naming the source file of a definition
	File string

	// Enum holds the allowed values, decoded as strings, numbers or booleans
	Enum []any
	// Const is the single allowed value when HasConst is true
	Const    any
	HasConst bool

	// Ref is the raw $ref pointer
	Ref string

	Items                *Schema
	Properties           *Properties
	AdditionalProperties *Schema
	// AdditionalAllowed records a boolean additionalProperties (nil when absent or a schema)
	AdditionalAllowed *bool

	OneOf []*Schema
	AllOf []*Schema

	// Line and Column locate the fragment in the source document
	Line   int
	Column int
}

// HasProperties reports whether the fragment declares at least one fixed property.
func (s *Schema) HasProperties() bool {
	return s != nil && s.Properties.Len() > 0
}

// Property returns the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil {
		return nil
	}
	p, _ := s.Properties.Get(name)
	return p
}

// StringEnum returns the enum values when every one of them is a string.
func (s *Schema) StringEnum() ([]string, bool) {
	if s == nil || len(s.Enum) == 0 {
		return nil, false
	}
	values := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		str, ok := v.(string)
		if !ok {
			return nil, false
		}
		values = append(values, str)
	}
	return values, true
}

// SingleString returns the one string value the fragment allows, either
// through const or through an enum with exactly one string member.
func (s *Schema) SingleString() (string, bool) {
	if s == nil {
		return "", false
	}
	if s.HasConst {
		str, ok := s.Const.(string)
		return str, ok
	}
	if values, ok := s.StringEnum(); ok && len(values) == 1 {
		return values[0], true
	}
	return "", false
}

// Properties is an insertion-ordered set of named property schemas.
type Properties struct {
	keys  []string
	byKey map[string]*Schema
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{byKey: make(map[string]*Schema)}
}

// Set adds or replaces a property. A new key is appended to the order; an
// existing key keeps its position.
func (p *Properties) Set(key string, s *Schema) {
	if _, exists := p.byKey[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.byKey[key] = s
}

// Get returns the named property.
func (p *Properties) Get(key string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.byKey[key]
	return s, ok
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the property keys in declaration order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// All iterates over the properties in declaration order.
func (p *Properties) All() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		if p == nil {
			return
		}
		for _, k := range p.keys {
			if !yield(k, p.byKey[k]) {
				return
			}
		}
	}
}

// Definition is one named entry of the bundle's definition table.
type Definition struct {
	Name   string
	Schema *Schema
	// Err is set when the definition body could not be decoded; Schema is nil then.
	Err error
}

// Bundle is a decoded schema bundle.
type Bundle struct {
	// Definitions in document order
	Definitions []*Definition
	// SourcePath is the file the bundle was read from (empty for in-memory input)
	SourcePath string

	// raw is the generic decoded document, kept for JSONPath queries
	raw   any
	index map[string]*Definition
}

// NewBundle builds a bundle from definitions already in memory.
func NewBundle(defs ...*Definition) *Bundle {
	b := &Bundle{index: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		b.add(d)
	}
	return b
}

func (b *Bundle) add(d *Definition) {
	b.Definitions = append(b.Definitions, d)
	b.index[d.Name] = d
}

// Lookup returns the named definition.
func (b *Bundle) Lookup(name string) (*Definition, bool) {
	d, ok := b.index[name]
	return d, ok
}

// Len returns the number of definitions.
func (b *Bundle) Len() int {
	return len(b.Definitions)
}
