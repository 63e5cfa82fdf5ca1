package typemap

import (
	"slices"

	"github.com/erraggy/schemagen/internal/naming"
)

// Kind identifies the shape of a TypeDescriptor.
type Kind int

const (
	// KindInvalid is the zero Kind; no valid descriptor has it.
	KindInvalid Kind = iota
	KindString
	KindInteger
	KindNumber
	KindBoolean
	// KindConst is a string restricted to a single value.
	KindConst
	// KindEnum is a string restricted to a set of values.
	KindEnum
	KindArray
	KindMap
	// KindRef is a reference to another generated type.
	KindRef
	// KindAny holds a value whose type is decided at decode time.
	KindAny
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindConst:
		return "const"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindRef:
		return "ref"
	case KindAny:
		return "any"
	default:
		return "invalid"
	}
}

// TypeDescriptor names the Go type of a generated field.
// Descriptors are built only by this package.
type TypeDescriptor struct {
	kind   Kind
	elem   *TypeDescriptor
	ref    string
	values []string
}

// Kind returns the descriptor's kind.
func (t TypeDescriptor) Kind() Kind { return t.kind }

// Elem returns the element type of an array or map descriptor.
func (t TypeDescriptor) Elem() (TypeDescriptor, bool) {
	if t.elem == nil {
		return TypeDescriptor{}, false
	}
	return *t.elem, true
}

// RefName returns the referenced definition name of a KindRef descriptor.
func (t TypeDescriptor) RefName() string { return t.ref }

// Values returns the allowed values of a KindConst or KindEnum descriptor.
func (t TypeDescriptor) Values() []string { return slices.Clone(t.values) }

// IsValid reports whether the descriptor was produced by the mapper.
func (t TypeDescriptor) IsValid() bool { return t.kind != KindInvalid }

// GoType renders the descriptor as Go type syntax.
func (t TypeDescriptor) GoType() string {
	switch t.kind {
	case KindString, KindConst, KindEnum:
		return "string"
	case KindInteger:
		return "int"
	case KindNumber:
		return "float64"
	case KindBoolean:
		return "bool"
	case KindArray:
		return "[]" + t.elem.GoType()
	case KindMap:
		return "map[string]" + t.elem.GoType()
	case KindRef:
		return "*" + naming.TypeName(t.ref)
	default:
		return "any"
	}
}

// String implements fmt.Stringer.
func (t TypeDescriptor) String() string {
	return t.GoType()
}

// Payload is the descriptor of the payload slot of a polymorphic record; the
// concrete type is chosen by the record's discriminator when decoding.
func Payload() TypeDescriptor {
	return TypeDescriptor{kind: KindAny}
}

func scalar(k Kind) TypeDescriptor {
	return TypeDescriptor{kind: k}
}

func constant(values ...string) TypeDescriptor {
	k := KindEnum
	if len(values) == 1 {
		k = KindConst
	}
	return TypeDescriptor{kind: k, values: values}
}

func arrayOf(elem TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{kind: KindArray, elem: &elem}
}

func mapOf(elem TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{kind: KindMap, elem: &elem}
}

func refTo(name string) TypeDescriptor {
	return TypeDescriptor{kind: KindRef, ref: name}
}
