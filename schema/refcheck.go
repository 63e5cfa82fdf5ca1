package schema

import (
	"slices"

	"github.com/ohler55/ojg/jp"
)

// refQuery selects every "$ref" value anywhere in the document ($..$ref).
var refQuery = jp.R().D().C("$ref")

// DanglingRef is a reference whose target is not a definition of the bundle.
type DanglingRef struct {
	// Ref is the raw pointer
	Ref string
	// Local is false when the pointer is outside the local reference convention
	Local bool
}

// CheckRefs lists every distinct $ref in the bundle that does not resolve to
// one of its definitions, sorted by pointer.
func CheckRefs(b *Bundle, conv RefConvention) []DanglingRef {
	if b == nil || b.raw == nil {
		return nil
	}

	var refs []string
	for _, v := range refQuery.Get(b.raw) {
		if s, ok := v.(string); ok {
			refs = append(refs, s)
		}
	}
	slices.Sort(refs)
	refs = slices.Compact(refs)

	var dangling []DanglingRef
	for _, ref := range refs {
		name, ok := conv.Name(ref)
		if !ok {
			dangling = append(dangling, DanglingRef{Ref: ref})
			continue
		}
		if _, found := b.Lookup(name); !found {
			dangling = append(dangling, DanglingRef{Ref: ref, Local: true})
		}
	}
	return dangling
}
