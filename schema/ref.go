package schema

import "strings"

// DefaultRefPrefix is the pointer prefix of a local definition reference.
const DefaultRefPrefix = "#/definitions/"

// RefConvention maps $ref pointers to definition names and back.
// Only pointers under Prefix are local references; anything else (remote
// documents, other sections of the bundle, nested pointers) is rejected.
type RefConvention struct {
	Prefix string
}

// DefaultRefConvention returns the "#/definitions/<Name>" convention.
func DefaultRefConvention() RefConvention {
	return RefConvention{Prefix: DefaultRefPrefix}
}

// Name returns the definition name a reference points to.
func (c RefConvention) Name(ref string) (string, bool) {
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultRefPrefix
	}
	name, ok := strings.CutPrefix(ref, prefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	// JSON Pointer escapes, "~1" must be decoded before "~0".
	name = strings.ReplaceAll(name, "~1", "/")
	name = strings.ReplaceAll(name, "~0", "~")
	return name, true
}

// Ref returns the reference pointer for a definition name.
func (c RefConvention) Ref(name string) string {
	prefix := c.Prefix
	if prefix == "" {
		prefix = DefaultRefPrefix
	}
	name = strings.ReplaceAll(name, "~", "~0")
	name = strings.ReplaceAll(name, "/", "~1")
	return prefix + name
}
