package schema

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemagen/generrors"
)

// definitionsKey is the top-level key holding the definition table.
const definitionsKey = "definitions"

// ParseFile reads and decodes the bundle at path.
func ParseFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: bundle path is user supplied by design
	if err != nil {
		return nil, &generrors.ParseError{Path: path, Message: "failed to read bundle", Cause: err}
	}
	b, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	b.SourcePath = path
	return b, nil
}

// ParseReader decodes a bundle from r.
func ParseReader(r io.Reader) (*Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &generrors.ParseError{Path: "ParseReader", Message: "failed to read bundle", Cause: err}
	}
	return parse(data, "ParseReader")
}

// ParseBytes decodes a bundle from data.
func ParseBytes(data []byte) (*Bundle, error) {
	return parse(data, "ParseBytes")
}

func parse(data []byte, source string) (*Bundle, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &generrors.ParseError{Path: source, Message: "bundle is empty"}
	}

	// JSON is a subset of YAML; decoding into a node tree keeps key order.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &generrors.ParseError{Path: source, Message: "failed to parse YAML/JSON", Cause: err}
	}

	doc := resolveAlias(&root)
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = resolveAlias(doc.Content[0])
	}
	if doc.Kind != yaml.MappingNode {
		return nil, nodeError(source, doc, "bundle root must be an object")
	}

	var raw any
	if err := doc.Decode(&raw); err != nil {
		return nil, &generrors.ParseError{Path: source, Message: "failed to decode bundle", Cause: err}
	}

	defsNode := mappingValue(doc, definitionsKey)
	if defsNode == nil {
		return nil, nodeError(source, doc, "bundle has no "+definitionsKey+" table")
	}
	if defsNode.Kind != yaml.MappingNode {
		return nil, nodeError(source, defsNode, definitionsKey+" must be an object")
	}

	d := &decoder{source: source}
	b := NewBundle()
	b.raw = raw
	for i := 0; i+1 < len(defsNode.Content); i += 2 {
		name := defsNode.Content[i].Value
		if _, dup := b.Lookup(name); dup {
			return nil, nodeError(source, defsNode.Content[i], fmt.Sprintf("duplicate definition %q", name))
		}
		// A malformed definition is kept with its error so the rest still generate.
		s, err := d.schema(defsNode.Content[i+1], definitionsKey+"."+name)
		b.add(&Definition{Name: name, Schema: s, Err: err})
	}
	return b, nil
}

func nodeError(source string, n *yaml.Node, msg string) error {
	return &generrors.ParseError{Path: source, Line: n.Line, Column: n.Column, Message: msg}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveAlias(m.Content[i+1])
		}
	}
	return nil
}
