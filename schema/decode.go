package schema

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// decoder turns yaml.Node fragments into Schema values.
type decoder struct {
	source string
}

func (d *decoder) fail(n *yaml.Node, path, msg string) error {
	return nodeError(d.source, n, path+": "+msg)
}

func (d *decoder) schema(n *yaml.Node, path string) (*Schema, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.fail(n, path, "schema must be an object")
	}

	s := &Schema{Line: n.Line, Column: n.Column}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := resolveAlias(n.Content[i+1])
		at := path + "." + key

		var err error
		switch key {
		case "type":
			err = d.types(s, val, at)
		case "description":
			s.Description, err = d.str(val, at)
		case "x-file":
			s.File, err = d.str(val, at)
		case "$ref":
			s.Ref, err = d.str(val, at)
		case "enum":
			s.Enum, err = d.enum(val, at)
		case "const":
			err = val.Decode(&s.Const)
			s.HasConst = err == nil
		case "items":
			// Tuple-form items are left unset; the type mapper reports them.
			if val.Kind == yaml.MappingNode {
				s.Items, err = d.schema(val, at)
			}
		case "properties":
			s.Properties, err = d.properties(val, at)
		case "additionalProperties":
			err = d.additional(s, val, at)
		case "oneOf":
			s.OneOf, err = d.list(val, at)
		case "allOf":
			s.AllOf, err = d.list(val, at)
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (d *decoder) str(n *yaml.Node, path string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", d.fail(n, path, "expected a string")
	}
	return n.Value, nil
}

func (d *decoder) types(s *Schema, n *yaml.Node, path string) error {
	switch n.Kind {
	case yaml.ScalarNode:
		s.Types = []string{n.Value}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			t, err := d.str(resolveAlias(item), path)
			if err != nil {
				return err
			}
			s.Types = append(s.Types, t)
		}
	default:
		return d.fail(n, path, "expected a string or a list of strings")
	}

	for _, t := range s.Types {
		if t != TypeNull {
			s.Type = t
			return nil
		}
	}
	if len(s.Types) > 0 {
		s.Type = s.Types[0]
	}
	return nil
}

func (d *decoder) enum(n *yaml.Node, path string) ([]any, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, path, "enum must be a list")
	}
	values := make([]any, 0, len(n.Content))
	for i, item := range n.Content {
		var v any
		if err := resolveAlias(item).Decode(&v); err != nil {
			return nil, d.fail(item, fmt.Sprintf("%s[%d]", path, i), err.Error())
		}
		values = append(values, v)
	}
	return values, nil
}

func (d *decoder) properties(n *yaml.Node, path string) (*Properties, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.fail(n, path, "properties must be an object")
	}
	props := NewProperties()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if _, dup := props.Get(key); dup {
			return nil, d.fail(n.Content[i], path, fmt.Sprintf("duplicate property %q", key))
		}
		s, err := d.schema(n.Content[i+1], path+"."+key)
		if err != nil {
			return nil, err
		}
		props.Set(key, s)
	}
	return props, nil
}

func (d *decoder) additional(s *Schema, n *yaml.Node, path string) error {
	if n.Kind == yaml.ScalarNode {
		var allowed bool
		if err := n.Decode(&allowed); err != nil {
			return d.fail(n, path, "expected a schema or a boolean")
		}
		s.AdditionalAllowed = &allowed
		return nil
	}
	sub, err := d.schema(n, path)
	if err != nil {
		return err
	}
	s.AdditionalProperties = sub
	return nil
}

func (d *decoder) list(n *yaml.Node, path string) ([]*Schema, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, path, "expected a list of schemas")
	}
	out := make([]*Schema, 0, len(n.Content))
	for i, item := range n.Content {
		s, err := d.schema(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
