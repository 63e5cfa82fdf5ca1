package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagen/generator"
)

type inspectInput struct {
	Bundle     bundleInput `json:"bundle"                jsonschema:"The schema bundle to inspect"`
	Definition string      `json:"definition,omitempty"  jsonschema:"Only report this definition"`
	RefPrefix  string      `json:"ref_prefix,omitempty"  jsonschema:"Pointer prefix of local references (default: #/definitions/)"`
	Source     bool        `json:"source,omitempty"      jsonschema:"Include the rendered, unformatted Go source"`
}

type fieldInfo struct {
	Name     string `json:"name"`
	JSONName string `json:"json_name"`
	GoType   string `json:"go_type"`
	Kind     string `json:"kind"`
}

type variantInfo struct {
	Tag  string `json:"tag"`
	Type string `json:"type"`
}

type definitionInfo struct {
	Definition  string        `json:"definition"`
	TypeName    string        `json:"type_name"`
	Path        string        `json:"path"`
	Description string        `json:"description,omitempty"`
	Fields      []fieldInfo   `json:"fields,omitempty"`
	Variants    []variantInfo `json:"variants,omitempty"`
	Source      string        `json:"source,omitempty"`
}

type inspectOutput struct {
	DefinitionCount int              `json:"definition_count"`
	Definitions     []definitionInfo `json:"definitions"`
	Failures        []failureInfo    `json:"failures,omitempty"`
	Issues          []string         `json:"issues,omitempty"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	bundle, err := input.Bundle.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	if input.Definition != "" {
		if _, ok := bundle.Lookup(input.Definition); !ok {
			return errResult(fmt.Errorf("definition %q not found", input.Definition)), inspectOutput{}, nil
		}
	}

	opts := []generator.Option{
		generator.WithBundle(bundle),
		generator.WithPackageName(cfg.PackageName),
		generator.WithDryRun(true),
		generator.WithLogger(toolLogger("inspect")),
	}
	if input.RefPrefix != "" {
		opts = append(opts, generator.WithRefPrefix(input.RefPrefix))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{
		DefinitionCount: result.Definitions,
		Failures:        failureInfos(result),
		Issues:          issueStrings(result),
	}
	output.Definitions = makeSlice[definitionInfo](len(result.Files))
	for _, f := range result.Files {
		if input.Definition != "" && f.Definition != input.Definition {
			continue
		}
		output.Definitions = append(output.Definitions, describeFile(f, input.Source))
	}

	return nil, output, nil
}

func describeFile(f generator.GeneratedFile, withSource bool) definitionInfo {
	rec := f.Record
	info := definitionInfo{
		Definition:  f.Definition,
		TypeName:    f.TypeName,
		Path:        f.Path,
		Description: rec.Description,
	}
	info.Fields = makeSlice[fieldInfo](len(rec.Fields))
	for _, field := range rec.Fields {
		info.Fields = append(info.Fields, fieldInfo{
			Name:     field.Name,
			JSONName: field.JSONName,
			GoType:   field.Type.GoType(),
			Kind:     field.Type.Kind().String(),
		})
	}
	info.Variants = makeSlice[variantInfo](len(rec.Variants))
	for _, v := range rec.Variants {
		info.Variants = append(info.Variants, variantInfo{Tag: v.Tag, Type: v.Type})
	}
	if withSource {
		info.Source = string(f.Content)
	}
	return info
}
