package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagen/generator"
)

type generateInput struct {
	Bundle      bundleInput `json:"bundle"                  jsonschema:"The schema bundle to generate code from"`
	OutputDir   string      `json:"output_dir,omitempty"    jsonschema:"Directory to write generated files to (required unless dry_run)"`
	PackageName string      `json:"package_name,omitempty"  jsonschema:"Go package name for generated code (default: SCHEMAGEN_PACKAGE or yaml)"`
	Header      string      `json:"header,omitempty"        jsonschema:"License header placed above the package clause"`
	RefPrefix   string      `json:"ref_prefix,omitempty"    jsonschema:"Pointer prefix of local references (default: #/definitions/)"`
	Gofumpt     bool        `json:"gofumpt,omitempty"       jsonschema:"Run gofumpt after goimports"`
	Strict      bool        `json:"strict,omitempty"        jsonschema:"Fail the run on dangling references"`
	DryRun      bool        `json:"dry_run,omitempty"       jsonschema:"Render without writing files"`
}

type generatedFileInfo struct {
	Definition string   `json:"definition"`
	TypeName   string   `json:"type_name"`
	Path       string   `json:"path"`
	Size       int      `json:"size"`
	Variants   []string `json:"variants,omitempty"`
}

type generateOutput struct {
	Success     bool                `json:"success"`
	DryRun      bool                `json:"dry_run,omitempty"`
	OutputDir   string              `json:"output_dir,omitempty"`
	PackageName string              `json:"package_name"`
	FileCount   int                 `json:"file_count"`
	Files       []generatedFileInfo `json:"files"`
	Failures    []failureInfo       `json:"failures,omitempty"`
	Issues      []string            `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.OutputDir == "" && !input.DryRun {
		return errResult(fmt.Errorf("output_dir is required")), generateOutput{}, nil
	}

	bundle, err := input.Bundle.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	header := input.Header
	if header == "" && cfg.HeaderFile != "" {
		data, err := os.ReadFile(cfg.HeaderFile)
		if err != nil {
			return errResult(fmt.Errorf("failed to read header file: %w", err)), generateOutput{}, nil
		}
		header = string(data)
	}

	pkg := input.PackageName
	if pkg == "" {
		pkg = cfg.PackageName
	}

	opts := []generator.Option{
		generator.WithBundle(bundle),
		generator.WithPackageName(pkg),
		generator.WithOutputDir(input.OutputDir),
		generator.WithHeader(header),
		generator.WithGofumpt(input.Gofumpt || cfg.Gofumpt),
		generator.WithStrict(input.Strict || cfg.Strict),
		generator.WithDryRun(input.DryRun),
		generator.WithLogger(toolLogger("generate")),
	}
	if input.RefPrefix != "" {
		opts = append(opts, generator.WithRefPrefix(input.RefPrefix))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:     !result.Failed(),
		DryRun:      result.DryRun,
		OutputDir:   input.OutputDir,
		PackageName: result.PackageName,
		FileCount:   len(result.Files),
		Failures:    failureInfos(result),
		Issues:      issueStrings(result),
	}

	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		output.Files = append(output.Files, generatedFileInfo{
			Definition: f.Definition,
			TypeName:   f.TypeName,
			Path:       f.Path,
			Size:       f.Size,
			Variants:   f.Variants,
		})
	}

	return nil, output, nil
}
