// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemagen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemagen"
	"github.com/erraggy/schemagen/generator"
)

const serverInstructions = `schemagen MCP server — generates Go structs from a JSON-Schema bundle ("definitions" object, one x-file per definition).

Configuration: defaults are configurable via SCHEMAGEN_* environment variables set in your MCP client config.

Key settings:
- SCHEMAGEN_PACKAGE (default: yaml) — package clause of generated files
- SCHEMAGEN_GOFUMPT (default: false) — run gofumpt after goimports
- SCHEMAGEN_STRICT (default: false) — dangling $ref targets fail the run
- SCHEMAGEN_HEADER_FILE — file whose content is placed above the package clause
- SCHEMAGEN_CACHE_ENABLED (default: true) — cache decoded bundles per session
- SCHEMAGEN_CACHE_TTL (default: 15m) — cache TTL for decoded bundles

Use inspect first to preview types and output paths, then generate to write files.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemagen", Version: schemagen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate one Go file per definition of a JSON-Schema bundle. Output file names come from each definition's x-file annotation with the extension replaced by .go. Requires output_dir unless dry_run=true. Returns a manifest of generated files, failed definitions, and issues. Two definitions writing the same file fail the whole run before anything is written.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Preview the Go types a JSON-Schema bundle maps to without writing anything. Returns each definition's type name, output path, fields with Go types, and the variant table of tagged unions. Use definition to restrict the output to one definition.",
	}, handleInspect)
}

// toolLogger routes generator logs to the process-wide slog logger (stderr).
func toolLogger(tool string) generator.Logger {
	return generator.NewSlogAdapter(slog.Default()).With("tool", tool)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// issueStrings renders result issues for tool output.
func issueStrings(result *generator.GenerateResult) []string {
	out := makeSlice[string](len(result.Issues))
	for _, iss := range result.Issues {
		out = append(out, iss.String())
	}
	return out
}

type failureInfo struct {
	Definition string `json:"definition"`
	Error      string `json:"error"`
}

func failureInfos(result *generator.GenerateResult) []failureInfo {
	out := makeSlice[failureInfo](len(result.Failures))
	for _, f := range result.Failures {
		out = append(out, failureInfo{Definition: f.Definition, Error: sanitizeError(f.Err)})
	}
	return out
}
