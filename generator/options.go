package generator

import (
	"errors"

	"github.com/erraggy/schemagen/generrors"
	"github.com/erraggy/schemagen/internal/options"
	"github.com/erraggy/schemagen/schema"
)

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bundle   *schema.Bundle
	data     []byte

	packageName string
	outputDir   string
	header      string
	refPrefix   string
	strict      bool
	dryRun      bool
	gofumpt     bool

	renderer Renderer
	writer   Writer
	post     PostProcessor
	logger   Logger
}

// GenerateWithOptions generates code from a schema bundle using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("schema.json"),
//	    generator.WithOutputDir("pkg/yaml"),
//	    generator.WithPackageName("yaml"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		PackageName:   cfg.packageName,
		OutputDir:     cfg.outputDir,
		Header:        cfg.header,
		RefPrefix:     cfg.refPrefix,
		Strict:        cfg.strict,
		DryRun:        cfg.dryRun,
		Gofumpt:       cfg.gofumpt,
		Renderer:      cfg.renderer,
		Writer:        cfg.writer,
		PostProcessor: cfg.post,
		Logger:        cfg.logger,
	}

	switch {
	case cfg.filePath != nil:
		return g.GenerateFile(*cfg.filePath)
	case cfg.data != nil:
		b, err := schema.ParseBytes(cfg.data)
		if err != nil {
			return nil, err
		}
		return g.Generate(b)
	default:
		return g.Generate(cfg.bundle)
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		packageName: DefaultPackageName,
		refPrefix:   schema.DefaultRefPrefix,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(cfg.filePath != nil, cfg.bundle != nil, cfg.data != nil); err != nil {
		msg := "must specify exactly one input source"
		if errors.Is(err, options.ErrNoSource) {
			msg = "must specify an input source (use WithFilePath, WithBundle or WithBytes)"
		}
		return nil, &generrors.ConfigError{Option: "input", Message: msg, Cause: err}
	}

	return cfg, nil
}

// WithFilePath specifies a bundle file (JSON or YAML) as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		if path == "" {
			return &generrors.ConfigError{Option: "input", Message: "file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithBundle specifies an already decoded bundle as the input source
func WithBundle(b *schema.Bundle) Option {
	return func(cfg *generateConfig) error {
		if b == nil {
			return &generrors.ConfigError{Option: "input", Message: "bundle cannot be nil"}
		}
		cfg.bundle = b
		return nil
	}
}

// WithBytes specifies raw bundle content as the input source
func WithBytes(data []byte) Option {
	return func(cfg *generateConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.data = data
		return nil
	}
}

// WithOutputDir specifies the directory generated files are written to
func WithOutputDir(dir string) Option {
	return func(cfg *generateConfig) error {
		cfg.outputDir = dir
		return nil
	}
}

// WithPackageName specifies the Go package name for generated code
// Default: "yaml"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return &generrors.ConfigError{Option: "package", Message: "package name cannot be empty"}
		}
		cfg.packageName = name
		return nil
	}
}

// WithHeader specifies a header, typically a license, placed above the package clause
func WithHeader(header string) Option {
	return func(cfg *generateConfig) error {
		cfg.header = header
		return nil
	}
}

// WithRefPrefix specifies the pointer prefix of local definition references
// Default: "#/definitions/"
func WithRefPrefix(prefix string) Option {
	return func(cfg *generateConfig) error {
		if prefix == "" {
			return &generrors.ConfigError{Option: "ref-prefix", Message: "reference prefix cannot be empty"}
		}
		cfg.refPrefix = prefix
		return nil
	}
}

// WithRenderer replaces the template renderer
func WithRenderer(r Renderer) Option {
	return func(cfg *generateConfig) error {
		cfg.renderer = r
		return nil
	}
}

// WithWriter replaces the directory writer
func WithWriter(w Writer) Option {
	return func(cfg *generateConfig) error {
		cfg.writer = w
		return nil
	}
}

// WithPostProcessor replaces the default formatter
func WithPostProcessor(p PostProcessor) Option {
	return func(cfg *generateConfig) error {
		cfg.post = p
		return nil
	}
}

// WithGofumpt enables or disables the gofumpt pass of the default formatter
// Default: false
func WithGofumpt(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gofumpt = enabled
		return nil
	}
}

// WithLogger sets the logger
// Default: NopLogger
func WithLogger(l Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithDryRun enables or disables dry-run mode (render only, nothing written)
// Default: false
func WithDryRun(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.dryRun = enabled
		return nil
	}
}

// WithStrict enables or disables strict mode (dangling references fail the run)
// Default: false
func WithStrict(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strict = enabled
		return nil
	}
}
