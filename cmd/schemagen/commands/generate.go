package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/schemagen"
	"github.com/erraggy/schemagen/generator"
	"github.com/erraggy/schemagen/internal/cliutil"
	"github.com/erraggy/schemagen/schema"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output      string
	PackageName string
	HeaderFile  string
	RefPrefix   string
	Gofumpt     bool
	Strict      bool
	DryRun      bool
	JSON        bool
	Verbose     bool
	Quiet       bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required unless --dry-run)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required unless --dry-run)")
	fs.StringVar(&flags.PackageName, "p", generator.DefaultPackageName, "Go package name for generated code")
	fs.StringVar(&flags.PackageName, "package", generator.DefaultPackageName, "Go package name for generated code")
	fs.StringVar(&flags.HeaderFile, "header", "", "file whose content is placed above the package clause (e.g. a license)")
	fs.StringVar(&flags.RefPrefix, "ref-prefix", schema.DefaultRefPrefix, "pointer prefix of local definition references")
	fs.BoolVar(&flags.Gofumpt, "gofumpt", false, "format generated files with gofumpt after goimports")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when a $ref does not resolve to a definition")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "render without writing any file")
	fs.BoolVar(&flags.JSON, "json", false, "print the run report as JSON")
	fs.BoolVar(&flags.Verbose, "v", false, "log per-property type decisions")
	fs.BoolVar(&flags.Quiet, "q", false, "only log errors and skip the summary")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: schemagen generate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Generate one Go file per definition of a JSON-Schema bundle.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.WriteSection(fs.Output(), "Examples",
			"schemagen generate -o ./pkg/yaml schema.json",
			"schemagen generate -o ./pkg/yaml -p spec --header LICENSE.header schema.yaml",
			"schemagen generate --dry-run --json schema.json",
			"cat schema.json | schemagen generate -o ./pkg/yaml -",
		)
		cliutil.WriteSection(fs.Output(), "Notes",
			"- Output file names come from each definition's x-file annotation",
			"- Two definitions writing the same file stop the run before anything is written",
			"- The exit status is non-zero when any definition fails",
		)
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(args, os.Stdin, os.Stdout, os.Stderr)
}

func runGenerate(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
	}
	bundlePath := fs.Arg(0)

	if flags.Output == "" && !flags.DryRun {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	opts := []generator.Option{
		generator.WithOutputDir(flags.Output),
		generator.WithPackageName(flags.PackageName),
		generator.WithRefPrefix(flags.RefPrefix),
		generator.WithGofumpt(flags.Gofumpt),
		generator.WithStrict(flags.Strict),
		generator.WithDryRun(flags.DryRun),
		generator.WithLogger(NewLogger(stderr, flags.Verbose, flags.Quiet)),
	}

	if flags.HeaderFile != "" {
		header, err := os.ReadFile(flags.HeaderFile)
		if err != nil {
			return fmt.Errorf("reading header: %w", err)
		}
		opts = append(opts, generator.WithHeader(string(header)))
	}

	if bundlePath == StdinFilePath {
		b, err := schema.ParseReader(stdin)
		if err != nil {
			return fmt.Errorf("parsing stdin: %w", err)
		}
		opts = append(opts, generator.WithBundle(b))
	} else {
		opts = append(opts, generator.WithFilePath(bundlePath))
	}

	startTime := time.Now()
	result, err := generator.GenerateWithOptions(opts...)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	switch {
	case flags.JSON:
		report, err := result.MarshalReport()
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		cliutil.Writef(stdout, "%s\n", report)
	case !flags.Quiet:
		printSummary(stdout, bundlePath, result, totalTime)
	}

	if result.Failed() {
		for _, f := range result.Failures {
			cliutil.Writef(stderr, "✗ %s: %v\n", f.Definition, f.Err)
		}
		if len(result.Failures) == 0 {
			return fmt.Errorf("generation failed: strict mode found %d error(s)", result.CountBySeverity(generator.SeverityError))
		}
		return fmt.Errorf("generation failed for %d definition(s)", len(result.Failures))
	}
	return nil
}

func printSummary(w io.Writer, bundlePath string, result *generator.GenerateResult, totalTime time.Duration) {
	cliutil.Writef(w, "Schema Code Generator\n")
	cliutil.Writef(w, "=====================\n\n")
	cliutil.Writef(w, "schemagen version: %s\n", schemagen.Version())
	cliutil.Writef(w, "Bundle: %s\n", FormatBundlePath(bundlePath))
	cliutil.Writef(w, "Package: %s\n", result.PackageName)
	cliutil.Writef(w, "Definitions: %d\n", result.Definitions)
	cliutil.Writef(w, "Total Time: %v\n\n", totalTime)

	if len(result.Issues) > 0 {
		cliutil.Writef(w, "Generation Issues (%d):\n", len(result.Issues))
		for _, issue := range result.Issues {
			cliutil.Writef(w, "  %s\n", issue.String())
		}
		cliutil.Writef(w, "\n")
	}

	if result.DryRun {
		cliutil.Writef(w, "Rendered Files (%d, dry run):\n", len(result.Files))
	} else {
		cliutil.Writef(w, "Generated Files (%d):\n", len(result.Files))
	}
	for _, file := range result.Files {
		cliutil.Writef(w, "  - %s (%d bytes)\n", filepath.Join(result.OutputDir, filepath.FromSlash(file.Path)), file.Size)
	}
	cliutil.Writef(w, "\n")

	if len(result.Failures) == 0 {
		cliutil.Writef(w, "✓ Generation successful")
		info, warnings := result.CountBySeverity(generator.SeverityInfo), result.CountBySeverity(generator.SeverityWarning)
		if info > 0 || warnings > 0 {
			cliutil.Writef(w, " (%d info, %d warnings)", info, warnings)
		}
		cliutil.Writef(w, "\n")
		return
	}
	cliutil.Writef(w, "✗ Generation completed with %d failed definition(s)\n", len(result.Failures))
}
