package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fkozlowski/docpix"
	"github.com/fkozlowski/docpix/extract"
	"github.com/fkozlowski/docpix/fs"
	docslog "github.com/fkozlowski/docpix/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docpix"),
		kong.Description("Extract embedded images from Word (.docx) and EPUB documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no input paths specified. Run 'docpix --help' for usage")
	}
	for _, arg := range args {
		if arg == "help" || arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	inputs := append(cli.Inputs, cli.NamedInputs...)
	if len(inputs) == 0 {
		return fmt.Errorf("no input paths specified. Run 'docpix --help' for usage")
	}
	if cli.CoverFallback && !cli.CoverOnly {
		return fmt.Errorf("--cover-fallback requires --cover-only")
	}

	allowed, unknown := docpix.AllowedExtensions(cli.Formats)
	for _, format := range unknown {
		fmt.Fprintf(stderr, "Warning: Unrecognized format %q ignored\n", format)
	}

	var logger *slog.Logger
	var writer docpix.ImageWriter = fs.NewWriter()
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		writer = docslog.NewWriter(writer, logger)
	}

	var filter *docpix.MetadataFilter
	if cli.Title != "" || cli.Author != "" {
		filter = &docpix.MetadataFilter{Title: cli.Title, Author: cli.Author}
	}

	runner := &extract.Runner{
		Extractor: &extract.Extractor{
			Writer:        writer,
			Allowed:       allowed,
			CoverOnly:     cli.CoverOnly,
			CoverFallback: cli.CoverFallback,
			Filter:        filter,
			Logger:        logger,
			Out:           stdout,
		},
		Diag: stderr,
	}

	report, err := runner.Run(inputs, cli.Output, cli.Recursive)
	if err != nil {
		return err
	}

	if report.Images > 0 {
		fmt.Fprintf(stdout, "Processing complete! Extracted %d images from %d document(s).\n", report.Images, report.Documents)
	} else {
		fmt.Fprintln(stdout, "Processing complete! No images found.")
	}
	return nil
}
