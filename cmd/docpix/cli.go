package main

// CLI defines the command-line interface.
type CLI struct {
	Inputs        []string `arg:"" optional:"" name:"path" help:"Input documents or directories to scan."`
	NamedInputs   []string `name:"input" short:"i" help:"Additional input document or directory (repeatable)."`
	Output        string   `name:"output" short:"o" default:"." help:"Directory to write extracted images into."`
	Recursive     bool     `short:"r" help:"Recurse into subdirectories when scanning input directories."`
	Formats       []string `name:"format" short:"f" help:"Restrict extraction to the given image formats (e.g. png, jpg)."`
	CoverOnly     bool     `name:"cover-only" short:"c" help:"Extract only the cover image from EPUB files."`
	CoverFallback bool     `name:"cover-fallback" help:"With --cover-only, extract all images when no cover is found."`
	Title         string   `help:"Only process EPUB files whose title contains this text."`
	Author        string   `help:"Only process EPUB files whose author contains this text."`
	Verbose       bool     `short:"v" help:"Enable debug logging on stderr."`
}
