package extract

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fkozlowski/docpix"
)

// DiscoverDocuments expands the given input paths into a flat list of
// document paths. Files are kept as-is so that explicitly named files with
// an unsupported extension surface an error later instead of vanishing.
// Directories are scanned for supported documents, recursively when
// recursive is set. Missing or unreadable paths produce a warning on diag
// and are skipped.
func DiscoverDocuments(inputs []string, recursive bool, diag io.Writer) []string {
	var docs []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			fmt.Fprintf(diag, "Warning: input path does not exist: %s\n", input)
			continue
		}
		if !info.IsDir() {
			docs = append(docs, input)
			continue
		}
		docs = append(docs, scanDir(input, recursive, diag)...)
	}
	return docs
}

func scanDir(dir string, recursive bool, diag io.Writer) []string {
	if recursive {
		return walkDir(dir, diag)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(diag, "Warning: cannot read directory %s: %v\n", dir, err)
		return nil
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := docpix.DetectType(entry.Name()); ok {
			docs = append(docs, filepath.Join(dir, entry.Name()))
		}
	}
	return docs
}

func walkDir(dir string, diag io.Writer) []string {
	var docs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(diag, "Warning: cannot access %s: %v\n", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := docpix.DetectType(path); ok {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(diag, "Warning: cannot read directory %s: %v\n", dir, err)
	}
	return docs
}
