// Package extract orchestrates image extraction from documents: container
// selection by document type, output-path allocation, and byte transfer.
package extract

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fkozlowski/docpix"
	"github.com/fkozlowski/docpix/epub"
	docslog "github.com/fkozlowski/docpix/slog"
	doczip "github.com/fkozlowski/docpix/zip"
)

// Extractor extracts images from a single document per call. Extraction is
// strictly sequential within a document because numeric suffix assignment
// depends on enumeration order.
type Extractor struct {
	// Writer persists extracted images.
	Writer docpix.ImageWriter

	// Allowed is the set of extensions to extract.
	Allowed map[string]bool

	// CoverOnly extracts only the cover image from EPUB documents.
	CoverOnly bool

	// CoverFallback extracts all images when CoverOnly is set and no cover
	// is found.
	CoverFallback bool

	// Filter optionally restricts EPUB processing by metadata. Non-matching
	// documents are skipped with a zero count.
	Filter *docpix.MetadataFilter

	// Logger enables debug logging of container operations when non-nil.
	Logger *slog.Logger

	// Out receives user-facing progress messages.
	Out io.Writer
}

// ProcessDocument extracts images from the document at inputPath into
// outDir and returns the number of files written. The output directory is
// not created when no candidates match.
func (e *Extractor) ProcessDocument(inputPath, outDir string) (int, error) {
	typ, ok := docpix.DetectType(inputPath)
	if !ok {
		return 0, docpix.Errorf(docpix.EINVALID, "unsupported file type: %s (supported: .docx, .epub)", inputPath)
	}

	switch typ {
	case docpix.TypeEpub:
		return e.processEpub(inputPath, outDir)
	default:
		return e.processDocx(inputPath, outDir)
	}
}

func (e *Extractor) processDocx(inputPath, outDir string) (int, error) {
	r, err := doczip.Open(inputPath, e.Allowed)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	return e.extractAll(e.container(r), outDir, r.BaseName(), inputPath)
}

func (e *Extractor) processEpub(inputPath, outDir string) (int, error) {
	r, err := epub.Open(inputPath, e.Allowed)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	md := r.Metadata()
	if e.Filter != nil && !e.Filter.Empty() && !e.Filter.Matches(md) {
		return 0, nil
	}

	if md.Title != "" {
		fmt.Fprintf(e.Out, "EPUB Title: %s\n", md.Title)
	}
	if md.Author != "" {
		fmt.Fprintf(e.Out, "EPUB Author: %s\n", md.Author)
	}

	if e.CoverOnly {
		return e.extractCover(r, outDir, inputPath)
	}
	return e.extractAll(e.container(r), outDir, r.BaseName(), inputPath)
}

// extractAll writes every candidate in enumeration order. A read or write
// failure aborts the document.
func (e *Extractor) extractAll(c docpix.Container, outDir, baseName, inputPath string) (int, error) {
	candidates := c.Candidates()
	if len(candidates) == 0 {
		return 0, nil
	}

	total := len(candidates)
	fmt.Fprintf(e.Out, "Found %d image files in %s.\n", total, inputPath)

	for seq, cand := range candidates {
		data, err := c.Read(cand.ID)
		if err != nil {
			return 0, err
		}
		outPath, err := e.Writer.WriteImage(&docpix.Image{
			Dir:      outDir,
			BaseName: baseName,
			Seq:      seq,
			Total:    total,
			Ext:      cand.Ext,
			Data:     data,
		})
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(e.Out, "Extracting to: %s\n", outPath)
	}
	return total, nil
}

// extractCover extracts exactly the cover image under the document's base
// name. A missing cover is not an error: it degrades to full enumeration
// when CoverFallback is set and to a zero count otherwise.
func (e *Extractor) extractCover(r *epub.Reader, outDir, inputPath string) (int, error) {
	cover, err := r.Cover()
	if err != nil {
		if docpix.ErrorCode(err) != docpix.ENOTFOUND {
			return 0, err
		}
		if e.CoverFallback {
			fmt.Fprintf(e.Out, "No cover image found in %s, falling back to extracting all images.\n", inputPath)
			return e.extractAll(e.container(r), outDir, r.BaseName(), inputPath)
		}
		fmt.Fprintf(e.Out, "No cover image found in %s\n", inputPath)
		return 0, nil
	}

	ext := docpix.ExtFromMIME(cover.MediaType)
	if ext == "" {
		ext = "jpg"
	}
	if !e.Allowed[ext] {
		fmt.Fprintf(e.Out, "Cover image format %q not in allowed formats, skipping.\n", ext)
		return 0, nil
	}

	outPath, err := e.Writer.WriteImage(&docpix.Image{
		Dir:      outDir,
		BaseName: r.BaseName(),
		Seq:      0,
		Total:    1,
		Ext:      ext,
		Data:     cover.Data,
	})
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(e.Out, "Extracting cover from %s to: %s\n", inputPath, outPath)
	return 1, nil
}

// container wraps c with debug logging when a logger is configured.
func (e *Extractor) container(c docpix.Container) docpix.Container {
	if e.Logger == nil {
		return c
	}
	return docslog.NewContainer(c, e.Logger)
}
