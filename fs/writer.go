// Package fs writes extracted images to the local filesystem with
// collision-free naming.
package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fkozlowski/docpix"
)

// maxNameAttempts bounds the unique-name probe loop. Collisions beyond the
// first few indicate external tampering with the output directory, so the
// loop must terminate rather than spin.
const maxNameAttempts = 1000

// Ensure Writer implements docpix.ImageWriter at compile time.
var _ docpix.ImageWriter = (*Writer)(nil)

// Writer writes images to an output directory.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer { return &Writer{} }

// UniquePath derives the output path for the image at position seq of total.
// The filename is "{base}_{seq+1}.{ext}" when the document yields more than
// one image, "{base}.{ext}" otherwise. If the path already exists, a counter
// is appended to the stem and the filesystem re-probed, at most
// maxNameAttempts times. UniquePath only probes; it never creates the file.
func UniquePath(dir, baseName string, seq, total int, ext string) (string, error) {
	stem := baseName
	if total > 1 {
		stem = fmt.Sprintf("%s_%d", baseName, seq+1)
	}

	p := filepath.Join(dir, stem+"."+ext)
	if !exists(p) {
		return p, nil
	}
	for counter := 1; counter <= maxNameAttempts; counter++ {
		p = filepath.Join(dir, fmt.Sprintf("%s_%d.%s", stem, counter, ext))
		if !exists(p) {
			return p, nil
		}
	}
	return "", docpix.Errorf(docpix.ECONFLICT, "no unique filename for %q after %d attempts", stem, maxNameAttempts)
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// WriteImage allocates a unique path for img and writes its bytes through a
// buffered writer. The output directory is created if missing. Returns the
// path actually written.
func (w *Writer) WriteImage(img *docpix.Image) (string, error) {
	outPath, err := UniquePath(img.Dir, img.BaseName, img.Seq, img.Total, img.Ext)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(img.Dir, 0755); err != nil {
		return "", docpix.WrapErrorf(docpix.EFILESYSTEM, err, "create output directory %s", img.Dir)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", docpix.WrapErrorf(docpix.EFILESYSTEM, err, "create output file %s", outPath)
	}

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(img.Data); err != nil {
		f.Close()
		return "", docpix.WrapErrorf(docpix.EFILESYSTEM, err, "write image data to %s", outPath)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return "", docpix.WrapErrorf(docpix.EFILESYSTEM, err, "write image data to %s", outPath)
	}
	if err := f.Close(); err != nil {
		return "", docpix.WrapErrorf(docpix.EFILESYSTEM, err, "close output file %s", outPath)
	}
	return outPath, nil
}
