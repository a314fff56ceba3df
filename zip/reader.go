// Package zip reads DOCX containers as ZIP archives and enumerates their
// embedded image entries.
package zip

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fkozlowski/docpix"
)

// maxEntrySize caps the decompressed size of a single archive entry to guard
// against zip bombs.
const maxEntrySize int64 = 256 << 20

// Ensure Reader implements docpix.Container at compile time.
var _ docpix.Container = (*Reader)(nil)

// Reader enumerates image entries in a DOCX (ZIP) archive. Enumeration order
// is archive storage order.
type Reader struct {
	rc         *zip.ReadCloser
	baseName   string
	candidates []docpix.Candidate
}

// Open opens the DOCX file at path and selects the entries whose extension
// is in allowed. Entries with unsafe names are skipped.
func Open(path string, allowed map[string]bool) (*Reader, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem == "" || stem == "." {
		return nil, docpix.Errorf(docpix.EINVALID, "invalid input filename %q", path)
	}

	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, docpix.WrapErrorf(docpix.EARCHIVE, err, "open archive %s", path)
	}

	r := &Reader{rc: rc, baseName: docpix.SanitizeFilename(stem)}
	for i, f := range rc.File {
		if !docpix.SafeArchivePath(f.Name) {
			continue
		}
		ext := docpix.ExtFromName(f.Name)
		if ext == "" || !allowed[ext] {
			continue
		}
		r.candidates = append(r.candidates, docpix.Candidate{ID: strconv.Itoa(i), Ext: ext})
	}
	return r, nil
}

// BaseName returns the sanitized input filename stem used for output naming.
func (r *Reader) BaseName() string { return r.baseName }

// Candidates returns the selected image entries in archive storage order.
func (r *Reader) Candidates() []docpix.Candidate { return r.candidates }

// Read returns the decompressed bytes of the entry identified by a Candidate
// ID (a decimal archive index).
func (r *Reader) Read(id string) ([]byte, error) {
	i, err := strconv.Atoi(id)
	if err != nil || i < 0 || i >= len(r.rc.File) {
		return nil, docpix.Errorf(docpix.EINVALID, "unknown archive entry %q", id)
	}

	f := r.rc.File[i]
	if f.UncompressedSize64 > uint64(maxEntrySize) {
		return nil, docpix.Errorf(docpix.EARCHIVE, "archive entry %s too large (%d bytes)", f.Name, f.UncompressedSize64)
	}

	src, err := f.Open()
	if err != nil {
		return nil, docpix.WrapErrorf(docpix.EARCHIVE, err, "open archive entry %s", f.Name)
	}
	defer src.Close()

	// Read one byte past the limit to detect forged size declarations.
	data, err := io.ReadAll(io.LimitReader(src, maxEntrySize+1))
	if err != nil {
		return nil, docpix.WrapErrorf(docpix.EARCHIVE, err, "read archive entry %s", f.Name)
	}
	if int64(len(data)) > maxEntrySize {
		return nil, docpix.Errorf(docpix.EARCHIVE, "archive entry %s exceeds size limit", f.Name)
	}
	return data, nil
}

// Close releases the underlying archive handle.
func (r *Reader) Close() error { return r.rc.Close() }
