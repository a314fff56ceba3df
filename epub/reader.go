// Package epub reads EPUB containers: OPF metadata, the manifest resource
// map, and cover images.
package epub

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"

	"github.com/fkozlowski/docpix"
)

// maxResourceSize caps the decompressed size of a single resource to guard
// against zip bombs.
const maxResourceSize int64 = 256 << 20

// Ensure Reader implements docpix.Container at compile time.
var _ docpix.Container = (*Reader)(nil)

// Reader provides access to an EPUB's metadata and image resources.
// Enumeration order is manifest document order.
type Reader struct {
	zr         *zip.ReadCloser
	files      map[string]*zip.File // zip-internal path → entry
	opf        *opfDocument
	fallback   string // sanitized input filename stem
	candidates []docpix.Candidate
}

// Open opens the EPUB at path and selects the manifest image resources whose
// extension is in allowed. Resources with unsafe declared paths are skipped.
func Open(path string, allowed map[string]bool) (*Reader, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if stem == "" || stem == "." {
		return nil, docpix.Errorf(docpix.EINVALID, "invalid input filename %q", path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, docpix.WrapErrorf(docpix.EARCHIVE, err, "open archive %s", path)
	}

	r := &Reader{
		zr:       zr,
		fallback: docpix.SanitizeFilename(stem),
		files:    make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		if _, ok := r.files[f.Name]; !ok {
			r.files[f.Name] = f
		}
	}

	if err := r.init(); err != nil {
		zr.Close()
		return nil, err
	}

	for _, item := range r.opf.items {
		if !docpix.SafeArchivePath(item.Path) {
			continue
		}
		if !isImageMediaType(item.MediaType) {
			continue
		}
		ext := docpix.ExtFromName(item.Path)
		if ext == "" {
			ext = docpix.ExtFromMIME(item.MediaType)
		}
		if ext == "" || !allowed[ext] {
			continue
		}
		r.candidates = append(r.candidates, docpix.Candidate{ID: item.ID, Ext: ext})
	}
	return r, nil
}

// init locates and parses the container descriptor and package document.
func (r *Reader) init() error {
	containerData, err := r.readFile(containerPath)
	if err != nil {
		return err
	}
	opfPath, err := parseContainer(containerData)
	if err != nil {
		return err
	}
	opfData, err := r.readFile(opfPath)
	if err != nil {
		return err
	}
	opf, err := parseOPF(opfData, opfPath)
	if err != nil {
		return err
	}
	r.opf = opf
	return nil
}

// Metadata returns the document's Dublin Core title and creator.
func (r *Reader) Metadata() docpix.Metadata {
	return docpix.Metadata{Title: r.opf.title, Author: r.opf.creator}
}

// BaseName returns the output base name derived from metadata, falling back
// to the input filename stem when neither title nor creator is present.
func (r *Reader) BaseName() string {
	return docpix.FormatBaseName(r.opf.creator, r.opf.title, r.fallback)
}

// Candidates returns the selected image resources in manifest order.
func (r *Reader) Candidates() []docpix.Candidate { return r.candidates }

// Read returns the bytes of the manifest resource with the given id.
func (r *Reader) Read(id string) ([]byte, error) {
	item, ok := r.opf.byID[id]
	if !ok {
		return nil, docpix.Errorf(docpix.ENOTFOUND, "unknown resource %q", id)
	}
	return r.readFile(item.Path)
}

// Close releases the underlying archive handle.
func (r *Reader) Close() error { return r.zr.Close() }

// readFile reads a zip entry by its internal path.
func (r *Reader) readFile(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, docpix.Errorf(docpix.EARCHIVE, "missing archive entry %s", name)
	}
	if f.UncompressedSize64 > uint64(maxResourceSize) {
		return nil, docpix.Errorf(docpix.EARCHIVE, "archive entry %s too large (%d bytes)", name, f.UncompressedSize64)
	}

	src, err := f.Open()
	if err != nil {
		return nil, docpix.WrapErrorf(docpix.EARCHIVE, err, "open archive entry %s", name)
	}
	defer src.Close()

	// Read one byte past the limit to detect forged size declarations.
	data, err := io.ReadAll(io.LimitReader(src, maxResourceSize+1))
	if err != nil {
		return nil, docpix.WrapErrorf(docpix.EARCHIVE, err, "read archive entry %s", name)
	}
	if int64(len(data)) > maxResourceSize {
		return nil, docpix.Errorf(docpix.EARCHIVE, "archive entry %s exceeds size limit", name)
	}
	return data, nil
}

// isImageMediaType reports whether the media type has the image/ prefix.
func isImageMediaType(mediaType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "image/")
}
