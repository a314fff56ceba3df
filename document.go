package docpix

import "strings"

// Type identifies a supported document container format.
type Type string

// Supported document types.
const (
	TypeDocx Type = "docx"
	TypeEpub Type = "epub"
)

// DetectType returns the document type implied by the path's file suffix,
// case-insensitively. The second return value is false for unsupported
// suffixes.
func DetectType(path string) (Type, bool) {
	switch ExtFromName(path) {
	case "docx":
		return TypeDocx, true
	case "epub":
		return TypeEpub, true
	}
	return "", false
}

// Candidate is an image entry selected for extraction. ID identifies the
// entry within its container (archive index for DOCX, manifest id for EPUB).
// Ext is the canonical lowercase extension used for the output filename.
type Candidate struct {
	ID  string
	Ext string
}

// Metadata holds document metadata used for output naming and filtering.
// Empty fields mean the document does not declare the value.
type Metadata struct {
	Title  string
	Author string
}

// MetadataFilter selects documents by case-insensitive substring match on
// title and/or author. Both set criteria must match.
type MetadataFilter struct {
	Title  string
	Author string
}

// Empty reports whether no filter criteria are set.
func (f *MetadataFilter) Empty() bool {
	return f.Title == "" && f.Author == ""
}

// Matches reports whether md satisfies every set criterion. An unset
// criterion always matches; a set criterion never matches absent metadata.
func (f *MetadataFilter) Matches(md Metadata) bool {
	if f.Title != "" && !containsFold(md.Title, f.Title) {
		return false
	}
	if f.Author != "" && !containsFold(md.Author, f.Author) {
		return false
	}
	return true
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Container enumerates image candidates in a document and reads their bytes.
// Implementations are not safe for concurrent use.
type Container interface {
	// Candidates returns the selected image entries in enumeration order.
	// The order is reproducible for the same document and determines the
	// numeric suffixes of output filenames.
	Candidates() []Candidate

	// Read returns the bytes of the entry identified by a Candidate ID.
	Read(id string) ([]byte, error)

	// Close releases the underlying archive handle.
	Close() error
}

// Image is one extracted image destined for the output directory. Seq is the
// zero-based position in enumeration order; Total is the number of matched
// images in the document and controls whether the filename carries a numeric
// suffix.
type Image struct {
	Dir      string
	BaseName string
	Seq      int
	Total    int
	Ext      string
	Data     []byte
}

// ImageWriter writes extracted images to storage.
type ImageWriter interface {
	// WriteImage writes img under a collision-free name and returns the
	// path actually written.
	WriteImage(img *Image) (string, error)
}
