package docpix

import (
	"strings"
	"unicode"
)

// SafeArchivePath reports whether an archive entry name can be materialized
// without escaping the output directory. Names containing a parent-directory
// segment or starting with a path separator are rejected, on both the
// forward- and back-slash conventions.
func SafeArchivePath(name string) bool {
	if name == "" {
		return false
	}
	if name[0] == '/' || name[0] == '\\' {
		return false
	}
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, seg := range segments {
		if seg == ".." {
			return false
		}
	}
	return true
}

// SanitizeFilename returns s with every character unsafe in a filesystem
// path component replaced by an underscore, then trimmed of surrounding
// whitespace. Sanitizing an already-sanitized string yields the same string.
func SanitizeFilename(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r) || r == 0 || unicode.IsControl(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// FormatBaseName derives the output base name from document metadata:
// "{author} - {title}" when both are non-blank after trimming, the single
// present field otherwise, and fallback when neither is present. The result
// is sanitized.
func FormatBaseName(author, title, fallback string) string {
	author = strings.TrimSpace(author)
	title = strings.TrimSpace(title)

	var raw string
	switch {
	case author != "" && title != "":
		raw = author + " - " + title
	case title != "":
		raw = title
	case author != "":
		raw = author
	default:
		raw = fallback
	}
	return SanitizeFilename(raw)
}
