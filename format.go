package docpix

import "strings"

// supportedExtensions is the closed set of canonical image extensions. No
// other value can appear as a Candidate extension or output filename suffix.
var supportedExtensions = []string{
	"jpg", "jpeg", "png", "gif", "bmp", "tiff", "tif", "svg", "wmf", "emf", "webp", "ico",
}

// mimeExtensions maps image MIME types to canonical extensions.
var mimeExtensions = map[string]string{
	"image/jpeg":               "jpg",
	"image/png":                "png",
	"image/gif":                "gif",
	"image/bmp":                "bmp",
	"image/webp":               "webp",
	"image/svg+xml":            "svg",
	"image/tiff":               "tiff",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
	"image/x-emf":              "emf",
	"image/emf":                "emf",
	"image/x-wmf":              "wmf",
	"image/wmf":                "wmf",
}

// SupportedExtensions returns the full set of supported image extensions.
// The returned map is a fresh copy the caller may modify.
func SupportedExtensions() map[string]bool {
	m := make(map[string]bool, len(supportedExtensions))
	for _, ext := range supportedExtensions {
		m[ext] = true
	}
	return m
}

// ExtFromName returns the lowercased extension of a file name or path, or ""
// when the name has none.
func ExtFromName(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	// A dot starting the final path segment marks a dotfile, not a suffix.
	if i == 0 || name[i-1] == '/' || name[i-1] == '\\' {
		return ""
	}
	ext := strings.ToLower(name[i+1:])
	// A dot inside a directory component is not a suffix.
	if strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}

// ExtFromMIME returns the canonical extension for an image MIME type, or ""
// when the type is unknown.
func ExtFromMIME(mime string) string {
	return mimeExtensions[strings.ToLower(strings.TrimSpace(mime))]
}

// NormalizeFormat maps a user-supplied format token to its canonical
// extension group. "jpg" and "jpeg" name the same group, as do "tiff" and
// "tif". Unrecognized tokens return nil.
func NormalizeFormat(token string) []string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "jpg", "jpeg":
		return []string{"jpg", "jpeg"}
	case "tiff", "tif":
		return []string{"tiff", "tif"}
	case "png":
		return []string{"png"}
	case "gif":
		return []string{"gif"}
	case "bmp":
		return []string{"bmp"}
	case "svg":
		return []string{"svg"}
	case "wmf":
		return []string{"wmf"}
	case "emf":
		return []string{"emf"}
	case "webp":
		return []string{"webp"}
	case "ico":
		return []string{"ico"}
	}
	return nil
}

// AllowedExtensions resolves user format tokens into the allowed-extension
// set, returning any unrecognized tokens alongside. When no token resolves,
// the full supported set is returned.
func AllowedExtensions(formats []string) (allowed map[string]bool, unknown []string) {
	allowed = make(map[string]bool)
	for _, f := range formats {
		exts := NormalizeFormat(f)
		if len(exts) == 0 {
			if tok := strings.TrimSpace(f); tok != "" {
				unknown = append(unknown, tok)
			}
			continue
		}
		for _, ext := range exts {
			allowed[ext] = true
		}
	}
	if len(allowed) == 0 {
		return SupportedExtensions(), unknown
	}
	return allowed, unknown
}
