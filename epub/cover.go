package epub

import (
	"bytes"
	"net/url"
	"path"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/fkozlowski/docpix"
)

// CoverImage is a cover resource resolved from the package document.
type CoverImage struct {
	Path      string
	MediaType string
	Data      []byte
}

// Cover locates the cover image. Strategies are tried in priority order:
//  1. EPUB 3 manifest item with properties="cover-image"
//  2. EPUB 2 <meta name="cover" content="ID"/> resolved through the manifest
//  3. guide reference type="cover", scanning its XHTML page for the first image
//  4. manifest item whose id or href contains "cover" with an image media-type
//
// Returns ENOTFOUND when no strategy succeeds.
func (r *Reader) Cover() (*CoverImage, error) {
	if item := r.coverFromProperties(); item != nil {
		return r.loadCover(item)
	}
	if item := r.coverFromMetaCover(); item != nil {
		return r.loadCover(item)
	}
	if item := r.coverFromGuide(); item != nil {
		return r.loadCover(item)
	}
	if item := r.coverFromHeuristic(); item != nil {
		return r.loadCover(item)
	}
	return nil, docpix.Errorf(docpix.ENOTFOUND, "no cover image found")
}

func (r *Reader) coverFromProperties() *manifestItem {
	for i := range r.opf.items {
		item := &r.opf.items[i]
		if slices.Contains(strings.Fields(item.Properties), "cover-image") {
			return item
		}
	}
	return nil
}

func (r *Reader) coverFromMetaCover() *manifestItem {
	if r.opf.coverID == "" {
		return nil
	}
	item, ok := r.opf.byID[r.opf.coverID]
	if !ok {
		return nil
	}
	if isImageMediaType(item.MediaType) {
		return item
	}
	// The referenced item may be an XHTML cover page; scan it for an image.
	data, err := r.readFile(item.Path)
	if err != nil {
		return nil
	}
	if imgPath := firstImageInHTML(data, item.Path); imgPath != "" {
		return r.imageItemByPath(imgPath)
	}
	return nil
}

func (r *Reader) coverFromGuide() *manifestItem {
	for _, ref := range r.opf.guide {
		if !strings.EqualFold(ref.Type, "cover") {
			continue
		}
		pagePath := resolveHref(r.opf.baseDir, ref.Href)
		data, err := r.readFile(pagePath)
		if err != nil {
			continue
		}
		if imgPath := firstImageInHTML(data, pagePath); imgPath != "" {
			if item := r.imageItemByPath(imgPath); item != nil {
				return item
			}
		}
	}
	return nil
}

func (r *Reader) coverFromHeuristic() *manifestItem {
	for i := range r.opf.items {
		item := &r.opf.items[i]
		if !isImageMediaType(item.MediaType) {
			continue
		}
		if containsFold(item.ID, "cover") || containsFold(item.Href, "cover") {
			return item
		}
	}
	return nil
}

// imageItemByPath resolves a zip-internal image path back to a manifest item
// with an image media-type.
func (r *Reader) imageItemByPath(p string) *manifestItem {
	for i := range r.opf.items {
		item := &r.opf.items[i]
		if !isImageMediaType(item.MediaType) {
			continue
		}
		if item.Path == p || strings.EqualFold(item.Path, p) {
			return item
		}
	}
	return nil
}

func (r *Reader) loadCover(item *manifestItem) (*CoverImage, error) {
	data, err := r.readFile(item.Path)
	if err != nil {
		return nil, err
	}
	return &CoverImage{Path: item.Path, MediaType: item.MediaType, Data: data}, nil
}

// firstImageInHTML returns the zip-internal path of the first <img> (or SVG
// <image>) referenced by the page, resolved against basePath's directory.
// Returns "" when the page references no image.
func firstImageInHTML(data []byte, basePath string) string {
	tz := html.NewTokenizer(bytes.NewReader(data))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tz.TagName()
			if !hasAttr {
				continue
			}
			switch atom.Lookup(name) {
			case atom.Img:
				if src := tagAttr(tz, "src"); src != "" {
					return resolvePagePath(basePath, src)
				}
			case atom.Image:
				if href := tagAttr(tz, "href", "xlink:href"); href != "" {
					return resolvePagePath(basePath, href)
				}
			}
		}
	}
}

// tagAttr returns the first non-empty value among the named attributes of
// the current tag.
func tagAttr(tz *html.Tokenizer, names ...string) string {
	for {
		key, val, more := tz.TagAttr()
		if v := string(val); v != "" && slices.Contains(names, string(key)) {
			return v
		}
		if !more {
			return ""
		}
	}
}

// resolvePagePath resolves an image reference relative to the directory of
// the page that contains it. Unsafe results resolve to "".
func resolvePagePath(basePath, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "/") {
		return ""
	}
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		href = href[:idx]
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	p := path.Join(path.Dir(basePath), href)
	if !docpix.SafeArchivePath(p) {
		return ""
	}
	return p
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
