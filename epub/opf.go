package epub

import (
	"net/url"
	"path"
	"strings"

	"github.com/beevik/etree"

	"github.com/fkozlowski/docpix"
)

// containerPath is the fixed location of the OCF container descriptor.
const containerPath = "META-INF/container.xml"

// oebpsPackageType is the media-type of an OPF rootfile declaration.
const oebpsPackageType = "application/oebps-package+xml"

// manifestItem is a resource declared in the OPF manifest.
type manifestItem struct {
	ID         string
	Href       string // as declared, relative to the OPF directory
	Path       string // resolved zip-internal path
	MediaType  string
	Properties string
}

// guideRef is an EPUB 2 guide reference.
type guideRef struct {
	Type string
	Href string
}

// opfDocument is the parsed subset of an OPF package document.
type opfDocument struct {
	title   string
	creator string
	coverID string // EPUB 2 <meta name="cover" content="ID"/>
	baseDir string // OPF directory, "" when the OPF sits at the zip root
	items   []manifestItem // manifest in document order
	byID    map[string]*manifestItem
	guide   []guideRef
}

// parseContainer parses META-INF/container.xml and returns the OPF rootfile
// path.
func parseContainer(data []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", docpix.WrapErrorf(docpix.EARCHIVE, err, "parse %s", containerPath)
	}

	rootfiles := doc.FindElements("//rootfile")
	for _, rf := range rootfiles {
		fullPath := rf.SelectAttrValue("full-path", "")
		if fullPath == "" {
			continue
		}
		mediaType := rf.SelectAttrValue("media-type", "")
		if mediaType == oebpsPackageType || mediaType == "" {
			return fullPath, nil
		}
	}

	// No media-type match; fall back to the first declared rootfile.
	for _, rf := range rootfiles {
		if fullPath := rf.SelectAttrValue("full-path", ""); fullPath != "" {
			return fullPath, nil
		}
	}
	return "", docpix.Errorf(docpix.EARCHIVE, "no rootfile in %s", containerPath)
}

// parseOPF parses the package document at opfPath. Manifest order is
// preserved as declared, which fixes candidate enumeration order.
func parseOPF(data []byte, opfPath string) (*opfDocument, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, docpix.WrapErrorf(docpix.EARCHIVE, err, "parse package document %s", opfPath)
	}

	root := doc.Root()
	if root == nil || root.Tag != "package" {
		return nil, docpix.Errorf(docpix.EARCHIVE, "invalid package document %s", opfPath)
	}

	opf := &opfDocument{byID: make(map[string]*manifestItem)}
	if baseDir := path.Dir(opfPath); baseDir != "." {
		opf.baseDir = baseDir
	}

	// Dublin Core elements carry the dc: prefix, so children are matched by
	// local tag rather than by path expression.
	if meta := childByTag(root, "metadata"); meta != nil {
		for _, el := range meta.ChildElements() {
			switch el.Tag {
			case "title":
				if opf.title == "" {
					opf.title = strings.TrimSpace(el.Text())
				}
			case "creator":
				if opf.creator == "" {
					opf.creator = strings.TrimSpace(el.Text())
				}
			case "meta":
				if opf.coverID == "" && strings.EqualFold(el.SelectAttrValue("name", ""), "cover") {
					opf.coverID = el.SelectAttrValue("content", "")
				}
			}
		}
	}

	if manifest := childByTag(root, "manifest"); manifest != nil {
		for _, el := range manifest.ChildElements() {
			if el.Tag != "item" {
				continue
			}
			item := manifestItem{
				ID:         el.SelectAttrValue("id", ""),
				Href:       el.SelectAttrValue("href", ""),
				MediaType:  el.SelectAttrValue("media-type", ""),
				Properties: el.SelectAttrValue("properties", ""),
			}
			if item.ID == "" || item.Href == "" {
				continue
			}
			item.Path = resolveHref(opf.baseDir, item.Href)
			opf.items = append(opf.items, item)
		}
	}
	for i := range opf.items {
		opf.byID[opf.items[i].ID] = &opf.items[i]
	}

	if guide := childByTag(root, "guide"); guide != nil {
		for _, el := range guide.ChildElements() {
			if el.Tag != "reference" {
				continue
			}
			opf.guide = append(opf.guide, guideRef{
				Type: el.SelectAttrValue("type", ""),
				Href: el.SelectAttrValue("href", ""),
			})
		}
	}

	return opf, nil
}

// childByTag returns the first child element with the given local tag,
// ignoring namespace prefixes.
func childByTag(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// resolveHref resolves a declared href against the OPF directory into a
// zip-internal path. Fragments are stripped and percent-escapes decoded.
func resolveHref(baseDir, href string) string {
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		href = href[:idx]
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	if baseDir == "" {
		return path.Clean(href)
	}
	return path.Join(baseDir, href)
}
