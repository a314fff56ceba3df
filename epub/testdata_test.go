package epub_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testContainerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// writeTestEPUB writes an EPUB (ZIP) archive to a temporary file and returns
// its path. The mimetype entry is written first, as EPUB requires.
// files maps zip-internal paths to content; container.xml is added unless
// the map provides its own.
func writeTestEPUB(t *testing.T, name string, files map[string]string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	write := func(entry, content string) {
		fw, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	write("mimetype", "application/epub+zip")
	if _, ok := files["META-INF/container.xml"]; !ok {
		write("META-INF/container.xml", testContainerXML)
	}
	for entry, content := range files {
		write(entry, content)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

// opfXML assembles a minimal package document from metadata, manifest, and
// guide fragments.
func opfXML(metadata, manifest, guide string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" version="3.0" unique-identifier="uid">
  <metadata>` + metadata + `</metadata>
  <manifest>` + manifest + `</manifest>
  <spine><itemref idref="chap1"/></spine>
  ` + guide + `
</package>`
}
