package extract_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeDocx creates a minimal .docx archive at dir/name from ordered
// name/content entry pairs and returns its path.
func writeDocx(t *testing.T, dir, name string, entries [][2]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for _, entry := range entries {
		w, err := zw.Create(entry[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(entry[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

// writeCorruptDocx creates a .docx whose second image entry fails its
// checksum on read. The first entry is intact.
func writeCorruptDocx(t *testing.T, dir, name string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	w, err := zw.Create("word/media/image1.png")
	require.NoError(t, err)
	_, err = w.Write([]byte("png-bytes"))
	require.NoError(t, err)
	w, err = zw.CreateHeader(&zip.FileHeader{Name: "word/media/image2.jpg", Method: zip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte("jpg-payload"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	raw := bytes.Replace(buf.Bytes(), []byte("jpg-payload"), []byte("jpg-clobber"), 1)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0644))
	return path
}

// writeEPUB creates a minimal EPUB at dir/name. The container.xml pointing
// at OEBPS/content.opf is added automatically unless files provides one.
func writeEPUB(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	const containerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	w, err := zw.Create("mimetype")
	require.NoError(t, err)
	_, err = w.Write([]byte("application/epub+zip"))
	require.NoError(t, err)

	if _, ok := files["META-INF/container.xml"]; !ok {
		w, err := zw.Create("META-INF/container.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte(containerXML))
		require.NoError(t, err)
	}
	for entryName, content := range files {
		w, err := zw.Create(entryName)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

// bookOPF assembles a package document with the given metadata, manifest
// and guide fragments.
func bookOPF(metadata, manifest, guide string) string {
	return fmt.Sprintf(`<?xml version="1.0"?>
<package version="3.0" xmlns="http://www.idpf.org/2007/opf" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">%s</metadata>
  <manifest>%s</manifest>
  <spine><itemref idref="chap1"/></spine>
  %s
</package>`, metadata, manifest, guide)
}
