package extract_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fkozlowski/docpix"
	"github.com/fkozlowski/docpix/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_AggregatesAcrossDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDocx(t, dir, "a.docx", [][2]string{
		{"word/media/image1.png", "png-bytes"},
		{"word/media/image2.jpg", "jpg-bytes"},
	})
	writeDocx(t, dir, "b.docx", [][2]string{
		{"word/media/image1.gif", "gif-bytes"},
	})
	outDir := filepath.Join(dir, "out")
	var out bytes.Buffer
	r := &extract.Runner{Extractor: newTestExtractor(&out), Diag: &out}

	report, err := r.Run([]string{dir}, outDir, false)

	require.NoError(t, err)
	assert.Equal(t, extract.Report{Images: 3, Documents: 2}, report)
}

func TestRun_IsolatesPerDocumentFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeDocx(t, dir, "good.docx", [][2]string{
		{"word/media/image1.png", "png-bytes"},
	})
	bad := touch(t, filepath.Join(dir, "bad.docx"))
	outDir := filepath.Join(dir, "out")
	var out, diag bytes.Buffer
	r := &extract.Runner{Extractor: newTestExtractor(&out), Diag: &diag}

	report, err := r.Run([]string{bad, good}, outDir, false)

	require.NoError(t, err)
	assert.Equal(t, extract.Report{Images: 1, Documents: 1, Failed: 1}, report)
	assert.Contains(t, diag.String(), "Error processing "+bad+":")
}

func TestRun_SingleExplicitFilePropagatesError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := touch(t, filepath.Join(dir, "bad.docx"))
	var out, diag bytes.Buffer
	r := &extract.Runner{Extractor: newTestExtractor(&out), Diag: &diag}

	_, err := r.Run([]string{bad}, filepath.Join(dir, "out"), false)

	require.Error(t, err)
	assert.Equal(t, docpix.EARCHIVE, docpix.ErrorCode(err))
}
