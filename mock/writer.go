package mock

import "github.com/fkozlowski/docpix"

// Ensure Writer implements docpix.ImageWriter.
var _ docpix.ImageWriter = (*Writer)(nil)

// Writer is a mock implementation of docpix.ImageWriter.
type Writer struct {
	WriteImageFn func(img *docpix.Image) (string, error)
}

// WriteImage delegates to WriteImageFn.
func (w *Writer) WriteImage(img *docpix.Image) (string, error) {
	return w.WriteImageFn(img)
}
