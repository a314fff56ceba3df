package slog

import (
	"log/slog"
	"time"

	"github.com/fkozlowski/docpix"
)

// Ensure Writer implements docpix.ImageWriter.
var _ docpix.ImageWriter = (*Writer)(nil)

// Writer wraps a docpix.ImageWriter with debug logging of written files.
type Writer struct {
	next   docpix.ImageWriter
	logger *slog.Logger
}

// NewWriter creates a new logging Writer.
func NewWriter(next docpix.ImageWriter, logger *slog.Logger) *Writer {
	return &Writer{next: next, logger: logger}
}

// WriteImage logs the output path, byte count and duration, and delegates.
func (w *Writer) WriteImage(img *docpix.Image) (string, error) {
	begin := time.Now()
	path, err := w.next.WriteImage(img)
	if err != nil {
		w.logger.Debug("image write failed",
			"dir", img.Dir,
			"error", err,
			"duration", time.Since(begin),
		)
		return "", err
	}
	w.logger.Debug("image written",
		"path", path,
		"bytes", len(img.Data),
		"duration", time.Since(begin),
	)
	return path, nil
}
