// Package docpix extracts embedded image resources from ZIP-container
// document formats (DOCX, EPUB) into an output directory with deterministic,
// collision-free naming.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., zip/, epub/, fs/).
package docpix
