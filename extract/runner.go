package extract

import (
	"fmt"
	"io"
)

// Report aggregates the outcome of a batch run.
type Report struct {
	// Images is the total number of image files written.
	Images int

	// Documents is the number of documents processed without error.
	Documents int

	// Failed is the number of documents that could not be processed.
	Failed int
}

// Runner processes a batch of documents, isolating per-document failures so
// one corrupt archive does not abort the rest of the batch.
type Runner struct {
	// Extractor processes individual documents.
	Extractor *Extractor

	// Diag receives per-document error diagnostics.
	Diag io.Writer
}

// Run discovers documents under the inputs and processes each into outDir.
// Per-document failures are reported on Diag and counted in the report. The
// only propagated error is the failure of a single explicitly named file,
// where aborting and aggregating are the same thing and the caller deserves
// the real error.
func (r *Runner) Run(inputs []string, outDir string, recursive bool) (Report, error) {
	docs := DiscoverDocuments(inputs, recursive, r.Diag)

	var report Report
	for _, doc := range docs {
		n, err := r.Extractor.ProcessDocument(doc, outDir)
		if err != nil {
			if len(inputs) == 1 && len(docs) == 1 && docs[0] == inputs[0] {
				return report, err
			}
			fmt.Fprintf(r.Diag, "Error processing %s: %v\n", doc, err)
			report.Failed++
			continue
		}
		if n > 0 {
			report.Images += n
			report.Documents++
		}
	}
	return report, nil
}
