package report

import (
	"io"

	"github.com/petebuffon/scuwl/internal/model"
)

// Run aggregates everything a report writer needs about one invocation:
// the per-seed crawl reports and the size of the merged wordlist.
type Run struct {
	// Reports holds one entry per seed, in the order the seeds were given.
	Reports []*model.CrawlReport

	// TotalWords is the size of the final merged wordlist.
	TotalWords int
}

// Cancelled reports whether any crawl in the run was interrupted.
func (r *Run) Cancelled() bool {
	for _, rep := range r.Reports {
		if rep != nil && rep.Cancelled {
			return true
		}
	}
	return false
}

// Writer defines the interface for report output.
//
// Design decision: An interface rather than a concrete writer so output
// formats and destinations (file, stdout, buffer in tests) share one API.
type Writer interface {
	// Write outputs the run summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(run *Run) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
