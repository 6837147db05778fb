package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs run summaries as GitHub-flavored Markdown, suitable
// for dropping into an engagement log or a pentest report appendix.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(run *Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeCrawls(md, run)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run-level summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *Run) {
	md.H1("scuwl crawl report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seeds", strconv.Itoa(len(run.Reports))},
			{"Pages fetched", strconv.Itoa(w.totalFetched(run))},
			{"Pages failed", strconv.Itoa(w.totalFailed(run))},
			{"Distinct words", strconv.Itoa(run.TotalWords)},
			{"Status", w.statusText(run)},
		},
	})
	md.PlainText("")
}

// writeCrawls writes the per-seed table.
func (w *MarkdownWriter) writeCrawls(md *markdown.Markdown, run *Run) {
	md.H2("Crawls")
	md.PlainText("")

	rows := make([][]string, 0, len(run.Reports))
	for _, rep := range run.Reports {
		if rep == nil {
			continue
		}
		rows = append(rows, []string{
			"`" + rep.Seed + "`",
			rep.StartedAt.Format("2006-01-02 15:04:05 MST"),
			rep.Duration.Round(time.Millisecond).String(),
			strconv.Itoa(rep.PagesFetched),
			strconv.Itoa(rep.PagesFailed),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Seed", "Started", "Duration", "Fetched", "Failed"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) statusText(run *Run) string {
	if run.Cancelled() {
		return "Interrupted (partial results)"
	}
	return "Complete"
}

func (w *MarkdownWriter) totalFetched(run *Run) int {
	var n int
	for _, rep := range run.Reports {
		if rep != nil {
			n += rep.PagesFetched
		}
	}
	return n
}

func (w *MarkdownWriter) totalFailed(run *Run) int {
	var n int
	for _, rep := range run.Reports {
		if rep != nil {
			n += rep.PagesFailed
		}
	}
	return n
}

var _ Writer = (*MarkdownWriter)(nil)
