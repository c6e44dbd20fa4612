// internal/writers/summary.go
package writers

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"vseek/internal/classify"
	"vseek/internal/jsonutil"
	"vseek/pkg/api"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RunReport is what a classify run prints when it ends.
type RunReport struct {
	Summary   classify.Summary
	Out       string // count table path
	Threshold float64
}

func init() {
	RegisterSummary(FormatText, writeSummaryText)
	RegisterSummary(FormatJSON, func(w io.Writer, r RunReport) error {
		return jsonutil.EncodePretty(w, ToAPISummary(r))
	})
}

// ToAPISummary converts a run report to its wire form.
func ToAPISummary(r RunReport) api.SummaryV1 {
	s := r.Summary
	counts := map[string]int{}
	if s.Counts != nil {
		counts = s.Counts.Snapshot()
	}
	return api.SummaryV1{
		Reads:        s.Reads,
		Classified:   s.Classified,
		Unclassified: s.Unclassified,
		Degenerate:   s.Degenerate,
		Malformed:    s.Malformed,
		Checkpoints:  s.Checkpoints,
		Counts:       counts,
		ElapsedMS:    s.Elapsed.Milliseconds(),
		Out:          r.Out,
		Threshold:    r.Threshold,
	}
}

type countRow struct {
	id string
	n  int
}

// rankCounts orders accessions by count, highest first, then by id.
func rankCounts(t *classify.CountTable) []countRow {
	if t == nil {
		return nil
	}
	rows := make([]countRow, 0, t.Len())
	for _, id := range t.Keys() {
		rows = append(rows, countRow{id, t.Get(id)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].n > rows[j].n })
	return rows
}

func writeSummaryText(w io.Writer, r RunReport) error {
	s := r.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	line := func(k string, v any) { _, _ = fmt.Fprintf(tw, "%s\t%v\n", k, v) }

	line("reads", humanize.Comma(int64(s.Reads)))
	line("classified", humanize.Comma(int64(s.Classified)))
	line("unclassified", humanize.Comma(int64(s.Unclassified)))
	if s.Degenerate > 0 {
		line("degenerate", humanize.Comma(int64(s.Degenerate)))
	}
	if s.Malformed > 0 {
		line("malformed", humanize.Comma(int64(s.Malformed)))
	}
	line("threshold", r.Threshold)
	line("checkpoints", humanize.Comma(int64(s.Checkpoints)))
	line("elapsed", s.Elapsed.Round(time.Millisecond))
	if r.Out != "" {
		line("counts", r.Out)
	}

	if rows := rankCounts(s.Counts); len(rows) > 0 {
		_, _ = fmt.Fprintln(tw)
		_, _ = fmt.Fprintln(tw, "accession\treads")
		for _, row := range rows {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", row.id, humanize.Comma(int64(row.n)))
		}
	}
	return tw.Flush()
}
