// Package report renders aggregated interest scores as tables, related
// query listings and CSV.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/akvise/trends-checker/pkg/checker"
	"github.com/akvise/trends-checker/pkg/summary"
)

const (
	// DisplayWide is one row per region, one column per keyword.
	DisplayWide = "wide"
	// DisplayVertical is one block per region, keywords sorted by score.
	DisplayVertical = "vertical"

	barWidth = 20
)

// Render writes the summary table in the requested layout. On failure the
// caller should fall back to RenderPlain; the grouping and ordering rules
// are the same in both.
func Render(w io.Writer, result *checker.Result, display string) (err error) {
	// tablewriter panics on malformed input instead of returning errors;
	// convert that into the fallback path.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("table rendering failed: %v", r)
		}
	}()

	fmt.Fprintln(w, "\n=== Mean interest over time (YouTube Search) ===")
	if display == DisplayWide {
		renderWide(w, result)
		return nil
	}
	renderVertical(w, result)
	return nil
}

func renderWide(w io.Writer, result *checker.Result) {
	table := newTable(w)
	table.SetHeader(append([]string{"geo"}, result.Keywords...))
	for _, row := range result.Rows {
		cells := []string{row.Geo}
		for _, kw := range result.Keywords {
			cells = append(cells, formatScore(row.Means[kw]))
		}
		table.Append(cells)
	}
	table.Render()
}

func renderVertical(w io.Writer, result *checker.Result) {
	for _, row := range result.Rows {
		fmt.Fprintf(w, "\n--- [%s] ---\n", row.Geo)
		table := newTable(w)
		table.SetHeader([]string{"keyword", "mean", "bar"})
		for _, kw := range sortedByMean(result.Keywords, row) {
			v := row.Means[kw]
			table.Append([]string{kw, formatScore(v), Bar(v)})
		}
		table.Render()
	}
}

// RenderPlain is the fixed-format fallback renderer.
func RenderPlain(w io.Writer, result *checker.Result, display string) {
	if display == DisplayWide {
		fmt.Fprint(w, "geo")
		for _, kw := range result.Keywords {
			fmt.Fprintf(w, "\t%s", kw)
		}
		fmt.Fprintln(w)
		for _, row := range result.Rows {
			fmt.Fprint(w, row.Geo)
			for _, kw := range result.Keywords {
				fmt.Fprintf(w, "\t%s", formatScore(row.Means[kw]))
			}
			fmt.Fprintln(w)
		}
		return
	}
	for _, row := range result.Rows {
		fmt.Fprintf(w, "\n[%s]\n", row.Geo)
		for _, kw := range sortedByMean(result.Keywords, row) {
			fmt.Fprintf(w, "  - %s: %s\n", kw, formatScore(row.Means[kw]))
		}
	}
}

// RenderRelated writes the rising related-query blocks in region order.
func RenderRelated(w io.Writer, result *checker.Result) {
	for _, region := range result.Related {
		fmt.Fprintf(w, "\n=== Rising related queries [%s] ===\n", region.Geo)
		for _, kw := range result.Keywords {
			rising := region.Queries[kw]
			if len(rising) == 0 {
				fmt.Fprintf(w, "\n%s: (no rising queries)\n", kw)
				continue
			}
			fmt.Fprintf(w, "\n%s:\n", kw)
			for _, rq := range rising {
				fmt.Fprintf(w, "  - %s (%d)\n", rq.Query, rq.Value)
			}
		}
	}
}

// Bar renders a proportional 20-character gauge for a 0-100 score.
func Bar(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	filled := int(v/100*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// sortedByMean orders keywords descending by mean score, keeping resolved
// order for ties.
func sortedByMean(keywords []string, row summary.Row) []string {
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.SliceStable(sorted, func(i, j int) bool {
		return row.Means[sorted[i]] > row.Means[sorted[j]]
	})
	return sorted
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	return table
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
