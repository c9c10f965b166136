package report

import (
	"io"
	"strings"

	"arcade-catalog/core/reconcile"

	"github.com/dustin/go-humanize"
)

// WriteDiff renders a catalog diff summary followed by the differing games.
func WriteDiff(w io.Writer, summary reconcile.Summary, diffs []reconcile.Result, opts Options) error {
	sections := []string{Table("Catalog diff", []string{"Outcome", "Games"}, [][]string{
		{"added", humanize.Comma(int64(summary.Added))},
		{"removed", humanize.Comma(int64(summary.Removed))},
		{"changed", humanize.Comma(int64(summary.Changed))},
		{"unchanged", humanize.Comma(int64(summary.Unchanged))},
	}, []Alignment{AlignLeft, AlignRight})}

	if len(diffs) > 0 {
		rows := make([][]string, 0, len(diffs))
		for _, d := range diffs {
			outcome := "changed"
			switch {
			case d.Added():
				outcome = "added"
			case d.Removed():
				outcome = "removed"
			}
			rows = append(rows, []string{outcome, d.Name, d.Key, strings.Join(d.Mismatch, "; ")})
		}
		sections = append(sections, Table(limitTitle("Differences", len(rows), opts.MaxRows),
			[]string{"Outcome", "Game", "Hash", "Mismatch"}, limit(rows, opts.MaxRows), nil))
	}
	_, err := io.WriteString(w, strings.Join(sections, "\n\n")+"\n")
	return err
}
