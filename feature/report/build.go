package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"arcade-catalog/core/catalog"

	"github.com/dustin/go-humanize"
)

// Options limits how much of a build report is printed.
type Options struct {
	// MaxRows caps the unresolved and warning tables. Zero prints everything.
	MaxRows int
}

// WriteBuild renders a build report: release summary, skipped releases, unresolved references,
// lineage warnings and totals. Empty sections are omitted.
func WriteBuild(w io.Writer, rep *catalog.Report, opts Options) error {
	var sections []string

	sections = append(sections, releaseTable(rep))
	if len(rep.Skipped) > 0 {
		sections = append(sections, skippedTable(rep))
	}
	if unresolved := rep.Unresolved(); len(unresolved) > 0 {
		rows := make([][]string, 0, len(unresolved))
		for _, u := range unresolved {
			rows = append(rows, []string{u.Release, u.Game, u.Attribute, u.Target, u.Reason})
		}
		sections = append(sections, Table(limitTitle("Unresolved references", len(rows), opts.MaxRows),
			[]string{"Release", "Game", "Attribute", "Target", "Reason"}, limit(rows, opts.MaxRows), nil))
	}
	if warnings := rep.Warnings(); len(warnings) > 0 {
		rows := make([][]string, 0, len(warnings))
		for _, warn := range warnings {
			rows = append(rows, []string{warn.Release, warn.Kind, warn.Game, warn.Target, warn.Detail})
		}
		sections = append(sections, Table(limitTitle("Lineage warnings", len(rows), opts.MaxRows),
			[]string{"Release", "Kind", "Game", "Target", "Detail"}, limit(rows, opts.MaxRows), nil))
	}
	sections = append(sections, totalsTable(rep.Totals))

	_, err := io.WriteString(w, strings.Join(sections, "\n\n")+"\n")
	return err
}

func releaseTable(rep *catalog.Report) string {
	rows := make([][]string, 0, len(rep.Releases))
	for _, r := range rep.Releases {
		status := "ok"
		switch {
		case r.LineageError != "":
			status = "lineage skipped"
		case r.Cached:
			status = "cached"
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Release.Seq),
			r.Release.Name(),
			humanize.Comma(int64(r.Games)),
			humanize.Comma(int64(r.Indexed)),
			humanize.Comma(int64(r.WithoutContent)),
			humanize.Comma(int64(len(r.Unresolved))),
			humanize.Comma(int64(len(r.Warnings))),
			status,
		})
	}
	return Table("Releases",
		[]string{"Seq", "Release", "Games", "Indexed", "No content", "Unresolved", "Warnings", "Status"},
		rows,
		[]Alignment{AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft})
}

func skippedTable(rep *catalog.Report) string {
	rows := make([][]string, 0, len(rep.Skipped))
	for _, s := range rep.Skipped {
		rows = append(rows, []string{s.Release.Name(), s.Source, s.Error})
	}
	return Table("Skipped releases", []string{"Release", "Source", "Error"}, rows, nil)
}

func totalsTable(c catalog.Counts) string {
	rows := [][]string{
		{"releases", humanize.Comma(int64(c.Releases))},
		{"games", humanize.Comma(int64(c.Games))},
		{"roms", humanize.Comma(int64(c.Roms))},
		{"game roms", humanize.Comma(int64(c.GameRoms))},
		{"disks", humanize.Comma(int64(c.Disks))},
		{"drivers", humanize.Comma(int64(c.Drivers))},
		{"features", humanize.Comma(int64(c.Features))},
		{"links", humanize.Comma(int64(c.Links))},
	}
	return Table("Totals", []string{"Table", "Rows"}, rows, []Alignment{AlignLeft, AlignRight})
}

func limit(rows [][]string, max int) [][]string {
	if max <= 0 || len(rows) <= max {
		return rows
	}
	return rows[:max]
}

func limitTitle(title string, n, max int) string {
	if max <= 0 || n <= max {
		return title
	}
	return fmt.Sprintf("%s (first %d of %d)", title, max, n)
}
