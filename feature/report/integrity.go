package report

import (
	"io"
	"slices"
	"strings"

	"arcade-catalog/feature/integrity/checks"

	"github.com/dustin/go-humanize"
)

// WriteSchema renders one row per table of a schema report, sorted by table name.
func WriteSchema(w io.Writer, rep *checks.SchemaReport) error {
	names := make([]string, 0, len(rep.Tables))
	for name := range rep.Tables {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([][]string, 0, len(names)+len(rep.Errors))
	for _, name := range names {
		tbl := rep.Tables[name]
		rows = append(rows, []string{
			name,
			tbl.Status,
			strings.Join(tbl.MissingColumns, ", "),
			strings.Join(tbl.TypeMismatches, ", "),
		})
	}
	for _, e := range rep.Errors {
		rows = append(rows, []string{"", checks.StatusError, e, ""})
	}
	_, err := io.WriteString(w, Table("Schema", []string{"Table", "Status", "Missing columns", "Type mismatches"}, rows, nil)+"\n")
	return err
}

// WriteOrphans renders the orphan counts.
func WriteOrphans(w io.Writer, rep *checks.OrphanReport) error {
	rows := make([][]string, 0, len(rep.Orphans))
	for _, o := range rep.Orphans {
		rows = append(rows, []string{o.Table, o.ReferencedBy, humanize.Comma(o.Count)})
	}
	_, err := io.WriteString(w, Table("Orphans", []string{"Table", "Referenced by", "Orphans"}, rows,
		[]Alignment{AlignLeft, AlignLeft, AlignRight})+"\n")
	return err
}
