package report

import (
	"io"
	"strconv"
	"strings"

	"arcade-catalog/feature/validate"
)

// WriteValidation renders one summary row per release followed by the individual findings.
func WriteValidation(w io.Writer, results []validate.Result, opts Options) error {
	summary := make([][]string, 0, len(results))
	var findings [][]string
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		summary = append(summary, []string{
			r.Release.Name(),
			r.Root,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.ParentsOnly),
			strconv.Itoa(r.ChildrenAndParents),
			strconv.Itoa(r.ChildrenOnly),
			strconv.Itoa(r.NoRelationships),
			strconv.Itoa(r.ForwardReferences),
			strconv.Itoa(len(r.Warnings)),
			strconv.Itoa(len(r.Missing)),
			status,
		})
		for _, warn := range r.Warnings {
			findings = append(findings, []string{r.Release.Name(), warn.Kind, warn.Game, warn.Target, warn.Detail})
		}
		for _, m := range r.Missing {
			findings = append(findings, []string{r.Release.Name(), "missing_" + m.Attribute, m.Game, m.Target, ""})
		}
	}

	sections := []string{Table("Validation",
		[]string{"Release", "Root", "Games", "Parents", "Both", "Clones", "Standalone", "Forward", "Warnings", "Missing", "Status"},
		summary,
		[]Alignment{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft})}
	if len(findings) > 0 {
		sections = append(sections, Table(limitTitle("Findings", len(findings), opts.MaxRows),
			[]string{"Release", "Kind", "Game", "Target", "Detail"}, limit(findings, opts.MaxRows), nil))
	}
	_, err := io.WriteString(w, strings.Join(sections, "\n\n")+"\n")
	return err
}
