package catalog

import (
	"cmp"
	"slices"

	"arcade-catalog/core/lineage"
	"arcade-catalog/core/model"
)

// SkippedRelease is a release that could not be loaded.
type SkippedRelease struct {
	Release model.Release `json:"release"`
	Source  string        `json:"source"`
	Error   string        `json:"error"`
}

// Report is the operator-facing summary of a build.
type Report struct {
	Releases []ReleaseReport  `json:"releases"`
	Skipped  []SkippedRelease `json:"skipped"`
	Totals   Counts           `json:"totals"`
}

func (r *Report) sort() {
	slices.SortFunc(r.Releases, func(a, b ReleaseReport) int { return cmp.Compare(a.Release.Seq, b.Release.Seq) })
	slices.SortFunc(r.Skipped, func(a, b SkippedRelease) int { return cmp.Compare(a.Release.Seq, b.Release.Seq) })
}

// Unresolved returns every unresolved reference across releases.
func (r *Report) Unresolved() []model.UnresolvedReference {
	var out []model.UnresolvedReference
	for _, rel := range r.Releases {
		out = append(out, rel.Unresolved...)
	}
	return out
}

// ReleaseWarning is a lineage warning tagged with its release.
type ReleaseWarning struct {
	Release string
	lineage.Warning
}

// Warnings returns every lineage warning across releases.
func (r *Report) Warnings() []ReleaseWarning {
	var out []ReleaseWarning
	for _, rel := range r.Releases {
		for _, w := range rel.Warnings {
			out = append(out, ReleaseWarning{Release: rel.Release.Name(), Warning: w})
		}
	}
	return out
}
