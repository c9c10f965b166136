package reconcile

// Result represents the reconciliation output for a single entity.
// It contains presence flags for each side and any detected mismatches.
type Result struct {
	// Key is the content hash identifying the entity on both sides.
	Key string `json:"key"`

	// Name is the display name of the entity.
	Name string `json:"name"`

	// Built indicates whether the entity exists in the freshly built catalog.
	Built bool `json:"built"`

	// Stored indicates whether the entity exists in the stored catalog.
	Stored bool `json:"stored"`

	// Mismatch contains descriptions of field mismatches between the two sides.
	// Each string describes a specific mismatch, e.g., "year: built=1981 stored=1982".
	Mismatch []string `json:"mismatch"`
}

// Added reports whether the entity is new in the built catalog.
func (r Result) Added() bool { return r.Built && !r.Stored }

// Removed reports whether the entity disappears from the stored catalog.
func (r Result) Removed() bool { return !r.Built && r.Stored }

// Changed reports whether the entity exists on both sides with different fields.
func (r Result) Changed() bool { return r.Built && r.Stored && len(r.Mismatch) > 0 }

// Summary counts results per outcome.
type Summary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
}

// Summarize counts results per outcome.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Added():
			s.Added++
		case r.Removed():
			s.Removed++
		case r.Changed():
			s.Changed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// Differences returns only the results that are not unchanged, in input order.
func Differences(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Added() || r.Removed() || r.Changed() {
			out = append(out, r)
		}
	}
	return out
}
