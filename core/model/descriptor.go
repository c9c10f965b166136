package model

// RomSpec is one rom entry of a game descriptor.
type RomSpec struct {
	Name string
	// Size defaults to 0 when the upstream attribute is missing. Some early releases carry a
	// mergesize attribute instead; the zero participates in identity hashing as-is.
	Size int64
	CRC  string
	SHA1 string
}

// DiskSpec is one disk entry of a game descriptor. Early releases only carry MD5, later ones only
// SHA1 and a transitional period carries both. Undumped disks carry neither.
type DiskSpec struct {
	Name string
	MD5  string
	SHA1 string
}

// HasHash reports whether the disk carries any hash at all.
func (d DiskSpec) HasHash() bool {
	return d.MD5 != "" || d.SHA1 != ""
}

// DriverSpec holds the per-release emulation quality flags of a game.
type DriverSpec struct {
	PaletteSize     string
	HiscoreSave     string
	RequiresArtwork string
	Unofficial      string
	Good            string
	Status          string
	Graphic         string
	CocktailMode    string
	SaveState       string
	Protection      string
	Emulation       string
	Cocktail        string
	Color           string
	NoSoundHardware string
	Sound           string
	Incomplete      string

	// Extra holds attributes not covered by the fields above. They take part in the content
	// hash so that a future attribute never silently merges two different drivers.
	Extra map[string]string
}

// Attributes returns the driver as a field map keyed by the upstream attribute names.
func (d DriverSpec) Attributes() map[string]string {
	attrs := map[string]string{
		"palettesize":     d.PaletteSize,
		"hiscoresave":     d.HiscoreSave,
		"requiresartwork": d.RequiresArtwork,
		"unofficial":      d.Unofficial,
		"good":            d.Good,
		"status":          d.Status,
		"graphic":         d.Graphic,
		"cocktailmode":    d.CocktailMode,
		"savestate":       d.SaveState,
		"protection":      d.Protection,
		"emulation":       d.Emulation,
		"cocktail":        d.Cocktail,
		"color":           d.Color,
		"nosoundhardware": d.NoSoundHardware,
		"sound":           d.Sound,
		"incomplete":      d.Incomplete,
	}
	mergeExtra(attrs, d.Extra)
	return attrs
}

// FeatureSpec is one feature entry (an imperfect or unemulated hardware aspect).
type FeatureSpec struct {
	Overall string
	Type    string
	Status  string
	Extra   map[string]string
}

// Attributes returns the feature as a field map keyed by the upstream attribute names.
func (f FeatureSpec) Attributes() map[string]string {
	attrs := map[string]string{
		"overall": f.Overall,
		"type":    f.Type,
		"status":  f.Status,
	}
	mergeExtra(attrs, f.Extra)
	return attrs
}

// mergeExtra copies extension attributes without letting them shadow a known field.
func mergeExtra(attrs, extra map[string]string) {
	for k, v := range extra {
		if _, known := attrs[k]; known {
			continue
		}
		attrs["x-"+k] = v
	}
}

// GameDescriptor is one game (or machine) element of a release, as supplied by the parser.
type GameDescriptor struct {
	Name         string
	Description  string
	Year         string
	Manufacturer string
	IsBIOS       bool
	IsDevice     bool
	Runnable     bool
	IsMechanical bool

	// CloneOf and RomOf are the raw parent names. Empty means absent.
	CloneOf string
	RomOf   string

	Roms     []RomSpec
	Disks    []DiskSpec
	Features []FeatureSpec
	Driver   *DriverSpec
}

// HasContent reports whether the descriptor has any asset that can form an identity.
func (g GameDescriptor) HasContent() bool {
	return len(g.Roms) > 0 || len(g.Disks) > 0
}

// ParentNames returns the distinct non-empty parent names, excluding self references.
func (g GameDescriptor) ParentNames() []string {
	var names []string
	for _, parent := range []string{g.CloneOf, g.RomOf} {
		if parent == "" || parent == g.Name {
			continue
		}
		if len(names) == 1 && names[0] == parent {
			continue
		}
		names = append(names, parent)
	}
	return names
}

// ReleaseInput is one release's fully materialised descriptor set.
type ReleaseInput struct {
	Release Release
	Games   []GameDescriptor
}
