package catalog

import (
	"errors"
	"fmt"
	"slices"

	"arcade-catalog/core/identity"
	"arcade-catalog/core/lineage"
	"arcade-catalog/core/model"
)

// ReleaseReport summarises the processing of one release.
type ReleaseReport struct {
	Release model.Release `json:"release"`
	// Games is the number of descriptors seen.
	Games int `json:"games"`
	// Indexed is the number of descriptors stored as games.
	Indexed int `json:"indexed"`
	// WithoutContent is the number of descriptors skipped for having neither roms nor disks.
	WithoutContent int `json:"without_content"`

	Unresolved []model.UnresolvedReference `json:"unresolved,omitempty"`
	Warnings   []lineage.Warning           `json:"warnings,omitempty"`
	// LineageError is set when the release's references could not be ordered.
	LineageError string `json:"lineage_error,omitempty"`
	// Cached is set when the batch came from the cache instead of being rebuilt.
	Cached bool `json:"cached,omitempty"`
}

// ProcessRelease builds the release-local dataset of one release. The returned error is only
// ever a hash collision; data defects are reported in the ReleaseReport.
func ProcessRelease(in model.ReleaseInput) (*Dataset, ReleaseReport, error) {
	rel := in.Release
	if rel.Key == "" {
		rel.Key = identity.ReleaseKey(rel.Product, rel.Version)
	}
	seq := rel.Seq
	rep := ReleaseReport{Release: rel}
	ds := NewDataset()

	if _, err := ds.releases.add(seq, rel.Key, rel); err != nil {
		return nil, rep, err
	}

	// Order parents first; a cycle keeps the ordering but skips resolution
	ord, err := lineage.Sort(in.Games)
	skipResolution := false
	if err != nil {
		if !errors.Is(err, lineage.ErrCycle) {
			return nil, rep, err
		}
		skipResolution = true
		rep.LineageError = err.Error()
	}
	rep.Warnings = ord.Warnings

	index := lineage.NameIndex{}
	for _, g := range ord.Games {
		rep.Games++
		if !g.HasContent() {
			rep.WithoutContent++
			continue
		}

		game, unresolved, linked, err := ds.indexGame(seq, rel, g, index, skipResolution)
		if err != nil {
			return nil, rep, fmt.Errorf("%s: game %s: %w", rel.Name(), g.Name, err)
		}
		if !linked {
			rep.Warnings = append(rep.Warnings, lineage.Warning{Kind: lineage.WarnDuplicateLink, Game: g.Name,
				Detail: "identical content already linked, driver and features of this entry dropped"})
			continue
		}
		for i := range unresolved {
			unresolved[i].Release = rel.Name()
		}
		rep.Unresolved = append(rep.Unresolved, unresolved...)
		index.Add(g.Name, game.Hash)
		rep.Indexed++
	}

	return ds, rep, nil
}

// indexGame stores one game descriptor with everything hanging off it. linked is false when the
// release already holds a link for the same identity.
func (d *Dataset) indexGame(seq int, rel model.Release, g model.GameDescriptor, index lineage.NameIndex, skipResolution bool) (game model.Game, unresolved []model.UnresolvedReference, linked bool, err error) {
	signature := identity.Signature(g.Roms, g.Disks)
	game = model.Game{
		Hash:         identity.GameHash(g.Name, signature),
		Name:         g.Name,
		Signature:    signature,
		Description:  g.Description,
		Year:         g.Year,
		Manufacturer: g.Manufacturer,
		IsBIOS:       g.IsBIOS,
		IsDevice:     g.IsDevice,
		Runnable:     g.Runnable,
		IsMechanical: g.IsMechanical,
	}

	if skipResolution {
		unresolved = lineage.Declared(g, model.ReasonLineageSkipped)
	} else {
		var parents lineage.Parents
		parents, unresolved = lineage.Resolve(g, index)
		game.CloneOf = parents.CloneOf
		game.RomOf = parents.RomOf
	}

	for _, spec := range g.Roms {
		rom := model.Rom{Hash: identity.RomHash(spec), Name: spec.Name, Size: spec.Size, CRC: spec.CRC, SHA1: spec.SHA1}
		if _, err := d.roms.add(seq, rom.Hash, rom); err != nil {
			return game, nil, false, err
		}
		if slices.Contains(game.Roms, rom.Hash) {
			continue
		}
		game.Roms = append(game.Roms, rom.Hash)
		join := model.GameRom{Hash: identity.GameRomHash(game.Hash, rom.Hash), Game: game.Hash, Rom: rom.Hash}
		if _, err := d.gameRoms.add(seq, join.Hash, join); err != nil {
			return game, nil, false, err
		}
	}

	link := model.Link{Hash: identity.LinkHash(game.Hash, rel.Key), Game: game.Hash, Release: rel.Key}
	for _, spec := range g.Disks {
		disk := model.Disk{Hash: identity.DiskHash(spec), Name: spec.Name, MD5: spec.MD5, SHA1: spec.SHA1}
		if _, err := d.disks.add(seq, disk.Hash, disk); err != nil {
			return game, nil, false, err
		}
		link.AddDisk(disk.Hash)
	}
	game.Disks = slices.Clone(link.Disks)

	if _, dup := d.links.get(link.Hash); dup {
		if _, err := d.games.add(seq, game.Hash, game); err != nil {
			return game, nil, false, err
		}
		return game, unresolved, false, nil
	}

	if g.Driver != nil {
		driver := model.Driver{Hash: identity.DriverHash(*g.Driver), DriverSpec: *g.Driver}
		if _, err := d.drivers.add(seq, driver.Hash, driver); err != nil {
			return game, nil, false, err
		}
		link.Driver = driver.Hash
	}
	for _, spec := range g.Features {
		feature := model.Feature{Hash: identity.FeatureHash(spec), FeatureSpec: spec}
		if _, err := d.features.add(seq, feature.Hash, feature); err != nil {
			return game, nil, false, err
		}
		link.AddFeature(feature.Hash)
	}

	if _, err := d.games.add(seq, game.Hash, game); err != nil {
		return game, nil, false, err
	}
	linked, err = d.links.add(seq, link.Hash, link)
	if err != nil {
		return game, nil, false, err
	}
	return game, unresolved, linked, nil
}
