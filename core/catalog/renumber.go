package catalog

import (
	"fmt"

	"arcade-catalog/core/model"
)

// ids assigns dense sequential ids to the keys of one table.
type ids[K ~string] struct {
	table string
	m     map[K]int64
}

func assign[K ~string](table string, keys []K) ids[K] {
	m := make(map[K]int64, len(keys))
	for i, k := range keys {
		m[k] = int64(i + 1)
	}
	return ids[K]{table: table, m: m}
}

func (x ids[K]) lookup(k K) (int64, error) {
	id, ok := x.m[k]
	if !ok {
		return 0, fmt.Errorf("%w: %s %s", ErrDanglingReference, x.table, k)
	}
	return id, nil
}

// optional resolves an optional foreign key. The empty key maps to nil.
func (x ids[K]) optional(k K) (*int64, error) {
	if k == "" {
		return nil, nil
	}
	id, err := x.lookup(k)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Renumber converts the dataset into integer keyed tables. Ids start at 1 and follow merge
// order. Every foreign key must resolve or ErrDanglingReference is returned.
func Renumber(d *Dataset) (*model.Tables, error) {
	releaseKeys := d.releases.sorted()
	gameKeys := d.games.sorted()
	romKeys := d.roms.sorted()
	diskKeys := d.disks.sorted()
	driverKeys := d.drivers.sorted()
	featureKeys := d.features.sorted()
	linkKeys := d.links.sorted()

	releaseIDs := assign("emulators", releaseKeys)
	gameIDs := assign("games", gameKeys)
	romIDs := assign("roms", romKeys)
	diskIDs := assign("disks", diskKeys)
	driverIDs := assign("drivers", driverKeys)
	featureIDs := assign("features", featureKeys)
	linkIDs := assign("game_emulator", linkKeys)

	t := &model.Tables{
		Games:         make([]model.GameRow, 0, len(gameKeys)),
		Roms:          make([]model.RomRow, 0, len(romKeys)),
		Emulators:     make([]model.EmulatorRow, 0, len(releaseKeys)),
		Disks:         make([]model.DiskRow, 0, len(diskKeys)),
		Features:      make([]model.FeatureRow, 0, len(featureKeys)),
		Drivers:       make([]model.DriverRow, 0, len(driverKeys)),
		GameRoms:      make([]model.GameRomRow, 0, len(d.gameRoms.rows)),
		GameEmulators: make([]model.GameEmulatorRow, 0, len(linkKeys)),
	}

	for i, k := range releaseKeys {
		r := d.releases.rows[k].Value
		t.Emulators = append(t.Emulators, model.EmulatorRow{ID: int64(i + 1), Name: r.Product, Version: r.Version})
	}

	for i, k := range gameKeys {
		g := d.games.rows[k].Value
		cloneOf, err := gameIDs.optional(g.CloneOf)
		if err != nil {
			return nil, fmt.Errorf("game %s clone_of: %w", g.Name, err)
		}
		romOf, err := gameIDs.optional(g.RomOf)
		if err != nil {
			return nil, fmt.Errorf("game %s rom_of: %w", g.Name, err)
		}
		for _, h := range g.Disks {
			if _, err := diskIDs.lookup(h); err != nil {
				return nil, fmt.Errorf("game %s: %w", g.Name, err)
			}
		}
		t.Games = append(t.Games, model.GameRow{
			ID:           int64(i + 1),
			Hash:         string(g.Hash),
			Name:         g.Name,
			Description:  g.Description,
			Year:         g.Year,
			Manufacturer: g.Manufacturer,
			IsBIOS:       g.IsBIOS,
			IsDevice:     g.IsDevice,
			Runnable:     g.Runnable,
			IsMechanical: g.IsMechanical,
			CloneOfID:    cloneOf,
			RomOfID:      romOf,
		})
	}

	for i, k := range romKeys {
		r := d.roms.rows[k].Value
		t.Roms = append(t.Roms, model.RomRow{ID: int64(i + 1), Name: r.Name, Size: r.Size, CRC: r.CRC, SHA1: r.SHA1})
	}
	for i, k := range diskKeys {
		r := d.disks.rows[k].Value
		t.Disks = append(t.Disks, model.DiskRow{ID: int64(i + 1), Name: r.Name, SHA1: r.SHA1, MD5: r.MD5})
	}
	for i, k := range featureKeys {
		r := d.features.rows[k].Value
		t.Features = append(t.Features, model.FeatureRow{ID: int64(i + 1), Overall: r.Overall, Type: r.Type, Status: r.Status})
	}
	for i, k := range driverKeys {
		r := d.drivers.rows[k].Value
		t.Drivers = append(t.Drivers, model.DriverRow{
			ID:              int64(i + 1),
			PaletteSize:     r.PaletteSize,
			HiscoreSave:     r.HiscoreSave,
			RequiresArtwork: r.RequiresArtwork,
			Unofficial:      r.Unofficial,
			Good:            r.Good,
			Status:          r.Status,
			Graphic:         r.Graphic,
			CocktailMode:    r.CocktailMode,
			SaveState:       r.SaveState,
			Protection:      r.Protection,
			Emulation:       r.Emulation,
			Cocktail:        r.Cocktail,
			Color:           r.Color,
			NoSoundHardware: r.NoSoundHardware,
			Sound:           r.Sound,
			Incomplete:      r.Incomplete,
		})
	}

	for _, k := range d.gameRoms.sorted() {
		j := d.gameRoms.rows[k].Value
		gameID, err := gameIDs.lookup(j.Game)
		if err != nil {
			return nil, err
		}
		romID, err := romIDs.lookup(j.Rom)
		if err != nil {
			return nil, err
		}
		t.GameRoms = append(t.GameRoms, model.GameRomRow{GameID: gameID, RomID: romID})
	}

	for _, k := range linkKeys {
		l := d.links.rows[k].Value
		id, _ := linkIDs.lookup(k)
		gameID, err := gameIDs.lookup(l.Game)
		if err != nil {
			return nil, err
		}
		releaseID, err := releaseIDs.lookup(l.Release)
		if err != nil {
			return nil, err
		}
		driverID, err := driverIDs.optional(l.Driver)
		if err != nil {
			return nil, err
		}
		t.GameEmulators = append(t.GameEmulators, model.GameEmulatorRow{ID: id, GameID: gameID, EmulatorID: releaseID, DriverID: driverID})

		for _, h := range l.Disks {
			diskID, err := diskIDs.lookup(h)
			if err != nil {
				return nil, err
			}
			t.GameEmulatorDisks = append(t.GameEmulatorDisks, model.GameEmulatorDiskRow{GameEmulatorID: id, DiskID: diskID})
		}
		for _, h := range l.Features {
			featureID, err := featureIDs.lookup(h)
			if err != nil {
				return nil, err
			}
			t.GameEmulatorFeatures = append(t.GameEmulatorFeatures, model.GameEmulatorFeatureRow{GameEmulatorID: id, FeatureID: featureID})
		}
	}

	return t, nil
}
