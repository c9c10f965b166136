package catalog

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"arcade-catalog/core/model"
)

// Entry is a stored record together with its merge position.
type Entry[T any] struct {
	Origin  int `json:"origin"`
	Ordinal int `json:"ordinal"`
	Value   T   `json:"value"`
}

type record[T any] interface {
	SameIdentity(T) bool
}

// table is a content-addressed map of entries.
type table[K ~string, T record[T]] struct {
	name string
	rows map[K]Entry[T]
	next int
}

func newTable[K ~string, T record[T]](name string) *table[K, T] {
	return &table[K, T]{name: name, rows: make(map[K]Entry[T])}
}

// add stores a record produced by the release being built.
func (t *table[K, T]) add(origin int, key K, v T) (bool, error) {
	inserted, err := t.put(key, Entry[T]{Origin: origin, Ordinal: t.next, Value: v})
	if inserted {
		t.next++
	}
	return inserted, err
}

// put inserts e unless the key exists. An earlier origin replaces the stored entry.
func (t *table[K, T]) put(key K, e Entry[T]) (bool, error) {
	cur, ok := t.rows[key]
	if !ok {
		t.rows[key] = e
		return true, nil
	}
	if !cur.Value.SameIdentity(e.Value) {
		return false, fmt.Errorf("%w: %s %s", ErrHashCollision, t.name, key)
	}
	if e.Origin < cur.Origin {
		t.rows[key] = e
	}
	return false, nil
}

func (t *table[K, T]) get(key K) (T, bool) {
	e, ok := t.rows[key]
	return e.Value, ok
}

func (t *table[K, T]) merge(from *table[K, T]) error {
	for key, e := range from.rows {
		if _, err := t.put(key, e); err != nil {
			return err
		}
	}
	return nil
}

// sorted returns the keys in (origin, ordinal, key) order.
func (t *table[K, T]) sorted() []K {
	return slices.SortedFunc(maps.Keys(t.rows), func(a, b K) int {
		ea, eb := t.rows[a], t.rows[b]
		return cmp.Or(
			cmp.Compare(ea.Origin, eb.Origin),
			cmp.Compare(ea.Ordinal, eb.Ordinal),
			cmp.Compare(a, b),
		)
	})
}

func (t *table[K, T]) entries() []Entry[T] {
	keys := t.sorted()
	out := make([]Entry[T], 0, len(keys))
	for _, k := range keys {
		out = append(out, t.rows[k])
	}
	return out
}

func (t *table[K, T]) restore(entries []Entry[T], key func(T) K) {
	for _, e := range entries {
		t.rows[key(e.Value)] = e
		t.next = max(t.next, e.Ordinal+1)
	}
}

func (t *table[K, T]) reset() {
	clear(t.rows)
	t.next = 0
}

// Dataset is a set of content-addressed tables. A Dataset is not safe for concurrent use; the
// Builder confines the master dataset to its fold goroutine.
type Dataset struct {
	releases *table[model.ContentHash, model.Release]
	games    *table[model.Hash, model.Game]
	roms     *table[model.Hash, model.Rom]
	gameRoms *table[model.ContentHash, model.GameRom]
	disks    *table[model.ContentHash, model.Disk]
	drivers  *table[model.ContentHash, model.Driver]
	features *table[model.ContentHash, model.Feature]
	links    *table[model.ContentHash, model.Link]
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		releases: newTable[model.ContentHash, model.Release]("emulators"),
		games:    newTable[model.Hash, model.Game]("games"),
		roms:     newTable[model.Hash, model.Rom]("roms"),
		gameRoms: newTable[model.ContentHash, model.GameRom]("game_rom"),
		disks:    newTable[model.ContentHash, model.Disk]("disks"),
		drivers:  newTable[model.ContentHash, model.Driver]("drivers"),
		features: newTable[model.ContentHash, model.Feature]("features"),
		links:    newTable[model.ContentHash, model.Link]("game_emulator"),
	}
}

// Merge folds batch into d. Keys already present are kept unless batch carries an entry from an
// earlier release. A key whose records differ structurally fails with ErrHashCollision.
func (d *Dataset) Merge(batch *Dataset) error {
	steps := []func() error{
		func() error { return d.releases.merge(batch.releases) },
		func() error { return d.games.merge(batch.games) },
		func() error { return d.roms.merge(batch.roms) },
		func() error { return d.gameRoms.merge(batch.gameRoms) },
		func() error { return d.disks.merge(batch.disks) },
		func() error { return d.drivers.merge(batch.drivers) },
		func() error { return d.features.merge(batch.features) },
		func() error { return d.links.merge(batch.links) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops every record held by d.
func (d *Dataset) Reset() {
	d.releases.reset()
	d.games.reset()
	d.roms.reset()
	d.gameRoms.reset()
	d.disks.reset()
	d.drivers.reset()
	d.features.reset()
	d.links.reset()
}

// Counts holds per-table record counts.
type Counts struct {
	Releases int `json:"releases"`
	Games    int `json:"games"`
	Roms     int `json:"roms"`
	GameRoms int `json:"game_roms"`
	Disks    int `json:"disks"`
	Drivers  int `json:"drivers"`
	Features int `json:"features"`
	Links    int `json:"links"`
}

// Counts returns the number of records in each table.
func (d *Dataset) Counts() Counts {
	return Counts{
		Releases: len(d.releases.rows),
		Games:    len(d.games.rows),
		Roms:     len(d.roms.rows),
		GameRoms: len(d.gameRoms.rows),
		Disks:    len(d.disks.rows),
		Drivers:  len(d.drivers.rows),
		Features: len(d.features.rows),
		Links:    len(d.links.rows),
	}
}

// Game returns the game stored under h.
func (d *Dataset) Game(h model.Hash) (model.Game, bool) {
	return d.games.get(h)
}

// Games returns every stored game in merge order.
func (d *Dataset) Games() []model.Game {
	entries := d.games.entries()
	out := make([]model.Game, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value)
	}
	return out
}

// Links returns every stored release link in merge order.
func (d *Dataset) Links() []model.Link {
	entries := d.links.entries()
	out := make([]model.Link, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Value)
	}
	return out
}

// Snapshot is the serialisable form of a Dataset.
type Snapshot struct {
	Releases []Entry[model.Release] `json:"releases"`
	Games    []Entry[model.Game]    `json:"games"`
	Roms     []Entry[model.Rom]     `json:"roms"`
	GameRoms []Entry[model.GameRom] `json:"game_roms"`
	Disks    []Entry[model.Disk]    `json:"disks"`
	Drivers  []Entry[model.Driver]  `json:"drivers"`
	Features []Entry[model.Feature] `json:"features"`
	Links    []Entry[model.Link]    `json:"links"`
}

// Snapshot copies d into its serialisable form, entries in merge order.
func (d *Dataset) Snapshot() Snapshot {
	return Snapshot{
		Releases: d.releases.entries(),
		Games:    d.games.entries(),
		Roms:     d.roms.entries(),
		GameRoms: d.gameRoms.entries(),
		Disks:    d.disks.entries(),
		Drivers:  d.drivers.entries(),
		Features: d.features.entries(),
		Links:    d.links.entries(),
	}
}

// RestoreDataset rebuilds a dataset from a snapshot.
func RestoreDataset(s Snapshot) *Dataset {
	d := NewDataset()
	d.releases.restore(s.Releases, func(v model.Release) model.ContentHash { return v.Key })
	d.games.restore(s.Games, func(v model.Game) model.Hash { return v.Hash })
	d.roms.restore(s.Roms, func(v model.Rom) model.Hash { return v.Hash })
	d.gameRoms.restore(s.GameRoms, func(v model.GameRom) model.ContentHash { return v.Hash })
	d.disks.restore(s.Disks, func(v model.Disk) model.ContentHash { return v.Hash })
	d.drivers.restore(s.Drivers, func(v model.Driver) model.ContentHash { return v.Hash })
	d.features.restore(s.Features, func(v model.Feature) model.ContentHash { return v.Hash })
	d.links.restore(s.Links, func(v model.Link) model.ContentHash { return v.Hash })
	return d
}

// rebase moves every entry of a single-release dataset to the given origin.
func (d *Dataset) rebase(seq int) {
	rebaseTable(d.releases, seq)
	for k, e := range d.releases.rows {
		e.Value.Seq = seq
		d.releases.rows[k] = e
	}
	rebaseTable(d.games, seq)
	rebaseTable(d.roms, seq)
	rebaseTable(d.gameRoms, seq)
	rebaseTable(d.disks, seq)
	rebaseTable(d.drivers, seq)
	rebaseTable(d.features, seq)
	rebaseTable(d.links, seq)
}

func rebaseTable[K ~string, T record[T]](t *table[K, T], seq int) {
	for k, e := range t.rows {
		e.Origin = seq
		t.rows[k] = e
	}
}
