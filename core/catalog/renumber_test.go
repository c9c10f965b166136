package catalog

import (
	"testing"

	"arcade-catalog/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenumber(t *testing.T) {
	bios := model.GameDescriptor{Name: "neogeo", IsBIOS: true, Roms: []model.RomSpec{rom("sp-s2.sp1", 131072, "9036d879")}}
	game := model.GameDescriptor{
		Name:  "mslug2",
		RomOf: "neogeo",
		Roms: []model.RomSpec{
			rom("241-p1.p1", 2097152, "2a53c5da"),
			rom("sp-s2.sp1", 131072, "9036d879"),
		},
		Disks:    []model.DiskSpec{{Name: "cd", MD5: "m"}},
		Features: []model.FeatureSpec{{Type: "sound", Status: "imperfect"}},
		Driver:   &model.DriverSpec{Status: "good"},
	}
	ds, _ := process(t, release(1, "0.100"), game, bios)

	tables, err := Renumber(ds)
	require.NoError(t, err)

	require.Len(t, tables.Games, 2)
	assert.Equal(t, "neogeo", tables.Games[0].Name)
	assert.Equal(t, int64(1), tables.Games[0].ID)
	assert.Nil(t, tables.Games[0].RomOfID)

	assert.Equal(t, "mslug2", tables.Games[1].Name)
	require.NotNil(t, tables.Games[1].RomOfID)
	assert.Equal(t, int64(1), *tables.Games[1].RomOfID)
	assert.Nil(t, tables.Games[1].CloneOfID)

	assert.Len(t, tables.Roms, 2)
	assert.Equal(t, "sp-s2.sp1", tables.Roms[0].Name)
	assert.Len(t, tables.GameRoms, 3)
	assert.Equal(t, []model.EmulatorRow{{ID: 1, Name: "MAME", Version: "0.100"}}, tables.Emulators)

	require.Len(t, tables.GameEmulators, 2)
	assert.Nil(t, tables.GameEmulators[0].DriverID)
	require.NotNil(t, tables.GameEmulators[1].DriverID)
	assert.Equal(t, []model.GameEmulatorDiskRow{{GameEmulatorID: 2, DiskID: 1}}, tables.GameEmulatorDisks)
	assert.Equal(t, []model.GameEmulatorFeatureRow{{GameEmulatorID: 2, FeatureID: 1}}, tables.GameEmulatorFeatures)
}

func TestRenumber_Stable(t *testing.T) {
	build := func() *model.Tables {
		master := NewDataset()
		for i, v := range []string{"0.100", "0.101", "0.102"} {
			ds, _ := process(t, release(i, v), fooGame("Foo "+v))
			require.NoError(t, master.Merge(ds))
		}
		tables, err := Renumber(master)
		require.NoError(t, err)
		return tables
	}

	assert.Equal(t, build(), build())
}

func TestRenumber_Dangling(t *testing.T) {
	parent := model.GameDescriptor{Name: "p", Roms: []model.RomSpec{rom("p.bin", 1, "aa")}}
	child := model.GameDescriptor{Name: "c", CloneOf: "p", Roms: []model.RomSpec{rom("c.bin", 1, "bb")}}
	ds, _ := process(t, release(1, "0.100"), parent, child)

	for k, e := range ds.games.rows {
		if e.Value.Name == "p" {
			delete(ds.games.rows, k)
		}
	}

	_, err := Renumber(ds)
	require.ErrorIs(t, err, ErrDanglingReference)
}
