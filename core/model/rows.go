package model

import "strconv"

// GameRow is a row of the games table.
type GameRow struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Hash         string `gorm:"column:hash;type:varchar(64);uniqueIndex" json:"hash"`
	Name         string `gorm:"column:name;type:varchar(255);not null;index" json:"name"`
	Description  string `gorm:"column:description;type:text" json:"description"`
	Year         string `gorm:"column:year;type:varchar(16)" json:"year"`
	Manufacturer string `gorm:"column:manufacturer;type:varchar(255)" json:"manufacturer"`
	IsBIOS       bool   `gorm:"column:isbios" json:"isbios"`
	IsDevice     bool   `gorm:"column:isdevice" json:"isdevice"`
	Runnable     bool   `gorm:"column:runnable" json:"runnable"`
	IsMechanical bool   `gorm:"column:ismechanical" json:"ismechanical"`
	CloneOfID    *int64 `gorm:"column:cloneof_id;index" json:"cloneof_id"`
	RomOfID      *int64 `gorm:"column:romof_id;index" json:"romof_id"`
}

func (GameRow) TableName() string { return "games" }

// RomRow is a row of the roms table.
type RomRow struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Size int64  `gorm:"column:size;not null" json:"size"`
	CRC  string `gorm:"column:crc;type:varchar(16);not null" json:"crc"`
	SHA1 string `gorm:"column:sha1;type:varchar(40)" json:"sha1"`
}

func (RomRow) TableName() string { return "roms" }

// EmulatorRow is a row of the emulators table.
type EmulatorRow struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name    string `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Version string `gorm:"column:version;type:varchar(64);not null" json:"version"`
}

func (EmulatorRow) TableName() string { return "emulators" }

// DiskRow is a row of the disks table.
type DiskRow struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	SHA1 string `gorm:"column:sha1;type:varchar(40);not null" json:"sha1"`
	MD5  string `gorm:"column:md5;type:varchar(32);not null" json:"md5"`
}

func (DiskRow) TableName() string { return "disks" }

// FeatureRow is a row of the features table.
type FeatureRow struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Overall string `gorm:"column:overall;type:varchar(32);not null" json:"overall"`
	Type    string `gorm:"column:type;type:varchar(32);not null" json:"type"`
	Status  string `gorm:"column:status;type:varchar(32);not null" json:"status"`
}

func (FeatureRow) TableName() string { return "features" }

// DriverRow is a row of the drivers table.
type DriverRow struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	PaletteSize     string `gorm:"column:palettesize;type:varchar(16);not null" json:"palettesize"`
	HiscoreSave     string `gorm:"column:hiscoresave;type:varchar(16);not null" json:"hiscoresave"`
	RequiresArtwork string `gorm:"column:requiresartwork;type:varchar(16);not null" json:"requiresartwork"`
	Unofficial      string `gorm:"column:unofficial;type:varchar(16);not null" json:"unofficial"`
	Good            string `gorm:"column:good;type:varchar(16);not null" json:"good"`
	Status          string `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Graphic         string `gorm:"column:graphic;type:varchar(16);not null" json:"graphic"`
	CocktailMode    string `gorm:"column:cocktailmode;type:varchar(16);not null" json:"cocktailmode"`
	SaveState       string `gorm:"column:savestate;type:varchar(16);not null" json:"savestate"`
	Protection      string `gorm:"column:protection;type:varchar(16);not null" json:"protection"`
	Emulation       string `gorm:"column:emulation;type:varchar(16);not null" json:"emulation"`
	Cocktail        string `gorm:"column:cocktail;type:varchar(16);not null" json:"cocktail"`
	Color           string `gorm:"column:color;type:varchar(16);not null" json:"color"`
	NoSoundHardware string `gorm:"column:nosoundhardware;type:varchar(16);not null" json:"nosoundhardware"`
	Sound           string `gorm:"column:sound;type:varchar(16);not null" json:"sound"`
	Incomplete      string `gorm:"column:incomplete;type:varchar(16);not null" json:"incomplete"`
}

func (DriverRow) TableName() string { return "drivers" }

// GameRomRow joins games and roms.
type GameRomRow struct {
	GameID int64 `gorm:"column:game_id;primaryKey;autoIncrement:false" json:"game_id"`
	RomID  int64 `gorm:"column:rom_id;primaryKey;autoIncrement:false" json:"rom_id"`
}

func (GameRomRow) TableName() string { return "game_rom" }

// GameEmulatorRow is one release's link to a game.
type GameEmulatorRow struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	GameID     int64  `gorm:"column:game_id;not null;uniqueIndex:idx_game_emulator" json:"game_id"`
	EmulatorID int64  `gorm:"column:emulator_id;not null;uniqueIndex:idx_game_emulator" json:"emulator_id"`
	DriverID   *int64 `gorm:"column:driver_id;index" json:"driver_id"`
}

func (GameEmulatorRow) TableName() string { return "game_emulator" }

// GameEmulatorDiskRow joins a game_emulator link to a disk.
type GameEmulatorDiskRow struct {
	GameEmulatorID int64 `gorm:"column:game_emulator_id;primaryKey;autoIncrement:false" json:"game_emulator_id"`
	DiskID         int64 `gorm:"column:disk_id;primaryKey;autoIncrement:false" json:"disk_id"`
}

func (GameEmulatorDiskRow) TableName() string { return "game_emulator_disk" }

// GameEmulatorFeatureRow joins a game_emulator link to a feature.
type GameEmulatorFeatureRow struct {
	GameEmulatorID int64 `gorm:"column:game_emulator_id;primaryKey;autoIncrement:false" json:"game_emulator_id"`
	FeatureID      int64 `gorm:"column:feature_id;primaryKey;autoIncrement:false" json:"feature_id"`
}

func (GameEmulatorFeatureRow) TableName() string { return "game_emulator_feature" }

// Tables is the complete exportable catalog.
type Tables struct {
	Games                []GameRow
	Roms                 []RomRow
	Emulators            []EmulatorRow
	Disks                []DiskRow
	Features             []FeatureRow
	Drivers              []DriverRow
	GameRoms             []GameRomRow
	GameEmulators        []GameEmulatorRow
	GameEmulatorDisks    []GameEmulatorDiskRow
	GameEmulatorFeatures []GameEmulatorFeatureRow
}

// Models returns one zero value per table, in dependency order.
func Models() []any {
	return []any{
		&GameRow{}, &RomRow{}, &EmulatorRow{}, &DiskRow{}, &FeatureRow{}, &DriverRow{},
		&GameRomRow{}, &GameEmulatorRow{}, &GameEmulatorDiskRow{}, &GameEmulatorFeatureRow{},
	}
}

// Flat is a table rendered as a header and string records.
type Flat struct {
	Name    string
	Columns []string
	Records [][]string
}

// Flatten renders every table as strings, in the same order as Models.
func (t *Tables) Flatten() []Flat {
	return []Flat{
		flatten("games", []string{"id", "hash", "name", "description", "year", "manufacturer", "isbios", "isdevice", "runnable", "ismechanical", "cloneof_id", "romof_id"}, t.Games, func(r GameRow) []string {
			return []string{itoa(r.ID), r.Hash, r.Name, r.Description, r.Year, r.Manufacturer, btoa(r.IsBIOS), btoa(r.IsDevice), btoa(r.Runnable), btoa(r.IsMechanical), optItoa(r.CloneOfID), optItoa(r.RomOfID)}
		}),
		flatten("roms", []string{"id", "name", "size", "crc", "sha1"}, t.Roms, func(r RomRow) []string {
			return []string{itoa(r.ID), r.Name, itoa(r.Size), r.CRC, r.SHA1}
		}),
		flatten("emulators", []string{"id", "name", "version"}, t.Emulators, func(r EmulatorRow) []string {
			return []string{itoa(r.ID), r.Name, r.Version}
		}),
		flatten("disks", []string{"id", "name", "sha1", "md5"}, t.Disks, func(r DiskRow) []string {
			return []string{itoa(r.ID), r.Name, r.SHA1, r.MD5}
		}),
		flatten("features", []string{"id", "overall", "type", "status"}, t.Features, func(r FeatureRow) []string {
			return []string{itoa(r.ID), r.Overall, r.Type, r.Status}
		}),
		flatten("drivers", []string{"id", "palettesize", "hiscoresave", "requiresartwork", "unofficial", "good", "status", "graphic", "cocktailmode", "savestate", "protection", "emulation", "cocktail", "color", "nosoundhardware", "sound", "incomplete"}, t.Drivers, func(r DriverRow) []string {
			return []string{itoa(r.ID), r.PaletteSize, r.HiscoreSave, r.RequiresArtwork, r.Unofficial, r.Good, r.Status, r.Graphic, r.CocktailMode, r.SaveState, r.Protection, r.Emulation, r.Cocktail, r.Color, r.NoSoundHardware, r.Sound, r.Incomplete}
		}),
		flatten("game_rom", []string{"game_id", "rom_id"}, t.GameRoms, func(r GameRomRow) []string {
			return []string{itoa(r.GameID), itoa(r.RomID)}
		}),
		flatten("game_emulator", []string{"id", "game_id", "emulator_id", "driver_id"}, t.GameEmulators, func(r GameEmulatorRow) []string {
			return []string{itoa(r.ID), itoa(r.GameID), itoa(r.EmulatorID), optItoa(r.DriverID)}
		}),
		flatten("game_emulator_disk", []string{"game_emulator_id", "disk_id"}, t.GameEmulatorDisks, func(r GameEmulatorDiskRow) []string {
			return []string{itoa(r.GameEmulatorID), itoa(r.DiskID)}
		}),
		flatten("game_emulator_feature", []string{"game_emulator_id", "feature_id"}, t.GameEmulatorFeatures, func(r GameEmulatorFeatureRow) []string {
			return []string{itoa(r.GameEmulatorID), itoa(r.FeatureID)}
		}),
	}
}

func flatten[T any](name string, columns []string, rows []T, record func(T) []string) Flat {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, record(r))
	}
	return Flat{Name: name, Columns: columns, Records: records}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func optItoa(v *int64) string {
	if v == nil {
		return ""
	}
	return itoa(*v)
}

func btoa(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
