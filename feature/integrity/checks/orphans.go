package checks

import (
	"fmt"

	"arcade-catalog/core/database"

	"gorm.io/gorm"
)

// Orphan counts rows of Table that no row of ReferencedBy points at.
type Orphan struct {
	Table        string `json:"table"`
	ReferencedBy string `json:"referenced_by"`
	Count        int64  `json:"count"`
}

// OrphanReport lists the orphan count of every checked table.
type OrphanReport struct {
	Clean   bool     `json:"clean"`
	Orphans []Orphan `json:"orphans"`
}

// orphanRules pairs each table with the join column that must reference its rows.
var orphanRules = []struct {
	table, refTable, refColumn string
}{
	{"games", "game_emulator", "game_id"},
	{"roms", "game_rom", "rom_id"},
	{"drivers", "game_emulator", "driver_id"},
	{"features", "game_emulator_feature", "feature_id"},
	{"disks", "game_emulator_disk", "disk_id"},
}

// CheckOrphans counts records that no game or link references.
func CheckOrphans(db *gorm.DB) (*OrphanReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &OrphanReport{Clean: true}
	for _, rule := range orphanRules {
		count, err := database.CountUnreferenced(db, rule.table, rule.refTable, rule.refColumn)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			report.Clean = false
		}
		report.Orphans = append(report.Orphans, Orphan{
			Table:        rule.table,
			ReferencedBy: rule.refTable + "." + rule.refColumn,
			Count:        count,
		})
	}
	return report, nil
}
