package export

import (
	"context"
	"fmt"

	"arcade-catalog/core/model"

	"gorm.io/gorm"
)

// Store replaces the catalog tables in db with tables. Everything runs in one transaction, so a
// failed insert leaves the previous catalog in place on databases with transactional DDL.
func Store(ctx context.Context, db *gorm.DB, tables *model.Tables, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 500
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		models := model.Models()
		if err := tx.Migrator().DropTable(models...); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
		if err := tx.AutoMigrate(models...); err != nil {
			return fmt.Errorf("failed to migrate tables: %w", err)
		}

		inserts := []struct {
			table string
			rows  any
			n     int
		}{
			{"games", tables.Games, len(tables.Games)},
			{"roms", tables.Roms, len(tables.Roms)},
			{"emulators", tables.Emulators, len(tables.Emulators)},
			{"disks", tables.Disks, len(tables.Disks)},
			{"features", tables.Features, len(tables.Features)},
			{"drivers", tables.Drivers, len(tables.Drivers)},
			{"game_rom", tables.GameRoms, len(tables.GameRoms)},
			{"game_emulator", tables.GameEmulators, len(tables.GameEmulators)},
			{"game_emulator_disk", tables.GameEmulatorDisks, len(tables.GameEmulatorDisks)},
			{"game_emulator_feature", tables.GameEmulatorFeatures, len(tables.GameEmulatorFeatures)},
		}
		for _, ins := range inserts {
			if ins.n == 0 {
				continue
			}
			if err := tx.CreateInBatches(ins.rows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert %s: %w", ins.table, err)
			}
		}
		return nil
	})
}
