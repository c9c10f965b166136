package reconcile

import (
	"context"
	"fmt"
	"strconv"

	"arcade-catalog/core/model"

	"gorm.io/gorm"
)

// GameAdapter reconciles game rows by hash. Row ids are assigned per build and are never compared.
type GameAdapter struct{}

func (GameAdapter) Name(g model.GameRow) string { return g.Name }

func (GameAdapter) CompareFields(built, stored model.GameRow) []string {
	var mismatch []string
	field := func(label, b, s string) {
		if b != s {
			mismatch = append(mismatch, fmt.Sprintf("%s: built=%s stored=%s", label, b, s))
		}
	}
	field("name", built.Name, stored.Name)
	field("description", built.Description, stored.Description)
	field("year", built.Year, stored.Year)
	field("manufacturer", built.Manufacturer, stored.Manufacturer)
	field("isbios", strconv.FormatBool(built.IsBIOS), strconv.FormatBool(stored.IsBIOS))
	field("isdevice", strconv.FormatBool(built.IsDevice), strconv.FormatBool(stored.IsDevice))
	field("runnable", strconv.FormatBool(built.Runnable), strconv.FormatBool(stored.Runnable))
	field("ismechanical", strconv.FormatBool(built.IsMechanical), strconv.FormatBool(stored.IsMechanical))
	return mismatch
}

// GameIndex indexes game rows by hash.
func GameIndex(rows []model.GameRow) map[string]model.GameRow {
	index := make(map[string]model.GameRow, len(rows))
	for _, r := range rows {
		index[r.Hash] = r
	}
	return index
}

// LoadStoredGames loads the stored games table. A database without the table yields an empty index.
func LoadStoredGames(ctx context.Context, db *gorm.DB) (map[string]model.GameRow, error) {
	db = db.WithContext(ctx)
	if !db.Migrator().HasTable(&model.GameRow{}) {
		return map[string]model.GameRow{}, nil
	}
	var rows []model.GameRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load stored games: %w", err)
	}
	return GameIndex(rows), nil
}

// DiffGames reconciles freshly built tables against the games stored in db.
func DiffGames(ctx context.Context, db *gorm.DB, tables *model.Tables) ([]Result, error) {
	stored, err := LoadStoredGames(ctx, db)
	if err != nil {
		return nil, err
	}
	return Reconcile(GameIndex(tables.Games), stored, GameAdapter{}), nil
}
