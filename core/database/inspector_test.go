package database

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestGetTableColumns_SQLite(t *testing.T) {
	db := setupSQLite(t)

	err := db.Exec("CREATE TABLE games (id INTEGER PRIMARY KEY, name TEXT NOT NULL, year TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "games")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	byName := make(map[string]ColumnInfo)
	for _, col := range columns {
		byName[col.Field] = col
	}
	assert.Equal(t, "integer", byName["id"].Type)
	assert.Equal(t, "PRI", byName["id"].Key)
	assert.Equal(t, "NO", byName["name"].Null)
	assert.Equal(t, "YES", byName["year"].Null)

	// PRAGMA table_info returns nothing for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "BIGINT", "NO", "PRI", nil, "").
		AddRow("name", "varchar(255)", "NO", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `games`")).WillReturnRows(rows)

	columns, err := GetTableColumns(db, "games")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "bigint", columns[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnreferenced(t *testing.T) {
	db := setupSQLite(t)

	require.NoError(t, db.Exec("CREATE TABLE drivers (id INTEGER PRIMARY KEY)").Error)
	require.NoError(t, db.Exec("CREATE TABLE game_emulator (id INTEGER PRIMARY KEY, driver_id INTEGER)").Error)
	require.NoError(t, db.Exec("INSERT INTO drivers (id) VALUES (1), (2), (3)").Error)
	require.NoError(t, db.Exec("INSERT INTO game_emulator (id, driver_id) VALUES (1, 1), (2, 1), (3, NULL)").Error)

	count, err := CountUnreferenced(db, "drivers", "game_emulator", "driver_id")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
