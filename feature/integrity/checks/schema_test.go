package checks

import (
	"regexp"
	"testing"

	"arcade-catalog/core/database"
	"arcade-catalog/core/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.Models()...))
	return db
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

// expectOtherTables answers every table after games with no columns.
func expectOtherTables(mock sqlmock.Sqlmock) {
	for _, m := range model.Models()[1:] {
		name := m.(tabler).TableName()
		mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `" + name + "`")).WillReturnRows(columnRows())
	}
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_SQLiteMatches(t *testing.T) {
	db := setupSQLite(t)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Len(t, report.Tables, len(model.Models()))
	for name, tbl := range report.Tables {
		assert.Equal(t, StatusOK, tbl.Status, name)
	}
}

func TestCheckSchema_EmptyDatabase(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, StatusMissing, report.Tables["games"].Status)
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := columnRows().
		AddRow("id", "bigint", "NO", "PRI", nil, "").
		AddRow("hash", "varchar(64)", "YES", "UNI", nil, "").
		AddRow("name", "varchar(255)", "NO", "MUL", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `games`")).WillReturnRows(rows)
	expectOtherTables(mock)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	tbl, ok := report.Tables["games"]
	require.True(t, ok)
	assert.Equal(t, StatusError, tbl.Status)
	assert.Contains(t, tbl.MissingColumns, "cloneof_id")
	assert.NotContains(t, tbl.MissingColumns, "hash")
	assert.Equal(t, StatusMissing, report.Tables["roms"].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_TypeMismatch(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := columnRows().
		AddRow("id", "bigint", "NO", "PRI", nil, "").
		AddRow("name", "int(11)", "NO", "", nil, "")
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `games`")).WillReturnRows(rows)
	expectOtherTables(mock)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.Contains(t, report.Tables["games"].TypeMismatches, "name: expected varchar(255), got int(11)")
}

func TestCheckSchema_InspectError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `games`")).WillReturnError(assert.AnError)
	expectOtherTables(mock)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "games")
}

func TestParseGormTags(t *testing.T) {
	col := parseGormColumn("column:id;primaryKey")
	assert.Equal(t, "id", col)

	col2 := parseGormColumn("primaryKey;column:name;type:varchar(255)")
	assert.Equal(t, "name", col2)

	typ := parseGormType("column:crc;type:varchar(16);not null")
	assert.Equal(t, "varchar(16)", typ)

	typ2 := parseGormType("column:id")
	assert.Equal(t, "", typ2)
}
