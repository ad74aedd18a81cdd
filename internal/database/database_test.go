package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/shelfcache/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath, WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableSQL(t *testing.T, db *Database, table string) string {
	t.Helper()
	var sql string
	err := db.DB.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&sql).Error
	require.NoError(t, err)
	return strings.ToUpper(sql)
}

func TestNewDatabase(t *testing.T) {
	db := setupTestDB(t)

	t.Run("creates items table with autoincrement ids", func(t *testing.T) {
		sql := tableSQL(t, db, "items")
		assert.Contains(t, sql, "AUTOINCREMENT")
		for _, col := range []string{"TITLE", "AUTHOR", "SUMMARY", "LANGUAGE"} {
			assert.Contains(t, sql, col)
		}
	})

	t.Run("creates annotations table with cascading foreign key", func(t *testing.T) {
		sql := tableSQL(t, db, "annotations")
		assert.Contains(t, sql, "AUTOINCREMENT")
		assert.Contains(t, sql, "REFERENCES `ITEMS`")
		assert.Contains(t, sql, "ON DELETE CASCADE")
	})

	t.Run("indexes annotation item reference", func(t *testing.T) {
		var count int64
		err := db.DB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND tbl_name = 'annotations' AND sql LIKE '%item_id%'").Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("enables foreign keys on connections", func(t *testing.T) {
		var enabled int
		require.NoError(t, db.DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
		assert.Equal(t, 1, enabled)
	})

	t.Run("ping succeeds", func(t *testing.T) {
		assert.NoError(t, db.Ping())
	})
}

func TestNewDatabase_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	db, err := NewDatabase(dbPath, WithLogLevel(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&entities.Item{Title: "Dracula"}).Error)
	require.NoError(t, db.Close())

	db, err = NewDatabase(dbPath, WithLogLevel(logger.Silent))
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.DB.Model(&entities.Item{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCascadeDelete(t *testing.T) {
	db := setupTestDB(t)

	item := entities.Item{Title: "Emma"}
	require.NoError(t, db.DB.Create(&item).Error)
	require.NoError(t, db.DB.Create(&entities.Annotation{ItemID: item.ID, Text: "first"}).Error)
	require.NoError(t, db.DB.Create(&entities.Annotation{ItemID: item.ID, Text: "second"}).Error)

	require.NoError(t, db.DB.Delete(&entities.Item{}, item.ID).Error)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Annotation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestForeignKeyViolation(t *testing.T) {
	db := setupTestDB(t)

	err := db.DB.Create(&entities.Annotation{ItemID: 999, Text: "orphan"}).Error
	require.Error(t, err)
	assert.ErrorIs(t, TranslateError(err), entities.ErrConstraintViolation)
}

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil))
	})

	t.Run("record not found", func(t *testing.T) {
		err := TranslateError(gorm.ErrRecordNotFound)
		assert.ErrorIs(t, err, entities.ErrNotFound)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("sqlite foreign key failure", func(t *testing.T) {
		driverErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}
		err := TranslateError(fmt.Errorf("insert: %w", driverErr))
		assert.ErrorIs(t, err, entities.ErrConstraintViolation)
	})

	t.Run("other constraint failures pass through", func(t *testing.T) {
		driverErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
		err := TranslateError(driverErr)
		assert.False(t, errors.Is(err, entities.ErrConstraintViolation))
	})

	t.Run("unknown errors pass through", func(t *testing.T) {
		original := errors.New("disk full")
		assert.Equal(t, original, TranslateError(original))
	})
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "./app.db?"+connectionParams, DSN("./app.db"))
	assert.Equal(t, "file:app.db?cache=shared&"+connectionParams, DSN("file:app.db?cache=shared"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, ParseLogLevel(" info "))
	assert.Equal(t, logger.Warn, ParseLogLevel("warn"))
	assert.Equal(t, logger.Warn, ParseLogLevel("verbose"))
}
