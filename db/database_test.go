package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializePragmas(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	assert.NoError(t, Initialize(dbPath, "test"))
	defer Close()

	var journalMode string
	assert.NoError(t, DB.Raw("PRAGMA journal_mode").Scan(&journalMode).Error)
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	assert.NoError(t, DB.Raw("PRAGMA busy_timeout").Scan(&busyTimeout).Error)
	assert.Equal(t, 5000, busyTimeout)

	var foreignKeys int
	assert.NoError(t, DB.Raw("PRAGMA foreign_keys").Scan(&foreignKeys).Error)
	assert.Equal(t, 1, foreignKeys)
}

func TestAutoMigrateRequiresInitialize(t *testing.T) {
	prev := DB
	DB = nil
	defer func() { DB = prev }()

	assert.Error(t, AutoMigrate())
}
