package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared connection used by services and handlers.
var DB *gorm.DB

// Initialize opens the sqlite database backing case, payment and tribunal
// data. WAL mode lets analysis transactions run alongside reads, and the
// busy timeout keeps concurrent request writers from failing fast with
// SQLITE_BUSY. Foreign keys are enforced so evidence and pathway rows
// cannot outlive their case.
func Initialize(dbPath string, environment string) error {
	var err error

	// Quieter query logging outside development
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}

	log.Printf("Database ready at %s (WAL, 5s busy timeout)", dbPath)
	return nil
}

// AutoMigrate creates or updates the schema for the given models. The
// full model list lives in cmd/server/main.go so the schema is owned in
// one place.
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("Schema migrated (%d models)", len(models))
	return nil
}

// Close releases the underlying sqlite connection.
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
