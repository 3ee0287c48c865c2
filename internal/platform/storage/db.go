package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/errors"
)

// Open connects to the SQLite database and runs pending migrations.
func Open(cfg config.StorageConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "storage.open", "open sqlite database", err)
	}

	manager := NewMigrationManager(db)
	manager.AddMigration(&initialSchema{})
	if err := manager.RunMigrations(); err != nil {
		return nil, err
	}

	return db, nil
}
