package db

import (
	"github.com/giftr-dev/giftr/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and returns the handle. Callers inject it into
// the layers that need it; there is no package-level connection.
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	return gdb, nil
}

// Migrate creates missing tables for the application models.
func Migrate(gdb *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Gift{},
		&models.Claim{},
	}

	migrator := gdb.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := gdb.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
