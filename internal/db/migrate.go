package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"recipe-api-go/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

const migrationsDirName = "migrations"

// Migrate applies any pending SQL migrations from the migrations
// directory. A missing directory is not an error so that test binaries
// run from arbitrary working directories still start.
func Migrate(gormDB *gorm.DB, log logger.Logger) error {
	dir, err := findMigrationsDir(migrationsDirName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("db: migrations directory not found, skipping")
			return nil
		}
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("db: schema up to date")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("db: migrations applied", "dir", dir)
	return nil
}

func findMigrationsDir(dirName string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, dirName)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
