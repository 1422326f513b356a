package db

import (
	"errors"
	"fmt"
	"os"
)

var TestStore Store

// tables the integration tests wipe between runs, children first
var testTables = []string{"schedule_entries", "programs", "station_settings", "users"}

// InitTestDB connects to TEST_DATABASE_URL, applies the migrations found in
// migrationsPath and exposes the result as TestStore.
func InitTestDB(migrationsPath string) error {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		return errors.New("TEST_DATABASE_URL environment variable is not set")
	}
	if err := Init(dbURL); err != nil {
		return fmt.Errorf("connect test database: %w", err)
	}
	if err := RunMigrations(DB, migrationsPath); err != nil {
		return fmt.Errorf("migrate test database: %w", err)
	}
	TestStore = NewStore(DB)
	return nil
}

// ResetTestDB empties every table so each run starts from a fresh install:
// no admin account, no saved station settings, no programs.
func ResetTestDB() error {
	if DB == nil {
		return errors.New("test database is not initialised")
	}
	for _, table := range testTables {
		if _, err := DB.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE;", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}
