// Package migrate applies the schema migrations embedded in internal/db
// using golang-migrate.
package migrate

import (
	"errors"
	"fmt"

	"account-service/internal/db"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// ErrNoChange reports that the database is already at the requested version.
var ErrNoChange = migrate.ErrNoChange

// Run migrates the database at dsn in the given direction, "up" or "down".
// A database already at the target version is treated as success.
func Run(dsn string, direction string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set; copy .env.example to .env or export DATABASE_URL")
	}
	if direction != "up" && direction != "down" {
		return fmt.Errorf("direction must be up or down, got %q", direction)
	}

	src, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	var runErr error
	if direction == "up" {
		runErr = m.Up()
	} else {
		runErr = m.Down()
	}
	if runErr != nil && !errors.Is(runErr, migrate.ErrNoChange) {
		return runErr
	}
	return nil
}
