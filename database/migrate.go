package database

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Register sqlite3 driver with database/sql
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/sqlite/*.sql
var sqliteMigrations embed.FS

// OpenSqlite opens (creating if needed) the sqlite file at path and applies
// the client-state schema.
func OpenSqlite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := RunSqliteMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RunSqliteMigrations applies all pending SQL schema migrations to the provided SQLite database.
//
// This function uses the golang-migrate library and an embedded `io/fs` migration source.
// Migrations are expected to be located in the embedded filesystem path "migrations/sqlite".
// If no new migrations are found, it exits silently unless a non-ErrNoChange error occurs.
func RunSqliteMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(sqliteMigrations, "migrations/sqlite")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
