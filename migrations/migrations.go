// Package migrations embeds the schema for every supported store driver and
// applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// SQLiteURI returns a "file:" URI for path with the path percent-encoded, so
// spaces and the characters '?', '#' and '%' survive URI parsing. Connection
// parameters may be appended after a '?'.
func SQLiteURI(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath()
}

// New returns a migrator for driver reading the embedded migrations. For
// SQLite the location is a file path; for PostgreSQL it is a connection URL.
// Closing the migrator closes its database connection.
func New(driver, location string) (*migrate.Migrate, error) {
	switch driver {
	case DriverSQLite:
		db, err := sql.Open("sqlite3", SQLiteURI(location)+"?_busy_timeout=5000")
		if err != nil {
			return nil, errors.Wrap(err, "failed to open sqlite database")
		}
		m, _, err := newSQLite(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return m, nil

	case DriverPostgres:
		src, err := embeddedSource(driver)
		if err != nil {
			return nil, err
		}
		m, err := migrate.NewWithSourceInstance("iofs", src, location)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create migrate instance")
		}
		return m, nil

	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}
}

// UpSQLite applies pending migrations over an already open SQLite handle.
// The handle stays open and usable afterwards.
func UpSQLite(db *sql.DB) error {
	m, src, err := newSQLite(db)
	if err != nil {
		return err
	}
	// m.Close would close db as well; only the source is released here.
	defer src.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "failed to run migrations")
	}
	return nil
}

func newSQLite(db *sql.DB) (*migrate.Migrate, source.Driver, error) {
	src, err := embeddedSource(DriverSQLite)
	if err != nil {
		return nil, nil, err
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		src.Close()
		return nil, nil, errors.Wrap(err, "failed to create sqlite migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return nil, nil, errors.Wrap(err, "failed to create migrate instance")
	}
	return m, src, nil
}

func embeddedSource(driver string) (source.Driver, error) {
	src, err := iofs.New(files, driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded migrations")
	}
	return src, nil
}

// Up applies all pending migrations. An already current schema is not an error.
func Up(driver, location string) error {
	m, err := New(driver, location)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "failed to run migrations")
	}
	return nil
}

// Down reverts all applied migrations.
func Down(driver, location string) error {
	m, err := New(driver, location)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "failed to revert migrations")
	}
	return nil
}

// Version reports the current schema version. A database with no applied
// migrations reports version 0.
func Version(driver, location string) (version uint, dirty bool, err error) {
	m, err := New(driver, location)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrator(m)

	version, dirty, err = m.Version()
	if err == migrate.ErrNilVersion {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to read schema version")
	}
	return version, dirty, nil
}

func closeMigrator(m *migrate.Migrate) {
	_, _ = m.Close()
}
