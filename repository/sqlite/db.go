package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nijaru/video-api/errors"
	"github.com/nijaru/video-api/migrations"

	_ "github.com/mattn/go-sqlite3"
)

type DBConfig struct {
	BusyTimeout        time.Duration
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

func DefaultDBConfig() DBConfig {
	return DBConfig{
		BusyTimeout:        5 * time.Second,
		MaxConnections:     10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}
}

// Configure database with the provided settings
func ConfigureDB(db *sql.DB, config DBConfig) {
	if config.MaxConnections > 0 {
		db.SetMaxOpenConns(config.MaxConnections)
	}
	if config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(config.MaxIdleConnections)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}
}

// InitDB creates the database file if needed, opens a configured handle and
// brings the schema up to date over that handle.
func InitDB(dbPath string, config DBConfig) (*sql.DB, error) {
	const op = "sqlite.InitDB"

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Internal(op, err, "failed to create database directory")
	}

	db, err := sql.Open("sqlite3", dsn(dbPath, config))
	if err != nil {
		return nil, errors.Internal(op, err, "failed to open database")
	}

	ConfigureDB(db, config)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Internal(op, err, "failed to connect to database")
	}

	if err := migrations.UpSQLite(db); err != nil {
		db.Close()
		return nil, errors.Internal(op, err, "failed to migrate database")
	}

	return db, nil
}

// dsn carries the pragmas as connection parameters so that every pooled
// connection gets them, not just the first one.
func dsn(dbPath string, config DBConfig) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_synchronous", "NORMAL")
	params.Set("_busy_timeout", strconv.FormatInt(config.BusyTimeout.Milliseconds(), 10))
	return migrations.SQLiteURI(dbPath) + "?" + params.Encode()
}

// TxFn is a function that will be called with a transaction
type TxFn func(tx *sql.Tx) error

// WithTransaction wraps a transaction with proper rollback/commit logic
func WithTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p) // re-throw panic after rollback
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
