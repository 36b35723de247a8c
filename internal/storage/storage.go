// Package storage opens the configured backend and ensures the schema.
// Backend selection happens once, at construction time; everything above
// this package works against *sql.DB plus a dbx.Dialect.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/migrations"
)

// driverName maps a backend kind to its registered database/sql driver.
func driverName(kind dbx.Kind) (string, error) {
	switch kind {
	case dbx.KindSQLite:
		return "sqlite", nil
	case dbx.KindPostgres:
		return "pgx", nil
	case dbx.KindMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported backend kind: %q", kind)
	}
}

// mysqlDSN normalizes a MySQL DSN for this schema: DATETIME columns are
// scanned into time.Time everywhere, which the driver only supports with
// parseTime enabled.
func mysqlDSN(dsn string) (string, error) {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	c.ParseTime = true
	return c.FormatDSN(), nil
}

// Open connects to the configured backend, verifies the connection, applies
// backend-specific bootstrap and runs migrations. The returned dialect is
// what repositories use to stay backend-agnostic.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, dbx.Dialect, error) {
	dialect := dbx.DialectFor(cfg.BackendKind)

	driver, err := driverName(cfg.BackendKind)
	if err != nil {
		return nil, dialect, err
	}

	dsn := cfg.DatabaseDSN
	if cfg.BackendKind == dbx.KindMySQL {
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, dialect, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.BackendKind == dbx.KindSQLite {
		// Single writer; WAL lets readers proceed, busy_timeout bounds waits.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		pragmas := []string{
			"PRAGMA journal_mode = WAL;",
			"PRAGMA synchronous = NORMAL;",
			"PRAGMA foreign_keys = ON;",
			"PRAGMA busy_timeout = 5000;",
		}
		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, dialect, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	}

	if err := Migrate(ctx, db, cfg.BackendKind); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, dialect, nil
}

// Migrate applies the embedded schema migrations for the given backend.
// Safe to call on every startup: already-applied migrations are skipped.
func Migrate(ctx context.Context, db *sql.DB, kind dbx.Kind) error {
	fsys, gooseDialect, err := migrations.For(kind)
	if err != nil {
		return err
	}

	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}
