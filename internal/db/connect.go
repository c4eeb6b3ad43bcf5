package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:flowmapga.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/flowmapga?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := EnsureSchema(ctx, db, driver); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	default:
		return fmt.Errorf("unsupported driver: %s", driver)
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// parse_log only records upload metadata; parsed questions are never stored.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS parse_log (
  id TEXT PRIMARY KEY,
  request_id TEXT NOT NULL DEFAULT '',
  uploader TEXT NOT NULL DEFAULT '',
  filename TEXT NOT NULL,
  size_bytes INTEGER NOT NULL,
  total_questions INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL,          -- ok|rejected|failed
  error TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS parse_log_created_at ON parse_log(created_at);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS parse_log (
  id TEXT PRIMARY KEY,
  request_id TEXT NOT NULL DEFAULT '',
  uploader TEXT NOT NULL DEFAULT '',
  filename TEXT NOT NULL,
  size_bytes BIGINT NOT NULL,
  total_questions INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL,
  error TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS parse_log_created_at ON parse_log(created_at);
`
