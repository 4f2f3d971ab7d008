package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB wraps the shared connection pool together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	driver string
}

// Open connects to the configured store. For sqlite the dsn is a file path
// (or ":memory:") and parent directories are created on demand.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func openSQLite(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// a single connection keeps the pragma below (and :memory: databases) stable
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &DB{DB: db, driver: DriverSQLite}, nil
}

func openPostgres(dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &DB{DB: db, driver: DriverPostgres}, nil
}

func (db *DB) Driver() string {
	return db.driver
}

// likeOperator is the case-insensitive substring operator. SQLite's LIKE
// already ignores ASCII case.
func (db *DB) likeOperator() string {
	if db.driver == DriverPostgres {
		return "ILIKE"
	}
	return "LIKE"
}

func (db *DB) ddl(sqliteStmt, postgresStmt string) string {
	if db.driver == DriverPostgres {
		return postgresStmt
	}
	return sqliteStmt
}

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
	checkViolation
)

// classify reports which integrity constraint, if any, rejected a statement.
func classify(err error) violation {
	if err == nil {
		return noViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return uniqueViolation
		case "23503":
			return foreignKeyViolation
		case "23514":
			return checkViolation
		}
		return noViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return checkViolation
		}
		// without extended result codes only the message tells them apart
		msg := strings.ToLower(liteErr.Error())
		switch {
		case strings.Contains(msg, "unique constraint"):
			return uniqueViolation
		case strings.Contains(msg, "foreign key constraint"):
			return foreignKeyViolation
		case strings.Contains(msg, "check constraint"):
			return checkViolation
		}
	}
	return noViolation
}

func notFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
