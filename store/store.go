// Package store is the local database behind the notification centre and the
// messaging outbox. It holds only what must survive a restart: which
// notifications the operator dismissed, and which envelopes still await
// publication. Everything else lives in the remote installation store.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"expotrack/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	dialect Dialect
	driver  string
}

// Open connects to the configured driver and applies the schema. SQLite is
// the default for a single-host deployment; Postgres is for shared setups.
func Open(cfg *config.DatabaseConfig) (*DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return openSQLite(cfg.SQLite.Path)
	case "postgres":
		return openPostgres(&cfg.Postgres)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func openSQLite(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return newDB(sqlDB, sqliteDialect{})
}

func openPostgres(cfg *config.PostgresConfig) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Database, cfg.User, cfg.Password, cfg.SSLMode)
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newDB(sqlDB, postgresDialect{})
}

func newDB(sqlDB *sql.DB, d Dialect) (*DB, error) {
	db := &DB{DB: sqlDB, dialect: d, driver: d.Name()}
	if _, err := db.Exec(d.Schema()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate %s: %w", d.Name(), err)
	}
	return db, nil
}

func (db *DB) Dialect() Dialect { return db.dialect }
func (db *DB) Driver() string   { return db.driver }

// Q rewrites ? placeholders and datetime literals for PostgreSQL, passes through for SQLite.
func (db *DB) Q(query string) string {
	if db.driver == "postgres" {
		query = strings.ReplaceAll(query, "datetime('now','localtime')", "NOW()")
		return Rebind(query)
	}
	return query
}
