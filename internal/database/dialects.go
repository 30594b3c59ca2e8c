package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect stores progress in a local file
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite3" }

// DSN enables WAL, foreign keys and a busy timeout through go-sqlite3 parameters
func (d *SQLiteDialect) DSN(config DialectConfig) (string, error) {
	if config.Path == "" {
		return "", fmt.Errorf("sqlite: database path is required")
	}
	params := url.Values{}
	params.Set("_busy_timeout", "5000")
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")

	sep := "?"
	if strings.Contains(config.Path, "?") {
		sep = "&"
	}
	return config.Path + sep + params.Encode(), nil
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// A single writer keeps SQLite from reporting "database is locked"
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT UNIQUE NOT NULL,
		executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
}

// PostgresDialect connects through lib/pq
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "postgres" }

// DSN accepts a postgres:// URL or a key=value connection string
func (d *PostgresDialect) DSN(config DialectConfig) (string, error) {
	if config.URL == "" {
		return "", fmt.Errorf("postgres: DATABASE_URL is required")
	}
	if strings.HasPrefix(config.URL, "postgres://") || strings.HasPrefix(config.URL, "postgresql://") {
		conninfo, err := pq.ParseURL(config.URL)
		if err != nil {
			return "", fmt.Errorf("postgres: invalid DATABASE_URL: %w", err)
		}
		return conninfo, nil
	}
	return config.URL, nil
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	return numberPlaceholders(query)
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return nil
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
		id BIGSERIAL PRIMARY KEY,
		filename TEXT UNIQUE NOT NULL,
		executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`
}

// MySQLDialect connects through go-sql-driver/mysql
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) Name() string       { return "mysql" }
func (d *MySQLDialect) DriverName() string { return "mysql" }

// DSN parses the driver DSN and forces parseTime so DATETIME columns scan into time.Time
func (d *MySQLDialect) DSN(config DialectConfig) (string, error) {
	if config.URL == "" {
		return "", fmt.Errorf("mysql: DATABASE_URL is required")
	}
	cfg, err := mysql.ParseDSN(strings.TrimPrefix(config.URL, "mysql://"))
	if err != nil {
		return "", fmt.Errorf("mysql: invalid DATABASE_URL: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	return query
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	configurePool(db)
	return nil
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		filename VARCHAR(255) UNIQUE NOT NULL,
		executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
	)`
}

// configurePool sizes the pool for the networked backends. The app writes one
// profile at a time, so a small pool is plenty.
func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
}
