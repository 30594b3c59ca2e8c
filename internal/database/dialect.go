package database

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// ErrStorageDisabled is returned when the app is configured to keep state in memory only
var ErrStorageDisabled = errors.New("storage disabled")

// Dialect hides the differences between the supported SQL backends
type Dialect interface {
	// Name identifies the backend and names its migrations subdirectory
	Name() string
	DriverName() string
	// DSN turns the configured path or URL into a driver connection string
	DSN(config DialectConfig) (string, error)
	// RewriteQuery converts ? placeholders where the driver needs another syntax
	RewriteQuery(query string) string
	ConfigureConnection(db *sql.DB) error
	CreateMigrationsTableQuery() string
}

// DialectConfig holds the connection target: Path for SQLite, URL otherwise
type DialectConfig struct {
	Path string
	URL  string
}

// numberPlaceholders rewrites ? to $1, $2, ... leaving quoted text alone
func numberPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
