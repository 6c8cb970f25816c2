// Package dialect enumerates the SQL dialects the tool generates DDL for.
package dialect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDialect is returned by Parse for names it does not recognise
var ErrUnknownDialect = errors.New("unknown dialect")

// Dialect selects DDL syntax and SQL comparison rules
type Dialect int

const (
	SqlServer Dialect = iota
	Oracle
	PostgreSql
	MySql
	SQLite
	SqlServerCe
	Db2
	Firebird
)

var names = map[Dialect]string{
	SqlServer:   "SqlServer",
	Oracle:      "Oracle",
	PostgreSql:  "PostgreSql",
	MySql:       "MySql",
	SQLite:      "SQLite",
	SqlServerCe: "SqlServerCe",
	Db2:         "Db2",
	Firebird:    "Firebird",
}

var aliases = map[string]Dialect{
	"sqlserver":   SqlServer,
	"mssql":       SqlServer,
	"oracle":      Oracle,
	"ora":         Oracle,
	"postgresql":  PostgreSql,
	"postgres":    PostgreSql,
	"pg":          PostgreSql,
	"pgx":         PostgreSql,
	"mysql":       MySql,
	"mariadb":     MySql,
	"sqlite":      SQLite,
	"sqlite3":     SQLite,
	"sqlserverce": SqlServerCe,
	"sqlce":       SqlServerCe,
	"db2":         Db2,
	"firebird":    Firebird,
}

// All returns every dialect in declaration order
func All() []Dialect {
	return []Dialect{SqlServer, Oracle, PostgreSql, MySql, SQLite, SqlServerCe, Db2, Firebird}
}

// Parse resolves a dialect from its name or a common alias, ignoring case
func Parse(s string) (Dialect, error) {
	if d, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDialect, s)
}

func (d Dialect) String() string {
	if name, ok := names[d]; ok {
		return name
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// IsSqlServerFamily reports whether d is SQL Server or SQL Server Compact
func (d Dialect) IsSqlServerFamily() bool {
	return d == SqlServer || d == SqlServerCe
}

// DriverName returns the database/sql driver registered for d, or "" when
// no driver is linked into the binary
func (d Dialect) DriverName() string {
	switch d {
	case PostgreSql:
		return "pgx"
	case MySql:
		return "mysql"
	case SqlServer:
		return "sqlserver"
	case SQLite:
		return "sqlite"
	case Oracle:
		return "oracle"
	default:
		return ""
	}
}

// MarshalText encodes the dialect by name
func (d Dialect) MarshalText() ([]byte, error) {
	if _, ok := names[d]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDialect, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a dialect name or alias
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
