package reader

import "github.com/schemadelta/schemadelta/internal/dialect"

// catalog holds the queries a dialect answers. Every query takes the owner
// as its only parameter, except in dialects without owners where
// currentOwner is empty and queries take no parameters. An empty query is
// skipped. Row shapes:
//
//	tables:        owner, table, description
//	columns:       owner, table, column, type, length, precision, scale,
//	               nullable, default, identity, description
//	constraints:   owner, table, name, P|U|C|F|D, column, ordinal, expression,
//	               ref owner, ref table, ref column, delete rule, update rule
//	indexes:       owner, table, name, type, unique, column, ordinal, descending
//	triggers:      owner, table, name, body, timing, event
//	views:         owner, name, definition
//	routines:      owner, name, P|F, definition, return type
//	sources:       owner, name, PROCEDURE|FUNCTION|PACKAGE|PACKAGE BODY, line text
//	sequences:     owner, name, min, max, increment
//	userDataTypes: owner, name, base type, length, precision, scale, nullable, default
//	tableTypes:    owner, type, column, type, length, precision, scale, nullable
//
// Multi-row objects (constraints, indexes, sources, table types) must be
// ordered so each object's rows arrive in column or line order.
type catalog struct {
	currentOwner string

	tables        string
	columns       string
	constraints   []string
	indexes       string
	triggers      string
	views         string
	routines      string
	sources       string
	sequences     string
	userDataTypes string
	tableTypes    string
}

var catalogs = map[dialect.Dialect]*catalog{
	dialect.PostgreSql: postgresCatalog,
	dialect.MySql:      mysqlCatalog,
	dialect.SqlServer:  sqlServerCatalog,
	dialect.Oracle:     oracleCatalog,
	dialect.SQLite:     sqliteCatalog,
}

// Supported reports whether d has a catalog reader
func Supported(d dialect.Dialect) bool {
	_, ok := catalogs[d]
	return ok && d.DriverName() != ""
}
