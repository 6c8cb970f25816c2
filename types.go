package schemadelta

import (
	"github.com/schemadelta/schemadelta/internal/compare"
	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/internal/ignore"
	"github.com/schemadelta/schemadelta/schema"
)

// Re-export important types for external consumption

// Schema is the root of a schema graph.
type Schema = schema.Schema

// Table is a table with its columns, constraints, indexes and triggers.
type Table = schema.Table

// Column is a table column.
type Column = schema.Column

// Constraint is a primary key, foreign key, unique, check or default constraint.
type Constraint = schema.Constraint

// Index is a table index.
type Index = schema.Index

// Dialect selects the DDL syntax of a generated script.
type Dialect = dialect.Dialect

// Supported dialects.
const (
	SqlServer   = dialect.SqlServer
	Oracle      = dialect.Oracle
	PostgreSql  = dialect.PostgreSql
	MySql       = dialect.MySql
	SQLite      = dialect.SQLite
	SqlServerCe = dialect.SqlServerCe
	Db2         = dialect.Db2
	Firebird    = dialect.Firebird
)

// ParseDialect resolves a dialect from its name or a common alias.
var ParseDialect = dialect.Parse

// CompareResult records one difference and the script that resolves it.
type CompareResult = compare.Result

// ResultType classifies a CompareResult as an addition, change or deletion.
type ResultType = compare.ResultType

const (
	ResultTypeAdd    = compare.ResultTypeAdd
	ResultTypeChange = compare.ResultTypeChange
	ResultTypeDelete = compare.ResultTypeDelete
)

// IgnoreConfig lists name patterns excluded from a comparison.
type IgnoreConfig = ignore.Config
