// Package schema holds the dialect-neutral object graph that the comparison
// engine reads. Graphs are produced by the catalog readers or loaded from
// snapshot files and are treated as read-only once built.
package schema

// Schema represents a database schema snapshot
type Schema struct {
	Provider              string              `json:"provider,omitempty" yaml:"provider,omitempty"` // dialect the snapshot was read from
	Owner                 string              `json:"owner,omitempty" yaml:"owner,omitempty"`       // default owner
	Tables                []*Table            `json:"tables,omitempty" yaml:"tables,omitempty"`
	Views                 []*View             `json:"views,omitempty" yaml:"views,omitempty"`
	StoredProcedures      []*StoredProcedure  `json:"stored_procedures,omitempty" yaml:"stored_procedures,omitempty"`
	Functions             []*Function         `json:"functions,omitempty" yaml:"functions,omitempty"`
	Packages              []*Package          `json:"packages,omitempty" yaml:"packages,omitempty"`
	Sequences             []*Sequence         `json:"sequences,omitempty" yaml:"sequences,omitempty"`
	UserDataTypes         []*UserDataType     `json:"user_data_types,omitempty" yaml:"user_data_types,omitempty"`
	UserDefinedTableTypes []*UserDefinedTable `json:"user_defined_table_types,omitempty" yaml:"user_defined_table_types,omitempty"`
}

// Table represents a database table
type Table struct {
	Name               string        `json:"name" yaml:"name"`
	SchemaOwner        string        `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	Columns            []*Column     `json:"columns" yaml:"columns"`
	PrimaryKey         *Constraint   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	ForeignKeys        []*Constraint `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	UniqueKeys         []*Constraint `json:"unique_keys,omitempty" yaml:"unique_keys,omitempty"`
	CheckConstraints   []*Constraint `json:"check_constraints,omitempty" yaml:"check_constraints,omitempty"`
	DefaultConstraints []*Constraint `json:"default_constraints,omitempty" yaml:"default_constraints,omitempty"`
	Indexes            []*Index      `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Triggers           []*Trigger    `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	Description        string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// Column represents a table column. Length, Precision and Scale are nil when
// they do not apply to the data type.
type Column struct {
	Name         string `json:"name" yaml:"name"`
	TableName    string `json:"table_name,omitempty" yaml:"table_name,omitempty"` // display only
	DbDataType   string `json:"db_data_type" yaml:"db_data_type"`
	Length       *int   `json:"length,omitempty" yaml:"length,omitempty"`
	Precision    *int   `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale        *int   `json:"scale,omitempty" yaml:"scale,omitempty"`
	Nullable     bool   `json:"nullable" yaml:"nullable"`
	DefaultValue string `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	IsAutoNumber bool   `json:"is_auto_number,omitempty" yaml:"is_auto_number,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ConstraintType represents the kind of a table constraint
type ConstraintType string

const (
	ConstraintTypePrimaryKey ConstraintType = "PRIMARY_KEY"
	ConstraintTypeForeignKey ConstraintType = "FOREIGN_KEY"
	ConstraintTypeUniqueKey  ConstraintType = "UNIQUE"
	ConstraintTypeCheck      ConstraintType = "CHECK"
	ConstraintTypeDefault    ConstraintType = "DEFAULT"
)

// Constraint represents a table constraint. Columns are ordered; for foreign
// keys RefersToTable/RefersToSchema name the target table.
type Constraint struct {
	Name               string         `json:"name" yaml:"name"`
	TableName          string         `json:"table_name,omitempty" yaml:"table_name,omitempty"`
	SchemaOwner        string         `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	ConstraintType     ConstraintType `json:"constraint_type" yaml:"constraint_type"`
	Columns            []string       `json:"columns,omitempty" yaml:"columns,omitempty"`
	Expression         string         `json:"expression,omitempty" yaml:"expression,omitempty"`
	RefersToTable      string         `json:"refers_to_table,omitempty" yaml:"refers_to_table,omitempty"`
	RefersToSchema     string         `json:"refers_to_schema,omitempty" yaml:"refers_to_schema,omitempty"`
	RefersToConstraint string         `json:"refers_to_constraint,omitempty" yaml:"refers_to_constraint,omitempty"`
	RefersToColumns    []string       `json:"refers_to_columns,omitempty" yaml:"refers_to_columns,omitempty"`
	DeleteRule         string         `json:"delete_rule,omitempty" yaml:"delete_rule,omitempty"`
	UpdateRule         string         `json:"update_rule,omitempty" yaml:"update_rule,omitempty"`
}

// Index represents a table index
type Index struct {
	Name        string         `json:"name" yaml:"name"`
	TableName   string         `json:"table_name,omitempty" yaml:"table_name,omitempty"`
	SchemaOwner string         `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	IndexType   string         `json:"index_type,omitempty" yaml:"index_type,omitempty"` // e.g. CLUSTERED, BTREE
	IsUnique    bool           `json:"is_unique,omitempty" yaml:"is_unique,omitempty"`
	Columns     []*IndexColumn `json:"columns" yaml:"columns"`
}

// IndexColumn represents a column in an index
type IndexColumn struct {
	Name       string `json:"name" yaml:"name"`
	Ordinal    int    `json:"ordinal" yaml:"ordinal"`
	Descending bool   `json:"descending,omitempty" yaml:"descending,omitempty"`
}

// Trigger represents a table trigger
type Trigger struct {
	Name         string `json:"name" yaml:"name"`
	TableName    string `json:"table_name" yaml:"table_name"`
	SchemaOwner  string `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	TriggerBody  string `json:"trigger_body" yaml:"trigger_body"`
	TriggerType  string `json:"trigger_type,omitempty" yaml:"trigger_type,omitempty"`   // BEFORE, AFTER, INSTEAD OF
	TriggerEvent string `json:"trigger_event,omitempty" yaml:"trigger_event,omitempty"` // INSERT, UPDATE, DELETE
}

// View represents a database view
type View struct {
	Name        string `json:"name" yaml:"name"`
	SchemaOwner string `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	Sql         string `json:"sql" yaml:"sql"`
}

// StoredProcedure represents a stored procedure
type StoredProcedure struct {
	Name        string `json:"name" yaml:"name"`
	SchemaOwner string `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	Sql         string `json:"sql" yaml:"sql"`
}

// Function represents a stored function
type Function struct {
	Name        string `json:"name" yaml:"name"`
	SchemaOwner string `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	Sql         string `json:"sql" yaml:"sql"`
	ReturnType  string `json:"return_type,omitempty" yaml:"return_type,omitempty"`
}

// Package represents an Oracle-style package: Definition is the
// specification text, Body the package body
type Package struct {
	Name        string `json:"name" yaml:"name"`
	SchemaOwner string `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	Definition  string `json:"definition" yaml:"definition"`
	Body        string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Sequence represents a database sequence
type Sequence struct {
	Name         string `json:"name" yaml:"name"`
	SchemaOwner  string `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	MinimumValue int64  `json:"minimum_value" yaml:"minimum_value"`
	MaximumValue *int64 `json:"maximum_value,omitempty" yaml:"maximum_value,omitempty"`
	IncrementBy  int64  `json:"increment_by" yaml:"increment_by"`
}

// UserDataType represents an alias type built on a base type
type UserDataType struct {
	Name         string `json:"name" yaml:"name"`
	SchemaOwner  string `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	DbTypeName   string `json:"db_type_name" yaml:"db_type_name"`
	MaxLength    *int   `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Precision    *int   `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale        *int   `json:"scale,omitempty" yaml:"scale,omitempty"`
	Nullable     bool   `json:"nullable" yaml:"nullable"`
	DefaultValue string `json:"default_value,omitempty" yaml:"default_value,omitempty"`
}

// UserDefinedTable represents a table-valued type
type UserDefinedTable struct {
	Name        string    `json:"name" yaml:"name"`
	SchemaOwner string    `json:"schema_owner,omitempty" yaml:"schema_owner,omitempty"`
	Columns     []*Column `json:"columns" yaml:"columns"`
}

// Int returns a pointer to v, for populating optional column sizes
func Int(v int) *int {
	return &v
}
