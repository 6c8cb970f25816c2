package reader

import (
	"database/sql"
	"strings"

	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/schema"
)

// builder assembles catalog rows into a schema graph. Rows for a table's
// children refer to the table by owner and name; children of tables the
// tables query did not return are dropped.
type builder struct {
	schema      *schema.Schema
	tables      map[string]*schema.Table
	constraints map[string]*schema.Constraint
	indexes     map[string]*schema.Index
	tableTypes  map[string]*schema.UserDefinedTable
	sources     []*source
	sourceIndex map[string]*source
}

// source is one stored unit assembled from per-line catalog rows
type source struct {
	owner, name, kind string
	text              strings.Builder
}

func newBuilder(d dialect.Dialect, owner string) *builder {
	return &builder{
		schema:      &schema.Schema{Provider: d.String(), Owner: owner},
		tables:      make(map[string]*schema.Table),
		constraints: make(map[string]*schema.Constraint),
		indexes:     make(map[string]*schema.Index),
		tableTypes:  make(map[string]*schema.UserDefinedTable),
		sourceIndex: make(map[string]*source),
	}
}

func key(parts ...string) string {
	return strings.Join(parts, "\x00")
}

func str(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return strings.TrimRight(v.String, " \t\r\n")
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func flag(v sql.NullInt64) bool {
	return v.Valid && v.Int64 != 0
}

func (b *builder) scanTable(rows *sql.Rows) error {
	var owner, name, description sql.NullString
	if err := rows.Scan(&owner, &name, &description); err != nil {
		return err
	}
	t := &schema.Table{
		Name:        str(name),
		SchemaOwner: str(owner),
		Description: str(description),
	}
	b.tables[key(t.SchemaOwner, t.Name)] = t
	b.schema.Tables = append(b.schema.Tables, t)
	return nil
}

func (b *builder) scanColumn(rows *sql.Rows) error {
	var owner, table, name, dataType, def, description sql.NullString
	var length, precision, scale, nullable, identity sql.NullInt64
	if err := rows.Scan(&owner, &table, &name, &dataType, &length, &precision, &scale,
		&nullable, &def, &identity, &description); err != nil {
		return err
	}
	t, ok := b.tables[key(str(owner), str(table))]
	if !ok {
		return nil
	}
	c := &schema.Column{
		Name:         str(name),
		TableName:    t.Name,
		DbDataType:   str(dataType),
		Length:       intPtr(length),
		Precision:    intPtr(precision),
		Scale:        intPtr(scale),
		Nullable:     flag(nullable),
		DefaultValue: str(def),
		IsAutoNumber: flag(identity),
		Description:  str(description),
	}
	// serial columns are backed by a sequence default
	if strings.HasPrefix(strings.ToLower(c.DefaultValue), "nextval(") {
		c.IsAutoNumber = true
		c.DefaultValue = ""
	}
	t.Columns = append(t.Columns, c)
	return nil
}

func constraintType(code string) (schema.ConstraintType, bool) {
	switch strings.ToUpper(code) {
	case "P":
		return schema.ConstraintTypePrimaryKey, true
	case "U":
		return schema.ConstraintTypeUniqueKey, true
	case "C":
		return schema.ConstraintTypeCheck, true
	case "F", "R":
		return schema.ConstraintTypeForeignKey, true
	case "D":
		return schema.ConstraintTypeDefault, true
	default:
		return "", false
	}
}

func (b *builder) scanConstraint(rows *sql.Rows) error {
	var owner, table, name, code, column, expression, refOwner, refTable, refColumn, deleteRule, updateRule sql.NullString
	var ordinal sql.NullInt64
	if err := rows.Scan(&owner, &table, &name, &code, &column, &ordinal, &expression,
		&refOwner, &refTable, &refColumn, &deleteRule, &updateRule); err != nil {
		return err
	}
	t, ok := b.tables[key(str(owner), str(table))]
	if !ok {
		return nil
	}
	ct, ok := constraintType(str(code))
	if !ok {
		return nil
	}

	k := key(t.SchemaOwner, t.Name, str(name))
	c, seen := b.constraints[k]
	if !seen {
		c = &schema.Constraint{
			Name:           str(name),
			TableName:      t.Name,
			SchemaOwner:    t.SchemaOwner,
			ConstraintType: ct,
			Expression:     str(expression),
			RefersToTable:  str(refTable),
			RefersToSchema: str(refOwner),
			DeleteRule:     str(deleteRule),
			UpdateRule:     str(updateRule),
		}
		b.constraints[k] = c
		switch ct {
		case schema.ConstraintTypePrimaryKey:
			t.PrimaryKey = c
		case schema.ConstraintTypeUniqueKey:
			t.UniqueKeys = append(t.UniqueKeys, c)
		case schema.ConstraintTypeCheck:
			t.CheckConstraints = append(t.CheckConstraints, c)
		case schema.ConstraintTypeForeignKey:
			t.ForeignKeys = append(t.ForeignKeys, c)
		case schema.ConstraintTypeDefault:
			t.DefaultConstraints = append(t.DefaultConstraints, c)
		}
	}
	if col := str(column); col != "" {
		c.Columns = append(c.Columns, col)
	}
	if col := str(refColumn); col != "" {
		c.RefersToColumns = append(c.RefersToColumns, col)
	}
	return nil
}

func (b *builder) scanIndex(rows *sql.Rows) error {
	var owner, table, name, indexType, column sql.NullString
	var unique, ordinal, descending sql.NullInt64
	if err := rows.Scan(&owner, &table, &name, &indexType, &unique, &column, &ordinal, &descending); err != nil {
		return err
	}
	t, ok := b.tables[key(str(owner), str(table))]
	if !ok {
		return nil
	}

	k := key(t.SchemaOwner, t.Name, str(name))
	idx, seen := b.indexes[k]
	if !seen {
		idx = &schema.Index{
			Name:        str(name),
			TableName:   t.Name,
			SchemaOwner: t.SchemaOwner,
			IndexType:   str(indexType),
			IsUnique:    flag(unique),
		}
		b.indexes[k] = idx
		t.Indexes = append(t.Indexes, idx)
	}
	if col := str(column); col != "" {
		idx.Columns = append(idx.Columns, &schema.IndexColumn{
			Name:       col,
			Ordinal:    int(ordinal.Int64),
			Descending: flag(descending),
		})
	}
	return nil
}

func (b *builder) scanTrigger(rows *sql.Rows) error {
	var owner, table, name, body, triggerType, event sql.NullString
	if err := rows.Scan(&owner, &table, &name, &body, &triggerType, &event); err != nil {
		return err
	}
	t, ok := b.tables[key(str(owner), str(table))]
	if !ok {
		return nil
	}
	t.Triggers = append(t.Triggers, &schema.Trigger{
		Name:         str(name),
		TableName:    t.Name,
		SchemaOwner:  t.SchemaOwner,
		TriggerBody:  str(body),
		TriggerType:  str(triggerType),
		TriggerEvent: str(event),
	})
	return nil
}

func (b *builder) scanView(rows *sql.Rows) error {
	var owner, name, definition sql.NullString
	if err := rows.Scan(&owner, &name, &definition); err != nil {
		return err
	}
	b.schema.Views = append(b.schema.Views, &schema.View{
		Name:        str(name),
		SchemaOwner: str(owner),
		Sql:         str(definition),
	})
	return nil
}

func (b *builder) scanRoutine(rows *sql.Rows) error {
	var owner, name, kind, definition, returnType sql.NullString
	if err := rows.Scan(&owner, &name, &kind, &definition, &returnType); err != nil {
		return err
	}
	if strings.EqualFold(str(kind), "P") {
		b.schema.StoredProcedures = append(b.schema.StoredProcedures, &schema.StoredProcedure{
			Name:        str(name),
			SchemaOwner: str(owner),
			Sql:         str(definition),
		})
		return nil
	}
	b.schema.Functions = append(b.schema.Functions, &schema.Function{
		Name:        str(name),
		SchemaOwner: str(owner),
		Sql:         str(definition),
		ReturnType:  str(returnType),
	})
	return nil
}

// scanSource collects one line of stored source; rows arrive in line order
func (b *builder) scanSource(rows *sql.Rows) error {
	var owner, name, kind, text sql.NullString
	if err := rows.Scan(&owner, &name, &kind, &text); err != nil {
		return err
	}
	k := key(owner.String, name.String, strings.ToUpper(kind.String))
	src, ok := b.sourceIndex[k]
	if !ok {
		src = &source{owner: owner.String, name: name.String, kind: strings.ToUpper(kind.String)}
		b.sourceIndex[k] = src
		b.sources = append(b.sources, src)
	}
	src.text.WriteString(text.String)
	return nil
}

func (b *builder) scanSequence(rows *sql.Rows) error {
	var owner, name sql.NullString
	var minimum, maximum, increment sql.NullInt64
	if err := rows.Scan(&owner, &name, &minimum, &maximum, &increment); err != nil {
		return err
	}
	seq := &schema.Sequence{
		Name:         str(name),
		SchemaOwner:  str(owner),
		MinimumValue: minimum.Int64,
		IncrementBy:  increment.Int64,
	}
	if maximum.Valid {
		seq.MaximumValue = &maximum.Int64
	}
	b.schema.Sequences = append(b.schema.Sequences, seq)
	return nil
}

func (b *builder) scanUserDataType(rows *sql.Rows) error {
	var owner, name, baseType, def sql.NullString
	var length, precision, scale, nullable sql.NullInt64
	if err := rows.Scan(&owner, &name, &baseType, &length, &precision, &scale, &nullable, &def); err != nil {
		return err
	}
	b.schema.UserDataTypes = append(b.schema.UserDataTypes, &schema.UserDataType{
		Name:         str(name),
		SchemaOwner:  str(owner),
		DbTypeName:   str(baseType),
		MaxLength:    intPtr(length),
		Precision:    intPtr(precision),
		Scale:        intPtr(scale),
		Nullable:     flag(nullable),
		DefaultValue: str(def),
	})
	return nil
}

func (b *builder) scanTableTypeColumn(rows *sql.Rows) error {
	var owner, typeName, name, dataType sql.NullString
	var length, precision, scale, nullable sql.NullInt64
	if err := rows.Scan(&owner, &typeName, &name, &dataType, &length, &precision, &scale, &nullable); err != nil {
		return err
	}
	k := key(str(owner), str(typeName))
	tt, ok := b.tableTypes[k]
	if !ok {
		tt = &schema.UserDefinedTable{Name: str(typeName), SchemaOwner: str(owner)}
		b.tableTypes[k] = tt
		b.schema.UserDefinedTableTypes = append(b.schema.UserDefinedTableTypes, tt)
	}
	tt.Columns = append(tt.Columns, &schema.Column{
		Name:       str(name),
		TableName:  tt.Name,
		DbDataType: str(dataType),
		Length:     intPtr(length),
		Precision:  intPtr(precision),
		Scale:      intPtr(scale),
		Nullable:   flag(nullable),
	})
	return nil
}

// build turns collected sources into routines and packages and returns the
// finished schema
func (b *builder) build() *schema.Schema {
	packages := make(map[string]*schema.Package)
	for _, src := range b.sources {
		text := strings.TrimRight(src.text.String(), " \t\r\n")
		switch src.kind {
		case "PROCEDURE":
			b.schema.StoredProcedures = append(b.schema.StoredProcedures, &schema.StoredProcedure{
				Name: src.name, SchemaOwner: src.owner, Sql: text,
			})
		case "FUNCTION":
			b.schema.Functions = append(b.schema.Functions, &schema.Function{
				Name: src.name, SchemaOwner: src.owner, Sql: text,
			})
		case "PACKAGE", "PACKAGE BODY":
			k := key(src.owner, src.name)
			p, ok := packages[k]
			if !ok {
				p = &schema.Package{Name: src.name, SchemaOwner: src.owner}
				packages[k] = p
				b.schema.Packages = append(b.schema.Packages, p)
			}
			if src.kind == "PACKAGE" {
				p.Definition = text
			} else {
				p.Body = text
			}
		}
	}
	return b.schema
}
