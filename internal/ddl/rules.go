package ddl

import (
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

// rules holds the syntax that differs between dialects. Methods taking a
// *generator may call back into it; the generator always dispatches through
// its rules, so overrides in an embedding type take effect.
type rules interface {
	name() string
	quote(name string) string
	quoteLiteral(s string) string
	qualifiesOwner() bool
	dataType(c *schema.Column) string
	identity(c *schema.Column) string
	nullClause(nullable bool) string
	addColumnKeyword() string
	dropColumnKeyword() string
	alterColumn(g *generator, t *schema.Table, c, original *schema.Column) string
	addConstraint(g *generator, t *schema.Table, c *schema.Constraint) string
	addDefault(g *generator, t *schema.Table, c *schema.Constraint) string
	dropConstraint(g *generator, t *schema.Table, c *schema.Constraint) string
	supportsOnUpdate() bool
	indexType(indexType string) (prefix, suffix string)
	indexTypeBeforeColumns() bool
	dropIndex(g *generator, t *schema.Table, i *schema.Index) string
	dropTrigger(g *generator, tr *schema.Trigger) string
	routinePrefix() string
	supportsSequences() bool
	createSequence(g *generator, s *schema.Sequence) string
	createUserDataType(g *generator, u *schema.UserDataType) string
	dropUserDataType(g *generator, u *schema.UserDataType) string
	createTableType(g *generator, u *schema.UserDefinedTable) string
	dropTableType(g *generator, u *schema.UserDefinedTable) string
	supportsComments() bool
	batchSeparator() string
}

// ansiRules is the standard SQL baseline the dialects embed
type ansiRules struct{}

func (ansiRules) name() string { return "ANSI SQL" }

func (ansiRules) quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (ansiRules) quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (ansiRules) qualifiesOwner() bool { return true }

func (ansiRules) dataType(c *schema.Column) string {
	return formatType(c.DbDataType, c.Length, c.Precision, c.Scale, "")
}

func (ansiRules) identity(*schema.Column) string { return "GENERATED BY DEFAULT AS IDENTITY" }

func (ansiRules) nullClause(nullable bool) string {
	if nullable {
		return ""
	}
	return "NOT NULL"
}

func (ansiRules) addColumnKeyword() string  { return "ADD COLUMN" }
func (ansiRules) dropColumnKeyword() string { return "DROP COLUMN" }

func (ansiRules) alterColumn(g *generator, t *schema.Table, c, original *schema.Column) string {
	return alterColumnStatements(g, t, c, original, "TYPE")
}

// alterColumnStatements emits separate type and nullability changes, the
// way PostgreSQL, DB2 and Firebird spell them
func alterColumnStatements(g *generator, t *schema.Table, c, original *schema.Column, typeKeyword string) string {
	table := g.tableName(t)
	column := g.quote(c.Name)
	var stmts []string
	if original == nil || !sameType(c, original) {
		stmts = append(stmts, g.terminate(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s %s", table, column, typeKeyword, g.r.dataType(c))))
	}
	if original == nil || original.Nullable != c.Nullable {
		action := "SET NOT NULL"
		if c.Nullable {
			action = "DROP NOT NULL"
		}
		stmts = append(stmts, g.terminate(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s", table, column, action)))
	}
	if len(stmts) == 0 {
		stmts = append(stmts, g.terminate(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s %s", table, column, typeKeyword, g.r.dataType(c))))
	}
	return strings.Join(stmts, "\n")
}

func (ansiRules) addConstraint(g *generator, t *schema.Table, c *schema.Constraint) string {
	if c.ConstraintType == schema.ConstraintTypeDefault {
		return g.r.addDefault(g, t, c)
	}
	return g.terminate(fmt.Sprintf("ALTER TABLE %s ADD %s", g.tableName(t), g.constraintClause(c)))
}

func (ansiRules) addDefault(g *generator, t *schema.Table, c *schema.Constraint) string {
	if len(c.Columns) == 0 {
		return fmt.Sprintf("-- default constraint %s has no column", c.Name)
	}
	return g.terminate(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s", g.tableName(t), g.quote(c.Columns[0]), c.Expression))
}

func (ansiRules) dropConstraint(g *generator, t *schema.Table, c *schema.Constraint) string {
	if c.ConstraintType == schema.ConstraintTypeDefault && len(c.Columns) > 0 {
		return g.terminate(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", g.tableName(t), g.quote(c.Columns[0])))
	}
	return g.terminate(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", g.tableName(t), g.quote(c.Name)))
}

func (ansiRules) supportsOnUpdate() bool { return true }

func (ansiRules) indexType(string) (string, string) { return "", "" }

func (ansiRules) indexTypeBeforeColumns() bool { return true }

func (ansiRules) dropIndex(g *generator, t *schema.Table, i *schema.Index) string {
	return g.terminate("DROP INDEX " + g.qualify(t.SchemaOwner, i.Name))
}

func (ansiRules) dropTrigger(g *generator, tr *schema.Trigger) string {
	return g.terminate("DROP TRIGGER " + g.qualify(tr.SchemaOwner, tr.Name))
}

func (ansiRules) routinePrefix() string { return "CREATE" }

func (ansiRules) supportsSequences() bool { return true }

func (ansiRules) createSequence(g *generator, s *schema.Sequence) string {
	stmt := fmt.Sprintf("CREATE SEQUENCE %s START WITH %d INCREMENT BY %d MINVALUE %d",
		g.qualify(s.SchemaOwner, s.Name), s.MinimumValue, s.IncrementBy, s.MinimumValue)
	if s.MaximumValue != nil {
		stmt += fmt.Sprintf(" MAXVALUE %d", *s.MaximumValue)
	}
	return g.terminate(stmt)
}

func (ansiRules) createUserDataType(g *generator, _ *schema.UserDataType) string {
	return unsupported(g.r, "user data types")
}

func (ansiRules) dropUserDataType(g *generator, _ *schema.UserDataType) string {
	return unsupported(g.r, "user data types")
}

func (ansiRules) createTableType(g *generator, _ *schema.UserDefinedTable) string {
	return unsupported(g.r, "user table types")
}

func (ansiRules) dropTableType(g *generator, _ *schema.UserDefinedTable) string {
	return unsupported(g.r, "user table types")
}

func (ansiRules) supportsComments() bool { return true }

func (ansiRules) batchSeparator() string { return "" }

// createDomain writes a user data type as a domain (PostgreSQL, Firebird)
func createDomain(g *generator, u *schema.UserDataType) string {
	stmt := fmt.Sprintf("CREATE DOMAIN %s AS %s", g.qualify(u.SchemaOwner, u.Name),
		formatType(u.DbTypeName, u.MaxLength, u.Precision, u.Scale, ""))
	if u.DefaultValue != "" {
		stmt += " DEFAULT " + u.DefaultValue
	}
	if !u.Nullable {
		stmt += " NOT NULL"
	}
	return g.terminate(stmt)
}

var lengthTypes = map[string]bool{
	"char":              true,
	"varchar":           true,
	"nchar":             true,
	"nvarchar":          true,
	"varchar2":          true,
	"nvarchar2":         true,
	"character":         true,
	"character varying": true,
	"binary":            true,
	"varbinary":         true,
	"raw":               true,
	"bit varying":       true,
	"varbit":            true,
}

var precisionTypes = map[string]bool{
	"decimal": true,
	"numeric": true,
	"number":  true,
	"dec":     true,
}

// formatType appends length or precision/scale to a bare type name. A
// negative length means "max" and is rendered with maxText when given.
func formatType(typeName string, length, precision, scale *int, maxText string) string {
	if strings.Contains(typeName, "(") {
		return typeName
	}
	lower := strings.ToLower(strings.TrimSpace(typeName))
	switch {
	case lengthTypes[lower]:
		if length == nil || *length == 0 {
			return typeName
		}
		if *length < 0 {
			if maxText == "" {
				return typeName
			}
			return typeName + "(" + maxText + ")"
		}
		return fmt.Sprintf("%s(%d)", typeName, *length)
	case precisionTypes[lower]:
		if precision == nil || *precision <= 0 {
			return typeName
		}
		if scale == nil {
			return fmt.Sprintf("%s(%d)", typeName, *precision)
		}
		return fmt.Sprintf("%s(%d,%d)", typeName, *precision, *scale)
	}
	return typeName
}

// sameType reports whether two columns have the same type, length,
// precision and scale
func sameType(a, b *schema.Column) bool {
	return strings.EqualFold(a.DbDataType, b.DbDataType) &&
		intPtrEqual(a.Length, b.Length) &&
		intPtrEqual(a.Precision, b.Precision) &&
		intPtrEqual(a.Scale, b.Scale)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
