package ddl

import (
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

type sqlServerRules struct {
	ansiRules
}

func (sqlServerRules) name() string { return "SqlServer" }

func (sqlServerRules) quote(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (sqlServerRules) quoteLiteral(s string) string {
	return "N'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (sqlServerRules) dataType(c *schema.Column) string {
	return formatType(c.DbDataType, c.Length, c.Precision, c.Scale, "MAX")
}

func (sqlServerRules) identity(*schema.Column) string { return "IDENTITY(1,1)" }

func (sqlServerRules) nullClause(nullable bool) string {
	if nullable {
		return "NULL"
	}
	return "NOT NULL"
}

func (sqlServerRules) addColumnKeyword() string { return "ADD" }

func (sqlServerRules) alterColumn(g *generator, t *schema.Table, c, _ *schema.Column) string {
	return g.terminate(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s %s",
		g.tableName(t), g.quote(c.Name), g.r.dataType(c), g.r.nullClause(c.Nullable)))
}

func (sqlServerRules) addDefault(g *generator, t *schema.Table, c *schema.Constraint) string {
	if len(c.Columns) == 0 {
		return fmt.Sprintf("-- default constraint %s has no column", c.Name)
	}
	return g.terminate(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT %s FOR %s",
		g.tableName(t), g.quote(c.Name), c.Expression, g.quote(c.Columns[0])))
}

func (sqlServerRules) dropConstraint(g *generator, t *schema.Table, c *schema.Constraint) string {
	return g.terminate(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", g.tableName(t), g.quote(c.Name)))
}

func (sqlServerRules) indexType(indexType string) (string, string) {
	switch upper := strings.ToUpper(strings.TrimSpace(indexType)); upper {
	case "CLUSTERED", "NONCLUSTERED":
		return upper, ""
	}
	return "", ""
}

func (sqlServerRules) dropIndex(g *generator, t *schema.Table, i *schema.Index) string {
	return g.terminate(fmt.Sprintf("DROP INDEX %s ON %s", g.quote(i.Name), g.tableName(t)))
}

func (sqlServerRules) createUserDataType(g *generator, u *schema.UserDataType) string {
	stmt := fmt.Sprintf("CREATE TYPE %s FROM %s", g.qualify(u.SchemaOwner, u.Name),
		formatType(u.DbTypeName, u.MaxLength, u.Precision, u.Scale, "MAX"))
	if !u.Nullable {
		stmt += " NOT NULL"
	}
	return g.terminate(stmt)
}

func (sqlServerRules) dropUserDataType(g *generator, u *schema.UserDataType) string {
	return g.terminate("DROP TYPE " + g.qualify(u.SchemaOwner, u.Name))
}

func (sqlServerRules) createTableType(g *generator, u *schema.UserDefinedTable) string {
	lines := make([]string, len(u.Columns))
	for i, c := range u.Columns {
		lines[i] = "  " + g.columnDefinition(c)
	}
	return g.terminate(fmt.Sprintf("CREATE TYPE %s AS TABLE (\n%s\n)", g.qualify(u.SchemaOwner, u.Name), strings.Join(lines, ",\n")))
}

func (sqlServerRules) dropTableType(g *generator, u *schema.UserDefinedTable) string {
	return g.terminate("DROP TYPE " + g.qualify(u.SchemaOwner, u.Name))
}

// descriptions live in extended properties, not COMMENT ON
func (sqlServerRules) supportsComments() bool { return false }

func (sqlServerRules) batchSeparator() string { return "GO" }

// sqlServerCeRules covers SQL Server Compact, which has no owners,
// sequences or user types
type sqlServerCeRules struct {
	sqlServerRules
}

func (sqlServerCeRules) name() string { return "SqlServerCe" }

func (sqlServerCeRules) qualifiesOwner() bool { return false }

func (sqlServerCeRules) supportsSequences() bool { return false }

func (sqlServerCeRules) createSequence(g *generator, _ *schema.Sequence) string {
	return unsupported(g.r, "sequences")
}

func (sqlServerCeRules) createUserDataType(g *generator, _ *schema.UserDataType) string {
	return unsupported(g.r, "user data types")
}

func (sqlServerCeRules) dropUserDataType(g *generator, _ *schema.UserDataType) string {
	return unsupported(g.r, "user data types")
}

func (sqlServerCeRules) createTableType(g *generator, _ *schema.UserDefinedTable) string {
	return unsupported(g.r, "user table types")
}

func (sqlServerCeRules) dropTableType(g *generator, _ *schema.UserDefinedTable) string {
	return unsupported(g.r, "user table types")
}
