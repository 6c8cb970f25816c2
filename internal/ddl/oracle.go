package ddl

import (
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

type oracleRules struct {
	ansiRules
}

func (oracleRules) name() string { return "Oracle" }

func (oracleRules) addColumnKeyword() string { return "ADD" }

// alterColumn uses MODIFY; the NULL clause is only written when nullability
// changes because Oracle rejects a redundant NOT NULL
func (oracleRules) alterColumn(g *generator, t *schema.Table, c, original *schema.Column) string {
	stmt := fmt.Sprintf("ALTER TABLE %s MODIFY %s %s", g.tableName(t), g.quote(c.Name), g.r.dataType(c))
	if original == nil || original.Nullable != c.Nullable {
		if c.Nullable {
			stmt += " NULL"
		} else {
			stmt += " NOT NULL"
		}
	}
	return g.terminate(stmt)
}

func (oracleRules) addDefault(g *generator, t *schema.Table, c *schema.Constraint) string {
	if len(c.Columns) == 0 {
		return fmt.Sprintf("-- default constraint %s has no column", c.Name)
	}
	return g.terminate(fmt.Sprintf("ALTER TABLE %s MODIFY %s DEFAULT %s", g.tableName(t), g.quote(c.Columns[0]), c.Expression))
}

func (r oracleRules) dropConstraint(g *generator, t *schema.Table, c *schema.Constraint) string {
	if c.ConstraintType == schema.ConstraintTypeDefault && len(c.Columns) > 0 {
		return g.terminate(fmt.Sprintf("ALTER TABLE %s MODIFY %s DEFAULT NULL", g.tableName(t), g.quote(c.Columns[0])))
	}
	return r.ansiRules.dropConstraint(g, t, c)
}

func (oracleRules) supportsOnUpdate() bool { return false }

func (oracleRules) indexType(indexType string) (string, string) {
	if strings.EqualFold(strings.TrimSpace(indexType), "BITMAP") {
		return "BITMAP", ""
	}
	return "", ""
}

func (oracleRules) routinePrefix() string { return "CREATE OR REPLACE" }

func (oracleRules) batchSeparator() string { return "/" }
