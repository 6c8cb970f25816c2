package ddl

import (
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

type mysqlRules struct {
	ansiRules
}

func (mysqlRules) name() string { return "MySql" }

func (mysqlRules) quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (mysqlRules) identity(*schema.Column) string { return "AUTO_INCREMENT" }

func (mysqlRules) alterColumn(g *generator, t *schema.Table, c, _ *schema.Column) string {
	return g.terminate(fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s", g.tableName(t), g.columnDefinition(c)))
}

func (r mysqlRules) dropConstraint(g *generator, t *schema.Table, c *schema.Constraint) string {
	table := g.tableName(t)
	switch c.ConstraintType {
	case schema.ConstraintTypePrimaryKey:
		return g.terminate(fmt.Sprintf("ALTER TABLE %s DROP PRIMARY KEY", table))
	case schema.ConstraintTypeForeignKey:
		return g.terminate(fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s", table, g.quote(c.Name)))
	case schema.ConstraintTypeUniqueKey:
		return g.terminate(fmt.Sprintf("ALTER TABLE %s DROP INDEX %s", table, g.quote(c.Name)))
	case schema.ConstraintTypeCheck:
		return g.terminate(fmt.Sprintf("ALTER TABLE %s DROP CHECK %s", table, g.quote(c.Name)))
	}
	return r.ansiRules.dropConstraint(g, t, c)
}

func (mysqlRules) indexType(indexType string) (string, string) {
	switch upper := strings.ToUpper(strings.TrimSpace(indexType)); upper {
	case "FULLTEXT", "SPATIAL":
		return upper, ""
	case "BTREE", "HASH":
		return "", "USING " + upper
	}
	return "", ""
}

func (mysqlRules) indexTypeBeforeColumns() bool { return false }

func (mysqlRules) dropIndex(g *generator, t *schema.Table, i *schema.Index) string {
	return g.terminate(fmt.Sprintf("DROP INDEX %s ON %s", g.quote(i.Name), g.tableName(t)))
}

func (mysqlRules) supportsSequences() bool { return false }

func (mysqlRules) createSequence(g *generator, _ *schema.Sequence) string {
	return unsupported(g.r, "sequences")
}

// comments are column options in MySQL, not separate statements
func (mysqlRules) supportsComments() bool { return false }
