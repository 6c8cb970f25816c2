package ddl

import (
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

// sqliteRules rebuilds the table for every change SQLite's ALTER TABLE
// cannot express: altering columns and adding or dropping constraints
type sqliteRules struct {
	ansiRules
}

func (sqliteRules) name() string { return "SQLite" }

func (sqliteRules) qualifiesOwner() bool { return false }

// AUTOINCREMENT is only valid on an INTEGER PRIMARY KEY, which already
// aliases the rowid
func (sqliteRules) identity(*schema.Column) string { return "" }

func (sqliteRules) alterColumn(g *generator, t *schema.Table, _, _ *schema.Column) string {
	return rebuildTable(g, t)
}

func (sqliteRules) addConstraint(g *generator, t *schema.Table, _ *schema.Constraint) string {
	return rebuildTable(g, t)
}

func (sqliteRules) addDefault(g *generator, t *schema.Table, _ *schema.Constraint) string {
	return rebuildTable(g, t)
}

func (sqliteRules) dropConstraint(g *generator, t *schema.Table, _ *schema.Constraint) string {
	return rebuildTable(g, t)
}

func (sqliteRules) dropTrigger(g *generator, tr *schema.Trigger) string {
	return g.terminate("DROP TRIGGER " + g.quote(tr.Name))
}

func (sqliteRules) supportsSequences() bool { return false }

func (sqliteRules) createSequence(g *generator, _ *schema.Sequence) string {
	return unsupported(g.r, "sequences")
}

func (sqliteRules) supportsComments() bool { return false }

// rebuildTable recreates t from its current definition, copying the rows
// across and restoring indexes and triggers
func rebuildTable(g *generator, t *schema.Table) string {
	table := g.tableName(t)
	temp := g.quote(t.Name + "__rebuild")

	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c.Name
	}
	list := g.quoteList(columns)

	stmts := []string{
		fmt.Sprintf("-- rebuilding %s", table),
		g.createTable(t, temp, true),
		g.terminate(fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", temp, list, list, table)),
		g.terminate("DROP TABLE " + table),
		g.terminate(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", temp, table)),
	}
	for _, idx := range t.Indexes {
		if idx.IsUniqueKeyIndex(t) {
			continue
		}
		stmts = append(stmts, g.AddIndex(t, idx))
	}
	for _, tr := range t.Triggers {
		stmts = append(stmts, g.AddTrigger(t, tr))
	}
	return strings.Join(stmts, "\n")
}
