// Package ddl writes migration DDL for each supported dialect and exposes it
// to the comparison engine through Facade.
package ddl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/schema"
)

// ErrUnsupportedDialect is returned when no generator is registered for a dialect
var ErrUnsupportedDialect = errors.New("unsupported dialect")

// MigrationGenerator writes the DDL for individual migration steps. Each
// method returns one or more statements separated by newlines, without a
// trailing newline.
//
// Table arguments describe the table as it will be once the step has run,
// so dialects that rebuild tables can use them directly.
type MigrationGenerator interface {
	AddTable(t *schema.Table) string
	DropTable(t *schema.Table) string
	AddColumn(t *schema.Table, c *schema.Column) string
	AlterColumn(t *schema.Table, c, original *schema.Column) string
	DropColumn(t *schema.Table, c *schema.Column) string
	AddConstraint(t *schema.Table, c *schema.Constraint) string
	DropConstraint(t *schema.Table, c *schema.Constraint) string
	AddIndex(t *schema.Table, i *schema.Index) string
	DropIndex(t *schema.Table, i *schema.Index) string
	AddTrigger(t *schema.Table, tr *schema.Trigger) string
	DropTrigger(tr *schema.Trigger) string
	AddView(v *schema.View) string
	DropView(v *schema.View) string
	AddProcedure(p *schema.StoredProcedure) string
	DropProcedure(p *schema.StoredProcedure) string
	AddFunction(f *schema.Function) string
	DropFunction(f *schema.Function) string
	AddPackage(p *schema.Package) string
	DropPackage(p *schema.Package) string
	AddSequence(s *schema.Sequence) string
	DropSequence(s *schema.Sequence) string
	AddUserDataType(u *schema.UserDataType) string
	DropUserDataType(u *schema.UserDataType) string
	AddUserDefinedTableType(u *schema.UserDefinedTable) string
	DropUserDefinedTableType(u *schema.UserDefinedTable) string
	RunStatements() string
}

var generators = map[dialect.Dialect]func() MigrationGenerator{
	dialect.SqlServer:   func() MigrationGenerator { return &generator{r: sqlServerRules{}} },
	dialect.SqlServerCe: func() MigrationGenerator { return &generator{r: sqlServerCeRules{}} },
	dialect.Oracle:      func() MigrationGenerator { return &generator{r: oracleRules{}} },
	dialect.PostgreSql:  func() MigrationGenerator { return &generator{r: postgresRules{}} },
	dialect.MySql:       func() MigrationGenerator { return &generator{r: mysqlRules{}} },
	dialect.SQLite:      func() MigrationGenerator { return &generator{r: sqliteRules{}} },
	dialect.Db2:         func() MigrationGenerator { return &generator{r: db2Rules{}} },
	dialect.Firebird:    func() MigrationGenerator { return &generator{r: firebirdRules{}} },
}

// NewGenerator returns the migration generator for d
func NewGenerator(d dialect.Dialect) (MigrationGenerator, error) {
	factory, ok := generators[d]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, d)
	}
	return factory(), nil
}

// generator implements MigrationGenerator on top of per-dialect rules
type generator struct {
	r rules
}

func (g *generator) quote(name string) string {
	return g.r.quote(name)
}

// qualify returns the quoted owner.name, or just the name when the dialect
// has no owners or owner is empty
func (g *generator) qualify(owner, name string) string {
	if owner == "" || !g.r.qualifiesOwner() {
		return g.quote(name)
	}
	return g.quote(owner) + "." + g.quote(name)
}

func (g *generator) tableName(t *schema.Table) string {
	return g.qualify(t.SchemaOwner, t.Name)
}

func (g *generator) quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = g.quote(n)
	}
	return strings.Join(quoted, ", ")
}

func (g *generator) terminate(stmt string) string {
	return stmt + ";"
}

// columnDefinition renders "name type [identity] [DEFAULT x] [NOT NULL]"
func (g *generator) columnDefinition(c *schema.Column) string {
	parts := []string{g.quote(c.Name), g.r.dataType(c)}
	if c.IsAutoNumber {
		if identity := g.r.identity(c); identity != "" {
			parts = append(parts, identity)
		}
	}
	if c.DefaultValue != "" {
		parts = append(parts, "DEFAULT "+c.DefaultValue)
	}
	if null := g.r.nullClause(c.Nullable); null != "" {
		parts = append(parts, null)
	}
	return strings.Join(parts, " ")
}

func (g *generator) constraintClause(c *schema.Constraint) string {
	var body string
	switch c.ConstraintType {
	case schema.ConstraintTypePrimaryKey:
		body = fmt.Sprintf("PRIMARY KEY (%s)", g.quoteList(c.Columns))
	case schema.ConstraintTypeUniqueKey:
		body = fmt.Sprintf("UNIQUE (%s)", g.quoteList(c.Columns))
	case schema.ConstraintTypeCheck:
		body = fmt.Sprintf("CHECK (%s)", c.Expression)
	case schema.ConstraintTypeForeignKey:
		body = g.foreignKeyClause(c)
	default:
		return ""
	}
	if c.Name == "" {
		return body
	}
	return "CONSTRAINT " + g.quote(c.Name) + " " + body
}

func (g *generator) foreignKeyClause(c *schema.Constraint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FOREIGN KEY (%s) REFERENCES %s", g.quoteList(c.Columns), g.qualify(c.RefersToSchema, c.RefersToTable))
	if len(c.RefersToColumns) > 0 {
		fmt.Fprintf(&sb, " (%s)", g.quoteList(c.RefersToColumns))
	}
	if rule := referentialAction(c.DeleteRule); rule != "" {
		sb.WriteString(" ON DELETE " + rule)
	}
	if rule := referentialAction(c.UpdateRule); rule != "" && g.r.supportsOnUpdate() {
		sb.WriteString(" ON UPDATE " + rule)
	}
	return sb.String()
}

// referentialAction drops the default action so it is not spelled out
func referentialAction(rule string) string {
	rule = strings.ToUpper(strings.TrimSpace(rule))
	if rule == "" || rule == "NO ACTION" || rule == "RESTRICT" {
		return ""
	}
	return rule
}

// createTable renders CREATE TABLE with columns, primary, unique and check
// constraints; foreign keys are included only when withForeignKeys is set
func (g *generator) createTable(t *schema.Table, name string, withForeignKeys bool) string {
	var lines []string
	for _, c := range t.Columns {
		lines = append(lines, "  "+g.columnDefinition(c))
	}
	var constraints []*schema.Constraint
	if t.PrimaryKey != nil {
		constraints = append(constraints, t.PrimaryKey)
	}
	constraints = append(constraints, t.UniqueKeys...)
	constraints = append(constraints, t.CheckConstraints...)
	if withForeignKeys {
		constraints = append(constraints, t.ForeignKeys...)
	}
	for _, c := range constraints {
		if clause := g.constraintClause(c); clause != "" {
			lines = append(lines, "  "+clause)
		}
	}
	return g.terminate(fmt.Sprintf("CREATE TABLE %s (\n%s\n)", name, strings.Join(lines, ",\n")))
}

func (g *generator) AddTable(t *schema.Table) string {
	stmts := []string{g.createTable(t, g.tableName(t), false)}
	stmts = append(stmts, g.tableComments(t)...)
	for _, dc := range t.DefaultConstraints {
		stmts = append(stmts, g.AddConstraint(t, dc))
	}
	for _, idx := range t.Indexes {
		if idx.IsUniqueKeyIndex(t) {
			continue
		}
		stmts = append(stmts, g.AddIndex(t, idx))
	}
	return strings.Join(stmts, "\n")
}

func (g *generator) DropTable(t *schema.Table) string {
	return g.terminate("DROP TABLE " + g.tableName(t))
}

func (g *generator) AddColumn(t *schema.Table, c *schema.Column) string {
	stmt := g.terminate(fmt.Sprintf("ALTER TABLE %s %s %s", g.tableName(t), g.r.addColumnKeyword(), g.columnDefinition(c)))
	if c.Description != "" && g.r.supportsComments() {
		stmt += "\n" + g.comment("COLUMN "+g.tableName(t)+"."+g.quote(c.Name), c.Description)
	}
	return stmt
}

// tableComments writes COMMENT ON statements for the table and its columns
func (g *generator) tableComments(t *schema.Table) []string {
	if !g.r.supportsComments() {
		return nil
	}
	var stmts []string
	if t.Description != "" {
		stmts = append(stmts, g.comment("TABLE "+g.tableName(t), t.Description))
	}
	for _, c := range t.Columns {
		if c.Description != "" {
			stmts = append(stmts, g.comment("COLUMN "+g.tableName(t)+"."+g.quote(c.Name), c.Description))
		}
	}
	return stmts
}

func (g *generator) comment(target, text string) string {
	return g.terminate(fmt.Sprintf("COMMENT ON %s IS %s", target, g.r.quoteLiteral(text)))
}

func (g *generator) AlterColumn(t *schema.Table, c, original *schema.Column) string {
	return g.r.alterColumn(g, t, c, original)
}

func (g *generator) DropColumn(t *schema.Table, c *schema.Column) string {
	return g.terminate(fmt.Sprintf("ALTER TABLE %s %s %s", g.tableName(t), g.r.dropColumnKeyword(), g.quote(c.Name)))
}

func (g *generator) AddConstraint(t *schema.Table, c *schema.Constraint) string {
	return g.r.addConstraint(g, t, c)
}

func (g *generator) DropConstraint(t *schema.Table, c *schema.Constraint) string {
	return g.r.dropConstraint(g, t, c)
}

// indexColumns renders the ordered column list with DESC markers
func (g *generator) indexColumns(i *schema.Index) string {
	descending := make(map[string]bool, len(i.Columns))
	for _, c := range i.Columns {
		descending[c.Name] = c.Descending
	}
	names := i.ColumnNames()
	parts := make([]string, len(names))
	for n, name := range names {
		parts[n] = g.quote(name)
		if descending[name] {
			parts[n] += " DESC"
		}
	}
	return strings.Join(parts, ", ")
}

func (g *generator) AddIndex(t *schema.Table, i *schema.Index) string {
	prefix, suffix := g.r.indexType(i.IndexType)
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if i.IsUnique {
		sb.WriteString("UNIQUE ")
	}
	if prefix != "" {
		sb.WriteString(prefix + " ")
	}
	fmt.Fprintf(&sb, "INDEX %s ON %s", g.quote(i.Name), g.tableName(t))
	if suffix != "" && g.r.indexTypeBeforeColumns() {
		sb.WriteString(" " + suffix)
	}
	fmt.Fprintf(&sb, " (%s)", g.indexColumns(i))
	if suffix != "" && !g.r.indexTypeBeforeColumns() {
		sb.WriteString(" " + suffix)
	}
	return g.terminate(sb.String())
}

func (g *generator) DropIndex(t *schema.Table, i *schema.Index) string {
	return g.r.dropIndex(g, t, i)
}

func (g *generator) AddTrigger(t *schema.Table, tr *schema.Trigger) string {
	if hasCreatePrefix(tr.TriggerBody) {
		return strings.TrimSpace(tr.TriggerBody)
	}
	header := fmt.Sprintf("CREATE TRIGGER %s %s %s ON %s", g.quote(tr.Name), tr.TriggerType, tr.TriggerEvent, g.tableName(t))
	return strings.Join(strings.Fields(header), " ") + "\n" + strings.TrimSpace(tr.TriggerBody)
}

func (g *generator) DropTrigger(tr *schema.Trigger) string {
	return g.r.dropTrigger(g, tr)
}

func (g *generator) AddView(v *schema.View) string {
	if hasCreatePrefix(v.Sql) {
		return strings.TrimSpace(v.Sql)
	}
	return g.terminate(fmt.Sprintf("CREATE VIEW %s AS\n%s", g.qualify(v.SchemaOwner, v.Name), strings.TrimSuffix(strings.TrimSpace(v.Sql), ";")))
}

func (g *generator) DropView(v *schema.View) string {
	return g.terminate("DROP VIEW " + g.qualify(v.SchemaOwner, v.Name))
}

func (g *generator) AddProcedure(p *schema.StoredProcedure) string {
	return g.routineSource(p.Sql)
}

func (g *generator) DropProcedure(p *schema.StoredProcedure) string {
	return g.terminate("DROP PROCEDURE " + g.qualify(p.SchemaOwner, p.Name))
}

func (g *generator) AddFunction(f *schema.Function) string {
	return g.routineSource(f.Sql)
}

func (g *generator) DropFunction(f *schema.Function) string {
	return g.terminate("DROP FUNCTION " + g.qualify(f.SchemaOwner, f.Name))
}

// AddPackage writes the specification and body as CREATE OR REPLACE, so it
// also serves to replace a changed package in place
func (g *generator) AddPackage(p *schema.Package) string {
	parts := []string{replaceSource(p.Definition)}
	if strings.TrimSpace(p.Body) != "" {
		if sep := g.r.batchSeparator(); sep != "" {
			parts = append(parts, sep)
		}
		parts = append(parts, replaceSource(p.Body))
	}
	return strings.Join(parts, "\n")
}

func (g *generator) DropPackage(p *schema.Package) string {
	return g.terminate("DROP PACKAGE " + g.qualify(p.SchemaOwner, p.Name))
}

func (g *generator) AddSequence(s *schema.Sequence) string {
	return g.r.createSequence(g, s)
}

func (g *generator) DropSequence(s *schema.Sequence) string {
	if !g.r.supportsSequences() {
		return unsupported(g.r, "sequences")
	}
	return g.terminate("DROP SEQUENCE " + g.qualify(s.SchemaOwner, s.Name))
}

func (g *generator) AddUserDataType(u *schema.UserDataType) string {
	return g.r.createUserDataType(g, u)
}

func (g *generator) DropUserDataType(u *schema.UserDataType) string {
	return g.r.dropUserDataType(g, u)
}

func (g *generator) AddUserDefinedTableType(u *schema.UserDefinedTable) string {
	return g.r.createTableType(g, u)
}

func (g *generator) DropUserDefinedTableType(u *schema.UserDefinedTable) string {
	return g.r.dropTableType(g, u)
}

func (g *generator) RunStatements() string {
	return g.r.batchSeparator()
}

func (g *generator) routineSource(sql string) string {
	sql = strings.TrimSpace(sql)
	if hasCreatePrefix(sql) {
		return sql
	}
	return g.r.routinePrefix() + " " + sql
}

func hasCreatePrefix(sql string) bool {
	fields := strings.Fields(sql)
	return len(fields) > 0 && strings.EqualFold(fields[0], "CREATE")
}

// replaceSource makes package source start with CREATE OR REPLACE
func replaceSource(sql string) string {
	sql = strings.TrimSpace(sql)
	fields := strings.Fields(sql)
	if len(fields) >= 3 && strings.EqualFold(fields[0], "CREATE") && strings.EqualFold(fields[1], "OR") && strings.EqualFold(fields[2], "REPLACE") {
		return sql
	}
	if hasCreatePrefix(sql) {
		return "CREATE OR REPLACE " + strings.TrimSpace(sql[len("CREATE"):])
	}
	return "CREATE OR REPLACE " + sql
}

func unsupported(r rules, what string) string {
	return fmt.Sprintf("-- %s does not support %s", r.name(), what)
}
