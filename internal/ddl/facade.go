package ddl

import (
	"strings"

	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/internal/sqltext"
	"github.com/schemadelta/schemadelta/schema"
)

// Strategy controls how stored SQL text is compared for a dialect. Comments
// and blank lines are always stripped first.
type Strategy struct {
	// StripViewPreamble removes "CREATE VIEW ... AS" before comparing views,
	// since owner qualification in the header varies
	StripViewPreamble bool
	// Equivalent, when set, is consulted if the sanitized texts differ
	Equivalent func(a, b string) bool
}

var comparisonPolicy = map[dialect.Dialect]Strategy{
	dialect.SqlServer:   {StripViewPreamble: true},
	dialect.SqlServerCe: {StripViewPreamble: true},
	dialect.PostgreSql:  {Equivalent: sqltext.EquivalentPostgres},
}

// StrategyFor returns the comparison strategy of d. Dialects without an
// entry only strip comments and blank lines.
func StrategyFor(d dialect.Dialect) Strategy {
	return comparisonPolicy[d]
}

// Facade forwards migration steps to the generator of one dialect and
// compares stored SQL using that dialect's strategy
type Facade struct {
	dialect   dialect.Dialect
	generator MigrationGenerator
	strategy  Strategy
}

// NewFacade returns a facade backed by the registered generator for d
func NewFacade(d dialect.Dialect) (*Facade, error) {
	gen, err := NewGenerator(d)
	if err != nil {
		return nil, err
	}
	return NewFacadeWithGenerator(d, gen), nil
}

// NewFacadeWithGenerator returns a facade backed by gen
func NewFacadeWithGenerator(d dialect.Dialect, gen MigrationGenerator) *Facade {
	return &Facade{
		dialect:   d,
		generator: gen,
		strategy:  StrategyFor(d),
	}
}

// Dialect returns the dialect the facade writes for
func (f *Facade) Dialect() dialect.Dialect {
	return f.dialect
}

// CompareView reports whether two view definitions are equivalent
func (f *Facade) CompareView(sql1, sql2 string) bool {
	a, b := sqltext.Sanitize(sql1), sqltext.Sanitize(sql2)
	if f.strategy.StripViewPreamble {
		a = strings.TrimSpace(sqltext.StripViewPreamble(a))
		b = strings.TrimSpace(sqltext.StripViewPreamble(b))
	}
	return f.equal(a, b)
}

// CompareProcedure reports whether two routine definitions are equivalent
func (f *Facade) CompareProcedure(sql1, sql2 string) bool {
	return f.equal(sqltext.Sanitize(sql1), sqltext.Sanitize(sql2))
}

func (f *Facade) equal(a, b string) bool {
	if a == b {
		return true
	}
	if f.strategy.Equivalent != nil {
		return f.strategy.Equivalent(a, b)
	}
	return false
}

func (f *Facade) AddTable(t *schema.Table) string  { return f.generator.AddTable(t) }
func (f *Facade) DropTable(t *schema.Table) string { return f.generator.DropTable(t) }

func (f *Facade) AddColumn(t *schema.Table, c *schema.Column) string {
	return f.generator.AddColumn(t, c)
}

func (f *Facade) AlterColumn(t *schema.Table, c, original *schema.Column) string {
	return f.generator.AlterColumn(t, c, original)
}

func (f *Facade) DropColumn(t *schema.Table, c *schema.Column) string {
	return f.generator.DropColumn(t, c)
}

func (f *Facade) AddConstraint(t *schema.Table, c *schema.Constraint) string {
	return f.generator.AddConstraint(t, c)
}

func (f *Facade) DropConstraint(t *schema.Table, c *schema.Constraint) string {
	return f.generator.DropConstraint(t, c)
}

func (f *Facade) AddIndex(t *schema.Table, i *schema.Index) string {
	return f.generator.AddIndex(t, i)
}

func (f *Facade) DropIndex(t *schema.Table, i *schema.Index) string {
	return f.generator.DropIndex(t, i)
}

func (f *Facade) AddTrigger(t *schema.Table, tr *schema.Trigger) string {
	return f.generator.AddTrigger(t, tr)
}

func (f *Facade) DropTrigger(tr *schema.Trigger) string { return f.generator.DropTrigger(tr) }

func (f *Facade) AddView(v *schema.View) string  { return f.generator.AddView(v) }
func (f *Facade) DropView(v *schema.View) string { return f.generator.DropView(v) }

func (f *Facade) AddProcedure(p *schema.StoredProcedure) string  { return f.generator.AddProcedure(p) }
func (f *Facade) DropProcedure(p *schema.StoredProcedure) string { return f.generator.DropProcedure(p) }

func (f *Facade) AddFunction(fn *schema.Function) string  { return f.generator.AddFunction(fn) }
func (f *Facade) DropFunction(fn *schema.Function) string { return f.generator.DropFunction(fn) }

func (f *Facade) AddPackage(p *schema.Package) string  { return f.generator.AddPackage(p) }
func (f *Facade) DropPackage(p *schema.Package) string { return f.generator.DropPackage(p) }

func (f *Facade) AddSequence(s *schema.Sequence) string  { return f.generator.AddSequence(s) }
func (f *Facade) DropSequence(s *schema.Sequence) string { return f.generator.DropSequence(s) }

func (f *Facade) AddUserDataType(u *schema.UserDataType) string {
	return f.generator.AddUserDataType(u)
}

func (f *Facade) DropUserDataType(u *schema.UserDataType) string {
	return f.generator.DropUserDataType(u)
}

func (f *Facade) AddUserDefinedTableType(u *schema.UserDefinedTable) string {
	return f.generator.AddUserDefinedTableType(u)
}

func (f *Facade) DropUserDefinedTableType(u *schema.UserDefinedTable) string {
	return f.generator.DropUserDefinedTableType(u)
}

// RunStatements returns the batch separator, or "" if the dialect has none
func (f *Facade) RunStatements() string { return f.generator.RunStatements() }
