package compare

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/schema"
)

type resultKey struct {
	Type   schema.ObjectType
	Result ResultType
	Name   string
	Table  string
}

func keysOf(results []*Result) []resultKey {
	keys := make([]resultKey, len(results))
	for i, r := range results {
		keys[i] = resultKey{r.SchemaObjectType, r.ResultType, r.Name, r.TableName}
	}
	return keys
}

func runCompare(t *testing.T, base, compare *schema.Schema, d dialect.Dialect, opts ...Option) (string, []*Result) {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	c, err := New(base, compare, d, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	script := c.Execute()
	return script, c.Results()
}

func productsTable(columns ...*schema.Column) *schema.Table {
	return &schema.Table{
		Name:        "Products",
		SchemaOwner: "dbo",
		Columns:     columns,
		PrimaryKey: &schema.Constraint{
			Name:           "PK_Products",
			ConstraintType: schema.ConstraintTypePrimaryKey,
			Columns:        []string{"Id"},
		},
	}
}

func idColumn() *schema.Column {
	return &schema.Column{Name: "Id", DbDataType: "int", IsAutoNumber: true}
}

func withTables(tables ...*schema.Table) *schema.Schema {
	return &schema.Schema{Owner: "dbo", Tables: tables}
}

func TestProductsScenario(t *testing.T) {
	base := withTables(productsTable(
		idColumn(),
		&schema.Column{Name: "Name", DbDataType: "varchar", Length: schema.Int(20)},
	))
	compare := withTables(productsTable(
		idColumn(),
		&schema.Column{Name: "Name", DbDataType: "varchar", Length: schema.Int(30), Nullable: true},
		&schema.Column{Name: "Cost", DbDataType: "decimal", Precision: schema.Int(9), Scale: schema.Int(2), Nullable: true},
	))

	script, results := runCompare(t, base, compare, dialect.SqlServer)

	wantKeys := []resultKey{
		{schema.ObjectTypeColumn, ResultTypeAdd, "Cost", "Products"},
		{schema.ObjectTypeColumn, ResultTypeChange, "Name", "Products"},
	}
	if diff := cmp.Diff(wantKeys, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	want := "-- ADDED COLUMN Products.Cost\n" +
		"ALTER TABLE [dbo].[Products] ADD [Cost] decimal(9,2) NULL;\n" +
		"-- ALTERED COLUMN Products.Name\n" +
		"ALTER TABLE [dbo].[Products] ALTER COLUMN [Name] varchar(30) NULL;\n"
	if diff := cmp.Diff(want, script); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTableScript(t *testing.T) {
	compare := withTables(productsTable(
		idColumn(),
		&schema.Column{Name: "Name", DbDataType: "nvarchar", Length: schema.Int(100)},
	))

	script, results := runCompare(t, withTables(), compare, dialect.SqlServer)

	want := "-- NEW TABLE Products\n" +
		"CREATE TABLE [dbo].[Products] (\n" +
		"  [Id] int IDENTITY(1,1) NOT NULL,\n" +
		"  [Name] nvarchar(100) NOT NULL,\n" +
		"  CONSTRAINT [PK_Products] PRIMARY KEY ([Id])\n" +
		");\n"
	if diff := cmp.Diff(want, script); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
	if len(results) != 1 || results[0].TableName != "" || results[0].SchemaOwner != "dbo" {
		t.Errorf("unexpected results %+v", results)
	}
}

func sampleSchema() *schema.Schema {
	s := withTables(
		productsTable(
			idColumn(),
			&schema.Column{Name: "Name", DbDataType: "nvarchar", Length: schema.Int(100)},
			&schema.Column{Name: "CategoryId", DbDataType: "int", Nullable: true},
		),
		&schema.Table{
			Name:        "Categories",
			SchemaOwner: "dbo",
			Columns:     []*schema.Column{idColumn()},
			PrimaryKey:  &schema.Constraint{Name: "PK_Categories", ConstraintType: schema.ConstraintTypePrimaryKey, Columns: []string{"Id"}},
		},
	)
	s.Tables[0].ForeignKeys = []*schema.Constraint{{
		Name:           "FK_Products_Categories",
		ConstraintType: schema.ConstraintTypeForeignKey,
		Columns:        []string{"CategoryId"},
		RefersToTable:  "Categories",
	}}
	s.Tables[0].Indexes = []*schema.Index{{
		Name:    "IX_Products_Name",
		Columns: []*schema.IndexColumn{{Name: "Name", Ordinal: 1}},
	}}
	s.Tables[0].Triggers = []*schema.Trigger{{
		Name:         "TR_Products_Audit",
		TableName:    "Products",
		SchemaOwner:  "dbo",
		TriggerBody:  "CREATE TRIGGER dbo.TR_Products_Audit ON dbo.Products AFTER INSERT AS SELECT 1",
		TriggerType:  "AFTER",
		TriggerEvent: "INSERT",
	}}
	s.Views = []*schema.View{{Name: "ProductNames", SchemaOwner: "dbo", Sql: "CREATE VIEW dbo.ProductNames AS SELECT Name FROM dbo.Products"}}
	s.StoredProcedures = []*schema.StoredProcedure{{Name: "GetProducts", SchemaOwner: "dbo", Sql: "CREATE PROCEDURE dbo.GetProducts AS SELECT * FROM dbo.Products"}}
	s.Functions = []*schema.Function{{Name: "ProductCount", SchemaOwner: "dbo", Sql: "CREATE FUNCTION dbo.ProductCount() RETURNS int AS BEGIN RETURN 1 END"}}
	s.Sequences = []*schema.Sequence{{Name: "OrderNumbers", SchemaOwner: "dbo", MinimumValue: 1, IncrementBy: 1}}
	s.UserDataTypes = []*schema.UserDataType{{Name: "Email", SchemaOwner: "dbo", DbTypeName: "nvarchar", MaxLength: schema.Int(256)}}
	s.UserDefinedTableTypes = []*schema.UserDefinedTable{{
		Name:        "IdList",
		SchemaOwner: "dbo",
		Columns:     []*schema.Column{{Name: "Id", DbDataType: "int"}},
	}}
	return s
}

func TestIdenticalSchemasProduceNoResults(t *testing.T) {
	for _, d := range dialect.All() {
		t.Run(d.String(), func(t *testing.T) {
			script, results := runCompare(t, sampleSchema(), sampleSchema(), d)
			if script != "" || len(results) != 0 {
				t.Errorf("expected no differences, got %d results:\n%s", len(results), script)
			}
		})
	}
}

func TestExecuteIsRepeatable(t *testing.T) {
	base := withTables()
	c, err := New(base, sampleSchema(), dialect.SqlServer, WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	first := c.Execute()
	firstResults := c.Results()
	second := c.Execute()
	if first != second {
		t.Errorf("second Execute() differs:\n%s\n---\n%s", first, second)
	}
	if len(firstResults) != len(c.Results()) {
		t.Errorf("result count changed from %d to %d", len(firstResults), len(c.Results()))
	}
	if strings.Count(second, "\nGO\n") > 1 {
		t.Errorf("separator repeated:\n%s", second)
	}
}

func TestAddDeleteSymmetry(t *testing.T) {
	a := withTables(productsTable(idColumn(), &schema.Column{Name: "Name", DbDataType: "nvarchar", Length: schema.Int(100)}))
	a.Views = []*schema.View{{Name: "Cheap", SchemaOwner: "dbo", Sql: "CREATE VIEW dbo.Cheap AS SELECT 1"}}
	a.StoredProcedures = []*schema.StoredProcedure{{Name: "Purge", SchemaOwner: "dbo", Sql: "CREATE PROCEDURE dbo.Purge AS SELECT 1"}}

	b := withTables(
		productsTable(idColumn(), &schema.Column{Name: "Sku", DbDataType: "nvarchar", Length: schema.Int(20)}),
		&schema.Table{Name: "Suppliers", SchemaOwner: "dbo", Columns: []*schema.Column{idColumn()}},
	)
	b.Functions = []*schema.Function{{Name: "Total", SchemaOwner: "dbo", Sql: "CREATE FUNCTION dbo.Total() RETURNS int AS BEGIN RETURN 0 END"}}
	b.Sequences = []*schema.Sequence{{Name: "Seq", SchemaOwner: "dbo", MinimumValue: 1, IncrementBy: 1}}

	_, forward := runCompare(t, a, b, dialect.SqlServer)
	_, reverse := runCompare(t, b, a, dialect.SqlServer)

	selectKeys := func(results []*Result, rt ResultType) map[resultKey]bool {
		set := map[resultKey]bool{}
		for _, r := range results {
			if r.ResultType == rt {
				set[resultKey{r.SchemaObjectType, 0, r.Name, r.TableName}] = true
			}
		}
		return set
	}

	if diff := cmp.Diff(selectKeys(forward, ResultTypeAdd), selectKeys(reverse, ResultTypeDelete)); diff != "" {
		t.Errorf("adds do not mirror deletes (-forward +reverse):\n%s", diff)
	}
	if diff := cmp.Diff(selectKeys(forward, ResultTypeDelete), selectKeys(reverse, ResultTypeAdd)); diff != "" {
		t.Errorf("deletes do not mirror adds (-forward +reverse):\n%s", diff)
	}
	if len(selectKeys(forward, ResultTypeAdd)) == 0 || len(selectKeys(forward, ResultTypeDelete)) == 0 {
		t.Fatal("scenario should produce both adds and deletes")
	}
}

func TestColumnChangeMatrix(t *testing.T) {
	baseColumn := func() *schema.Column {
		return &schema.Column{
			Name:       "Price",
			DbDataType: "decimal",
			Length:     schema.Int(9),
			Precision:  schema.Int(10),
			Scale:      schema.Int(2),
		}
	}

	tests := []struct {
		name   string
		modify func(c *schema.Column)
		want   int
	}{
		{"data type", func(c *schema.Column) { c.DbDataType = "money" }, 1},
		{"data type case only", func(c *schema.Column) { c.DbDataType = "DECIMAL" }, 0},
		{"length", func(c *schema.Column) { c.Length = schema.Int(17) }, 1},
		{"precision", func(c *schema.Column) { c.Precision = schema.Int(12) }, 1},
		{"precision removed", func(c *schema.Column) { c.Precision = nil }, 1},
		{"scale", func(c *schema.Column) { c.Scale = schema.Int(4) }, 1},
		{"nullable", func(c *schema.Column) { c.Nullable = true }, 1},
		{"identity only", func(c *schema.Column) { c.IsAutoNumber = true }, 0},
		{"description only", func(c *schema.Column) { c.Description = "unit price" }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := baseColumn()
			tt.modify(changed)
			base := withTables(productsTable(idColumn(), baseColumn()))
			compare := withTables(productsTable(idColumn(), changed))

			_, results := runCompare(t, base, compare, dialect.SqlServer)
			if len(results) != tt.want {
				t.Fatalf("got %d results, want %d: %v", len(results), tt.want, keysOf(results))
			}
			if tt.want == 1 {
				want := resultKey{schema.ObjectTypeColumn, ResultTypeChange, "Price", "Products"}
				if diff := cmp.Diff(want, keysOf(results)[0]); diff != "" {
					t.Errorf("result mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestColumnOrderAddsChangesDeletes(t *testing.T) {
	base := withTables(productsTable(
		idColumn(),
		&schema.Column{Name: "Legacy", DbDataType: "int"},
		&schema.Column{Name: "Name", DbDataType: "nvarchar", Length: schema.Int(50)},
	))
	compare := withTables(productsTable(
		idColumn(),
		&schema.Column{Name: "Name", DbDataType: "nvarchar", Length: schema.Int(80)},
		&schema.Column{Name: "Sku", DbDataType: "nvarchar", Length: schema.Int(20), Nullable: true},
	))

	script, results := runCompare(t, base, compare, dialect.SqlServer)

	want := []resultKey{
		{schema.ObjectTypeColumn, ResultTypeAdd, "Sku", "Products"},
		{schema.ObjectTypeColumn, ResultTypeChange, "Name", "Products"},
		{schema.ObjectTypeColumn, ResultTypeDelete, "Legacy", "Products"},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(script, "-- DROPPED COLUMN Products.Legacy\nALTER TABLE [dbo].[Products] DROP COLUMN [Legacy];") {
		t.Errorf("missing drop column script:\n%s", script)
	}
}

func TestPrimaryKeyCases(t *testing.T) {
	pk := func(name string, columns ...string) *schema.Constraint {
		return &schema.Constraint{Name: name, ConstraintType: schema.ConstraintTypePrimaryKey, Columns: columns}
	}
	table := func(key *schema.Constraint) *schema.Table {
		return &schema.Table{
			Name:        "OrderLines",
			SchemaOwner: "dbo",
			Columns: []*schema.Column{
				{Name: "OrderId", DbDataType: "int"},
				{Name: "LineNo", DbDataType: "int"},
			},
			PrimaryKey: key,
		}
	}

	tests := []struct {
		name     string
		base     *schema.Constraint
		compare  *schema.Constraint
		want     []resultKey
		contains []string
	}{
		{
			name: "neither has a key",
		},
		{
			name:    "key added",
			compare: pk("PK_OrderLines", "OrderId", "LineNo"),
			want:    []resultKey{{schema.ObjectTypeConstraint, ResultTypeAdd, "PK_OrderLines", "OrderLines"}},
			contains: []string{
				"-- ADDED CONSTRAINT OrderLines.PK_OrderLines\nALTER TABLE [dbo].[OrderLines] ADD CONSTRAINT [PK_OrderLines] PRIMARY KEY ([OrderId], [LineNo]);",
			},
		},
		{
			name: "key removed",
			base: pk("PK_OrderLines", "OrderId", "LineNo"),
			want: []resultKey{{schema.ObjectTypeConstraint, ResultTypeChange, "PK_OrderLines", "OrderLines"}},
			contains: []string{
				"-- WARNING: primary key PK_OrderLines removed from OrderLines",
				"ALTER TABLE [dbo].[OrderLines] DROP CONSTRAINT [PK_OrderLines];",
			},
		},
		{
			name:    "column order differs",
			base:    pk("PK_OrderLines", "OrderId", "LineNo"),
			compare: pk("PK_OrderLines", "LineNo", "OrderId"),
			want:    []resultKey{{schema.ObjectTypeConstraint, ResultTypeChange, "PK_OrderLines", "OrderLines"}},
			contains: []string{
				"DROP CONSTRAINT [PK_OrderLines];\nALTER TABLE [dbo].[OrderLines] ADD CONSTRAINT [PK_OrderLines] PRIMARY KEY ([LineNo], [OrderId]);",
			},
		},
		{
			name:    "renamed with same columns",
			base:    pk("PK_Old", "OrderId", "LineNo"),
			compare: pk("PK_New", "OrderId", "LineNo"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, results := runCompare(t, withTables(table(tt.base)), withTables(table(tt.compare)), dialect.SqlServer)
			if diff := cmp.Diff(tt.want, keysOf(results), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("results mismatch (-want +got):\n%s", diff)
			}
			for _, want := range tt.contains {
				if !strings.Contains(script, want) {
					t.Errorf("script missing %q:\n%s", want, script)
				}
			}
		})
	}
}

func TestMissingPrimaryKeyIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	table := &schema.Table{Name: "Audit", SchemaOwner: "dbo", Columns: []*schema.Column{{Name: "Message", DbDataType: "nvarchar"}}}

	c, err := New(withTables(table), withTables(table), dialect.SqlServer, WithLogger(log))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if script := c.Execute(); script != "" {
		t.Errorf("expected empty script, got:\n%s", script)
	}
	if !strings.Contains(buf.String(), "Table has no primary key") || !strings.Contains(buf.String(), "table=Audit") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}
}

func TestNamedConstraints(t *testing.T) {
	table := func(checks []*schema.Constraint, fks []*schema.Constraint) *schema.Table {
		t := productsTable(idColumn(), &schema.Column{Name: "Price", DbDataType: "money"}, &schema.Column{Name: "CategoryId", DbDataType: "int"})
		t.CheckConstraints = checks
		t.ForeignKeys = fks
		return t
	}
	check := func(name, expr string) *schema.Constraint {
		return &schema.Constraint{Name: name, ConstraintType: schema.ConstraintTypeCheck, Columns: []string{"Price"}, Expression: expr}
	}
	fk := func(name, target string) *schema.Constraint {
		return &schema.Constraint{Name: name, ConstraintType: schema.ConstraintTypeForeignKey, Columns: []string{"CategoryId"}, RefersToTable: target}
	}

	base := withTables(table(
		[]*schema.Constraint{check("CK_Price", "[Price] > 0"), check("CK_Old", "[Price] < 1000")},
		[]*schema.Constraint{fk("FK_Category", "Categories")},
	))
	compare := withTables(table(
		[]*schema.Constraint{check("CK_Price", "[Price] >= 0"), check("CK_New", "[Price] < 5000")},
		[]*schema.Constraint{fk("FK_Category", "ProductCategories")},
	))

	script, results := runCompare(t, base, compare, dialect.SqlServer)

	want := []resultKey{
		{schema.ObjectTypeConstraint, ResultTypeDelete, "CK_Old", "Products"},
		{schema.ObjectTypeConstraint, ResultTypeChange, "CK_Price", "Products"},
		{schema.ObjectTypeConstraint, ResultTypeAdd, "CK_New", "Products"},
		{schema.ObjectTypeConstraint, ResultTypeChange, "FK_Category", "Products"},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	wantScript := "-- ALTERED CONSTRAINT Products.CK_Price\n" +
		"ALTER TABLE [dbo].[Products] DROP CONSTRAINT [CK_Price];\n" +
		"ALTER TABLE [dbo].[Products] ADD CONSTRAINT [CK_Price] CHECK ([Price] >= 0);\n"
	if !strings.Contains(script, wantScript) {
		t.Errorf("script missing check change:\n%s", script)
	}
}

func TestForeignKeyTargetIsCaseSensitive(t *testing.T) {
	table := func(target string) *schema.Table {
		t := productsTable(idColumn(), &schema.Column{Name: "CategoryId", DbDataType: "int"})
		t.ForeignKeys = []*schema.Constraint{{Name: "FK_Category", ConstraintType: schema.ConstraintTypeForeignKey, Columns: []string{"CategoryId"}, RefersToTable: target}}
		return t
	}

	script, results := runCompare(t, withTables(table("Categories")), withTables(table("categories")), dialect.PostgreSql)

	want := []resultKey{{schema.ObjectTypeConstraint, ResultTypeChange, "FK_Category", "Products"}}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(script, `REFERENCES "categories"`) {
		t.Errorf("script should reference the renamed target:\n%s", script)
	}
}

func TestIndexes(t *testing.T) {
	table := func(indexType string) *schema.Table {
		t := productsTable(idColumn(), &schema.Column{Name: "Name", DbDataType: "nvarchar", Length: schema.Int(50)})
		t.UniqueKeys = []*schema.Constraint{{Name: "UK_Products_Name", ConstraintType: schema.ConstraintTypeUniqueKey, Columns: []string{"Name"}}}
		t.Indexes = []*schema.Index{
			{Name: "IX_Products_Name", IndexType: indexType, Columns: []*schema.IndexColumn{{Name: "Name", Ordinal: 1}}},
			// backs the unique key; never reported on its own
			{Name: "UK_Products_Name", IndexType: indexType, IsUnique: true, Columns: []*schema.IndexColumn{{Name: "Name", Ordinal: 1}}},
		}
		return t
	}

	script, results := runCompare(t, withTables(table("NONCLUSTERED")), withTables(table("CLUSTERED")), dialect.SqlServer)

	want := []resultKey{{schema.ObjectTypeIndex, ResultTypeChange, "IX_Products_Name", "Products"}}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	wantScript := "-- ALTERED INDEX Products.IX_Products_Name\n" +
		"DROP INDEX [IX_Products_Name] ON [dbo].[Products];\n" +
		"CREATE CLUSTERED INDEX [IX_Products_Name] ON [dbo].[Products] ([Name]);\n"
	if diff := cmp.Diff(wantScript, script); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}

	// case-only type differences and added/dropped indexes
	base := table("clustered")
	compare := table("CLUSTERED")
	compare.Indexes = append(compare.Indexes, &schema.Index{Name: "IX_Products_Id", Columns: []*schema.IndexColumn{{Name: "Id", Ordinal: 1}}})
	base.Indexes = append(base.Indexes, &schema.Index{Name: "IX_Old", Columns: []*schema.IndexColumn{{Name: "Id", Ordinal: 1}}})
	_, results = runCompare(t, withTables(base), withTables(compare), dialect.SqlServer)
	want = []resultKey{
		{schema.ObjectTypeIndex, ResultTypeAdd, "IX_Products_Id", "Products"},
		{schema.ObjectTypeIndex, ResultTypeDelete, "IX_Old", "Products"},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestTriggers(t *testing.T) {
	trigger := func(name, event string) *schema.Trigger {
		return &schema.Trigger{Name: name, TableName: "Products", SchemaOwner: "dbo", TriggerBody: "AS SELECT 1", TriggerType: "AFTER", TriggerEvent: event}
	}
	base := productsTable(idColumn())
	base.Triggers = []*schema.Trigger{trigger("TR_Audit", "INSERT"), trigger("TR_Old", "DELETE")}
	compare := productsTable(idColumn())
	compare.Triggers = []*schema.Trigger{trigger("TR_Audit", "INSERT, UPDATE"), trigger("TR_New", "DELETE")}

	script, results := runCompare(t, withTables(base), withTables(compare), dialect.SqlServer)

	want := []resultKey{
		{schema.ObjectTypeTrigger, ResultTypeChange, "TR_Audit", "Products"},
		{schema.ObjectTypeTrigger, ResultTypeAdd, "TR_New", "Products"},
		{schema.ObjectTypeTrigger, ResultTypeDelete, "TR_Old", "Products"},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(script, "DROP TRIGGER [dbo].[TR_Audit];\nCREATE TRIGGER [TR_Audit] AFTER INSERT, UPDATE ON [dbo].[Products]\nAS SELECT 1") {
		t.Errorf("unexpected trigger change script:\n%s", script)
	}
}

func TestDeferredForeignKeys(t *testing.T) {
	orders := &schema.Table{
		Name:        "Orders",
		SchemaOwner: "dbo",
		Columns: []*schema.Column{
			idColumn(),
			{Name: "CustomerId", DbDataType: "int"},
		},
		ForeignKeys: []*schema.Constraint{{
			Name:           "FK_Orders_Customers",
			ConstraintType: schema.ConstraintTypeForeignKey,
			Columns:        []string{"CustomerId"},
			RefersToTable:  "Customers",
			RefersToSchema: "dbo",
		}},
		Triggers: []*schema.Trigger{{Name: "TR_Orders", TableName: "Orders", SchemaOwner: "dbo", TriggerBody: "AS SELECT 1", TriggerType: "AFTER", TriggerEvent: "INSERT"}},
	}
	customers := &schema.Table{Name: "Customers", SchemaOwner: "dbo", Columns: []*schema.Column{idColumn()}}
	legacy := &schema.Table{Name: "Legacy", SchemaOwner: "dbo", Columns: []*schema.Column{idColumn()}}

	script, results := runCompare(t, withTables(legacy), withTables(orders, customers), dialect.SqlServer)

	want := []resultKey{
		{schema.ObjectTypeTable, ResultTypeAdd, "Customers", ""},
		{schema.ObjectTypeTable, ResultTypeAdd, "Orders", ""},
		{schema.ObjectTypeTable, ResultTypeDelete, "Legacy", ""},
		{schema.ObjectTypeConstraint, ResultTypeAdd, "FK_Orders_Customers", "Orders"},
		{schema.ObjectTypeTrigger, ResultTypeAdd, "TR_Orders", "Orders"},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	createCustomers := strings.Index(script, "CREATE TABLE [dbo].[Customers]")
	createOrders := strings.Index(script, "CREATE TABLE [dbo].[Orders]")
	addFK := strings.Index(script, "ADD CONSTRAINT [FK_Orders_Customers] FOREIGN KEY ([CustomerId]) REFERENCES [dbo].[Customers]")
	if createCustomers < 0 || createOrders < 0 || addFK < 0 {
		t.Fatalf("script is missing statements:\n%s", script)
	}
	if !(createCustomers < createOrders && createOrders < addFK) {
		t.Errorf("statements out of order:\n%s", script)
	}
	if strings.Contains(results[1].Script, "FOREIGN KEY") {
		t.Errorf("CREATE TABLE must not embed the foreign key:\n%s", results[1].Script)
	}
	if !strings.HasPrefix(results[2].Script, "-- DROPPED TABLE Legacy\n") {
		t.Errorf("unexpected drop header: %q", results[2].Script)
	}
}

func TestDeferredForeignKeyRebuildKeepsTriggersOnce(t *testing.T) {
	orders := &schema.Table{
		Name:        "Orders",
		SchemaOwner: "dbo",
		Columns: []*schema.Column{
			idColumn(),
			{Name: "CustomerId", DbDataType: "int"},
		},
		ForeignKeys: []*schema.Constraint{{
			Name:           "FK_Orders_Customers",
			ConstraintType: schema.ConstraintTypeForeignKey,
			Columns:        []string{"CustomerId"},
			RefersToTable:  "Customers",
		}},
		Triggers: []*schema.Trigger{{Name: "TR_Orders", TableName: "Orders", SchemaOwner: "dbo", TriggerBody: "BEGIN SELECT 1; END", TriggerType: "AFTER", TriggerEvent: "INSERT"}},
	}
	customers := &schema.Table{Name: "Customers", SchemaOwner: "dbo", Columns: []*schema.Column{idColumn()}}

	script, results := runCompare(t, withTables(), withTables(orders, customers), dialect.SQLite)

	want := []resultKey{
		{schema.ObjectTypeTable, ResultTypeAdd, "Customers", ""},
		{schema.ObjectTypeTable, ResultTypeAdd, "Orders", ""},
		{schema.ObjectTypeConstraint, ResultTypeAdd, "FK_Orders_Customers", "Orders"},
		{schema.ObjectTypeTrigger, ResultTypeAdd, "TR_Orders", "Orders"},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(results[2].Script, `FOREIGN KEY ("CustomerId") REFERENCES "Customers"`) {
		t.Errorf("rebuild should carry the foreign key:\n%s", results[2].Script)
	}
	if n := strings.Count(script, `CREATE TRIGGER "TR_Orders"`); n != 1 {
		t.Errorf("trigger created %d times, want 1:\n%s", n, script)
	}
}

func TestDroppedTablesReferencingFirst(t *testing.T) {
	customers := &schema.Table{Name: "Customers", SchemaOwner: "dbo", Columns: []*schema.Column{idColumn()}}
	orders := &schema.Table{
		Name:        "Orders",
		SchemaOwner: "dbo",
		Columns:     []*schema.Column{idColumn(), {Name: "CustomerId", DbDataType: "int"}},
		ForeignKeys: []*schema.Constraint{{
			Name:           "FK_Orders_Customers",
			ConstraintType: schema.ConstraintTypeForeignKey,
			Columns:        []string{"CustomerId"},
			RefersToTable:  "Customers",
		}},
	}
	audit := &schema.Table{Name: "Audit", SchemaOwner: "dbo", Columns: []*schema.Column{idColumn()}}

	script, results := runCompare(t, withTables(customers, audit, orders), withTables(), dialect.PostgreSql)

	want := []resultKey{
		{schema.ObjectTypeTable, ResultTypeDelete, "Audit", ""},
		{schema.ObjectTypeTable, ResultTypeDelete, "Orders", ""},
		{schema.ObjectTypeTable, ResultTypeDelete, "Customers", ""},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	dropOrders := strings.Index(script, "DROP TABLE \"dbo\".\"Orders\"")
	dropCustomers := strings.Index(script, "DROP TABLE \"dbo\".\"Customers\"")
	if dropOrders < 0 || dropCustomers < 0 || dropOrders > dropCustomers {
		t.Errorf("Orders must be dropped before Customers:\n%s", script)
	}
}

func TestBatchSeparatorEmittedOnce(t *testing.T) {
	procedures := []*schema.StoredProcedure{
		{Name: "P1", SchemaOwner: "dbo", Sql: "CREATE PROCEDURE dbo.P1 AS SELECT 1"},
		{Name: "P2", SchemaOwner: "dbo", Sql: "CREATE PROCEDURE dbo.P2 AS SELECT 2"},
		{Name: "P3", SchemaOwner: "dbo", Sql: "CREATE PROCEDURE dbo.P3 AS SELECT 3"},
	}

	countSeparators := func(script string) int {
		n := 0
		for _, line := range strings.Split(script, "\n") {
			if line == "GO" {
				n++
			}
		}
		return n
	}

	t.Run("after other results", func(t *testing.T) {
		compare := withTables(&schema.Table{Name: "Log", SchemaOwner: "dbo", Columns: []*schema.Column{idColumn()}})
		compare.StoredProcedures = procedures

		script, results := runCompare(t, withTables(), compare, dialect.SqlServer)
		if got := countSeparators(script); got != 1 {
			t.Fatalf("got %d separators, want 1:\n%s", got, script)
		}
		if !strings.HasPrefix(results[1].Script, "GO\n-- ADDED STORED PROCEDURE P1\n") {
			t.Errorf("separator should precede the first procedure: %q", results[1].Script)
		}
	})

	t.Run("procedures only", func(t *testing.T) {
		compare := withTables()
		compare.StoredProcedures = procedures

		script, results := runCompare(t, withTables(), compare, dialect.SqlServer)
		if got := countSeparators(script); got != 1 {
			t.Fatalf("got %d separators, want 1:\n%s", got, script)
		}
		if strings.HasPrefix(script, "GO") {
			t.Errorf("script should not open with a separator:\n%s", script)
		}
		if !strings.HasPrefix(results[1].Script, "GO\n") {
			t.Errorf("separator should precede the second procedure: %q", results[1].Script)
		}
	})

	t.Run("dialect without separator", func(t *testing.T) {
		compare := withTables(&schema.Table{Name: "Log", Columns: []*schema.Column{idColumn()}})
		compare.StoredProcedures = procedures

		script, _ := runCompare(t, withTables(), compare, dialect.PostgreSql)
		if strings.Contains(script, "GO") {
			t.Errorf("unexpected separator:\n%s", script)
		}
	})
}

func TestViewEquivalence(t *testing.T) {
	view := func(sql string) *schema.Schema {
		s := withTables()
		s.Views = []*schema.View{{Name: "ActiveProducts", SchemaOwner: "dbo", Sql: sql}}
		return s
	}

	base := view("CREATE VIEW dbo.ActiveProducts AS\n-- active only\nSELECT Id FROM dbo.Products\n\nWHERE Active = 1")

	_, results := runCompare(t, base, view("CREATE VIEW [dbo].[ActiveProducts] AS SELECT Id FROM dbo.Products\nWHERE Active = 1"), dialect.SqlServer)
	if len(results) != 0 {
		t.Errorf("comment and header differences should not be reported: %v", keysOf(results))
	}

	_, results = runCompare(t, base, view("CREATE VIEW dbo.ActiveProducts AS\nSELECT Id /* product key */ FROM dbo.Products\nWHERE Active = 1"), dialect.SqlServer)
	if len(results) != 0 {
		t.Errorf("a mid-line block comment should not be reported: %v", keysOf(results))
	}

	script, results := runCompare(t, base, view("CREATE VIEW dbo.ActiveProducts AS SELECT Id, Name FROM dbo.Products WHERE Active = 1"), dialect.SqlServer)
	want := []resultKey{{schema.ObjectTypeView, ResultTypeChange, "ActiveProducts", ""}}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(script, "-- ALTERED VIEW ActiveProducts\nDROP VIEW [dbo].[ActiveProducts];\nCREATE VIEW dbo.ActiveProducts AS SELECT Id, Name") {
		t.Errorf("unexpected view change script:\n%s", script)
	}
}

func TestViewsFollowDependencies(t *testing.T) {
	compare := withTables()
	compare.Views = []*schema.View{
		{Name: "TopCustomers", SchemaOwner: "dbo", Sql: "CREATE VIEW dbo.TopCustomers AS SELECT * FROM dbo.CustomerTotals WHERE Total > 100"},
		{Name: "CustomerTotals", SchemaOwner: "dbo", Sql: "CREATE VIEW dbo.CustomerTotals AS SELECT CustomerId, SUM(Amount) AS Total FROM dbo.Orders GROUP BY CustomerId"},
	}

	_, results := runCompare(t, withTables(), compare, dialect.SqlServer)
	want := []resultKey{
		{schema.ObjectTypeView, ResultTypeAdd, "CustomerTotals", ""},
		{schema.ObjectTypeView, ResultTypeAdd, "TopCustomers", ""},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestProcedureEquivalence(t *testing.T) {
	proc := func(sql string) *schema.Schema {
		s := withTables()
		s.StoredProcedures = []*schema.StoredProcedure{{Name: "AddOrder", SchemaOwner: "dbo", Sql: sql}}
		return s
	}
	base := proc("CREATE PROCEDURE dbo.AddOrder\nAS\n/* add */\nBEGIN\n  INSERT INTO Orders DEFAULT VALUES\nEND")

	_, results := runCompare(t, base, proc("CREATE PROCEDURE dbo.AddOrder\nAS\n\nBEGIN\n  INSERT INTO Orders DEFAULT VALUES -- x\nEND"), dialect.SqlServer)
	if len(results) != 0 {
		t.Errorf("comment differences should not be reported: %v", keysOf(results))
	}

	_, results = runCompare(t, base, proc("CREATE PROCEDURE dbo.AddOrder\nAS\nBEGIN\n  INSERT INTO Orders /* all defaults */ DEFAULT VALUES\nEND"), dialect.SqlServer)
	if len(results) != 0 {
		t.Errorf("a mid-line block comment should not be reported: %v", keysOf(results))
	}

	script, results := runCompare(t, base, proc("CREATE PROCEDURE dbo.AddOrder\nAS\nBEGIN\n  SELECT 1\nEND"), dialect.SqlServer)
	if len(results) != 1 || results[0].ResultType != ResultTypeChange {
		t.Fatalf("expected one change, got %v", keysOf(results))
	}
	if !strings.Contains(script, "DROP PROCEDURE [dbo].[AddOrder];\nCREATE PROCEDURE dbo.AddOrder") {
		t.Errorf("unexpected procedure change script:\n%s", script)
	}
}

func TestSequencesNeverAlter(t *testing.T) {
	maxValue := int64(5000)
	base := withTables()
	base.Sequences = []*schema.Sequence{
		{Name: "OrderNumbers", SchemaOwner: "app", MinimumValue: 1, IncrementBy: 1},
		{Name: "Retired", SchemaOwner: "app", MinimumValue: 1, IncrementBy: 1},
	}
	compare := withTables()
	compare.Sequences = []*schema.Sequence{
		{Name: "OrderNumbers", SchemaOwner: "app", MinimumValue: 100, MaximumValue: &maxValue, IncrementBy: 10},
		{Name: "InvoiceNumbers", SchemaOwner: "app", MinimumValue: 1, IncrementBy: 1},
	}

	script, results := runCompare(t, base, compare, dialect.PostgreSql)
	want := []resultKey{
		{schema.ObjectTypeSequence, ResultTypeAdd, "InvoiceNumbers", ""},
		{schema.ObjectTypeSequence, ResultTypeDelete, "Retired", ""},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	wantScript := "-- ADDED SEQUENCE InvoiceNumbers\n" +
		"CREATE SEQUENCE \"app\".\"InvoiceNumbers\" START WITH 1 INCREMENT BY 1 MINVALUE 1;\n" +
		"-- DROPPED SEQUENCE Retired\n" +
		"DROP SEQUENCE \"app\".\"Retired\";\n"
	if diff := cmp.Diff(wantScript, script); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestPackagesReplacedInPlace(t *testing.T) {
	pkg := func(body string) *schema.Schema {
		s := withTables()
		s.Packages = []*schema.Package{{
			Name:        "BILLING",
			SchemaOwner: "APP",
			Definition:  "CREATE PACKAGE BILLING AS PROCEDURE RUN; END;",
			Body:        body,
		}}
		return s
	}

	script, results := runCompare(t,
		pkg("CREATE PACKAGE BODY BILLING AS PROCEDURE RUN IS BEGIN NULL; END; END;"),
		pkg("CREATE PACKAGE BODY BILLING AS PROCEDURE RUN IS BEGIN COMMIT; END; END;"),
		dialect.Oracle)

	want := []resultKey{{schema.ObjectTypePackage, ResultTypeChange, "BILLING", ""}}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(script, "DROP PACKAGE") {
		t.Errorf("package change must not drop:\n%s", script)
	}
	if !strings.Contains(script, "CREATE OR REPLACE PACKAGE BODY BILLING AS PROCEDURE RUN IS BEGIN COMMIT; END; END;") {
		t.Errorf("package body not replaced:\n%s", script)
	}
}

func TestUserTypes(t *testing.T) {
	base := withTables()
	base.UserDataTypes = []*schema.UserDataType{{Name: "Email", SchemaOwner: "dbo", DbTypeName: "nvarchar", MaxLength: schema.Int(256)}}
	base.UserDefinedTableTypes = []*schema.UserDefinedTable{{Name: "IdList", SchemaOwner: "dbo", Columns: []*schema.Column{{Name: "Id", DbDataType: "int"}}}}

	compare := withTables()
	compare.UserDataTypes = []*schema.UserDataType{{Name: "Email", SchemaOwner: "dbo", DbTypeName: "NVARCHAR", MaxLength: schema.Int(320)}}
	compare.UserDefinedTableTypes = []*schema.UserDefinedTable{{Name: "IdList", SchemaOwner: "dbo", Columns: []*schema.Column{{Name: "Id", DbDataType: "bigint"}}}}

	script, results := runCompare(t, base, compare, dialect.SqlServer)
	want := []resultKey{
		{schema.ObjectTypeUserDataType, ResultTypeChange, "Email", ""},
		{schema.ObjectTypeUserTableType, ResultTypeChange, "IdList", ""},
	}
	if diff := cmp.Diff(want, keysOf(results)); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(script, "DROP TYPE [dbo].[Email];\nCREATE TYPE [dbo].[Email] FROM NVARCHAR(320) NOT NULL;") {
		t.Errorf("unexpected user type script:\n%s", script)
	}
}

func TestEmissionOrder(t *testing.T) {
	_, results := runCompare(t, withTables(), sampleSchema(), dialect.SqlServer)

	var order []schema.ObjectType
	for _, r := range results {
		if len(order) == 0 || order[len(order)-1] != r.SchemaObjectType {
			order = append(order, r.SchemaObjectType)
		}
	}
	want := []schema.ObjectType{
		schema.ObjectTypeUserDataType,
		schema.ObjectTypeUserTableType,
		schema.ObjectTypeSequence,
		schema.ObjectTypeTable,
		schema.ObjectTypeConstraint,
		schema.ObjectTypeTrigger,
		schema.ObjectTypeView,
		schema.ObjectTypeFunction,
		schema.ObjectTypeStoredProcedure,
	}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("emission order mismatch (-want +got):\n%s", diff)
	}
	// Categories is created before Products, which refers to it
	if results[3].Name != "Categories" || results[4].Name != "Products" {
		t.Errorf("tables out of dependency order: %s, %s", results[3].Name, results[4].Name)
	}
}

func TestSQLiteRebuildSeesPatchedTable(t *testing.T) {
	base := withTables(productsTable(idColumn(), &schema.Column{Name: "Name", DbDataType: "varchar", Length: schema.Int(10)}))
	compare := withTables(productsTable(idColumn(), &schema.Column{Name: "Name", DbDataType: "varchar", Length: schema.Int(30)}))

	script, _ := runCompare(t, base, compare, dialect.SQLite)
	if !strings.Contains(script, `"Name" varchar(30) NOT NULL`) {
		t.Errorf("rebuild should use the altered column:\n%s", script)
	}
	if strings.Contains(script, "varchar(10)") {
		t.Errorf("rebuild should not use the original column:\n%s", script)
	}
	// the base graph is untouched
	if *base.Tables[0].Columns[1].Length != 10 {
		t.Error("base schema was modified")
	}
}

func largeSchemas() (*schema.Schema, *schema.Schema) {
	base, compare := withTables(), withTables()
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("T%02d", i)
		b := &schema.Table{
			Name:        name,
			SchemaOwner: "dbo",
			Columns: []*schema.Column{
				idColumn(),
				{Name: "Value", DbDataType: "nvarchar", Length: schema.Int(20)},
				{Name: "Old", DbDataType: "int"},
			},
			PrimaryKey: &schema.Constraint{Name: "PK_" + name, ConstraintType: schema.ConstraintTypePrimaryKey, Columns: []string{"Id"}},
		}
		c := &schema.Table{
			Name:        name,
			SchemaOwner: "dbo",
			Columns: []*schema.Column{
				idColumn(),
				{Name: "Value", DbDataType: "nvarchar", Length: schema.Int(20 + i%3)},
				{Name: "New", DbDataType: "int", Nullable: true},
			},
			PrimaryKey: &schema.Constraint{Name: "PK_" + name, ConstraintType: schema.ConstraintTypePrimaryKey, Columns: []string{"Id"}},
			Indexes:    []*schema.Index{{Name: "IX_" + name, Columns: []*schema.IndexColumn{{Name: "Value", Ordinal: 1}}}},
		}
		if i%5 == 0 {
			c.ForeignKeys = []*schema.Constraint{{
				Name:           "FK_" + name,
				ConstraintType: schema.ConstraintTypeForeignKey,
				Columns:        []string{"New"},
				RefersToTable:  fmt.Sprintf("T%02d", (i+1)%40),
			}}
		}
		base.Tables = append(base.Tables, b)
		compare.Tables = append(compare.Tables, c)
	}
	return base, compare
}

func TestConcurrencyDoesNotChangeOutput(t *testing.T) {
	base, compare := largeSchemas()
	seqScript, seqResults := runCompare(t, base, compare, dialect.SqlServer)

	for _, n := range []int{2, 8, 64} {
		t.Run(fmt.Sprintf("concurrency %d", n), func(t *testing.T) {
			script, results := runCompare(t, base, compare, dialect.SqlServer, WithConcurrency(n))
			if diff := cmp.Diff(seqResults, results); diff != "" {
				t.Errorf("results differ from sequential run (-seq +par):\n%s", diff)
			}
			if script != seqScript {
				t.Error("script differs from sequential run")
			}
		})
	}
}

func TestNilSchemasAreEmpty(t *testing.T) {
	script, results := runCompare(t, nil, nil, dialect.MySql)
	if script != "" || len(results) != 0 {
		t.Errorf("expected no output, got %q", script)
	}

	_, results = runCompare(t, nil, withTables(&schema.Table{Name: "t", Columns: []*schema.Column{idColumn()}}), dialect.MySql)
	if len(results) != 1 || results[0].ResultType != ResultTypeAdd {
		t.Errorf("unexpected results %v", keysOf(results))
	}
}

func TestNewRejectsUnknownDialect(t *testing.T) {
	if _, err := New(nil, nil, dialect.Dialect(99)); err == nil {
		t.Error("expected an error for an unknown dialect")
	}
}
