package ddl

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/schemadelta/schemadelta/schema"
)

type postgresRules struct {
	ansiRules
}

func (postgresRules) name() string { return "PostgreSql" }

func (postgresRules) quote(name string) string {
	return pq.QuoteIdentifier(name)
}

func (postgresRules) quoteLiteral(s string) string {
	return pq.QuoteLiteral(s)
}

func (postgresRules) indexType(indexType string) (string, string) {
	switch lower := strings.ToLower(strings.TrimSpace(indexType)); lower {
	case "btree", "hash", "gist", "gin", "spgist", "brin":
		return "", "USING " + lower
	}
	return "", ""
}

func (postgresRules) dropTrigger(g *generator, tr *schema.Trigger) string {
	return g.terminate(fmt.Sprintf("DROP TRIGGER %s ON %s", g.quote(tr.Name), g.qualify(tr.SchemaOwner, tr.TableName)))
}

func (postgresRules) createUserDataType(g *generator, u *schema.UserDataType) string {
	return createDomain(g, u)
}

func (postgresRules) dropUserDataType(g *generator, u *schema.UserDataType) string {
	return g.terminate("DROP DOMAIN " + g.qualify(u.SchemaOwner, u.Name))
}

// createTableType writes a composite type
func (postgresRules) createTableType(g *generator, u *schema.UserDefinedTable) string {
	lines := make([]string, len(u.Columns))
	for i, c := range u.Columns {
		lines[i] = "  " + g.quote(c.Name) + " " + g.r.dataType(c)
	}
	return g.terminate(fmt.Sprintf("CREATE TYPE %s AS (\n%s\n)", g.qualify(u.SchemaOwner, u.Name), strings.Join(lines, ",\n")))
}

func (postgresRules) dropTableType(g *generator, u *schema.UserDefinedTable) string {
	return g.terminate("DROP TYPE " + g.qualify(u.SchemaOwner, u.Name))
}
