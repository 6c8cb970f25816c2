package ddl

import (
	"fmt"

	"github.com/schemadelta/schemadelta/schema"
)

type db2Rules struct {
	ansiRules
}

func (db2Rules) name() string { return "Db2" }

func (db2Rules) alterColumn(g *generator, t *schema.Table, c, original *schema.Column) string {
	return alterColumnStatements(g, t, c, original, "SET DATA TYPE")
}

// DB2 only accepts NO ACTION or RESTRICT for updates
func (db2Rules) supportsOnUpdate() bool { return false }

func (db2Rules) createUserDataType(g *generator, u *schema.UserDataType) string {
	return g.terminate(fmt.Sprintf("CREATE DISTINCT TYPE %s AS %s WITH COMPARISONS",
		g.qualify(u.SchemaOwner, u.Name), formatType(u.DbTypeName, u.MaxLength, u.Precision, u.Scale, "")))
}

func (db2Rules) dropUserDataType(g *generator, u *schema.UserDataType) string {
	return g.terminate("DROP TYPE " + g.qualify(u.SchemaOwner, u.Name))
}
