package ddl

import (
	"fmt"

	"github.com/schemadelta/schemadelta/schema"
)

type firebirdRules struct {
	ansiRules
}

func (firebirdRules) name() string { return "Firebird" }

func (firebirdRules) qualifiesOwner() bool { return false }

func (firebirdRules) addColumnKeyword() string  { return "ADD" }
func (firebirdRules) dropColumnKeyword() string { return "DROP" }

func (firebirdRules) createSequence(g *generator, s *schema.Sequence) string {
	return g.terminate(fmt.Sprintf("CREATE SEQUENCE %s START WITH %d INCREMENT BY %d",
		g.qualify(s.SchemaOwner, s.Name), s.MinimumValue, s.IncrementBy))
}

func (firebirdRules) createUserDataType(g *generator, u *schema.UserDataType) string {
	return createDomain(g, u)
}

func (firebirdRules) dropUserDataType(g *generator, u *schema.UserDataType) string {
	return g.terminate("DROP DOMAIN " + g.qualify(u.SchemaOwner, u.Name))
}
