package compare

import (
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

type ownerMapping struct {
	from, to string
}

func parseOwnerMap(values []string) ([]ownerMapping, error) {
	var mappings []ownerMapping
	for _, v := range values {
		from, to, ok := strings.Cut(v, "=")
		if !ok || from == "" {
			return nil, fmt.Errorf("invalid --map-owner %q: want from=to", v)
		}
		mappings = append(mappings, ownerMapping{from: from, to: to})
	}
	return mappings, nil
}

// renameOwner moves every object owned by from to to, including foreign
// key targets. Snapshots of the same design taken under different owners
// then compare object by object.
func renameOwner(s *schema.Schema, from, to string) {
	rename := func(owner *string) {
		if *owner == from {
			*owner = to
		}
	}

	rename(&s.Owner)
	for _, t := range s.Tables {
		rename(&t.SchemaOwner)
		for _, c := range t.Constraints() {
			rename(&c.SchemaOwner)
			rename(&c.RefersToSchema)
		}
		for _, idx := range t.Indexes {
			rename(&idx.SchemaOwner)
		}
		for _, tr := range t.Triggers {
			rename(&tr.SchemaOwner)
		}
	}
	for _, v := range s.Views {
		rename(&v.SchemaOwner)
	}
	for _, p := range s.StoredProcedures {
		rename(&p.SchemaOwner)
	}
	for _, f := range s.Functions {
		rename(&f.SchemaOwner)
	}
	for _, p := range s.Packages {
		rename(&p.SchemaOwner)
	}
	for _, q := range s.Sequences {
		rename(&q.SchemaOwner)
	}
	for _, u := range s.UserDataTypes {
		rename(&u.SchemaOwner)
	}
	for _, u := range s.UserDefinedTableTypes {
		rename(&u.SchemaOwner)
	}
}
