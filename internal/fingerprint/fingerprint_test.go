package fingerprint

import (
	"errors"
	"strings"
	"testing"

	"github.com/schemadelta/schemadelta/schema"
)

func usersSchema(provider string, columns ...string) *schema.Schema {
	t := &schema.Table{Name: "users", SchemaOwner: "public"}
	for _, c := range columns {
		t.Columns = append(t.Columns, &schema.Column{Name: c, DbDataType: "text"})
	}
	return &schema.Schema{Provider: provider, Tables: []*schema.Table{t}}
}

func mustCompute(t *testing.T, s *schema.Schema) *Fingerprint {
	t.Helper()
	fp, err := Compute(s)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	return fp
}

func TestComputeIsStable(t *testing.T) {
	a := mustCompute(t, usersSchema("PostgreSql", "id", "email"))
	b := mustCompute(t, usersSchema("PostgreSql", "id", "email"))
	if a.Hash != b.Hash {
		t.Errorf("equal schemas hash differently: %s vs %s", a.Hash, b.Hash)
	}
	if len(a.Hash) != 64 {
		t.Errorf("hash length = %d, want 64", len(a.Hash))
	}
}

func TestComputeIgnoresProvider(t *testing.T) {
	a := mustCompute(t, usersSchema("PostgreSql", "id"))
	b := mustCompute(t, usersSchema("", "id"))
	if err := Compare(a, b); err != nil {
		t.Errorf("Compare() error: %v", err)
	}
}

func TestComputeDetectsChanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.Schema)
	}{
		{"column added", func(s *schema.Schema) {
			s.Tables[0].Columns = append(s.Tables[0].Columns, &schema.Column{Name: "email", DbDataType: "text"})
		}},
		{"type changed", func(s *schema.Schema) { s.Tables[0].Columns[0].DbDataType = "int" }},
		{"owner changed", func(s *schema.Schema) { s.Tables[0].SchemaOwner = "app" }},
		{"view added", func(s *schema.Schema) { s.Views = append(s.Views, &schema.View{Name: "v", Sql: "SELECT 1"}) }},
	}
	base := mustCompute(t, usersSchema("", "id"))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := usersSchema("", "id")
			tt.mutate(s)
			err := Compare(base, mustCompute(t, s))
			if !errors.Is(err, ErrMismatch) {
				t.Errorf("Compare() error = %v, want ErrMismatch", err)
			}
		})
	}
}

func TestNilSchemaMatchesEmpty(t *testing.T) {
	if err := Compare(mustCompute(t, nil), mustCompute(t, &schema.Schema{})); err != nil {
		t.Errorf("Compare() error: %v", err)
	}
}

func TestString(t *testing.T) {
	fp := &Fingerprint{Hash: "0123456789abcdef"}
	if got := fp.String(); got != "Schema fingerprint: 01234567" {
		t.Errorf("String() = %q", got)
	}
	if got := (&Fingerprint{Hash: "abc"}).Short(); got != "abc" {
		t.Errorf("Short() = %q", got)
	}
	err := Compare(&Fingerprint{Hash: strings.Repeat("a", 64)}, &Fingerprint{Hash: strings.Repeat("b", 64)})
	if err == nil || !strings.Contains(err.Error(), strings.Repeat("a", 16)+",") {
		t.Errorf("Compare() error = %v", err)
	}
}
