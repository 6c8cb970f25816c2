// Package ignore filters schema objects by name using the patterns of a
// .schemadeltaignore file.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/schemadelta/schemadelta/schema"
)

// FileName is the ignore file looked up when no path is given
const FileName = ".schemadeltaignore"

// Config lists glob patterns per object family. A pattern starting with !
// keeps objects that another pattern ignores. Patterns match the bare name
// or owner.name.
type Config struct {
	Tables     []string
	Views      []string
	Procedures []string
	Functions  []string
	Packages   []string
	Sequences  []string
	Types      []string
}

type section struct {
	Patterns []string `toml:"patterns"`
}

type file struct {
	Tables     section `toml:"tables"`
	Views      section `toml:"views"`
	Procedures section `toml:"procedures"`
	Functions  section `toml:"functions"`
	Packages   section `toml:"packages"`
	Sequences  section `toml:"sequences"`
	Types      section `toml:"types"`
}

// Load reads the ignore file at path. A missing file yields a nil Config,
// which ignores nothing.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FileName
	}
	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse ignore file %s: %w", path, err)
	}
	return &Config{
		Tables:     f.Tables.Patterns,
		Views:      f.Views.Patterns,
		Procedures: f.Procedures.Patterns,
		Functions:  f.Functions.Patterns,
		Packages:   f.Packages.Patterns,
		Sequences:  f.Sequences.Patterns,
		Types:      f.Types.Patterns,
	}, nil
}

// Apply returns a copy of s without the ignored objects. s is not modified;
// kept objects are shared with it.
func (c *Config) Apply(s *schema.Schema) *schema.Schema {
	if c == nil || s == nil {
		return s
	}
	out := *s
	out.Tables = keep(s.Tables, c.Tables, func(t *schema.Table) string { return t.SchemaOwner })
	out.Views = keep(s.Views, c.Views, func(v *schema.View) string { return v.SchemaOwner })
	out.StoredProcedures = keep(s.StoredProcedures, c.Procedures, func(p *schema.StoredProcedure) string { return p.SchemaOwner })
	out.Functions = keep(s.Functions, c.Functions, func(f *schema.Function) string { return f.SchemaOwner })
	out.Packages = keep(s.Packages, c.Packages, func(p *schema.Package) string { return p.SchemaOwner })
	out.Sequences = keep(s.Sequences, c.Sequences, func(q *schema.Sequence) string { return q.SchemaOwner })
	out.UserDataTypes = keep(s.UserDataTypes, c.Types, func(u *schema.UserDataType) string { return u.SchemaOwner })
	out.UserDefinedTableTypes = keep(s.UserDefinedTableTypes, c.Types, func(u *schema.UserDefinedTable) string { return u.SchemaOwner })
	return &out
}

func keep[T schema.Object](items []T, patterns []string, owner func(T) string) []T {
	if len(patterns) == 0 {
		return items
	}
	var kept []T
	for _, item := range items {
		if !Match(patterns, item.ObjectName(), owner(item)) {
			kept = append(kept, item)
		}
	}
	return kept
}

// Match reports whether patterns ignore the object. Negations win over
// plain matches regardless of order.
func Match(patterns []string, name, owner string) bool {
	matched := false
	for _, p := range patterns {
		if neg, ok := strings.CutPrefix(p, "!"); ok {
			if matches(neg, name, owner) {
				return false
			}
			continue
		}
		if !matched && matches(p, name, owner) {
			matched = true
		}
	}
	return matched
}

func matches(pattern, name, owner string) bool {
	if matchPattern(pattern, name) {
		return true
	}
	return owner != "" && matchPattern(pattern, owner+"."+name)
}

// matchPattern treats an invalid glob as a literal name
func matchPattern(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return matched
}
