package compare

import (
	"regexp"
	"slices"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

const (
	unvisited = iota
	visiting
	visited
)

// topologicalSort orders items so that each one follows the items it
// depends on. It is a depth-first search in input order; dependencies are
// visited in the order returned by dependencies. Self references and
// unknown keys are ignored, and an edge back to an item still on the stack
// is dropped, which breaks cycles. Every item appears exactly once.
func topologicalSort[T any](items []T, key func(T) string, dependencies func(T) []string) []T {
	index := make(map[string]int, len(items))
	for i, item := range items {
		k := key(item)
		if _, exists := index[k]; !exists {
			index[k] = i
		}
	}

	state := make([]int, len(items))
	sorted := make([]T, 0, len(items))

	var visit func(i int)
	visit = func(i int) {
		state[i] = visiting
		for _, dep := range dependencies(items[i]) {
			j, ok := index[dep]
			if !ok || j == i || state[j] != unvisited {
				continue
			}
			visit(j)
		}
		state[i] = visited
		sorted = append(sorted, items[i])
	}

	for i := range items {
		if state[i] == unvisited {
			visit(i)
		}
	}
	return sorted
}

// objectKey identifies an object by owner and name. The separator cannot
// appear in an identifier, so owner "a.b" with name "c" differs from owner
// "a" with name "b.c".
func objectKey(owner, name string) string {
	return owner + "\x00" + name
}

// sortTablesByDependency orders tables so that a table follows the tables
// its foreign keys refer to. A reference without a schema resolves against
// the referencing table's owner, then by name alone if that is unambiguous.
func sortTablesByDependency(tables []*schema.Table) []*schema.Table {
	if len(tables) <= 1 {
		return tables
	}

	known := make(map[string]bool, len(tables))
	byName := make(map[string][]string)
	for _, t := range tables {
		key := objectKey(t.SchemaOwner, t.Name)
		known[key] = true
		byName[t.Name] = append(byName[t.Name], key)
	}

	dependencies := func(t *schema.Table) []string {
		var deps []string
		for _, fk := range t.ForeignKeys {
			if fk.RefersToTable == "" {
				continue
			}
			owner := fk.RefersToSchema
			if owner == "" {
				owner = t.SchemaOwner
			}
			key := objectKey(owner, fk.RefersToTable)
			if !known[key] && fk.RefersToSchema == "" && len(byName[fk.RefersToTable]) == 1 {
				key = byName[fk.RefersToTable][0]
			}
			deps = append(deps, key)
		}
		return deps
	}

	return topologicalSort(tables, func(t *schema.Table) string {
		return objectKey(t.SchemaOwner, t.Name)
	}, dependencies)
}

// dropOrder orders tables so that a table is dropped before the tables its
// foreign keys refer to. Unrelated tables keep their input order.
func dropOrder(tables []*schema.Table) []*schema.Table {
	reversed := slices.Clone(tables)
	slices.Reverse(reversed)
	sorted := sortTablesByDependency(reversed)
	slices.Reverse(sorted)
	return sorted
}

// sortViewsByDependency orders views so that a view follows the views whose
// names appear as words in its definition
func sortViewsByDependency(views []*schema.View) []*schema.View {
	if len(views) <= 1 {
		return views
	}

	patterns := make(map[string]*regexp.Regexp, len(views))
	for _, v := range views {
		key := objectKey(v.SchemaOwner, v.Name)
		if _, exists := patterns[key]; !exists {
			patterns[key] = regexp.MustCompile(`(?i)(^|[^\w$#@])["\[\x60]?` + regexp.QuoteMeta(v.Name) + `["\]\x60]?($|[^\w$#@])`)
		}
	}

	dependencies := func(v *schema.View) []string {
		body := strings.TrimSpace(v.Sql)
		var deps []string
		for _, other := range views {
			if other == v || other.Name == v.Name {
				continue
			}
			if patterns[objectKey(other.SchemaOwner, other.Name)].MatchString(body) {
				deps = append(deps, objectKey(other.SchemaOwner, other.Name))
			}
		}
		return deps
	}

	return topologicalSort(views, func(v *schema.View) string {
		return objectKey(v.SchemaOwner, v.Name)
	}, dependencies)
}
