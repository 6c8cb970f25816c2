package compare

import (
	"slices"

	"github.com/schemadelta/schemadelta/schema"
)

type patchKind int

const (
	patchAdd patchKind = iota
	patchReplace
	patchRemove
)

type columnPatch struct {
	kind   patchKind
	column *schema.Column
}

type constraintPatch struct {
	kind       patchKind
	constraint *schema.Constraint
}

// workingTable is the state of one table part way through its comparison:
// the base table plus the patches applied so far. Values are never mutated;
// each with* call returns a new workingTable, and the base table is shared
// read-only.
type workingTable struct {
	base              *schema.Table
	columnPatches     []columnPatch
	constraintPatches []constraintPatch
}

func newWorkingTable(base *schema.Table) workingTable {
	return workingTable{base: base}
}

func (w workingTable) withColumn(kind patchKind, c *schema.Column) workingTable {
	patches := append(slices.Clip(w.columnPatches), columnPatch{kind: kind, column: c})
	return workingTable{base: w.base, columnPatches: patches, constraintPatches: w.constraintPatches}
}

func (w workingTable) withConstraint(kind patchKind, c *schema.Constraint) workingTable {
	patches := append(slices.Clip(w.constraintPatches), constraintPatch{kind: kind, constraint: c})
	return workingTable{base: w.base, columnPatches: w.columnPatches, constraintPatches: patches}
}

// table materializes the patched table as a fresh value
func (w workingTable) table() *schema.Table {
	t := *w.base
	t.Columns = slices.Clone(w.base.Columns)
	t.ForeignKeys = slices.Clone(w.base.ForeignKeys)
	t.UniqueKeys = slices.Clone(w.base.UniqueKeys)
	t.CheckConstraints = slices.Clone(w.base.CheckConstraints)
	t.DefaultConstraints = slices.Clone(w.base.DefaultConstraints)

	for _, p := range w.columnPatches {
		t.Columns = applyPatch(t.Columns, p.kind, p.column, func(c *schema.Column) string { return c.Name })
	}
	for _, p := range w.constraintPatches {
		applyConstraintPatch(&t, p)
	}
	return &t
}

func applyConstraintPatch(t *schema.Table, p constraintPatch) {
	name := func(c *schema.Constraint) string { return c.Name }
	c := p.constraint
	switch c.ConstraintType {
	case schema.ConstraintTypePrimaryKey:
		switch p.kind {
		case patchAdd, patchReplace:
			t.PrimaryKey = c
		case patchRemove:
			if t.PrimaryKey != nil && t.PrimaryKey.Name == c.Name {
				t.PrimaryKey = nil
			}
		}
	case schema.ConstraintTypeForeignKey:
		t.ForeignKeys = applyPatch(t.ForeignKeys, p.kind, c, name)
	case schema.ConstraintTypeUniqueKey:
		t.UniqueKeys = applyPatch(t.UniqueKeys, p.kind, c, name)
	case schema.ConstraintTypeCheck:
		t.CheckConstraints = applyPatch(t.CheckConstraints, p.kind, c, name)
	case schema.ConstraintTypeDefault:
		t.DefaultConstraints = applyPatch(t.DefaultConstraints, p.kind, c, name)
	}
}

// applyPatch works on a slice the caller owns
func applyPatch[T any](items []T, kind patchKind, item T, name func(T) string) []T {
	i := slices.IndexFunc(items, func(existing T) bool { return name(existing) == name(item) })
	switch kind {
	case patchAdd, patchReplace:
		if i < 0 {
			return append(items, item)
		}
		items[i] = item
	case patchRemove:
		if i >= 0 {
			return slices.Delete(items, i, i+1)
		}
	}
	return items
}
