package compare

import (
	"slices"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

func (d *tableDiff) compareConstraints(w workingTable) workingTable {
	w = d.comparePrimaryKey(w)
	w = d.compareNamedConstraints(w, d.base.UniqueKeys, d.compare.UniqueKeys)
	w = d.compareNamedConstraints(w, d.base.CheckConstraints, d.compare.CheckConstraints)
	w = d.compareNamedConstraints(w, d.base.DefaultConstraints, d.compare.DefaultConstraints)
	w = d.compareNamedConstraints(w, d.base.ForeignKeys, d.compare.ForeignKeys)
	return w
}

func (d *tableDiff) comparePrimaryKey(w workingTable) workingTable {
	basePK, comparePK := d.base.PrimaryKey, d.compare.PrimaryKey

	switch {
	case basePK == nil && comparePK == nil:
		d.logger.Warn("Table has no primary key", "table", d.compare.Name, "owner", d.compare.SchemaOwner)

	case basePK == nil:
		w = w.withConstraint(patchAdd, comparePK)
		d.emit(schema.ObjectTypeConstraint, ResultTypeAdd, comparePK.Name, d.writer.AddConstraint(w.table(), comparePK))

	case comparePK == nil:
		w = w.withConstraint(patchRemove, basePK)
		body := "-- WARNING: primary key " + basePK.Name + " removed from " + d.compare.Name + "\n" +
			d.writer.DropConstraint(w.table(), basePK)
		d.emit(schema.ObjectTypeConstraint, ResultTypeChange, basePK.Name, body)

	case !slices.Equal(basePK.Columns, comparePK.Columns):
		w = w.withConstraint(patchRemove, basePK)
		drop := d.writer.DropConstraint(w.table(), basePK)
		w = w.withConstraint(patchAdd, comparePK)
		add := d.writer.AddConstraint(w.table(), comparePK)
		d.emit(schema.ObjectTypeConstraint, ResultTypeChange, comparePK.Name, joinStatements(drop, add))
	}
	return w
}

// compareNamedConstraints matches constraints of one kind by name and emits
// drops, then changes, then additions
func (d *tableDiff) compareNamedConstraints(w workingTable, base, compare []*schema.Constraint) workingTable {
	for _, c := range base {
		if findConstraintByName(compare, c.Name) != nil {
			continue
		}
		w = w.withConstraint(patchRemove, c)
		d.emit(schema.ObjectTypeConstraint, ResultTypeDelete, c.Name, d.writer.DropConstraint(w.table(), c))
	}

	for _, c := range compare {
		original := findConstraintByName(base, c.Name)
		if original == nil {
			continue
		}
		if !constraintChanged(original, c) {
			continue
		}
		w = w.withConstraint(patchRemove, original)
		drop := d.writer.DropConstraint(w.table(), original)
		w = w.withConstraint(patchAdd, c)
		add := d.writer.AddConstraint(w.table(), c)
		d.emit(schema.ObjectTypeConstraint, ResultTypeChange, c.Name, joinStatements(drop, add))
	}

	for _, c := range compare {
		if findConstraintByName(base, c.Name) != nil {
			continue
		}
		w = w.withConstraint(patchAdd, c)
		d.emit(schema.ObjectTypeConstraint, ResultTypeAdd, c.Name, d.writer.AddConstraint(w.table(), c))
	}
	return w
}

func findConstraintByName(constraints []*schema.Constraint, name string) *schema.Constraint {
	for _, c := range constraints {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func constraintChanged(a, b *schema.Constraint) bool {
	if !slices.Equal(a.Columns, b.Columns) {
		return true
	}
	switch b.ConstraintType {
	case schema.ConstraintTypeCheck, schema.ConstraintTypeDefault:
		return a.Expression != b.Expression
	case schema.ConstraintTypeForeignKey:
		return a.RefersToTable != b.RefersToTable
	}
	return false
}

func joinStatements(statements ...string) string {
	var nonEmpty []string
	for _, s := range statements {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
