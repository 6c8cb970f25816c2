package compare

import (
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

// compareColumns emits added, then changed, then dropped columns
func (d *tableDiff) compareColumns(w workingTable) workingTable {
	for _, c := range d.compare.Columns {
		if d.base.FindColumn(c.Name) != nil {
			continue
		}
		w = w.withColumn(patchAdd, c)
		d.emit(schema.ObjectTypeColumn, ResultTypeAdd, c.Name, d.writer.AddColumn(w.table(), c))
	}

	for _, c := range d.compare.Columns {
		original := d.base.FindColumn(c.Name)
		if original == nil || !columnChanged(original, c) {
			continue
		}
		w = w.withColumn(patchReplace, c)
		d.emit(schema.ObjectTypeColumn, ResultTypeChange, c.Name, d.writer.AlterColumn(w.table(), c, original))
	}

	for _, c := range d.base.Columns {
		if d.compare.FindColumn(c.Name) != nil {
			continue
		}
		w = w.withColumn(patchRemove, c)
		d.emit(schema.ObjectTypeColumn, ResultTypeDelete, c.Name, d.writer.DropColumn(w.table(), c))
	}
	return w
}

// columnChanged compares the type, size and nullability of two columns.
// Identity is not compared.
func columnChanged(a, b *schema.Column) bool {
	return !strings.EqualFold(a.DbDataType, b.DbDataType) ||
		!intPtrEqual(a.Length, b.Length) ||
		!intPtrEqual(a.Precision, b.Precision) ||
		!intPtrEqual(a.Scale, b.Scale) ||
		a.Nullable != b.Nullable
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
