package compare

import (
	"slices"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

// compareIndexes skips indexes that back a primary or unique key; those are
// handled with the constraints
func (d *tableDiff) compareIndexes(w workingTable) {
	for _, idx := range d.compare.Indexes {
		if idx.IsUniqueKeyIndex(d.compare) {
			continue
		}
		original := d.base.FindIndex(idx.Name)
		switch {
		case original == nil:
			d.emit(schema.ObjectTypeIndex, ResultTypeAdd, idx.Name, d.writer.AddIndex(w.table(), idx))
		case indexChanged(original, idx):
			table := w.table()
			d.emit(schema.ObjectTypeIndex, ResultTypeChange, idx.Name,
				joinStatements(d.writer.DropIndex(table, original), d.writer.AddIndex(table, idx)))
		}
	}

	for _, idx := range d.base.Indexes {
		if idx.IsUniqueKeyIndex(d.base) || d.compare.FindIndex(idx.Name) != nil {
			continue
		}
		d.emit(schema.ObjectTypeIndex, ResultTypeDelete, idx.Name, d.writer.DropIndex(w.table(), idx))
	}
}

func indexChanged(a, b *schema.Index) bool {
	return !slices.Equal(a.ColumnNames(), b.ColumnNames()) ||
		!strings.EqualFold(a.IndexType, b.IndexType) ||
		a.IsUnique != b.IsUnique
}
