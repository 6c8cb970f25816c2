package compare

import (
	"strings"

	"github.com/schemadelta/schemadelta/internal/ddl"
	"github.com/schemadelta/schemadelta/schema"
)

func userDataTypeKind(w *ddl.Facade) objectKind[*schema.UserDataType] {
	return objectKind[*schema.UserDataType]{
		objectType: schema.ObjectTypeUserDataType,
		owner:      func(u *schema.UserDataType) string { return u.SchemaOwner },
		equal:      sameUserDataType,
		add:        w.AddUserDataType,
		drop:       w.DropUserDataType,
		batched:    true,
	}
}

func sameUserDataType(a, b *schema.UserDataType) bool {
	return strings.EqualFold(a.DbTypeName, b.DbTypeName) &&
		intPtrEqual(a.MaxLength, b.MaxLength) &&
		intPtrEqual(a.Precision, b.Precision) &&
		intPtrEqual(a.Scale, b.Scale) &&
		a.Nullable == b.Nullable &&
		a.DefaultValue == b.DefaultValue
}

func userTableTypeKind(w *ddl.Facade) objectKind[*schema.UserDefinedTable] {
	return objectKind[*schema.UserDefinedTable]{
		objectType: schema.ObjectTypeUserTableType,
		owner:      func(u *schema.UserDefinedTable) string { return u.SchemaOwner },
		equal:      sameUserTableType,
		add:        w.AddUserDefinedTableType,
		drop:       w.DropUserDefinedTableType,
		batched:    true,
	}
}

// sameUserTableType compares the ordered column lists
func sameUserTableType(a, b *schema.UserDefinedTable) bool {
	if len(a.Columns) != len(b.Columns) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i].Name != b.Columns[i].Name || columnChanged(a.Columns[i], b.Columns[i]) {
			return false
		}
	}
	return true
}
