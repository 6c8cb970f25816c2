package schema

import (
	"fmt"
	"strings"
)

// ObjectType identifies the kind of a schema object. The set is closed.
type ObjectType int

const (
	ObjectTypeTable ObjectType = iota
	ObjectTypeView
	ObjectTypeColumn
	ObjectTypeConstraint
	ObjectTypeIndex
	ObjectTypeTrigger
	ObjectTypeStoredProcedure
	ObjectTypeFunction
	ObjectTypeSequence
	ObjectTypePackage
	ObjectTypeUserDataType
	ObjectTypeUserTableType
)

var objectTypeNames = [...]string{
	ObjectTypeTable:           "Table",
	ObjectTypeView:            "View",
	ObjectTypeColumn:          "Column",
	ObjectTypeConstraint:      "Constraint",
	ObjectTypeIndex:           "Index",
	ObjectTypeTrigger:         "Trigger",
	ObjectTypeStoredProcedure: "StoredProcedure",
	ObjectTypeFunction:        "Function",
	ObjectTypeSequence:        "Sequence",
	ObjectTypePackage:         "Package",
	ObjectTypeUserDataType:    "UserDataType",
	ObjectTypeUserTableType:   "UserTableType",
}

// ObjectTypes lists every ObjectType in declaration order
func ObjectTypes() []ObjectType {
	types := make([]ObjectType, len(objectTypeNames))
	for i := range objectTypeNames {
		types[i] = ObjectType(i)
	}
	return types
}

// Valid reports whether t is one of the declared object types
func (t ObjectType) Valid() bool {
	return t >= 0 && int(t) < len(objectTypeNames)
}

func (t ObjectType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ObjectType(%d)", int(t))
	}
	return objectTypeNames[t]
}

// MarshalText encodes the type by name
func (t ObjectType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid object type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name, case-insensitively
func (t *ObjectType) UnmarshalText(text []byte) error {
	for i, name := range objectTypeNames {
		if strings.EqualFold(name, string(text)) {
			*t = ObjectType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown object type %q", string(text))
}

// Object is implemented by every entity a comparison result can refer to
type Object interface {
	ObjectType() ObjectType
	ObjectName() string
}

func (t *Table) ObjectType() ObjectType            { return ObjectTypeTable }
func (v *View) ObjectType() ObjectType             { return ObjectTypeView }
func (c *Column) ObjectType() ObjectType           { return ObjectTypeColumn }
func (c *Constraint) ObjectType() ObjectType       { return ObjectTypeConstraint }
func (i *Index) ObjectType() ObjectType            { return ObjectTypeIndex }
func (t *Trigger) ObjectType() ObjectType          { return ObjectTypeTrigger }
func (p *StoredProcedure) ObjectType() ObjectType  { return ObjectTypeStoredProcedure }
func (f *Function) ObjectType() ObjectType         { return ObjectTypeFunction }
func (s *Sequence) ObjectType() ObjectType         { return ObjectTypeSequence }
func (p *Package) ObjectType() ObjectType          { return ObjectTypePackage }
func (u *UserDataType) ObjectType() ObjectType     { return ObjectTypeUserDataType }
func (u *UserDefinedTable) ObjectType() ObjectType { return ObjectTypeUserTableType }

func (t *Table) ObjectName() string            { return t.Name }
func (v *View) ObjectName() string             { return v.Name }
func (c *Column) ObjectName() string           { return c.Name }
func (c *Constraint) ObjectName() string       { return c.Name }
func (i *Index) ObjectName() string            { return i.Name }
func (t *Trigger) ObjectName() string          { return t.Name }
func (p *StoredProcedure) ObjectName() string  { return p.Name }
func (f *Function) ObjectName() string         { return f.Name }
func (s *Sequence) ObjectName() string         { return s.Name }
func (p *Package) ObjectName() string          { return p.Name }
func (u *UserDataType) ObjectName() string     { return u.Name }
func (u *UserDefinedTable) ObjectName() string { return u.Name }
