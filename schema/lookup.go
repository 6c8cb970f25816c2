package schema

// Names and owners are matched exactly; see FindTable.

// FindTable returns the table with the given name and owner, or nil
func (s *Schema) FindTable(name, owner string) *Table {
	for _, t := range s.Tables {
		if t.Name == name && t.SchemaOwner == owner {
			return t
		}
	}
	return nil
}

// FindView returns the view with the given name and owner, or nil
func (s *Schema) FindView(name, owner string) *View {
	for _, v := range s.Views {
		if v.Name == name && v.SchemaOwner == owner {
			return v
		}
	}
	return nil
}

// FindStoredProcedure returns the procedure with the given name and owner, or nil
func (s *Schema) FindStoredProcedure(name, owner string) *StoredProcedure {
	for _, p := range s.StoredProcedures {
		if p.Name == name && p.SchemaOwner == owner {
			return p
		}
	}
	return nil
}

// FindFunction returns the function with the given name and owner, or nil
func (s *Schema) FindFunction(name, owner string) *Function {
	for _, f := range s.Functions {
		if f.Name == name && f.SchemaOwner == owner {
			return f
		}
	}
	return nil
}

// FindPackage returns the package with the given name and owner, or nil
func (s *Schema) FindPackage(name, owner string) *Package {
	for _, p := range s.Packages {
		if p.Name == name && p.SchemaOwner == owner {
			return p
		}
	}
	return nil
}

// FindSequence returns the sequence with the given name and owner, or nil
func (s *Schema) FindSequence(name, owner string) *Sequence {
	for _, seq := range s.Sequences {
		if seq.Name == name && seq.SchemaOwner == owner {
			return seq
		}
	}
	return nil
}

// FindUserDataType returns the user data type with the given name and owner, or nil
func (s *Schema) FindUserDataType(name, owner string) *UserDataType {
	for _, u := range s.UserDataTypes {
		if u.Name == name && u.SchemaOwner == owner {
			return u
		}
	}
	return nil
}

// FindUserDefinedTable returns the table type with the given name and owner, or nil
func (s *Schema) FindUserDefinedTable(name, owner string) *UserDefinedTable {
	for _, u := range s.UserDefinedTableTypes {
		if u.Name == name && u.SchemaOwner == owner {
			return u
		}
	}
	return nil
}

// FindColumn returns the column with the given name, or nil
func (t *Table) FindColumn(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Constraints returns every constraint of the table: primary key first, then
// unique, check, default and foreign keys
func (t *Table) Constraints() []*Constraint {
	var all []*Constraint
	if t.PrimaryKey != nil {
		all = append(all, t.PrimaryKey)
	}
	all = append(all, t.UniqueKeys...)
	all = append(all, t.CheckConstraints...)
	all = append(all, t.DefaultConstraints...)
	all = append(all, t.ForeignKeys...)
	return all
}

// FindConstraint returns the constraint with the given name, or nil
func (t *Table) FindConstraint(name string) *Constraint {
	for _, c := range t.Constraints() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindIndex returns the index with the given name, or nil
func (t *Table) FindIndex(name string) *Index {
	for _, i := range t.Indexes {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// FindTrigger returns the trigger with the given name, or nil
func (t *Table) FindTrigger(name string) *Trigger {
	for _, tr := range t.Triggers {
		if tr.Name == name {
			return tr
		}
	}
	return nil
}

// ColumnNames returns the index column names ordered by Ordinal
func (i *Index) ColumnNames() []string {
	cols := make([]*IndexColumn, len(i.Columns))
	copy(cols, i.Columns)
	// insertion sort keeps equal ordinals in declaration order
	for a := 1; a < len(cols); a++ {
		for b := a; b > 0 && cols[b].Ordinal < cols[b-1].Ordinal; b-- {
			cols[b], cols[b-1] = cols[b-1], cols[b]
		}
	}
	names := make([]string, len(cols))
	for n, c := range cols {
		names[n] = c.Name
	}
	return names
}

// IsUniqueKeyIndex reports whether the index exists only to back the primary
// key or a unique constraint of table
func (i *Index) IsUniqueKeyIndex(table *Table) bool {
	if table == nil || len(i.Columns) == 0 {
		return false
	}
	keys := table.UniqueKeys
	if table.PrimaryKey != nil {
		keys = append([]*Constraint{table.PrimaryKey}, keys...)
	}
	for _, k := range keys {
		if k.Name == i.Name {
			return true
		}
	}
	if !i.IsUnique {
		return false
	}
	names := i.ColumnNames()
	for _, k := range keys {
		if equalStrings(k.Columns, names) {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
