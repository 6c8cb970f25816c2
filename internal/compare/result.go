package compare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schemadelta/schemadelta/schema"
)

var (
	// ErrObjectTypeOutOfRange is returned by Find for an undeclared object type
	ErrObjectTypeOutOfRange = errors.New("schema object type out of range")
	// ErrInvalidResult is returned by Find when a field its kind requires is empty
	ErrInvalidResult = errors.New("invalid compare result")
)

// ResultType classifies a difference
type ResultType int

const (
	ResultTypeAdd ResultType = iota
	ResultTypeChange
	ResultTypeDelete
)

func (t ResultType) String() string {
	switch t {
	case ResultTypeAdd:
		return "Add"
	case ResultTypeChange:
		return "Change"
	case ResultTypeDelete:
		return "Delete"
	}
	return fmt.Sprintf("ResultType(%d)", int(t))
}

// MarshalText encodes the result type by name
func (t ResultType) MarshalText() ([]byte, error) {
	if t < ResultTypeAdd || t > ResultTypeDelete {
		return nil, fmt.Errorf("invalid result type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a result type name
func (t *ResultType) UnmarshalText(text []byte) error {
	for _, candidate := range []ResultType{ResultTypeAdd, ResultTypeChange, ResultTypeDelete} {
		if strings.EqualFold(candidate.String(), string(text)) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown result type %q", string(text))
}

// Result is one reported difference. Results are created by the comparators
// and not modified afterwards.
type Result struct {
	SchemaObjectType schema.ObjectType `json:"schema_object_type"`
	ResultType       ResultType        `json:"result_type"`
	Name             string            `json:"name"`
	TableName        string            `json:"table_name,omitempty"` // set for child-of-table kinds
	SchemaOwner      string            `json:"schema_owner,omitempty"`
	Script           string            `json:"script"`
}

// Find looks up the object the result refers to in s. It returns nil, nil
// when the object does not exist in s.
func (r *Result) Find(s *schema.Schema) (schema.Object, error) {
	if !r.SchemaObjectType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrObjectTypeOutOfRange, int(r.SchemaObjectType))
	}
	if r.Name == "" {
		return nil, fmt.Errorf("%w: %s result has no name", ErrInvalidResult, r.SchemaObjectType)
	}
	if s == nil {
		return nil, nil
	}

	switch r.SchemaObjectType {
	case schema.ObjectTypeTable:
		return r.findTable(s), nil
	case schema.ObjectTypeView:
		return r.findView(s), nil
	case schema.ObjectTypeColumn:
		return r.findInTable(s, findColumn)
	case schema.ObjectTypeConstraint:
		return r.findInTable(s, findConstraint)
	case schema.ObjectTypeIndex:
		return r.findInTable(s, findIndex)
	case schema.ObjectTypeTrigger:
		return r.findInTable(s, findTrigger)
	case schema.ObjectTypeStoredProcedure:
		return r.findStoredProcedure(s), nil
	case schema.ObjectTypeFunction:
		return r.findFunction(s), nil
	case schema.ObjectTypeSequence:
		return r.findSequence(s), nil
	case schema.ObjectTypePackage:
		return r.findPackage(s), nil
	case schema.ObjectTypeUserDataType:
		return r.findUserDataType(s), nil
	case schema.ObjectTypeUserTableType:
		return r.findUserTableType(s), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrObjectTypeOutOfRange, int(r.SchemaObjectType))
}

// Each finder converts a missing object to a nil interface rather than a
// typed nil pointer.

func (r *Result) findTable(s *schema.Schema) schema.Object {
	if t := s.FindTable(r.Name, r.SchemaOwner); t != nil {
		return t
	}
	return nil
}

func (r *Result) findView(s *schema.Schema) schema.Object {
	if v := s.FindView(r.Name, r.SchemaOwner); v != nil {
		return v
	}
	return nil
}

func (r *Result) findStoredProcedure(s *schema.Schema) schema.Object {
	if p := s.FindStoredProcedure(r.Name, r.SchemaOwner); p != nil {
		return p
	}
	return nil
}

func (r *Result) findFunction(s *schema.Schema) schema.Object {
	if f := s.FindFunction(r.Name, r.SchemaOwner); f != nil {
		return f
	}
	return nil
}

func (r *Result) findSequence(s *schema.Schema) schema.Object {
	if seq := s.FindSequence(r.Name, r.SchemaOwner); seq != nil {
		return seq
	}
	return nil
}

func (r *Result) findPackage(s *schema.Schema) schema.Object {
	if p := s.FindPackage(r.Name, r.SchemaOwner); p != nil {
		return p
	}
	return nil
}

func (r *Result) findUserDataType(s *schema.Schema) schema.Object {
	if u := s.FindUserDataType(r.Name, r.SchemaOwner); u != nil {
		return u
	}
	return nil
}

func (r *Result) findUserTableType(s *schema.Schema) schema.Object {
	if u := s.FindUserDefinedTable(r.Name, r.SchemaOwner); u != nil {
		return u
	}
	return nil
}

// Label names the result the way script headers do, e.g.
// "COLUMN Products.Sku"
func (r *Result) Label() string {
	name := r.Name
	if r.TableName != "" && r.SchemaObjectType != schema.ObjectTypeTable {
		name = r.TableName + "." + name
	}
	return kinds[r.SchemaObjectType] + " " + name
}

// findInTable resolves the owning table first; child kinds need TableName
func (r *Result) findInTable(s *schema.Schema, find func(*schema.Table, string) schema.Object) (schema.Object, error) {
	if r.TableName == "" {
		return nil, fmt.Errorf("%w: %s result %q has no table name", ErrInvalidResult, r.SchemaObjectType, r.Name)
	}
	table := s.FindTable(r.TableName, r.SchemaOwner)
	if table == nil {
		return nil, nil
	}
	return find(table, r.Name), nil
}

func findColumn(t *schema.Table, name string) schema.Object {
	if c := t.FindColumn(name); c != nil {
		return c
	}
	return nil
}

func findConstraint(t *schema.Table, name string) schema.Object {
	if c := t.FindConstraint(name); c != nil {
		return c
	}
	return nil
}

func findIndex(t *schema.Table, name string) schema.Object {
	if i := t.FindIndex(name); i != nil {
		return i
	}
	return nil
}

func findTrigger(t *schema.Table, name string) schema.Object {
	if tr := t.FindTrigger(name); tr != nil {
		return tr
	}
	return nil
}

// resultList is the append-only list a comparison run writes to
type resultList struct {
	results []*Result
}

func (l *resultList) add(r *Result) {
	l.results = append(l.results, r)
}

func (l *resultList) len() int {
	return len(l.results)
}

func (l *resultList) merge(other *resultList) {
	l.results = append(l.results, other.results...)
}

// script concatenates the result scripts, each followed by a newline
func (l *resultList) script() string {
	var sb strings.Builder
	for _, r := range l.results {
		sb.WriteString(r.Script)
		sb.WriteString("\n")
	}
	return sb.String()
}

var actions = map[ResultType]string{
	ResultTypeAdd:    "ADDED",
	ResultTypeChange: "ALTERED",
	ResultTypeDelete: "DROPPED",
}

// header kinds
var kinds = map[schema.ObjectType]string{
	schema.ObjectTypeTable:           "TABLE",
	schema.ObjectTypeView:            "VIEW",
	schema.ObjectTypeColumn:          "COLUMN",
	schema.ObjectTypeConstraint:      "CONSTRAINT",
	schema.ObjectTypeIndex:           "INDEX",
	schema.ObjectTypeTrigger:         "TRIGGER",
	schema.ObjectTypeStoredProcedure: "STORED PROCEDURE",
	schema.ObjectTypeFunction:        "FUNCTION",
	schema.ObjectTypeSequence:        "SEQUENCE",
	schema.ObjectTypePackage:         "PACKAGE",
	schema.ObjectTypeUserDataType:    "USER DATA TYPE",
	schema.ObjectTypeUserTableType:   "USER TABLE TYPE",
}

// header is the comment line that opens every result script
func header(t schema.ObjectType, rt ResultType, name string) string {
	return fmt.Sprintf("-- %s %s %s", actions[rt], kinds[t], name)
}

// withHeader joins a header line and a script body
func withHeader(h, body string) string {
	if body == "" {
		return h
	}
	return h + "\n" + body
}
