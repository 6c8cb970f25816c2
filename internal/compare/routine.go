package compare

import (
	"github.com/schemadelta/schemadelta/internal/ddl"
	"github.com/schemadelta/schemadelta/schema"
)

// batchState tracks whether the batch separator has been written during one
// Execute call
type batchState struct {
	separator string
	emitted   bool
}

// prefix returns the separator the first time a batched object is added to
// a non-empty result set, and "" afterwards
func (b *batchState) prefix(results *resultList) string {
	if b.emitted || b.separator == "" || results.len() == 0 {
		return ""
	}
	b.emitted = true
	return b.separator + "\n"
}

// objectKind describes how one kind of schema-level object is compared and
// scripted
type objectKind[T schema.Object] struct {
	objectType schema.ObjectType
	owner      func(T) string
	// equal reports whether base and compare need no script
	equal func(base, compare T) bool
	add   func(T) string
	drop  func(T) string
	// change scripts a modified object; nil means drop then add
	change func(base, compare T) string
	// batched objects must start a new batch on dialects with a separator
	batched bool
}

// compareObjects emits added and changed objects in compare order, then
// dropped objects in base order
func compareObjects[T schema.Object](k objectKind[T], base, compare []T, results *resultList, batch *batchState) {
	find := func(items []T, item T) (T, bool) {
		for _, candidate := range items {
			if candidate.ObjectName() == item.ObjectName() && k.owner(candidate) == k.owner(item) {
				return candidate, true
			}
		}
		var zero T
		return zero, false
	}
	emit := func(rt ResultType, item T, prefix, body string) {
		results.add(&Result{
			SchemaObjectType: k.objectType,
			ResultType:       rt,
			Name:             item.ObjectName(),
			SchemaOwner:      k.owner(item),
			Script:           prefix + withHeader(header(k.objectType, rt, item.ObjectName()), body),
		})
	}

	for _, item := range compare {
		original, exists := find(base, item)
		if !exists {
			prefix := ""
			if k.batched {
				prefix = batch.prefix(results)
			}
			emit(ResultTypeAdd, item, prefix, k.add(item))
			continue
		}
		if k.equal(original, item) {
			continue
		}
		if k.change != nil {
			emit(ResultTypeChange, item, "", k.change(original, item))
		} else {
			emit(ResultTypeChange, item, "", joinStatements(k.drop(original), k.add(item)))
		}
	}

	for _, item := range base {
		if _, exists := find(compare, item); exists {
			continue
		}
		emit(ResultTypeDelete, item, "", k.drop(item))
	}
}

func viewKind(w *ddl.Facade) objectKind[*schema.View] {
	return objectKind[*schema.View]{
		objectType: schema.ObjectTypeView,
		owner:      func(v *schema.View) string { return v.SchemaOwner },
		equal: func(a, b *schema.View) bool {
			return a.Sql == b.Sql || w.CompareView(a.Sql, b.Sql)
		},
		add:  w.AddView,
		drop: w.DropView,
	}
}

func procedureKind(w *ddl.Facade) objectKind[*schema.StoredProcedure] {
	return objectKind[*schema.StoredProcedure]{
		objectType: schema.ObjectTypeStoredProcedure,
		owner:      func(p *schema.StoredProcedure) string { return p.SchemaOwner },
		equal: func(a, b *schema.StoredProcedure) bool {
			return a.Sql == b.Sql || w.CompareProcedure(a.Sql, b.Sql)
		},
		add:     w.AddProcedure,
		drop:    w.DropProcedure,
		batched: true,
	}
}

func functionKind(w *ddl.Facade) objectKind[*schema.Function] {
	return objectKind[*schema.Function]{
		objectType: schema.ObjectTypeFunction,
		owner:      func(f *schema.Function) string { return f.SchemaOwner },
		equal: func(a, b *schema.Function) bool {
			return a.Sql == b.Sql || w.CompareProcedure(a.Sql, b.Sql)
		},
		add:     w.AddFunction,
		drop:    w.DropFunction,
		batched: true,
	}
}

// packages are replaced in place rather than dropped
func packageKind(w *ddl.Facade) objectKind[*schema.Package] {
	same := func(a, b string) bool { return a == b || w.CompareProcedure(a, b) }
	return objectKind[*schema.Package]{
		objectType: schema.ObjectTypePackage,
		owner:      func(p *schema.Package) string { return p.SchemaOwner },
		equal: func(a, b *schema.Package) bool {
			return same(a.Definition, b.Definition) && same(a.Body, b.Body)
		},
		add:     w.AddPackage,
		drop:    w.DropPackage,
		change:  func(_, p *schema.Package) string { return w.AddPackage(p) },
		batched: true,
	}
}

// sequences are only ever added or dropped
func sequenceKind(w *ddl.Facade) objectKind[*schema.Sequence] {
	return objectKind[*schema.Sequence]{
		objectType: schema.ObjectTypeSequence,
		owner:      func(s *schema.Sequence) string { return s.SchemaOwner },
		equal:      func(_, _ *schema.Sequence) bool { return true },
		add:        w.AddSequence,
		drop:       w.DropSequence,
	}
}
