package compare

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/schemadelta/schemadelta/internal/ddl"
	"github.com/schemadelta/schemadelta/schema"
)

// tableDiff compares one table present in both schemas
type tableDiff struct {
	writer  *ddl.Facade
	logger  *slog.Logger
	results *resultList

	base, compare *schema.Table
}

func (d *tableDiff) emit(t schema.ObjectType, rt ResultType, name, body string) {
	d.results.add(&Result{
		SchemaObjectType: t,
		ResultType:       rt,
		Name:             name,
		TableName:        d.compare.Name,
		SchemaOwner:      d.compare.SchemaOwner,
		Script:           withHeader(header(t, rt, d.compare.Name+"."+name), body),
	})
}

// execute threads one working copy of the base table through the column and
// constraint comparisons; index and trigger DDL sees the final state
func (d *tableDiff) execute() {
	d.logger.Debug("Comparing table", "table", d.compare.Name, "owner", d.compare.SchemaOwner)
	w := newWorkingTable(d.base)
	w = d.compareColumns(w)
	w = d.compareConstraints(w)
	d.compareIndexes(w)
	d.compareTriggers(w)
}

type tableComparator struct {
	writer      *ddl.Facade
	logger      *slog.Logger
	concurrency int
}

// execute emits new and changed tables in compare order, then dropped tables
// with referencing tables first, then the foreign keys and triggers of the
// new tables so that every referenced table exists before they run
func (c *tableComparator) execute(baseTables, compareTables []*schema.Table, results *resultList) error {
	baseByKey := make(map[string]*schema.Table, len(baseTables))
	for _, t := range baseTables {
		baseByKey[objectKey(t.SchemaOwner, t.Name)] = t
	}
	compareKeys := make(map[string]bool, len(compareTables))
	for _, t := range compareTables {
		compareKeys[objectKey(t.SchemaOwner, t.Name)] = true
	}

	buffers := make([]*resultList, len(compareTables))
	var added []*schema.Table

	g := new(errgroup.Group)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for i, t := range compareTables {
		buffers[i] = &resultList{}
		base, exists := baseByKey[objectKey(t.SchemaOwner, t.Name)]
		if !exists {
			added = append(added, t)
			buffers[i].add(&Result{
				SchemaObjectType: schema.ObjectTypeTable,
				ResultType:       ResultTypeAdd,
				Name:             t.Name,
				SchemaOwner:      t.SchemaOwner,
				Script:           withHeader("-- NEW TABLE "+t.Name, c.writer.AddTable(t)),
			})
			continue
		}

		d := &tableDiff{writer: c.writer, logger: c.logger, results: buffers[i], base: base, compare: t}
		if c.concurrency <= 1 {
			d.execute()
			continue
		}
		g.Go(func() error {
			d.execute()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, b := range buffers {
		results.merge(b)
	}

	var dropped []*schema.Table
	for _, t := range baseTables {
		if !compareKeys[objectKey(t.SchemaOwner, t.Name)] {
			dropped = append(dropped, t)
		}
	}
	for _, t := range dropOrder(dropped) {
		results.add(&Result{
			SchemaObjectType: schema.ObjectTypeTable,
			ResultType:       ResultTypeDelete,
			Name:             t.Name,
			SchemaOwner:      t.SchemaOwner,
			Script:           withHeader(header(schema.ObjectTypeTable, ResultTypeDelete, t.Name), c.writer.DropTable(t)),
		})
	}

	for _, t := range added {
		deferred := &tableDiff{writer: c.writer, logger: c.logger, results: results, base: t, compare: t}
		// a rebuilding dialect recreates the table's triggers with the
		// constraint; they are emitted once, below
		withoutTriggers := *t
		withoutTriggers.Triggers = nil
		for _, fk := range t.ForeignKeys {
			deferred.emit(schema.ObjectTypeConstraint, ResultTypeAdd, fk.Name, c.writer.AddConstraint(&withoutTriggers, fk))
		}
		for _, tr := range t.Triggers {
			deferred.emit(schema.ObjectTypeTrigger, ResultTypeAdd, tr.Name, c.writer.AddTrigger(t, tr))
		}
	}
	return nil
}
