// Package compare computes the differences between a base and a compare
// schema and scripts the DDL that migrates the base to the compare schema.
package compare

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/schemadelta/schemadelta/internal/ddl"
	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/internal/logger"
	"github.com/schemadelta/schemadelta/schema"
)

// SchemaComparator compares two schemas for one target dialect
type SchemaComparator struct {
	base    *schema.Schema
	compare *schema.Schema
	writer  *ddl.Facade
	logger  *slog.Logger

	concurrency int
	results     []*Result
}

// Option configures a SchemaComparator
type Option func(*SchemaComparator)

// WithConcurrency compares up to n matched tables at once. Output does not
// depend on n.
func WithConcurrency(n int) Option {
	return func(c *SchemaComparator) {
		c.concurrency = n
	}
}

// WithLogger replaces the global logger
func WithLogger(l *slog.Logger) Option {
	return func(c *SchemaComparator) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a comparator that migrates base into compare using DDL for d.
// A nil schema is treated as empty.
func New(base, compare *schema.Schema, d dialect.Dialect, opts ...Option) (*SchemaComparator, error) {
	writer, err := ddl.NewFacade(d)
	if err != nil {
		return nil, fmt.Errorf("failed to create DDL writer: %w", err)
	}
	return NewWithWriter(base, compare, writer, opts...), nil
}

// NewWithWriter returns a comparator that scripts through writer
func NewWithWriter(base, compare *schema.Schema, writer *ddl.Facade, opts ...Option) *SchemaComparator {
	if base == nil {
		base = &schema.Schema{}
	}
	if compare == nil {
		compare = &schema.Schema{}
	}
	c := &SchemaComparator{
		base:        base,
		compare:     compare,
		writer:      writer,
		logger:      logger.Get(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs the comparison and returns the migration script. Each call
// starts from an empty result list, so repeated calls return the same text.
func (c *SchemaComparator) Execute() string {
	results := &resultList{}
	batch := &batchState{separator: c.writer.RunStatements()}

	c.logger.Debug("Comparing schemas",
		"dialect", c.writer.Dialect().String(),
		"base_tables", len(c.base.Tables),
		"compare_tables", len(c.compare.Tables))

	compareObjects(userDataTypeKind(c.writer), c.base.UserDataTypes, c.compare.UserDataTypes, results, batch)
	compareObjects(userTableTypeKind(c.writer), c.base.UserDefinedTableTypes, c.compare.UserDefinedTableTypes, results, batch)
	compareObjects(sequenceKind(c.writer), c.base.Sequences, c.compare.Sequences, results, batch)

	tables := &tableComparator{writer: c.writer, logger: c.logger, concurrency: c.concurrency}
	if err := tables.execute(c.base.Tables, sortTablesByDependency(c.compare.Tables), results); err != nil {
		// table comparisons do not fail; errgroup is only used for fan-out
		c.logger.Error("Table comparison failed", "error", err)
	}

	compareObjects(viewKind(c.writer), c.base.Views, sortViewsByDependency(c.compare.Views), results, batch)
	compareObjects(functionKind(c.writer), c.base.Functions, c.compare.Functions, results, batch)
	compareObjects(procedureKind(c.writer), c.base.StoredProcedures, c.compare.StoredProcedures, results, batch)
	compareObjects(packageKind(c.writer), c.base.Packages, c.compare.Packages, results, batch)

	c.results = results.results
	c.logger.Debug("Comparison finished", "results", len(c.results))
	return results.script()
}

// Results returns the results of the last Execute call
func (c *SchemaComparator) Results() []*Result {
	return slices.Clone(c.results)
}
