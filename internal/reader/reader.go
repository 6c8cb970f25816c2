// Package reader builds schema graphs from live databases by querying each
// dialect's catalog views.
package reader

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/internal/logger"
	"github.com/schemadelta/schemadelta/schema"
)

// ErrUnsupportedDialect is returned for dialects without a catalog reader
var ErrUnsupportedDialect = errors.New("no catalog reader for dialect")

// Reader reads one owner's objects from a database connection
type Reader struct {
	db      *sql.DB
	dialect dialect.Dialect
	catalog *catalog
	logger  *slog.Logger
}

// New returns a Reader for db, which must be connected to a d database
func New(db *sql.DB, d dialect.Dialect) (*Reader, error) {
	c, ok := catalogs[d]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, d)
	}
	return &Reader{db: db, dialect: d, catalog: c, logger: logger.Get()}, nil
}

// Open connects to dsn with the driver registered for d and pings it
func Open(ctx context.Context, d dialect.Dialect, dsn string) (*sql.DB, error) {
	log := logger.Get()
	driver := d.DriverName()
	if driver == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDialect, d)
	}

	log.Debug("Attempting database connection", "dialect", d.String(), "driver", driver)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Debug("Database connection failed", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		log.Debug("Database ping failed", "error", err)
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Debug("Database connection established successfully")
	return db, nil
}

// Load opens dsn, reads owner and closes the connection
func Load(ctx context.Context, d dialect.Dialect, dsn, owner string) (*schema.Schema, error) {
	db, err := Open(ctx, d, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	r, err := New(db, d)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, owner)
}

type step struct {
	what  string
	query string
	scan  func(*sql.Rows) error
}

// Read returns the objects owned by owner. An empty owner reads the
// connection's default schema.
func (r *Reader) Read(ctx context.Context, owner string) (*schema.Schema, error) {
	owner, err := r.resolveOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Reading catalog", "dialect", r.dialect.String(), "owner", owner)

	b := newBuilder(r.dialect, owner)
	args := r.args(owner)
	c := r.catalog

	steps := []step{
		{"tables", c.tables, b.scanTable},
		{"columns", c.columns, b.scanColumn},
	}
	for _, q := range c.constraints {
		steps = append(steps, step{"constraints", q, b.scanConstraint})
	}
	steps = append(steps,
		step{"indexes", c.indexes, b.scanIndex},
		step{"triggers", c.triggers, b.scanTrigger},
		step{"views", c.views, b.scanView},
		step{"routines", c.routines, b.scanRoutine},
		step{"sources", c.sources, b.scanSource},
		step{"sequences", c.sequences, b.scanSequence},
		step{"user data types", c.userDataTypes, b.scanUserDataType},
		step{"table types", c.tableTypes, b.scanTableTypeColumn},
	)

	for _, step := range steps {
		if step.query == "" {
			continue
		}
		if err := r.queryRows(ctx, step.what, step.query, args, step.scan); err != nil {
			return nil, err
		}
	}

	s := b.build()
	r.logger.Debug("Catalog read",
		"tables", len(s.Tables),
		"views", len(s.Views),
		"procedures", len(s.StoredProcedures),
		"functions", len(s.Functions))
	return s, nil
}

func (r *Reader) resolveOwner(ctx context.Context, owner string) (string, error) {
	if owner != "" || r.catalog.currentOwner == "" {
		return owner, nil
	}
	if err := r.db.QueryRowContext(ctx, r.catalog.currentOwner).Scan(&owner); err != nil {
		return "", fmt.Errorf("failed to query default owner: %w", err)
	}
	return owner, nil
}

func (r *Reader) args(owner string) []any {
	if r.catalog.currentOwner == "" {
		return nil
	}
	return []any{owner}
}

// queryRows runs query and hands every row to scan, logging the statement
// when debug output is enabled
func (r *Reader) queryRows(ctx context.Context, what, query string, args []any, scan func(*sql.Rows) error) error {
	debug := logger.IsDebug()
	if debug {
		r.logger.Debug("Executing SQL", "description", what, "sql", query)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if debug {
			r.logger.Debug("SQL execution failed", "description", what, "error", err)
		}
		return fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("failed to scan %s: %w", what, err)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", what, err)
	}
	if debug {
		r.logger.Debug("SQL execution succeeded", "description", what, "rows", n)
	}
	return nil
}
