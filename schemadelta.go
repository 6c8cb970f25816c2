// Package schemadelta provides a programmatic API for multi-dialect schema
// comparison. It compares two schema graphs, read from live databases or
// snapshot files, and returns the DDL script that migrates the base schema
// to the compare schema.
package schemadelta

import (
	"context"
	"log/slog"

	"github.com/schemadelta/schemadelta/internal/compare"
	"github.com/schemadelta/schemadelta/internal/fingerprint"
	"github.com/schemadelta/schemadelta/internal/ignore"
	"github.com/schemadelta/schemadelta/internal/reader"
	"github.com/schemadelta/schemadelta/internal/snapshot"
)

// Options configures a comparison.
type Options struct {
	Concurrency int           // Matched tables compared in parallel (default 1)
	Logger      *slog.Logger  // Debug logging (default: the process logger)
	Ignore      *IgnoreConfig // Objects left out of both sides (optional)
}

// Diff is the outcome of one comparison.
type Diff struct {
	Script  string           // The migration script, in emission order
	Results []*CompareResult // One record per difference, in emission order
}

// Empty reports whether the schemas were in sync.
func (d *Diff) Empty() bool {
	return len(d.Results) == 0
}

// Compare returns the DDL that turns base into target for dialect d.
func Compare(base, target *Schema, d Dialect, opts *Options) (*Diff, error) {
	var copts []compare.Option
	if opts != nil {
		base = opts.Ignore.Apply(base)
		target = opts.Ignore.Apply(target)
		if opts.Concurrency > 0 {
			copts = append(copts, compare.WithConcurrency(opts.Concurrency))
		}
		if opts.Logger != nil {
			copts = append(copts, compare.WithLogger(opts.Logger))
		}
	}
	c, err := compare.New(base, target, d, copts...)
	if err != nil {
		return nil, err
	}
	script := c.Execute()
	return &Diff{Script: script, Results: c.Results()}, nil
}

// ReadDatabase builds a schema graph from a live database. An empty owner
// reads the connection's default schema.
func ReadDatabase(ctx context.Context, d Dialect, dsn, owner string) (*Schema, error) {
	return reader.Load(ctx, d, dsn, owner)
}

// LoadSnapshot reads a JSON or YAML snapshot file.
func LoadSnapshot(path string) (*Schema, error) {
	return snapshot.Load(path)
}

// SaveSnapshot writes s as JSON or YAML, chosen by the file extension.
func SaveSnapshot(path string, s *Schema) error {
	return snapshot.Save(path, s)
}

// LoadIgnoreFile reads a .schemadeltaignore file. A missing file yields a
// nil config, which ignores nothing.
func LoadIgnoreFile(path string) (*IgnoreConfig, error) {
	return ignore.Load(path)
}

// Fingerprint returns the hex SHA-256 of a schema graph.
func Fingerprint(s *Schema) (string, error) {
	fp, err := fingerprint.Compute(s)
	if err != nil {
		return "", err
	}
	return fp.Hash, nil
}
