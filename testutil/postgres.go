// Package testutil starts throwaway databases for integration tests
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var suppressedLogger = log.New(io.Discard, "", 0)

// postgresVersion reads SCHEMADELTA_POSTGRES_VERSION, defaulting to 17
func postgresVersion() string {
	if version := os.Getenv("SCHEMADELTA_POSTGRES_VERSION"); version != "" {
		return version
	}
	return "17"
}

// Postgres is a running PostgreSQL container with an open connection
type Postgres struct {
	Container testcontainers.Container
	DSN       string
	Conn      *sql.DB
}

// StartPostgres starts a PostgreSQL container and registers its cleanup
// with t. The test is skipped in -short mode or when Docker is unavailable.
func StartPostgres(ctx context.Context, t *testing.T) *Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	container, err := postgres.Run(ctx,
		"postgres:"+postgresVersion()+"-alpine",
		postgres.WithDatabase("schemadelta"),
		postgres.WithUsername("schemadelta"),
		postgres.WithPassword("schemadelta"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
		testcontainers.WithLogger(suppressedLogger),
	)
	if err != nil {
		t.Fatalf("Failed to start container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return &Postgres{Container: container, DSN: dsn, Conn: conn}
}

// Exec runs setup statements, failing the test on error
func (p *Postgres) Exec(ctx context.Context, t *testing.T, statements string) {
	t.Helper()
	if _, err := p.Conn.ExecContext(ctx, statements); err != nil {
		t.Fatalf("Failed to run setup SQL: %v", err)
	}
}
