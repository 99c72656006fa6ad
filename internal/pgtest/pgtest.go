// Package pgtest opens the database used by integration tests. Tests that
// call Open are skipped unless TEST_DATABASE_URL is set.
//
// Each caller gets its own schema, dropped and re-created from the embedded
// DDL, so packages tested in parallel do not see each other's rows. Point
// TEST_DATABASE_URL at a database you can throw away.
package pgtest

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopfront/shopfront-api/internal/postgres"
	"net/url"
	"os"
	"regexp"
	"testing"
	"time"
)

var validSchema = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Open returns a pool whose search_path is a fresh schema named schema.
func Open(tb testing.TB, schema string) *pgxpool.Pool {
	tb.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		tb.Skip("TEST_DATABASE_URL not set")
	}
	if !validSchema.MatchString(schema) {
		tb.Fatalf("invalid schema name %q", schema)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := postgres.Connect(ctx, dsn)
	if err != nil {
		tb.Fatalf("connect: %v", err)
	}
	defer admin.Close()
	ident := pgx.Identifier{schema}.Sanitize()
	if _, err := admin.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE; CREATE SCHEMA %s", ident, ident)); err != nil {
		tb.Fatalf("reset schema %s: %v", schema, err)
	}

	scoped, err := withSearchPath(dsn, schema)
	if err != nil {
		tb.Fatalf("TEST_DATABASE_URL: %v", err)
	}
	pool, err := postgres.Connect(ctx, scoped)
	if err != nil {
		tb.Fatalf("connect %s: %v", schema, err)
	}
	tb.Cleanup(pool.Close)

	if err := postgres.Migrate(ctx, pool); err != nil {
		tb.Fatalf("migrate %s: %v", schema, err)
	}
	return pool
}

// withSearchPath adds search_path to a URL-style DSN; pgx sends unknown
// query parameters to the server as runtime settings.
func withSearchPath(dsn, schema string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "", fmt.Errorf("want a postgres:// URL, got %q", dsn)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
