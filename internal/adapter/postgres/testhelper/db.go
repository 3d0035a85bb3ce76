// Package testhelper provides a shared PostgreSQL container and seed helpers
// for repository integration tests.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/inventory-backend/internal/adapter/postgres"
	"github.com/heartmarshall/inventory-backend/internal/config"
)

const (
	pgImage  = "postgres:17-alpine"
	pgUser   = "inventory"
	pgPass   = "inventory"
	pgDBName = "inventory_test"
)

var (
	setupOnce sync.Once
	dsn       string
	setupErr  error
)

// SetupTestDB returns a pool connected to a migrated database shared by the
// whole test binary. The first call starts a postgres container unless
// TEST_DATABASE_DSN points at an existing database. Skipped under -short.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: database tests need docker, skipped in -short mode")
	}

	setupOnce.Do(func() {
		dsn = os.Getenv("TEST_DATABASE_DSN")
		if dsn == "" {
			dsn, setupErr = startPostgres()
			if setupErr != nil {
				return
			}
		}
		setupErr = migrate(dsn)
	})
	if setupErr != nil {
		t.Fatalf("testhelper: database setup: %v", setupErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbConfig(dsn))
	if err != nil {
		t.Fatalf("testhelper: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// dbConfig mirrors the production pool settings at a size that suits
// parallel tests against a single container.
func dbConfig(dsn string) config.DatabaseConfig {
	return config.DatabaseConfig{
		DSN:             dsn,
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		ConnectAttempts: 3,
	}
}

func startPostgres() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPass,
				"POSTGRES_DB":       pgDBName,
			},
			// postgres logs readiness twice: once for the init run, once for the real server.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("resolve postgres endpoint: %w", err)
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", pgUser, pgPass, endpoint, pgDBName), nil
}

func migrate(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbConfig(dsn))
	if err != nil {
		return fmt.Errorf("open pool: %w", err)
	}
	defer pool.Close()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return postgres.Migrate(ctx, pool, quiet)
}
