// Package testutil provides database and Redis setup helpers for
// integration tests. Tests are skipped when the backing service is not
// reachable unless TEST_REQUIRE_INFRA is set.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/proseware/auth-api/internal/migrate"
)

// TestingTB is the subset of *testing.T and *testing.B used here.
type TestingTB interface {
	Helper()
	Skip(args ...interface{})
	Skipf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	Cleanup(func())
}

// TestDBConfig holds connection parameters for the test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig returns test DB settings from env with local defaults.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "5432"),
		User:     getEnvOrDefault("TEST_DB_USER", "authd"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "authd"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "authd_test"),
	}
}

// SetupTestDB opens the test database, runs migrations, and truncates
// the users table. The connection is closed via t.Cleanup.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()

	cfg := DefaultTestDBConfig()
	hostPort := net.JoinHostPort(cfg.Host, cfg.Port)
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		cfg.User, cfg.Password, hostPort, cfg.DBName)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatal("Failed to open database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		if requireInfra() {
			t.Fatalf("PostgreSQL not available for testing at %s: %v", hostPort, pingErr)
		}
		t.Skipf("PostgreSQL not available for testing at %s: %v", hostPort, pingErr)
	}

	if migrateErr := migrate.Run(ctx, db); migrateErr != nil {
		t.Fatal("Failed to run migrations:", migrateErr)
	}

	if _, cleanErr := db.ExecContext(ctx, "DELETE FROM users"); cleanErr != nil {
		t.Fatalf("Failed to clean up users table: %v", cleanErr)
	}

	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("warning: failed to close test database: %v", closeErr)
		}
	})
	return db
}

// SetupTestRedis opens the test Redis instance and flushes its DB.
// The client is closed via t.Cleanup.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := getEnvOrDefault("TEST_REDIS_ADDR", "localhost:6379")
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   9, // dedicated test DB index
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if requireInfra() {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		if closeErr := client.Close(); closeErr != nil {
			t.Logf("warning: failed to close test redis client: %v", closeErr)
		}
	})
	return client
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireInfra() bool {
	v := strings.ToLower(os.Getenv("TEST_REQUIRE_INFRA"))
	return v == "1" || v == "true" || v == "yes"
}
