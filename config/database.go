package config

import (
	"fmt"
	"strings"
)

// StoreDriver selects the backend used for persistent user records.
type StoreDriver string

const (
	// StoreDriverPostgres stores users in PostgreSQL.
	StoreDriverPostgres StoreDriver = "postgres"
	// StoreDriverRedis stores users as JSON documents in Redis.
	StoreDriverRedis StoreDriver = "redis"
	// StoreDriverMemory keeps users in process memory (development only).
	StoreDriverMemory StoreDriver = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreDriver.
func (d *StoreDriver) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "postgres", "redis", "memory":
		*d = StoreDriver(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreDriver: %q (valid options: postgres, redis, memory)", v)
	}
}

// StoreConfig selects the user store backend.
type StoreConfig struct {
	// Driver determines which user store implementation to use.
	Driver StoreDriver `env:"STORE_DRIVER" envDefault:"postgres"`
}

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"authd"`
	Password string `env:"PASSWORD"                envDefault:"authd"`
	Name     string `env:"NAME"                    envDefault:"authd"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the Redis-backed user store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
