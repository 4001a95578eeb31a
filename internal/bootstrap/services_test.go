package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proseware/auth-api/config"
)

func testConfig(driver config.StoreDriver) *config.AppConfig {
	return &config.AppConfig{
		Auth: config.AuthConfig{
			JWTSecret:  "0123456789abcdef0123456789abcdef",
			TokenTTL:   time.Hour,
			BcryptCost: 10,
		},
		Store: config.StoreConfig{Driver: driver},
	}
}

func TestNewServices_MemoryDriver(t *testing.T) {
	container, err := NewServices(&ServiceDeps{Config: testConfig(config.StoreDriverMemory)})

	require.NoError(t, err)
	assert.NotNil(t, container.Users)
	assert.NotNil(t, container.Store)
	assert.NotNil(t, container.Tokens)
}

func TestNewServices_PostgresDriverRequiresDB(t *testing.T) {
	_, err := NewServices(&ServiceDeps{Config: testConfig(config.StoreDriverPostgres)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database connection")
}

func TestNewServices_RedisDriverRequiresClient(t *testing.T) {
	_, err := NewServices(&ServiceDeps{Config: testConfig(config.StoreDriverRedis)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection")
}

func TestNewServices_UnknownDriver(t *testing.T) {
	_, err := NewServices(&ServiceDeps{Config: testConfig(config.StoreDriver("sqlite"))})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}
