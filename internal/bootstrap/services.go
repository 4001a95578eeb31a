package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/proseware/auth-api/config"
	"github.com/proseware/auth-api/internal/auth"
	"github.com/proseware/auth-api/internal/data/memory"
	"github.com/proseware/auth-api/internal/data/postgres"
	"github.com/proseware/auth-api/internal/data/redisstore"
	"github.com/proseware/auth-api/internal/ports"
	"github.com/proseware/auth-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Users  *service.UserService
	Store  ports.UserStore
	Tokens *auth.TokenService
}

// ServiceDeps groups dependencies for service initialization. DB and
// RedisClient may be nil; only the configured store driver's backend is
// required.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client
	Logger      *slog.Logger
}

// NewServices wires the user store, password hasher, token service, and
// credential flows according to configuration.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config

	store, err := buildUserStore(deps)
	if err != nil {
		return ServiceContainer{}, err
	}

	users := service.NewUserService(service.UserServiceOptions{
		Store:  store,
		Hasher: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
	})
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	if deps.Logger != nil {
		deps.Logger.Info("services initialized",
			"store_driver", string(cfg.Store.Driver),
			"token_ttl", cfg.Auth.TokenTTL.String(),
		)
	}

	return ServiceContainer{Users: users, Store: store, Tokens: tokens}, nil
}

func buildUserStore(deps *ServiceDeps) (ports.UserStore, error) {
	switch deps.Config.Store.Driver {
	case config.StoreDriverPostgres:
		if deps.DB == nil {
			return nil, fmt.Errorf("store driver %q requires a database connection", config.StoreDriverPostgres)
		}
		return postgres.NewUserStore(deps.DB), nil
	case config.StoreDriverRedis:
		if deps.RedisClient == nil {
			return nil, fmt.Errorf("store driver %q requires a redis connection", config.StoreDriverRedis)
		}
		return redisstore.NewUserStore(deps.RedisClient), nil
	case config.StoreDriverMemory:
		if deps.Logger != nil {
			deps.Logger.Warn("using in-memory user store; records are lost on restart")
		}
		return memory.NewUserStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", deps.Config.Store.Driver)
	}
}
