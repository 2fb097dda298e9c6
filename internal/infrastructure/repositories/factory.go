package repositories

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hostdeck/internal/core/ports"
	"hostdeck/internal/infrastructure/repositories/memory"
	redisrepo "hostdeck/internal/infrastructure/repositories/redis"
	"hostdeck/pkg/config"
)

// RepositoryFactory hands out repositories for the demo server. When Redis
// is enabled and reachable the user and metric stores live there; anything
// else, and everything on a failed connection, falls back to memory.
type RepositoryFactory struct {
	useRedis    bool
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewRepositoryFactory(cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	factory := &RepositoryFactory{
		useRedis: cfg.Redis.Enabled,
		logger:   logger,
	}

	if cfg.Redis.Enabled {
		client, err := redisrepo.NewRedisClient(
			cfg.Redis.Address,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
			logger,
		)
		if err != nil {
			logger.Warn("failed to connect to Redis, falling back to memory repositories", zap.Error(err))
			factory.useRedis = false
		} else {
			factory.redisClient = client
			logger.Info("using Redis repositories")
		}
	}

	if !factory.useRedis {
		logger.Info("using memory repositories")
	}

	return factory, nil
}

func (f *RepositoryFactory) CreateUserRepository() ports.UserRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisUserRepository(f.redisClient)
	}
	return memory.NewMemoryUserRepository()
}

func (f *RepositoryFactory) CreateMetricRepository() ports.MetricRepository {
	if f.useRedis && f.redisClient != nil {
		return redisrepo.NewRedisMetricRepository(f.redisClient)
	}
	return memory.NewMemoryMetricRepository()
}

// Server, project and alert tables stay in memory: the demo data is
// re-seeded on every start anyway.
func (f *RepositoryFactory) CreateServerRepository() ports.ServerRepository {
	return memory.NewMemoryServerRepository()
}

func (f *RepositoryFactory) CreateProjectRepository() ports.ProjectRepository {
	return memory.NewMemoryProjectRepository()
}

func (f *RepositoryFactory) CreateAlertRuleRepository() ports.AlertRuleRepository {
	return memory.NewMemoryAlertRuleRepository()
}

func (f *RepositoryFactory) CreateAlertEventRepository() ports.AlertEventRepository {
	return memory.NewMemoryAlertEventRepository()
}

func (f *RepositoryFactory) Close() error {
	if f.redisClient != nil {
		return redisrepo.CloseRedisClient(f.redisClient)
	}
	return nil
}

func (f *RepositoryFactory) HealthCheck(ctx context.Context) error {
	if f.useRedis && f.redisClient != nil {
		return f.redisClient.Ping(ctx).Err()
	}
	return nil
}
