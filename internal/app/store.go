package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront-api/internal/config"
	"github.com/utafrali/storefront-api/internal/repository"
	"github.com/utafrali/storefront-api/internal/repository/instrumented"
	"github.com/utafrali/storefront-api/internal/repository/memory"
	"github.com/utafrali/storefront-api/internal/repository/mongodb"
	"github.com/utafrali/storefront-api/internal/repository/postgres"
	redisrepo "github.com/utafrali/storefront-api/internal/repository/redis"
	"github.com/utafrali/storefront-api/pkg/database"
)

// OpenStore connects the document store selected by STORE_DRIVER and wraps
// it with tracing and metrics. The mongo driver without DATABASE_URL yields
// a store that reports itself unavailable instead of failing startup.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*instrumented.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		if cfg.DatabaseURL == "" {
			logger.Warn("DATABASE_URL not set, document store unavailable")
			return instrumented.New(repository.Unavailable{}, "mongodb"), nil
		}
		client, err := database.NewMongoClient(ctx, cfg.Mongo(), logger)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to MongoDB", slog.String("database", cfg.DatabaseName))
		return instrumented.New(mongodb.NewStore(client, cfg.DatabaseName), "mongodb"), nil

	case config.DriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)
		database.RegisterPoolMetrics(pool, cfg.ServiceName)

		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return instrumented.New(store, "postgresql"), nil

	case config.DriverRedis:
		redisCfg, err := cfg.Redis()
		if err != nil {
			return nil, err
		}
		rdb, err := database.NewRedisClient(ctx, redisCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return instrumented.New(redisrepo.NewStore(rdb, cfg.RedisKeyPrefix), "redis"), nil

	case config.DriverMemory:
		logger.Warn("using in-memory document store, data is lost on restart")
		return instrumented.New(memory.NewStore(), "memory"), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
