package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/config"
	"github.com/gokatarajesh/find-the-ai/internal/daily"
	"github.com/gokatarajesh/find-the-ai/internal/db/postgres"
	"github.com/gokatarajesh/find-the-ai/internal/db/repository"
	"github.com/gokatarajesh/find-the-ai/internal/db/sqlite"
	"github.com/gokatarajesh/find-the-ai/internal/db/store"
)

// OpenStore connects the configured durable store. The sqlite store
// migrates itself; postgres expects cmd/migrator to have run.
func OpenStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (store.Querier, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		q, err := postgres.Open(ctx, cfg.Postgres.DSN(), cfg.Postgres.MaxConns)
		if err != nil {
			return nil, err
		}
		return q, nil
	case config.DriverSQLite:
		q, err := sqlite.Open(ctx, cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return q, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// OpenRedis returns nil when REDIS_ADDR is unset.
func OpenRedis(ctx context.Context, cfg *config.App) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// NewDailyService builds the day-set service over q, fronted by Redis when
// a client is given.
func NewDailyService(q store.Querier, redisClient *redis.Client, cfg *config.App, logger zerolog.Logger) *daily.Service {
	var cache daily.PairCache
	if redisClient != nil {
		cache = daily.NewRedisCache(redisClient, cfg.Redis.PairsTTL)
	}
	return daily.NewService(repository.NewDailySetRepository(q), cache, daily.ServiceOptions{
		MinPairs: cfg.Game.QuotesPerDay,
	}, logger)
}
