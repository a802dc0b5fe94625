package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/konsiyer/dashboard/internal/config"
)

// Module wires the optional Redis client and the snapshot cache.
var Module = fx.Options(
	fx.Provide(newRedisClient),
	fx.Provide(newSnapshotCache),
)

type redisParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle fx.Lifecycle
}

// newRedisClient returns nil when no Redis address is configured; the cache
// treats a nil client as "caching disabled".
func newRedisClient(p redisParams) *redis.Client {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("redis address not configured, snapshot caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     p.Config.RedisAddress,
		Password: p.Config.RedisPassword,
		DB:       p.Config.RedisDB,
	})

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				p.Logger.Warn("redis ping failed, cache will degrade to misses",
					slog.String("addr", p.Config.RedisAddress),
					slog.String("error", err.Error()),
				)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	return client
}

type cacheParams struct {
	fx.In

	Client *redis.Client `optional:"true"`
	Config *config.Config
	Logger *slog.Logger
}

func newSnapshotCache(p cacheParams) *SnapshotCache {
	return NewSnapshotCache(p.Client, p.Config.SnapshotTTL, p.Logger)
}
