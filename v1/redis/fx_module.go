package redis

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

// FXModule is an fx.Module that provides the Redis client and manages its
// lifecycle. Put the cache in front of the application's schema.Provider
// with fx.Decorate(redis.DecorateSchemaProvider).
//
// Usage:
//
//	app := fx.New(
//	    database.FXModule,
//	    redis.FXModule,
//	    fx.Decorate(redis.DecorateSchemaProvider),
//	    // other modules...
//	)
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RedisParams groups the dependencies needed to create a Redis client
type RedisParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewClientWithDI creates a new Redis client using dependency injection.
func NewClientWithDI(params RedisParams) (*RedisClient, error) {
	return NewClient(params.Config, WithLogger(params.Logger))
}

// RedisLifecycleParams groups the dependencies needed for Redis lifecycle management
type RedisLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *RedisClient
	Logger    logger.Logger `optional:"true"`
}

// RegisterRedisLifecycle pings the server on start and closes the client on
// stop.
func RegisterRedisLifecycle(params RedisLifecycleParams) {
	log := params.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Ping(ctx); err != nil {
				log.Warn("failed to ping redis on startup", err, nil)
				return err
			}
			log.Info("redis client started and healthy", nil, nil)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}

// CacheParams groups the dependencies of DecorateSchemaProvider.
type CacheParams struct {
	fx.In

	Provider schema.Provider
	Client   *RedisClient
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// DecorateSchemaProvider wraps the provided schema.Provider with a
// CachedProvider backed by the Redis client, using the client's key prefix
// and TTL.
func DecorateSchemaProvider(params CacheParams) schema.Provider {
	cfg := params.Client.Config()
	return NewCachedProvider(params.Provider, params.Client,
		WithKeyPrefix(cfg.KeyPrefix),
		WithTTL(cfg.TTL),
		WithCacheLogger(params.Logger),
		WithObserver(params.Observer),
	)
}
