// Package redis caches schema catalog reads in Redis.
//
// Reading a catalog is a handful of round trips per table. Callers that
// build their entity bindings on every start, or that inspect a schema
// repeatedly, can put a CachedProvider in front of any schema.Provider so
// that repeated reads are answered from Redis.
//
// # Direct Usage (Without FX)
//
//	client, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	provider, err := postgres.NewSchemaProvider(pg)
//	if err != nil {
//		return err
//	}
//	cached := redis.NewCachedProvider(provider, client, redis.WithTTL(time.Hour))
//	defer cached.Close()
//
//	cols, err := cached.GetColumns(ctx, "public", "Orders")
//
// # FX Module Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    database.FXModule,
//	    redis.FXModule,
//	    fx.Decorate(redis.DecorateSchemaProvider),
//	    fx.Provide(loadDatabaseConfig, loadRedisConfig),
//	)
//
// # Keys and Invalidation
//
// Keys have the form <prefix>:<kind>:<database>[:<object>], for example
// "orm:schema:columns:public:Orders". Listings are stored unfiltered and the
// include filter is applied on read. Invalidate removes every entry of one
// database; entries also expire after Config.TTL.
//
// # Failure Handling
//
// A Redis failure is logged and the read falls through to the wrapped
// provider. Errors of the wrapped provider are returned unchanged and are
// never cached.
package redis
