package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

// Store is the key-value surface CachedProvider needs. RedisClient
// implements it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteMatching(ctx context.Context, pattern string) (int64, error)
}

// CachedProvider is a schema.Provider that keeps catalog reads of another
// provider in a Store.
//
// Listings are cached unfiltered and the include filter is applied on every
// call, so one entry serves every filter. A failing store never fails a
// read: the error is logged and the inner provider answers. Errors of the
// inner provider are returned unchanged and nothing is cached for them.
type CachedProvider struct {
	inner    schema.Provider
	store    Store
	prefix   string
	ttl      time.Duration
	log      logger.Logger
	observer observability.Observer
}

var _ schema.Provider = (*CachedProvider)(nil)

// CacheOption configures a CachedProvider.
type CacheOption func(*CachedProvider)

// WithKeyPrefix sets the namespace of cache keys.
func WithKeyPrefix(prefix string) CacheOption {
	return func(c *CachedProvider) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithTTL sets the lifetime of cache entries. Zero keeps entries until
// Invalidate removes them.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachedProvider) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger used for store failures.
func WithCacheLogger(l logger.Logger) CacheOption {
	return func(c *CachedProvider) {
		if l != nil {
			c.log = l
		}
	}
}

// WithObserver reports every lookup, with a "hit" metadata flag.
func WithObserver(o observability.Observer) CacheOption {
	return func(c *CachedProvider) {
		c.observer = o
	}
}

// NewCachedProvider wraps inner with a cache kept in store.
func NewCachedProvider(inner schema.Provider, store Store, opts ...CacheOption) *CachedProvider {
	c := &CachedProvider{
		inner:  inner,
		store:  store,
		prefix: DefaultKeyPrefix,
		ttl:    DefaultTTL,
		log:    logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedProvider) key(kind, database string, object ...string) string {
	parts := append([]string{c.prefix, kind, database}, object...)
	return strings.Join(parts, ":")
}

// GetTables returns the cached table listing of database.
func (c *CachedProvider) GetTables(ctx context.Context, database string, filter ...string) ([]schema.Table, error) {
	all, err := cached(ctx, c, "tables", database, "", func() ([]schema.Table, error) {
		return c.inner.GetTables(ctx, database)
	})
	if err != nil {
		return nil, err
	}
	return schema.FilterByName(all, filter, func(t schema.Table) string { return t.Name }), nil
}

// GetViews returns the cached view listing of database.
func (c *CachedProvider) GetViews(ctx context.Context, database string, filter ...string) ([]schema.View, error) {
	all, err := cached(ctx, c, "views", database, "", func() ([]schema.View, error) {
		return c.inner.GetViews(ctx, database)
	})
	if err != nil {
		return nil, err
	}
	return schema.FilterByName(all, filter, func(v schema.View) string { return v.Name }), nil
}

// GetColumns returns the cached columns of table.
func (c *CachedProvider) GetColumns(ctx context.Context, database, table string) ([]schema.Column, error) {
	return cached(ctx, c, "columns", database, table, func() ([]schema.Column, error) {
		return c.inner.GetColumns(ctx, database, table)
	})
}

// GetConstraints returns the cached constraints of table.
func (c *CachedProvider) GetConstraints(ctx context.Context, database, table string) ([]schema.Constraint, error) {
	return cached(ctx, c, "constraints", database, table, func() ([]schema.Constraint, error) {
		return c.inner.GetConstraints(ctx, database, table)
	})
}

// GetStoredProcedures returns the cached routine listing of database.
func (c *CachedProvider) GetStoredProcedures(ctx context.Context, database string, filter ...string) ([]schema.StoredProcedure, error) {
	all, err := cached(ctx, c, "procedures", database, "", func() ([]schema.StoredProcedure, error) {
		return c.inner.GetStoredProcedures(ctx, database)
	})
	if err != nil {
		return nil, err
	}
	return schema.FilterByName(all, filter, func(p schema.StoredProcedure) string { return p.Name }), nil
}

// GetParameters returns the cached parameters of routine.
func (c *CachedProvider) GetParameters(ctx context.Context, database, routine string) ([]schema.Parameter, error) {
	return cached(ctx, c, "parameters", database, routine, func() ([]schema.Parameter, error) {
		return c.inner.GetParameters(ctx, database, routine)
	})
}

// Invalidate drops every cached entry of database, for example after a
// migration has changed its schema.
func (c *CachedProvider) Invalidate(ctx context.Context, database string) (int64, error) {
	var n int64
	for _, pattern := range []string{c.key("*", database), c.key("*", database, "*")} {
		removed, err := c.store.DeleteMatching(ctx, pattern)
		if err != nil {
			return n, err
		}
		n += removed
	}
	c.log.Debug("schema cache invalidated", nil, map[string]interface{}{
		"database": database,
		"removed":  n,
	})
	return n, nil
}

// Close closes the inner provider. The store is owned by the caller.
func (c *CachedProvider) Close() error {
	return c.inner.Close()
}

// cached answers from the store when it holds key and otherwise asks load,
// storing a successful result.
func cached[T any](ctx context.Context, c *CachedProvider, kind, database, object string, load func() ([]T, error)) ([]T, error) {
	key := c.key(kind, database)
	if object != "" {
		key = c.key(kind, database, object)
	}
	start := time.Now()

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var out []T
		decodeErr := json.Unmarshal(data, &out)
		if decodeErr == nil && out != nil {
			c.observeOperation(kind, database, object, time.Since(start), nil, int64(len(out)), true)
			return out, nil
		}
		c.log.Warn("discarding unreadable schema cache entry", decodeErr, map[string]interface{}{"key": key})
	case !IsNilError(err):
		c.log.Warn("schema cache read failed", err, map[string]interface{}{"key": key})
	}

	out, err := load()
	if err != nil {
		c.observeOperation(kind, database, object, time.Since(start), err, 0, false)
		return nil, err
	}
	c.observeOperation(kind, database, object, time.Since(start), nil, int64(len(out)), false)

	encoded, err := json.Marshal(out)
	if err == nil {
		err = c.store.Set(ctx, key, encoded, c.ttl)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Warn("schema cache write failed", err, map[string]interface{}{"key": key})
	}
	return out, nil
}
