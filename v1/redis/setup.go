package redis

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/orm/v1/logger"
)

var (
	// Nil reports a cache miss from Store.Get.
	Nil = errors.New("redis: key not found")

	// ErrClosed is returned by every call after Close.
	ErrClosed = errors.New("redis: client closed")
)

// IsNilError reports whether err is a cache miss.
func IsNilError(err error) bool { return errors.Is(err, Nil) }

// IsClosedError reports whether err came from a closed client.
func IsClosedError(err error) bool { return errors.Is(err, ErrClosed) }

// RedisClient wraps a go-redis client and implements Store.
type RedisClient struct {
	client *redis.Client
	cfg    Config
	log    logger.Logger
	closed atomic.Bool
}

var _ Store = (*RedisClient)(nil)

// Option configures a RedisClient.
type Option func(*RedisClient)

// WithLogger sets the logger for client lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(r *RedisClient) {
		if l != nil {
			r.log = l
		}
	}
}

// NewClient creates a client for a standalone Redis instance. No connection
// is made until the first command; call Ping to check reachability.
//
// Example:
//
//	client, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
func NewClient(cfg Config, opts ...Option) (*RedisClient, error) {
	cfg = cfg.withDefaults()
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid redis port %d", cfg.Port)
	}

	r := &RedisClient{cfg: cfg, log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(r)
	}

	r.client = redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	r.log.Info("redis client initialized", nil, map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})
	return r, nil
}

// Client returns the underlying go-redis client.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

// Config returns the effective configuration, defaults applied.
func (r *RedisClient) Config() Config {
	return r.cfg
}

// Ping checks that the server answers.
func (r *RedisClient) Ping(ctx context.Context) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.Ping(ctx).Err()
}

// Get returns the value stored at key, or Nil when the key does not exist.
func (r *RedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, Nil
	}
	return data, err
}

// Set stores value at key. A zero ttl keeps the key until it is deleted.
func (r *RedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// DeleteMatching removes every key matching the glob pattern and reports how
// many were removed. Keys are found with SCAN so the server is never blocked.
func (r *RedisClient) DeleteMatching(ctx context.Context, pattern string) (int64, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return r.client.Del(ctx, keys...).Result()
}

// Close closes the connection pool. Later calls do nothing.
func (r *RedisClient) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.log.Info("closing redis client", nil, nil)
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}
