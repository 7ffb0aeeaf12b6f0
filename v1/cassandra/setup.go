package cassandra

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gocql/gocql"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
)

// Cassandra is a connector over a gocql session.
//
// ExecuteQuery reads the whole result page by page before returning, so
// engine errors surface from ExecuteQuery itself rather than from the rows.
type Cassandra struct {
	cfg     Config
	session *gocql.Session
	log     logger.Logger
	closed  atomic.Bool
}

var _ connector.Connector = (*Cassandra)(nil)

// Option configures a Cassandra instance.
type Option func(*Cassandra)

// WithLogger sets the logger for session lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(c *Cassandra) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCassandra creates a session to the cluster described by cfg.
func NewCassandra(cfg Config, opts ...Option) (*Cassandra, error) {
	c := &Cassandra{cfg: cfg, log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(c)
	}

	cluster, err := newCluster(cfg)
	if err != nil {
		return nil, err
	}

	session, err := cluster.CreateSession()
	if err != nil && cfg.ProtoVersion == 0 {
		c.log.Warn("cassandra session failed with protocol 4, retrying with protocol 3", err, nil)
		cluster.ProtoVersion = 3
		session, err = cluster.CreateSession()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create cassandra session: %w", err)
	}

	c.session = session
	c.log.Info("connected to cassandra cluster", nil, map[string]interface{}{
		"hosts":    strings.Join(cfg.Hosts, ","),
		"keyspace": cfg.Keyspace,
	})
	return c, nil
}

// newCluster builds the gocql cluster configuration, applying defaults for
// unset values.
func newCluster(cfg Config) (*gocql.ClusterConfig, error) {
	if len(cfg.Hosts) == 0 {
		return nil, fmt.Errorf("cassandra: at least one host is required")
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Port = defaultPort
	if cfg.Port > 0 {
		cluster.Port = cfg.Port
	}
	cluster.Keyspace = cfg.Keyspace
	cluster.CQLVersion = defaultCQLVersion
	cluster.ProtoVersion = defaultProtoVersion
	if cfg.ProtoVersion > 0 {
		cluster.ProtoVersion = cfg.ProtoVersion
	}

	consistency := gocql.Quorum
	if cfg.Consistency != "" {
		parsed, err := gocql.ParseConsistencyWrapper(cfg.Consistency)
		if err != nil {
			return nil, fmt.Errorf("cassandra: %w", err)
		}
		consistency = parsed
	}
	cluster.Consistency = consistency

	cluster.Timeout = defaultTimeout
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	cluster.ConnectTimeout = cluster.Timeout
	if cfg.ConnectTimeout > 0 {
		cluster.ConnectTimeout = cfg.ConnectTimeout
	}

	cluster.NumConns = defaultNumConns
	if cfg.NumConns > 0 {
		cluster.NumConns = cfg.NumConns
	}
	retries := defaultRetries
	if cfg.Retries > 0 {
		retries = cfg.Retries
	}
	cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: retries}
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	cluster.SocketKeepalive = defaultKeepalive

	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	return cluster, nil
}

// Session returns the underlying gocql session.
func (c *Cassandra) Session() *gocql.Session {
	return c.session
}

// ExecuteQuery runs a CQL statement and returns all of its rows.
func (c *Cassandra) ExecuteQuery(ctx context.Context, text string, args ...any) (connector.Rows, error) {
	if c.closed.Load() {
		return nil, connector.Wrap(command.CQL.Name, "query", text, connector.ErrClosed)
	}

	iter := c.session.Query(text, args...).WithContext(ctx).Iter()
	columns := make([]string, 0, len(iter.Columns()))
	for _, col := range iter.Columns() {
		columns = append(columns, col.Name)
	}

	var data [][]any
	for {
		row := make(map[string]interface{}, len(columns))
		if !iter.MapScan(row) {
			break
		}
		values := make([]any, len(columns))
		for i, name := range columns {
			values[i] = row[name]
		}
		data = append(data, values)
	}
	if err := iter.Close(); err != nil {
		return nil, connector.Wrap(command.CQL.Name, "query", text, err)
	}
	return connector.NewStaticRows(columns, data...), nil
}

// ExecuteNonQuery runs a CQL statement. Cassandra does not report affected
// rows, so the count is always 0.
func (c *Cassandra) ExecuteNonQuery(ctx context.Context, text string, args ...any) (int64, error) {
	if c.closed.Load() {
		return 0, connector.Wrap(command.CQL.Name, "exec", text, connector.ErrClosed)
	}
	if err := c.session.Query(text, args...).WithContext(ctx).Exec(); err != nil {
		return 0, connector.Wrap(command.CQL.Name, "exec", text, err)
	}
	return 0, nil
}

// Dialect returns command.CQL.
func (c *Cassandra) Dialect() command.Dialect {
	return command.CQL
}

// Close closes the session. Later calls do nothing.
func (c *Cassandra) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.session.Close()
	c.log.Info("cassandra session closed", nil, nil)
	return nil
}
