package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
)

// Postgres is a connector to a PostgreSQL server with connection monitoring
// and automatic reconnection.
//
// Concurrency: the active `*gorm.DB` pointer is stored in an atomic pointer and can be
// swapped during reconnection without blocking readers. Every statement runs
// on the pool that is current when it starts.
type Postgres struct {
	cfg             Config
	client          atomic.Pointer[gorm.DB]
	conn            *connector.SQL
	log             logger.Logger
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

var (
	_ connector.Connector = (*Postgres)(nil)
	_ connector.Preparer  = (*Postgres)(nil)
)

// Option configures a Postgres instance.
type Option func(*Postgres)

// WithLogger sets the logger for connection lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(p *Postgres) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPostgres creates a new Postgres instance with the provided configuration.
// It establishes the initial database connection and sets up the internal state
// for connection monitoring and recovery.
//
// Parameters:
//   - cfg: Connection and pool settings; unset pool values fall back to
//     package defaults
//   - opts: Optional settings such as WithLogger
//
// Returns:
//   - *Postgres: A connector ready for ExecuteQuery, ExecuteNonQuery and Prepare.
//     Start MonitorConnection and RetryConnection to enable reconnection
//     (FXModule does this).
//   - error: The wrapped connection error when the initial connect fails
//
// Example:
//
//	pg, err := postgres.NewPostgres(postgres.Config{
//	    Connection: postgres.Connection{
//	        Host: "localhost", Port: "5432",
//	        User: "app", Password: "secret", DbName: "shop",
//	    },
//	}, postgres.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
func NewPostgres(cfg Config, opts ...Option) (*Postgres, error) {
	pg := &Postgres{
		cfg:             cfg,
		log:             logger.NewNopLogger(),
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(pg)
	}

	conn, err := connectToPostgres(cfg, pg.log)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}
	pg.client.Store(conn)
	pg.conn = connector.NewSQLFromSource(pg.sqlDB, command.Postgres, connector.WithCloser(pg.shutdown))
	return pg, nil
}

// connectToPostgres opens the connection with GORM and configures the pool.
// Unset pool settings fall back to package defaults.
func connectToPostgres(cfg Config, log logger.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(cfg.DSN()),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Discard,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime <= 0 {
		maxLifetime = defaultConnMaxLifetime
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	log.Info("connected to PostgreSQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"port":     cfg.Connection.Port,
		"database": cfg.Connection.DbName,
	})
	return database, nil
}

// DB returns the current GORM handle.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

func (p *Postgres) sqlDB() (*sql.DB, error) {
	db := p.DB()
	if db == nil {
		return nil, fmt.Errorf("database client is not initialized")
	}
	return db.DB()
}

// ExecuteQuery runs a row-returning statement.
func (p *Postgres) ExecuteQuery(ctx context.Context, text string, args ...any) (connector.Rows, error) {
	return p.conn.ExecuteQuery(ctx, text, args...)
}

// ExecuteNonQuery runs a statement and reports the affected row count.
func (p *Postgres) ExecuteNonQuery(ctx context.Context, text string, args ...any) (int64, error) {
	return p.conn.ExecuteNonQuery(ctx, text, args...)
}

// Prepare prepares text on the current pool.
func (p *Postgres) Prepare(ctx context.Context, text string) (connector.Statement, error) {
	return p.conn.Prepare(ctx, text)
}

// Dialect returns command.Postgres.
func (p *Postgres) Dialect() command.Dialect {
	return command.Postgres
}

// Close stops monitoring and closes the pool. Later calls do nothing.
func (p *Postgres) Close() error {
	return p.conn.Close()
}

// RetryConnection continuously attempts to reconnect to the PostgreSQL database when notified
// of a connection failure. It waits for signals on retryChanSignal and stops on
// context cancellation or shutdown.
func (p *Postgres) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			p.log.Info("stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case err, ok := <-p.retryChanSignal:
			if !ok {
				return
			}
			p.log.Warn("PostgreSQL health check failed, reconnecting", err, nil)
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(p.cfg, p.log)
					if err != nil {
						p.log.Error("PostgreSQL reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					p.client.Store(newConn)
					p.log.Info("reconnected to PostgreSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection periodically checks the health of the database connection
// and signals RetryConnection when a check fails.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	interval := p.cfg.ConnectionDetails.HealthCheckInterval
	if interval <= 0 {
		interval = defaultHealthCheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			p.log.Info("stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			if err := p.healthCheck(); err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// healthCheck pings the current pool with a 5 second timeout.
func (p *Postgres) healthCheck() error {
	db, err := p.sqlDB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// shutdown stops the monitoring goroutines and closes the current pool.
func (p *Postgres) shutdown() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	db, err := p.sqlDB()
	if err != nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close PostgreSQL pool: %w", err)
	}
	return nil
}
