package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"sync"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
)

// MariaDB is a thread-safe connector to a MariaDB/MySQL server with connection
// monitoring and automatic reconnection. The GORM handle is guarded by a
// read/write mutex and replaced on reconnection.
type MariaDB struct {
	cfg             Config
	mu              sync.RWMutex
	client          *gorm.DB
	conn            *connector.SQL
	log             logger.Logger
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

var (
	_ connector.Connector = (*MariaDB)(nil)
	_ connector.Preparer  = (*MariaDB)(nil)
)

// Option configures a MariaDB instance.
type Option func(*MariaDB)

// WithLogger sets the logger for connection lifecycle messages.
func WithLogger(l logger.Logger) Option {
	return func(m *MariaDB) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMariaDB creates a new MariaDB instance with the provided configuration.
// It establishes the initial database connection and sets up the internal state
// for connection monitoring and recovery.
//
// Parameters:
//   - cfg: Connection and pool settings; Charset defaults to utf8mb4
//   - opts: Optional settings such as WithLogger
//
// Returns:
//   - *MariaDB: A connector using the MySQL dialect (`?` placeholders,
//     backtick quoting). Start MonitorConnection and RetryConnection to
//     enable reconnection (FXModule does this).
//   - error: The wrapped connection error when the initial connect fails
//
// Example:
//
//	db, err := mariadb.NewMariaDB(mariadb.Config{
//	    Connection: mariadb.Connection{
//	        Host: "localhost", Port: "3306",
//	        User: "app", Password: "secret", DbName: "shop", ParseTime: true,
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func NewMariaDB(cfg Config, opts ...Option) (*MariaDB, error) {
	m := &MariaDB{
		cfg:             cfg,
		log:             logger.NewNopLogger(),
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(m)
	}

	conn, err := connectToMariaDB(cfg, m.log)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to MariaDB: %w", err)
	}
	m.client = conn
	m.conn = connector.NewSQLFromSource(m.sqlDB, command.MySQL, connector.WithCloser(m.shutdown))
	return m, nil
}

// DSN returns the go-sql-driver data source name for cfg.
func DSN(cfg Config) (string, error) {
	dc := mysqldriver.NewConfig()
	dc.User = cfg.Connection.User
	dc.Passwd = cfg.Connection.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Connection.Host, cfg.Connection.Port)
	dc.DBName = cfg.Connection.DbName
	dc.ParseTime = cfg.Connection.ParseTime
	dc.Timeout = cfg.Connection.Timeout
	dc.ReadTimeout = cfg.Connection.ReadTimeout
	dc.WriteTimeout = cfg.Connection.WriteTimeout
	dc.TLSConfig = cfg.Connection.TLS

	charset := cfg.Connection.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dc.Params = map[string]string{"charset": charset}

	loc := cfg.Connection.Loc
	if loc == "" {
		loc = "Local"
	}
	location, err := time.LoadLocation(loc)
	if err != nil {
		return "", fmt.Errorf("invalid MariaDB time zone %q: %w", loc, err)
	}
	dc.Loc = location

	return dc.FormatDSN(), nil
}

// connectToMariaDB opens the connection with GORM and configures the pool.
func connectToMariaDB(cfg Config, log logger.Logger) (*gorm.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(
		mysql.Open(dsn),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Discard,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MariaDB/MySQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get MariaDB/MySQL database instance: %w", err)
	}

	maxOpenConns := cfg.ConnectionDetails.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 50
	}
	maxIdleConns := cfg.ConnectionDetails.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 25
	}
	connMaxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 1 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpenConns)
	databaseInstance.SetMaxIdleConns(maxIdleConns)
	databaseInstance.SetConnMaxLifetime(connMaxLifetime)

	log.Info("connected to MariaDB/MySQL database", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"port":     cfg.Connection.Port,
		"database": cfg.Connection.DbName,
	})
	return database, nil
}

// DB returns the current GORM handle.
func (m *MariaDB) DB() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

func (m *MariaDB) sqlDB() (*sql.DB, error) {
	db := m.DB()
	if db == nil {
		return nil, fmt.Errorf("database client is not initialized")
	}
	return db.DB()
}

// ExecuteQuery runs a row-returning statement.
func (m *MariaDB) ExecuteQuery(ctx context.Context, text string, args ...any) (connector.Rows, error) {
	return m.conn.ExecuteQuery(ctx, text, args...)
}

// ExecuteNonQuery runs a statement and reports the affected row count.
func (m *MariaDB) ExecuteNonQuery(ctx context.Context, text string, args ...any) (int64, error) {
	return m.conn.ExecuteNonQuery(ctx, text, args...)
}

// Prepare prepares text on the current pool.
func (m *MariaDB) Prepare(ctx context.Context, text string) (connector.Statement, error) {
	return m.conn.Prepare(ctx, text)
}

// Dialect returns command.MySQL.
func (m *MariaDB) Dialect() command.Dialect {
	return command.MySQL
}

// Close stops monitoring and closes the pool. Later calls do nothing.
func (m *MariaDB) Close() error {
	return m.conn.Close()
}

// RetryConnection continuously attempts to reconnect to the MariaDB database when notified
// of a connection failure. It operates as a goroutine that waits for signals on retryChanSignal
// before attempting reconnection.
//
// It implements two nested loops:
// - The outer loop waits for retry signals
// - The inner loop attempts reconnection until successful
func (m *MariaDB) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-m.shutdownSignal:
			m.log.Info("stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case err, ok := <-m.retryChanSignal:
			if !ok {
				return
			}
			m.log.Warn("MariaDB health check failed, reconnecting", err, nil)
		innerLoop:
			for {
				select {
				case <-m.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToMariaDB(m.cfg, m.log)
					if err != nil {
						m.log.Error("MariaDB reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					m.mu.Lock()
					m.client = newConn
					m.mu.Unlock()
					m.log.Info("reconnected to MariaDB/MySQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection periodically checks the health of the database connection
// and signals RetryConnection when a check fails.
func (m *MariaDB) MonitorConnection(ctx context.Context) {
	defer m.closeRetryChanOnce.Do(func() {
		close(m.retryChanSignal)
	})

	interval := m.cfg.ConnectionDetails.HealthCheckInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownSignal:
			m.log.Info("stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			if err := m.healthCheck(); err != nil {
				select {
				case m.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// healthCheck pings the current pool with a timeout of 5 seconds.
func (m *MariaDB) healthCheck() error {
	db, err := m.sqlDB()
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

func (m *MariaDB) shutdown() error {
	m.closeShutdownOnce.Do(func() {
		close(m.shutdownSignal)
	})

	db, err := m.sqlDB()
	if err != nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close MariaDB pool: %w", err)
	}
	return nil
}
