package connector

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/Aleph-Alpha/orm/v1/command"
)

// DBSource returns the pool to run a statement on. Engines that swap pools on
// reconnect return the current one.
type DBSource func() (*sql.DB, error)

// SQL is a Connector over database/sql.
type SQL struct {
	source  DBSource
	dialect command.Dialect
	closer  func() error
	closed  atomic.Bool
}

// SQLOption configures an SQL connector.
type SQLOption func(*SQL)

// WithCloser sets the function Close calls. By default Close closes the pool.
func WithCloser(fn func() error) SQLOption {
	return func(c *SQL) { c.closer = fn }
}

// NewSQL returns a connector over a fixed pool.
func NewSQL(db *sql.DB, dialect command.Dialect, opts ...SQLOption) *SQL {
	return NewSQLFromSource(func() (*sql.DB, error) { return db, nil }, dialect,
		append([]SQLOption{WithCloser(db.Close)}, opts...)...)
}

// NewSQLFromSource returns a connector that resolves its pool before every statement.
func NewSQLFromSource(source DBSource, dialect command.Dialect, opts ...SQLOption) *SQL {
	c := &SQL{source: source, dialect: dialect}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SQL) db() (*sql.DB, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	return c.source()
}

// ExecuteQuery runs text with QueryContext.
func (c *SQL) ExecuteQuery(ctx context.Context, text string, args ...any) (Rows, error) {
	db, err := c.db()
	if err != nil {
		return nil, Wrap(c.dialect.Name, "query", text, err)
	}
	rows, err := db.QueryContext(ctx, text, args...)
	if err != nil {
		return nil, Wrap(c.dialect.Name, "query", text, err)
	}
	return rows, nil
}

// ExecuteNonQuery runs text with ExecContext and reports RowsAffected.
func (c *SQL) ExecuteNonQuery(ctx context.Context, text string, args ...any) (int64, error) {
	db, err := c.db()
	if err != nil {
		return 0, Wrap(c.dialect.Name, "exec", text, err)
	}
	res, err := db.ExecContext(ctx, text, args...)
	if err != nil {
		return 0, Wrap(c.dialect.Name, "exec", text, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, Wrap(c.dialect.Name, "exec", text, err)
	}
	return n, nil
}

// Prepare prepares text on the current pool.
func (c *SQL) Prepare(ctx context.Context, text string) (Statement, error) {
	db, err := c.db()
	if err != nil {
		return nil, Wrap(c.dialect.Name, "prepare", text, err)
	}
	stmt, err := db.PrepareContext(ctx, text)
	if err != nil {
		return nil, Wrap(c.dialect.Name, "prepare", text, err)
	}
	return &sqlStatement{stmt: stmt, text: text, engine: c.dialect.Name}, nil
}

// Dialect returns the dialect given at construction.
func (c *SQL) Dialect() command.Dialect {
	return c.dialect
}

// Close marks the connector closed and runs its closer once.
func (c *SQL) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	if c.closer != nil {
		return c.closer()
	}
	return nil
}

type sqlStatement struct {
	stmt   *sql.Stmt
	text   string
	engine string
}

func (s *sqlStatement) Query(ctx context.Context, args ...any) (Rows, error) {
	rows, err := s.stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, Wrap(s.engine, "query", s.text, err)
	}
	return rows, nil
}

func (s *sqlStatement) Close() error {
	return s.stmt.Close()
}
