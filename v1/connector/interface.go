package connector

import (
	"context"

	"github.com/Aleph-Alpha/orm/v1/command"
)

// Rows is a forward-only result cursor. *sql.Rows satisfies it.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Connector dispatches statement text to one engine.
//
//go:generate mockgen -source=interface.go -destination=mock_connector.go -package=connector
type Connector interface {
	// ExecuteQuery runs a row-returning statement. The caller closes the rows.
	ExecuteQuery(ctx context.Context, text string, args ...any) (Rows, error)

	// ExecuteNonQuery runs a statement and returns the affected row count.
	ExecuteNonQuery(ctx context.Context, text string, args ...any) (int64, error)

	// Dialect returns the statement dialect of the engine.
	Dialect() command.Dialect

	// Close releases the connection.
	Close() error
}

// Preparer is implemented by connectors that can prepare a statement once and
// run it many times.
type Preparer interface {
	Prepare(ctx context.Context, text string) (Statement, error)
}

// Statement is a prepared statement owned by its creator.
type Statement interface {
	Query(ctx context.Context, args ...any) (Rows, error)
	Close() error
}
