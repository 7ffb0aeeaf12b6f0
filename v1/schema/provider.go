package schema

import "context"

// Provider reads catalog metadata from one engine.
//
// Every method returns a non-nil slice on success. Engine failures are returned
// unchanged so callers see the engine's own diagnostic.
//
//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=schema
type Provider interface {
	// GetTables returns the base tables of database, restricted to filter
	// when filter is non-empty.
	GetTables(ctx context.Context, database string, filter ...string) ([]Table, error)

	// GetViews returns the views of database, restricted to filter when
	// filter is non-empty.
	GetViews(ctx context.Context, database string, filter ...string) ([]View, error)

	// GetColumns returns the columns of one table or view in ordinal order.
	GetColumns(ctx context.Context, database, table string) ([]Column, error)

	// GetConstraints returns the constraints of one table.
	GetConstraints(ctx context.Context, database, table string) ([]Constraint, error)

	// GetStoredProcedures returns the routines of database, restricted to
	// filter when filter is non-empty.
	GetStoredProcedures(ctx context.Context, database string, filter ...string) ([]StoredProcedure, error)

	// GetParameters returns the parameters of one routine.
	GetParameters(ctx context.Context, database, routine string) ([]Parameter, error)

	// Close releases the query objects held by the provider.
	Close() error
}
