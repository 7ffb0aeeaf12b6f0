package access

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/mapping"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/query"
)

// Access runs CRUD statements for one mapped entity type T.
//
// Access holds no query executors or statements between calls and is safe
// for concurrent use when the connector is.
type Access[T any] struct {
	conn    connector.Connector
	entity  *mapping.Entity
	builder *command.Builder
	opts    options
}

// New returns an Access for T over conn.
func New[T any](ctx context.Context, conn connector.Connector, opts ...Option) (*Access[T], error) {
	o := options{log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	entity, err := mapping.For[T]()
	if err != nil {
		return nil, err
	}

	if o.provider != nil {
		columns, err := o.provider.GetColumns(ctx, o.database, entity.Table)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", entity.Table, err)
		}
		constraints, err := o.provider.GetConstraints(ctx, o.database, entity.Table)
		if err != nil {
			return nil, fmt.Errorf("read constraints of %s: %w", entity.Table, err)
		}
		if entity, err = entity.Bind(columns, constraints); err != nil {
			return nil, err
		}
	}

	return &Access[T]{
		conn:    conn,
		entity:  entity,
		builder: command.NewBuilder(conn.Dialect(), entity),
		opts:    o,
	}, nil
}

// Entity returns the mapping used by a, bound to the catalog when WithSchema
// was given.
func (a *Access[T]) Entity() *mapping.Entity {
	return a.entity
}

// Insert writes item. A key column holding its zero value is left to the
// engine when it is tagged `autoIncrement` or, once bound with WithSchema,
// has a catalog default. CQL has neither, so every key is written there.
func (a *Access[T]) Insert(ctx context.Context, item *T) error {
	stmt, err := a.builder.Insert(a.generatedKeys(ctx, item)...)
	if err != nil {
		return err
	}
	_, err = a.exec(ctx, "insert", stmt, item)
	return err
}

func (a *Access[T]) generatedKeys(ctx context.Context, item *T) []string {
	if a.builder.Dialect().Name == command.CQL.Name {
		return nil
	}
	var omit []string
	for _, c := range a.entity.Keys() {
		if (c.AutoIncrement || c.HasDefault) && a.entity.IsZero(ctx, item, c.Name) {
			omit = append(omit, c.Name)
		}
	}
	return omit
}

// InsertMany inserts items one statement at a time, stopping at the first
// failure. Items inserted before the failure stay written.
func (a *Access[T]) InsertMany(ctx context.Context, items []T) error {
	for i := range items {
		if err := a.Insert(ctx, &items[i]); err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}
	return nil
}

// Update writes every updatable column of item, matched by key, and returns
// the number of affected rows.
func (a *Access[T]) Update(ctx context.Context, item *T) (int64, error) {
	stmt, err := a.builder.Update()
	if err != nil {
		return 0, err
	}
	return a.exec(ctx, "update", stmt, item)
}

// Delete removes the row matching item's key and returns the number of
// affected rows.
func (a *Access[T]) Delete(ctx context.Context, item *T) (int64, error) {
	stmt, err := a.builder.Delete()
	if err != nil {
		return 0, err
	}
	return a.exec(ctx, "delete", stmt, item)
}

// Select runs a single-use query over T's table. An empty predicate selects
// every row.
func (a *Access[T]) Select(ctx context.Context, predicate string, args ...any) ([]T, error) {
	return query.Run[T](ctx, a.conn, predicate, args, a.queryOptions()...)
}

// Query returns a reusable executor over T's table. The caller owns it and
// must close it.
func (a *Access[T]) Query(opts ...query.Option) (*query.Executor[T], error) {
	return query.New[T](a.conn, append(a.queryOptions(), opts...)...)
}

func (a *Access[T]) queryOptions() []query.Option {
	return []query.Option{
		query.WithEntity(a.entity),
		query.WithLogger(a.opts.log),
		query.WithObserver(a.opts.observer),
	}
}

func (a *Access[T]) exec(ctx context.Context, operation string, stmt command.Statement, item *T) (int64, error) {
	args, err := a.entity.Values(ctx, item, stmt.Columns)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	n, err := a.conn.ExecuteNonQuery(ctx, stmt.Text, args...)
	duration := time.Since(start)

	fields := map[string]interface{}{
		"table":     a.entity.Table,
		"statement": stmt.Text,
	}
	if err != nil {
		a.opts.log.ErrorWithContext(ctx, operation+" failed", err, fields)
	} else {
		fields["rows"] = n
		fields["duration_ms"] = duration.Milliseconds()
		a.opts.log.DebugWithContext(ctx, operation+" executed", nil, fields)
	}

	if a.opts.observer != nil {
		a.opts.observer.ObserveOperation(observability.OperationContext{
			Component:   "access",
			Operation:   operation,
			Resource:    a.entity.Table,
			SubResource: a.conn.Dialect().Name,
			Duration:    duration,
			Error:       err,
			Size:        n,
		})
	}
	return n, err
}
