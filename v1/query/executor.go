package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/mapping"
	"github.com/Aleph-Alpha/orm/v1/observability"
)

// ErrClosed is returned by Execute after Close. It marks a programming error,
// not an engine failure.
var ErrClosed = errors.New("query: executor is closed")

const instrumentationName = "github.com/Aleph-Alpha/orm/v1/query"

type state int

const (
	ready state = iota
	closed
)

// Executor runs one base statement repeatedly and materializes rows as T.
//
// Each Execute call composes its own statement text from the base statement
// and that call's predicate; nothing from one call is visible to the next.
// An Executor is meant for sequential use. Overlapping Execute calls are
// still safe: they share the prepared base statement, and Close waits for
// calls in flight. Close it when done.
type Executor[T any] struct {
	conn   connector.Connector
	entity *mapping.Entity
	base   string
	kind   string

	log      logger.Logger
	observer observability.Observer
	tracer   trace.Tracer
	prepare  bool

	mu        sync.RWMutex // guards state; held shared by Execute
	prepareMu sync.Mutex
	state     state
	prepared  connector.Statement
}

// New returns an Executor over the mapped table of T. Its base statement is
// the SELECT of every readable mapped column.
func New[T any](conn connector.Connector, opts ...Option) (*Executor[T], error) {
	o := buildOptions(opts)
	entity, err := resolveEntity[T](o)
	if err != nil {
		return nil, err
	}
	base := command.NewBuilder(conn.Dialect(), entity).Select("")
	return newExecutor[T](conn, entity, base, "query", o), nil
}

// NewCustom returns an Executor over an arbitrary base statement. Result
// columns are matched to T's mapped columns by name.
func NewCustom[T any](conn connector.Connector, statement string, opts ...Option) (*Executor[T], error) {
	if statement == "" {
		return nil, errors.New("query: custom statement is empty")
	}
	o := buildOptions(opts)
	entity, err := resolveEntity[T](o)
	if err != nil {
		return nil, err
	}
	return newExecutor[T](conn, entity, statement, "custom_query", o), nil
}

func resolveEntity[T any](o options) (*mapping.Entity, error) {
	if o.entity != nil {
		return o.entity, nil
	}
	e, err := mapping.For[T]()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return e, nil
}

func newExecutor[T any](conn connector.Connector, entity *mapping.Entity, base, kind string, o options) *Executor[T] {
	return &Executor[T]{
		conn:     conn,
		entity:   entity,
		base:     base,
		kind:     kind,
		log:      o.log,
		observer: o.observer,
		tracer:   otel.Tracer(instrumentationName),
		prepare:  o.prepare,
	}
}

// Statement returns the base statement text.
func (e *Executor[T]) Statement() string {
	return e.base
}

// Execute runs the base statement, extended with "WHERE predicate" when
// predicate is non-empty, and returns a new slice of results. args bind to
// the placeholders of the composed text.
func (e *Executor[T]) Execute(ctx context.Context, predicate string, args ...any) ([]T, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.state == closed {
		return nil, ErrClosed
	}

	text := command.Where(e.base, predicate)
	start := time.Now()

	ctx, span := e.tracer.Start(ctx, e.kind+".execute", trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("db.system", e.conn.Dialect().Name),
		attribute.String("db.sql.table", e.entity.Table),
		attribute.String("db.statement", text),
	)
	defer span.End()

	result, err := e.run(ctx, text, predicate == "", args)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.log.ErrorWithContext(ctx, "query execution failed", err, map[string]interface{}{
			"table":     e.entity.Table,
			"statement": text,
		})
	} else {
		span.SetAttributes(attribute.Int("db.rows", len(result)))
		e.log.DebugWithContext(ctx, "query executed", nil, map[string]interface{}{
			"table":       e.entity.Table,
			"statement":   text,
			"rows":        len(result),
			"duration_ms": duration.Milliseconds(),
		})
	}
	e.observe(duration, err, int64(len(result)), predicate != "")

	return result, err
}

func (e *Executor[T]) run(ctx context.Context, text string, usesBase bool, args []any) ([]T, error) {
	rows, err := e.open(ctx, text, usesBase, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return mapping.Materialize[T](ctx, e.entity, rows)
}

// open runs text, through the prepared base statement when possible.
func (e *Executor[T]) open(ctx context.Context, text string, usesBase bool, args []any) (connector.Rows, error) {
	if usesBase && e.prepare {
		if stmt, ok, err := e.preparedBase(ctx); err != nil {
			return nil, err
		} else if ok {
			return stmt.Query(ctx, args...)
		}
	}
	return e.conn.ExecuteQuery(ctx, text, args...)
}

func (e *Executor[T]) preparedBase(ctx context.Context) (connector.Statement, bool, error) {
	e.prepareMu.Lock()
	defer e.prepareMu.Unlock()

	if e.prepared != nil {
		return e.prepared, true, nil
	}
	p, ok := e.conn.(connector.Preparer)
	if !ok {
		return nil, false, nil
	}
	stmt, err := p.Prepare(ctx, e.base)
	if err != nil {
		return nil, false, err
	}
	e.prepared = stmt
	return stmt, true, nil
}

// Close releases the prepared statement, if any. It is safe to call more
// than once; later calls do nothing.
func (e *Executor[T]) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == closed {
		return nil
	}
	e.state = closed

	if e.prepared == nil {
		return nil
	}
	err := e.prepared.Close()
	e.prepared = nil
	if err != nil {
		return fmt.Errorf("query: close prepared statement: %w", err)
	}
	return nil
}

func (e *Executor[T]) observe(duration time.Duration, err error, size int64, filtered bool) {
	if e.observer == nil {
		return
	}
	e.observer.ObserveOperation(observability.OperationContext{
		Component:   "query",
		Operation:   e.kind,
		Resource:    e.entity.Table,
		SubResource: e.conn.Dialect().Name,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    map[string]interface{}{"filtered": filtered},
	})
}

// Run creates an Executor over T's mapped table, executes it once and closes it.
func Run[T any](ctx context.Context, conn connector.Connector, predicate string, args []any, opts ...Option) ([]T, error) {
	q, err := New[T](conn, opts...)
	if err != nil {
		return nil, err
	}
	defer q.Close()
	return q.Execute(ctx, predicate, args...)
}

// RunCustom creates an Executor over statement, executes it once and closes it.
func RunCustom[T any](ctx context.Context, conn connector.Connector, statement, predicate string, args []any, opts ...Option) ([]T, error) {
	q, err := NewCustom[T](conn, statement, opts...)
	if err != nil {
		return nil, err
	}
	defer q.Close()
	return q.Execute(ctx, predicate, args...)
}
