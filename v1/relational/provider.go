package relational

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/query"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

// Provider implements schema.Provider over information_schema style catalogs.
// Each catalog statement is held as a reusable query.Executor for the
// lifetime of the provider.
type Provider struct {
	catalog  Catalog
	log      logger.Logger
	observer observability.Observer

	tables      *query.Executor[tableRow]
	columns     *query.Executor[columnRow]
	constraints *query.Executor[constraintRow]
	routines    *query.Executor[routineRow]
	parameters  *query.Executor[parameterRow]
}

var _ schema.Provider = (*Provider)(nil)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the provider's logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithObserver reports every catalog read to obs.
func WithObserver(obs observability.Observer) Option {
	return func(p *Provider) { p.observer = obs }
}

// NewProvider prepares the catalog statements of c against conn.
func NewProvider(conn connector.Connector, c Catalog, opts ...Option) (*Provider, error) {
	if c.TablesQuery == "" || c.ColumnsQuery == "" || c.ConstraintsQuery == "" {
		return nil, fmt.Errorf("%s catalog: tables, columns and constraints statements are required", c.Engine)
	}
	if c.RoutinesQuery != "" && c.ParametersQuery == "" {
		return nil, fmt.Errorf("%s catalog: routines statement requires a parameters statement", c.Engine)
	}

	p := &Provider{catalog: c.withDefaults(), log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}

	qopts := []query.Option{query.WithLogger(p.log)}
	var err error
	if p.tables, err = query.NewCustom[tableRow](conn, c.TablesQuery, qopts...); err != nil {
		return nil, err
	}
	if p.columns, err = query.NewCustom[columnRow](conn, c.ColumnsQuery, qopts...); err != nil {
		return nil, err
	}
	if p.constraints, err = query.NewCustom[constraintRow](conn, c.ConstraintsQuery, qopts...); err != nil {
		return nil, err
	}
	if c.SupportsRoutines() {
		if p.routines, err = query.NewCustom[routineRow](conn, c.RoutinesQuery, qopts...); err != nil {
			return nil, err
		}
		if p.parameters, err = query.NewCustom[parameterRow](conn, c.ParametersQuery, qopts...); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// GetTables returns objects whose table_type classifies as a table.
func (p *Provider) GetTables(ctx context.Context, database string, filter ...string) ([]schema.Table, error) {
	start := time.Now()
	rows, err := p.objects(ctx, database, schema.KindTable, filter)
	if err != nil {
		p.observe("get_tables", database, start, err, 0)
		return nil, err
	}
	out := make([]schema.Table, 0, len(rows))
	for _, r := range rows {
		out = append(out, schema.Table{Database: r.Schema, Name: r.Name, Kind: schema.KindTable})
	}
	p.observe("get_tables", database, start, nil, len(out))
	return out, nil
}

// GetViews returns objects whose table_type classifies as a view.
func (p *Provider) GetViews(ctx context.Context, database string, filter ...string) ([]schema.View, error) {
	start := time.Now()
	rows, err := p.objects(ctx, database, schema.KindView, filter)
	if err != nil {
		p.observe("get_views", database, start, err, 0)
		return nil, err
	}
	out := make([]schema.View, 0, len(rows))
	for _, r := range rows {
		out = append(out, schema.View{Database: r.Schema, Name: r.Name, Definition: strings.TrimSpace(r.Definition.String)})
	}
	p.observe("get_views", database, start, nil, len(out))
	return out, nil
}

// objects runs the shared table/view statement and keeps rows of kind.
func (p *Provider) objects(ctx context.Context, database string, kind schema.ObjectKind, filter []string) ([]tableRow, error) {
	rows, err := p.tables.Execute(ctx, "", database)
	if err != nil {
		return nil, err
	}
	out := make([]tableRow, 0, len(rows))
	for _, r := range rows {
		if p.catalog.Classify(r.Type) == kind && schema.Include(filter, r.Name) {
			out = append(out, r)
		}
	}
	return out, nil
}

// GetColumns returns the columns of table in ordinal order.
func (p *Provider) GetColumns(ctx context.Context, database, table string) ([]schema.Column, error) {
	start := time.Now()
	rows, err := p.columns.Execute(ctx, "", database, table)
	if err != nil {
		p.observe("get_columns", table, start, err, 0)
		return nil, err
	}
	out := make([]schema.Column, 0, len(rows))
	for i, r := range rows {
		ordinal := int(r.Ordinal.Int64)
		if !r.Ordinal.Valid {
			ordinal = i + 1
		}
		out = append(out, schema.Column{
			Database:   r.Schema,
			TableName:  r.Table,
			Name:       r.Name,
			Ordinal:    ordinal,
			NativeType: r.DataType,
			DataType:   p.catalog.ConvertType(r.DataType),
			Nullable:   strings.EqualFold(strings.TrimSpace(r.Nullable), "YES"),
			MaxLength:  r.MaxLength.Int64,
			Precision:  r.Precision.Int64,
			Scale:      r.Scale.Int64,
			Default:    r.Default.String,
		})
	}
	p.observe("get_columns", table, start, nil, len(out))
	return out, nil
}

// GetConstraints returns one Constraint per constrained column of table.
func (p *Provider) GetConstraints(ctx context.Context, database, table string) ([]schema.Constraint, error) {
	start := time.Now()
	rows, err := p.constraints.Execute(ctx, "", database, table)
	if err != nil {
		p.observe("get_constraints", table, start, err, 0)
		return nil, err
	}
	out := make([]schema.Constraint, 0, len(rows))
	for _, r := range rows {
		out = append(out, schema.Constraint{
			Database:       database,
			TableName:      table,
			Name:           r.Name,
			Type:           schema.ParseConstraintType(r.Type),
			FromColumnName: r.Column,
			ToTableName:    r.ReferencedTable.String,
			ToColumnName:   r.ReferencedColumn.String,
		})
	}
	p.observe("get_constraints", table, start, nil, len(out))
	return out, nil
}

// GetStoredProcedures lists routines. Catalogs without routine support
// return an empty list without touching the connection.
func (p *Provider) GetStoredProcedures(ctx context.Context, database string, filter ...string) ([]schema.StoredProcedure, error) {
	if p.routines == nil {
		return []schema.StoredProcedure{}, nil
	}
	start := time.Now()
	rows, err := p.routines.Execute(ctx, "", database)
	if err != nil {
		p.observe("get_stored_procedures", database, start, err, 0)
		return nil, err
	}
	out := make([]schema.StoredProcedure, 0, len(rows))
	for _, r := range rows {
		if schema.Include(filter, r.Name) {
			out = append(out, schema.StoredProcedure{Database: r.Schema, Name: r.Name, Kind: strings.ToUpper(r.Type)})
		}
	}
	p.observe("get_stored_procedures", database, start, nil, len(out))
	return out, nil
}

// GetParameters lists the parameters of routine. Catalogs without routine
// support return an empty list without touching the connection.
func (p *Provider) GetParameters(ctx context.Context, database, routine string) ([]schema.Parameter, error) {
	if p.parameters == nil {
		return []schema.Parameter{}, nil
	}
	start := time.Now()
	rows, err := p.parameters.Execute(ctx, "", database, routine)
	if err != nil {
		p.observe("get_parameters", routine, start, err, 0)
		return nil, err
	}
	out := make([]schema.Parameter, 0, len(rows))
	for _, r := range rows {
		out = append(out, schema.Parameter{
			Database:    database,
			RoutineName: routine,
			Name:        r.Name.String,
			Position:    int(r.Ordinal.Int64),
			Direction:   schema.ParseDirection(r.Mode.String),
			NativeType:  r.DataType,
			DataType:    p.catalog.ConvertType(r.DataType),
			MaxLength:   r.MaxLength.Int64,
			Precision:   r.Precision.Int64,
			Scale:       r.Scale.Int64,
		})
	}
	p.observe("get_parameters", routine, start, nil, len(out))
	return out, nil
}

// Close closes every catalog executor.
func (p *Provider) Close() error {
	var errs []error
	for _, c := range []interface{ Close() error }{p.tables, p.columns, p.constraints} {
		errs = append(errs, c.Close())
	}
	if p.routines != nil {
		errs = append(errs, p.routines.Close(), p.parameters.Close())
	}
	return errors.Join(errs...)
}

func (p *Provider) observe(operation, resource string, start time.Time, err error, size int) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "schema",
		Operation:   operation,
		Resource:    resource,
		SubResource: p.catalog.Engine,
		Duration:    time.Since(start),
		Error:       err,
		Size:        int64(size),
	})
}
