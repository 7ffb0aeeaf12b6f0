package cassandra

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/query"
	"github.com/Aleph-Alpha/orm/v1/schema"
	"github.com/Aleph-Alpha/orm/v1/typeconv"
)

const keyspacePredicate = "keyspace_name = ?"

// Provider implements schema.Provider over the Cassandra system catalogs.
// Cassandra has no routines, so routine listings are always empty.
type Provider struct {
	catalog  Catalog
	log      logger.Logger
	observer observability.Observer

	tables  *query.Executor[tableRow]
	views   *query.Executor[tableRow]
	columns *query.Executor[columnRow]
}

var _ schema.Provider = (*Provider)(nil)

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithProviderLogger sets the provider's logger.
func WithProviderLogger(l logger.Logger) ProviderOption {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithObserver reports every catalog read to obs.
func WithObserver(obs observability.Observer) ProviderOption {
	return func(p *Provider) { p.observer = obs }
}

// NewSchemaProvider creates a provider reading c through conn.
func NewSchemaProvider(conn connector.Connector, c Catalog, opts ...ProviderOption) (*Provider, error) {
	p := &Provider{catalog: c, log: logger.NewNopLogger()}
	for _, opt := range opts {
		opt(p)
	}
	if p.catalog.IsTable == nil {
		p.catalog.IsTable = func(string) bool { return true }
	}
	if p.catalog.IsView == nil {
		p.catalog.IsView = func(string) bool { return true }
	}

	qopts := []query.Option{query.WithLogger(p.log)}
	var err error
	if p.tables, err = query.NewCustom[tableRow](conn, c.TablesQuery, qopts...); err != nil {
		return nil, err
	}
	if p.views, err = query.NewCustom[tableRow](conn, c.ViewsQuery, qopts...); err != nil {
		return nil, err
	}
	if p.columns, err = query.NewCustom[columnRow](conn, c.ColumnsQuery, qopts...); err != nil {
		return nil, err
	}
	return p, nil
}

// GetTables lists the tables of keyspace.
func (p *Provider) GetTables(ctx context.Context, keyspace string, filter ...string) ([]schema.Table, error) {
	start := time.Now()
	rows, err := p.tables.Execute(ctx, keyspacePredicate, keyspace)
	if err != nil {
		p.observe("get_tables", keyspace, start, err, 0)
		return nil, err
	}
	out := make([]schema.Table, 0, len(rows))
	for _, r := range rows {
		if p.catalog.IsTable(r.Kind) && schema.Include(filter, r.Name) {
			out = append(out, schema.Table{Database: r.Keyspace, Name: r.Name, Kind: schema.KindTable})
		}
	}
	p.observe("get_tables", keyspace, start, nil, len(out))
	return out, nil
}

// GetViews lists the materialized views of keyspace.
func (p *Provider) GetViews(ctx context.Context, keyspace string, filter ...string) ([]schema.View, error) {
	start := time.Now()
	rows, err := p.views.Execute(ctx, keyspacePredicate, keyspace)
	if err != nil {
		p.observe("get_views", keyspace, start, err, 0)
		return nil, err
	}
	out := make([]schema.View, 0, len(rows))
	for _, r := range rows {
		if p.catalog.IsView(r.Kind) && schema.Include(filter, r.Name) {
			out = append(out, schema.View{Database: r.Keyspace, Name: r.Name, Definition: strings.TrimSpace(r.Definition)})
		}
	}
	p.observe("get_views", keyspace, start, nil, len(out))
	return out, nil
}

// keyColumns reads the columns of table ordered partition keys first,
// clustering keys next by position, then the remaining columns by name.
func (p *Provider) keyColumns(ctx context.Context, keyspace, table string) ([]columnRow, error) {
	rows, err := p.columns.Execute(ctx, keyspacePredicate+" AND "+p.catalog.TableKey+" = ?", keyspace, table)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := keyRank(rows[i].Kind), keyRank(rows[j].Kind)
		if ri != rj {
			return ri < rj
		}
		if ri < 2 {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

// GetColumns returns the columns of table. Key columns are not nullable.
func (p *Provider) GetColumns(ctx context.Context, keyspace, table string) ([]schema.Column, error) {
	start := time.Now()
	rows, err := p.keyColumns(ctx, keyspace, table)
	if err != nil {
		p.observe("get_columns", table, start, err, 0)
		return nil, err
	}
	out := make([]schema.Column, 0, len(rows))
	for i, r := range rows {
		out = append(out, schema.Column{
			Database:   r.Keyspace,
			TableName:  r.Table,
			Name:       r.Name,
			Ordinal:    i + 1,
			NativeType: r.Type,
			DataType:   typeconv.Convert(r.Type),
			Nullable:   keyRank(r.Kind) == 2,
		})
	}
	p.observe("get_columns", table, start, nil, len(out))
	return out, nil
}

// GetConstraints returns one PrimaryKey constraint per partition key column,
// in partition key order. Clustering columns are not reported.
func (p *Provider) GetConstraints(ctx context.Context, keyspace, table string) ([]schema.Constraint, error) {
	start := time.Now()
	rows, err := p.keyColumns(ctx, keyspace, table)
	if err != nil {
		p.observe("get_constraints", table, start, err, 0)
		return nil, err
	}
	out := []schema.Constraint{}
	for _, r := range rows {
		if !strings.EqualFold(r.Kind, kindPartitionKey) {
			continue
		}
		out = append(out, schema.Constraint{
			Database:       keyspace,
			TableName:      table,
			Name:           r.Name,
			Type:           schema.PrimaryKey,
			FromColumnName: r.Name,
		})
	}
	p.observe("get_constraints", table, start, nil, len(out))
	return out, nil
}

// GetStoredProcedures always returns an empty list.
func (p *Provider) GetStoredProcedures(context.Context, string, ...string) ([]schema.StoredProcedure, error) {
	return []schema.StoredProcedure{}, nil
}

// GetParameters always returns an empty list.
func (p *Provider) GetParameters(context.Context, string, string) ([]schema.Parameter, error) {
	return []schema.Parameter{}, nil
}

// Close closes the catalog executors.
func (p *Provider) Close() error {
	return errors.Join(p.tables.Close(), p.views.Close(), p.columns.Close())
}

func (p *Provider) observe(operation, resource string, start time.Time, err error, size int) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "schema",
		Operation:   operation,
		Resource:    resource,
		SubResource: "cassandra",
		Duration:    time.Since(start),
		Error:       err,
		Size:        int64(size),
	})
}
