package cassandra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

func rows(columns []string, data ...[]any) func(context.Context, string, ...any) (connector.Rows, error) {
	return func(context.Context, string, ...any) (connector.Rows, error) {
		return connector.NewStaticRows(columns, data...), nil
	}
}

func newMockProvider(t *testing.T, c Catalog) (*Provider, *connector.MockConnector) {
	t.Helper()
	conn := connector.NewMockConnector(gomock.NewController(t))
	conn.EXPECT().Dialect().Return(command.CQL).AnyTimes()
	p, err := NewSchemaProvider(conn, c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, conn
}

var columnNames = []string{"keyspace_name", "table_name", "column_name", "kind", "position", "type"}

func TestLegacyTablesAndViews(t *testing.T) {
	ctx := context.Background()
	p, conn := newMockProvider(t, CatalogLegacy)

	listing := rows([]string{"keyspace_name", "table_name", "kind"},
		[]any{"shop", "orders", "Standard"},
		[]any{"shop", "customers", "Standard"},
		[]any{"shop", "orders_by_day", "View"},
		[]any{"shop", "counters", "Super"},
	)
	text := command.Where(CatalogLegacy.TablesQuery, keyspacePredicate)
	conn.EXPECT().ExecuteQuery(gomock.Any(), text, "shop").DoAndReturn(listing).Times(3)

	tables, err := p.GetTables(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, []schema.Table{
		{Database: "shop", Name: "orders", Kind: schema.KindTable},
		{Database: "shop", Name: "customers", Kind: schema.KindTable},
	}, tables)

	tables, err = p.GetTables(ctx, "shop", "customers")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "customers", tables[0].Name)

	views, err := p.GetViews(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, []schema.View{{Database: "shop", Name: "orders_by_day"}}, views)
}

func TestLegacyColumnsAndConstraints(t *testing.T) {
	ctx := context.Background()
	p, conn := newMockProvider(t, CatalogLegacy)

	text := command.Where(CatalogLegacy.ColumnsQuery, "keyspace_name = ? AND columnfamily_name = ?")
	conn.EXPECT().ExecuteQuery(gomock.Any(), text, "shop", "orders").DoAndReturn(rows(columnNames,
		[]any{"shop", "orders", "total", "regular", nil, "org.apache.cassandra.db.marshal.DecimalType"},
		[]any{"shop", "orders", "day", "partition_key", 1, "org.apache.cassandra.db.marshal.TimestampType"},
		[]any{"shop", "orders", "placed", "clustering_key", 0, "org.apache.cassandra.db.marshal.ReversedType(org.apache.cassandra.db.marshal.TimeUUIDType)"},
		[]any{"shop", "orders", "customer", "partition_key", 0, "org.apache.cassandra.db.marshal.UUIDType"},
		[]any{"shop", "orders", "notes", "regular", nil, "org.apache.cassandra.db.marshal.ListType(org.apache.cassandra.db.marshal.UTF8Type)"},
	)).Times(2)

	cols, err := p.GetColumns(ctx, "shop", "orders")
	require.NoError(t, err)
	require.Len(t, cols, 5)

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		assert.Equal(t, i+1, c.Ordinal)
	}
	assert.Equal(t, []string{"customer", "day", "placed", "notes", "total"}, names)
	assert.Equal(t, schema.Guid, cols[0].DataType)
	assert.False(t, cols[0].Nullable)
	assert.Equal(t, schema.DateTime, cols[1].DataType)
	assert.False(t, cols[2].Nullable)
	assert.Equal(t, schema.Collection, cols[3].DataType)
	assert.True(t, cols[3].Nullable)
	assert.Equal(t, schema.Decimal, cols[4].DataType)

	constraints, err := p.GetConstraints(ctx, "shop", "orders")
	require.NoError(t, err)
	assert.Equal(t, []schema.Constraint{
		{Database: "shop", TableName: "orders", Name: "customer", Type: schema.PrimaryKey, FromColumnName: "customer"},
		{Database: "shop", TableName: "orders", Name: "day", Type: schema.PrimaryKey, FromColumnName: "day"},
	}, constraints)
}

func TestSystemSchemaCatalog(t *testing.T) {
	ctx := context.Background()
	p, conn := newMockProvider(t, CatalogSystemSchema)

	conn.EXPECT().ExecuteQuery(gomock.Any(), command.Where(CatalogSystemSchema.TablesQuery, keyspacePredicate), "shop").
		DoAndReturn(rows([]string{"keyspace_name", "table_name"}, []any{"shop", "orders"}))
	conn.EXPECT().ExecuteQuery(gomock.Any(), command.Where(CatalogSystemSchema.ViewsQuery, keyspacePredicate), "shop").
		DoAndReturn(rows([]string{"keyspace_name", "table_name", "definition"},
			[]any{"shop", "orders_by_day", " day IS NOT NULL "}))
	conn.EXPECT().ExecuteQuery(gomock.Any(), command.Where(CatalogSystemSchema.ColumnsQuery, "keyspace_name = ? AND table_name = ?"), "shop", "orders").
		DoAndReturn(rows(columnNames,
			[]any{"shop", "orders", "id", "partition_key", 0, "uuid"},
			[]any{"shop", "orders", "tags", "regular", -1, "set<text>"},
			[]any{"shop", "orders", "amount", "regular", -1, "int"},
		))

	tables, err := p.GetTables(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, []schema.Table{{Database: "shop", Name: "orders", Kind: schema.KindTable}}, tables)

	views, err := p.GetViews(ctx, "shop")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "day IS NOT NULL", views[0].Definition)

	cols, err := p.GetColumns(ctx, "shop", "orders")
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, "id", cols[0].Name)
	assert.Equal(t, "amount", cols[1].Name)
	assert.Equal(t, schema.Integer, cols[1].DataType)
	assert.Equal(t, schema.Collection, cols[2].DataType)
}

func TestNoRoutines(t *testing.T) {
	ctx := context.Background()
	p, _ := newMockProvider(t, CatalogSystemSchema)

	procs, err := p.GetStoredProcedures(ctx, "shop")
	require.NoError(t, err)
	assert.NotNil(t, procs)
	assert.Empty(t, procs)

	params, err := p.GetParameters(ctx, "shop", "anything")
	require.NoError(t, err)
	assert.NotNil(t, params)
	assert.Empty(t, params)
}

func TestProviderErrors(t *testing.T) {
	ctx := context.Background()
	p, conn := newMockProvider(t, CatalogSystemSchema)

	engineErr := connector.Wrap("cql", "query", "SELECT", errors.New("keyspace shop does not exist"))
	conn.EXPECT().ExecuteQuery(gomock.Any(), gomock.Any(), "shop").Return(nil, engineErr)

	_, err := p.GetTables(ctx, "shop")
	assert.Same(t, engineErr, err)

	require.NoError(t, p.Close())
	_, err = p.GetViews(ctx, "shop")
	assert.Error(t, err)
}

func TestCatalogFor(t *testing.T) {
	c, err := CatalogFor("")
	require.NoError(t, err)
	assert.Equal(t, CatalogVersionSystemSchema, c.Version)

	c, err = CatalogFor("Legacy")
	require.NoError(t, err)
	assert.Equal(t, CatalogVersionLegacy, c.Version)

	_, err = CatalogFor("v9")
	assert.Error(t, err)
}

func TestNewCluster(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cluster, err := newCluster(Config{Hosts: []string{"db1", "db2"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"db1", "db2"}, cluster.Hosts)
		assert.Equal(t, defaultPort, cluster.Port)
		assert.Equal(t, gocql.Quorum, cluster.Consistency)
		assert.Equal(t, defaultProtoVersion, cluster.ProtoVersion)
		assert.Equal(t, defaultTimeout, cluster.Timeout)
		assert.Equal(t, &gocql.SimpleRetryPolicy{NumRetries: defaultRetries}, cluster.RetryPolicy)
		assert.Nil(t, cluster.Authenticator)
	})

	t.Run("Overrides", func(t *testing.T) {
		cluster, err := newCluster(Config{
			Hosts:       []string{"db1"},
			Port:        19042,
			Keyspace:    "shop",
			Username:    "app",
			Password:    "secret",
			Consistency: "local_one",
			Timeout:     2 * time.Second,
			Retries:     5,
		})
		require.NoError(t, err)
		assert.Equal(t, 19042, cluster.Port)
		assert.Equal(t, "shop", cluster.Keyspace)
		assert.Equal(t, gocql.LocalOne, cluster.Consistency)
		assert.Equal(t, 2*time.Second, cluster.ConnectTimeout)
		assert.Equal(t, gocql.PasswordAuthenticator{Username: "app", Password: "secret"}, cluster.Authenticator)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := newCluster(Config{})
		assert.Error(t, err)

		_, err = newCluster(Config{Hosts: []string{"db1"}, Consistency: "SOMETIMES"})
		assert.Error(t, err)
	})
}
