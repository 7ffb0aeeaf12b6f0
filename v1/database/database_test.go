package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/orm/v1/cassandra"
	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/duckdb"
	"github.com/Aleph-Alpha/orm/v1/relational"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
type: Postgres
postgres:
  connection:
    host: localhost
    port: "5432"
    db_name: shop
  connection_details:
    max_open_conns: 20
    conn_max_lifetime: 90s
cassandra:
  hosts: [a, b]
  catalog_version: legacy
`)

	t.Setenv("ORM_POSTGRES_CONNECTION_HOST", "db.internal")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, TypePostgres, cfg.Type)
	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "db.internal", cfg.Postgres.Connection.Host)
	assert.Equal(t, "shop", cfg.Postgres.Connection.DbName)
	assert.Equal(t, 20, cfg.Postgres.ConnectionDetails.MaxOpenConns)
	assert.Equal(t, 90*time.Second, cfg.Postgres.ConnectionDetails.ConnMaxLifetime)
	require.NotNil(t, cfg.Cassandra)
	assert.Equal(t, []string{"a", "b"}, cfg.Cassandra.Hosts)
	assert.Equal(t, cassandra.CatalogVersionLegacy, cfg.Cassandra.CatalogVersion)
	assert.Nil(t, cfg.MariaDB)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	cfg := DuckDBConfig(duckdb.Config{Path: "shop.duckdb"})
	assert.Equal(t, TypeDuckDB, cfg.Type)
	assert.Equal(t, "shop.duckdb", cfg.DuckDB.Path)

	assert.Equal(t, TypeCassandra, CassandraConfig(cassandra.Config{}).Type)
}

func TestNewConnectorErrors(t *testing.T) {
	for _, cfg := range []Config{
		{Type: "oracle"},
		{Type: TypePostgres},
		{Type: TypeMariaDB},
		{Type: TypeCassandra},
		{Type: TypeDuckDB},
	} {
		conn, err := NewConnector(cfg, nil)
		assert.Error(t, err, cfg.Type)
		assert.Nil(t, conn, cfg.Type)
	}
}

func TestNewSchemaProvider(t *testing.T) {
	conn := connector.NewMockConnector(gomock.NewController(t))
	conn.EXPECT().Dialect().Return(command.CQL).AnyTimes()

	p, err := NewSchemaProvider(conn, CassandraConfig(cassandra.Config{CatalogVersion: "legacy"}))
	require.NoError(t, err)
	assert.IsType(t, &cassandra.Provider{}, p)
	require.NoError(t, p.Close())

	p, err = NewSchemaProvider(conn, Config{Type: TypePostgres})
	require.NoError(t, err)
	assert.IsType(t, &relational.Provider{}, p)
	require.NoError(t, p.Close())

	_, err = NewSchemaProvider(conn, CassandraConfig(cassandra.Config{CatalogVersion: "v9"}))
	assert.Error(t, err)

	p, err = NewSchemaProvider(conn, Config{Type: "oracle"})
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestDuckDBEndToEnd(t *testing.T) {
	ctx := context.Background()
	conn, err := NewConnector(DuckDBConfig(duckdb.Config{}), nil)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.ExecuteNonQuery(ctx, `CREATE TABLE "Orders" ("Id" INTEGER PRIMARY KEY, "Name" VARCHAR)`)
	require.NoError(t, err)

	p, err := NewSchemaProvider(conn, DuckDBConfig(duckdb.Config{}))
	require.NoError(t, err)
	defer p.Close()

	tables, err := p.GetTables(ctx, duckdb.DefaultSchema)
	require.NoError(t, err)
	assert.Equal(t, []schema.Table{{Database: duckdb.DefaultSchema, Name: "Orders", Kind: schema.KindTable}}, tables)
}

func TestFXModule(t *testing.T) {
	var (
		conn     connector.Connector
		provider schema.Provider
	)
	app := fxtest.New(t,
		fx.Supply(DuckDBConfig(duckdb.Config{})),
		FXModule,
		fx.Populate(&conn, &provider),
	)
	app.RequireStart()

	ctx := context.Background()
	_, err := conn.ExecuteNonQuery(ctx, `CREATE TABLE "Orders" ("Id" INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	cols, err := provider.GetColumns(ctx, duckdb.DefaultSchema, "Orders")
	require.NoError(t, err)
	assert.Len(t, cols, 1)

	app.RequireStop()

	_, err = conn.ExecuteQuery(ctx, "SELECT 1")
	assert.ErrorIs(t, err, connector.ErrClosed)
	_, err = provider.GetTables(ctx, duckdb.DefaultSchema)
	assert.Error(t, err)
}
