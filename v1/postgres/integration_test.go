package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/orm/v1/logger"
	"github.com/Aleph-Alpha/orm/v1/query"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

type order struct {
	ID     int    `gorm:"column:Id;primaryKey"`
	Name   string `gorm:"column:Name"`
	Status string `gorm:"column:Status"`
}

func (order) TableName() string { return "Orders" }

var fixture = []string{
	`CREATE TABLE "Customers" ("Id" SERIAL PRIMARY KEY, "Name" VARCHAR(80) NOT NULL)`,
	`CREATE TABLE "Orders" (
		"Id" SERIAL PRIMARY KEY,
		"CustomerId" INTEGER REFERENCES "Customers"("Id"),
		"Name" TEXT NOT NULL,
		"Status" TEXT NOT NULL DEFAULT 'open',
		"Total" NUMERIC(12,2),
		"Tags" TEXT[]
	)`,
	`CREATE VIEW "OpenOrders" AS SELECT "Id", "Name" FROM "Orders" WHERE "Status" = 'open'`,
	`CREATE FUNCTION order_total(order_id INTEGER) RETURNS NUMERIC AS $$ SELECT "Total" FROM "Orders" WHERE "Id" = order_id $$ LANGUAGE SQL`,
	`INSERT INTO "Orders" ("Name", "Status") VALUES ('first', 'open'), ('second', 'shipped')`,
}

// PostgresContainer represents a Postgres container for testing
type PostgresContainer struct {
	testcontainers.Container
	Config Config
	Host   string
	Port   string
}

// setupPostgresContainer sets up a Postgres container for testing
func setupPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	port, err := getFreePort()
	if err != nil {
		return nil, fmt.Errorf("could not get free port: %w", err)
	}

	portStr := fmt.Sprintf("%d", port)
	portBindings := nat.PortMap{
		"5432/tcp": []nat.PortBinding{{HostPort: portStr}},
	}

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := c.MappedPort(ctx, "5432")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}
	portStr = mappedPort.Port()

	if err := waitForPostgresReady(host, portStr, "testuser", "testpass", "testdb", 30*time.Second); err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("postgres container not ready: %w", err)
	}

	return &PostgresContainer{
		Container: c,
		Config: Config{
			Connection: Connection{
				Host:     host,
				Port:     portStr,
				User:     "testuser",
				Password: "testpass",
				DbName:   "testdb",
				SSLMode:  "disable",
			},
		},
		Host: host,
		Port: portStr,
	}, nil
}

// getFreePort gets a free port from the OS
func getFreePort() (int, error) {
	addr, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer addr.Close()

	return addr.Addr().(*net.TCPAddr).Port, nil
}

func waitForPostgresReady(host, port, user, password, dbname string, timeout time.Duration) error {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for PostgreSQL to be ready after %s", timeout)
		}

		db, err := sql.Open("postgres", connStr)
		if err != nil {
			time.Sleep(500 * time.Millisecond)
			continue
		}

		err = db.Ping()
		_ = db.Close()
		if err == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func TestPostgresWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pc, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := pc.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var pg *Postgres
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return pc.Config },
			func() logger.Logger { return logger.NewNopLogger() },
		),
		FXModule,
		fx.Populate(&pg),
	)
	app.RequireStart()
	defer app.RequireStop()

	for _, stmt := range fixture {
		_, err := pg.ExecuteNonQuery(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	t.Run("QueryReuse", func(t *testing.T) {
		q, err := query.New[order](pg)
		require.NoError(t, err)
		defer q.Close()

		all, err := q.Execute(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		open, err := q.Execute(ctx, `"Status" = $1`, "open")
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, "first", open[0].Name)

		all, err = q.Execute(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("SchemaProvider", func(t *testing.T) {
		p, err := NewSchemaProvider(pg)
		require.NoError(t, err)
		defer p.Close()

		tables, err := p.GetTables(ctx, DefaultSchema)
		require.NoError(t, err)
		assert.Equal(t, []schema.Table{
			{Database: DefaultSchema, Name: "Customers", Kind: schema.KindTable},
			{Database: DefaultSchema, Name: "Orders", Kind: schema.KindTable},
		}, tables)

		views, err := p.GetViews(ctx, DefaultSchema)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "OpenOrders", views[0].Name)

		cols, err := p.GetColumns(ctx, DefaultSchema, "Orders")
		require.NoError(t, err)
		require.Len(t, cols, 6)
		assert.Equal(t, schema.Integer, cols[0].DataType)
		assert.Equal(t, schema.Decimal, cols[4].DataType)
		assert.EqualValues(t, 12, cols[4].Precision)
		assert.Equal(t, schema.Collection, cols[5].DataType)

		constraints, err := p.GetConstraints(ctx, DefaultSchema, "Orders")
		require.NoError(t, err)
		var fk *schema.Constraint
		for i := range constraints {
			if constraints[i].Type == schema.ForeignKey {
				fk = &constraints[i]
			}
		}
		require.NotNil(t, fk)
		assert.Equal(t, "CustomerId", fk.FromColumnName)
		assert.Equal(t, "Customers", fk.ToTableName)
		assert.Equal(t, "Id", fk.ToColumnName)

		procs, err := p.GetStoredProcedures(ctx, DefaultSchema, "order_total")
		require.NoError(t, err)
		require.Len(t, procs, 1)
		assert.Equal(t, "FUNCTION", procs[0].Kind)

		params, err := p.GetParameters(ctx, DefaultSchema, "order_total")
		require.NoError(t, err)
		require.Len(t, params, 2)
		assert.Equal(t, schema.Return, params[0].Direction)
		assert.Equal(t, "order_id", params[1].Name)
		assert.Equal(t, schema.In, params[1].Direction)
	})

	t.Run("EngineErrors", func(t *testing.T) {
		_, err := pg.ExecuteQuery(ctx, `SELECT * FROM "Missing"`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `relation "Missing" does not exist`)
		assert.True(t, errors.Is(TranslateError(err), ErrUndefinedTable))

		_, err = pg.ExecuteNonQuery(ctx, `INSERT INTO "Orders" ("Id", "Name") VALUES (1, 'dup')`)
		require.Error(t, err)
		assert.ErrorIs(t, TranslateError(err), ErrDuplicateKey)
		assert.False(t, IsRetryable(err))
	})
}
