package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/orm/v1/query"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

type order struct {
	ID   int    `gorm:"column:Id;primaryKey"`
	Name string `gorm:"column:Name"`
	Paid bool   `gorm:"column:Paid"`
}

func (order) TableName() string { return "Orders" }

var fixture = []string{
	"CREATE TABLE `Customers` (`Id` INT AUTO_INCREMENT PRIMARY KEY, `Name` VARCHAR(80) NOT NULL)",
	"CREATE TABLE `Orders` (" +
		"`Id` INT AUTO_INCREMENT PRIMARY KEY, " +
		"`CustomerId` INT NULL, " +
		"`Name` VARCHAR(120) NOT NULL, " +
		"`Paid` TINYINT(1) NOT NULL DEFAULT 0, " +
		"`Total` DECIMAL(12,2) NULL, " +
		"CONSTRAINT `fk_orders_customer` FOREIGN KEY (`CustomerId`) REFERENCES `Customers`(`Id`))",
	"CREATE VIEW `PaidOrders` AS SELECT `Id`, `Name` FROM `Orders` WHERE `Paid` = 1",
	"CREATE FUNCTION `order_count`(min_id INT) RETURNS INT DETERMINISTIC READS SQL DATA RETURN (SELECT COUNT(*) FROM `Orders` WHERE `Id` >= min_id)",
	"INSERT INTO `Orders` (`Name`, `Paid`) VALUES ('first', 1), ('second', 0)",
}

func setupMariaDBContainer(ctx context.Context) (testcontainers.Container, Config, error) {
	req := testcontainers.ContainerRequest{
		Image: "mariadb:11",
		Env: map[string]string{
			"MARIADB_ROOT_PASSWORD": "testpass",
			"MARIADB_DATABASE":      "testdb",
		},
		ExposedPorts: []string{"3306/tcp"},
		WaitingFor:   wait.ForListeningPort("3306/tcp").WithStartupTimeout(60 * time.Second),
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, Config{}, fmt.Errorf("failed to start mariadb container: %w", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, Config{}, fmt.Errorf("failed to get host: %w", err)
	}
	port, err := c.MappedPort(ctx, "3306")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, Config{}, fmt.Errorf("failed to get mapped port: %w", err)
	}

	cfg := Config{Connection: Connection{
		Host: host, Port: port.Port(), User: "root", Password: "testpass", DbName: "testdb", ParseTime: true,
	}}
	if err := waitForMariaDBReady(cfg, 60*time.Second); err != nil {
		_ = c.Terminate(ctx)
		return nil, Config{}, err
	}
	return c, cfg, nil
}

func waitForMariaDBReady(cfg Config, timeout time.Duration) error {
	dsn, err := DSN(cfg)
	if err != nil {
		return err
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		db, err := sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			_ = db.Close()
			if err == nil {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for MariaDB to be ready after %s", timeout)
}

func TestMariaDBWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	c, cfg, err := setupMariaDBContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := c.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var db *MariaDB
	app := fxtest.New(t,
		fx.Supply(cfg),
		FXModule,
		fx.Populate(&db),
	)
	app.RequireStart()
	defer app.RequireStop()

	for _, stmt := range fixture {
		_, err := db.ExecuteNonQuery(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	t.Run("QueryReuse", func(t *testing.T) {
		q, err := query.New[order](db)
		require.NoError(t, err)
		defer q.Close()

		all, err := q.Execute(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		paid, err := q.Execute(ctx, "`Paid` = ?", true)
		require.NoError(t, err)
		require.Len(t, paid, 1)
		assert.True(t, paid[0].Paid)

		all, err = q.Execute(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("SchemaProvider", func(t *testing.T) {
		p, err := NewSchemaProvider(db)
		require.NoError(t, err)
		defer p.Close()

		tables, err := p.GetTables(ctx, "testdb")
		require.NoError(t, err)
		require.Len(t, tables, 2)
		assert.Equal(t, "Customers", tables[0].Name)

		views, err := p.GetViews(ctx, "testdb")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "PaidOrders", views[0].Name)

		cols, err := p.GetColumns(ctx, "testdb", "Orders")
		require.NoError(t, err)
		require.Len(t, cols, 5)
		assert.Equal(t, schema.Boolean, cols[3].DataType)
		assert.Equal(t, schema.Decimal, cols[4].DataType)
		assert.EqualValues(t, 2, cols[4].Scale)

		constraints, err := p.GetConstraints(ctx, "testdb", "Orders")
		require.NoError(t, err)
		byType := map[schema.ConstraintType]schema.Constraint{}
		for _, c := range constraints {
			byType[c.Type] = c
		}
		assert.Equal(t, "Id", byType[schema.PrimaryKey].FromColumnName)
		assert.Equal(t, "Customers", byType[schema.ForeignKey].ToTableName)

		procs, err := p.GetStoredProcedures(ctx, "testdb")
		require.NoError(t, err)
		require.Len(t, procs, 1)
		assert.Equal(t, "FUNCTION", procs[0].Kind)

		params, err := p.GetParameters(ctx, "testdb", "order_count")
		require.NoError(t, err)
		require.Len(t, params, 2)
		assert.Equal(t, schema.Return, params[0].Direction)
		assert.Equal(t, "min_id", params[1].Name)
	})

	t.Run("EngineErrors", func(t *testing.T) {
		_, err := db.ExecuteQuery(ctx, "SELECT * FROM `Missing`")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "doesn't exist")
		assert.ErrorIs(t, TranslateError(err), ErrUndefinedTable)
	})
}
