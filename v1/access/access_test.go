package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/orm/v1/command"
	"github.com/Aleph-Alpha/orm/v1/connector"
	"github.com/Aleph-Alpha/orm/v1/mapping"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

type order struct {
	ID   int    `gorm:"column:Id;primaryKey;autoIncrement"`
	Name string `gorm:"column:Name"`
}

func (order) TableName() string { return "Orders" }

type reading struct {
	Sensor int    `gorm:"column:Sensor;primaryKey"`
	Value  string `gorm:"column:Value"`
}

func (reading) TableName() string { return "Readings" }

type tag struct {
	Code  string `gorm:"column:Code"`
	Label string `gorm:"column:Label"`
}

func (tag) TableName() string { return "Tags" }

func newMockConnector(t *testing.T) *connector.MockConnector {
	t.Helper()
	return newDialectConnector(t, command.Postgres)
}

func newDialectConnector(t *testing.T, d command.Dialect) *connector.MockConnector {
	t.Helper()
	conn := connector.NewMockConnector(gomock.NewController(t))
	conn.EXPECT().Dialect().Return(d).AnyTimes()
	return conn
}

func TestInsertOmitsZeroAutoIncrementKey(t *testing.T) {
	ctx := context.Background()
	conn := newMockConnector(t)

	var ops []observability.OperationContext
	a, err := New[order](ctx, conn, WithObserver(observability.ObserverFunc(func(oc observability.OperationContext) {
		ops = append(ops, oc)
	})))
	require.NoError(t, err)

	gomock.InOrder(
		conn.EXPECT().ExecuteNonQuery(gomock.Any(), `INSERT INTO "Orders" ("Name") VALUES ($1)`, "first").Return(int64(1), nil),
		conn.EXPECT().ExecuteNonQuery(gomock.Any(), `INSERT INTO "Orders" ("Id", "Name") VALUES ($1, $2)`, 7, "second").Return(int64(1), nil),
	)

	require.NoError(t, a.Insert(ctx, &order{Name: "first"}))
	require.NoError(t, a.Insert(ctx, &order{ID: 7, Name: "second"}))

	require.Len(t, ops, 2)
	assert.Equal(t, "access", ops[0].Component)
	assert.Equal(t, "insert", ops[0].Operation)
	assert.Equal(t, "Orders", ops[0].Resource)
	assert.Equal(t, "postgres", ops[0].SubResource)
	assert.EqualValues(t, 1, ops[1].Size)
}

func TestInsertKeepsZeroKeyOnCQL(t *testing.T) {
	ctx := context.Background()
	conn := newDialectConnector(t, command.CQL)
	a, err := New[order](ctx, conn)
	require.NoError(t, err)

	conn.EXPECT().ExecuteNonQuery(gomock.Any(), `INSERT INTO "Orders" ("Id", "Name") VALUES (?, ?)`, 0, "zero").Return(int64(0), nil)
	require.NoError(t, a.Insert(ctx, &order{ID: 0, Name: "zero"}))
}

func TestInsertKeepsUntaggedZeroKey(t *testing.T) {
	ctx := context.Background()

	t.Run("NoSchema", func(t *testing.T) {
		conn := newMockConnector(t)
		a, err := New[reading](ctx, conn)
		require.NoError(t, err)

		conn.EXPECT().ExecuteNonQuery(gomock.Any(), `INSERT INTO "Readings" ("Sensor", "Value") VALUES ($1, $2)`, 0, "idle").Return(int64(1), nil)
		require.NoError(t, a.Insert(ctx, &reading{Value: "idle"}))
	})

	t.Run("CatalogDefault", func(t *testing.T) {
		conn := newMockConnector(t)
		provider := schema.NewMockProvider(gomock.NewController(t))
		provider.EXPECT().GetColumns(gomock.Any(), "public", "Readings").Return([]schema.Column{
			{Name: "Sensor", DataType: schema.Integer, Default: `nextval('"Readings_Sensor_seq"'::regclass)`},
			{Name: "Value", DataType: schema.Text},
		}, nil)
		provider.EXPECT().GetConstraints(gomock.Any(), "public", "Readings").Return([]schema.Constraint{}, nil)

		a, err := New[reading](ctx, conn, WithSchema(provider, "public"))
		require.NoError(t, err)

		conn.EXPECT().ExecuteNonQuery(gomock.Any(), `INSERT INTO "Readings" ("Value") VALUES ($1)`, "idle").Return(int64(1), nil)
		require.NoError(t, a.Insert(ctx, &reading{Value: "idle"}))
	})
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	conn := newMockConnector(t)
	a, err := New[order](ctx, conn)
	require.NoError(t, err)

	conn.EXPECT().ExecuteNonQuery(gomock.Any(), `UPDATE "Orders" SET "Name" = $1 WHERE "Id" = $2`, "renamed", 3).Return(int64(1), nil)
	conn.EXPECT().ExecuteNonQuery(gomock.Any(), `DELETE FROM "Orders" WHERE "Id" = $1`, 3).Return(int64(0), nil)

	n, err := a.Update(ctx, &order{ID: 3, Name: "renamed"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = a.Delete(ctx, &order{ID: 3})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMutationErrorPropagates(t *testing.T) {
	ctx := context.Background()
	conn := newMockConnector(t)
	a, err := New[order](ctx, conn)
	require.NoError(t, err)

	engineErr := connector.Wrap("postgres", "exec", "INSERT", errors.New(`duplicate key value violates unique constraint "orders_pkey"`))
	conn.EXPECT().ExecuteNonQuery(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), engineErr).Times(2)

	err = a.Insert(ctx, &order{Name: "x"})
	assert.Same(t, engineErr, err)

	err = a.InsertMany(ctx, []order{{Name: "a"}, {Name: "b"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, engineErr)
	assert.Contains(t, err.Error(), "insert item 0")
}

func TestKeylessEntity(t *testing.T) {
	ctx := context.Background()
	conn := newMockConnector(t)
	a, err := New[tag](ctx, conn)
	require.NoError(t, err)

	_, err = a.Update(ctx, &tag{Code: "x"})
	assert.ErrorIs(t, err, command.ErrNoKey)
	_, err = a.Delete(ctx, &tag{Code: "x"})
	assert.ErrorIs(t, err, command.ErrNoKey)
}

func TestWithSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("KeysFromCatalog", func(t *testing.T) {
		conn := newMockConnector(t)
		provider := schema.NewMockProvider(gomock.NewController(t))
		provider.EXPECT().GetColumns(gomock.Any(), "public", "Tags").Return([]schema.Column{
			{Name: "Code", DataType: schema.Text},
			{Name: "Label", DataType: schema.Text},
		}, nil).Times(1)
		provider.EXPECT().GetConstraints(gomock.Any(), "public", "Tags").Return([]schema.Constraint{
			{Name: "tags_pkey", Type: schema.PrimaryKey, FromColumnName: "Code"},
		}, nil).Times(1)

		a, err := New[tag](ctx, conn, WithSchema(provider, "public"))
		require.NoError(t, err)

		keys := a.Entity().Keys()
		require.Len(t, keys, 1)
		assert.Equal(t, "Code", keys[0].Name)
		assert.Equal(t, schema.Text, keys[0].DataType)

		conn.EXPECT().ExecuteNonQuery(gomock.Any(), `DELETE FROM "Tags" WHERE "Code" = $1`, "x").Return(int64(1), nil)
		_, err = a.Delete(ctx, &tag{Code: "x"})
		require.NoError(t, err)
	})

	t.Run("MissingColumn", func(t *testing.T) {
		conn := newMockConnector(t)
		provider := schema.NewMockProvider(gomock.NewController(t))
		provider.EXPECT().GetColumns(gomock.Any(), "public", "Tags").Return([]schema.Column{{Name: "Code"}}, nil)
		provider.EXPECT().GetConstraints(gomock.Any(), "public", "Tags").Return([]schema.Constraint{}, nil)

		_, err := New[tag](ctx, conn, WithSchema(provider, "public"))
		assert.ErrorIs(t, err, mapping.ErrUnknownColumn)
	})

	t.Run("CatalogFailure", func(t *testing.T) {
		conn := newMockConnector(t)
		provider := schema.NewMockProvider(gomock.NewController(t))
		catalogErr := errors.New("permission denied for schema public")
		provider.EXPECT().GetColumns(gomock.Any(), "public", "Tags").Return(nil, catalogErr)

		_, err := New[tag](ctx, conn, WithSchema(provider, "public"))
		assert.ErrorIs(t, err, catalogErr)
	})
}
