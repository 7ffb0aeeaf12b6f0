package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/orm/v1/duckdb"
	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/query"
)

type order struct {
	ID int `gorm:"column:Id;primaryKey"`
}

func (order) TableName() string { return "Orders" }

func TestObserveOperation(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "orm-test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "schema", Operation: "get_columns", Duration: 20 * time.Millisecond, Size: 4,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "schema", Operation: "get_columns", Error: errors.New("boom"), Size: 4,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("schema", "get_columns", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("schema", "get_columns", StatusError)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.rowsTotal.WithLabelValues("schema", "get_columns")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.operationDuration))
}

func TestNamespaceAndServiceLabel(t *testing.T) {
	m := NewMetrics(Config{Namespace: "orm", ServiceName: "catalog-sync"})
	m.ObserveOperation(observability.OperationContext{Component: "access", Operation: "insert", Size: 1})

	expected := `
# HELP orm_operations_total Total number of data access operations
# TYPE orm_operations_total counter
orm_operations_total{component="access",operation="insert",service="catalog-sync",status="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "orm_operations_total"))
}

func TestCreateCustomMetrics(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "orm-test"})

	c := m.CreateCounter("snapshots_total", "Snapshots loaded", []string{"engine"})
	c.WithLabelValues("duckdb").Add(2)
	g := m.CreateGauge("tables", "Tables in the last snapshot", []string{"engine"})
	g.WithLabelValues("duckdb").Set(3)
	h := m.CreateHistogram("snapshot_seconds", "Snapshot load time", []string{"engine"}, []float64{0.1, 1})
	h.WithLabelValues("duckdb").Observe(0.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("duckdb")))
	assert.Equal(t, 3.0, testutil.ToFloat64(g.WithLabelValues("duckdb")))
	count, err := testutil.GatherAndCount(m.Registry, "snapshot_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQueryExecutorReportsToMetrics(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(Config{ServiceName: "orm-test"})

	db, err := duckdb.New(duckdb.Config{})
	require.NoError(t, err)
	defer db.Close()
	_, err = db.ExecuteNonQuery(ctx, `CREATE TABLE "Orders" ("Id" INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.ExecuteNonQuery(ctx, `INSERT INTO "Orders" VALUES (1), (2)`)
	require.NoError(t, err)

	q, err := query.New[order](db, query.WithObserver(m))
	require.NoError(t, err)
	defer q.Close()

	_, err = q.Execute(ctx, "")
	require.NoError(t, err)
	_, err = q.Execute(ctx, `"Nope" = 1`)
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("query", "query", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("query", "query", StatusError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsTotal.WithLabelValues("query", "query")))
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "orm-test"})
	m.ObserveOperation(observability.OperationContext{Component: "query", Operation: "query"})

	srv := httptest.NewServer(m.Server.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "operations_total")
}

func TestFXModule(t *testing.T) {
	var obs observability.Observer
	app := fxtest.New(t,
		fx.Supply(Config{Address: "127.0.0.1:0", ServiceName: "orm-test"}),
		FXModule,
		fx.Populate(&obs),
	)
	app.RequireStart()
	_, ok := obs.(*Metrics)
	assert.True(t, ok)
	app.RequireStop()
}
