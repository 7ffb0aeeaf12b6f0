package redis

import (
	"context"
	"errors"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Aleph-Alpha/orm/v1/observability"
	"github.com/Aleph-Alpha/orm/v1/schema"
)

type memoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, Nil
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) DeleteMatching(_ context.Context, pattern string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}

var orderColumns = []schema.Column{
	{Database: "public", TableName: "Orders", Name: "Id", Ordinal: 1, NativeType: "integer", DataType: schema.Integer},
	{Database: "public", TableName: "Orders", Name: "Total", Ordinal: 2, NativeType: "numeric", DataType: schema.Decimal, Nullable: true, Precision: 12, Scale: 2},
}

func TestCachedColumns(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	inner.EXPECT().GetColumns(gomock.Any(), "public", "Orders").Return(orderColumns, nil).Times(1)

	store := newMemoryStore()
	p := NewCachedProvider(inner, store, WithTTL(time.Minute))

	first, err := p.GetColumns(ctx, "public", "Orders")
	require.NoError(t, err)
	second, err := p.GetColumns(ctx, "public", "Orders")
	require.NoError(t, err)

	assert.Equal(t, orderColumns, first)
	assert.Equal(t, orderColumns, second)
	assert.Contains(t, store.data, "orm:schema:columns:public:Orders")
	assert.Equal(t, time.Minute, store.ttls["orm:schema:columns:public:Orders"])
}

func TestCachedListingFilter(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	inner.EXPECT().GetTables(gomock.Any(), "public").Return([]schema.Table{
		{Database: "public", Name: "Customers", Kind: schema.KindTable},
		{Database: "public", Name: "Orders", Kind: schema.KindTable},
	}, nil).Times(1)

	p := NewCachedProvider(inner, newMemoryStore(), WithKeyPrefix("test"))

	some, err := p.GetTables(ctx, "public", "Orders", "Missing")
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "Orders", some[0].Name)

	all, err := p.GetTables(ctx, "public")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := p.GetTables(ctx, "public", "Missing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCachedEmptyListing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	inner.EXPECT().GetStoredProcedures(gomock.Any(), "keyspace").Return([]schema.StoredProcedure{}, nil).Times(1)
	inner.EXPECT().GetParameters(gomock.Any(), "keyspace", "fn").Return([]schema.Parameter{}, nil).Times(1)

	p := NewCachedProvider(inner, newMemoryStore())
	for i := 0; i < 2; i++ {
		procs, err := p.GetStoredProcedures(ctx, "keyspace")
		require.NoError(t, err)
		assert.NotNil(t, procs)
		assert.Empty(t, procs)

		params, err := p.GetParameters(ctx, "keyspace", "fn")
		require.NoError(t, err)
		assert.NotNil(t, params)
		assert.Empty(t, params)
	}
}

func TestInnerErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	boom := errors.New(`relation "pg_catalog.nope" does not exist`)
	inner.EXPECT().GetConstraints(gomock.Any(), "public", "Orders").Return(nil, boom).Times(2)

	store := newMemoryStore()
	p := NewCachedProvider(inner, store)

	for i := 0; i < 2; i++ {
		_, err := p.GetConstraints(ctx, "public", "Orders")
		assert.Same(t, boom, err)
	}
	assert.Empty(t, store.data)
}

func TestStoreFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	inner.EXPECT().GetViews(gomock.Any(), "public").Return([]schema.View{{Database: "public", Name: "OpenOrders"}}, nil).Times(2)

	store := newMemoryStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	p := NewCachedProvider(inner, store)

	for i := 0; i < 2; i++ {
		views, err := p.GetViews(ctx, "public")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "OpenOrders", views[0].Name)
	}
}

func TestUnreadableEntryIsReplaced(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	inner.EXPECT().GetColumns(gomock.Any(), "public", "Orders").Return(orderColumns, nil).Times(1)

	store := newMemoryStore()
	store.data["orm:schema:columns:public:Orders"] = []byte("not json")
	p := NewCachedProvider(inner, store)

	cols, err := p.GetColumns(ctx, "public", "Orders")
	require.NoError(t, err)
	assert.Equal(t, orderColumns, cols)

	cols, err = p.GetColumns(ctx, "public", "Orders")
	require.NoError(t, err)
	assert.Equal(t, orderColumns, cols)
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	store := newMemoryStore()
	p := NewCachedProvider(inner, store)

	store.data["orm:schema:columns:public:Orders"] = []byte("[]")
	store.data["orm:schema:tables:public"] = []byte("[]")
	store.data["orm:schema:tables:public2"] = []byte("[]")
	store.data["other:tables:public"] = []byte("[]")

	n, err := p.Invalidate(ctx, "public")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Contains(t, store.data, "orm:schema:tables:public2")
	assert.Contains(t, store.data, "other:tables:public")

	inner.EXPECT().GetTables(gomock.Any(), "public").Return([]schema.Table{{Database: "public", Name: "Orders"}}, nil)
	tables, err := p.GetTables(ctx, "public")
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestObserverReportsHits(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	inner.EXPECT().GetColumns(gomock.Any(), "public", "Orders").Return(orderColumns, nil)

	var got []observability.OperationContext
	p := NewCachedProvider(inner, newMemoryStore(), WithObserver(observability.ObserverFunc(func(c observability.OperationContext) {
		got = append(got, c)
	})))

	_, err := p.GetColumns(ctx, "public", "Orders")
	require.NoError(t, err)
	_, err = p.GetColumns(ctx, "public", "Orders")
	require.NoError(t, err)

	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, "schema_cache", c.Component)
		assert.Equal(t, "columns", c.Operation)
		assert.Equal(t, "public", c.Resource)
		assert.Equal(t, "Orders", c.SubResource)
		assert.EqualValues(t, 2, c.Size)
	}
	assert.Equal(t, false, got[0].Metadata["hit"])
	assert.Equal(t, true, got[1].Metadata["hit"])
}

func TestCloseClosesInner(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := schema.NewMockProvider(ctrl)
	closeErr := errors.New("close failed")
	inner.EXPECT().Close().Return(closeErr)

	p := NewCachedProvider(inner, newMemoryStore())
	assert.Same(t, closeErr, p.Close())
}

func TestNewClient(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c, err := NewClient(Config{})
		require.NoError(t, err)
		cfg := c.Config()
		assert.Equal(t, DefaultHost, cfg.Host)
		assert.Equal(t, DefaultPort, cfg.Port)
		assert.Equal(t, DefaultKeyPrefix, cfg.KeyPrefix)
		assert.Equal(t, DefaultTTL, cfg.TTL)
		assert.Equal(t, "localhost:6379", c.Client().Options().Addr)

		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		_, err = c.Get(context.Background(), "k")
		assert.True(t, IsClosedError(err))
		assert.ErrorIs(t, c.Ping(context.Background()), ErrClosed)
	})

	t.Run("InvalidPort", func(t *testing.T) {
		_, err := NewClient(Config{Port: 70000})
		assert.Error(t, err)
	})
}
