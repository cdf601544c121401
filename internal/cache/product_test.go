package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/flogin/internal/domain"
	"github.com/Skotchmaster/flogin/internal/models"
	"github.com/Skotchmaster/flogin/internal/repo"
	"github.com/Skotchmaster/flogin/internal/testutil"
)

type countingStore struct {
	*repo.GormRepo
	gets int
	// afterGet runs once, after the database read and before the result
	// reaches the cache.
	afterGet func()
}

func (s *countingStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	s.gets++
	p, err := s.GormRepo.GetProduct(ctx, id)
	if hook := s.afterGet; hook != nil {
		s.afterGet = nil
		hook()
	}
	return p, err
}

func newCachedStore(t *testing.T) (*ProductStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingStore{GormRepo: &repo.GormRepo{DB: testutil.NewDB(t)}}
	return &ProductStore{ProductStore: inner, RDB: rdb}, inner, mr
}

func kettle() *models.Product {
	return &models.Product{Name: "Kettle", Price: 100, Quantity: 1, Category: domain.CategoryHome}
}

func TestProductStore_ReadThrough(t *testing.T) {
	store, inner, mr := newCachedStore(t)
	ctx := context.Background()

	p := kettle()
	require.NoError(t, store.CreateProduct(ctx, p))

	first, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	second, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(productKey(p.ID, 0)))
	assert.Equal(t, DefaultTTL, mr.TTL(productKey(p.ID, 0)))
}

func TestProductStore_WritesInvalidate(t *testing.T) {
	store, inner, _ := newCachedStore(t)
	ctx := context.Background()

	p := kettle()
	require.NoError(t, store.CreateProduct(ctx, p))
	_, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)

	p.Name = "Teapot"
	require.NoError(t, store.SaveProduct(ctx, p))

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teapot", got.Name)
	assert.Equal(t, 2, inner.gets)

	require.NoError(t, store.DeleteProduct(ctx, p.ID))

	_, err = store.GetProduct(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetProduct(ctx, p.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 4, inner.gets)
}

func TestProductStore_ReadRacingWriteDoesNotPinStaleEntry(t *testing.T) {
	store, _, _ := newCachedStore(t)
	ctx := context.Background()

	p := kettle()
	require.NoError(t, store.CreateProduct(ctx, p))

	inner := store.ProductStore.(*countingStore)
	inner.afterGet = func() {
		updated := *p
		updated.Name = "Teapot"
		require.NoError(t, store.SaveProduct(ctx, &updated))
	}

	// this read fetched "Kettle" before the save landed and caches it late
	stale, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kettle", stale.Name)

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teapot", got.Name)
}

func TestProductStore_RedisDownFallsBack(t *testing.T) {
	store, inner, mr := newCachedStore(t)
	ctx := context.Background()

	p := kettle()
	require.NoError(t, store.CreateProduct(ctx, p))

	mr.Close()

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kettle", got.Name)
	require.NoError(t, store.DeleteProduct(ctx, p.ID))
	assert.Equal(t, 1, inner.gets)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := Connect(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	require.NoError(t, rdb.Close())

	addr := mr.Addr()
	mr.Close()
	_, err = Connect(context.Background(), addr, "")
	require.Error(t, err)
}
