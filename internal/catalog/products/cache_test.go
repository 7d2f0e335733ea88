package products

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProducts() []ledger.Product {
	return []ledger.Product{
		{Name: "Coffee", Category: "Beverages", CostPrice: 2.5, SellingPrice: 4.99, Stock: 50, MinStock: 10},
		{Name: "Soda", Category: "Beverages", CostPrice: 0.8, SellingPrice: 1.99, Stock: 75, MinStock: 15},
	}
}

func newCachedRepo(t *testing.T) (*CachedRepository, *MemoryRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	inner := NewMemoryRepository(testProducts())
	return NewCachedRepository(inner, rdb, time.Minute, testLogger()), inner, mr
}

func TestCachedListStoresSnapshot(t *testing.T) {
	repo, _, mr := newCachedRepo(t)
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.True(t, mr.Exists("catalog:products:v0"))

	// Second read hits the cache entry.
	again, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first, again)
}

func TestCachedListInvalidatesOnMutation(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()

	first, err := repo.List(ctx)
	require.NoError(t, err)

	require.NoError(t, inner.SetStock(ctx, first[0].ID, 5))

	after, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, after[0].Stock)
	require.True(t, mr.Exists("catalog:products:v1"))
}

func TestCachedListFallsBackWhenRedisDown(t *testing.T) {
	repo, _, mr := newCachedRepo(t)
	ctx := context.Background()

	mr.Close()

	out, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
}
