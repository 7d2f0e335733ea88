package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

func newTestService(t *testing.T) (*Service, *MemoryRepository, *ledger.Service) {
	t.Helper()
	repo := NewMemoryRepository(nil)
	ledgerSvc := ledger.NewService(ledger.NewStore(), repo, nil, nil)
	return NewService(repo, ledgerSvc, testLogger()), repo, ledgerSvc
}

func TestCreateRecordsInitialStockMovement(t *testing.T) {
	svc, _, ledgerSvc := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{
		Name: "Coffee", Category: "Beverages", CostPrice: 2.5, SellingPrice: 4.99,
		Stock: 50, MinStock: 10, Supplier: "ABC Distributors",
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	movements := ledgerSvc.Store().Movements()
	require.Len(t, movements, 1)
	require.Equal(t, ledger.MovementIn, movements[0].Type)
	require.Equal(t, 50, movements[0].Quantity)
	require.Equal(t, "Initial stock", movements[0].Reason)
	require.Equal(t, p.ID, movements[0].Reference)
}

func TestCreateZeroStockSkipsMovement(t *testing.T) {
	svc, _, ledgerSvc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateInput{Name: "Soda", Category: "Beverages"})
	require.NoError(t, err)
	require.Empty(t, ledgerSvc.Store().Movements())
}

func TestUpdateAndDeleteMapNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	name := "Renamed"
	_, err := svc.Update(ctx, "missing", ProductUpdate{Name: &name})
	require.ErrorIs(t, err, httpx.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "missing"), httpx.ErrNotFound)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{
		Name: "Coffee", Category: "Beverages", CostPrice: 2.5, SellingPrice: 4.99, Stock: 50,
	})
	require.NoError(t, err)

	price := 5.49
	updated, err := svc.Update(ctx, p.ID, ProductUpdate{SellingPrice: &price})
	require.NoError(t, err)
	require.Equal(t, "Coffee", updated.Name)
	require.InDelta(t, 5.49, updated.SellingPrice, 0.001)
	require.Equal(t, 50, updated.Stock)
}

func TestCountersFollowReferences(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Name: "Coffee", Category: "Beverages", Supplier: "ABC Distributors"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{Name: "Soda", Category: "Beverages", Supplier: "XYZ Wholesale"})
	require.NoError(t, err)

	n, err := repo.CountByCategory(ctx, "Beverages")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = repo.CountBySupplier(ctx, "ABC Distributors")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
