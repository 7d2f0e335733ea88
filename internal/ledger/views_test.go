package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestViewsClassifyStockLevels(t *testing.T) {
	repo := newFakeProducts(
		Product{ID: "p1", Name: "Coffee", Stock: 50, MinStock: 10, CostPrice: 2.5},
		Product{ID: "p2", Name: "Soda", Stock: 10, MinStock: 15, CostPrice: 0.8},
		Product{ID: "p3", Name: "Chips", Stock: 0, MinStock: 20, CostPrice: 1.2},
	)
	views := NewViews(NewStore(), repo)
	ctx := context.Background()

	low, err := views.LowStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)

	out, err := views.OutOfStockProducts(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Chips", out[0].Name)

	value, err := views.InventoryValue(ctx)
	require.NoError(t, err)
	require.InDelta(t, 50*2.5+10*0.8, value, 0.001)
}

func TestReportAggregatesLedgerTotals(t *testing.T) {
	repo := newFakeProducts(coffee())
	svc := NewService(NewStore(), repo, nil, nil)
	views := NewViews(svc.Store(), repo)
	ctx := context.Background()

	_, err := svc.AddPurchase(ctx, PurchaseInput{
		ProductID: "p1", Quantity: 10, CostPrice: 2.5, Supplier: "ABC Distributors",
	})
	require.NoError(t, err)

	_, err = svc.AddSalesReturn(ctx, SalesReturnInput{
		OrderID: "order-1", ProductID: "p1", Quantity: 2, UnitPrice: 4.99,
		Reason: "Damaged", Status: ReturnStatusApproved,
	})
	require.NoError(t, err)

	// Pending returns stay out of the totals.
	_, err = svc.AddPurchaseReturn(ctx, PurchaseReturnInput{
		PurchaseID: "pur-1", ProductID: "p1", Quantity: 3, UnitPrice: 2.5,
		Reason: "Expired", Supplier: "ABC Distributors",
	})
	require.NoError(t, err)

	report, err := views.Report(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.TotalProducts)
	require.InDelta(t, 25.0, report.TotalPurchases, 0.001)
	require.InDelta(t, 9.98, report.TotalSalesReturns, 0.001)
	require.InDelta(t, 0.0, report.TotalPurchaseReturns, 0.001)
	require.InDelta(t, -25.0-9.98, report.Profit, 0.001)
}

func TestViewsRecomputeOnlyAfterMutation(t *testing.T) {
	repo := newFakeProducts(coffee())
	store := NewStore()
	svc := NewService(store, repo, nil, nil)
	views := NewViews(store, repo)
	ctx := context.Background()

	first, err := views.Report(ctx)
	require.NoError(t, err)

	again, err := views.Report(ctx)
	require.NoError(t, err)
	require.Equal(t, first, again)

	_, err = svc.AddPurchase(ctx, PurchaseInput{
		ProductID: "p1", Quantity: 10, CostPrice: 2.5, Supplier: "ABC Distributors",
	})
	require.NoError(t, err)

	after, err := views.Report(ctx)
	require.NoError(t, err)
	require.InDelta(t, 25.0, after.TotalPurchases, 0.001)
	require.Greater(t, after.TotalStockValue, first.TotalStockValue)
}
