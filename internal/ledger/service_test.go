package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeProducts struct {
	mu       sync.Mutex
	products map[string]Product
	version  uint64
}

func newFakeProducts(products ...Product) *fakeProducts {
	f := &fakeProducts{products: make(map[string]Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Get(ctx context.Context, id string) (Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProducts) List(ctx context.Context) ([]Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) SetStock(ctx context.Context, id string, stock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Stock = stock
	f.products[id] = p
	f.version++
	return nil
}

func (f *fakeProducts) Version() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.version
}

func (f *fakeProducts) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.Get(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

type capturingNotifier struct {
	events []LowStockEvent
}

func (n *capturingNotifier) NotifyLowStock(ctx context.Context, evt LowStockEvent) {
	n.events = append(n.events, evt)
}

func coffee() Product {
	return Product{ID: "p1", Name: "Coffee", Category: "Beverages", CostPrice: 2.5, SellingPrice: 4.99, Stock: 50, MinStock: 10, Supplier: "ABC Distributors"}
}

func newTestService(products ...Product) (*Service, *fakeProducts) {
	repo := newFakeProducts(products...)
	return NewService(NewStore(), repo, nil, nil), repo
}

func TestAddPurchaseIncreasesStock(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	purchase, err := svc.AddPurchase(ctx, PurchaseInput{
		ProductID: "p1", Quantity: 10, CostPrice: 2.5, Supplier: "ABC Distributors",
	})
	require.NoError(t, err)
	require.Equal(t, 60, repo.stock(t, "p1"))
	require.Equal(t, 10, purchase.Quantity)
	require.Equal(t, 10, purchase.OriginalQuantity)
	require.InDelta(t, 25.0, purchase.TotalCost, 0.001)

	movements := svc.Store().Movements()
	require.Len(t, movements, 1)
	require.Equal(t, MovementIn, movements[0].Type)
	require.Equal(t, 10, movements[0].Quantity)
	require.Equal(t, "Purchase from ABC Distributors", movements[0].Reason)
	require.Equal(t, purchase.ID, movements[0].Reference)
}

func TestAddPurchaseRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(coffee())
	ctx := context.Background()

	_, err := svc.AddPurchase(ctx, PurchaseInput{ProductID: "p1", Quantity: 0})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddPurchase(ctx, PurchaseInput{ProductID: "missing", Quantity: 5})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdatePurchaseQuantityMovesStockByDelta(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	purchase, err := svc.AddPurchase(ctx, PurchaseInput{
		ProductID: "p1", Quantity: 10, CostPrice: 2.5, Supplier: "ABC Distributors",
	})
	require.NoError(t, err)

	qty := 15
	updated, err := svc.UpdatePurchase(ctx, purchase.ID, PurchaseUpdate{Quantity: &qty})
	require.NoError(t, err)
	require.Equal(t, 65, repo.stock(t, "p1"))
	require.Equal(t, 15, updated.Quantity)
	require.Equal(t, 10, updated.OriginalQuantity)
	require.InDelta(t, 37.5, updated.TotalCost, 0.001)

	movements := svc.Store().Movements()
	require.Equal(t, MovementIn, movements[0].Type)
	require.Equal(t, 5, movements[0].Quantity)
	require.Equal(t, "Purchase adjustment - ABC Distributors", movements[0].Reason)

	qty = 8
	_, err = svc.UpdatePurchase(ctx, purchase.ID, PurchaseUpdate{Quantity: &qty})
	require.NoError(t, err)
	require.Equal(t, 58, repo.stock(t, "p1"))

	movements = svc.Store().Movements()
	require.Equal(t, MovementOut, movements[0].Type)
	require.Equal(t, 7, movements[0].Quantity)
}

func TestUpdatePurchaseNonQuantityFieldsLeaveStockAlone(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	purchase, err := svc.AddPurchase(ctx, PurchaseInput{
		ProductID: "p1", Quantity: 10, CostPrice: 2.5, Supplier: "ABC Distributors",
	})
	require.NoError(t, err)

	notes := "restock"
	updated, err := svc.UpdatePurchase(ctx, purchase.ID, PurchaseUpdate{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, "restock", updated.Notes)
	require.Equal(t, 60, repo.stock(t, "p1"))
	require.Len(t, svc.Store().Movements(), 1)
}

func TestDeletePurchaseReversesCreationQuantity(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	purchase, err := svc.AddPurchase(ctx, PurchaseInput{
		ProductID: "p1", Quantity: 10, CostPrice: 2.5, Supplier: "ABC Distributors",
	})
	require.NoError(t, err)
	require.Equal(t, 60, repo.stock(t, "p1"))

	qty := 15
	_, err = svc.UpdatePurchase(ctx, purchase.ID, PurchaseUpdate{Quantity: &qty})
	require.NoError(t, err)
	require.Equal(t, 65, repo.stock(t, "p1"))

	// Deletion reverses the quantity recorded at creation, not the edited
	// quantity, leaving the extra 5 from the edit in place.
	require.NoError(t, svc.DeletePurchase(ctx, purchase.ID))
	require.Equal(t, 55, repo.stock(t, "p1"))
	require.Empty(t, svc.Store().Purchases())

	movements := svc.Store().Movements()
	require.Equal(t, MovementOut, movements[0].Type)
	require.Equal(t, 10, movements[0].Quantity)
	require.Equal(t, "Purchase deleted - ABC Distributors", movements[0].Reason)
}

func TestAddThenDeletePurchaseIsNetZero(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	for _, qty := range []int{1, 10, 37} {
		purchase, err := svc.AddPurchase(ctx, PurchaseInput{
			ProductID: "p1", Quantity: qty, CostPrice: 2.5, Supplier: "ABC Distributors",
		})
		require.NoError(t, err)
		require.NoError(t, svc.DeletePurchase(ctx, purchase.ID))
		require.Equal(t, 50, repo.stock(t, "p1"))
	}
}

func TestDeletePurchaseNotFound(t *testing.T) {
	svc, _ := newTestService(coffee())
	require.ErrorIs(t, svc.DeletePurchase(context.Background(), "missing"), ErrPurchaseNotFound)
}

func TestUpdateProductStockClampsAtZero(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	require.NoError(t, svc.UpdateProductStock(ctx, "p1", 80, MovementOut))
	require.Equal(t, 0, repo.stock(t, "p1"))

	require.NoError(t, svc.UpdateProductStock(ctx, "p1", 30, MovementIn))
	require.Equal(t, 30, repo.stock(t, "p1"))

	// Raw deltas write no movement.
	require.Empty(t, svc.Store().Movements())
}

func TestAdjustStockSetsAbsoluteLevel(t *testing.T) {
	svc, repo := newTestService(coffee())
	ctx := context.Background()

	require.NoError(t, svc.AdjustStock(ctx, "p1", 42, "Stocktake correction"))
	require.Equal(t, 42, repo.stock(t, "p1"))

	movements := svc.Store().Movements()
	require.Len(t, movements, 1)
	require.Equal(t, MovementAdjustment, movements[0].Type)
	require.Equal(t, 8, movements[0].Quantity)
	require.Equal(t, "Stocktake correction", movements[0].Reason)
}

func TestProcessSaleDecrementsAndLogsPerLine(t *testing.T) {
	soda := Product{ID: "p2", Name: "Soda", Stock: 75, MinStock: 15}
	repo := newFakeProducts(coffee(), soda)
	notifier := &capturingNotifier{}
	svc := NewService(NewStore(), repo, notifier, nil)
	ctx := context.Background()

	err := svc.ProcessSale(ctx, "order-1", []SaleLine{
		{ProductID: "p1", ProductName: "Coffee", Quantity: 2},
		{ProductID: "p2", ProductName: "Soda", Quantity: 3},
	})
	require.NoError(t, err)
	require.Equal(t, 48, repo.stock(t, "p1"))
	require.Equal(t, 72, repo.stock(t, "p2"))
	require.Empty(t, notifier.events)

	movements := svc.Store().Movements()
	require.Len(t, movements, 2)
	// Most recent first.
	require.Equal(t, "Soda", movements[0].ProductName)
	require.Equal(t, "Coffee", movements[1].ProductName)
	for _, m := range movements {
		require.Equal(t, MovementOut, m.Type)
		require.Equal(t, "Sale - Order #order-1", m.Reason)
		require.Equal(t, "order-1", m.Reference)
	}
}

func TestProcessSaleNotifiesAtReorderThreshold(t *testing.T) {
	low := Product{ID: "p3", Name: "Burger", Stock: 6, MinStock: 5}
	repo := newFakeProducts(low)
	notifier := &capturingNotifier{}
	svc := NewService(NewStore(), repo, notifier, nil)

	err := svc.ProcessSale(context.Background(), "order-2", []SaleLine{
		{ProductID: "p3", ProductName: "Burger", Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, notifier.events, 1)
	require.Equal(t, "p3", notifier.events[0].ProductID)
	require.Equal(t, 4, notifier.events[0].Stock)
	require.Equal(t, 5, notifier.events[0].MinStock)
	require.Equal(t, "order-2", notifier.events[0].OrderID)
}

func TestProcessSaleClampsOversell(t *testing.T) {
	repo := newFakeProducts(Product{ID: "p4", Name: "Chips", Stock: 3, MinStock: 0})
	svc := NewService(NewStore(), repo, nil, nil)

	err := svc.ProcessSale(context.Background(), "order-3", []SaleLine{
		{ProductID: "p4", ProductName: "Chips", Quantity: 10},
	})
	require.NoError(t, err)
	require.Equal(t, 0, repo.stock(t, "p4"))
}

func TestCheckAvailability(t *testing.T) {
	svc, _ := newTestService(coffee())
	ctx := context.Background()

	product, err := svc.CheckAvailability(ctx, "p1", 50)
	require.NoError(t, err)
	require.Equal(t, "Coffee", product.Name)

	_, err = svc.CheckAvailability(ctx, "p1", 51)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, 50, insufficient.Available)
	require.Equal(t, 51, insufficient.Requested)

	_, err = svc.CheckAvailability(ctx, "missing", 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestRecordMovementWritesAuditOnly(t *testing.T) {
	svc, repo := newTestService(coffee())

	svc.RecordMovement("p1", "Coffee", MovementIn, 50, "Initial stock", "p1")
	require.Equal(t, 50, repo.stock(t, "p1"))

	movements := svc.Store().Movements()
	require.Len(t, movements, 1)
	require.Equal(t, "Initial stock", movements[0].Reason)
}

func TestMovementLogIsMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(coffee())
	ctx := context.Background()

	_, err := svc.AddPurchase(ctx, PurchaseInput{ProductID: "p1", Quantity: 5, Supplier: "ABC Distributors"})
	require.NoError(t, err)
	require.NoError(t, svc.AdjustStock(ctx, "p1", 40, "Stocktake"))

	movements := svc.Store().Movements()
	require.Len(t, movements, 2)
	require.Equal(t, "Stocktake", movements[0].Reason)
	require.Equal(t, "Purchase from ABC Distributors", movements[1].Reason)
}
