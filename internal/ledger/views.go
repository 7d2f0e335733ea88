package ledger

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Views exposes the derived read models. Results are memoized per snapshot:
// the cache key is the pair of ledger and product store version counters, so
// a recompute happens only after a mutation. Concurrent readers of a stale
// key share one recompute through singleflight.
type Views struct {
	store    *Store
	products ProductStore

	mu     sync.Mutex
	group  singleflight.Group
	cached map[string]reportSnapshot
}

type reportSnapshot struct {
	lowStock   []Product
	outOfStock []Product
	value      float64
	report     InventoryReport
}

// NewViews builds the derived-view layer over a ledger store and product port.
func NewViews(store *Store, products ProductStore) *Views {
	return &Views{store: store, products: products, cached: make(map[string]reportSnapshot)}
}

func (v *Views) cacheKey() string {
	return fmt.Sprintf("%d:%d", v.store.Version(), v.products.Version())
}

func (v *Views) snapshot(ctx context.Context) (reportSnapshot, error) {
	key := v.cacheKey()
	v.mu.Lock()
	if snap, ok := v.cached[key]; ok {
		v.mu.Unlock()
		return snap, nil
	}
	v.mu.Unlock()

	result, err, _ := v.group.Do(key, func() (any, error) {
		snap, err := v.build(ctx)
		if err != nil {
			return nil, err
		}
		v.mu.Lock()
		// Retain only the fresh snapshot; older versions are unreachable.
		v.cached = map[string]reportSnapshot{key: snap}
		v.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return reportSnapshot{}, err
	}
	return result.(reportSnapshot), nil
}

func (v *Views) build(ctx context.Context) (reportSnapshot, error) {
	products, err := v.products.List(ctx)
	if err != nil {
		return reportSnapshot{}, err
	}

	var snap reportSnapshot
	for _, p := range products {
		if p.LowStock() {
			snap.lowStock = append(snap.lowStock, p)
		}
		if p.Stock == 0 {
			snap.outOfStock = append(snap.outOfStock, p)
		}
		snap.value += float64(p.Stock) * p.CostPrice
	}

	var totalPurchases, totalSalesReturns, totalPurchaseReturns float64
	for _, p := range v.store.Purchases() {
		totalPurchases += p.TotalCost
	}
	for _, r := range v.store.SalesReturns() {
		if r.Status == ReturnStatusApproved {
			totalSalesReturns += r.TotalAmount
		}
	}
	for _, r := range v.store.PurchaseReturns() {
		if r.Status == ReturnStatusApproved {
			totalPurchaseReturns += r.TotalAmount
		}
	}

	// Sales revenue is tracked by the POS order history, not the ledger.
	totalSales := 0.0
	snap.report = InventoryReport{
		TotalProducts:        len(products),
		TotalStockValue:      snap.value,
		LowStockItems:        len(snap.lowStock),
		OutOfStockItems:      len(snap.outOfStock),
		TotalSales:           totalSales,
		TotalPurchases:       totalPurchases,
		TotalSalesReturns:    totalSalesReturns,
		TotalPurchaseReturns: totalPurchaseReturns,
		Profit:               totalSales - totalPurchases + totalPurchaseReturns - totalSalesReturns,
	}
	return snap, nil
}

// LowStockProducts lists products at or below their reorder threshold.
func (v *Views) LowStockProducts(ctx context.Context) ([]Product, error) {
	snap, err := v.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.lowStock, nil
}

// OutOfStockProducts lists products with zero stock.
func (v *Views) OutOfStockProducts(ctx context.Context) ([]Product, error) {
	snap, err := v.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.outOfStock, nil
}

// InventoryValue totals stock at cost price.
func (v *Views) InventoryValue(ctx context.Context) (float64, error) {
	snap, err := v.snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return snap.value, nil
}

// Report assembles the dashboard totals.
func (v *Views) Report(ctx context.Context) (InventoryReport, error) {
	snap, err := v.snapshot(ctx)
	if err != nil {
		return InventoryReport{}, err
	}
	return snap.report, nil
}
