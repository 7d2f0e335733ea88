package ledger

import (
	"context"
	"sync"
)

// ProductStore abstracts the persistent product collection. The ledger never
// reaches the catalog tables directly; catalog repositories implement this
// port. Writes are last-write-wins, there is no conflict detection.
type ProductStore interface {
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	SetStock(ctx context.Context, id string, stock int) error
	// Version increases on every product mutation and keys the memoized views.
	Version() uint64
}

// Store owns the ledger collections. All mutations run under one mutex, which
// is the service rendition of the original single-threaded event model: two
// ledger operations never interleave.
type Store struct {
	mu              sync.Mutex
	purchases       []Purchase
	salesReturns    []SalesReturn
	purchaseReturns []PurchaseReturn
	movements       []StockMovement
	version         uint64
}

// NewStore returns an empty ledger store.
func NewStore() *Store {
	return &Store{}
}

// update runs fn under the store lock and bumps the version counter.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.version++
}

// view runs fn under the store lock without bumping the version.
func (s *Store) view(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Version returns the current mutation counter.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Purchases returns a snapshot of the purchase collection.
func (s *Store) Purchases() []Purchase {
	var out []Purchase
	s.view(func() {
		out = make([]Purchase, len(s.purchases))
		copy(out, s.purchases)
	})
	return out
}

// SalesReturns returns a snapshot of the sales-return collection,
// most recent first.
func (s *Store) SalesReturns() []SalesReturn {
	var out []SalesReturn
	s.view(func() {
		out = make([]SalesReturn, len(s.salesReturns))
		copy(out, s.salesReturns)
	})
	return out
}

// PurchaseReturns returns a snapshot of the purchase-return collection,
// most recent first.
func (s *Store) PurchaseReturns() []PurchaseReturn {
	var out []PurchaseReturn
	s.view(func() {
		out = make([]PurchaseReturn, len(s.purchaseReturns))
		copy(out, s.purchaseReturns)
	})
	return out
}

// Movements returns a snapshot of the audit log, most recent first.
func (s *Store) Movements() []StockMovement {
	var out []StockMovement
	s.view(func() {
		out = make([]StockMovement, len(s.movements))
		copy(out, s.movements)
	})
	return out
}

func (s *Store) findPurchase(id string) (Purchase, bool) {
	for _, p := range s.purchases {
		if p.ID == id {
			return p, true
		}
	}
	return Purchase{}, false
}

func (s *Store) findSalesReturn(id string) (SalesReturn, bool) {
	for _, r := range s.salesReturns {
		if r.ID == id {
			return r, true
		}
	}
	return SalesReturn{}, false
}

func (s *Store) findPurchaseReturn(id string) (PurchaseReturn, bool) {
	for _, r := range s.purchaseReturns {
		if r.ID == id {
			return r, true
		}
	}
	return PurchaseReturn{}, false
}
