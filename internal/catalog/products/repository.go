package products

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

// Repository is the product collection behind the ledger's ProductStore port,
// extended with the catalog CRUD surface. Two implementations exist: the
// in-memory one seeded from sample data (the transient single-session mode)
// and the Postgres one (the remote store of a multi-terminal deployment).
type Repository interface {
	ledger.ProductStore
	Create(ctx context.Context, p ledger.Product) error
	Update(ctx context.Context, id string, updates ProductUpdate) (ledger.Product, error)
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, category string) (int, error)
	CountBySupplier(ctx context.Context, supplier string) (int, error)
}

// ProductUpdate carries the editable product fields. Nil means unchanged.
// Stock is deliberately absent: stock changes only flow through the ledger.
type ProductUpdate struct {
	Name         *string
	Category     *string
	CostPrice    *float64
	SellingPrice *float64
	MinStock     *int
	Barcode      *string
	Supplier     *string
	Description  *string
}

// MemoryRepository keeps the catalog in process memory, recreated from seed
// data on startup.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]ledger.Product
	version  atomic.Uint64
}

// NewMemoryRepository builds an in-memory repository holding seed.
func NewMemoryRepository(seed []ledger.Product) *MemoryRepository {
	r := &MemoryRepository{products: make(map[string]ledger.Product, len(seed))}
	for _, p := range seed {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.products[p.ID] = p
	}
	return r
}

// Get returns the product by id.
func (r *MemoryRepository) Get(ctx context.Context, id string) (ledger.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return ledger.Product{}, ledger.ErrProductNotFound
	}
	return p, nil
}

// List returns every product ordered by name.
func (r *MemoryRepository) List(ctx context.Context) ([]ledger.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ledger.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SetStock writes the stock level. Last write wins.
func (r *MemoryRepository) SetStock(ctx context.Context, id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return ledger.ErrProductNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	r.version.Add(1)
	return nil
}

// Version returns the mutation counter keying the memoized views.
func (r *MemoryRepository) Version() uint64 {
	return r.version.Load()
}

// Create inserts a new product.
func (r *MemoryRepository) Create(ctx context.Context, p ledger.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	r.version.Add(1)
	return nil
}

// Update overwrites the editable fields.
func (r *MemoryRepository) Update(ctx context.Context, id string, updates ProductUpdate) (ledger.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return ledger.Product{}, ledger.ErrProductNotFound
	}
	applyUpdate(&p, updates)
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	r.version.Add(1)
	return p, nil
}

// Delete removes the product.
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ledger.ErrProductNotFound
	}
	delete(r.products, id)
	r.version.Add(1)
	return nil
}

// CountByCategory counts products referencing the category name.
func (r *MemoryRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.products {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

// CountBySupplier counts products referencing the supplier name.
func (r *MemoryRepository) CountBySupplier(ctx context.Context, supplier string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.products {
		if p.Supplier == supplier {
			n++
		}
	}
	return n, nil
}

func applyUpdate(p *ledger.Product, updates ProductUpdate) {
	if updates.Name != nil {
		p.Name = *updates.Name
	}
	if updates.Category != nil {
		p.Category = *updates.Category
	}
	if updates.CostPrice != nil {
		p.CostPrice = *updates.CostPrice
	}
	if updates.SellingPrice != nil {
		p.SellingPrice = *updates.SellingPrice
	}
	if updates.MinStock != nil {
		p.MinStock = *updates.MinStock
	}
	if updates.Barcode != nil {
		p.Barcode = *updates.Barcode
	}
	if updates.Supplier != nil {
		p.Supplier = *updates.Supplier
	}
	if updates.Description != nil {
		p.Description = *updates.Description
	}
}
