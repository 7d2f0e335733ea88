package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service coordinates every stock-affecting operation. Purchases, returns and
// the movement log live in the Store; products are reached through the
// ProductStore port. One operation runs at a time.
type Service struct {
	mu       sync.Mutex
	store    *Store
	products ProductStore
	notifier Notifier
	logger   *slog.Logger
}

// NewService builds a ledger Service. notifier may be nil.
func NewService(store *Store, products ProductStore, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, products: products, notifier: notifier, logger: logger}
}

// Store exposes the underlying collections for read-side consumers.
func (s *Service) Store() *Store {
	return s.store
}

// Products exposes the product port for read-side consumers.
func (s *Service) Products() ProductStore {
	return s.products
}

// PurchaseInput describes a new intake event.
type PurchaseInput struct {
	ProductID     string
	Quantity      int
	CostPrice     float64
	Supplier      string
	PurchaseDate  time.Time
	InvoiceNumber string
	Notes         string
}

// PurchaseUpdate carries the editable purchase fields. Nil means unchanged.
type PurchaseUpdate struct {
	Quantity      *int
	CostPrice     *float64
	Supplier      *string
	PurchaseDate  *time.Time
	InvoiceNumber *string
	Notes         *string
}

// AddPurchase records an intake event: it creates the Purchase, moves the
// product stock in by the purchased quantity and appends one movement with
// reference to the new purchase.
func (s *Service) AddPurchase(ctx context.Context, input PurchaseInput) (Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Quantity <= 0 {
		return Purchase{}, ErrInvalidQuantity
	}
	product, err := s.products.Get(ctx, input.ProductID)
	if err != nil {
		return Purchase{}, err
	}

	now := time.Now().UTC()
	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}
	purchase := Purchase{
		ID:               uuid.NewString(),
		ProductID:        product.ID,
		ProductName:      product.Name,
		Supplier:         input.Supplier,
		Quantity:         input.Quantity,
		OriginalQuantity: input.Quantity,
		CostPrice:        input.CostPrice,
		TotalCost:        float64(input.Quantity) * input.CostPrice,
		PurchaseDate:     purchaseDate,
		InvoiceNumber:    input.InvoiceNumber,
		Notes:            input.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.moveStock(ctx, product.ID, input.Quantity, MovementIn); err != nil {
		return Purchase{}, err
	}
	s.store.update(func() {
		s.store.purchases = append(s.store.purchases, purchase)
		s.store.appendMovement(product.ID, product.Name, MovementIn, input.Quantity,
			fmt.Sprintf("Purchase from %s", input.Supplier), purchase.ID)
	})
	s.logger.Info("purchase recorded",
		slog.String("purchase_id", purchase.ID),
		slog.String("product_id", product.ID),
		slog.Int("quantity", input.Quantity))
	return purchase, nil
}

// UpdatePurchase overwrites the editable purchase fields. A quantity change
// moves stock by the difference and appends one adjustment movement; edits to
// the other fields leave stock untouched.
func (s *Service) UpdatePurchase(ctx context.Context, id string, updates PurchaseUpdate) (Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing Purchase
	var found bool
	s.store.view(func() {
		existing, found = s.store.findPurchase(id)
	})
	if !found {
		return Purchase{}, ErrPurchaseNotFound
	}

	if updates.Quantity != nil && *updates.Quantity <= 0 {
		return Purchase{}, ErrInvalidQuantity
	}
	if updates.Quantity != nil && *updates.Quantity != existing.Quantity {
		delta := *updates.Quantity - existing.Quantity
		direction := MovementIn
		if delta < 0 {
			direction = MovementOut
		}
		magnitude := delta
		if magnitude < 0 {
			magnitude = -magnitude
		}
		if err := s.moveStock(ctx, existing.ProductID, magnitude, direction); err != nil {
			return Purchase{}, err
		}
		s.store.update(func() {
			s.store.appendMovement(existing.ProductID, existing.ProductName, direction, magnitude,
				fmt.Sprintf("Purchase adjustment - %s", existing.Supplier), existing.ID)
		})
	}

	updated := existing
	if updates.Quantity != nil {
		updated.Quantity = *updates.Quantity
	}
	if updates.CostPrice != nil {
		updated.CostPrice = *updates.CostPrice
	}
	if updates.Supplier != nil {
		updated.Supplier = *updates.Supplier
	}
	if updates.PurchaseDate != nil {
		updated.PurchaseDate = *updates.PurchaseDate
	}
	if updates.InvoiceNumber != nil {
		updated.InvoiceNumber = *updates.InvoiceNumber
	}
	if updates.Notes != nil {
		updated.Notes = *updates.Notes
	}
	updated.TotalCost = float64(updated.Quantity) * updated.CostPrice
	updated.UpdatedAt = time.Now().UTC()

	s.store.update(func() {
		for i := range s.store.purchases {
			if s.store.purchases[i].ID == id {
				s.store.purchases[i] = updated
				break
			}
		}
	})
	return updated, nil
}

// DeletePurchase reverses the creation quantity and removes the record. The
// reversal deliberately ignores any quantity edits made after creation: the
// deletion undoes the original intake amount, not the post-edit amount.
func (s *Service) DeletePurchase(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing Purchase
	var found bool
	s.store.view(func() {
		existing, found = s.store.findPurchase(id)
	})
	if !found {
		return ErrPurchaseNotFound
	}

	if err := s.moveStock(ctx, existing.ProductID, existing.OriginalQuantity, MovementOut); err != nil {
		return err
	}
	s.store.update(func() {
		s.store.appendMovement(existing.ProductID, existing.ProductName, MovementOut, existing.OriginalQuantity,
			fmt.Sprintf("Purchase deleted - %s", existing.Supplier), existing.ID)
		purchases := s.store.purchases[:0]
		for _, p := range s.store.purchases {
			if p.ID != id {
				purchases = append(purchases, p)
			}
		}
		s.store.purchases = purchases
	})
	s.logger.Info("purchase deleted",
		slog.String("purchase_id", id),
		slog.Int("reversed_quantity", existing.OriginalQuantity))
	return nil
}

// UpdateProductStock applies a raw stock delta: "in" adds the quantity, "out"
// subtracts it floored at zero. It writes no movement; callers pair it with
// their own audit entry.
func (s *Service) UpdateProductStock(ctx context.Context, productID string, quantity int, direction MovementType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveStock(ctx, productID, quantity, direction)
}

// AdjustStock sets the stock level directly, as after a stocktake, and
// appends one adjustment movement whose quantity is the magnitude of the
// correction.
func (s *Service) AdjustStock(ctx context.Context, productID string, newStock int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	diff := newStock - product.Stock
	if diff < 0 {
		diff = -diff
	}
	if err := s.products.SetStock(ctx, productID, newStock); err != nil {
		return err
	}
	s.store.update(func() {
		s.store.appendMovement(product.ID, product.Name, MovementAdjustment, diff, reason, "")
	})
	return nil
}

// RecordMovement appends an audit entry without touching stock. The product
// create flow uses it for the initial stock entry.
func (s *Service) RecordMovement(productID, productName string, movementType MovementType, quantity int, reason, reference string) {
	s.store.update(func() {
		s.store.appendMovement(productID, productName, movementType, quantity, reason, reference)
	})
}

// ProcessSale decrements stock for every order line and appends one outbound
// movement per line referencing the order. After each decrement the product
// is checked against its reorder threshold and low-stock events go to the
// notifier. Decrements clamp at zero; the cart pre-check is the oversell
// guard, direct callers bypass it knowingly.
func (s *Service) ProcessSale(ctx context.Context, orderID string, lines []SaleLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range lines {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if err := s.moveStock(ctx, line.ProductID, line.Quantity, MovementOut); err != nil {
			return err
		}
		s.store.update(func() {
			s.store.appendMovement(line.ProductID, line.ProductName, MovementOut, line.Quantity,
				fmt.Sprintf("Sale - Order #%s", orderID), orderID)
		})

		product, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if product.LowStock() && s.notifier != nil {
			s.notifier.NotifyLowStock(ctx, LowStockEvent{
				ProductID:   product.ID,
				ProductName: product.Name,
				Stock:       product.Stock,
				MinStock:    product.MinStock,
				OrderID:     orderID,
			})
		}
	}
	return nil
}

// CheckAvailability is the cart-side pre-check: it rejects a requested
// quantity that exceeds the live stock level at the moment of the call.
func (s *Service) CheckAvailability(ctx context.Context, productID string, quantity int) (Product, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return Product{}, err
	}
	if quantity > product.Stock {
		return Product{}, &InsufficientStockError{ProductID: productID, Available: product.Stock, Requested: quantity}
	}
	return product, nil
}

// moveStock applies a raw stock delta. Callers hold s.mu.
func (s *Service) moveStock(ctx context.Context, productID string, quantity int, direction MovementType) error {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	newStock := product.Stock
	switch direction {
	case MovementIn:
		newStock += quantity
	case MovementOut:
		newStock -= quantity
		if newStock < 0 {
			newStock = 0
		}
	default:
		return fmt.Errorf("ledger: unsupported movement direction %q", direction)
	}
	return s.products.SetStock(ctx, productID, newStock)
}

// appendMovement prepends one audit entry. Callers hold the store lock.
func (s *Store) appendMovement(productID, productName string, movementType MovementType, quantity int, reason, reference string) {
	movement := StockMovement{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: productName,
		Type:        movementType,
		Quantity:    quantity,
		Reason:      reason,
		Timestamp:   time.Now().UTC(),
		Reference:   reference,
	}
	s.movements = append([]StockMovement{movement}, s.movements...)
}
