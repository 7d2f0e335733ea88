package pos

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

// Cart holds the in-progress sale of a terminal. Adding a line checks the
// requested quantity, cumulative with what the cart already holds, against
// current stock so checkout cannot oversell through the normal flow.
type Cart struct {
	mu     sync.Mutex
	items  []CartItem
	ledger *ledger.Service
}

// NewCart builds an empty cart backed by the stock ledger.
func NewCart(ledgerSvc *ledger.Service) *Cart {
	return &Cart{ledger: ledgerSvc}
}

// AddItem adds quantity of the product to the cart, merging with an existing
// line. Returns ledger.InsufficientStockError when stock cannot cover the
// cumulative quantity.
func (c *Cart) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return ledger.ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	inCart := 0
	for _, item := range c.items {
		if item.ProductID == productID {
			inCart = item.Quantity
			break
		}
	}

	product, err := c.ledger.CheckAvailability(ctx, productID, inCart+quantity)
	if err != nil {
		return err
	}

	for i, item := range c.items {
		if item.ProductID == productID {
			c.items[i].Quantity += quantity
			c.items[i].Subtotal = lineSubtotal(item.UnitPrice, c.items[i].Quantity)
			return nil
		}
	}
	c.items = append(c.items, CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.SellingPrice,
		Quantity:    quantity,
		Subtotal:    lineSubtotal(product.SellingPrice, quantity),
	})
	return nil
}

// UpdateQuantity sets the line quantity. Zero or negative removes the line.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, item := range c.items {
		if item.ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrItemNotInCart
	}
	if quantity <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
		return nil
	}
	if _, err := c.ledger.CheckAvailability(ctx, productID, quantity); err != nil {
		return err
	}
	c.items[idx].Quantity = quantity
	c.items[idx].Subtotal = lineSubtotal(c.items[idx].UnitPrice, quantity)
	return nil
}

// Remove drops the product line from the cart.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.items {
		if item.ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a snapshot of the cart lines.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Subtotal sums the line subtotals.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(decimal.NewFromFloat(item.Subtotal))
	}
	f, _ := total.Float64()
	return f
}

// ItemCount sums the line quantities.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// lineSubtotal computes price*qty in decimal space to dodge float drift on
// repeated additions.
func lineSubtotal(unitPrice float64, quantity int) float64 {
	f, _ := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).Float64()
	return f
}
