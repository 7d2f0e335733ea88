package ledger

import (
	"errors"
	"fmt"
	"time"
)

// MovementType enumerates supported stock movements.
type MovementType string

const (
	// MovementIn represents an inbound movement.
	MovementIn MovementType = "in"
	// MovementOut represents an outbound movement.
	MovementOut MovementType = "out"
	// MovementAdjustment indicates a manual stock correction.
	MovementAdjustment MovementType = "adjustment"
)

// ReturnStatus enumerates the lifecycle of a sales or purchase return.
type ReturnStatus string

const (
	ReturnStatusPending  ReturnStatus = "pending"
	ReturnStatusApproved ReturnStatus = "approved"
	ReturnStatusRejected ReturnStatus = "rejected"
)

// Valid reports whether s is one of the known return statuses.
func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected:
		return true
	}
	return false
}

// Product is the authoritative on-hand record. Stock is mutated only through
// ledger operations so the movement log stays consistent with it.
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	CostPrice    float64   `json:"cost_price"`
	SellingPrice float64   `json:"selling_price"`
	Stock        int       `json:"stock"`
	MinStock     int       `json:"min_stock"`
	Barcode      string    `json:"barcode,omitempty"`
	Supplier     string    `json:"supplier,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Purchase models one intake event. ProductName and Supplier are denormalized
// snapshots taken at creation time.
type Purchase struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Supplier    string `json:"supplier"`
	Quantity    int    `json:"quantity"`
	// OriginalQuantity is the quantity at creation. Deletion reverses this
	// amount, not the post-edit quantity.
	OriginalQuantity int       `json:"original_quantity"`
	CostPrice        float64   `json:"cost_price"`
	TotalCost        float64   `json:"total_cost"`
	PurchaseDate     time.Time `json:"purchase_date"`
	InvoiceNumber    string    `json:"invoice_number,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SalesReturn records goods coming back from a customer. Only approved
// returns have a stock effect.
type SalesReturn struct {
	ID           string       `json:"id"`
	OrderID      string       `json:"order_id"`
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	Quantity     int          `json:"quantity"`
	UnitPrice    float64      `json:"unit_price"`
	TotalAmount  float64      `json:"total_amount"`
	Reason       string       `json:"reason"`
	ReturnDate   time.Time    `json:"return_date"`
	CustomerName string       `json:"customer_name,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Status       ReturnStatus `json:"status"`
}

// PurchaseReturn records goods going back to a supplier. Only approved
// returns have a stock effect.
type PurchaseReturn struct {
	ID          string       `json:"id"`
	PurchaseID  string       `json:"purchase_id"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int          `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	TotalAmount float64      `json:"total_amount"`
	Reason      string       `json:"reason"`
	ReturnDate  time.Time    `json:"return_date"`
	Supplier    string       `json:"supplier"`
	Notes       string       `json:"notes,omitempty"`
	Status      ReturnStatus `json:"status"`
}

// StockMovement is one append-only audit entry. Quantity is the magnitude of
// the delta, never the resulting level. Entries survive deletion of the
// record that caused them; the deletion appends its own reversal entry.
type StockMovement struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Type        MovementType `json:"type"`
	Quantity    int          `json:"quantity"`
	Reason      string       `json:"reason"`
	Timestamp   time.Time    `json:"timestamp"`
	Reference   string       `json:"reference,omitempty"`
}

// SaleLine is one cart line handed to ProcessSale.
type SaleLine struct {
	ProductID   string
	ProductName string
	Quantity    int
}

// InventoryReport aggregates the ledger totals for the dashboard.
type InventoryReport struct {
	TotalProducts        int     `json:"total_products"`
	TotalStockValue      float64 `json:"total_stock_value"`
	LowStockItems        int     `json:"low_stock_items"`
	OutOfStockItems      int     `json:"out_of_stock_items"`
	TotalSales           float64 `json:"total_sales"`
	TotalPurchases       float64 `json:"total_purchases"`
	TotalSalesReturns    float64 `json:"total_sales_returns"`
	TotalPurchaseReturns float64 `json:"total_purchase_returns"`
	Profit               float64 `json:"profit"`
}

// ErrProductNotFound indicates the referenced product does not exist.
var ErrProductNotFound = errors.New("ledger: product not found")

// ErrPurchaseNotFound indicates the referenced purchase does not exist.
var ErrPurchaseNotFound = errors.New("ledger: purchase not found")

// ErrReturnNotFound indicates the referenced return does not exist.
var ErrReturnNotFound = errors.New("ledger: return not found")

// ErrInvalidQuantity indicates a non-positive quantity.
var ErrInvalidQuantity = errors.New("ledger: quantity must be positive")

// ErrInvalidStatus indicates an unknown return status value.
var ErrInvalidStatus = errors.New("ledger: invalid return status")

// InsufficientStockError is raised by the cart layer when a requested
// quantity exceeds the live stock level.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("ledger: insufficient stock for product %s: available %d, requested %d", e.ProductID, e.Available, e.Requested)
}
