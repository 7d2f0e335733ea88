package ledger

import "context"

// LowStockEvent fires when a sale leaves a product at or below its reorder
// threshold. It is a side channel: consumers display or queue it, the ledger
// data contract does not include it.
type LowStockEvent struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	OrderID     string `json:"order_id,omitempty"`
}

// Notifier consumes low-stock events. Implementations must not block the sale.
type Notifier interface {
	NotifyLowStock(ctx context.Context, evt LowStockEvent)
}
