// Package jobs defines the background tasks processed by the worker.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLowStockAlert is the task type for reorder alerts raised at
	// the register.
	TaskTypeLowStockAlert = "stock:low_alert"
)

// LowStockAlertPayload carries a low-stock event to the worker.
type LowStockAlertPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	OrderID     string `json:"order_id"`
}

// NewLowStockAlertTask constructs an Asynq task from the ledger event.
func NewLowStockAlertTask(evt ledger.LowStockEvent) (*asynq.Task, error) {
	data, err := json.Marshal(LowStockAlertPayload{
		ProductID:   evt.ProductID,
		ProductName: evt.ProductName,
		Stock:       evt.Stock,
		MinStock:    evt.MinStock,
		OrderID:     evt.OrderID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLowStockAlert, data, asynq.Queue(QueueDefault)), nil
}

// LowStockAlertHandler processes TaskTypeLowStockAlert tasks. Delivery is a
// structured log line; a mail or chat integration would hang off here.
func LowStockAlertHandler(logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload LowStockAlertPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		logger.Warn("reorder alert",
			slog.String("product_id", payload.ProductID),
			slog.String("product", payload.ProductName),
			slog.Int("stock", payload.Stock),
			slog.Int("min_stock", payload.MinStock),
			slog.String("order_id", payload.OrderID))
		return nil
	}
}
