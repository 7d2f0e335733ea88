// Package notify delivers low-stock alerts raised during a sale.
package notify

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/atlas-pos/atlas-pos/internal/jobs"
	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

// SlogNotifier logs alerts. It is the fallback when no queue is configured.
type SlogNotifier struct {
	Logger *slog.Logger
}

// NotifyLowStock logs the event.
func (n *SlogNotifier) NotifyLowStock(ctx context.Context, evt ledger.LowStockEvent) {
	n.Logger.Warn("low stock",
		slog.String("product_id", evt.ProductID),
		slog.String("product", evt.ProductName),
		slog.Int("stock", evt.Stock),
		slog.Int("min_stock", evt.MinStock),
		slog.String("order_id", evt.OrderID))
}

// AsynqNotifier hands alerts to the background queue so the sale path never
// waits on delivery.
type AsynqNotifier struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewAsynqNotifier builds a queue-backed notifier.
func NewAsynqNotifier(client *asynq.Client, logger *slog.Logger) *AsynqNotifier {
	return &AsynqNotifier{client: client, logger: logger}
}

// NotifyLowStock enqueues a low-stock alert task. Enqueue failures are logged
// and dropped, an alert must never fail a sale.
func (n *AsynqNotifier) NotifyLowStock(ctx context.Context, evt ledger.LowStockEvent) {
	task, err := jobs.NewLowStockAlertTask(evt)
	if err != nil {
		n.logger.Error("low stock task build failed", slog.Any("error", err))
		return
	}
	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		n.logger.Error("low stock task enqueue failed",
			slog.String("product_id", evt.ProductID), slog.Any("error", err))
	}
}
