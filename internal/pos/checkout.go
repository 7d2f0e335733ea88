package pos

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

// Service runs a terminal's sale flow: it owns the cart, settles orders
// against the stock ledger and keeps the order history, most recent first.
type Service struct {
	mu     sync.Mutex
	cart   *Cart
	orders []Order

	ledger       *ledger.Service
	methods      *PaymentMethods
	taxRate      decimal.Decimal
	paymentDelay time.Duration
	logger       *slog.Logger
}

// NewService builds the sale service.
func NewService(ledgerSvc *ledger.Service, methods *PaymentMethods, taxRate float64, paymentDelay time.Duration, logger *slog.Logger) *Service {
	return &Service{
		cart:         NewCart(ledgerSvc),
		ledger:       ledgerSvc,
		methods:      methods,
		taxRate:      decimal.NewFromFloat(taxRate),
		paymentDelay: paymentDelay,
		logger:       logger,
	}
}

// Cart returns the terminal's cart.
func (s *Service) Cart() *Cart { return s.cart }

// PaymentMethods returns the configured settlement options.
func (s *Service) PaymentMethods() *PaymentMethods { return s.methods }

// Orders returns the order history, most recent first.
func (s *Service) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Order returns one order from the history.
func (s *Service) Order(id string) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// Checkout settles the cart. The payment leg is simulated with a fixed
// processing delay, cancellable through ctx; the ledger decrement happens
// only after the payment leg completes, so an abandoned payment leaves stock
// untouched. On success the cart is cleared and the order is prepended to
// the history.
func (s *Service) Checkout(ctx context.Context, payment PaymentType, customerName string) (Order, error) {
	if !payment.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, payment)
	}
	items := s.cart.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	if s.paymentDelay > 0 {
		timer := time.NewTimer(s.paymentDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Order{}, ctx.Err()
		}
	}

	subtotal := decimal.Zero
	lines := make([]ledger.SaleLine, 0, len(items))
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Subtotal))
		lines = append(lines, ledger.SaleLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}
	tax := subtotal.Mul(s.taxRate).Round(2)
	discount := decimal.Zero
	finalTotal := subtotal.Add(tax).Sub(discount)

	orderID := uuid.NewString()
	if err := s.ledger.ProcessSale(ctx, orderID, lines); err != nil {
		return Order{}, err
	}

	subtotalF, _ := subtotal.Float64()
	taxF, _ := tax.Float64()
	discountF, _ := discount.Float64()
	finalF, _ := finalTotal.Float64()
	order := Order{
		ID:            orderID,
		Items:         items,
		Total:         subtotalF,
		Tax:           taxF,
		Discount:      discountF,
		FinalTotal:    finalF,
		PaymentMethod: payment,
		CustomerName:  customerName,
		Timestamp:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.orders = append([]Order{order}, s.orders...)
	s.mu.Unlock()
	s.cart.Clear()

	s.logger.Info("order completed",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Float64("total", order.FinalTotal),
		slog.String("payment", string(payment)))
	return order, nil
}
