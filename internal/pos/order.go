// Package pos implements the sale screen of a terminal: the cart, checkout
// and the order history.
package pos

import (
	"errors"
	"time"
)

// PaymentType classifies how an order was settled.
type PaymentType string

const (
	PaymentCash    PaymentType = "cash"
	PaymentCard    PaymentType = "card"
	PaymentBank    PaymentType = "bank"
	PaymentDigital PaymentType = "digital"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentCash, PaymentCard, PaymentBank, PaymentDigital:
		return true
	}
	return false
}

// PaymentMethod is a configured way to settle an order.
type PaymentMethod struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          PaymentType `json:"type"`
	AccountNumber string      `json:"accountNumber,omitempty"`
	IsActive      bool        `json:"isActive"`
}

// CartItem is one product line in the cart.
type CartItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is a completed sale.
type Order struct {
	ID            string      `json:"id"`
	Items         []CartItem  `json:"items"`
	Total         float64     `json:"total"`
	Tax           float64     `json:"tax"`
	Discount      float64     `json:"discount"`
	FinalTotal    float64     `json:"finalTotal"`
	PaymentMethod PaymentType `json:"paymentMethod"`
	CustomerName  string      `json:"customerName,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

var (
	// ErrEmptyCart rejects a checkout with nothing in the cart.
	ErrEmptyCart = errors.New("pos: cart is empty")
	// ErrItemNotInCart indicates a quantity change for an absent line.
	ErrItemNotInCart = errors.New("pos: item not in cart")
	// ErrUnknownPaymentMethod rejects a checkout with an unknown settlement type.
	ErrUnknownPaymentMethod = errors.New("pos: unknown payment method")
	// ErrPaymentMethodNotFound indicates the payment method does not exist.
	ErrPaymentMethodNotFound = errors.New("pos: payment method not found")
)
