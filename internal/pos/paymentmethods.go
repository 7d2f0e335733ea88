package pos

import (
	"sync"

	"github.com/google/uuid"
)

// PaymentMethods is the configurable list of settlement options.
type PaymentMethods struct {
	mu      sync.RWMutex
	methods []PaymentMethod
}

// DefaultPaymentMethods returns the stock configuration of a new terminal.
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: uuid.NewString(), Name: "Cash", Type: PaymentCash, IsActive: true},
		{ID: uuid.NewString(), Name: "Bank Transfer", Type: PaymentBank, AccountNumber: "1234567890", IsActive: true},
		{ID: uuid.NewString(), Name: "Credit Card", Type: PaymentDigital, IsActive: true},
		{ID: uuid.NewString(), Name: "Digital Wallet", Type: PaymentDigital, IsActive: true},
	}
}

// NewPaymentMethods builds the collection from seed.
func NewPaymentMethods(seed []PaymentMethod) *PaymentMethods {
	pm := &PaymentMethods{methods: make([]PaymentMethod, len(seed))}
	copy(pm.methods, seed)
	return pm
}

// List returns all methods in configuration order.
func (pm *PaymentMethods) List() []PaymentMethod {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	out := make([]PaymentMethod, len(pm.methods))
	copy(out, pm.methods)
	return out
}

// Active returns the methods offered at checkout.
func (pm *PaymentMethods) Active() []PaymentMethod {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	var out []PaymentMethod
	for _, m := range pm.methods {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out
}

// Add appends a new method.
func (pm *PaymentMethods) Add(m PaymentMethod) (PaymentMethod, error) {
	if !m.Type.Valid() {
		return PaymentMethod{}, ErrUnknownPaymentMethod
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.methods = append(pm.methods, m)
	return m, nil
}

// SetActive toggles a method's availability at checkout.
func (pm *PaymentMethods) SetActive(id string, active bool) (PaymentMethod, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for i, m := range pm.methods {
		if m.ID == id {
			pm.methods[i].IsActive = active
			return pm.methods[i], nil
		}
	}
	return PaymentMethod{}, ErrPaymentMethodNotFound
}

// Remove deletes a method.
func (pm *PaymentMethods) Remove(id string) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for i, m := range pm.methods {
		if m.ID == id {
			pm.methods = append(pm.methods[:i], pm.methods[i+1:]...)
			return nil
		}
	}
	return ErrPaymentMethodNotFound
}
