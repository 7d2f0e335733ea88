// Package suppliers manages the supplier reference data used by purchases.
package suppliers

import (
	"errors"
	"fmt"
	"time"
)

// Supplier is a purchase source. Products and purchases reference it by name.
type Supplier struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ErrNotFound indicates the supplier does not exist.
var ErrNotFound = errors.New("suppliers: not found")

// ConflictError rejects a delete while products still reference the supplier.
type ConflictError struct {
	Name         string
	ProductCount int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("supplier %q is referenced by %d product(s)", e.Name, e.ProductCount)
}
