// Package categories manages the product category reference data.
package categories

import (
	"errors"
	"fmt"
	"time"
)

// Category groups products on the sale screen. Products reference it by name.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ErrNotFound indicates the category does not exist.
var ErrNotFound = errors.New("categories: not found")

// ConflictError rejects a delete while products still reference the category.
type ConflictError struct {
	Name         string
	ProductCount int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("category %q is referenced by %d product(s)", e.Name, e.ProductCount)
}
