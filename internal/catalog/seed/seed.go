// Package seed provides the demo dataset loaded when no database is
// configured, so a fresh terminal starts with a sellable catalog.
package seed

import (
	"time"

	"github.com/atlas-pos/atlas-pos/internal/catalog/categories"
	"github.com/atlas-pos/atlas-pos/internal/catalog/suppliers"
	"github.com/atlas-pos/atlas-pos/internal/ledger"
)

var seededAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Products returns the demo catalog.
func Products() []ledger.Product {
	now := time.Now().UTC()
	return []ledger.Product{
		{
			Name: "Coffee", SellingPrice: 4.99, CostPrice: 2.50,
			Category: "Beverages", Stock: 50, MinStock: 10,
			Barcode: "123456789", Supplier: "ABC Distributors",
			Description: "Premium coffee blend",
			CreatedAt:   seededAt, UpdatedAt: now,
		},
		{
			Name: "Sandwich", SellingPrice: 8.99, CostPrice: 4.50,
			Category: "Food", Stock: 25, MinStock: 5,
			Barcode: "987654321", Supplier: "ABC Distributors",
			Description: "Fresh sandwich",
			CreatedAt:   seededAt, UpdatedAt: now,
		},
		{
			Name: "Chips", SellingPrice: 2.99, CostPrice: 1.20,
			Category: "Snacks", Stock: 100, MinStock: 20,
			Barcode: "456789123", Supplier: "XYZ Wholesale",
			Description: "Crispy potato chips",
			CreatedAt:   seededAt, UpdatedAt: now,
		},
		{
			Name: "Soda", SellingPrice: 1.99, CostPrice: 0.80,
			Category: "Beverages", Stock: 75, MinStock: 15,
			Barcode: "789123456", Supplier: "ABC Distributors",
			Description: "Refreshing soda",
			CreatedAt:   seededAt, UpdatedAt: now,
		},
		{
			Name: "Burger", SellingPrice: 12.99, CostPrice: 6.50,
			Category: "Food", Stock: 20, MinStock: 5,
			Barcode: "321654987", Supplier: "ABC Distributors",
			Description: "Delicious burger",
			CreatedAt:   seededAt, UpdatedAt: now,
		},
		{
			Name: "Headphones", SellingPrice: 29.99, CostPrice: 15.00,
			Category: "Electronics", Stock: 15, MinStock: 3,
			Barcode: "654987321", Supplier: "Tech Supply Co",
			Description: "Wireless headphones",
			CreatedAt:   seededAt, UpdatedAt: now,
		},
	}
}

// Categories returns the demo categories.
func Categories() []categories.Category {
	return []categories.Category{
		{Name: "Beverages", Color: "bg-blue-500", Description: "Drinks and beverages", CreatedAt: seededAt, UpdatedAt: seededAt},
		{Name: "Food", Color: "bg-green-500", Description: "Food items", CreatedAt: seededAt, UpdatedAt: seededAt},
		{Name: "Snacks", Color: "bg-yellow-500", Description: "Snacks and chips", CreatedAt: seededAt, UpdatedAt: seededAt},
		{Name: "Electronics", Color: "bg-purple-500", Description: "Electronic items", CreatedAt: seededAt, UpdatedAt: seededAt},
	}
}

// Suppliers returns the demo suppliers.
func Suppliers() []suppliers.Supplier {
	return []suppliers.Supplier{
		{Name: "ABC Distributors", ContactPerson: "John Doe", Email: "john@abc.com", Phone: "123-456-7890", CreatedAt: seededAt, UpdatedAt: seededAt},
		{Name: "XYZ Wholesale", ContactPerson: "Jane Smith", Email: "jane@xyz.com", Phone: "098-765-4321", CreatedAt: seededAt, UpdatedAt: seededAt},
		{Name: "Tech Supply Co", ContactPerson: "Mike Johnson", Email: "mike@techsupply.com", Phone: "555-123-4567", CreatedAt: seededAt, UpdatedAt: seededAt},
	}
}
