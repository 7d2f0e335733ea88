package products

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
	"github.com/atlas-pos/atlas-pos/internal/platform/db"
)

// ErrDuplicateBarcode indicates a unique-constraint violation on barcode.
var ErrDuplicateBarcode = errors.New("products: barcode already exists")

const productColumns = `id, name, category, cost_price, selling_price, stock, min_stock,
	COALESCE(barcode, ''), COALESCE(supplier, ''), COALESCE(description, ''), created_at, updated_at`

// PostgresRepository stores the catalog in Postgres, the remote-store mode.
// Readers see the fetched snapshot as current; concurrent writers are
// resolved last-write-wins, there is no conflict detection.
type PostgresRepository struct {
	pool    *pgxpool.Pool
	version atomic.Uint64
}

// NewPostgresRepository builds a Postgres-backed repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanProduct(row pgx.Row) (ledger.Product, error) {
	var p ledger.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.CostPrice, &p.SellingPrice,
		&p.Stock, &p.MinStock, &p.Barcode, &p.Supplier, &p.Description,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Product{}, ledger.ErrProductNotFound
		}
		return ledger.Product{}, fmt.Errorf("products: scan: %w", err)
	}
	return p, nil
}

// Get returns the product by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (ledger.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

// List returns every product ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]ledger.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY name", productColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	defer rows.Close()

	var out []ledger.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SetStock writes the stock level. Last write wins.
func (r *PostgresRepository) SetStock(ctx context.Context, id string, stock int) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE products SET stock = $2, updated_at = now() WHERE id = $1", id, stock)
	if err != nil {
		return fmt.Errorf("products: set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrProductNotFound
	}
	r.version.Add(1)
	return nil
}

// Version returns the in-process mutation counter. It keys the memoized
// views of this process only; another terminal's writes are picked up on the
// next recompute after a local mutation.
func (r *PostgresRepository) Version() uint64 {
	return r.version.Load()
}

// Create inserts a new product.
func (r *PostgresRepository) Create(ctx context.Context, p ledger.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, category, cost_price, selling_price, stock, min_stock, barcode, supplier, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12)`,
		p.ID, p.Name, p.Category, p.CostPrice, p.SellingPrice, p.Stock, p.MinStock,
		p.Barcode, p.Supplier, p.Description, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateBarcode
		}
		return fmt.Errorf("products: create: %w", err)
	}
	r.version.Add(1)
	return nil
}

// Update overwrites the editable fields and returns the stored row. The
// read-modify-write runs in one repeatable-read transaction.
func (r *PostgresRepository) Update(ctx context.Context, id string, updates ProductUpdate) (ledger.Product, error) {
	var p ledger.Product
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1 FOR UPDATE", productColumns)
		existing, err := scanProduct(tx.QueryRow(ctx, query, id))
		if err != nil {
			return err
		}
		applyUpdate(&existing, updates)

		query = fmt.Sprintf(`
			UPDATE products
			SET name = $2, category = $3, cost_price = $4, selling_price = $5,
				min_stock = $6, barcode = NULLIF($7, ''), supplier = NULLIF($8, ''),
				description = NULLIF($9, ''), updated_at = now()
			WHERE id = $1
			RETURNING %s`, productColumns)
		p, err = scanProduct(tx.QueryRow(ctx, query, id,
			existing.Name, existing.Category, existing.CostPrice, existing.SellingPrice,
			existing.MinStock, existing.Barcode, existing.Supplier, existing.Description))
		return err
	})
	if err != nil {
		return ledger.Product{}, err
	}
	r.version.Add(1)
	return p, nil
}

// Delete removes the product.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrProductNotFound
	}
	r.version.Add(1)
	return nil
}

// CountByCategory counts products referencing the category name.
func (r *PostgresRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM products WHERE category = $1", category).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("products: count by category: %w", err)
	}
	return n, nil
}

// CountBySupplier counts products referencing the supplier name.
func (r *PostgresRepository) CountBySupplier(ctx context.Context, supplier string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM products WHERE supplier = $1", supplier).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("products: count by supplier: %w", err)
	}
	return n, nil
}
