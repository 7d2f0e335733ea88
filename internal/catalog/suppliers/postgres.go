package suppliers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const supplierColumns = `id, name, COALESCE(contact_person, ''), COALESCE(email, ''),
	COALESCE(phone, ''), COALESCE(address, ''), created_at, updated_at`

// PostgresRepository stores suppliers in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanSupplier(row pgx.Row) (Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Supplier{}, ErrNotFound
		}
		return Supplier{}, fmt.Errorf("suppliers: scan: %w", err)
	}
	return s, nil
}

// List returns every supplier ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]Supplier, error) {
	query := fmt.Sprintf("SELECT %s FROM suppliers ORDER BY name", supplierColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("suppliers: list: %w", err)
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns the supplier by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Supplier, error) {
	query := fmt.Sprintf("SELECT %s FROM suppliers WHERE id = $1", supplierColumns)
	return scanSupplier(r.pool.QueryRow(ctx, query, id))
}

// Create inserts a new supplier.
func (r *PostgresRepository) Create(ctx context.Context, s Supplier) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO suppliers (id, name, contact_person, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("suppliers: create: %w", err)
	}
	return nil
}

// Update overwrites the editable fields and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, id string, updates Update) (Supplier, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return Supplier{}, err
	}
	applyUpdate(&existing, updates)

	query := fmt.Sprintf(`
		UPDATE suppliers
		SET name = $2, contact_person = NULLIF($3, ''), email = NULLIF($4, ''),
			phone = NULLIF($5, ''), address = NULLIF($6, ''), updated_at = now()
		WHERE id = $1
		RETURNING %s`, supplierColumns)
	return scanSupplier(r.pool.QueryRow(ctx, query, id,
		existing.Name, existing.ContactPerson, existing.Email, existing.Phone, existing.Address))
}

// Delete removes the supplier.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("suppliers: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
