package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, name, COALESCE(description, ''), COALESCE(color, ''), created_at, updated_at`

// PostgresRepository stores categories in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("categories: scan: %w", err)
	}
	return c, nil
}

// List returns every category ordered by name.
func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories ORDER BY name", categoryColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("categories: list: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns the category by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Category, error) {
	query := fmt.Sprintf("SELECT %s FROM categories WHERE id = $1", categoryColumns)
	return scanCategory(r.pool.QueryRow(ctx, query, id))
}

// Create inserts a new category.
func (r *PostgresRepository) Create(ctx context.Context, c Category) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)`,
		c.ID, c.Name, c.Description, c.Color, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("categories: create: %w", err)
	}
	return nil
}

// Update overwrites the editable fields and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, id string, updates Update) (Category, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if updates.Name != nil {
		existing.Name = *updates.Name
	}
	if updates.Description != nil {
		existing.Description = *updates.Description
	}
	if updates.Color != nil {
		existing.Color = *updates.Color
	}

	query := fmt.Sprintf(`
		UPDATE categories
		SET name = $2, description = NULLIF($3, ''), color = NULLIF($4, ''), updated_at = now()
		WHERE id = $1
		RETURNING %s`, categoryColumns)
	return scanCategory(r.pool.QueryRow(ctx, query, id,
		existing.Name, existing.Description, existing.Color))
}

// Delete removes the category.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("categories: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
