package categories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

// ProductCounter reports how many products reference a category name. The
// product repository satisfies it.
type ProductCounter interface {
	CountByCategory(ctx context.Context, category string) (int, error)
}

// CreateInput carries a new category.
type CreateInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Service exposes the category operations.
type Service struct {
	repo     Repository
	products ProductCounter
	logger   *slog.Logger
}

// NewService builds the category service.
func NewService(repo Repository, products ProductCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, products: products, logger: logger}
}

// List returns the categories ordered by name.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Get returns a single category.
func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Category{}, mapErr(err)
	}
	return c, nil
}

// Create inserts a category.
func (s *Service) Create(ctx context.Context, in CreateInput) (Category, error) {
	now := time.Now().UTC()
	c := Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Category{}, err
	}
	s.logger.Info("category created", slog.String("id", c.ID), slog.String("name", c.Name))
	return c, nil
}

// Update applies the editable fields.
func (s *Service) Update(ctx context.Context, id string, updates Update) (Category, error) {
	c, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return Category{}, mapErr(err)
	}
	return c, nil
}

// Delete removes the category unless products still reference it. The caller
// gets the dependent count so the UI can say what blocks the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	n, err := s.products.CountByCategory(ctx, c.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		conflict := &ConflictError{Name: c.Name, ProductCount: n}
		return fmt.Errorf("%w: %s", httpx.ErrConflict, conflict)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	s.logger.Info("category deleted", slog.String("id", id), slog.String("name", c.Name))
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: category", httpx.ErrNotFound)
	}
	return err
}
