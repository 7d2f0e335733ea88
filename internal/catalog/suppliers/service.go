package suppliers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

// ProductCounter reports how many products reference a supplier name.
type ProductCounter interface {
	CountBySupplier(ctx context.Context, supplier string) (int, error)
}

// CreateInput carries a new supplier.
type CreateInput struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// Service exposes the supplier operations.
type Service struct {
	repo     Repository
	products ProductCounter
	logger   *slog.Logger
}

// NewService builds the supplier service.
func NewService(repo Repository, products ProductCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, products: products, logger: logger}
}

// List returns the suppliers ordered by name.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.repo.List(ctx)
}

// Get returns a single supplier.
func (s *Service) Get(ctx context.Context, id string) (Supplier, error) {
	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return Supplier{}, mapErr(err)
	}
	return sup, nil
}

// Create inserts a supplier.
func (s *Service) Create(ctx context.Context, in CreateInput) (Supplier, error) {
	now := time.Now().UTC()
	sup := Supplier{
		ID:            uuid.NewString(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return Supplier{}, err
	}
	s.logger.Info("supplier created", slog.String("id", sup.ID), slog.String("name", sup.Name))
	return sup, nil
}

// Update applies the editable fields.
func (s *Service) Update(ctx context.Context, id string, updates Update) (Supplier, error) {
	sup, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return Supplier{}, mapErr(err)
	}
	return sup, nil
}

// Delete removes the supplier unless products still reference it.
func (s *Service) Delete(ctx context.Context, id string) error {
	sup, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapErr(err)
	}
	n, err := s.products.CountBySupplier(ctx, sup.Name)
	if err != nil {
		return err
	}
	if n > 0 {
		conflict := &ConflictError{Name: sup.Name, ProductCount: n}
		return fmt.Errorf("%w: %s", httpx.ErrConflict, conflict)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	s.logger.Info("supplier deleted", slog.String("id", id), slog.String("name", sup.Name))
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: supplier", httpx.ErrNotFound)
	}
	return err
}
