package products

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

// CreateInput carries a new product.
type CreateInput struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	CostPrice    float64 `json:"costPrice" validate:"gte=0"`
	SellingPrice float64 `json:"sellingPrice" validate:"gte=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	MinStock     int     `json:"minStock" validate:"gte=0"`
	Barcode      string  `json:"barcode"`
	Supplier     string  `json:"supplier"`
	Description  string  `json:"description"`
}

// Service exposes the product catalog operations.
type Service struct {
	repo   Repository
	ledger *ledger.Service
	logger *slog.Logger
}

// NewService builds the product service.
func NewService(repo Repository, ledgerSvc *ledger.Service, logger *slog.Logger) *Service {
	return &Service{repo: repo, ledger: ledgerSvc, logger: logger}
}

// Repo exposes the underlying repository for wiring.
func (s *Service) Repo() Repository { return s.repo }

// List returns the catalog ordered by name.
func (s *Service) List(ctx context.Context) ([]ledger.Product, error) {
	return s.repo.List(ctx)
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id string) (ledger.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return ledger.Product{}, mapErr(err)
	}
	return p, nil
}

// Create inserts a product. A non-zero opening stock is recorded in the
// movement log so the audit trail starts at the real level.
func (s *Service) Create(ctx context.Context, in CreateInput) (ledger.Product, error) {
	now := time.Now().UTC()
	p := ledger.Product{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Category:     in.Category,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		MinStock:     in.MinStock,
		Barcode:      in.Barcode,
		Supplier:     in.Supplier,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicateBarcode) {
			return ledger.Product{}, fmt.Errorf("%w: barcode %q", httpx.ErrDuplicate, in.Barcode)
		}
		return ledger.Product{}, err
	}
	if p.Stock > 0 {
		s.ledger.RecordMovement(p.ID, p.Name, ledger.MovementIn, p.Stock, "Initial stock", p.ID)
	}
	s.logger.Info("product created", slog.String("id", p.ID), slog.String("name", p.Name))
	return p, nil
}

// Update applies the editable fields.
func (s *Service) Update(ctx context.Context, id string, updates ProductUpdate) (ledger.Product, error) {
	p, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return ledger.Product{}, mapErr(err)
	}
	return p, nil
}

// Delete removes the product. Its movement history stays in the ledger.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	s.logger.Info("product deleted", slog.String("id", id))
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, ledger.ErrProductNotFound) {
		return fmt.Errorf("%w: product", httpx.ErrNotFound)
	}
	return err
}
