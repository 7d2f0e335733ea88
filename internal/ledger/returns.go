package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Return status transitions drive the stock effects. Every transition is
// legal; only the edges touching "approved" move stock:
//
//	sales return     enter approved -> in,  exit approved -> out
//	purchase return  enter approved -> out, exit approved -> in
//
// The effect applies once per entry into approved and reverses once per exit,
// whether the exit is a status edit or a deletion.

// SalesReturnInput describes a new sales return.
type SalesReturnInput struct {
	OrderID      string
	ProductID    string
	Quantity     int
	UnitPrice    float64
	Reason       string
	ReturnDate   time.Time
	CustomerName string
	Notes        string
	Status       ReturnStatus
}

// PurchaseReturnInput describes a new purchase return.
type PurchaseReturnInput struct {
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitPrice  float64
	Reason     string
	ReturnDate time.Time
	Supplier   string
	Notes      string
	Status     ReturnStatus
}

// ReturnUpdate carries the editable return fields. Nil means unchanged.
type ReturnUpdate struct {
	Status *ReturnStatus
	Reason *string
	Notes  *string
}

// AddSalesReturn creates the record. Created directly as approved it applies
// the enter-approved stock effect immediately.
func (s *Service) AddSalesReturn(ctx context.Context, input SalesReturnInput) (SalesReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Quantity <= 0 {
		return SalesReturn{}, ErrInvalidQuantity
	}
	status := input.Status
	if status == "" {
		status = ReturnStatusPending
	}
	if !status.Valid() {
		return SalesReturn{}, ErrInvalidStatus
	}
	product, err := s.products.Get(ctx, input.ProductID)
	if err != nil {
		return SalesReturn{}, err
	}

	returnDate := input.ReturnDate
	if returnDate.IsZero() {
		returnDate = time.Now().UTC()
	}
	ret := SalesReturn{
		ID:           uuid.NewString(),
		OrderID:      input.OrderID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     input.Quantity,
		UnitPrice:    input.UnitPrice,
		TotalAmount:  float64(input.Quantity) * input.UnitPrice,
		Reason:       input.Reason,
		ReturnDate:   returnDate,
		CustomerName: input.CustomerName,
		Notes:        input.Notes,
		Status:       status,
	}

	if status == ReturnStatusApproved {
		if err := s.moveStock(ctx, ret.ProductID, ret.Quantity, MovementIn); err != nil {
			return SalesReturn{}, err
		}
	}
	s.store.update(func() {
		s.store.salesReturns = append([]SalesReturn{ret}, s.store.salesReturns...)
		if status == ReturnStatusApproved {
			s.store.appendMovement(ret.ProductID, ret.ProductName, MovementIn, ret.Quantity,
				fmt.Sprintf("Sales return - %s", ret.Reason), ret.ID)
		}
	})
	return ret, nil
}

// UpdateSalesReturn overwrites the editable fields. A status change crossing
// the approved boundary moves stock and appends one movement.
func (s *Service) UpdateSalesReturn(ctx context.Context, id string, updates ReturnUpdate) (SalesReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing SalesReturn
	var found bool
	s.store.view(func() {
		existing, found = s.store.findSalesReturn(id)
	})
	if !found {
		return SalesReturn{}, ErrReturnNotFound
	}

	if updates.Status != nil && !updates.Status.Valid() {
		return SalesReturn{}, ErrInvalidStatus
	}
	if updates.Status != nil && *updates.Status != existing.Status {
		switch {
		case *updates.Status == ReturnStatusApproved:
			if err := s.moveStock(ctx, existing.ProductID, existing.Quantity, MovementIn); err != nil {
				return SalesReturn{}, err
			}
			s.store.update(func() {
				s.store.appendMovement(existing.ProductID, existing.ProductName, MovementIn, existing.Quantity,
					fmt.Sprintf("Sales return approved - %s", existing.Reason), existing.ID)
			})
		case existing.Status == ReturnStatusApproved:
			if err := s.moveStock(ctx, existing.ProductID, existing.Quantity, MovementOut); err != nil {
				return SalesReturn{}, err
			}
			s.store.update(func() {
				s.store.appendMovement(existing.ProductID, existing.ProductName, MovementOut, existing.Quantity,
					fmt.Sprintf("Sales return unapproved - %s", existing.Reason), existing.ID)
			})
		}
	}

	updated := existing
	if updates.Status != nil {
		updated.Status = *updates.Status
	}
	if updates.Reason != nil {
		updated.Reason = *updates.Reason
	}
	if updates.Notes != nil {
		updated.Notes = *updates.Notes
	}
	s.store.update(func() {
		for i := range s.store.salesReturns {
			if s.store.salesReturns[i].ID == id {
				s.store.salesReturns[i] = updated
				break
			}
		}
	})
	return updated, nil
}

// DeleteSalesReturn removes the record, reversing its stock effect first when
// the stored status was approved.
func (s *Service) DeleteSalesReturn(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing SalesReturn
	var found bool
	s.store.view(func() {
		existing, found = s.store.findSalesReturn(id)
	})
	if !found {
		return ErrReturnNotFound
	}

	if existing.Status == ReturnStatusApproved {
		if err := s.moveStock(ctx, existing.ProductID, existing.Quantity, MovementOut); err != nil {
			return err
		}
	}
	s.store.update(func() {
		if existing.Status == ReturnStatusApproved {
			s.store.appendMovement(existing.ProductID, existing.ProductName, MovementOut, existing.Quantity,
				fmt.Sprintf("Sales return deleted - %s", existing.Reason), existing.ID)
		}
		returns := s.store.salesReturns[:0]
		for _, r := range s.store.salesReturns {
			if r.ID != id {
				returns = append(returns, r)
			}
		}
		s.store.salesReturns = returns
	})
	s.logger.Info("sales return deleted", slog.String("return_id", id))
	return nil
}

// AddPurchaseReturn creates the record. Created directly as approved it
// applies the enter-approved stock effect (outbound) immediately.
func (s *Service) AddPurchaseReturn(ctx context.Context, input PurchaseReturnInput) (PurchaseReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Quantity <= 0 {
		return PurchaseReturn{}, ErrInvalidQuantity
	}
	status := input.Status
	if status == "" {
		status = ReturnStatusPending
	}
	if !status.Valid() {
		return PurchaseReturn{}, ErrInvalidStatus
	}
	product, err := s.products.Get(ctx, input.ProductID)
	if err != nil {
		return PurchaseReturn{}, err
	}

	returnDate := input.ReturnDate
	if returnDate.IsZero() {
		returnDate = time.Now().UTC()
	}
	ret := PurchaseReturn{
		ID:          uuid.NewString(),
		PurchaseID:  input.PurchaseID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		TotalAmount: float64(input.Quantity) * input.UnitPrice,
		Reason:      input.Reason,
		ReturnDate:  returnDate,
		Supplier:    input.Supplier,
		Notes:       input.Notes,
		Status:      status,
	}

	if status == ReturnStatusApproved {
		if err := s.moveStock(ctx, ret.ProductID, ret.Quantity, MovementOut); err != nil {
			return PurchaseReturn{}, err
		}
	}
	s.store.update(func() {
		s.store.purchaseReturns = append([]PurchaseReturn{ret}, s.store.purchaseReturns...)
		if status == ReturnStatusApproved {
			s.store.appendMovement(ret.ProductID, ret.ProductName, MovementOut, ret.Quantity,
				fmt.Sprintf("Purchase return - %s", ret.Reason), ret.ID)
		}
	})
	return ret, nil
}

// UpdatePurchaseReturn overwrites the editable fields. A status change
// crossing the approved boundary moves stock in the purchase-return
// directions (approve -> out, unapprove -> in).
func (s *Service) UpdatePurchaseReturn(ctx context.Context, id string, updates ReturnUpdate) (PurchaseReturn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing PurchaseReturn
	var found bool
	s.store.view(func() {
		existing, found = s.store.findPurchaseReturn(id)
	})
	if !found {
		return PurchaseReturn{}, ErrReturnNotFound
	}

	if updates.Status != nil && !updates.Status.Valid() {
		return PurchaseReturn{}, ErrInvalidStatus
	}
	if updates.Status != nil && *updates.Status != existing.Status {
		switch {
		case *updates.Status == ReturnStatusApproved:
			if err := s.moveStock(ctx, existing.ProductID, existing.Quantity, MovementOut); err != nil {
				return PurchaseReturn{}, err
			}
			s.store.update(func() {
				s.store.appendMovement(existing.ProductID, existing.ProductName, MovementOut, existing.Quantity,
					fmt.Sprintf("Purchase return approved - %s", existing.Reason), existing.ID)
			})
		case existing.Status == ReturnStatusApproved:
			if err := s.moveStock(ctx, existing.ProductID, existing.Quantity, MovementIn); err != nil {
				return PurchaseReturn{}, err
			}
			s.store.update(func() {
				s.store.appendMovement(existing.ProductID, existing.ProductName, MovementIn, existing.Quantity,
					fmt.Sprintf("Purchase return unapproved - %s", existing.Reason), existing.ID)
			})
		}
	}

	updated := existing
	if updates.Status != nil {
		updated.Status = *updates.Status
	}
	if updates.Reason != nil {
		updated.Reason = *updates.Reason
	}
	if updates.Notes != nil {
		updated.Notes = *updates.Notes
	}
	s.store.update(func() {
		for i := range s.store.purchaseReturns {
			if s.store.purchaseReturns[i].ID == id {
				s.store.purchaseReturns[i] = updated
				break
			}
		}
	})
	return updated, nil
}

// DeletePurchaseReturn removes the record, reversing its stock effect first
// when the stored status was approved.
func (s *Service) DeletePurchaseReturn(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing PurchaseReturn
	var found bool
	s.store.view(func() {
		existing, found = s.store.findPurchaseReturn(id)
	})
	if !found {
		return ErrReturnNotFound
	}

	if existing.Status == ReturnStatusApproved {
		if err := s.moveStock(ctx, existing.ProductID, existing.Quantity, MovementIn); err != nil {
			return err
		}
	}
	s.store.update(func() {
		if existing.Status == ReturnStatusApproved {
			s.store.appendMovement(existing.ProductID, existing.ProductName, MovementIn, existing.Quantity,
				fmt.Sprintf("Purchase return deleted - %s", existing.Reason), existing.ID)
		}
		returns := s.store.purchaseReturns[:0]
		for _, r := range s.store.purchaseReturns {
			if r.ID != id {
				returns = append(returns, r)
			}
		}
		s.store.purchaseReturns = returns
	})
	s.logger.Info("purchase return deleted", slog.String("return_id", id))
	return nil
}
