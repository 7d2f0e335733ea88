package ledger

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

// Handler exposes the stock ledger over JSON: purchases, returns, manual
// stock changes, the movement log and the derived reports.
type Handler struct {
	svc      *Service
	views    *Views
	validate *validator.Validate
}

// NewHandler builds the ledger handler.
func NewHandler(svc *Service, views *Views) *Handler {
	return &Handler{svc: svc, views: views, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Routes mounts the ledger endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/purchases", func(r chi.Router) {
		r.Get("/", h.listPurchases)
		r.Post("/", h.addPurchase)
		r.Put("/{id}", h.updatePurchase)
		r.Delete("/{id}", h.deletePurchase)
	})

	r.Route("/returns/sales", func(r chi.Router) {
		r.Get("/", h.listSalesReturns)
		r.Post("/", h.addSalesReturn)
		r.Put("/{id}", h.updateSalesReturn)
		r.Delete("/{id}", h.deleteSalesReturn)
	})

	r.Route("/returns/purchases", func(r chi.Router) {
		r.Get("/", h.listPurchaseReturns)
		r.Post("/", h.addPurchaseReturn)
		r.Put("/{id}", h.updatePurchaseReturn)
		r.Delete("/{id}", h.deletePurchaseReturn)
	})

	r.Route("/stock", func(r chi.Router) {
		r.Get("/movements", h.listMovements)
		r.Post("/{productID}/adjust", h.adjustStock)
		r.Post("/{productID}/move", h.moveStockEndpoint)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/inventory", h.inventoryReport)
		r.Get("/low-stock", h.lowStock)
		r.Get("/out-of-stock", h.outOfStock)
	})

	return r
}

func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrPurchaseNotFound),
		errors.Is(err, ErrReturnNotFound):
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrNotFound, err))
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidStatus):
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
	default:
		httpx.RespondError(w, err)
	}
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Store().Purchases())
}

type addPurchaseRequest struct {
	ProductID     string    `json:"productId" validate:"required"`
	Quantity      int       `json:"quantity" validate:"gt=0"`
	CostPrice     float64   `json:"costPrice" validate:"gte=0"`
	Supplier      string    `json:"supplier" validate:"required"`
	PurchaseDate  time.Time `json:"purchaseDate"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Notes         string    `json:"notes"`
}

func (h *Handler) addPurchase(w http.ResponseWriter, r *http.Request) {
	var in addPurchaseRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	p, err := h.svc.AddPurchase(r.Context(), PurchaseInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		CostPrice:     in.CostPrice,
		Supplier:      in.Supplier,
		PurchaseDate:  in.PurchaseDate,
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

type updatePurchaseRequest struct {
	Quantity      *int       `json:"quantity" validate:"omitempty,gt=0"`
	CostPrice     *float64   `json:"costPrice" validate:"omitempty,gte=0"`
	Supplier      *string    `json:"supplier"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	InvoiceNumber *string    `json:"invoiceNumber"`
	Notes         *string    `json:"notes"`
}

func (h *Handler) updatePurchase(w http.ResponseWriter, r *http.Request) {
	var in updatePurchaseRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	p, err := h.svc.UpdatePurchase(r.Context(), chi.URLParam(r, "id"), PurchaseUpdate{
		Quantity:      in.Quantity,
		CostPrice:     in.CostPrice,
		Supplier:      in.Supplier,
		PurchaseDate:  in.PurchaseDate,
		InvoiceNumber: in.InvoiceNumber,
		Notes:         in.Notes,
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePurchase(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listSalesReturns(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Store().SalesReturns())
}

type addSalesReturnRequest struct {
	OrderID      string    `json:"orderId" validate:"required"`
	ProductID    string    `json:"productId" validate:"required"`
	Quantity     int       `json:"quantity" validate:"gt=0"`
	UnitPrice    float64   `json:"unitPrice" validate:"gte=0"`
	Reason       string    `json:"reason" validate:"required"`
	ReturnDate   time.Time `json:"returnDate"`
	CustomerName string    `json:"customerName"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"`
}

func (h *Handler) addSalesReturn(w http.ResponseWriter, r *http.Request) {
	var in addSalesReturnRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	ret, err := h.svc.AddSalesReturn(r.Context(), SalesReturnInput{
		OrderID:      in.OrderID,
		ProductID:    in.ProductID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Reason:       in.Reason,
		ReturnDate:   in.ReturnDate,
		CustomerName: in.CustomerName,
		Notes:        in.Notes,
		Status:       ReturnStatus(in.Status),
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ret)
}

type updateReturnRequest struct {
	Status *string `json:"status"`
	Reason *string `json:"reason"`
	Notes  *string `json:"notes"`
}

func (in updateReturnRequest) toUpdate() ReturnUpdate {
	upd := ReturnUpdate{Reason: in.Reason, Notes: in.Notes}
	if in.Status != nil {
		status := ReturnStatus(*in.Status)
		upd.Status = &status
	}
	return upd
}

func (h *Handler) updateSalesReturn(w http.ResponseWriter, r *http.Request) {
	var in updateReturnRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	ret, err := h.svc.UpdateSalesReturn(r.Context(), chi.URLParam(r, "id"), in.toUpdate())
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ret)
}

func (h *Handler) deleteSalesReturn(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSalesReturn(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listPurchaseReturns(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Store().PurchaseReturns())
}

type addPurchaseReturnRequest struct {
	PurchaseID string    `json:"purchaseId" validate:"required"`
	ProductID  string    `json:"productId" validate:"required"`
	Quantity   int       `json:"quantity" validate:"gt=0"`
	UnitPrice  float64   `json:"unitPrice" validate:"gte=0"`
	Reason     string    `json:"reason" validate:"required"`
	ReturnDate time.Time `json:"returnDate"`
	Supplier   string    `json:"supplier"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
}

func (h *Handler) addPurchaseReturn(w http.ResponseWriter, r *http.Request) {
	var in addPurchaseReturnRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	ret, err := h.svc.AddPurchaseReturn(r.Context(), PurchaseReturnInput{
		PurchaseID: in.PurchaseID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitPrice:  in.UnitPrice,
		Reason:     in.Reason,
		ReturnDate: in.ReturnDate,
		Supplier:   in.Supplier,
		Notes:      in.Notes,
		Status:     ReturnStatus(in.Status),
	})
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ret)
}

func (h *Handler) updatePurchaseReturn(w http.ResponseWriter, r *http.Request) {
	var in updateReturnRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	ret, err := h.svc.UpdatePurchaseReturn(r.Context(), chi.URLParam(r, "id"), in.toUpdate())
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ret)
}

func (h *Handler) deletePurchaseReturn(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePurchaseReturn(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) listMovements(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Store().Movements())
}

type adjustStockRequest struct {
	NewStock int    `json:"newStock" validate:"gte=0"`
	Reason   string `json:"reason" validate:"required"`
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var in adjustStockRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.svc.AdjustStock(r.Context(), chi.URLParam(r, "productID"), in.NewStock, in.Reason); err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.NoContent(w)
}

type moveStockRequest struct {
	Quantity  int    `json:"quantity" validate:"gt=0"`
	Direction string `json:"direction" validate:"required,oneof=in out"`
}

func (h *Handler) moveStockEndpoint(w http.ResponseWriter, r *http.Request) {
	var in moveStockRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.svc.UpdateProductStock(r.Context(), chi.URLParam(r, "productID"), in.Quantity, MovementType(in.Direction)); err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) inventoryReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.views.Report(r.Context())
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	out, err := h.views.LowStockProducts(r.Context())
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	if out == nil {
		out = []Product{}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) outOfStock(w http.ResponseWriter, r *http.Request) {
	out, err := h.views.OutOfStockProducts(r.Context())
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	if out == nil {
		out = []Product{}
	}
	httpx.JSON(w, http.StatusOK, out)
}
