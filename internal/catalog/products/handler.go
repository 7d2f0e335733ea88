package products

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

// Handler exposes the product catalog over JSON.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler builds the product handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Routes mounts the product endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

type updateRequest struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	CostPrice    *float64 `json:"costPrice" validate:"omitempty,gte=0"`
	SellingPrice *float64 `json:"sellingPrice" validate:"omitempty,gte=0"`
	MinStock     *int     `json:"minStock" validate:"omitempty,gte=0"`
	Barcode      *string  `json:"barcode"`
	Supplier     *string  `json:"supplier"`
	Description  *string  `json:"description"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in updateRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), ProductUpdate{
		Name:         in.Name,
		Category:     in.Category,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		MinStock:     in.MinStock,
		Barcode:      in.Barcode,
		Supplier:     in.Supplier,
		Description:  in.Description,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
