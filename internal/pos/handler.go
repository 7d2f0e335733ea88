package pos

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atlas-pos/atlas-pos/internal/ledger"
	"github.com/atlas-pos/atlas-pos/internal/platform/httpx"
)

// Handler exposes the sale flow over JSON.
type Handler struct {
	svc       *Service
	storeName string
	validate  *validator.Validate
}

// NewHandler builds the sale handler.
func NewHandler(svc *Service, storeName string) *Handler {
	return &Handler{svc: svc, storeName: storeName, validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Routes mounts the sale endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/cart", h.getCart)
	r.Delete("/cart", h.clearCart)
	r.Post("/cart/items", h.addItem)
	r.Put("/cart/items/{productID}", h.updateItem)
	r.Delete("/cart/items/{productID}", h.removeItem)
	r.Post("/checkout", h.checkout)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Get("/orders/{id}/receipt", h.receipt)
	r.Get("/payment-methods", h.listPaymentMethods)
	r.Post("/payment-methods", h.addPaymentMethod)
	r.Put("/payment-methods/{id}/active", h.setPaymentMethodActive)
	r.Delete("/payment-methods/{id}", h.removePaymentMethod)
	return r
}

type cartView struct {
	Items     []CartItem `json:"items"`
	Subtotal  float64    `json:"subtotal"`
	ItemCount int        `json:"itemCount"`
}

func (h *Handler) cartView() cartView {
	cart := h.svc.Cart()
	items := cart.Items()
	if items == nil {
		items = []CartItem{}
	}
	return cartView{Items: items, Subtotal: cart.Subtotal(), ItemCount: cart.ItemCount()}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	h.svc.Cart().Clear()
	httpx.NoContent(w)
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var in addItemRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.svc.Cart().AddItem(r.Context(), in.ProductID, in.Quantity); err != nil {
		respondSaleError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.cartView())
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var in updateItemRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.svc.Cart().UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), in.Quantity); err != nil {
		respondSaleError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	h.svc.Cart().Remove(chi.URLParam(r, "productID"))
	httpx.JSON(w, http.StatusOK, h.cartView())
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	CustomerName  string `json:"customerName"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var in checkoutRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	order, err := h.svc.Checkout(r.Context(), PaymentType(in.PaymentMethod), in.CustomerName)
	if err != nil {
		respondSaleError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.svc.Orders()
	if orders == nil {
		orders = []Order{}
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.svc.Order(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: order", httpx.ErrNotFound))
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	order, ok := h.svc.Order(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: order", httpx.ErrNotFound))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(Receipt(order, h.storeName)))
}

func (h *Handler) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.PaymentMethods().List())
}

type addPaymentMethodRequest struct {
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type" validate:"required"`
	AccountNumber string `json:"accountNumber"`
	IsActive      bool   `json:"isActive"`
}

func (h *Handler) addPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var in addPaymentMethodRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	m, err := h.svc.PaymentMethods().Add(PaymentMethod{
		Name:          in.Name,
		Type:          PaymentType(in.Type),
		AccountNumber: in.AccountNumber,
		IsActive:      in.IsActive,
	})
	if err != nil {
		respondSaleError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

type setActiveRequest struct {
	IsActive bool `json:"isActive"`
}

func (h *Handler) setPaymentMethodActive(w http.ResponseWriter, r *http.Request) {
	var in setActiveRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}
	m, err := h.svc.PaymentMethods().SetActive(chi.URLParam(r, "id"), in.IsActive)
	if err != nil {
		respondSaleError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *Handler) removePaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.PaymentMethods().Remove(chi.URLParam(r, "id")); err != nil {
		respondSaleError(w, err)
		return
	}
	httpx.NoContent(w)
}

// respondSaleError maps the sale-flow errors onto the shared HTTP mapping.
func respondSaleError(w http.ResponseWriter, err error) {
	var insufficient *ledger.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrUnprocessable, insufficient))
	case errors.Is(err, ErrEmptyCart):
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrUnprocessable, err))
	case errors.Is(err, ErrUnknownPaymentMethod), errors.Is(err, ledger.ErrInvalidQuantity):
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
	case errors.Is(err, ErrItemNotInCart), errors.Is(err, ErrPaymentMethodNotFound),
		errors.Is(err, ledger.ErrProductNotFound):
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrNotFound, err))
	default:
		httpx.RespondError(w, err)
	}
}
