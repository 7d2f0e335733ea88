package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atlas-pos/atlas-pos/internal/catalog/categories"
	"github.com/atlas-pos/atlas-pos/internal/catalog/products"
	"github.com/atlas-pos/atlas-pos/internal/catalog/suppliers"
	"github.com/atlas-pos/atlas-pos/internal/ledger"
	"github.com/atlas-pos/atlas-pos/internal/pos"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	ProductHandler   *products.Handler
	CategoryHandler  *categories.Handler
	SupplierHandler  *suppliers.Handler
	LedgerHandler    *ledger.Handler
	POSHandler       *pos.Handler
}

// NewRouter constructs the chi.Router for the API.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/products", params.ProductHandler.Routes())
	r.Mount("/categories", params.CategoryHandler.Routes())
	r.Mount("/suppliers", params.SupplierHandler.Routes())
	r.Mount("/inventory", params.LedgerHandler.Routes())
	r.Mount("/pos", params.POSHandler.Routes())

	return r
}
