package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront-api/internal/service"
	"github.com/utafrali/storefront-api/pkg/httputil"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// SeedProducts handles POST /seed
func (h *ProductHandler) SeedProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SeedProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
