package http

import (
	"context"
	"net/http"
	"time"

	"github.com/sneakhaus/storefront/internal/domain"
)

// CatalogAPI fetches the product list from the commerce backend.
type CatalogAPI interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type ProductHandler struct {
	catalog CatalogAPI
	timeout time.Duration
}

func NewProductHandler(catalog CatalogAPI, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "Failed to load products")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}
