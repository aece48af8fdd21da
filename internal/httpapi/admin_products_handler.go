package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/krishma/storefront/internal/catalog"
	"github.com/krishma/storefront/internal/domain"
)

// ProductAdminAPI is the backend surface for inventory management.
type ProductAdminAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, id string, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type AdminProductsHandler struct {
	backend ProductAdminAPI
	timeout time.Duration
}

func NewAdminProductsHandler(backend ProductAdminAPI, timeout time.Duration) *AdminProductsHandler {
	return &AdminProductsHandler{backend: backend, timeout: timeout}
}

// List serves the inventory view with q/category/status filters.
func (h *AdminProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.backend.ListProducts(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	filter := catalog.Filter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Status:   r.URL.Query().Get("status"),
	}
	respondJSON(w, r, http.StatusOK, filter.Apply(products))
}

func (h *AdminProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	if err := h.backend.CreateProduct(ctx, product); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, product)
}

func (h *AdminProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "product_id")
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}

	if err := h.backend.UpdateProduct(ctx, id, product); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, product)
}

func (h *AdminProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.backend.DeleteProduct(ctx, chi.URLParam(r, "product_id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeProduct parses and validates the product form. Validation failures
// are reported before any backend call.
func decodeProduct(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return nil, false
	}

	switch {
	case strings.TrimSpace(product.Name) == "":
		respondError(w, r, http.StatusBadRequest, "invalid_name", "name is required")
		return nil, false
	case strings.TrimSpace(product.Category) == "":
		respondError(w, r, http.StatusBadRequest, "invalid_category", "category is required")
		return nil, false
	case product.Price < 0:
		respondError(w, r, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return nil, false
	case product.Stock < 0:
		respondError(w, r, http.StatusBadRequest, "invalid_stock", "stock must not be negative")
		return nil, false
	case product.Discount < 0 || product.Discount > 100:
		respondError(w, r, http.StatusBadRequest, "invalid_discount", "discount must be between 0 and 100")
		return nil, false
	}

	product.Status = domain.StockStatus(product.Stock)
	return &product, true
}
