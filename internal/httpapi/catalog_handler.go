package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/krishma/storefront/internal/catalog"
	"github.com/krishma/storefront/internal/domain"
)

// storefrontRecommendationLimit caps the "you may also like" strip.
const storefrontRecommendationLimit = 3

type CatalogHandler struct {
	catalog CatalogService
	tracker EventTracker
	timeout time.Duration
}

func NewCatalogHandler(catalog CatalogService, tracker EventTracker, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, tracker: tracker, timeout: timeout}
}

// ListProducts serves the storefront catalog with optional q/category/status
// filtering.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Products(ctx)
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

// GetProduct serves a single product and records a view event.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.Product(ctx, chi.URLParam(r, "product_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.tracker.Track(identityFrom(ctx).UserID(), product.ID, domain.EventView, 1)

	respondJSON(w, r, http.StatusOK, product)
}

// Recommendations serves the recommendation strip for the current identity
// ("guest" when anonymous).
func (h *CatalogHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.Recommendations(ctx, identityFrom(ctx).UserID(), storefrontRecommendationLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, r, http.StatusOK, products)
}
