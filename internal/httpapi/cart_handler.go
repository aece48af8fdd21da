package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/krishma/storefront/internal/domain"
)

// CartService is the cart state manager as the handlers see it.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddProduct(ctx context.Context, sessionID string, product domain.Product) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, bool, error)
	Remove(ctx context.Context, sessionID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// CatalogService lists products and recommendations.
type CatalogService interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Recommendations(ctx context.Context, userID string, limit int) ([]domain.Product, error)
}

// EventTracker records interaction telemetry.
type EventTracker interface {
	Track(userID, productID string, kind domain.EventKind, value float64)
}

type CartHandler struct {
	cart    CartService
	catalog CatalogService
	tracker EventTracker
	timeout time.Duration
}

func NewCartHandler(cart CartService, catalog CatalogService, tracker EventTracker, timeout time.Duration) *CartHandler {
	return &CartHandler{cart: cart, catalog: catalog, tracker: tracker, timeout: timeout}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartLineDTO struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

type CartResponseDTO struct {
	Lines   []CartLineDTO `json:"lines"`
	Total   float64       `json:"total"`
	Warning string        `json:"warning,omitempty"`
}

func cartResponse(cart *domain.Cart, warning string) CartResponseDTO {
	lines := make([]CartLineDTO, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = CartLineDTO{Product: l.Product, Quantity: l.Quantity, Subtotal: l.Subtotal()}
	}
	return CartResponseDTO{Lines: lines, Total: cart.Total(), Warning: warning}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.cart.Get(ctx, sessionID(ctx))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cartResponse(cart, ""))
}

// AddItem resolves the product from the catalog and adds one unit. The
// add_to_cart event fires after the mutation succeeds; its delivery is
// unordered relative to the response.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cart, err := h.cart.AddProduct(ctx, sessionID(ctx), *product)
	if err != nil {
		handleError(w, r, err)
		return
	}

	h.tracker.Track(identityFrom(ctx).UserID(), product.ID, domain.EventAddToCart, 1)

	respondJSON(w, r, http.StatusCreated, cartResponse(cart, ""))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, clamped, err := h.cart.UpdateQuantity(ctx, sessionID(ctx), productID, req.Quantity)
	if err != nil {
		handleError(w, r, err)
		return
	}

	warning := ""
	if clamped {
		warning = "requested quantity exceeds available stock; clamped to stock"
	}
	respondJSON(w, r, http.StatusOK, cartResponse(cart, warning))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	cart, err := h.cart.Remove(ctx, sessionID(ctx), productID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cartResponse(cart, ""))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.cart.Clear(ctx, sessionID(ctx)); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, CartResponseDTO{Lines: []CartLineDTO{}})
}
