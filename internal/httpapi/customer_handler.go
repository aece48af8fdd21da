package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/krishma/storefront/internal/domain"
)

// CustomerAPI is the backend surface for customer self-service.
type CustomerAPI interface {
	OrdersByCustomer(ctx context.Context, email string) ([]domain.Order, error)
	SubmitReview(ctx context.Context, review *domain.Review) error
	CustomerProfile(ctx context.Context, email string) (*domain.Customer, error)
	UpdateCustomerProfile(ctx context.Context, email string, customer *domain.Customer) error
}

type CustomerHandler struct {
	backend CustomerAPI
	catalog CatalogService
	timeout time.Duration
}

func NewCustomerHandler(backend CustomerAPI, catalog CatalogService, timeout time.Duration) *CustomerHandler {
	return &CustomerHandler{backend: backend, catalog: catalog, timeout: timeout}
}

// ListOrders serves the logged-in customer's order history, searchable by
// order id or item name via ?q=.
func (h *CustomerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.backend.OrdersByCustomer(ctx, identityFrom(ctx).Email)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		matched := make([]domain.Order, 0, len(orders))
		for _, o := range orders {
			if orderMatches(o, q) {
				matched = append(matched, o)
			}
		}
		orders = matched
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, r, http.StatusOK, orders)
}

func orderMatches(o domain.Order, q string) bool {
	if strings.Contains(strings.ToLower(o.ID), q) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return false
}

type SubmitReviewRequestDTO struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

// SubmitReview validates the form fields before any network call and posts
// the review as pending.
func (h *CustomerHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SubmitReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	switch {
	case req.ProductID == "":
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	case req.Rating < 1 || req.Rating > 5:
		respondError(w, r, http.StatusBadRequest, "invalid_rating", "rating must be between 1 and 5")
		return
	case strings.TrimSpace(req.Title) == "":
		respondError(w, r, http.StatusBadRequest, "invalid_title", "title is required")
		return
	case strings.TrimSpace(req.Comment) == "":
		respondError(w, r, http.StatusBadRequest, "invalid_comment", "comment is required")
		return
	}

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	identity := identityFrom(ctx)
	review := &domain.Review{
		ProductID:    product.ID,
		ProductName:  product.Name,
		CustomerName: identity.Name,
		Rating:       req.Rating,
		Title:        strings.TrimSpace(req.Title),
		Comment:      strings.TrimSpace(req.Comment),
		Date:         time.Now().Format("2006-01-02"),
		Status:       domain.ReviewStatusPending,
	}

	if err := h.backend.SubmitReview(ctx, review); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, review)
}

func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profile, err := h.backend.CustomerProfile(ctx, identityFrom(ctx).Email)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var profile domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	email := identityFrom(ctx).Email
	if err := h.backend.UpdateCustomerProfile(ctx, email, &profile); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}
