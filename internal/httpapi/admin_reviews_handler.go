package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/krishma/storefront/internal/domain"
)

// ReviewAdminAPI is the backend surface for review moderation.
type ReviewAdminAPI interface {
	ListReviews(ctx context.Context) ([]domain.Review, error)
	UpdateReviewStatus(ctx context.Context, id, status string) error
}

type AdminReviewsHandler struct {
	backend ReviewAdminAPI
	timeout time.Duration
}

func NewAdminReviewsHandler(backend ReviewAdminAPI, timeout time.Duration) *AdminReviewsHandler {
	return &AdminReviewsHandler{backend: backend, timeout: timeout}
}

// List serves reviews with ?q= search (product, customer, comment) plus
// ?status= and ?rating= filters.
func (h *AdminReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	reviews, err := h.backend.ListReviews(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	q := strings.ToLower(r.URL.Query().Get("q"))
	status := r.URL.Query().Get("status")
	rating, _ := strconv.Atoi(r.URL.Query().Get("rating"))

	if q != "" || (status != "" && status != "all") || rating > 0 {
		matched := make([]domain.Review, 0, len(reviews))
		for _, review := range reviews {
			if status != "" && status != "all" && review.Status != status {
				continue
			}
			if rating > 0 && review.Rating != rating {
				continue
			}
			if q != "" && !reviewMatches(review, q) {
				continue
			}
			matched = append(matched, review)
		}
		reviews = matched
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	respondJSON(w, r, http.StatusOK, reviews)
}

func reviewMatches(review domain.Review, q string) bool {
	return strings.Contains(strings.ToLower(review.ProductName), q) ||
		strings.Contains(strings.ToLower(review.CustomerName), q) ||
		strings.Contains(strings.ToLower(review.Comment), q)
}

var validReviewStatuses = map[string]bool{
	domain.ReviewStatusPending:  true,
	domain.ReviewStatusApproved: true,
	domain.ReviewStatusRejected: true,
}

func (h *AdminReviewsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !validReviewStatuses[req.Status] {
		respondError(w, r, http.StatusBadRequest, "invalid_status", "unknown review status")
		return
	}

	if err := h.backend.UpdateReviewStatus(ctx, chi.URLParam(r, "review_id"), req.Status); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": req.Status})
}
