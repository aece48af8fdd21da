package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/krishma/storefront/internal/domain"
)

// OrderAdminAPI is the backend surface for order management.
type OrderAdminAPI interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

type AdminOrdersHandler struct {
	backend OrderAdminAPI
	timeout time.Duration
}

func NewAdminOrdersHandler(backend OrderAdminAPI, timeout time.Duration) *AdminOrdersHandler {
	return &AdminOrdersHandler{backend: backend, timeout: timeout}
}

// List serves every order, searchable by customer name/email or order id
// (?q=) and narrowable by ?status=.
func (h *AdminOrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.backend.ListOrders(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	q := strings.ToLower(r.URL.Query().Get("q"))
	status := r.URL.Query().Get("status")
	if q != "" || (status != "" && status != "all") {
		matched := make([]domain.Order, 0, len(orders))
		for _, o := range orders {
			if status != "" && status != "all" && o.Status != status {
				continue
			}
			if q != "" && !adminOrderMatches(o, q) {
				continue
			}
			matched = append(matched, o)
		}
		orders = matched
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, r, http.StatusOK, orders)
}

func adminOrderMatches(o domain.Order, q string) bool {
	if strings.Contains(strings.ToLower(o.ID), q) {
		return true
	}
	if o.Customer != nil {
		if strings.Contains(strings.ToLower(o.Customer.Name), q) ||
			strings.Contains(strings.ToLower(o.Customer.Email), q) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(o.CustomerEmail), q)
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

var validOrderStatuses = map[string]bool{
	domain.OrderStatusPending:   true,
	domain.OrderStatusConfirmed: true,
	domain.OrderStatusShipped:   true,
	domain.OrderStatusDelivered: true,
	domain.OrderStatusCancelled: true,
}

// UpdateStatus forwards a status transition; the backend owns the actual
// transition rules.
func (h *AdminOrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !validOrderStatuses[req.Status] {
		respondError(w, r, http.StatusBadRequest, "invalid_status", "unknown order status")
		return
	}

	if err := h.backend.UpdateOrderStatus(ctx, chi.URLParam(r, "order_id"), req.Status); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": req.Status})
}
