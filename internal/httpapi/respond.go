package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/krishma/storefront/internal/backend"
	"github.com/krishma/storefront/internal/cart"
	"github.com/krishma/storefront/internal/catalog"
	"github.com/krishma/storefront/internal/checkout"
	"github.com/krishma/storefront/internal/logger"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message, Code: code})
}

// handleError maps service errors onto HTTP statuses. Stock-constraint
// violations and auth failures get their own codes so the UI can render
// warnings instead of generic failures.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		respondError(w, r, http.StatusConflict, "out_of_stock", err.Error())
	case errors.Is(err, cart.ErrStockLimit):
		respondError(w, r, http.StatusConflict, "stock_limit", err.Error())
	case errors.Is(err, checkout.ErrNotAuthenticated):
		respondError(w, r, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, r, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, backend.ErrUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, "service_unavailable", "backend temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusGatewayTimeout, "timeout", "request timed out")
	case errors.As(err, &apiErr):
		respondError(w, r, apiErr.StatusCode, "backend_error", apiErr.Message)
	default:
		logger.FromContext(r.Context()).Error("internal error", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
