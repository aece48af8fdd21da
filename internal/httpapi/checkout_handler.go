package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/krishma/storefront/internal/domain"
)

// CheckoutService places orders from the session's cart.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, sessionID, customerEmail string) (*domain.OrderSubmission, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, timeout: timeout}
}

// PlaceOrder submits the cart. The customer email comes from the session's
// auth context, never from the request body.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var email string
	if identity := identityFrom(ctx); identity != nil {
		email = identity.Email
	}

	order, err := h.checkout.PlaceOrder(ctx, sessionID(ctx), email)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, order)
}
