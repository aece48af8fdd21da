package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/krishma/storefront/internal/domain"
)

// CustomerAdminAPI is the backend surface for customer management.
type CustomerAdminAPI interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

type AdminCustomersHandler struct {
	backend CustomerAdminAPI
	timeout time.Duration
}

func NewAdminCustomersHandler(backend CustomerAdminAPI, timeout time.Duration) *AdminCustomersHandler {
	return &AdminCustomersHandler{backend: backend, timeout: timeout}
}

// List serves customers, searchable by name, email or phone via ?q=.
func (h *AdminCustomersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	customers, err := h.backend.ListCustomers(ctx)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		matched := make([]domain.Customer, 0, len(customers))
		for _, c := range customers {
			if strings.Contains(strings.ToLower(c.Name), q) ||
				strings.Contains(strings.ToLower(c.Email), q) ||
				strings.Contains(c.Phone, q) {
				matched = append(matched, c)
			}
		}
		customers = matched
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	respondJSON(w, r, http.StatusOK, customers)
}
